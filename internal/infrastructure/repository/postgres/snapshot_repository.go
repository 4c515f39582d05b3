package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
)

// Connect opens an instrumented connection pool. The pool is sized for a
// batch process that touches the database once per run.
func Connect(ctx context.Context, dbURL string) (*sqlx.DB, error) {
	db, err := otelsqlx.ConnectContext(ctx, "postgres", dbURL)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	db.SetMaxOpenConns(2)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(5 * time.Minute)
	return db, nil
}

// SnapshotRepository persists the emitted dashboard document, one row
// per season, overwritten on every run.
type SnapshotRepository struct {
	db *sqlx.DB
}

func NewSnapshotRepository(db *sqlx.DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

const upsertSnapshotQuery = `
INSERT INTO dashboard_snapshots (season, document, generated_at)
VALUES ($1, $2, NOW())
ON CONFLICT (season)
DO UPDATE SET document = EXCLUDED.document, generated_at = NOW()`

func (r *SnapshotRepository) Upsert(ctx context.Context, season string, document []byte) error {
	if _, err := r.db.ExecContext(ctx, upsertSnapshotQuery, season, document); err != nil {
		return fmt.Errorf("upsert snapshot season=%s: %w", season, err)
	}
	return nil
}

// Load returns the stored document for a season, or sql.ErrNoRows.
func (r *SnapshotRepository) Load(ctx context.Context, season string) ([]byte, error) {
	var document []byte
	if err := r.db.GetContext(ctx, &document, `SELECT document FROM dashboard_snapshots WHERE season = $1`, season); err != nil {
		return nil, fmt.Errorf("load snapshot season=%s: %w", season, err)
	}
	return document, nil
}
