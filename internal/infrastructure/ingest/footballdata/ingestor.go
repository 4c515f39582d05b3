package footballdata

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/matchpulse/matchpulse/internal/domain/match"
	"github.com/matchpulse/matchpulse/internal/platform/logging"
	"github.com/matchpulse/matchpulse/internal/reconcile"
)

// SeasonSource names one season to ingest. Live seasons re-download on
// every run because the upstream CSV grows weekly; historical seasons
// are static and served from the raw-file cache.
type SeasonSource struct {
	Label string
	Code  string
	Live  bool
}

type Ingestor struct {
	client   *Client
	rawDir   string
	teams    *reconcile.TeamMapper
	delay    time.Duration
	logger   *logging.Logger
	validate *validator.Validate
}

// NewIngestor wires the download client to the cleanser. delay spaces out
// consecutive season downloads to stay polite to the upstream host.
func NewIngestor(client *Client, rawDir string, teams *reconcile.TeamMapper, delay time.Duration, logger *logging.Logger) *Ingestor {
	if logger == nil {
		logger = logging.Default()
	}
	return &Ingestor{
		client:   client,
		rawDir:   rawDir,
		teams:    teams,
		delay:    delay,
		logger:   logger,
		validate: validator.New(),
	}
}

// Ingest downloads and cleanses every configured season, assigning match
// IDs sequentially across the combined dataset. A historical season whose
// download fails falls back to the cached raw file; a season with neither
// is an error.
func (ing *Ingestor) Ingest(ctx context.Context, seasons []SeasonSource) ([]match.Record, error) {
	if err := os.MkdirAll(ing.rawDir, 0o755); err != nil {
		return nil, fmt.Errorf("create raw dir: %w", err)
	}

	all := make([]match.Record, 0, 4*380)
	for i, season := range seasons {
		if i > 0 && ing.delay > 0 {
			timer := time.NewTimer(ing.delay)
			select {
			case <-ctx.Done():
				timer.Stop()
				return nil, ctx.Err()
			case <-timer.C:
			}
		}

		raw, err := ing.seasonBytes(ctx, season)
		if err != nil {
			return nil, fmt.Errorf("season %s: %w", season.Label, err)
		}

		records, err := CleanseSeason(raw, season.Label, ing.teams)
		if err != nil {
			return nil, err
		}
		ing.logger.InfoContext(ctx, "season cleansed",
			"season", season.Label,
			"matches", len(records),
		)
		all = append(all, records...)
	}

	out := make([]match.Record, 0, len(all))
	dropped := 0
	for _, r := range all {
		r.MatchID = len(out) + 1
		if err := ing.validate.Struct(r); err != nil {
			dropped++
			ing.logger.WarnContext(ctx, "dropping invalid match record",
				"season", r.Season,
				"date", r.Date,
				"home_team", r.HomeTeam,
				"away_team", r.AwayTeam,
				"error", err,
			)
			continue
		}
		out = append(out, r)
	}
	if dropped > 0 {
		ing.logger.WarnContext(ctx, "invalid match records dropped", "count", dropped)
	}
	return out, nil
}

func (ing *Ingestor) seasonBytes(ctx context.Context, season SeasonSource) ([]byte, error) {
	rawPath := filepath.Join(ing.rawDir, fmt.Sprintf("matches_%s.csv", season.Code))

	if !season.Live {
		if cached, err := os.ReadFile(rawPath); err == nil {
			return cached, nil
		}
	}

	payload, err := ing.client.DownloadSeason(ctx, season.Code)
	if err != nil {
		// A stale raw file beats no data for a live season too.
		if cached, readErr := os.ReadFile(rawPath); readErr == nil {
			ing.logger.WarnContext(ctx, "download failed, using cached raw file",
				"season", season.Label,
				"error", err,
			)
			return cached, nil
		}
		return nil, err
	}

	if writeErr := os.WriteFile(rawPath, payload, 0o644); writeErr != nil {
		ing.logger.WarnContext(ctx, "could not cache raw file", "path", rawPath, "error", writeErr)
	}
	return payload, nil
}
