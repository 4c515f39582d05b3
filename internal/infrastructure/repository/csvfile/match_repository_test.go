package csvfile

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/matchpulse/matchpulse/internal/domain/match"
)

func TestMatchRepository_RoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "matches_clean.csv")
	repo := NewMatchRepository(path)
	ctx := context.Background()

	in := []match.Record{
		{
			MatchID: 1, Season: "2025-26", Date: "2025-08-16", Time: "15:00",
			HomeTeam: "Arsenal", AwayTeam: "Chelsea",
			HomeGoals: 2, AwayGoals: 1, Result: match.ResultHome,
			HTHomeGoals: 1, HTAwayGoals: 1, HTResult: match.ResultDraw,
			Referee:   "M Oliver",
			HomeShots: 14, AwayShots: 9,
			TotalGoals: 3, TotalShots: 23,
		},
	}
	if err := repo.SaveAll(ctx, in); err != nil {
		t.Fatalf("save: %v", err)
	}

	out, err := repo.ListAll(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("expected 1 record, got %d", len(out))
	}
	if out[0] != in[0] {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", out[0], in[0])
	}
}

func TestMatchRepository_ListAll_MissingFile(t *testing.T) {
	t.Parallel()

	repo := NewMatchRepository(filepath.Join(t.TempDir(), "absent.csv"))
	if _, err := repo.ListAll(context.Background()); !os.IsNotExist(err) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}

func TestRow_ToleratesMissingAndDecimalColumns(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "partial.csv")
	content := "match_id,season,date,home_team,away_team,home_goals,away_goals,result\n" +
		"3.0,2025-26,2025-08-17,Everton,Fulham,0,0,D\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	out, err := NewMatchRepository(path).ListAll(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if out[0].MatchID != 3 {
		t.Fatalf("expected decimal match_id to parse as 3, got %d", out[0].MatchID)
	}
	if out[0].HomeShots != 0 || out[0].Referee != "" {
		t.Fatalf("expected missing columns to read as zero values")
	}
}
