package usecase

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/matchpulse/matchpulse/internal/domain/dashboard"
	"github.com/matchpulse/matchpulse/internal/domain/player"
	"github.com/matchpulse/matchpulse/internal/domain/xg"
)

func newDashboardService() *DashboardService {
	svc := NewDashboardService(
		NewStandingsService(),
		NewMatchStatsService(),
		NewLeaderboardService(),
		NewXGService(),
		NewRegressionService(),
		nil,
	)
	svc.now = func() time.Time {
		return time.Date(2026, time.May, 24, 18, 0, 0, 0, time.UTC)
	}
	return svc
}

func fullBuildInput() BuildInput {
	return BuildInput{
		Season:  "2025-26",
		Seasons: []string{"2025-26"},
		Source:  "football-data.co.uk",
		Matches: fixtureMatches(),
		Players: []player.Record{
			{Name: "Haaland", Team: "Manchester City", Position: player.PositionForward,
				Goals: 20, Minutes: 1800, Price: 14.1},
		},
		XGTeams: []xg.TeamRecord{
			{Team: "Arsenal", XGFor: 4.1, XGAgainst: 1.0, GoalsFor: 5},
		},
		XGPlayers: []xg.PlayerRecord{
			{Name: "Erling Haaland", Team: "Manchester City", Goals: 20, XG: 18.4},
		},
		Availability: dashboard.Availability{HasFantasy: true, HasXG: true},
	}
}

func TestBuildDocument(t *testing.T) {
	doc, err := newDashboardService().Build(context.Background(), fullBuildInput())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if doc.Season != "2025-26" || doc.Source != "football-data.co.uk" {
		t.Fatalf("unexpected header fields: %+v", doc)
	}
	if doc.GeneratedAt != "2026-05-24T18:00:00Z" {
		t.Fatalf("generated_at=%q", doc.GeneratedAt)
	}
	if doc.TotalMatches != 3 || doc.TotalGoals != 7 {
		t.Fatalf("totals wrong: matches=%d goals=%d", doc.TotalMatches, doc.TotalGoals)
	}
	if doc.GoalsPerMatch != 2.33 {
		t.Fatalf("goals_per_match=%v", doc.GoalsPerMatch)
	}
	if len(doc.LeagueTable) != 3 {
		t.Fatalf("league table rows=%d", len(doc.LeagueTable))
	}
	if doc.Boards == nil || doc.XGTable == nil || doc.MoneyVsPoints == nil {
		t.Fatal("expected optional sections when both sources loaded")
	}
	if len(doc.SeasonComparison) != 1 {
		t.Fatalf("season comparison rows=%d", len(doc.SeasonComparison))
	}
}

func TestBuildDocumentWithoutOptionalSources(t *testing.T) {
	in := fullBuildInput()
	in.Availability = dashboard.Availability{}

	doc, err := newDashboardService().Build(context.Background(), in)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	// Flags override the payloads: data that arrived but was flagged
	// unavailable must not leak into the document.
	if doc.Boards != nil || doc.PlayerValue != nil || doc.MoneyVsPoints != nil {
		t.Fatal("fantasy sections must be nil when the source is unavailable")
	}
	if doc.XGTable != nil || doc.XGVsActual != nil || doc.ShotQuality != nil || doc.TopScorers != nil {
		t.Fatal("xG sections must be nil when the source is unavailable")
	}
	if len(doc.LeagueTable) != 3 {
		t.Fatal("required sections must still build")
	}
}

func TestBuildDocumentFailsWithoutMatches(t *testing.T) {
	in := fullBuildInput()
	in.Season = "2023-24"

	_, err := newDashboardService().Build(context.Background(), in)
	if !errors.Is(err, ErrNoMatches) {
		t.Fatalf("expected ErrNoMatches, got %v", err)
	}
}

func TestBuildDocumentDeterministic(t *testing.T) {
	svc := newDashboardService()

	first, err := svc.Build(context.Background(), fullBuildInput())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	second, err := svc.Build(context.Background(), fullBuildInput())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	firstRaw, err := EncodeDocument(first)
	if err != nil {
		t.Fatalf("EncodeDocument: %v", err)
	}
	secondRaw, err := EncodeDocument(second)
	if err != nil {
		t.Fatalf("EncodeDocument: %v", err)
	}
	if !bytes.Equal(firstRaw, secondRaw) {
		t.Fatal("two builds over identical input must emit identical bytes")
	}
}

func TestEncodeDocumentEmitsNulls(t *testing.T) {
	in := fullBuildInput()
	in.Availability = dashboard.Availability{}

	doc, err := newDashboardService().Build(context.Background(), in)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	raw, err := EncodeDocument(doc)
	if err != nil {
		t.Fatalf("EncodeDocument: %v", err)
	}

	for _, key := range []string{`"player_leaderboards": null`, `"xg_table": null`, `"money_vs_points": null`} {
		if !bytes.Contains(raw, []byte(key)) {
			t.Fatalf("expected %s in output", key)
		}
	}
	for _, forbidden := range []string{"NaN", "Infinity"} {
		if bytes.Contains(raw, []byte(forbidden)) {
			t.Fatalf("output contains %s", forbidden)
		}
	}
}
