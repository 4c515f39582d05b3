package usecase

import (
	"context"
	"testing"

	"github.com/matchpulse/matchpulse/internal/domain/match"
)

func TestSeasonStatus(t *testing.T) {
	svc := NewMatchStatsService()
	status := svc.SeasonStatus(context.Background(), fixtureMatches())

	if status.MatchesPlayed != 3 || status.MatchesTotal != 380 {
		t.Fatalf("unexpected match counts: %+v", status)
	}
	if status.MatchdaysPlayed != 2 {
		t.Fatalf("matchdays_played=%d, want 2", status.MatchdaysPlayed)
	}
	if status.IsComplete {
		t.Fatal("3 matches must not mark the season complete")
	}
	if status.LastMatchDate != "2025-08-30" {
		t.Fatalf("last_match_date=%q", status.LastMatchDate)
	}
}

func TestMonthlyTrends(t *testing.T) {
	records := fixtureMatches()
	records = append(records, match.Record{
		MatchID: 4, Season: "2025-26", Date: "2025-09-13",
		HomeTeam: "Chelsea", AwayTeam: "Arsenal",
		HomeGoals: 0, AwayGoals: 0, Result: match.ResultDraw,
	})

	trends := NewMatchStatsService().MonthlyTrends(context.Background(), records)
	if len(trends) != 2 {
		t.Fatalf("expected 2 months, got %d", len(trends))
	}
	if trends[0].Month != "2025-08" || trends[1].Month != "2025-09" {
		t.Fatalf("months out of order: %s, %s", trends[0].Month, trends[1].Month)
	}

	aug := trends[0]
	if aug.Matches != 3 || aug.TotalGoals != 7 {
		t.Fatalf("unexpected August totals: %+v", aug)
	}
	if aug.AvgGoals != 2.33 {
		t.Fatalf("avg_goals=%v, want 2.33", aug.AvgGoals)
	}
	if aug.HomeWins != 1 || aug.Draws != 1 || aug.AwayWins != 1 {
		t.Fatalf("outcome split wrong: %+v", aug)
	}
}

func TestHomeAwaySplit(t *testing.T) {
	split := NewMatchStatsService().HomeAwaySplit(context.Background(), fixtureMatches())

	if split.TotalMatches != 3 {
		t.Fatalf("total_matches=%d", split.TotalMatches)
	}
	if split.HomeWins != 1 || split.Draws != 1 || split.AwayWins != 1 {
		t.Fatalf("outcome split wrong: %+v", split)
	}
	if split.HomeGoalsAvg != 1.0 || split.AwayGoalsAvg != 1.33 {
		t.Fatalf("goal averages wrong: %+v", split)
	}
	if split.HomeWinPct != 33.33 {
		t.Fatalf("home_win_pct=%v", split.HomeWinPct)
	}
}

func TestHomeAwaySplitEmptySeason(t *testing.T) {
	split := NewMatchStatsService().HomeAwaySplit(context.Background(), nil)
	if split.HomeWinPct != 0 || split.HomeGoalsAvg != 0 {
		t.Fatalf("empty season must yield zeroes, got %+v", split)
	}
}

func TestRefereeStatsMinimumSample(t *testing.T) {
	mk := func(id int, ref string, goals, fouls, cards, reds int) match.Record {
		return match.Record{
			MatchID: id, Season: "2025-26", Date: "2025-08-16",
			HomeTeam: "A", AwayTeam: "B", Result: match.ResultDraw,
			Referee:    ref,
			TotalGoals: goals, TotalFouls: fouls, TotalCards: cards,
			HomeReds: reds,
		}
	}
	records := []match.Record{
		mk(1, "M Oliver", 2, 20, 4, 1),
		mk(2, "M Oliver", 4, 24, 2, 0),
		mk(3, "M Oliver", 0, 16, 6, 0),
		mk(4, "A Taylor", 3, 18, 5, 0),
		mk(5, "A Taylor", 1, 22, 3, 0),
	}

	stats := NewMatchStatsService().RefereeStats(context.Background(), records)
	if len(stats) != 1 {
		t.Fatalf("referees below 3 matches must be excluded, got %d rows", len(stats))
	}
	oliver := stats[0]
	if oliver.Referee != "M Oliver" || oliver.Matches != 3 {
		t.Fatalf("unexpected row: %+v", oliver)
	}
	if oliver.AvgGoals != 2.0 || oliver.AvgFouls != 20.0 || oliver.AvgCards != 4.0 {
		t.Fatalf("averages wrong: %+v", oliver)
	}
	if oliver.TotalReds != 1 {
		t.Fatalf("total_reds=%d", oliver.TotalReds)
	}
}

func TestScorelineFrequency(t *testing.T) {
	var records []match.Record
	add := func(n, hg, ag int) {
		for i := 0; i < n; i++ {
			records = append(records, match.Record{
				MatchID: len(records) + 1, Season: "2025-26", Date: "2025-08-16",
				HomeTeam: "A", AwayTeam: "B",
				HomeGoals: hg, AwayGoals: ag,
				Result: match.DeriveResult(hg, ag),
			})
		}
	}
	add(5, 1, 1)
	add(3, 2, 0)
	add(3, 0, 2)
	add(1, 4, 4)

	scorelines := NewMatchStatsService().ScorelineFrequency(context.Background(), records)
	if scorelines[0].Score != "1-1" || scorelines[0].Count != 5 {
		t.Fatalf("unexpected leader: %+v", scorelines[0])
	}
	// Equal counts fall back to the scoreline string.
	if scorelines[1].Score != "0-2" || scorelines[2].Score != "2-0" {
		t.Fatalf("tie-break wrong: %s, %s", scorelines[1].Score, scorelines[2].Score)
	}
}

func TestSeasonComparisonSkipsEmptySeasons(t *testing.T) {
	records := fixtureMatches()
	seasons := []string{"2024-25", "2025-26"}

	rows := NewMatchStatsService().SeasonComparison(context.Background(), records, seasons)
	if len(rows) != 1 {
		t.Fatalf("expected only the populated season, got %d rows", len(rows))
	}
	if rows[0].Season != "2025-26" || rows[0].Matches != 3 {
		t.Fatalf("unexpected row: %+v", rows[0])
	}
	if rows[0].AvgGoals != 2.33 || rows[0].HomeWinPct != 33.33 {
		t.Fatalf("averages wrong: %+v", rows[0])
	}
}
