package usecase

import (
	"context"
	"testing"

	"github.com/matchpulse/matchpulse/internal/domain/player"
	"github.com/matchpulse/matchpulse/internal/domain/xg"
	"github.com/matchpulse/matchpulse/internal/reconcile"
)

func fixturePlayers() []player.Record {
	return []player.Record{
		{Name: "Haaland", FullName: "Erling Haaland", Team: "Manchester City", Position: player.PositionForward,
			Goals: 20, Assists: 3, Minutes: 1800, Price: 14.1, YellowCards: 2},
		{Name: "Saka", FullName: "Bukayo Saka", Team: "Arsenal", Position: player.PositionMidfielder,
			Goals: 8, Assists: 10, Minutes: 1700, Price: 10.0, YellowCards: 1},
		{Name: "Raya", FullName: "David Raya", Team: "Arsenal", Position: player.PositionGoalkeeper,
			CleanSheets: 9, Minutes: 1890, Price: 5.6},
		{Name: "Cameo", FullName: "Late Cameo", Team: "Chelsea", Position: player.PositionForward,
			Goals: 3, Minutes: 80, Price: 4.5},
		{Name: "Enforcer", FullName: "The Enforcer", Team: "Chelsea", Position: player.PositionDefender,
			Minutes: 1500, Price: 4.0, YellowCards: 9, RedCards: 2},
	}
}

func TestBuildBoardsNilWithoutPlayers(t *testing.T) {
	if got := NewLeaderboardService().Build(context.Background(), nil, nil); got != nil {
		t.Fatalf("expected nil boards, got %+v", got)
	}
}

func TestGoalScorersBoard(t *testing.T) {
	matcher := reconcile.NewPlayerMatcher([]xg.PlayerRecord{
		{Name: "Erling Haaland", Team: "Manchester City", XG: 18.4, Shots: 96},
	})

	boards := NewLeaderboardService().Build(context.Background(), fixturePlayers(), matcher)
	if boards == nil {
		t.Fatal("expected boards")
	}

	scorers := boards.GoalScorers
	if len(scorers) != 3 {
		t.Fatalf("expected 3 scorers, got %d", len(scorers))
	}
	top := scorers[0]
	if top.PlayerName != "Haaland" || top.Rank != 1 || top.Goals != 20 {
		t.Fatalf("unexpected leader: %+v", top)
	}
	if top.GoalsPer90 != 1.0 {
		t.Fatalf("goals_per90=%v, want 1.0", top.GoalsPer90)
	}
	if top.XG == nil || *top.XG != 18.4 || top.Shots == nil || *top.Shots != 96 {
		t.Fatalf("expected reconciled xG fields, got %+v", top)
	}

	// Unmatched players keep their row with null xG fields.
	for _, row := range scorers[1:] {
		if row.XG != nil || row.Shots != nil {
			t.Fatalf("expected null xG for %s", row.PlayerName)
		}
	}
}

func TestGoalScorersPer90BelowSample(t *testing.T) {
	boards := NewLeaderboardService().Build(context.Background(), fixturePlayers(), nil)

	for _, row := range boards.GoalScorers {
		if row.PlayerName == "Cameo" && row.GoalsPer90 != 0 {
			t.Fatalf("80 minutes must not extrapolate, got %v", row.GoalsPer90)
		}
	}
}

func TestIronMenOnePerTeam(t *testing.T) {
	boards := NewLeaderboardService().Build(context.Background(), fixturePlayers(), nil)

	rows := boards.IronMen
	if len(rows) != 3 {
		t.Fatalf("expected one row per team, got %d", len(rows))
	}
	if rows[0].PlayerName != "Raya" || rows[0].Minutes != 1890 {
		t.Fatalf("unexpected leader: %+v", rows[0])
	}
	if rows[0].GamesEquivalent != 21.0 {
		t.Fatalf("games_equivalent=%v", rows[0].GamesEquivalent)
	}
}

func TestBestValueExcludesCameos(t *testing.T) {
	boards := NewLeaderboardService().Build(context.Background(), fixturePlayers(), nil)

	for _, row := range boards.BestValue {
		if row.PlayerName == "Cameo" {
			t.Fatal("players under the minutes floor must be excluded")
		}
	}
	if len(boards.BestValue) == 0 {
		t.Fatal("expected at least one qualifying player")
	}
	if boards.BestValue[0].PlayerName != "Saka" {
		t.Fatalf("expected Saka to lead on G+A per million, got %s", boards.BestValue[0].PlayerName)
	}
}

func TestGoalsByPositionCoversAllPositions(t *testing.T) {
	boards := NewLeaderboardService().Build(context.Background(), fixturePlayers(), nil)

	rows := boards.GoalsByPosition
	if len(rows) != len(player.Positions) {
		t.Fatalf("expected %d positions, got %d", len(player.Positions), len(rows))
	}
	if rows[0].Position != player.PositionForward || rows[0].TotalGoals != 23 {
		t.Fatalf("unexpected forward aggregate: %+v", rows[0])
	}
}

func TestMostCards(t *testing.T) {
	boards := NewLeaderboardService().Build(context.Background(), fixturePlayers(), nil)

	if len(boards.MostCards) == 0 || boards.MostCards[0].PlayerName != "Enforcer" {
		t.Fatalf("unexpected disciplinary board: %+v", boards.MostCards)
	}
	if boards.MostCards[0].TotalCards != 11 {
		t.Fatalf("total_cards=%d, want 11", boards.MostCards[0].TotalCards)
	}
}

func TestPlayerValue(t *testing.T) {
	svc := NewLeaderboardService()

	if got := svc.PlayerValue(context.Background(), nil); got != nil {
		t.Fatal("expected nil without players")
	}

	rows := svc.PlayerValue(context.Background(), fixturePlayers())
	if rows == nil || len(*rows) == 0 {
		t.Fatal("expected rows")
	}
	if (*rows)[0].PlayerName != "Haaland" {
		t.Fatalf("expected Haaland to lead, got %s", (*rows)[0].PlayerName)
	}
	if (*rows)[0].GoalsPerMillion != 1.42 {
		t.Fatalf("goals_per_million=%v, want 1.42", (*rows)[0].GoalsPerMillion)
	}
}
