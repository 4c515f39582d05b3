package usecase

import (
	"context"
	"testing"

	"github.com/matchpulse/matchpulse/internal/domain/dashboard"
	"github.com/matchpulse/matchpulse/internal/domain/player"
)

func regressionFixture() ([]player.Record, []dashboard.TableRow) {
	players := []player.Record{
		{Name: "a1", Team: "Cheap FC", Price: 10},
		{Name: "b1", Team: "Middle FC", Price: 20},
		{Name: "c1", Team: "Rich FC", Price: 30},
	}
	table := []dashboard.TableRow{
		{Team: "Cheap FC", Points: 40, Played: 20},
		{Team: "Middle FC", Points: 50, Played: 20},
		{Team: "Rich FC", Points: 60, Played: 20},
	}
	return players, table
}

func TestMoneyVsPointsPerfectFit(t *testing.T) {
	players, table := regressionFixture()

	got := NewRegressionService().MoneyVsPoints(context.Background(), players, table)
	if got == nil {
		t.Fatal("expected a regression section")
	}

	if got.Regression.Slope != 1.0 {
		t.Fatalf("slope=%v, want 1.0", got.Regression.Slope)
	}
	if got.Regression.Intercept != 30.0 {
		t.Fatalf("intercept=%v, want 30.0", got.Regression.Intercept)
	}
	if got.Regression.RSquared != 1.0 {
		t.Fatalf("r_squared=%v, want 1.0", got.Regression.RSquared)
	}

	if len(got.Teams) != 3 {
		t.Fatalf("expected 3 teams, got %d", len(got.Teams))
	}
	for _, row := range got.Teams {
		if row.OverUnder != 0 {
			t.Fatalf("%s over_under=%v on a perfect fit", row.Team, row.OverUnder)
		}
		if row.PointsPerMatch != round2(float64(row.Points)/20) {
			t.Fatalf("%s points_per_match=%v", row.Team, row.PointsPerMatch)
		}
	}
}

func TestMoneyVsPointsOverUnderRanking(t *testing.T) {
	players, table := regressionFixture()
	// Middle FC overperforms its squad value.
	table[1].Points = 70

	got := NewRegressionService().MoneyVsPoints(context.Background(), players, table)
	if got == nil {
		t.Fatal("expected a regression section")
	}
	if got.Teams[0].Team != "Middle FC" {
		t.Fatalf("expected the overperformer first, got %s", got.Teams[0].Team)
	}
	if got.Teams[0].OverUnder <= 0 {
		t.Fatalf("over_under=%v, want positive", got.Teams[0].OverUnder)
	}
}

func TestMoneyVsPointsDegenerateInputs(t *testing.T) {
	svc := NewRegressionService()

	t.Run("nil without players", func(t *testing.T) {
		if got := svc.MoneyVsPoints(context.Background(), nil, nil); got != nil {
			t.Fatal("expected nil")
		}
	})

	t.Run("nil without team overlap", func(t *testing.T) {
		players := []player.Record{{Name: "x", Team: "Elsewhere FC", Price: 5}}
		table := []dashboard.TableRow{{Team: "Cheap FC", Points: 40}}
		if got := svc.MoneyVsPoints(context.Background(), players, table); got != nil {
			t.Fatal("expected nil")
		}
	})

	t.Run("zero variance degrades to zero slope", func(t *testing.T) {
		players := []player.Record{
			{Name: "a", Team: "Cheap FC", Price: 10},
			{Name: "b", Team: "Rich FC", Price: 10},
		}
		table := []dashboard.TableRow{
			{Team: "Cheap FC", Points: 40, Played: 20},
			{Team: "Rich FC", Points: 60, Played: 20},
		}
		got := svc.MoneyVsPoints(context.Background(), players, table)
		if got == nil {
			t.Fatal("expected a section")
		}
		if got.Regression.Slope != 0 || got.Regression.RSquared != 0 {
			t.Fatalf("expected degraded fit, got %+v", got.Regression)
		}
		if got.Regression.Intercept != 50.0 {
			t.Fatalf("intercept=%v, want mean points 50", got.Regression.Intercept)
		}
	})
}
