package usecase

import (
	"context"
	"testing"

	"github.com/matchpulse/matchpulse/internal/domain/dashboard"
	"github.com/matchpulse/matchpulse/internal/domain/xg"
)

func fixtureXGTeams() []xg.TeamRecord {
	return []xg.TeamRecord{
		{Team: "Arsenal", XGFor: 45.5, XGAgainst: 20.1, GoalsFor: 50, GoalsAgainst: 18, NPXG: 40.2},
		{Team: "Chelsea", XGFor: 38.2, XGAgainst: 30.0, GoalsFor: 35, GoalsAgainst: 33, NPXG: 33.0},
	}
}

func TestXGTable(t *testing.T) {
	svc := NewXGService()

	if got := svc.Table(context.Background(), nil, nil); got != nil {
		t.Fatal("expected nil without xG data")
	}

	table := []dashboard.TableRow{
		{Team: "Arsenal", Points: 70, TotalShots: 400},
		{Team: "Chelsea", Points: 55, TotalShots: 350},
	}
	got := svc.Table(context.Background(), fixtureXGTeams(), table)
	if got == nil || len(*got) != 2 {
		t.Fatalf("unexpected rows: %+v", got)
	}

	first := (*got)[0]
	if first.Team != "Arsenal" {
		t.Fatalf("expected Arsenal first on xG difference, got %s", first.Team)
	}
	if first.XGDifference != 25.4 {
		t.Fatalf("xg_difference=%v, want 25.4", first.XGDifference)
	}
	if first.ActualPoints != 70 {
		t.Fatalf("actual_points=%d", first.ActualPoints)
	}
}

func TestXGVsActual(t *testing.T) {
	got := NewXGService().VsActual(context.Background(), fixtureXGTeams())
	if got == nil || len(*got) != 2 {
		t.Fatalf("unexpected rows: %+v", got)
	}
	arsenal := (*got)[0]
	if arsenal.Team != "Arsenal" || arsenal.Difference != 4.5 {
		t.Fatalf("unexpected row: %+v", arsenal)
	}
}

func TestShotQualitySkipsTeamsWithoutShots(t *testing.T) {
	table := []dashboard.TableRow{
		{Team: "Arsenal", TotalShots: 400},
		// Chelsea has no standings row; it must be skipped, not divided.
	}
	got := NewXGService().ShotQuality(context.Background(), fixtureXGTeams(), table)
	if got == nil || len(*got) != 1 {
		t.Fatalf("unexpected rows: %+v", got)
	}
	if (*got)[0].XGPerShot != 0.114 {
		t.Fatalf("xg_per_shot=%v, want 0.114", (*got)[0].XGPerShot)
	}
}

func TestXGTopScorers(t *testing.T) {
	players := []xg.PlayerRecord{
		{Name: "Erling Haaland", Team: "Manchester City", Goals: 22, XG: 18.4, XA: 2.1, Minutes: 1900},
		{Name: "Bukayo Saka", Team: "Arsenal", Goals: 10, XG: 11.8, Minutes: 1700},
		{Name: "No Goals", Team: "Chelsea", Goals: 0, XG: 1.0},
	}

	got := NewXGService().TopScorers(context.Background(), players)
	if got == nil || len(*got) != 2 {
		t.Fatalf("unexpected rows: %+v", got)
	}
	top := (*got)[0]
	if top.PlayerName != "Erling Haaland" || top.GoalsMinusXG != 3.6 {
		t.Fatalf("unexpected leader: %+v", top)
	}
	under := (*got)[1]
	if under.GoalsMinusXG != -1.8 {
		t.Fatalf("goals_minus_xg=%v, want -1.8", under.GoalsMinusXG)
	}
}
