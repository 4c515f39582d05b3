package usecase

import (
	"context"
	"sort"

	"github.com/matchpulse/matchpulse/internal/domain/dashboard"
	"github.com/matchpulse/matchpulse/internal/domain/xg"
)

const xgTopScorersTopN = 10

// XGService builds the cross-source analytics: expected-vs-actual team
// comparisons, shot quality and the xG-source scorer list. Every method
// returns nil when the xG source did not load.
type XGService struct{}

func NewXGService() *XGService {
	return &XGService{}
}

// Table compares each team's expected and actual goals, attaching the
// points already computed by the standings engine. Sorted by xG
// difference descending, team name breaking ties.
func (s *XGService) Table(ctx context.Context, teams []xg.TeamRecord, table []dashboard.TableRow) *[]dashboard.XGTableRow {
	_, span := startUsecaseSpan(ctx, "usecase.XGService.Table")
	defer span.End()

	if len(teams) == 0 {
		return nil
	}

	pointsByTeam := make(map[string]int, len(table))
	for _, row := range table {
		pointsByTeam[row.Team] = row.Points
	}

	rows := make([]dashboard.XGTableRow, 0, len(teams))
	for _, t := range teams {
		rows = append(rows, dashboard.XGTableRow{
			Team:         t.Team,
			XGFor:        round2(t.XGFor),
			XGAgainst:    round2(t.XGAgainst),
			GoalsFor:     t.GoalsFor,
			GoalsAgainst: t.GoalsAgainst,
			XGDifference: round2(t.XGFor - t.XGAgainst),
			ActualPoints: pointsByTeam[t.Team],
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].XGDifference != rows[j].XGDifference {
			return rows[i].XGDifference > rows[j].XGDifference
		}
		return rows[i].Team < rows[j].Team
	})
	return &rows
}

// VsActual reports each team's total xG against the goals it actually
// scored, in team-name order.
func (s *XGService) VsActual(ctx context.Context, teams []xg.TeamRecord) *[]dashboard.XGScatterPoint {
	_, span := startUsecaseSpan(ctx, "usecase.XGService.VsActual")
	defer span.End()

	if len(teams) == 0 {
		return nil
	}

	rows := make([]dashboard.XGScatterPoint, 0, len(teams))
	for _, t := range teams {
		rows = append(rows, dashboard.XGScatterPoint{
			Team:        t.Team,
			TotalXG:     round2(t.XGFor),
			ActualGoals: t.GoalsFor,
			Difference:  round2(float64(t.GoalsFor) - t.XGFor),
		})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Team < rows[j].Team })
	return &rows
}

// ShotQuality divides a team's total xG by its shot count from the
// standings row. Teams without a standings row or with zero shots are
// skipped rather than divided. Three decimals by design; see
// dashboard.ShotQualityRow.
func (s *XGService) ShotQuality(ctx context.Context, teams []xg.TeamRecord, table []dashboard.TableRow) *[]dashboard.ShotQualityRow {
	_, span := startUsecaseSpan(ctx, "usecase.XGService.ShotQuality")
	defer span.End()

	if len(teams) == 0 {
		return nil
	}

	shotsByTeam := make(map[string]int, len(table))
	for _, row := range table {
		shotsByTeam[row.Team] = row.TotalShots
	}

	rows := make([]dashboard.ShotQualityRow, 0, len(teams))
	for _, t := range teams {
		shots := shotsByTeam[t.Team]
		if shots <= 0 {
			continue
		}
		rows = append(rows, dashboard.ShotQualityRow{
			Team:       t.Team,
			TotalShots: shots,
			XGPerShot:  round3(t.XGFor / float64(shots)),
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].XGPerShot != rows[j].XGPerShot {
			return rows[i].XGPerShot > rows[j].XGPerShot
		}
		return rows[i].Team < rows[j].Team
	})
	return &rows
}

// TopScorers lists the xG source's scorers with goals-minus-xG as the
// over/under-performance signal. Goals descending, name breaking ties.
func (s *XGService) TopScorers(ctx context.Context, players []xg.PlayerRecord) *[]dashboard.TopScorer {
	_, span := startUsecaseSpan(ctx, "usecase.XGService.TopScorers")
	defer span.End()

	if len(players) == 0 {
		return nil
	}

	scorers := make([]xg.PlayerRecord, 0, xgTopScorersTopN)
	for _, p := range players {
		if p.Name != "" && p.Goals > 0 {
			scorers = append(scorers, p)
		}
	}
	sort.Slice(scorers, func(i, j int) bool {
		if scorers[i].Goals != scorers[j].Goals {
			return scorers[i].Goals > scorers[j].Goals
		}
		return scorers[i].Name < scorers[j].Name
	})
	if len(scorers) > xgTopScorersTopN {
		scorers = scorers[:xgTopScorersTopN]
	}

	rows := make([]dashboard.TopScorer, 0, len(scorers))
	for _, p := range scorers {
		rows = append(rows, dashboard.TopScorer{
			PlayerName:   p.Name,
			Team:         p.Team,
			Goals:        p.Goals,
			Assists:      p.Assists,
			XG:           round2(p.XG),
			XA:           round2(p.XA),
			Minutes:      p.Minutes,
			GoalsMinusXG: round2(float64(p.Goals) - p.XG),
			Position:     p.Position,
		})
	}
	return &rows
}
