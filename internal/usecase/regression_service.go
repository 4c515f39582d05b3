package usecase

import (
	"context"
	"sort"

	"github.com/matchpulse/matchpulse/internal/domain/dashboard"
	"github.com/matchpulse/matchpulse/internal/domain/player"
)

// RegressionService answers the dashboard's core thesis: does squad
// spending predict league position? Squad value is the sum of fantasy
// prices per team; points regress on value with a plain OLS fit.
type RegressionService struct{}

func NewRegressionService() *RegressionService {
	return &RegressionService{}
}

// MoneyVsPoints fits points = slope*value + intercept across all teams
// and ranks teams by over/under-performance against the fitted line.
// Returns nil when the fantasy source is absent or no team overlaps the
// standings. Zero variance (a single team, or identical squad values)
// degrades slope and R² to 0 instead of dividing.
func (s *RegressionService) MoneyVsPoints(ctx context.Context, players []player.Record, table []dashboard.TableRow) *dashboard.MoneyVsPoints {
	_, span := startUsecaseSpan(ctx, "usecase.RegressionService.MoneyVsPoints")
	defer span.End()

	if len(players) == 0 {
		return nil
	}

	squadValues := make(map[string]float64, 20)
	for _, p := range players {
		squadValues[p.Team] += p.Price
	}

	tableByTeam := make(map[string]dashboard.TableRow, len(table))
	for _, row := range table {
		tableByTeam[row.Team] = row
	}

	teams := make([]string, 0, len(squadValues))
	for team := range squadValues {
		if _, ok := tableByTeam[team]; ok {
			teams = append(teams, team)
		}
	}
	if len(teams) == 0 {
		return nil
	}
	sort.Strings(teams)

	rows := make([]dashboard.MoneyTeamRow, 0, len(teams))
	for _, team := range teams {
		tr := tableByTeam[team]
		row := dashboard.MoneyTeamRow{
			Team:       team,
			SquadValue: round1(squadValues[team]),
			Points:     tr.Points,
			Played:     tr.Played,
		}
		if tr.Played > 0 {
			row.PointsPerMatch = round2(float64(tr.Points) / float64(tr.Played))
		}
		rows = append(rows, row)
	}

	slope, intercept, rSquared := fitLine(rows)
	for i := range rows {
		expected := slope*rows[i].SquadValue + intercept
		rows[i].ExpectedPoints = round2(expected)
		rows[i].OverUnder = round2(float64(rows[i].Points) - expected)
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].OverUnder != rows[j].OverUnder {
			return rows[i].OverUnder > rows[j].OverUnder
		}
		return rows[i].Team < rows[j].Team
	})

	return &dashboard.MoneyVsPoints{
		Teams: rows,
		Regression: dashboard.Regression{
			Slope:     round4(slope),
			Intercept: round2(intercept),
			RSquared:  round3(rSquared),
		},
	}
}

// fitLine computes the OLS slope, intercept and R² of points on squad
// value: slope = cov/var, intercept = mean(points) - slope*mean(value),
// R² = cov² / (var_x * var_y).
func fitLine(rows []dashboard.MoneyTeamRow) (slope, intercept, rSquared float64) {
	n := float64(len(rows))
	var meanValue, meanPoints float64
	for _, r := range rows {
		meanValue += r.SquadValue
		meanPoints += float64(r.Points)
	}
	meanValue /= n
	meanPoints /= n

	var cov, varValue, varPoints float64
	for _, r := range rows {
		dv := r.SquadValue - meanValue
		dp := float64(r.Points) - meanPoints
		cov += dv * dp
		varValue += dv * dv
		varPoints += dp * dp
	}

	if varValue > 0 {
		slope = cov / varValue
	}
	intercept = meanPoints - slope*meanValue
	if varValue > 0 && varPoints > 0 {
		rSquared = cov * cov / (varValue * varPoints)
	}
	return slope, intercept, rSquared
}
