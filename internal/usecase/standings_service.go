package usecase

import (
	"context"
	"sort"

	"github.com/matchpulse/matchpulse/internal/domain/dashboard"
	"github.com/matchpulse/matchpulse/internal/domain/match"
)

// StandingsService derives the league table and the per-team cumulative
// points series from one season's match records.
type StandingsService struct{}

func NewStandingsService() *StandingsService {
	return &StandingsService{}
}

// BuildTable aggregates every team's record, splitting wins, draws and
// losses by venue, and ranks the result. Tie-break order: points, goal
// difference, goals for, then team name ascending. The final key makes
// reruns deterministic where the source data leaves the order open.
func (s *StandingsService) BuildTable(ctx context.Context, records []match.Record) []dashboard.TableRow {
	_, span := startUsecaseSpan(ctx, "usecase.StandingsService.BuildTable")
	defer span.End()

	rows := make([]dashboard.TableRow, 0, 20)
	for _, team := range match.Teams(records) {
		rows = append(rows, buildTeamRow(records, team))
	}

	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.Points != b.Points {
			return a.Points > b.Points
		}
		if a.GoalDifference != b.GoalDifference {
			return a.GoalDifference > b.GoalDifference
		}
		if a.GoalsFor != b.GoalsFor {
			return a.GoalsFor > b.GoalsFor
		}
		return a.Team < b.Team
	})
	for i := range rows {
		rows[i].Position = i + 1
	}
	return rows
}

func buildTeamRow(records []match.Record, team string) dashboard.TableRow {
	row := dashboard.TableRow{Team: team}
	var goalsFor, goalsAgainst, shots, shotsOnTarget int

	for _, r := range records {
		switch team {
		case r.HomeTeam:
			switch r.Result {
			case match.ResultHome:
				row.HomeWon++
			case match.ResultDraw:
				row.HomeDrawn++
			case match.ResultAway:
				row.HomeLost++
			}
			goalsFor += r.HomeGoals
			goalsAgainst += r.AwayGoals
			shots += r.HomeShots
			shotsOnTarget += r.HomeShotsOnTarget
			if r.AwayGoals == 0 {
				row.CleanSheets++
			}
		case r.AwayTeam:
			switch r.Result {
			case match.ResultAway:
				row.AwayWon++
			case match.ResultDraw:
				row.AwayDrawn++
			case match.ResultHome:
				row.AwayLost++
			}
			goalsFor += r.AwayGoals
			goalsAgainst += r.HomeGoals
			shots += r.AwayShots
			shotsOnTarget += r.AwayShotsOnTarget
			if r.HomeGoals == 0 {
				row.CleanSheets++
			}
		}
	}

	row.Won = row.HomeWon + row.AwayWon
	row.Drawn = row.HomeDrawn + row.AwayDrawn
	row.Lost = row.HomeLost + row.AwayLost
	row.Played = row.Won + row.Drawn + row.Lost
	row.Points = row.Won*3 + row.Drawn
	row.GoalsFor = goalsFor
	row.GoalsAgainst = goalsAgainst
	row.GoalDifference = goalsFor - goalsAgainst
	row.TotalShots = shots
	row.TotalShotsOnTarget = shotsOnTarget
	if shots > 0 {
		row.ShotAccuracy = round2(float64(shotsOnTarget) / float64(shots) * 100)
	}
	if row.Played > 0 {
		row.GoalsPerGame = round2(float64(goalsFor) / float64(row.Played))
	}
	return row
}

// CumulativeSeries builds each team's points-race line: the team's
// fixtures ordered by date (match ID breaks same-day ties), mapped to
// 3/1/0 from that team's perspective and summed. The series is indexed
// by the team's Nth fixture, not a calendar round, so postponements do
// not desynchronize teams.
func (s *StandingsService) CumulativeSeries(ctx context.Context, records []match.Record) map[string][]dashboard.CumulativePoint {
	_, span := startUsecaseSpan(ctx, "usecase.StandingsService.CumulativeSeries")
	defer span.End()

	ordered := make([]match.Record, len(records))
	copy(ordered, records)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Date != ordered[j].Date {
			return ordered[i].Date < ordered[j].Date
		}
		return ordered[i].MatchID < ordered[j].MatchID
	})

	series := make(map[string][]dashboard.CumulativePoint, 20)
	for _, team := range match.Teams(records) {
		running := 0
		var line []dashboard.CumulativePoint
		for _, r := range ordered {
			pts, played := r.PointsFor(team)
			if !played {
				continue
			}
			running += pts
			line = append(line, dashboard.CumulativePoint{
				Matchday: len(line) + 1,
				Points:   running,
			})
		}
		series[team] = line
	}
	return series
}
