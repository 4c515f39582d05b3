package usecase

import (
	"context"
	"sort"

	"github.com/matchpulse/matchpulse/internal/domain/dashboard"
	"github.com/matchpulse/matchpulse/internal/domain/player"
	"github.com/matchpulse/matchpulse/internal/reconcile"
)

const (
	scorersTopN      = 20
	assistersTopN    = 15
	bestValueTopN    = 15
	disciplinaryTopN = 10
	playerValueTopN  = 10

	// Below 450 minutes a value ranking rewards cameo appearances;
	// below 90 a per-90 rate extrapolates a single half.
	bestValueMinMinutes = 450
	per90MinMinutes     = 90
)

// LeaderboardService derives the fantasy player boards, enriching rows
// with reconciled xG data when the xG source loaded.
type LeaderboardService struct{}

func NewLeaderboardService() *LeaderboardService {
	return &LeaderboardService{}
}

// per90 extrapolates a count to a per-90-minute rate, defined as 0 for
// players below the minimum sample.
func per90(stat, minutes int) float64 {
	if minutes < per90MinMinutes {
		return 0
	}
	return round2(float64(stat) / float64(minutes) * 90)
}

// Build assembles all six boards. Returns nil when the fantasy source is
// absent, so the whole section serializes as null. A nil matcher (xG
// source absent) leaves the xG fields null but still builds the boards
// from fantasy data alone.
func (s *LeaderboardService) Build(ctx context.Context, players []player.Record, matcher *reconcile.PlayerMatcher) *dashboard.Leaderboards {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeaderboardService.Build")
	defer span.End()

	if len(players) == 0 {
		return nil
	}

	return &dashboard.Leaderboards{
		GoalScorers:     s.goalScorers(players, matcher),
		AssistLeaders:   s.assistLeaders(players, matcher),
		IronMen:         s.ironMen(players),
		GoalsByPosition: s.goalsByPosition(players),
		BestValue:       s.bestValue(players),
		MostCards:       s.mostCards(players),
	}
}

func enrich(matcher *reconcile.PlayerMatcher, p player.Record) (reconcile.Enrichment, bool) {
	if matcher == nil {
		return reconcile.Enrichment{}, false
	}
	return matcher.Match(reconcile.Query{Name: p.Name, FullName: p.FullName, Team: p.Team})
}

func (s *LeaderboardService) goalScorers(players []player.Record, matcher *reconcile.PlayerMatcher) []dashboard.GoalScorerRow {
	scorers := filterSorted(players,
		func(p player.Record) bool { return p.Goals > 0 },
		func(a, b player.Record) bool { return a.Goals > b.Goals },
		scorersTopN)

	rows := make([]dashboard.GoalScorerRow, 0, len(scorers))
	for _, p := range scorers {
		row := dashboard.GoalScorerRow{
			Rank:       len(rows) + 1,
			PlayerName: p.Name,
			Team:       p.Team,
			Position:   p.Position,
			Goals:      p.Goals,
			Assists:    p.Assists,
			Minutes:    p.Minutes,
			GoalsPer90: per90(p.Goals, p.Minutes),
			Price:      round1(p.Price),
		}
		if e, ok := enrich(matcher, p); ok {
			xgVal, shots := e.XG, e.Shots
			row.XG = &xgVal
			row.Shots = &shots
		}
		rows = append(rows, row)
	}
	return rows
}

func (s *LeaderboardService) assistLeaders(players []player.Record, matcher *reconcile.PlayerMatcher) []dashboard.AssistLeaderRow {
	assisters := filterSorted(players,
		func(p player.Record) bool { return p.Assists > 0 },
		func(a, b player.Record) bool { return a.Assists > b.Assists },
		assistersTopN)

	rows := make([]dashboard.AssistLeaderRow, 0, len(assisters))
	for _, p := range assisters {
		row := dashboard.AssistLeaderRow{
			Rank:         len(rows) + 1,
			PlayerName:   p.Name,
			Team:         p.Team,
			Position:     p.Position,
			Assists:      p.Assists,
			Goals:        p.Goals,
			Minutes:      p.Minutes,
			AssistsPer90: per90(p.Assists, p.Minutes),
			Price:        round1(p.Price),
		}
		if e, ok := enrich(matcher, p); ok {
			xaVal, keyPasses := e.XA, e.KeyPasses
			row.XA = &xaVal
			row.KeyPasses = &keyPasses
		}
		rows = append(rows, row)
	}
	return rows
}

// ironMen picks each team's most-used player, then ranks league-wide by
// minutes.
func (s *LeaderboardService) ironMen(players []player.Record) []dashboard.IronManRow {
	topByTeam := make(map[string]player.Record, 20)
	for _, p := range players {
		best, ok := topByTeam[p.Team]
		if !ok || p.Minutes > best.Minutes || (p.Minutes == best.Minutes && p.Name < best.Name) {
			topByTeam[p.Team] = p
		}
	}

	rows := make([]dashboard.IronManRow, 0, len(topByTeam))
	for _, p := range topByTeam {
		rows = append(rows, dashboard.IronManRow{
			PlayerName:      p.Name,
			Team:            p.Team,
			Position:        p.Position,
			Minutes:         p.Minutes,
			GamesEquivalent: round1(float64(p.Minutes) / 90),
			Goals:           p.Goals,
			Assists:         p.Assists,
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Minutes != rows[j].Minutes {
			return rows[i].Minutes > rows[j].Minutes
		}
		return rows[i].Team < rows[j].Team
	})
	return rows
}

func (s *LeaderboardService) goalsByPosition(players []player.Record) []dashboard.PositionAggregate {
	rows := make([]dashboard.PositionAggregate, 0, len(player.Positions))
	for _, pos := range player.Positions {
		agg := dashboard.PositionAggregate{Position: pos}
		for _, p := range players {
			if p.Position != pos {
				continue
			}
			agg.TotalGoals += p.Goals
			agg.TotalAssists += p.Assists
			if p.Minutes > 0 {
				agg.PlayerCount++
			}
		}
		if agg.PlayerCount > 0 {
			agg.AvgGoals = round2(float64(agg.TotalGoals) / float64(agg.PlayerCount))
		}
		rows = append(rows, agg)
	}
	return rows
}

func (s *LeaderboardService) bestValue(players []player.Record) []dashboard.BestValueRow {
	type valued struct {
		p            player.Record
		gaPerMillion float64
	}
	candidates := make([]valued, 0, 64)
	for _, p := range players {
		if p.Minutes < bestValueMinMinutes || p.Price <= 0 {
			continue
		}
		candidates = append(candidates, valued{
			p:            p,
			gaPerMillion: round2(float64(p.Goals+p.Assists) / p.Price),
		})
	}
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].gaPerMillion != candidates[j].gaPerMillion {
			return candidates[i].gaPerMillion > candidates[j].gaPerMillion
		}
		return candidates[i].p.Name < candidates[j].p.Name
	})
	if len(candidates) > bestValueTopN {
		candidates = candidates[:bestValueTopN]
	}

	rows := make([]dashboard.BestValueRow, 0, len(candidates))
	for _, c := range candidates {
		rows = append(rows, dashboard.BestValueRow{
			Rank:         len(rows) + 1,
			PlayerName:   c.p.Name,
			Team:         c.p.Team,
			Position:     c.p.Position,
			Price:        round1(c.p.Price),
			Goals:        c.p.Goals,
			Assists:      c.p.Assists,
			GAPerMillion: c.gaPerMillion,
			Minutes:      c.p.Minutes,
		})
	}
	return rows
}

func (s *LeaderboardService) mostCards(players []player.Record) []dashboard.DisciplinaryRow {
	carded := filterSorted(players,
		func(p player.Record) bool { return p.TotalCards() > 0 },
		func(a, b player.Record) bool { return a.TotalCards() > b.TotalCards() },
		disciplinaryTopN)

	rows := make([]dashboard.DisciplinaryRow, 0, len(carded))
	for _, p := range carded {
		rows = append(rows, dashboard.DisciplinaryRow{
			PlayerName: p.Name,
			Team:       p.Team,
			Position:   p.Position,
			Yellows:    p.YellowCards,
			Reds:       p.RedCards,
			TotalCards: p.TotalCards(),
			Minutes:    p.Minutes,
		})
	}
	return rows
}

// PlayerValue ranks scorers by goals per million of price; a standalone
// section kept separate from the best-value board because it predates
// it in the dashboard schema.
func (s *LeaderboardService) PlayerValue(ctx context.Context, players []player.Record) *[]dashboard.PlayerValueRow {
	_, span := startUsecaseSpan(ctx, "usecase.LeaderboardService.PlayerValue")
	defer span.End()

	if len(players) == 0 {
		return nil
	}

	type valued struct {
		p               player.Record
		goalsPerMillion float64
	}
	candidates := make([]valued, 0, 32)
	for _, p := range players {
		if p.Goals <= 0 || p.Price <= 0 {
			continue
		}
		candidates = append(candidates, valued{
			p:               p,
			goalsPerMillion: round2(float64(p.Goals) / p.Price),
		})
	}
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].goalsPerMillion != candidates[j].goalsPerMillion {
			return candidates[i].goalsPerMillion > candidates[j].goalsPerMillion
		}
		return candidates[i].p.Name < candidates[j].p.Name
	})
	if len(candidates) > playerValueTopN {
		candidates = candidates[:playerValueTopN]
	}

	rows := make([]dashboard.PlayerValueRow, 0, len(candidates))
	for _, c := range candidates {
		rows = append(rows, dashboard.PlayerValueRow{
			PlayerName:      c.p.Name,
			Team:            c.p.Team,
			Price:           round1(c.p.Price),
			Goals:           c.p.Goals,
			GoalsPerMillion: c.goalsPerMillion,
		})
	}
	return &rows
}

// filterSorted keeps the records passing keep, orders them by less with
// player name as the deterministic tie-break, and truncates to limit.
func filterSorted(players []player.Record, keep func(player.Record) bool, less func(a, b player.Record) bool, limit int) []player.Record {
	out := make([]player.Record, 0, limit)
	for _, p := range players {
		if keep(p) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if less(out[i], out[j]) {
			return true
		}
		if less(out[j], out[i]) {
			return false
		}
		return out[i].Name < out[j].Name
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}
