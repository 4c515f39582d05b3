package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/matchpulse/matchpulse/internal/domain/dashboard"
	"github.com/matchpulse/matchpulse/internal/domain/match"
)

const (
	fullSeasonMatches   = 380
	fullSeasonMatchdays = 38
	refereeMinMatches   = 3
	scorelineTopN       = 10
)

// MatchStatsService covers the pure per-match aggregations: monthly
// trends, venue split, referee stats, scoreline frequency, season
// comparison and season progress.
type MatchStatsService struct{}

func NewMatchStatsService() *MatchStatsService {
	return &MatchStatsService{}
}

// SeasonStatus reports progress through the season. Matchdays played is
// the maximum fixtures any single team has completed; postponements
// leave teams on different counts.
func (s *MatchStatsService) SeasonStatus(ctx context.Context, records []match.Record) dashboard.SeasonStatus {
	_, span := startUsecaseSpan(ctx, "usecase.MatchStatsService.SeasonStatus")
	defer span.End()

	gamesPerTeam := make(map[string]int, 20)
	lastDate := ""
	for _, r := range records {
		gamesPerTeam[r.HomeTeam]++
		gamesPerTeam[r.AwayTeam]++
		if r.Date > lastDate {
			lastDate = r.Date
		}
	}
	matchdays := 0
	for _, n := range gamesPerTeam {
		if n > matchdays {
			matchdays = n
		}
	}

	return dashboard.SeasonStatus{
		MatchesPlayed:   len(records),
		MatchesTotal:    fullSeasonMatches,
		MatchdaysPlayed: matchdays,
		MatchdaysTotal:  fullSeasonMatchdays,
		IsComplete:      len(records) >= fullSeasonMatches,
		LastMatchDate:   lastDate,
	}
}

// MonthlyTrends groups matches by calendar month (the ISO date truncated
// to year-month) and reports counts, goals and outcome splits, months
// ascending.
func (s *MatchStatsService) MonthlyTrends(ctx context.Context, records []match.Record) []dashboard.MonthlyTrend {
	_, span := startUsecaseSpan(ctx, "usecase.MatchStatsService.MonthlyTrends")
	defer span.End()

	byMonth := make(map[string]*dashboard.MonthlyTrend, 10)
	for _, r := range records {
		if len(r.Date) < 7 {
			continue
		}
		month := r.Date[:7]
		trend, ok := byMonth[month]
		if !ok {
			trend = &dashboard.MonthlyTrend{Month: month}
			byMonth[month] = trend
		}
		trend.Matches++
		trend.TotalGoals += r.TotalGoals
		switch r.Result {
		case match.ResultHome:
			trend.HomeWins++
		case match.ResultDraw:
			trend.Draws++
		case match.ResultAway:
			trend.AwayWins++
		}
	}

	out := make([]dashboard.MonthlyTrend, 0, len(byMonth))
	for _, trend := range byMonth {
		if trend.Matches > 0 {
			trend.AvgGoals = round2(float64(trend.TotalGoals) / float64(trend.Matches))
		}
		out = append(out, *trend)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out
}

// HomeAwaySplit computes the league-wide venue advantage summary.
// Percentages divide by a floor of one match so an empty season cannot
// fault.
func (s *MatchStatsService) HomeAwaySplit(ctx context.Context, records []match.Record) dashboard.HomeAwaySplit {
	_, span := startUsecaseSpan(ctx, "usecase.MatchStatsService.HomeAwaySplit")
	defer span.End()

	split := dashboard.HomeAwaySplit{TotalMatches: len(records)}
	var homeGoals, awayGoals int
	for _, r := range records {
		switch r.Result {
		case match.ResultHome:
			split.HomeWins++
		case match.ResultDraw:
			split.Draws++
		case match.ResultAway:
			split.AwayWins++
		}
		homeGoals += r.HomeGoals
		awayGoals += r.AwayGoals
	}

	total := len(records)
	if total < 1 {
		total = 1
	}
	split.HomeGoalsAvg = round2(float64(homeGoals) / float64(total))
	split.AwayGoalsAvg = round2(float64(awayGoals) / float64(total))
	split.HomeWinPct = round2(float64(split.HomeWins) / float64(total) * 100)
	split.DrawPct = round2(float64(split.Draws) / float64(total) * 100)
	split.AwayWinPct = round2(float64(split.AwayWins) / float64(total) * 100)
	return split
}

// RefereeStats aggregates per official, excluding anyone with fewer than
// three matches; below that the averages are noise. Sorted by average
// cards descending, referee name breaking ties.
func (s *MatchStatsService) RefereeStats(ctx context.Context, records []match.Record) []dashboard.RefereeStat {
	_, span := startUsecaseSpan(ctx, "usecase.MatchStatsService.RefereeStats")
	defer span.End()

	type refTotals struct {
		matches int
		goals   int
		fouls   int
		cards   int
		reds    int
	}
	byRef := make(map[string]*refTotals, 24)
	for _, r := range records {
		name := strings.TrimSpace(r.Referee)
		if name == "" {
			continue
		}
		totals, ok := byRef[name]
		if !ok {
			totals = &refTotals{}
			byRef[name] = totals
		}
		totals.matches++
		totals.goals += r.TotalGoals
		totals.fouls += r.TotalFouls
		totals.cards += r.TotalCards
		totals.reds += r.HomeReds + r.AwayReds
	}

	out := make([]dashboard.RefereeStat, 0, len(byRef))
	for name, totals := range byRef {
		if totals.matches < refereeMinMatches {
			continue
		}
		n := float64(totals.matches)
		out = append(out, dashboard.RefereeStat{
			Referee:   name,
			Matches:   totals.matches,
			AvgGoals:  round2(float64(totals.goals) / n),
			AvgFouls:  round2(float64(totals.fouls) / n),
			AvgCards:  round2(float64(totals.cards) / n),
			TotalReds: totals.reds,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].AvgCards != out[j].AvgCards {
			return out[i].AvgCards > out[j].AvgCards
		}
		return out[i].Referee < out[j].Referee
	})
	return out
}

// ScorelineFrequency counts exact scorelines and keeps the ten most
// frequent, count descending, scoreline string breaking ties.
func (s *MatchStatsService) ScorelineFrequency(ctx context.Context, records []match.Record) []dashboard.ScorelineCount {
	_, span := startUsecaseSpan(ctx, "usecase.MatchStatsService.ScorelineFrequency")
	defer span.End()

	counts := make(map[string]int, 30)
	for _, r := range records {
		counts[fmt.Sprintf("%d-%d", r.HomeGoals, r.AwayGoals)]++
	}

	out := make([]dashboard.ScorelineCount, 0, len(counts))
	for score, count := range counts {
		out = append(out, dashboard.ScorelineCount{Score: score, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Score < out[j].Score
	})
	if len(out) > scorelineTopN {
		out = out[:scorelineTopN]
	}
	return out
}

// SeasonComparison summarizes every configured season with at least one
// match, in the given label order.
func (s *MatchStatsService) SeasonComparison(ctx context.Context, all []match.Record, seasons []string) []dashboard.SeasonComparison {
	_, span := startUsecaseSpan(ctx, "usecase.MatchStatsService.SeasonComparison")
	defer span.End()

	out := make([]dashboard.SeasonComparison, 0, len(seasons))
	for _, season := range seasons {
		records := match.BySeason(all, season)
		if len(records) == 0 {
			continue
		}
		var goals, cards, fouls, homeWins int
		for _, r := range records {
			goals += r.TotalGoals
			cards += r.TotalCards
			fouls += r.TotalFouls
			if r.Result == match.ResultHome {
				homeWins++
			}
		}
		n := float64(len(records))
		out = append(out, dashboard.SeasonComparison{
			Season:     season,
			Matches:    len(records),
			AvgGoals:   round2(float64(goals) / n),
			AvgCards:   round2(float64(cards) / n),
			HomeWinPct: round2(float64(homeWins) / n * 100),
			AvgFouls:   round2(float64(fouls) / n),
		})
	}
	return out
}
