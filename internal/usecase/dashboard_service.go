package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/matchpulse/matchpulse/internal/domain/dashboard"
	"github.com/matchpulse/matchpulse/internal/domain/match"
	"github.com/matchpulse/matchpulse/internal/domain/player"
	"github.com/matchpulse/matchpulse/internal/domain/xg"
	"github.com/matchpulse/matchpulse/internal/platform/logging"
	"github.com/matchpulse/matchpulse/internal/reconcile"
)

const defaultSectionWorkers = 4

// BuildInput carries the materialized datasets into assembly. Matches
// spans every configured season; the optional slices are nil when their
// source did not load, mirrored by the availability flags.
type BuildInput struct {
	Season       string
	Seasons      []string
	Source       string
	Matches      []match.Record
	Players      []player.Record
	XGTeams      []xg.TeamRecord
	XGPlayers    []xg.PlayerRecord
	Availability dashboard.Availability
}

// DashboardService composes the aggregator outputs into the one
// document the front end renders. Sections that do not feed each other
// run concurrently on a worker pool; each builder writes only its own
// document field, so the result is identical to a sequential build.
type DashboardService struct {
	standings    *StandingsService
	matchStats   *MatchStatsService
	leaderboards *LeaderboardService
	xgAnalytics  *XGService
	regression   *RegressionService
	logger       *logging.Logger
	now          func() time.Time
	workers      int
}

func NewDashboardService(
	standings *StandingsService,
	matchStats *MatchStatsService,
	leaderboards *LeaderboardService,
	xgAnalytics *XGService,
	regression *RegressionService,
	logger *logging.Logger,
) *DashboardService {
	if logger == nil {
		logger = logging.Default()
	}
	return &DashboardService{
		standings:    standings,
		matchStats:   matchStats,
		leaderboards: leaderboards,
		xgAnalytics:  xgAnalytics,
		regression:   regression,
		logger:       logger,
		now:          time.Now,
		workers:      defaultSectionWorkers,
	}
}

// WithWorkers sets the section pool size. Values below 1 are ignored.
func (s *DashboardService) WithWorkers(n int) *DashboardService {
	if n >= 1 {
		s.workers = n
	}
	return s
}

// Build assembles the full document for the current season. The match
// dataset is required; an empty current season is fatal rather than an
// empty document. Optional sections degrade to nil per the availability
// flags.
func (s *DashboardService) Build(ctx context.Context, in BuildInput) (dashboard.Document, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DashboardService.Build")
	defer span.End()

	current := match.BySeason(in.Matches, in.Season)
	if len(current) == 0 {
		return dashboard.Document{}, fmt.Errorf("season %s: %w", in.Season, ErrNoMatches)
	}

	players := in.Players
	if !in.Availability.HasFantasy {
		players = nil
	}
	xgTeams, xgPlayers := in.XGTeams, in.XGPlayers
	if !in.Availability.HasXG {
		xgTeams, xgPlayers = nil, nil
	}
	var matcher *reconcile.PlayerMatcher
	if len(xgPlayers) > 0 {
		matcher = reconcile.NewPlayerMatcher(xgPlayers)
	}

	totalGoals := 0
	for _, r := range current {
		totalGoals += r.TotalGoals
	}

	doc := dashboard.Document{
		GeneratedAt:  s.now().UTC().Format(time.RFC3339),
		Season:       in.Season,
		Source:       in.Source,
		TotalMatches: len(current),
		TotalGoals:   totalGoals,
	}
	doc.GoalsPerMatch = round2(float64(totalGoals) / float64(len(current)))

	// The league table feeds cross-source analytics and the regression,
	// so it is computed up front; everything else is independent.
	doc.LeagueTable = s.standings.BuildTable(ctx, current)

	pool, err := ants.NewPool(s.workers)
	if err != nil {
		return dashboard.Document{}, fmt.Errorf("create section worker pool: %w", err)
	}
	defer pool.Release()

	sections := []func(){
		func() { doc.SeasonStatus = s.matchStats.SeasonStatus(ctx, current) },
		func() { doc.CumulativePoints = s.standings.CumulativeSeries(ctx, current) },
		func() { doc.MonthlyTrends = s.matchStats.MonthlyTrends(ctx, current) },
		func() { doc.HomeAway = s.matchStats.HomeAwaySplit(ctx, current) },
		func() { doc.RefereeStats = s.matchStats.RefereeStats(ctx, current) },
		func() { doc.Scorelines = s.matchStats.ScorelineFrequency(ctx, current) },
		func() { doc.SeasonComparison = s.matchStats.SeasonComparison(ctx, in.Matches, in.Seasons) },
		func() { doc.XGTable = s.xgAnalytics.Table(ctx, xgTeams, doc.LeagueTable) },
		func() { doc.XGVsActual = s.xgAnalytics.VsActual(ctx, xgTeams) },
		func() { doc.ShotQuality = s.xgAnalytics.ShotQuality(ctx, xgTeams, doc.LeagueTable) },
		func() { doc.TopScorers = s.xgAnalytics.TopScorers(ctx, xgPlayers) },
		func() { doc.Boards = s.leaderboards.Build(ctx, players, matcher) },
		func() { doc.PlayerValue = s.leaderboards.PlayerValue(ctx, players) },
		func() { doc.MoneyVsPoints = s.regression.MoneyVsPoints(ctx, players, doc.LeagueTable) },
	}

	var wg sync.WaitGroup
	for _, build := range sections {
		build := build
		wg.Add(1)
		if err := pool.Submit(func() {
			defer wg.Done()
			build()
		}); err != nil {
			wg.Done()
			return dashboard.Document{}, fmt.Errorf("submit section to worker pool: %w", err)
		}
	}
	wg.Wait()

	s.logger.InfoContext(ctx, "dashboard document assembled",
		"season", in.Season,
		"matches", len(current),
		"has_fantasy", in.Availability.HasFantasy,
		"has_xg", in.Availability.HasXG,
	)
	return doc, nil
}
