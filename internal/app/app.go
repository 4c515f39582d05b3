package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sourcegraph/conc"

	"github.com/matchpulse/matchpulse/internal/config"
	"github.com/matchpulse/matchpulse/internal/domain/dashboard"
	"github.com/matchpulse/matchpulse/internal/domain/match"
	"github.com/matchpulse/matchpulse/internal/domain/player"
	"github.com/matchpulse/matchpulse/internal/domain/xg"
	"github.com/matchpulse/matchpulse/internal/infrastructure/ingest/footballdata"
	"github.com/matchpulse/matchpulse/internal/infrastructure/ingest/fpl"
	"github.com/matchpulse/matchpulse/internal/infrastructure/ingest/understat"
	"github.com/matchpulse/matchpulse/internal/infrastructure/repository/csvfile"
	"github.com/matchpulse/matchpulse/internal/infrastructure/repository/postgres"
	"github.com/matchpulse/matchpulse/internal/platform/cache"
	"github.com/matchpulse/matchpulse/internal/platform/logging"
	"github.com/matchpulse/matchpulse/internal/platform/resilience"
	"github.com/matchpulse/matchpulse/internal/reconcile"
	"github.com/matchpulse/matchpulse/internal/usecase"
)

const matchDataSource = "football-data.co.uk"

// Pipeline runs one end-to-end build: ingest every source, aggregate,
// and emit the dashboard document. Sources load concurrently; only the
// match dataset is required for the run to succeed.
type Pipeline struct {
	cfg    config.Config
	logger *logging.Logger

	matchRepo  match.Repository
	playerRepo player.Repository
	xgRepo     xg.Repository

	ingestor  *footballdata.Ingestor
	fantasy   *fpl.Client
	understat *understat.Client
}

func NewPipeline(cfg config.Config, logger *logging.Logger) *Pipeline {
	if logger == nil {
		logger = logging.Default()
	}

	breaker := resilience.CircuitBreakerConfig{
		Enabled:          cfg.SourceCircuitEnabled,
		FailureThreshold: cfg.SourceCircuitFailureCount,
		OpenTimeout:      cfg.SourceCircuitOpenTimeout,
		HalfOpenMaxReq:   cfg.SourceCircuitHalfOpenMaxReq,
	}

	matchClient := footballdata.NewClient(footballdata.ClientConfig{
		URLTemplate:    cfg.FootballDataURL,
		Timeout:        cfg.FetchTimeout,
		MaxRetries:     2,
		Logger:         logger,
		CircuitBreaker: breaker,
	})

	var pages *cache.Store
	if cfg.CacheEnabled {
		pages = cache.NewStore(cfg.CacheTTL)
	}

	return &Pipeline{
		cfg:    cfg,
		logger: logger,

		matchRepo: csvfile.NewMatchRepository(filepath.Join(cfg.CleanDir, "matches.csv")),
		playerRepo: csvfile.NewPlayerRepository(
			filepath.Join(cfg.CleanDir, "players.csv"),
		),
		xgRepo: csvfile.NewXGRepository(
			filepath.Join(cfg.CleanDir, "xg_teams.csv"),
			filepath.Join(cfg.CleanDir, "xg_players.csv"),
		),

		ingestor: footballdata.NewIngestor(
			matchClient,
			cfg.RawDir,
			reconcile.NewTeamMapper(config.FootballDataNameMap()),
			cfg.RequestDelay,
			logger,
		),
		fantasy: fpl.NewClient(fpl.ClientConfig{
			LiveAPIBase: cfg.FPLLiveAPI,
			ArchiveBase: cfg.FPLArchiveBase,
			Timeout:     cfg.FetchTimeout,
			Logger:      logger,
		}),
		understat: understat.NewClient(understat.ClientConfig{
			URLTemplate:    cfg.UnderstatURL,
			Timeout:        cfg.FetchTimeout,
			MaxRetries:     2,
			Logger:         logger,
			Pages:          pages,
			CircuitBreaker: breaker,
		}),
	}
}

// Run executes one pipeline pass and writes the document to
// cfg.OutputPath. Optional sources that fail to load degrade to null
// sections; a missing match dataset aborts the run.
func (p *Pipeline) Run(ctx context.Context) error {
	var (
		matches   []match.Record
		matchErr  error
		players   []player.Record
		xgTeams   []xg.TeamRecord
		xgPlayers []xg.PlayerRecord
		avail     dashboard.Availability
	)

	var wg conc.WaitGroup
	wg.Go(func() {
		matches, matchErr = p.loadMatches(ctx)
	})
	wg.Go(func() {
		players, avail.HasFantasy = p.loadPlayers(ctx)
	})
	wg.Go(func() {
		xgTeams, xgPlayers, avail.HasXG = p.loadXG(ctx)
	})
	wg.Wait()

	if matchErr != nil {
		return fmt.Errorf("load match dataset: %w", matchErr)
	}

	svc := usecase.NewDashboardService(
		usecase.NewStandingsService(),
		usecase.NewMatchStatsService(),
		usecase.NewLeaderboardService(),
		usecase.NewXGService(),
		usecase.NewRegressionService(),
		p.logger,
	).WithWorkers(p.cfg.SectionWorkers)

	doc, err := svc.Build(ctx, usecase.BuildInput{
		Season:       p.cfg.CurrentSeason,
		Seasons:      p.cfg.SeasonLabels(),
		Source:       matchDataSource,
		Matches:      matches,
		Players:      players,
		XGTeams:      xgTeams,
		XGPlayers:    xgPlayers,
		Availability: avail,
	})
	if err != nil {
		return err
	}

	raw, err := usecase.EncodeDocument(doc)
	if err != nil {
		return err
	}
	if err := writeDocument(p.cfg.OutputPath, raw); err != nil {
		return err
	}
	p.logger.InfoContext(ctx, "dashboard document written",
		"path", p.cfg.OutputPath,
		"bytes", len(raw),
	)

	if p.cfg.SnapshotDBEnabled {
		if err := p.persistSnapshot(ctx, raw); err != nil {
			return err
		}
	}
	return nil
}

// loadMatches ingests every configured season, falling back to the
// cleansed file from a previous run when fetching is disabled or fails.
func (p *Pipeline) loadMatches(ctx context.Context) ([]match.Record, error) {
	if p.cfg.FetchEnabled {
		records, err := p.ingestor.Ingest(ctx, matchSeasons(p.cfg.Seasons, p.cfg.CurrentSeason))
		if err == nil {
			if saveErr := p.matchRepo.SaveAll(ctx, records); saveErr != nil {
				p.logger.WarnContext(ctx, "could not persist cleansed matches", "error", saveErr)
			}
			return records, nil
		}
		p.logger.WarnContext(ctx, "match ingest failed, trying cleansed file", "error", err)
	}

	records, err := p.matchRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (p *Pipeline) loadPlayers(ctx context.Context) ([]player.Record, bool) {
	if !p.cfg.FPLEnabled {
		p.logger.Info("fantasy source disabled")
		return nil, false
	}

	teams := reconcile.NewTeamMapper(config.FPLNameMap())
	if p.cfg.FetchEnabled {
		var (
			records []player.Record
			err     error
		)
		if p.cfg.Current().FPLMode == config.FPLModeLive {
			records, err = p.fantasy.FetchLive(ctx, teams)
		} else {
			records, err = p.fantasy.FetchHistorical(ctx, p.cfg.CurrentSeason, teams)
		}
		if err == nil {
			if saveErr := p.playerRepo.SaveAll(ctx, records); saveErr != nil {
				p.logger.WarnContext(ctx, "could not persist fantasy players", "error", saveErr)
			}
			return records, len(records) > 0
		}
		p.logger.WarnContext(ctx, "fantasy fetch failed, trying cached file", "error", err)
	}

	records, err := p.playerRepo.ListAll(ctx)
	if err != nil {
		p.logger.WarnContext(ctx, "fantasy dataset unavailable", "error", err)
		return nil, false
	}
	return records, len(records) > 0
}

func (p *Pipeline) loadXG(ctx context.Context) ([]xg.TeamRecord, []xg.PlayerRecord, bool) {
	if !p.cfg.UnderstatEnabled {
		p.logger.Info("xg source disabled")
		return nil, nil, false
	}

	if p.cfg.FetchEnabled {
		teams, players, err := p.understat.FetchSeason(ctx, p.cfg.Current().UnderstatYear, reconcile.NewTeamMapper(config.UnderstatNameMap()))
		if err == nil {
			if saveErr := p.xgRepo.SaveTeams(ctx, teams); saveErr != nil {
				p.logger.WarnContext(ctx, "could not persist xg teams", "error", saveErr)
			}
			if saveErr := p.xgRepo.SavePlayers(ctx, players); saveErr != nil {
				p.logger.WarnContext(ctx, "could not persist xg players", "error", saveErr)
			}
			return teams, players, len(teams) > 0
		}
		p.logger.WarnContext(ctx, "xg fetch failed, trying cached files", "error", err)
	}

	teams, err := p.xgRepo.ListTeams(ctx)
	if err != nil {
		p.logger.WarnContext(ctx, "xg dataset unavailable", "error", err)
		return nil, nil, false
	}
	players, err := p.xgRepo.ListPlayers(ctx)
	if err != nil {
		p.logger.WarnContext(ctx, "xg player dataset unavailable", "error", err)
		players = nil
	}
	return teams, players, len(teams) > 0
}

func (p *Pipeline) persistSnapshot(ctx context.Context, document []byte) error {
	dbURL := normalizeDBURL(p.cfg.DBURL, p.cfg.DBDisablePreparedBinary)
	db, err := postgres.Connect(ctx, dbURL)
	if err != nil {
		return err
	}
	defer db.Close()

	repo := postgres.NewSnapshotRepository(db)
	if err := repo.Upsert(ctx, p.cfg.CurrentSeason, document); err != nil {
		return err
	}
	p.logger.InfoContext(ctx, "snapshot stored",
		"season", p.cfg.CurrentSeason,
		"database", dbNameFromURL(p.cfg.DBURL),
	)
	return nil
}

func matchSeasons(seasons []config.Season, current string) []footballdata.SeasonSource {
	out := make([]footballdata.SeasonSource, 0, len(seasons))
	for _, s := range seasons {
		out = append(out, footballdata.SeasonSource{
			Label: s.Label,
			Code:  s.Code,
			Live:  s.Label == current,
		})
	}
	return out
}

func writeDocument(path string, raw []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("write document: %w", err)
	}
	return nil
}
