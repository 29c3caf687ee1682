package app

import (
	"fmt"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"

	"github.com/HawksMax1895/EA-CFB-Dynasty-Tracker/external/polls"
	"github.com/HawksMax1895/EA-CFB-Dynasty-Tracker/internal/config"
	"github.com/HawksMax1895/EA-CFB-Dynasty-Tracker/internal/domain/game"
	"github.com/HawksMax1895/EA-CFB-Dynasty-Tracker/internal/domain/player"
	"github.com/HawksMax1895/EA-CFB-Dynasty-Tracker/internal/domain/roster"
	"github.com/HawksMax1895/EA-CFB-Dynasty-Tracker/internal/domain/season"
	"github.com/HawksMax1895/EA-CFB-Dynasty-Tracker/internal/domain/team"
	"github.com/HawksMax1895/EA-CFB-Dynasty-Tracker/internal/infrastructure/repository/memory"
	"github.com/HawksMax1895/EA-CFB-Dynasty-Tracker/internal/infrastructure/repository/postgres"
	"github.com/HawksMax1895/EA-CFB-Dynasty-Tracker/internal/interfaces/httpapi"
	"github.com/HawksMax1895/EA-CFB-Dynasty-Tracker/internal/platform/cache"
	"github.com/HawksMax1895/EA-CFB-Dynasty-Tracker/internal/platform/logging"
	"github.com/HawksMax1895/EA-CFB-Dynasty-Tracker/internal/platform/resilience"
	"github.com/HawksMax1895/EA-CFB-Dynasty-Tracker/internal/usecase"
)

// NewHTTPServer wires repositories, services and the HTTP router. The
// returned cleanup closes the database pool when one was opened.
func NewHTTPServer(cfg config.Config, logger *logging.Logger) (*http.Server, func(), error) {
	if logger == nil {
		logger = logging.Default()
	}

	var (
		seasonRepo       season.Repository
		teamRepo         team.Repository
		playerRepo       player.Repository
		gameRepo         game.Repository
		rosterRepo       roster.Repository
		progressionStore usecase.ProgressionStore
	)
	cleanup := func() {}

	if cfg.DBURL != "" {
		db, err := openDB(cfg)
		if err != nil {
			return nil, nil, err
		}
		cleanup = func() { _ = db.Close() }

		seasonRepo = postgres.NewSeasonRepository(db)
		teamRepo = postgres.NewTeamRepository(db)
		playerRepo = postgres.NewPlayerRepository(db)
		gameRepo = postgres.NewGameRepository(db)
		rosterRepo = postgres.NewRosterRepository(db)
		progressionStore = postgres.NewProgressionStore(db)
	} else {
		logger.Info("DB_URL not set, using seeded in-memory repositories")

		players := memory.NewPlayerRepository(memory.SeedPlayers(), memory.SeedPlayerSeasons())
		rosterMem := memory.NewRosterRepository()
		seasonRepo = memory.NewSeasonRepository(memory.SeedSeasons())
		teamRepo = memory.NewTeamRepository(memory.SeedTeams(), memory.SeedConferences(), memory.SeedTeamSeasons())
		playerRepo = players
		gameRepo = memory.NewGameRepository(nil)
		rosterRepo = rosterMem
		progressionStore = memory.NewProgressionStore(players, rosterMem)
	}

	seasonSvc := usecase.NewSeasonService(seasonRepo, teamRepo)
	playerSvc := usecase.NewPlayerService(seasonRepo, playerRepo)
	playoffSvc := usecase.NewPlayoffService(seasonRepo, teamRepo, gameRepo)
	gameSvc := usecase.NewGameService(seasonRepo, teamRepo, gameRepo)
	progressionSvc := usecase.NewProgressionService(seasonRepo, playerRepo, rosterRepo, progressionStore)
	statsSvc := usecase.NewStatsService(seasonRepo, teamRepo, gameRepo)
	rosterSvc := usecase.NewRosterService(seasonRepo, teamRepo, rosterRepo)
	dashboardSvc := usecase.NewDashboardService(seasonRepo, teamRepo, playerRepo, rosterRepo)

	var pollProvider usecase.PollProvider
	if cfg.PollsEnabled {
		pollProvider = polls.NewClient(polls.ClientConfig{
			BaseURL:    cfg.PollsBaseURL,
			Timeout:    cfg.PollsTimeout,
			MaxRetries: cfg.PollsMaxRetries,
			Logger:     logger,
			CircuitBreaker: resilience.CircuitBreakerConfig{
				Enabled:          cfg.PollsCircuitEnabled,
				FailureThreshold: cfg.PollsCircuitFailureCount,
				OpenTimeout:      cfg.PollsCircuitOpenTimeout,
				HalfOpenMaxReq:   cfg.PollsCircuitHalfOpenMaxReq,
			},
		})
	}
	rankingsSvc := usecase.NewRankingsService(seasonRepo, teamRepo, pollProvider)

	var pollCache *cache.Store
	if cfg.CacheEnabled {
		pollCache = cache.NewStore(cfg.CacheTTL)
	}

	handler := httpapi.NewHandler(
		seasonSvc,
		playerSvc,
		playoffSvc,
		gameSvc,
		progressionSvc,
		statsSvc,
		rosterSvc,
		rankingsSvc,
		dashboardSvc,
		pollCache,
		logger,
	)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		cleanup()
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, cleanup, nil
}

func openDB(cfg config.Config) (*sqlx.DB, error) {
	dbURL := normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)

	db, err := otelsqlx.Connect("postgres", dbURL,
		otelsql.WithDBSystem("postgresql"),
		otelsql.WithDBName(dbNameFromURL(dbURL)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxIdleTime(5 * time.Minute)

	return db, nil
}
