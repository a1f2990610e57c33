package bootstrap

import (
	"context"
	"log/slog"
	"strings"

	marketplaceservice "perseval/contexts/community-experience/marketplace-service"
	marketplacepg "perseval/contexts/community-experience/marketplace-service/adapters/postgres"
	votingledger "perseval/contexts/community-experience/voting-ledger"
	votingpg "perseval/contexts/community-experience/voting-ledger/adapters/postgres"
	submissionservice "perseval/contexts/moderation-safety/submission-service"
	submissionpg "perseval/contexts/moderation-safety/submission-service/adapters/postgres"
	assessmentservice "perseval/contexts/trust-intelligence/assessment-service"
	"perseval/contexts/trust-intelligence/assessment-service/adapters/mistral"
	assessmentpg "perseval/contexts/trust-intelligence/assessment-service/adapters/postgres"
	"perseval/contexts/trust-intelligence/assessment-service/adapters/profileapi"
	"perseval/contexts/trust-intelligence/assessment-service/adapters/serper"
	"perseval/internal/platform/config"
	"perseval/internal/platform/db"
	"perseval/internal/platform/httpclient"
	"perseval/internal/platform/httpserver"
	"perseval/internal/platform/ratelimit"
)

// Package bootstrap is the composition root.
// Keep construction/wiring here so module code stays framework-agnostic.

type APIApp struct {
	server   *httpserver.Server
	postgres *db.Postgres
	logger   *slog.Logger
}

func BuildAPI() (*APIApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "api")
	upstream := httpclient.New(logger)
	mistralClient := mistral.NewClient(upstream, cfg.MistralAPIKey)
	serperClient := serper.NewClient(upstream, cfg.SerperAPIKey)
	profileClient := profileapi.NewClient(upstream, cfg.ProfileAPIURL)

	var (
		pg                *db.Postgres
		assessmentModule  assessmentservice.Module
		marketplaceModule marketplaceservice.Module
		votingModule      votingledger.Module
		submissionModule  submissionservice.Module
		counterStore      ratelimit.CounterStore
	)

	if strings.TrimSpace(cfg.PostgresDSN) != "" {
		pg, err = db.Connect(cfg.PostgresDSN)
		if err != nil {
			return nil, err
		}

		assessmentModule = assessmentservice.NewModule(assessmentservice.Dependencies{
			Cache:      assessmentpg.NewRepository(pg.DB, logger),
			Profiles:   profileClient,
			Classifier: mistralClient,
			Search:     serperClient,
			Judge:      mistralClient,
			Clock:      assessmentpg.SystemClock{},
			Logger:     logger,
		})

		marketplaceModule = marketplaceservice.NewModule(marketplaceservice.Dependencies{
			Repository: marketplacepg.NewRepository(pg.DB, logger),
			Clock:      marketplacepg.SystemClock{},
			IDGen:      marketplacepg.UUIDGenerator{},
			Logger:     logger,
		})

		votingRepo := votingpg.NewRepository(pg.DB, logger)
		votingModule = votingledger.NewModule(votingledger.Dependencies{
			Votes:       votingRepo,
			RateStore:   votingRepo,
			Aggregate:   votingRepo,
			Marketplace: marketplaceModule.Marketplace,
			Clock:       votingpg.SystemClock{},
			Logger:      logger,
		})

		submissionModule = submissionservice.NewModule(submissionservice.Dependencies{
			Repository:  submissionpg.NewRepository(pg.DB, logger),
			Pipeline:    analysisPipeline{trust: assessmentModule.Trust},
			Marketplace: marketplacePublisher{marketplace: marketplaceModule.Marketplace},
			Clock:       submissionpg.SystemClock{},
			IDGen:       submissionpg.UUIDGenerator{},
			Logger:      logger,
		})

		counterStore = ratelimit.NewPostgresStore(pg.DB, logger)
	} else {
		logger.Warn("POSTGRES_DSN not set; using in-memory stores",
			"event", "bootstrap_memory_fallback",
			"module", "internal/app/bootstrap",
			"layer", "platform",
		)

		assessmentModule = assessmentservice.NewInMemoryModule(
			profileClient, mistralClient, serperClient, mistralClient, logger,
		)
		marketplaceModule = marketplaceservice.NewInMemoryModule(nil, logger)
		votingModule = votingledger.NewInMemoryModule(marketplaceModule.Marketplace, logger)
		submissionModule = submissionservice.NewInMemoryModule(
			nil,
			analysisPipeline{trust: assessmentModule.Trust},
			marketplacePublisher{marketplace: marketplaceModule.Marketplace},
			logger,
		)
		counterStore = ratelimit.NewMemoryStore()
	}

	server := httpserver.New(
		assessmentModule,
		votingModule,
		submissionModule,
		marketplaceModule,
		ratelimit.NewLimiter(counterStore, cfg.RateLimitDailyLimit, logger),
		cfg.AdminAPIKey,
		logger,
		normalizeAddr(cfg.HTTPPort),
	)
	return &APIApp{
		server:   server,
		postgres: pg,
		logger:   logger,
	}, nil
}

func (a *APIApp) Run(_ context.Context) error {
	if a.logger != nil {
		a.logger.Info("api app started",
			"event", "bootstrap_api_started",
			"module", "internal/app/bootstrap",
			"layer", "platform",
		)
	}
	return a.server.Start()
}

func (a *APIApp) Close() error {
	if a.postgres != nil {
		return a.postgres.Close()
	}
	return nil
}

func normalizeAddr(port string) string {
	value := strings.TrimSpace(port)
	if value == "" {
		return ":8080"
	}
	if strings.HasPrefix(value, ":") {
		return value
	}
	return ":" + value
}
