// Package submissionservice implements the crowdsourced candidate workflow
// inside the moderation-safety context.
//
// Submissions move pending -> analyzing -> pending -> {approved | rejected}.
// The module owns creation limits and duplicate checks, analysis orchestration
// through an injected pipeline port, and admin review with best-effort
// marketplace publication.
package submissionservice

import (
	"log/slog"

	httpadapter "perseval/contexts/moderation-safety/submission-service/adapters/http"
	"perseval/contexts/moderation-safety/submission-service/adapters/memory"
	"perseval/contexts/moderation-safety/submission-service/application/commands"
	"perseval/contexts/moderation-safety/submission-service/application/queries"
	"perseval/contexts/moderation-safety/submission-service/domain/entities"
	"perseval/contexts/moderation-safety/submission-service/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Store   *memory.Store
}

type Dependencies struct {
	Repository  ports.Repository
	Pipeline    ports.AnalysisPipeline
	Marketplace ports.MarketplacePublisher
	Clock       ports.Clock
	IDGen       ports.IDGenerator
	Logger      *slog.Logger
}

func NewModule(deps Dependencies) Module {
	createSubmission := commands.CreateSubmissionUseCase{
		Repository: deps.Repository,
		Clock:      deps.Clock,
		IDGen:      deps.IDGen,
		Logger:     deps.Logger,
	}
	triggerAnalysis := commands.TriggerAnalysisUseCase{
		Repository: deps.Repository,
		Pipeline:   deps.Pipeline,
		Clock:      deps.Clock,
		Logger:     deps.Logger,
	}
	reviewSubmission := commands.ReviewSubmissionUseCase{
		Repository:  deps.Repository,
		Marketplace: deps.Marketplace,
		Clock:       deps.Clock,
		Logger:      deps.Logger,
	}
	queryUseCase := queries.QueryUseCase{
		Repository: deps.Repository,
		Logger:     deps.Logger,
	}

	return Module{
		Handler: httpadapter.Handler{
			CreateSubmission: createSubmission,
			TriggerAnalysis:  triggerAnalysis,
			ReviewSubmission: reviewSubmission,
			Queries:          queryUseCase,
			Logger:           deps.Logger,
		},
	}
}

func NewInMemoryModule(
	seed []entities.Submission,
	pipeline ports.AnalysisPipeline,
	marketplace ports.MarketplacePublisher,
	logger *slog.Logger,
) Module {
	store := memory.NewStore(seed)
	module := NewModule(Dependencies{
		Repository:  store,
		Pipeline:    pipeline,
		Marketplace: marketplace,
		Clock:       store,
		IDGen:       store,
		Logger:      logger,
	})
	module.Store = store
	return module
}
