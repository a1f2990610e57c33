// Package assessmentservice computes composite trust assessments inside the
// trust-intelligence context.
//
// The module owns the scoring pipeline (profile signals, message-history
// classification, web reputation, disclosure behavior), the shared TTL cache
// of computed assessments, and the collaborator contracts it consumes. It
// keeps business rules in application/domain layers and isolates
// infrastructure concerns behind ports and adapters.
package assessmentservice

import (
	"log/slog"

	httpadapter "perseval/contexts/trust-intelligence/assessment-service/adapters/http"
	"perseval/contexts/trust-intelligence/assessment-service/adapters/memory"
	"perseval/contexts/trust-intelligence/assessment-service/application/commands"
	"perseval/contexts/trust-intelligence/assessment-service/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Trust   commands.TrustUseCase
	Cache   *memory.Store
}

type Dependencies struct {
	Cache      ports.AssessmentCache
	Profiles   ports.ProfileProvider
	Classifier ports.Classifier
	Search     ports.SearchProvider
	Judge      ports.ReputationJudge
	Clock      ports.Clock
	Logger     *slog.Logger
}

func NewModule(deps Dependencies) Module {
	trustUseCase := commands.TrustUseCase{
		Cache:      deps.Cache,
		Profiles:   deps.Profiles,
		Classifier: deps.Classifier,
		Search:     deps.Search,
		Judge:      deps.Judge,
		Clock:      deps.Clock,
		Logger:     deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{
			Trust:  trustUseCase,
			Logger: deps.Logger,
		},
		Trust: trustUseCase,
	}
}

// NewInMemoryModule wires the trust use case against the in-memory cache.
// Collaborators stay injectable so tests can substitute fakes for the
// external classifier, search, and profile providers.
func NewInMemoryModule(
	profiles ports.ProfileProvider,
	classifier ports.Classifier,
	search ports.SearchProvider,
	judge ports.ReputationJudge,
	logger *slog.Logger,
) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Cache:      store,
		Profiles:   profiles,
		Classifier: classifier,
		Search:     search,
		Judge:      judge,
		Clock:      store,
		Logger:     logger,
	})
	module.Cache = store
	return module
}
