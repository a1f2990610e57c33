package votingledger

import (
	"log/slog"

	httpadapter "perseval/contexts/community-experience/voting-ledger/adapters/http"
	"perseval/contexts/community-experience/voting-ledger/adapters/memory"
	"perseval/contexts/community-experience/voting-ledger/application/commands"
	"perseval/contexts/community-experience/voting-ledger/application/queries"
	"perseval/contexts/community-experience/voting-ledger/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Store   *memory.Store
}

type Dependencies struct {
	Votes       ports.VoteRepository
	RateStore   ports.VoteRateStore
	Aggregate   ports.VoteScoreAggregate
	Marketplace ports.MarketplaceSync
	Clock       ports.Clock
	Logger      *slog.Logger
}

func NewModule(deps Dependencies) Module {
	voteUseCase := commands.VoteUseCase{
		Votes:       deps.Votes,
		RateStore:   deps.RateStore,
		Aggregate:   deps.Aggregate,
		Marketplace: deps.Marketplace,
		Clock:       deps.Clock,
		Logger:      deps.Logger,
	}
	statsUseCase := queries.StatsUseCase{
		Votes:     deps.Votes,
		Aggregate: deps.Aggregate,
		Logger:    deps.Logger,
	}

	return Module{
		Handler: httpadapter.Handler{
			Votes:  voteUseCase,
			Stats:  statsUseCase,
			Logger: deps.Logger,
		},
	}
}

func NewInMemoryModule(marketplace ports.MarketplaceSync, logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Votes:       store,
		RateStore:   store,
		Aggregate:   store,
		Marketplace: marketplace,
		Clock:       store,
		Logger:      logger,
	})
	module.Store = store
	return module
}
