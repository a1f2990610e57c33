// Package marketplaceservice owns published influencer listings inside the
// community-experience context. Listings are created by submission approval,
// refreshed by vote stat sync, and browsed through the public catalog.
package marketplaceservice

import (
	"log/slog"

	httpadapter "perseval/contexts/community-experience/marketplace-service/adapters/http"
	"perseval/contexts/community-experience/marketplace-service/adapters/memory"
	"perseval/contexts/community-experience/marketplace-service/application/commands"
	"perseval/contexts/community-experience/marketplace-service/application/queries"
	"perseval/contexts/community-experience/marketplace-service/domain/entities"
	"perseval/contexts/community-experience/marketplace-service/ports"
)

type Module struct {
	Handler     httpadapter.Handler
	Marketplace commands.MarketplaceUseCase
	Store       *memory.Store
}

type Dependencies struct {
	Repository ports.Repository
	Clock      ports.Clock
	IDGen      ports.IDGenerator
	Logger     *slog.Logger
}

func NewModule(deps Dependencies) Module {
	marketplaceUseCase := commands.MarketplaceUseCase{
		Repository: deps.Repository,
		Clock:      deps.Clock,
		IDGen:      deps.IDGen,
		Logger:     deps.Logger,
	}
	queryUseCase := queries.QueryUseCase{
		Repository: deps.Repository,
		Logger:     deps.Logger,
	}

	return Module{
		Handler: httpadapter.Handler{
			Marketplace: marketplaceUseCase,
			Queries:     queryUseCase,
			Logger:      deps.Logger,
		},
		Marketplace: marketplaceUseCase,
	}
}

func NewInMemoryModule(seed []entities.Listing, logger *slog.Logger) Module {
	store := memory.NewStore(seed)
	module := NewModule(Dependencies{
		Repository: store,
		Clock:      store,
		IDGen:      store,
		Logger:     logger,
	})
	module.Store = store
	return module
}
