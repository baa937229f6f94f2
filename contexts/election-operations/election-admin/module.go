package electionadmin

import (
	"log/slog"

	httpadapter "ballotbox/contexts/election-operations/election-admin/adapters/http"
	"ballotbox/contexts/election-operations/election-admin/adapters/memory"
	"ballotbox/contexts/election-operations/election-admin/application/commands"
	"ballotbox/contexts/election-operations/election-admin/application/queries"
	"ballotbox/contexts/election-operations/election-admin/domain/entities"
	"ballotbox/contexts/election-operations/election-admin/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Admin   commands.AdminUseCase
	Catalog queries.CatalogUseCase
	Store   *memory.Store
}

type Dependencies struct {
	Elections   ports.ElectionRepository
	Clock       ports.Clock
	IDGen       ports.IDGenerator
	AdminEmails []string
	Logger      *slog.Logger
}

func NewModule(deps Dependencies) Module {
	adminUseCase := commands.AdminUseCase{
		Elections:   deps.Elections,
		Clock:       deps.Clock,
		IDGen:       deps.IDGen,
		AdminEmails: deps.AdminEmails,
		Logger:      deps.Logger,
	}
	catalogUseCase := queries.CatalogUseCase{
		Elections: deps.Elections,
		Clock:     deps.Clock,
	}
	return Module{
		Handler: httpadapter.Handler{
			Admin:   adminUseCase,
			Catalog: catalogUseCase,
			Logger:  deps.Logger,
		},
		Admin:   adminUseCase,
		Catalog: catalogUseCase,
	}
}

func NewInMemoryModule(seed []entities.Election, adminEmails []string, logger *slog.Logger) Module {
	store := memory.NewStore(seed)
	module := NewModule(Dependencies{
		Elections:   store,
		Clock:       store,
		IDGen:       store,
		AdminEmails: adminEmails,
		Logger:      logger,
	})
	module.Store = store
	return module
}
