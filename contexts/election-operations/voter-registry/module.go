package voterregistry

import (
	"log/slog"

	httpadapter "ballotbox/contexts/election-operations/voter-registry/adapters/http"
	"ballotbox/contexts/election-operations/voter-registry/adapters/memory"
	"ballotbox/contexts/election-operations/voter-registry/application/commands"
	"ballotbox/contexts/election-operations/voter-registry/application/queries"
	"ballotbox/contexts/election-operations/voter-registry/application/workers"
	"ballotbox/contexts/election-operations/voter-registry/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Notify  commands.NotifyUseCase
	Resolve queries.ResolveUseCase
	Relay   workers.MailRelay
	Store   *memory.Store
}

type Dependencies struct {
	Voters    ports.VoterRepository
	Elections ports.ElectionDirectory
	Mail      ports.MailOutbox
	Publisher ports.MailPublisher
	Clock     ports.Clock
	Tokens    ports.TokenGenerator
	IDGen     ports.IDGenerator
	Settings  commands.MailSettings
	Logger    *slog.Logger
}

func NewModule(deps Dependencies) Module {
	notifyUseCase := commands.NotifyUseCase{
		Voters:    deps.Voters,
		Elections: deps.Elections,
		Mail:      deps.Mail,
		Clock:     deps.Clock,
		Tokens:    deps.Tokens,
		IDGen:     deps.IDGen,
		Settings:  deps.Settings,
		Logger:    deps.Logger,
	}
	resolveUseCase := queries.ResolveUseCase{
		Voters: deps.Voters,
	}
	return Module{
		Handler: httpadapter.Handler{
			Notify:  notifyUseCase,
			Resolve: resolveUseCase,
			Logger:  deps.Logger,
		},
		Notify:  notifyUseCase,
		Resolve: resolveUseCase,
		Relay: workers.MailRelay{
			Outbox:    deps.Mail,
			Publisher: deps.Publisher,
			Clock:     deps.Clock,
			Logger:    deps.Logger,
		},
	}
}

func NewInMemoryModule(settings commands.MailSettings, publisher ports.MailPublisher, logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Voters:    store,
		Elections: store,
		Mail:      store,
		Publisher: publisher,
		Clock:     store,
		Tokens:    store,
		IDGen:     store,
		Settings:  settings,
		Logger:    logger,
	})
	module.Store = store
	return module
}
