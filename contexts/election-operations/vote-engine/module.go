package voteengine

import (
	"log/slog"

	httpadapter "ballotbox/contexts/election-operations/vote-engine/adapters/http"
	"ballotbox/contexts/election-operations/vote-engine/adapters/memory"
	"ballotbox/contexts/election-operations/vote-engine/application/commands"
	"ballotbox/contexts/election-operations/vote-engine/application/queries"
	"ballotbox/contexts/election-operations/vote-engine/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Cast    commands.CastVoteUseCase
	Ballot  queries.BallotQueryUseCase
	Store   *memory.Store
}

type Dependencies struct {
	Reader ports.BallotReader
	Caster ports.BallotCaster
	Logger *slog.Logger
}

func NewModule(deps Dependencies) Module {
	castUseCase := commands.CastVoteUseCase{
		Reader: deps.Reader,
		Caster: deps.Caster,
		Logger: deps.Logger,
	}
	ballotUseCase := queries.BallotQueryUseCase{
		Reader: deps.Reader,
	}
	return Module{
		Handler: httpadapter.Handler{
			Cast:   castUseCase,
			Ballot: ballotUseCase,
			Logger: deps.Logger,
		},
		Cast:   castUseCase,
		Ballot: ballotUseCase,
	}
}

func NewInMemoryModule(logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Reader: store,
		Caster: store,
		Logger: logger,
	})
	module.Store = store
	return module
}
