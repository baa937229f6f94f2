package ports

import (
	"context"
	"time"

	"ballotbox/contexts/election-operations/election-admin/domain/entities"
)

type ElectionRepository interface {
	SaveElection(ctx context.Context, election entities.Election) error
	GetElection(ctx context.Context, electionID string) (entities.Election, error)
	ListElections(ctx context.Context) ([]entities.Election, error)
	ListUnfinishedElections(ctx context.Context) ([]entities.Election, error)

	SavePosition(ctx context.Context, position entities.Position) error
	GetPosition(ctx context.Context, positionID string) (entities.Position, error)
	ListPositionsByElection(ctx context.Context, electionID string) ([]entities.Position, error)

	SaveCandidate(ctx context.Context, candidate entities.Candidate) error
	ListCandidatesByPosition(ctx context.Context, positionID string) ([]entities.Candidate, error)
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
