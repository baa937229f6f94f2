package ports

import (
	"context"
	"time"

	"ballotbox/contexts/election-operations/vote-engine/domain/entities"
)

// BallotReader serves the read side of the vote flow: token resolution and
// the election structure a ballot is validated against.
type BallotReader interface {
	GetVoterByToken(ctx context.Context, token string) (entities.Voter, error)
	GetElection(ctx context.Context, electionID string) (entities.Election, error)
	ListPositions(ctx context.Context, electionID string) ([]entities.Position, error)
	ListCandidates(ctx context.Context, electionID string) ([]entities.Candidate, error)
}

// BallotCaster owns the atomic vote transaction. Implementations re-read the
// voter inside the transaction, fail with ErrAlreadyVoted when the flag is
// already set, persist the selections with the voted flag, and increment each
// chosen candidate's tally by exactly one. A transaction that keeps
// conflicting after bounded retries surfaces ErrTransactionConflict.
type BallotCaster interface {
	CastBallot(ctx context.Context, electionID string, studentID string, candidateIDs []string) error
}

type Clock interface {
	Now() time.Time
}
