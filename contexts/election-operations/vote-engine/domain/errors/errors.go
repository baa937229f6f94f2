package errors

import (
	"errors"
	"fmt"
)

var (
	ErrVoterNotFound       = errors.New("voter not found")
	ErrElectionNotFound    = errors.New("election not found")
	ErrAlreadyVoted        = errors.New("voter has already voted")
	ErrUnknownCandidate    = errors.New("candidate does not belong to this election")
	ErrTooManyVotes        = errors.New("ballot exceeds the position's vote limit")
	ErrInvalidBallotInput  = errors.New("invalid ballot input")
	ErrTransactionConflict = errors.New("vote transaction kept conflicting, try again")
)

// TooManyVotesError reports which position's limit the ballot exceeded.
// It matches ErrTooManyVotes under errors.Is.
type TooManyVotesError struct {
	PositionName string
	Limit        int
	Selected     int
}

func (e TooManyVotesError) Error() string {
	return fmt.Sprintf("position %q allows %d vote(s), ballot selects %d", e.PositionName, e.Limit, e.Selected)
}

func (e TooManyVotesError) Is(target error) bool {
	return target == ErrTooManyVotes
}
