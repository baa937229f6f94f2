package errors

import "errors"

var (
	ErrElectionNotFound      = errors.New("election not found")
	ErrPositionNotFound      = errors.New("position not found")
	ErrInvalidElectionInput  = errors.New("invalid election input")
	ErrInvalidPositionInput  = errors.New("invalid position input")
	ErrInvalidCandidateInput = errors.New("invalid candidate input")
	ErrVotingClosed          = errors.New("election is not open for voting")
	ErrAdminOnly             = errors.New("admin access required")
)
