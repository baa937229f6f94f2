package errors

import "errors"

var (
	// ErrInvalidStudentID means the identity was not supplied in canonical
	// lowercase form. Normalization is the request layer's job.
	ErrInvalidStudentID = errors.New("student id must be lowercase")
	// ErrVoterNotFound is returned uniformly for unknown voters and unknown
	// tokens so a miss never reveals whether a similar token exists.
	ErrVoterNotFound    = errors.New("voter not found")
	ErrMailNotFound     = errors.New("outbound mail not found")
	ErrInvalidMail      = errors.New("invalid outbound mail")
	ErrElectionNotFound = errors.New("election not found")
)
