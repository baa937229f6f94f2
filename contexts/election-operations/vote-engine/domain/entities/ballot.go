package entities

import "time"

// Voter is the vote engine's view of a registry record: just enough to
// authenticate a token and decide whether a ballot may still be cast.
type Voter struct {
	ElectionID string
	StudentID  string
	Token      string
	Voted      bool
	Votes      []string
}

type Election struct {
	ElectionID  string
	Title       string
	Description string
	CanVote     bool
	Finished    bool
	StartDate   time.Time
	EndDate     time.Time
}

// Position carries the per-position ballot rule: at most VotesPerPerson
// selections among its candidates.
type Position struct {
	PositionID     string
	ElectionID     string
	Name           string
	VotesPerPerson int
}

type Candidate struct {
	CandidateID string
	PositionID  string
	ElectionID  string
	Name        string
	Description string
	AvatarURL   string
	NumVotes    int
}

// PositionBallot groups a position with its candidates for rendering and
// validating a ballot.
type PositionBallot struct {
	Position   Position
	Candidates []Candidate
}

// VotePage is everything the voting page needs for one token.
type VotePage struct {
	Election  Election
	Voter     Voter
	Positions []PositionBallot
}

// PositionResult lists a position's candidates ordered by tally.
type PositionResult struct {
	Position   Position
	Candidates []Candidate
}

type ElectionResults struct {
	Election  Election
	Positions []PositionResult
}
