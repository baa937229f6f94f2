package entities

import "time"

type Election struct {
	ElectionID  string
	Title       string
	Description string
	StartDate   time.Time
	EndDate     time.Time
	CanVote     bool
	Finished    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Open reports whether the election currently accepts registrations and votes.
func (e Election) Open(now time.Time) bool {
	if !e.CanVote || e.Finished {
		return false
	}
	return !now.Before(e.StartDate) && now.Before(e.EndDate)
}

// Due reports whether the sweep should flip the finished flag.
func (e Election) Due(now time.Time) bool {
	return !e.Finished && e.EndDate.Before(now)
}

type Position struct {
	PositionID     string
	ElectionID     string
	Name           string
	VotesPerPerson int
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type Candidate struct {
	CandidateID string
	PositionID  string
	ElectionID  string
	Name        string
	Description string
	AvatarURL   string
	NumVotes    int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ElectionDetail is the deep shape served on register/vote pages.
type ElectionDetail struct {
	Election  Election
	Positions []PositionDetail
}

type PositionDetail struct {
	Position   Position
	Candidates []Candidate
}
