package httptransport

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// CastVoteRequest carries the ballot: the candidate ids the voter selected
// across all positions.
type CastVoteRequest struct {
	Votes []string `json:"votes"`
}

type CastVoteResponse struct {
	Ok           bool   `json:"ok"`
	ErrorMessage string `json:"error_message,omitempty"`
}

type CandidateResponse struct {
	CandidateID string `json:"candidate_id"`
	PositionID  string `json:"position_id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	AvatarURL   string `json:"avatar_url,omitempty"`
	NumVotes    int    `json:"num_votes"`
}

type PositionBallotResponse struct {
	PositionID     string              `json:"position_id"`
	Name           string              `json:"name"`
	VotesPerPerson int                 `json:"votes_per_person"`
	Candidates     []CandidateResponse `json:"candidates"`
}

type VotePageResponse struct {
	ElectionID    string                   `json:"election_id"`
	ElectionTitle string                   `json:"election_title"`
	StudentID     string                   `json:"student_id"`
	Voted         bool                     `json:"voted"`
	Votes         []string                 `json:"votes,omitempty"`
	Positions     []PositionBallotResponse `json:"positions"`
}

type ElectionResultsResponse struct {
	ElectionID    string                   `json:"election_id"`
	ElectionTitle string                   `json:"election_title"`
	Finished      bool                     `json:"finished"`
	Positions     []PositionBallotResponse `json:"positions"`
}
