package httptransport

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type CreateElectionRequest struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	CanVote     bool   `json:"can_vote"`
}

type UpdateElectionRequest struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	CanVote     bool   `json:"can_vote"`
}

type ElectionResponse struct {
	ElectionID  string `json:"election_id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	CanVote     bool   `json:"can_vote"`
	Finished    bool   `json:"finished"`
}

type ElectionListResponse struct {
	Items []ElectionResponse `json:"items"`
}

type CreatePositionRequest struct {
	Name           string `json:"name"`
	VotesPerPerson int    `json:"votes_per_person"`
}

type PositionResponse struct {
	PositionID     string `json:"position_id"`
	ElectionID     string `json:"election_id"`
	Name           string `json:"name"`
	VotesPerPerson int    `json:"votes_per_person"`
}

type CreateCandidateRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	AvatarURL   string `json:"avatar_url,omitempty"`
}

type CandidateResponse struct {
	CandidateID string `json:"candidate_id"`
	PositionID  string `json:"position_id"`
	ElectionID  string `json:"election_id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	AvatarURL   string `json:"avatar_url,omitempty"`
	NumVotes    int    `json:"num_votes"`
}

type PositionDetailResponse struct {
	Position   PositionResponse    `json:"position"`
	Candidates []CandidateResponse `json:"candidates"`
}

type ElectionDetailResponse struct {
	Election  ElectionResponse         `json:"election"`
	Positions []PositionDetailResponse `json:"positions"`
}

type UpdateElectionStatusResponse struct {
	FinishedCount int `json:"finished_count"`
}
