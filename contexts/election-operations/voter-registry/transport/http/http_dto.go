package httptransport

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// SendVotingEmailRequest asks for a voting-token email. ForcedSend requests a
// resend once the per-voter backoff window has elapsed.
type SendVotingEmailRequest struct {
	ElectionID string `json:"election_id"`
	StudentID  string `json:"student_id"`
	ForcedSend bool   `json:"forced_send"`
}

type SendVotingEmailResponse struct {
	IsSent       bool   `json:"is_sent"`
	RestWaitTime int    `json:"rest_wait_time"`
	Voted        bool   `json:"voted"`
	ErrorMessage string `json:"error_message,omitempty"`
}

type VoterResponse struct {
	ElectionID string   `json:"election_id"`
	StudentID  string   `json:"student_id"`
	Voted      bool     `json:"voted"`
	Votes      []string `json:"votes,omitempty"`
	EmailCount int      `json:"email_count"`
}
