package entities

import "time"

// Voter is the per-election record for one student identity. It carries the
// single-use access token and the email notification bookkeeping.
type Voter struct {
	ElectionID     string
	StudentID      string
	Token          string
	Voted          bool
	Votes          []string
	EmailCount     int
	LastNotifiedAt *time.Time
	CreatedAt      time.Time
}

const backoffBase = 10 * time.Minute

// NextSendWait returns how long the voter must still wait before another
// voting email may be sent. The required wait doubles with every email
// already sent (10, 20, 40 minutes, ...) and elapsed time is measured from
// the voter's creation, not from the last send.
func (v Voter) NextSendWait(now time.Time) time.Duration {
	if v.EmailCount == 0 {
		return 0
	}
	required := backoffBase << (v.EmailCount - 1)
	elapsed := now.Sub(v.CreatedAt)
	if elapsed >= required {
		return 0
	}
	return required - elapsed
}
