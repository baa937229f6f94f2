package ports

import (
	"context"
	"time"

	"ballotbox/contexts/election-operations/voter-registry/domain/entities"
	"ballotbox/internal/shared/events"
	"ballotbox/internal/shared/outbox"
)

type VoterRepository interface {
	// CreateVoterIfAbsent atomically inserts the voter keyed by
	// (election, student). Concurrent callers for the same key observe
	// exactly one created record; the bool reports whether this call
	// created it.
	CreateVoterIfAbsent(ctx context.Context, voter entities.Voter) (entities.Voter, bool, error)
	GetVoter(ctx context.Context, electionID string, studentID string) (entities.Voter, error)
	GetVoterByToken(ctx context.Context, token string) (entities.Voter, error)
	// RecordEmailSent increments the email counter and stamps the send time,
	// returning a fresh read of the record so callers observe the update.
	RecordEmailSent(ctx context.Context, electionID string, studentID string, sentAt time.Time) (entities.Voter, error)
}

type ElectionProjection struct {
	ElectionID string
	Title      string
	CanVote    bool
	Finished   bool
	StartDate  time.Time
	EndDate    time.Time
}

type ElectionDirectory interface {
	GetElection(ctx context.Context, electionID string) (ElectionProjection, error)
}

type OutboundEmail struct {
	MailID   string `json:"mail_id"`
	To       string `json:"to"`
	From     string `json:"from"`
	Subject  string `json:"subject"`
	HTMLBody string `json:"html_body"`
	TextBody string `json:"text_body"`
}

type MailOutbox interface {
	AppendMail(ctx context.Context, email OutboundEmail) error
	ListPendingMail(ctx context.Context, limit int) ([]outbox.Message, error)
	MarkMailSent(ctx context.Context, mailID string, sentAt time.Time) error
}

type MailPublisher interface {
	Publish(ctx context.Context, topic string, event events.Envelope) error
}

type MailSubscriber interface {
	Subscribe(ctx context.Context, topic string, consumerGroup string, handler func(context.Context, events.Envelope) error) error
}

type MailSender interface {
	Send(ctx context.Context, email OutboundEmail) error
}

type Clock interface {
	Now() time.Time
}

type TokenGenerator interface {
	NewToken(ctx context.Context) (string, error)
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
