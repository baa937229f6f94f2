package workers

import (
	"context"
	"encoding/json"
	"log/slog"

	application "ballotbox/contexts/election-operations/voter-registry/application"
	"ballotbox/contexts/election-operations/voter-registry/ports"
	"ballotbox/internal/shared/events"
)

// MailConsumer delivers queued voting emails through the SMTP sender.
type MailConsumer struct {
	Subscriber    ports.MailSubscriber
	Sender        ports.MailSender
	ConsumerGroup string
	Logger        *slog.Logger
}

func (c MailConsumer) Start(ctx context.Context) error {
	return c.Subscriber.Subscribe(ctx, TopicVoterEmailQueued, c.ConsumerGroup, c.handle)
}

func (c MailConsumer) handle(ctx context.Context, envelope events.Envelope) error {
	logger := application.ResolveLogger(c.Logger)

	var email ports.OutboundEmail
	if err := json.Unmarshal(envelope.Payload, &email); err != nil {
		logger.Error("mail payload decode failed",
			"event", "registry_mail_decode_failed",
			"module", "election-operations/voter-registry",
			"layer", "worker",
			"event_id", envelope.EventID,
			"error", err.Error(),
		)
		return err
	}

	if err := c.Sender.Send(ctx, email); err != nil {
		logger.Error("mail send failed",
			"event", "registry_mail_send_failed",
			"module", "election-operations/voter-registry",
			"layer", "worker",
			"mail_id", email.MailID,
			"to", email.To,
			"error", err.Error(),
		)
		return err
	}

	logger.Info("mail sent",
		"event", "registry_mail_sent",
		"module", "election-operations/voter-registry",
		"layer", "worker",
		"mail_id", email.MailID,
		"to", email.To,
	)
	return nil
}
