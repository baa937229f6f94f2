package workers

import (
	"context"
	"log/slog"
	"time"

	application "ballotbox/contexts/election-operations/voter-registry/application"
	"ballotbox/contexts/election-operations/voter-registry/ports"
	"ballotbox/internal/shared/events"
)

// TopicVoterEmailQueued carries queued voting emails to the delivery consumer.
const TopicVoterEmailQueued = "voter.email.queued"

// MailRelay publishes persisted mail outbox rows to the mail bus. A row is
// marked sent only after publish succeeds, so delivery is at-least-once.
type MailRelay struct {
	Outbox    ports.MailOutbox
	Publisher ports.MailPublisher
	Clock     ports.Clock
	BatchSize int
	Logger    *slog.Logger
}

// RunOnce relays a bounded batch of pending mail rows. It stops on the first
// failure so the next cycle reprocesses remaining rows safely.
func (r MailRelay) RunOnce(ctx context.Context) error {
	logger := application.ResolveLogger(r.Logger)
	limit := r.BatchSize
	if limit <= 0 {
		limit = 100
	}

	pending, err := r.Outbox.ListPendingMail(ctx, limit)
	if err != nil {
		logger.Error("mail outbox list failed",
			"event", "registry_mail_outbox_list_failed",
			"module", "election-operations/voter-registry",
			"layer", "worker",
			"error", err.Error(),
		)
		return err
	}
	if len(pending) == 0 {
		return nil
	}

	now := time.Now().UTC()
	if r.Clock != nil {
		now = r.Clock.Now().UTC()
	}

	for _, row := range pending {
		envelope := events.Envelope{
			EventID:       row.ID,
			EventType:     TopicVoterEmailQueued,
			SourceService: "ballotbox",
			OccurredAtUTC: row.CreatedAt.UTC(),
			EntityType:    "outbound_email",
			EntityID:      row.ID,
			Payload:       row.Payload,
		}
		if err := r.Publisher.Publish(ctx, TopicVoterEmailQueued, envelope); err != nil {
			logger.Error("mail outbox publish failed",
				"event", "registry_mail_outbox_publish_failed",
				"module", "election-operations/voter-registry",
				"layer", "worker",
				"mail_id", row.ID,
				"error", err.Error(),
			)
			return err
		}
		if err := r.Outbox.MarkMailSent(ctx, row.ID, now); err != nil {
			logger.Error("mail outbox mark sent failed",
				"event", "registry_mail_outbox_mark_sent_failed",
				"module", "election-operations/voter-registry",
				"layer", "worker",
				"mail_id", row.ID,
				"error", err.Error(),
			)
			return err
		}
	}

	logger.Info("mail relay cycle completed",
		"event", "registry_mail_relay_completed",
		"module", "election-operations/voter-registry",
		"layer", "worker",
		"published_count", len(pending),
	)
	return nil
}
