package workers

import (
	"context"
	"encoding/json"
	"testing"

	"ballotbox/contexts/election-operations/voter-registry/ports"
	"ballotbox/internal/shared/events"
)

type captureSender struct {
	sent []ports.OutboundEmail
}

func (s *captureSender) Send(_ context.Context, email ports.OutboundEmail) error {
	s.sent = append(s.sent, email)
	return nil
}

func TestMailConsumerDeliversDecodedEmail(t *testing.T) {
	sender := &captureSender{}
	consumer := MailConsumer{Sender: sender}

	payload, err := json.Marshal(ports.OutboundEmail{
		MailID:  "mail-1",
		To:      "s001@example.edu",
		From:    "elections@example.edu",
		Subject: "voting verification",
	})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	err = consumer.handle(context.Background(), events.Envelope{
		EventID:   "mail-1",
		EventType: TopicVoterEmailQueued,
		Payload:   payload,
	})
	if err != nil {
		t.Fatalf("handle: %v", err)
	}
	if len(sender.sent) != 1 || sender.sent[0].To != "s001@example.edu" {
		t.Fatalf("unexpected deliveries: %+v", sender.sent)
	}
}

func TestMailConsumerRejectsMalformedPayload(t *testing.T) {
	sender := &captureSender{}
	consumer := MailConsumer{Sender: sender}

	err := consumer.handle(context.Background(), events.Envelope{
		EventID: "mail-bad",
		Payload: []byte("not json"),
	})
	if err == nil {
		t.Fatalf("expected decode error")
	}
	if len(sender.sent) != 0 {
		t.Fatalf("malformed payload must not be delivered")
	}
}
