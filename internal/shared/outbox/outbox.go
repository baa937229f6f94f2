package outbox

import "time"

// Message is an outbox row persisted inside the same DB transaction as the
// state change that produced it. The worker relay reads pending rows and
// publishes them to the message bus.
type Message struct {
	ID         string
	EventType  string
	Payload    []byte
	Status     string // pending, sent
	RetryCount int
	CreatedAt  time.Time
}
