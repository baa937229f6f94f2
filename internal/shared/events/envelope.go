package events

import (
	"encoding/json"
	"time"
)

// Envelope is the shared event shape published on the in-process bus.
// Payload stays raw so consumers decode their own contract types.
type Envelope struct {
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"`
	SourceService string          `json:"source_service"`
	OccurredAtUTC time.Time       `json:"occurred_at_utc"`
	EntityType    string          `json:"entity_type"`
	EntityID      string          `json:"entity_id"`
	Payload       json.RawMessage `json:"payload"`
}
