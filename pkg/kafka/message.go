package kafka

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

const (
	HeaderEventID       = "event-id"
	HeaderEventType     = "event-type"
	HeaderCorrelationID = "correlation-id"
	HeaderSchemaVersion = "schema-version"
	HeaderSource        = "source"
	HeaderTimestamp     = "timestamp"
	HeaderOriginalTopic = "original-topic"
	HeaderDLQError      = "dlq-error"
	HeaderDLQTimestamp  = "dlq-timestamp"
)

// Message is an encoded domain event. Key selects the partition, so every
// event about one booking lands in order on the same partition.
type Message struct {
	Key       string
	Value     []byte
	Headers   map[string]string
	Topic     string
	Timestamp time.Time
}

type MessageOption func(*Message)

func WithSource(source string) MessageOption {
	return func(m *Message) { m.Headers[HeaderSource] = source }
}

func WithSchemaVersion(version string) MessageOption {
	return func(m *Message) { m.Headers[HeaderSchemaVersion] = version }
}

// WithCorrelationID is a no-op for an empty id, so requests without one
// do not emit a blank header.
func WithCorrelationID(id string) MessageOption {
	return func(m *Message) {
		if id != "" {
			m.Headers[HeaderCorrelationID] = id
		}
	}
}

func WithEventID(id string) MessageOption {
	return func(m *Message) {
		if id != "" {
			m.Headers[HeaderEventID] = id
		}
	}
}

// NewEventMessage JSON-encodes payload and stamps the event id, type and time headers.
func NewEventMessage(eventType, key string, payload any, opts ...MessageOption) (Message, error) {
	value, err := json.Marshal(payload)
	if err != nil {
		return Message{}, &EncodeError{EventType: eventType, Err: err}
	}

	now := time.Now().UTC()
	msg := Message{
		Key:       key,
		Value:     value,
		Timestamp: now,
		Headers: map[string]string{
			HeaderEventID:   uuid.NewString(),
			HeaderEventType: eventType,
			HeaderTimestamp: now.Format(time.RFC3339),
		},
	}
	for _, opt := range opts {
		opt(&msg)
	}
	return msg, nil
}

func (m Message) Decode(v any) error {
	return json.Unmarshal(m.Value, v)
}

func (m Message) EventID() string       { return m.Headers[HeaderEventID] }
func (m Message) EventType() string     { return m.Headers[HeaderEventType] }
func (m Message) CorrelationID() string { return m.Headers[HeaderCorrelationID] }
