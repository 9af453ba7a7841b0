package kafka

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingWriter struct {
	mu       sync.Mutex
	messages []kafka.Message
	err      error
	closed   bool
}

func (w *recordingWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.err != nil {
		return w.err
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

func (w *recordingWriter) Close() error {
	w.closed = true
	return nil
}

func header(msg kafka.Message, key string) string {
	for _, h := range msg.Headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}

func buildMessage(t *testing.T) Message {
	t.Helper()
	msg, err := NewEventMessage("booking.created", "65a0c0ffee",
		map[string]any{"roomId": "r1"},
		WithSource("tranquilstay"),
	)
	require.NoError(t, err)
	return msg
}

func TestProducer_Publish(t *testing.T) {
	writer := &recordingWriter{}
	producer := NewProducerWithWriters(writer, nil, "events", "")

	require.NoError(t, producer.Publish(context.Background(), buildMessage(t)))

	require.Len(t, writer.messages, 1)
	written := writer.messages[0]
	assert.Equal(t, "65a0c0ffee", string(written.Key))
	assert.JSONEq(t, `{"roomId":"r1"}`, string(written.Value))
	assert.Equal(t, "booking.created", header(written, HeaderEventType))
	assert.NotEmpty(t, header(written, HeaderEventID))
	assert.NotEmpty(t, header(written, HeaderTimestamp))
}

func TestProducer_PublishValidatesMessage(t *testing.T) {
	producer := NewProducerWithWriters(&recordingWriter{}, nil, "events", "")

	err := producer.Publish(context.Background(), Message{Value: []byte("{}")})
	assert.ErrorIs(t, err, ErrEmptyKey)

	err = producer.Publish(context.Background(), Message{Key: "k"})
	assert.ErrorIs(t, err, ErrEmptyValue)
}

func TestProducer_FailedWriteGoesToDLQ(t *testing.T) {
	writeErr := errors.New("leader not available")
	writer := &recordingWriter{err: writeErr}
	dlq := &recordingWriter{}
	producer := NewProducerWithWriters(writer, dlq, "events", "events.dlq")

	err := producer.Publish(context.Background(), buildMessage(t))
	assert.ErrorIs(t, err, writeErr)

	require.Len(t, dlq.messages, 1)
	assert.Equal(t, "events", header(dlq.messages[0], HeaderOriginalTopic))
	assert.Equal(t, writeErr.Error(), header(dlq.messages[0], HeaderDLQError))
}

func TestProducer_MiddlewareOrder(t *testing.T) {
	producer := NewProducerWithWriters(&recordingWriter{}, nil, "events", "")

	var calls []string
	for _, name := range []string{"first", "second"} {
		name := name
		producer.Use(func(ctx context.Context, msg Message, next func(context.Context, Message) error) error {
			calls = append(calls, name)
			return next(ctx, msg)
		})
	}

	require.NoError(t, producer.Publish(context.Background(), buildMessage(t)))
	assert.Equal(t, []string{"first", "second"}, calls)
}

func TestProducer_Close(t *testing.T) {
	writer := &recordingWriter{}
	dlq := &recordingWriter{}
	producer := NewProducerWithWriters(writer, dlq, "events", "events.dlq")

	require.NoError(t, producer.Close())
	require.NoError(t, producer.Close())
	assert.True(t, writer.closed)
	assert.True(t, dlq.closed)

	err := producer.Publish(context.Background(), buildMessage(t))
	assert.ErrorIs(t, err, ErrProducerClosed)
}

func TestNewEventMessage(t *testing.T) {
	msg, err := NewEventMessage("feedback.created", "b1", map[string]int{"rating": 5},
		WithCorrelationID(""),
		WithEventID("evt-1"),
		WithSchemaVersion("1"),
	)
	require.NoError(t, err)

	assert.Equal(t, "evt-1", msg.EventID())
	assert.Equal(t, "feedback.created", msg.EventType())
	assert.Equal(t, "1", msg.Headers[HeaderSchemaVersion])
	assert.NotContains(t, msg.Headers, HeaderCorrelationID)

	var payload map[string]int
	require.NoError(t, msg.Decode(&payload))
	assert.Equal(t, 5, payload["rating"])
}

func TestNewEventMessage_EncodingFailure(t *testing.T) {
	_, err := NewEventMessage("booking.created", "k", make(chan int))
	require.Error(t, err)

	var encodeErr *EncodeError
	require.ErrorAs(t, err, &encodeErr)
	assert.Equal(t, "booking.created", encodeErr.EventType)
}
