package kafka

import (
	"errors"
	"fmt"
)

var (
	ErrProducerClosed = errors.New("kafka producer is closed")
	ErrEmptyKey       = errors.New("message key cannot be empty")
	ErrEmptyValue     = errors.New("message value cannot be empty")
)

// EncodeError reports an event payload that could not be marshalled.
type EncodeError struct {
	EventType string
	Err       error
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("failed to encode %s payload: %v", e.EventType, e.Err)
}

func (e *EncodeError) Unwrap() error {
	return e.Err
}
