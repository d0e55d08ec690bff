package messagequeue

import (
	"context"
	"errors"
	"fmt"
)

// ErrPermanent marks a handler failure that redelivery cannot fix.
var ErrPermanent = errors.New("permanent message failure")

// Permanent wraps err so the consumer drops the message instead of requeueing it.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrPermanent, err)
}

// Handler processes one message body. Returning an error requeues the message unless
// the error wraps ErrPermanent.
type Handler func(ctx context.Context, body []byte) error

// MessageQueue defines the interface for message queue services.
type MessageQueue interface {
	Publish(ctx context.Context, queueName string, body []byte) error
	// Consume blocks, dispatching deliveries to handler until ctx is done or the
	// broker closes the channel.
	Consume(ctx context.Context, queueName string, handler Handler) error
	Close() error
}
