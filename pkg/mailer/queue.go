package mailer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/textproto"

	"github.com/loverprompt/loverprompt-backend/pkg/messagequeue"
)

// QueueMailer publishes messages for the mail worker instead of sending them inline.
type QueueMailer struct {
	mq    messagequeue.MessageQueue
	queue string
}

// NewQueueMailer returns a Mailer that publishes to queue.
func NewQueueMailer(mq messagequeue.MessageQueue, queue string) *QueueMailer {
	return &QueueMailer{mq: mq, queue: queue}
}

func (q *QueueMailer) Send(ctx context.Context, to, subject, body string) error {
	msg := Message{To: to, Subject: subject, Body: body}
	if err := msg.validate(); err != nil {
		return err
	}
	payload, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	if err := q.mq.Publish(ctx, q.queue, payload); err != nil {
		return fmt.Errorf("failed to enqueue email: %w", err)
	}
	return nil
}

// Deliver returns a queue handler that decodes queued messages and sends them with m.
// Undecodable or invalid messages are reported to onDrop and acknowledged. Send failures the
// server rejected permanently are returned as messagequeue.Permanent so they are not retried.
func Deliver(m Mailer, onDrop func(body []byte, err error)) messagequeue.Handler {
	return func(ctx context.Context, body []byte) error {
		var msg Message
		if err := json.Unmarshal(body, &msg); err != nil {
			onDrop(body, err)
			return nil
		}
		if err := msg.validate(); err != nil {
			onDrop(body, err)
			return nil
		}
		if err := m.Send(ctx, msg.To, msg.Subject, msg.Body); err != nil {
			if isPermanent(err) {
				return messagequeue.Permanent(err)
			}
			return err
		}
		return nil
	}
}

// isPermanent reports whether err is a rejection that resending will not fix:
// an invalid message or a 5xx SMTP reply.
func isPermanent(err error) bool {
	if errors.Is(err, ErrInvalidMessage) {
		return true
	}
	var tpErr *textproto.Error
	return errors.As(err, &tpErr) && tpErr.Code >= 500
}
