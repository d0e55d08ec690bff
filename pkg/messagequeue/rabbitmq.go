package messagequeue

import (
	"context"
	"errors"
	"sync"

	"github.com/streadway/amqp"
	"go.uber.org/zap"
)

// ErrChannelClosed is returned by Consume when the broker closes the delivery channel.
var ErrChannelClosed = errors.New("rabbitmq delivery channel closed")

// RabbitMQService implements the MessageQueue interface using RabbitMQ.
type RabbitMQService struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	logger  *zap.Logger

	// amqp channels are not safe for concurrent publishing
	mu sync.Mutex
}

// NewRabbitMQServiceConfig contains options for creating a new RabbitMQService.
type NewRabbitMQServiceConfig struct {
	URL string
}

// NewRabbitMQService dials the broker and opens a channel.
func NewRabbitMQService(cfg NewRabbitMQServiceConfig, logger *zap.Logger) (*RabbitMQService, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, err
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, err
	}

	logger.Info("Connected to RabbitMQ")
	return &RabbitMQService{conn: conn, channel: ch, logger: logger}, nil
}

func (s *RabbitMQService) declare(queueName string) (amqp.Queue, error) {
	return s.channel.QueueDeclare(
		queueName, // name
		true,      // durable
		false,     // delete when unused
		false,     // exclusive
		false,     // no-wait
		nil,       // arguments
	)
}

// Publish sends a persistent JSON message to a queue.
func (s *RabbitMQService) Publish(ctx context.Context, queueName string, body []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	q, err := s.declare(queueName)
	if err != nil {
		s.logger.Error("Failed to declare queue", zap.String("queue", queueName), zap.Error(err))
		return err
	}

	err = s.channel.Publish(
		"",     // exchange
		q.Name, // routing key
		false,  // mandatory
		false,  // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
		})
	if err != nil {
		s.logger.Error("Failed to publish message", zap.String("queue", queueName), zap.Error(err))
		return err
	}
	s.logger.Debug("Published message", zap.String("queue", queueName))
	return nil
}

// Consume acks a delivery after handler succeeds. Failed deliveries are nacked with requeue,
// or dropped when the handler reports a permanent failure.
func (s *RabbitMQService) Consume(ctx context.Context, queueName string, handler Handler) error {
	s.mu.Lock()
	q, err := s.declare(queueName)
	if err == nil {
		err = s.channel.Qos(1, 0, false)
	}
	var msgs <-chan amqp.Delivery
	if err == nil {
		msgs, err = s.channel.Consume(
			q.Name, // queue
			"",     // consumer
			false,  // auto-ack
			false,  // exclusive
			false,  // no-local
			false,  // no-wait
			nil,    // args
		)
	}
	s.mu.Unlock()
	if err != nil {
		s.logger.Error("Failed to register consumer", zap.String("queue", queueName), zap.Error(err))
		return err
	}

	s.logger.Info("Waiting for messages", zap.String("queue", q.Name))
	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-msgs:
			if !ok {
				return ErrChannelClosed
			}
			settle(ctx, s.logger, queueName, d.Body, d, handler)
		}
	}
}

// acknowledger is the subset of amqp.Delivery used to settle a message.
type acknowledger interface {
	Ack(multiple bool) error
	Nack(multiple, requeue bool) error
}

func settle(ctx context.Context, logger *zap.Logger, queueName string, body []byte, ack acknowledger, handler Handler) {
	if err := handler(ctx, body); err != nil {
		requeue := !errors.Is(err, ErrPermanent)
		if requeue {
			logger.Warn("Message handler failed, requeueing", zap.String("queue", queueName), zap.Error(err))
		} else {
			logger.Error("Message handler failed permanently, dropping", zap.String("queue", queueName), zap.Error(err))
		}
		if err := ack.Nack(false, requeue); err != nil {
			logger.Error("Failed to nack message", zap.String("queue", queueName), zap.Error(err))
		}
		return
	}
	if err := ack.Ack(false); err != nil {
		logger.Error("Failed to ack message", zap.String("queue", queueName), zap.Error(err))
	}
}

// Close closes the RabbitMQ channel and connection.
func (s *RabbitMQService) Close() error {
	var lastErr error
	if s.channel != nil {
		if err := s.channel.Close(); err != nil {
			s.logger.Warn("Error closing RabbitMQ channel", zap.Error(err))
			lastErr = err
		}
	}
	if s.conn != nil {
		if err := s.conn.Close(); err != nil {
			s.logger.Warn("Error closing RabbitMQ connection", zap.Error(err))
			lastErr = err
		}
	}
	return lastErr
}
