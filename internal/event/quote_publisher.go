package event

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// ErrPublisherClosed is returned once the underlying channel has been closed.
var ErrPublisherClosed = errors.New("quote publisher channel closed")

// Channel is the part of *amqp.Channel the publisher uses.
type Channel interface {
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error)
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// QuotePublisher publishes quote events to RabbitMQ
type QuotePublisher struct {
	channel       Channel
	queueDeclared atomic.Bool
	closed        atomic.Bool
}

func NewQuotePublisher(channel Channel) *QuotePublisher {
	return &QuotePublisher{channel: channel}
}

// WatchClose marks the publisher closed when closes delivers or is closed.
// It blocks, so run it in its own goroutine.
func (p *QuotePublisher) WatchClose(closes <-chan *amqp.Error) {
	amqpErr, ok := <-closes
	p.closed.Store(true)
	if ok && amqpErr != nil {
		slog.Error("RabbitMQ channel closed, quote events disabled", "code", amqpErr.Code, "reason", amqpErr.Reason)
		return
	}
	slog.Info("RabbitMQ channel closed, quote events disabled")
}

func (p *QuotePublisher) PublishQuoteCreated(ctx context.Context, event QuoteCreatedEvent) error {
	if p.closed.Load() {
		return ErrPublisherClosed
	}

	if !p.queueDeclared.Load() {
		_, err := p.channel.QueueDeclare(
			QuoteCreatedQueue, // queue name
			true,              // durable
			false,             // delete when unused
			false,             // exclusive
			false,             // no-wait
			nil,               // arguments
		)
		if err != nil {
			return fmt.Errorf("failed to declare queue: %w", err)
		}
		p.queueDeclared.Store(true)
	}

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal quote event: %w", err)
	}

	err = p.channel.PublishWithContext(
		ctx,
		"",                // exchange
		QuoteCreatedQueue, // routing key (queue name)
		false,             // mandatory
		false,             // immediate
		amqp.Publishing{
			DeliveryMode: amqp.Persistent,
			ContentType:  "application/json",
			MessageId:    event.EventID.String(),
			Body:         body,
			Timestamp:    time.Now(),
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish quote event: %w", err)
	}

	slog.Info("Quote event published",
		"queue", QuoteCreatedQueue,
		"quote_id", event.QuoteID,
		"plan_type", event.PlanType,
	)
	return nil
}
