// Package messaging publishes outbox events to RabbitMQ, or to the log when
// no broker is configured.
package messaging

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"parking-core/internal/pkg/errs"
	"parking-core/internal/usecase/shared"

	amqp "github.com/rabbitmq/amqp091-go"
)

var ErrPublisherClosed = errs.New("publisher is closed")

// AMQPPublisher publishes to a durable topic exchange with the event topic
// as routing key. The connection is opened lazily and reopened after a
// failure on the next publish.
type AMQPPublisher struct {
	url      string
	exchange string
	logger   *slog.Logger

	mu      sync.Mutex
	conn    *amqp.Connection
	channel *amqp.Channel
	closed  bool
}

var _ shared.EventPublisher = (*AMQPPublisher)(nil)

func NewAMQPPublisher(url, exchange string, logger *slog.Logger) *AMQPPublisher {
	return &AMQPPublisher{
		url:      url,
		exchange: exchange,
		logger:   logger,
	}
}

func (p *AMQPPublisher) Publish(ctx context.Context, event shared.OutboxEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return ErrPublisherClosed
	}
	ch, err := p.ensureChannel()
	if err != nil {
		return err
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    event.ID.String(),
		Type:         event.Topic,
		Timestamp:    event.CreatedAt,
		Body:         event.Payload,
	}
	if err := ch.PublishWithContext(ctx, p.exchange, event.Topic, false, false, msg); err != nil {
		p.reset()
		return errs.Wrapf(err, "publish %s", event.Topic)
	}
	return nil
}

func (p *AMQPPublisher) ensureChannel() (*amqp.Channel, error) {
	if p.channel != nil && !p.channel.IsClosed() {
		return p.channel, nil
	}
	p.reset()

	conn, err := amqp.DialConfig(p.url, amqp.Config{
		Heartbeat: 10 * time.Second,
		Dial:      amqp.DefaultDial(5 * time.Second),
	})
	if err != nil {
		return nil, errs.Wrap(err, "dial broker")
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, errs.Wrap(err, "open channel")
	}
	if err := ch.ExchangeDeclare(p.exchange, amqp.ExchangeTopic, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, errs.Wrapf(err, "declare exchange %s", p.exchange)
	}

	p.logger.Info("connected to message broker", slog.String("exchange", p.exchange))
	p.conn = conn
	p.channel = ch
	return ch, nil
}

func (p *AMQPPublisher) reset() {
	if p.channel != nil {
		_ = p.channel.Close()
		p.channel = nil
	}
	if p.conn != nil {
		_ = p.conn.Close()
		p.conn = nil
	}
}

func (p *AMQPPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	p.reset()
	return nil
}
