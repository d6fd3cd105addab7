package events

import (
	"context"
	"fmt"
	"time"

	"github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"
)

const publishTimeout = 5 * time.Second

type channel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp091.Table) error
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp091.Table) (amqp091.Queue, error)
	QueueBind(name, key, exchange string, noWait bool, args amqp091.Table) error
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp091.Publishing) error
	Close() error
}

// Publisher отправляет LedgerEvent в direct exchange. Ключ маршрутизации - имя очереди.
type Publisher struct {
	conn     *amqp091.Connection
	ch       channel
	exchange string
	queue    string
	l        *logrus.Entry
}

// NewPublisher подключается к брокеру и объявляет exchange, очередь и привязку между ними.
func NewPublisher(url, exchange, queue string, l *logrus.Logger) (*Publisher, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial AMQP: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	p := newPublisher(ch, exchange, queue, l)
	p.conn = conn

	if setupErr := p.setup(); setupErr != nil {
		_ = p.Close()
		return nil, fmt.Errorf("setup exchange and queue: %w", setupErr)
	}
	return p, nil
}

func newPublisher(ch channel, exchange, queue string, l *logrus.Logger) *Publisher {
	return &Publisher{
		ch:       ch,
		exchange: exchange,
		queue:    queue,
		l: l.WithFields(logrus.Fields{
			"component": "events",
			"exchange":  exchange,
			"queue":     queue,
		}),
	}
}

func (p *Publisher) setup() error {
	if err := p.ch.ExchangeDeclare(p.exchange, "direct", true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare exchange: %w", err)
	}
	if _, err := p.ch.QueueDeclare(p.queue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare queue: %w", err)
	}
	if err := p.ch.QueueBind(p.queue, p.queue, p.exchange, false, nil); err != nil {
		return fmt.Errorf("bind queue: %w", err)
	}
	return nil
}

func (p *Publisher) Publish(ctx context.Context, event LedgerEvent) error {
	body, err := event.ToJSON()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	if pubErr := p.ch.PublishWithContext(ctx, p.exchange, p.queue, false, false, amqp091.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp091.Persistent,
		Type:         string(event.Kind),
		Timestamp:    event.OccurredAt,
		Body:         body,
	}); pubErr != nil {
		return fmt.Errorf("publish %s: %w", event.Kind, pubErr)
	}

	p.l.WithFields(logrus.Fields{
		"kind":     event.Kind,
		"userID":   event.UserID,
		"schemeID": event.SchemeID,
	}).Debug("event published")
	return nil
}

func (p *Publisher) Close() error {
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		return p.conn.Close() //nolint:wrapcheck
	}
	return nil
}

// NopPublisher используется, когда брокер не настроен.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, LedgerEvent) error {
	return nil
}

func (NopPublisher) Close() error {
	return nil
}
