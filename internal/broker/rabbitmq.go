package broker

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Queues published to. Routing key equals the queue name on the default exchange.
const (
	QueueTicketsPurchased     = "tickets.purchased"
	QueueReservationConfirmed = "reservation.confirmed"
)

type TicketsPurchased struct {
	ReservationID int64     `json:"reservation_id"`
	UserID        int64     `json:"user_id"`
	EventID       int64     `json:"event_id"`
	TicketTypeID  int64     `json:"ticket_type_id"`
	Quantity      int       `json:"quantity"`
	TotalCents    int64     `json:"total_cents"`
	Codes         []string  `json:"codes"`
	OccurredAt    time.Time `json:"occurred_at"`
}

type ReservationConfirmed struct {
	ReservationID  int64     `json:"reservation_id"`
	UserID         int64     `json:"user_id"`
	Kind           string    `json:"kind"`
	AmountCents    int64     `json:"amount_cents"`
	Provider       string    `json:"provider"`
	TransactionRef string    `json:"transaction_ref"`
	OccurredAt     time.Time `json:"occurred_at"`
}

type Publisher interface {
	Publish(ctx context.Context, queue string, payload any) error
}

// Nop discards every message. Used when no broker is configured.
type Nop struct{}

func (Nop) Publish(context.Context, string, any) error { return nil }

// RabbitMQ publishes persistent JSON messages to durable queues over one
// lazily (re)opened connection.
type RabbitMQ struct {
	url string

	mu       sync.Mutex
	conn     *amqp.Connection
	declared map[string]bool
}

func NewRabbitMQ(url string) *RabbitMQ {
	return &RabbitMQ{url: url, declared: make(map[string]bool)}
}

func (p *RabbitMQ) connection() (*amqp.Connection, error) {
	if p.conn != nil && !p.conn.IsClosed() {
		return p.conn, nil
	}

	conn, err := amqp.Dial(p.url)
	if err != nil {
		return nil, err
	}

	p.conn = conn
	p.declared = make(map[string]bool)

	return conn, nil
}

func (p *RabbitMQ) Publish(ctx context.Context, queue string, payload any) error {
	const op = "broker.RabbitMQ.Publish"

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("%s: marshal: %w", op, err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	conn, err := p.connection()
	if err != nil {
		return fmt.Errorf("%s: dial: %w", op, err)
	}

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("%s: channel: %w", op, err)
	}
	defer func() { _ = ch.Close() }()

	if !p.declared[queue] {
		if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
			return fmt.Errorf("%s: declare %s: %w", op, queue, err)
		}
		p.declared[queue] = true
	}

	if err := ch.PublishWithContext(ctx, "", queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}); err != nil {
		return fmt.Errorf("%s: publish %s: %w", op, queue, err)
	}

	return nil
}

func (p *RabbitMQ) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.conn == nil || p.conn.IsClosed() {
		return nil
	}

	return p.conn.Close()
}
