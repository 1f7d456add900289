// Package events publishes order lifecycle events to RabbitMQ. The
// publisher is optional: when no broker is configured the order flow runs
// without it.
package events

import (
	"encoding/json"
	"fmt"
	"time"

	"storefront/internal/domain"

	amqp "github.com/streadway/amqp"
	"go.uber.org/zap"
)

const orderQueue = "order_events"

// Publisher is the narrow interface the order service depends on, so
// tests can swap in a recording fake.
type Publisher interface {
	OrderCreated(order *domain.Order) error
	Close() error
}

// AMQPPublisher holds the RabbitMQ connection and channel.
type AMQPPublisher struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	logger  *zap.Logger
}

// NewAMQPPublisher connects to RabbitMQ and declares the durable order
// event queue.
func NewAMQPPublisher(url string, logger *zap.Logger) (*AMQPPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	_, err = ch.QueueDeclare(
		orderQueue,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare %s queue: %w", orderQueue, err)
	}

	logger.Info("RabbitMQ publisher connected", zap.String("queue", orderQueue))

	return &AMQPPublisher{conn: conn, channel: ch, logger: logger}, nil
}

// orderCreatedEvent is the wire shape of an order.created message.
type orderCreatedEvent struct {
	Event       string    `json:"event"`
	OrderID     string    `json:"orderId"`
	TotalAmount float64   `json:"totalAmount"`
	Status      string    `json:"status"`
	ItemCount   int       `json:"itemCount"`
	CreatedAt   time.Time `json:"createdAt"`
}

// OrderCreated publishes an order.created event for downstream consumers
// (fulfilment, notifications).
func (p *AMQPPublisher) OrderCreated(order *domain.Order) error {
	body, err := json.Marshal(orderCreatedEvent{
		Event:       "order.created",
		OrderID:     order.ID.String(),
		TotalAmount: order.TotalAmount,
		Status:      order.Status,
		ItemCount:   len(order.Items),
		CreatedAt:   order.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal order event: %w", err)
	}

	err = p.channel.Publish(
		"",         // default exchange
		orderQueue, // routing key
		false,      // mandatory
		false,      // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
		})
	if err != nil {
		return fmt.Errorf("failed to publish order event: %w", err)
	}

	return nil
}

// Close releases the channel and connection.
func (p *AMQPPublisher) Close() error {
	var errs []error
	if p.channel != nil {
		if err := p.channel.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close channel: %w", err))
		}
	}
	if p.conn != nil {
		if err := p.conn.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close connection: %w", err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("errors closing AMQP publisher: %v", errs)
	}
	return nil
}
