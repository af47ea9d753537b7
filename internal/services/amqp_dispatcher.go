package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"smartrental/internal/logging"
	"smartrental/internal/models"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
)

// AMQPDispatcher publishes outbound messages to a topic exchange. The routing
// key is the channel name ("sms" or "email"); gateway workers consume them.
type AMQPDispatcher struct {
	conn     *amqp.Connection
	ch       *amqp.Channel
	exchange string
	mu       sync.Mutex
	logger   zerolog.Logger
}

func NewAMQPDispatcher(url, exchange string) (*AMQPDispatcher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("amqp dispatcher: failed to connect: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("amqp dispatcher: failed to open channel: %w", err)
	}
	if err := ch.ExchangeDeclare(exchange, amqp.ExchangeTopic, true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("amqp dispatcher: failed to declare exchange %s: %w", exchange, err)
	}

	return &AMQPDispatcher{
		conn:     conn,
		ch:       ch,
		exchange: exchange,
		logger:   logging.WithComponent("amqp-dispatcher"),
	}, nil
}

func (d *AMQPDispatcher) Dispatch(ctx context.Context, msg models.OutboundMessage) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("amqp dispatcher: failed to marshal message: %w", err)
	}

	publishCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	// amqp channels are not safe for concurrent publishing
	d.mu.Lock()
	defer d.mu.Unlock()

	err = d.ch.PublishWithContext(publishCtx, d.exchange, msg.Channel, false, false, amqp.Publishing{
		ContentType:  "application/json",
		Body:         body,
		DeliveryMode: amqp.Persistent,
		Timestamp:    msg.SentAt,
	})
	if err != nil {
		d.logger.Error().Err(err).Str("routing_key", msg.Channel).Msg("failed to publish outbound message")
		return fmt.Errorf("amqp dispatcher: failed to publish %s message: %w", msg.Channel, err)
	}
	return nil
}

func (d *AMQPDispatcher) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.ch.Close(); err != nil {
		d.logger.Warn().Err(err).Msg("failed to close channel")
	}
	return d.conn.Close()
}
