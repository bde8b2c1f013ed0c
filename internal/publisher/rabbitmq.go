package publisher

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	"offline_sync/internal/domain"
)

const (
	StatusClean    = "clean"
	StatusDegraded = "degraded"
)

// ErrNacked is returned when the broker refuses a published event.
var ErrNacked = errors.New("sync event nacked by broker")

// RabbitMQ publishes sync events to a durable direct exchange with publisher
// confirms. Publish is safe for concurrent use.
type RabbitMQ struct {
	conn       *amqp.Connection
	channel    *amqp.Channel
	exchange   string
	routingKey string
	logger     *slog.Logger

	mu sync.Mutex
}

// Config describes the broker topology. QueueName is optional: when empty only
// the exchange is declared and consumers bind their own queues.
type Config struct {
	URL        string
	Exchange   string
	RoutingKey string
	QueueName  string
}

func NewRabbitMQ(cfg Config, logger *slog.Logger) (*RabbitMQ, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("connect to rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	if err := setupChannel(ch, cfg); err != nil {
		ch.Close()
		conn.Close()
		return nil, err
	}

	logger = logger.With("component", "publisher", "exchange", cfg.Exchange)
	logger.Info("connected to rabbitmq", "queue", cfg.QueueName, "routing_key", cfg.RoutingKey)

	return &RabbitMQ{
		conn:       conn,
		channel:    ch,
		exchange:   cfg.Exchange,
		routingKey: cfg.RoutingKey,
		logger:     logger,
	}, nil
}

func setupChannel(ch *amqp.Channel, cfg Config) error {
	if err := ch.ExchangeDeclare(cfg.Exchange, amqp.ExchangeDirect, true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare exchange %s: %w", cfg.Exchange, err)
	}

	if cfg.QueueName != "" {
		q, err := ch.QueueDeclare(cfg.QueueName, true, false, false, false, nil)
		if err != nil {
			return fmt.Errorf("declare queue %s: %w", cfg.QueueName, err)
		}
		if err := ch.QueueBind(q.Name, cfg.RoutingKey, cfg.Exchange, false, nil); err != nil {
			return fmt.Errorf("bind queue %s: %w", q.Name, err)
		}
	}

	if err := ch.Confirm(false); err != nil {
		return fmt.Errorf("enable publisher confirms: %w", err)
	}
	return nil
}

// SyncMessage is the JSON body of a published sync run.
type SyncMessage struct {
	Status string           `json:"status"` // "clean" or "degraded"
	Event  domain.SyncEvent `json:"event"`
}

func NewSyncMessage(event *domain.SyncEvent) SyncMessage {
	status := StatusClean
	if event.Failed > 0 || event.RefreshErrors > 0 {
		status = StatusDegraded
	}
	return SyncMessage{Status: status, Event: *event}
}

func (r *RabbitMQ) Publish(ctx context.Context, event *domain.SyncEvent) error {
	msg := NewSyncMessage(event)

	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	confirm, err := r.channel.PublishWithDeferredConfirmWithContext(
		ctx,
		r.exchange,
		r.routingKey,
		false,
		false,
		amqp.Publishing{
			DeliveryMode: amqp.Persistent,
			ContentType:  "application/json",
			MessageId:    uuid.NewString(),
			Headers:      amqp.Table{"device_id": event.DeviceID, "trigger": string(event.Trigger)},
			Body:         body,
			Timestamp:    time.Now(),
		},
	)
	if err != nil {
		return fmt.Errorf("publish message: %w", err)
	}

	acked, err := confirm.WaitContext(ctx)
	if err != nil {
		return fmt.Errorf("wait for confirm: %w", err)
	}
	if !acked {
		return ErrNacked
	}

	r.logger.Debug("published sync event",
		"trigger", event.Trigger,
		"status", msg.Status,
	)

	return nil
}

func (r *RabbitMQ) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.channel != nil {
		r.channel.Close()
	}
	if r.conn != nil {
		return r.conn.Close()
	}
	return nil
}
