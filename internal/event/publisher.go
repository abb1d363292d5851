package event

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// PublishEventPublisher publishes dashboard publish events to RabbitMQ
type PublishEventPublisher struct {
	conn              *RabbitMQConnection
	messagesPublished int64
	messagesFailed    int64
	lastPublishTime   time.Time
}

// NewPublishEventPublisher creates a new publish event publisher
func NewPublishEventPublisher(conn *RabbitMQConnection) *PublishEventPublisher {
	return &PublishEventPublisher{
		conn:            conn,
		lastPublishTime: time.Now(),
	}
}

// PublishEvent publishes a publish event to the dashboard_publish_events queue
func (p *PublishEventPublisher) PublishEvent(ctx context.Context, ev PublishEvent) error {
	// Ensure the queue exists
	_, err := p.conn.Channel.QueueDeclare(
		PublishQueue, // queue name
		true,         // durable
		false,        // delete when unused
		false,        // exclusive
		false,        // no-wait
		nil,          // arguments
	)
	if err != nil {
		p.messagesFailed++
		return fmt.Errorf("failed to declare queue: %w", err)
	}

	body, err := json.Marshal(ev)
	if err != nil {
		p.messagesFailed++
		return fmt.Errorf("failed to marshal publish event: %w", err)
	}

	err = p.conn.Channel.PublishWithContext(
		ctx,
		"",           // exchange
		PublishQueue, // routing key (queue name)
		false,        // mandatory
		false,        // immediate
		amqp.Publishing{
			DeliveryMode: amqp.Persistent,
			ContentType:  "application/json",
			Body:         body,
			Timestamp:    time.Now(),
		},
	)
	if err != nil {
		p.messagesFailed++
		return fmt.Errorf("failed to publish event: %w", err)
	}

	p.messagesPublished++
	p.lastPublishTime = time.Now()

	slog.Info("Publish event sent",
		"queue", PublishQueue,
		"source_id", ev.SourceID,
		"upload_id", ev.UploadID)

	return nil
}

// GetMetrics returns publisher metrics
func (p *PublishEventPublisher) GetMetrics() map[string]any {
	return map[string]any{
		"messages_published": p.messagesPublished,
		"messages_failed":    p.messagesFailed,
		"last_publish_time":  p.lastPublishTime,
		"queue":              PublishQueue,
	}
}
