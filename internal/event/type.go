package event

import (
	"dashboard-service/internal/config"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// PublishQueue receives one event per successful dashboard publish.
const PublishQueue = "dashboard_publish_events"

// PublishEvent announces that a source's published document changed.
type PublishEvent struct {
	SourceID    string    `json:"source_id"`
	DatasetKey  string    `json:"dataset_key"`
	UploadID    int64     `json:"upload_id"`
	Rows        int       `json:"rows"`
	Dest        string    `json:"dest"`
	PublishedAt time.Time `json:"published_at"`
}

// RabbitMQConnection bundles the AMQP connection and channel.
type RabbitMQConnection struct {
	Connection *amqp.Connection
	Channel    *amqp.Channel
}

// NewRabbitMQConnection dials the broker and opens a channel.
func NewRabbitMQConnection(cfg config.RabbitMQConfig) (*RabbitMQConnection, error) {
	url := fmt.Sprintf("amqp://%s:%s@%s:%s/", cfg.Username, cfg.Password, cfg.Host, cfg.Port)

	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open RabbitMQ channel: %w", err)
	}

	return &RabbitMQConnection{Connection: conn, Channel: channel}, nil
}

// Close shuts down the channel and connection.
func (c *RabbitMQConnection) Close() error {
	if c.Channel != nil {
		c.Channel.Close()
	}
	if c.Connection != nil {
		return c.Connection.Close()
	}
	return nil
}
