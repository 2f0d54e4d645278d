package event

import (
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"quote-service/internal/config"

	amqp "github.com/rabbitmq/amqp091-go"
)

// ConnectionName is shown for this service in the RabbitMQ management UI.
const ConnectionName = "quote-service"

// RabbitMQConnection holds the RabbitMQ connection and channel
type RabbitMQConnection struct {
	Connection *amqp.Connection
	Channel    *amqp.Channel
}

// BrokerURI builds the AMQP URI for cfg. Credentials and vhost are escaped by amqp.URI.
func BrokerURI(cfg config.RabbitMQConfig) (string, error) {
	port, err := strconv.Atoi(cfg.Port)
	if err != nil {
		return "", fmt.Errorf("invalid RabbitMQ port %q: %w", cfg.Port, err)
	}
	vhost := cfg.Vhost
	if vhost == "" {
		vhost = "/"
	}
	uri := amqp.URI{
		Scheme:   "amqp",
		Host:     cfg.Host,
		Port:     port,
		Username: cfg.Username,
		Password: cfg.Password,
		Vhost:    vhost,
	}
	return uri.String(), nil
}

// ConnectRabbitMQ establishes a named connection to RabbitMQ and opens one channel
// for publishing quote events.
func ConnectRabbitMQ(cfg config.RabbitMQConfig) (*RabbitMQConnection, error) {
	uri, err := BrokerURI(cfg)
	if err != nil {
		return nil, err
	}

	props := amqp.NewConnectionProperties()
	props.SetClientConnectionName(ConnectionName)

	conn, err := amqp.DialConfig(uri, amqp.Config{
		Heartbeat:  10 * time.Second,
		Locale:     "en_US",
		Properties: props,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	slog.Info("Connected to RabbitMQ", "host", cfg.Host, "port", cfg.Port, "vhost", cfg.Vhost, "connection_name", ConnectionName)

	return &RabbitMQConnection{
		Connection: conn,
		Channel:    ch,
	}, nil
}

// NewQuotePublisher returns a publisher on the connection's channel that stops
// publishing once the broker closes the channel.
func (r *RabbitMQConnection) NewQuotePublisher() *QuotePublisher {
	p := NewQuotePublisher(r.Channel)
	go p.WatchClose(r.Channel.NotifyClose(make(chan *amqp.Error, 1)))
	return p
}

// Close closes the RabbitMQ connection and channel
func (r *RabbitMQConnection) Close() error {
	if r.Channel != nil {
		if err := r.Channel.Close(); err != nil {
			slog.Error("failed to close RabbitMQ channel", "error", err)
		}
	}
	if r.Connection != nil {
		if err := r.Connection.Close(); err != nil {
			slog.Error("failed to close RabbitMQ connection", "error", err)
			return err
		}
	}
	slog.Info("RabbitMQ connection closed")
	return nil
}
