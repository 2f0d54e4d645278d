package event

import (
	"strconv"
	"strings"
	"testing"

	"quote-service/internal/config"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBrokerURI(t *testing.T) {
	tests := []struct {
		name  string
		cfg   config.RabbitMQConfig
		vhost string
	}{
		{"default vhost", config.RabbitMQConfig{Host: "rabbitmq", Port: "5672", Username: "admin", Password: "admin", Vhost: "/"}, ""},
		{"empty vhost", config.RabbitMQConfig{Host: "rabbitmq", Port: "5672", Username: "admin", Password: "admin"}, ""},
		{"named vhost", config.RabbitMQConfig{Host: "mq.internal", Port: "5673", Username: "quotes", Password: "p@ss:word/1", Vhost: "tractor"}, "tractor"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw, err := BrokerURI(tt.cfg)
			require.NoError(t, err)

			parsed, err := amqp.ParseURI(raw)
			require.NoError(t, err)
			assert.Equal(t, tt.cfg.Host, parsed.Host)
			assert.Equal(t, tt.cfg.Username, parsed.Username)
			assert.Equal(t, tt.cfg.Password, parsed.Password)
			assert.Equal(t, tt.cfg.Port, strconv.Itoa(parsed.Port))
			if tt.vhost != "" {
				assert.True(t, strings.HasSuffix(raw, "/"+tt.vhost), raw)
				assert.Equal(t, tt.vhost, parsed.Vhost)
			}
		})
	}
}

func TestBrokerURI_InvalidPort(t *testing.T) {
	_, err := BrokerURI(config.RabbitMQConfig{Host: "rabbitmq", Port: "amqp"})
	assert.Error(t, err)
}
