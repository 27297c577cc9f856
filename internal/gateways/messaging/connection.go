package messaging

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/streadway/amqp"

	"github.com/RehanAthallahAzhar/tokohobby-shippings/internal/configs"
)

const exchangeKind = "topic"

// Dial connects to RabbitMQ, retrying up to cfg.MaxRetries times.
func Dial(cfg *configs.RabbitMQConfig, log *logrus.Logger) (*amqp.Connection, error) {
	attempts := cfg.MaxRetries
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		conn, err := amqp.Dial(cfg.URL)
		if err == nil {
			log.Info("Connected to RabbitMQ")
			return conn, nil
		}

		lastErr = err
		log.WithFields(logrus.Fields{"attempt": attempt, "max": attempts}).Warnf("RabbitMQ dial failed: %v", err)
		if attempt < attempts {
			time.Sleep(cfg.RetryDelay)
		}
	}

	return nil, fmt.Errorf("failed to connect to RabbitMQ after %d attempts: %w", attempts, lastErr)
}

func declareExchange(ch *amqp.Channel, exchange string) error {
	err := ch.ExchangeDeclare(
		exchange,     // name
		exchangeKind, // type
		true,         // durable
		false,        // auto-deleted
		false,        // internal
		false,        // no-wait
		nil,          // arguments
	)
	if err != nil {
		return fmt.Errorf("failed to declare exchange %s: %w", exchange, err)
	}
	return nil
}
