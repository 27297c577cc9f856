package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/streadway/amqp"

	shippingMsg "github.com/RehanAthallahAzhar/tokohobby-shippings/internal/messaging"
)

type RabbitMQPublisher struct {
	mu       sync.Mutex
	channel  *amqp.Channel
	exchange string
	log      *logrus.Logger
}

func NewRabbitMQPublisher(conn *amqp.Connection, exchange string, log *logrus.Logger) (*RabbitMQPublisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	if err := declareExchange(ch, exchange); err != nil {
		ch.Close()
		return nil, err
	}

	return &RabbitMQPublisher{channel: ch, exchange: exchange, log: log}, nil
}

func (p *RabbitMQPublisher) PublishShippingCreated(ctx context.Context, event shippingMsg.ShippingCreatedEvent) error {
	return p.publish(ctx, shippingMsg.EventShippingCreated, event.ShippingID, event)
}

func (p *RabbitMQPublisher) PublishShippingUpdated(ctx context.Context, event shippingMsg.ShippingUpdatedEvent) error {
	return p.publish(ctx, shippingMsg.EventShippingUpdated, event.ShippingID, event)
}

func (p *RabbitMQPublisher) publish(ctx context.Context, routingKey, shippingID string, event interface{}) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	// amqp channels are not safe for concurrent publishing.
	p.mu.Lock()
	defer p.mu.Unlock()

	err = p.channel.Publish(
		p.exchange, // exchange
		routingKey, // routing key
		false,      // mandatory
		false,      // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now().UTC(),
			Type:         routingKey,
			Body:         body,
		})
	if err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	p.log.WithField("shipping_id", shippingID).Infof("Published %s event", routingKey)
	return nil
}

func (p *RabbitMQPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.channel.Close()
}
