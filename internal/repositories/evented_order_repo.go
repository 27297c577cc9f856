package repositories

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/RehanAthallahAzhar/tokohobby-shippings/internal/entities"
	gateway "github.com/RehanAthallahAzhar/tokohobby-shippings/internal/gateways"
	"github.com/RehanAthallahAzhar/tokohobby-shippings/internal/messaging"
	"github.com/RehanAthallahAzhar/tokohobby-shippings/internal/metrics"
)

const publishTimeout = 5 * time.Second

type eventedOrderRepository struct {
	OrderRepository
	publisher gateway.EventPublisher
	log       *logrus.Logger
}

// NewEventedOrderRepository announces successful writes on the event bus.
// Reads pass straight through to next.
func NewEventedOrderRepository(next OrderRepository, publisher gateway.EventPublisher, log *logrus.Logger) OrderRepository {
	return &eventedOrderRepository{
		OrderRepository: next,
		publisher:       publisher,
		log:             log,
	}
}

func (r *eventedOrderRepository) AddShipping(ctx context.Context, shipping *entities.Shipping) error {
	if err := r.OrderRepository.AddShipping(ctx, shipping); err != nil {
		return err
	}
	metrics.RecordShippingMutation("create")

	event := messaging.NewShippingCreatedEvent(shipping, time.Now().UTC())
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		defer cancel()

		if err := r.publisher.PublishShippingCreated(ctx, event); err != nil {
			r.log.WithError(err).WithField("shipping_id", event.ShippingID).Warn("Failed to publish shipping created event")
		}
	}()

	return nil
}

func (r *eventedOrderRepository) UpdateShipping(ctx context.Context, shipping *entities.Shipping) error {
	if err := r.OrderRepository.UpdateShipping(ctx, shipping); err != nil {
		return err
	}
	metrics.RecordShippingMutation("update")

	event := messaging.NewShippingUpdatedEvent(shipping, time.Now().UTC())
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		defer cancel()

		if err := r.publisher.PublishShippingUpdated(ctx, event); err != nil {
			r.log.WithError(err).WithField("shipping_id", event.ShippingID).Warn("Failed to publish shipping updated event")
		}
	}()

	return nil
}
