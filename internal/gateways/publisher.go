package gateway

import (
	"context"

	"github.com/RehanAthallahAzhar/tokohobby-shippings/internal/messaging"
)

type EventPublisher interface {
	PublishShippingCreated(ctx context.Context, event messaging.ShippingCreatedEvent) error
	PublishShippingUpdated(ctx context.Context, event messaging.ShippingUpdatedEvent) error
}
