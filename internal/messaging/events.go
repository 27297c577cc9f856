package messaging

import (
	"time"

	"github.com/RehanAthallahAzhar/tokohobby-shippings/internal/entities"
)

const (
	EventShippingCreated = "shipping.created"
	EventShippingUpdated = "shipping.updated"
)

// ShippingEvent is the payload shared by every shipping.* message.
type ShippingEvent struct {
	Type            string                  `json:"type"`
	ShippingID      string                  `json:"shipping_id"`
	CompanyName     string                  `json:"company_name"`
	ContactPerson   string                  `json:"contact_person"`
	Email           string                  `json:"email"`
	Status          entities.ShippingStatus `json:"status"`
	PostalCarrierID int                     `json:"postal_carrier_id"`
	TrackingCode    string                  `json:"tracking_code"`
	TotalAmount     string                  `json:"total_amount"`
	LineCount       int                     `json:"line_count"`
	OccurredAt      time.Time               `json:"occurred_at"`
}

// ShippingCreatedEvent is published once a new shipping is stored.
type ShippingCreatedEvent struct {
	ShippingEvent
}

// ShippingUpdatedEvent is published after an existing shipping was saved.
type ShippingUpdatedEvent struct {
	ShippingEvent
}

func NewShippingCreatedEvent(s *entities.Shipping, at time.Time) ShippingCreatedEvent {
	return ShippingCreatedEvent{ShippingEvent: newShippingEvent(EventShippingCreated, s, at)}
}

func NewShippingUpdatedEvent(s *entities.Shipping, at time.Time) ShippingUpdatedEvent {
	return ShippingUpdatedEvent{ShippingEvent: newShippingEvent(EventShippingUpdated, s, at)}
}

func newShippingEvent(eventType string, s *entities.Shipping, at time.Time) ShippingEvent {
	return ShippingEvent{
		Type:            eventType,
		ShippingID:      s.ID,
		CompanyName:     s.CompanyName,
		ContactPerson:   s.ContactPerson,
		Email:           s.Email,
		Status:          s.Status,
		PostalCarrierID: s.PostalCarrierID,
		TrackingCode:    s.TrackingCode,
		TotalAmount:     s.Total().StringFixed(2),
		LineCount:       len(s.OrderLines),
		OccurredAt:      at,
	}
}
