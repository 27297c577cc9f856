package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/RehanAthallahAzhar/tokohobby-shippings/internal/entities"
	shippingMsg "github.com/RehanAthallahAzhar/tokohobby-shippings/internal/messaging"
)

var statusSubjects = map[entities.ShippingStatus]string{
	entities.ShippingStatusPending:   "We received your order",
	entities.ShippingStatusReady:     "Your order is packed and ready",
	entities.ShippingStatusShipped:   "Your order has been shipped",
	entities.ShippingStatusDelivered: "Your order was delivered",
	entities.ShippingStatusCancelled: "Your order was cancelled",
}

// NotificationService tells the customer contact about their shipping. Mail
// delivery is mocked and only logged.
type NotificationService struct {
	log  *logrus.Logger
	sent func(to, subject string)
}

func NewNotificationService(log *logrus.Logger) *NotificationService {
	return &NotificationService{log: log}
}

func (s *NotificationService) Handle(ctx context.Context, body []byte) error {
	var event shippingMsg.ShippingEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return fmt.Errorf("failed to unmarshal: %w", err)
	}

	if event.Email == "" {
		s.log.WithField("shipping_id", event.ShippingID).Warn("Shipping has no contact email, skipping notification")
		return nil
	}

	subject := Subject(event)

	s.log.WithFields(logrus.Fields{
		"shipping_id": event.ShippingID,
		"event":       event.Type,
		"to":          event.Email,
		"subject":     subject,
	}).Info("[MOCK] Email sent")

	if s.sent != nil {
		s.sent(event.Email, subject)
	}
	return nil
}

// Subject picks the email subject line for an event.
func Subject(event shippingMsg.ShippingEvent) string {
	if event.Type == shippingMsg.EventShippingCreated {
		return statusSubjects[entities.ShippingStatusPending]
	}

	subject, ok := statusSubjects[event.Status]
	if !ok {
		subject = "Your shipping was updated"
	}
	if event.Status == entities.ShippingStatusShipped && event.TrackingCode != "" {
		subject = fmt.Sprintf("%s (tracking %s)", subject, event.TrackingCode)
	}
	return subject
}
