package main

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	shippingMsg "github.com/RehanAthallahAzhar/tokohobby-shippings/internal/messaging"
)

// maxHistoryEntries bounds the timeline kept per shipping.
const maxHistoryEntries = 50

type HistoryStore interface {
	PushCapped(ctx context.Context, key string, value []byte, max int64) error
}

// HistoryService keeps a short, newest-first timeline of events per shipping.
type HistoryService struct {
	store HistoryStore
	log   *logrus.Logger
}

func NewHistoryService(store HistoryStore, log *logrus.Logger) *HistoryService {
	return &HistoryService{store: store, log: log}
}

type historyEntry struct {
	Type         string `json:"type"`
	Status       string `json:"status"`
	TrackingCode string `json:"tracking_code,omitempty"`
	TotalAmount  string `json:"total_amount"`
	OccurredAt   string `json:"occurred_at"`
}

func HistoryKey(shippingID string) string {
	return "shipping:history:" + shippingID
}

func (s *HistoryService) Handle(ctx context.Context, body []byte) error {
	var event shippingMsg.ShippingEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return fmt.Errorf("failed to unmarshal: %w", err)
	}
	if event.ShippingID == "" {
		return fmt.Errorf("event %q has no shipping id", event.Type)
	}

	entry, err := json.Marshal(historyEntry{
		Type:         event.Type,
		Status:       string(event.Status),
		TrackingCode: event.TrackingCode,
		TotalAmount:  event.TotalAmount,
		OccurredAt:   event.OccurredAt.UTC().Format(time.RFC3339),
	})
	if err != nil {
		return fmt.Errorf("failed to encode history entry: %w", err)
	}

	if err := s.store.PushCapped(ctx, HistoryKey(event.ShippingID), entry, maxHistoryEntries); err != nil {
		return fmt.Errorf("failed to store history for %s: %w", event.ShippingID, err)
	}

	s.log.WithFields(logrus.Fields{
		"shipping_id": event.ShippingID,
		"event":       event.Type,
		"status":      event.Status,
	}).Info("Shipping history updated")
	return nil
}
