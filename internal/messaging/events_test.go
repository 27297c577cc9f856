package messaging

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RehanAthallahAzhar/tokohobby-shippings/internal/entities"
)

func TestNewShippingCreatedEvent(t *testing.T) {
	at := time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC)
	s := &entities.Shipping{
		ID:              "ship-1",
		CompanyName:     "Hobby Corner",
		Email:           "ops@hobby.example",
		Status:          entities.ShippingStatusReady,
		PostalCarrierID: 3,
		OrderLines: []entities.OrderLine{
			{ProductID: "p-1", Price: decimal.RequireFromString("4.5"), Quantity: 2},
		},
	}

	event := NewShippingCreatedEvent(s, at)

	body, err := json.Marshal(event)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &decoded))

	assert.Equal(t, EventShippingCreated, decoded["type"])
	assert.Equal(t, "ship-1", decoded["shipping_id"])
	assert.Equal(t, "9.00", decoded["total_amount"])
	assert.Equal(t, "ready", decoded["status"])
	assert.EqualValues(t, 1, decoded["line_count"])
}

func TestNewShippingUpdatedEventType(t *testing.T) {
	event := NewShippingUpdatedEvent(&entities.Shipping{ID: "ship-2"}, time.Now())

	assert.Equal(t, EventShippingUpdated, event.Type)
	assert.Equal(t, "0.00", event.TotalAmount)
}
