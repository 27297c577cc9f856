package entities

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestShippingTotal(t *testing.T) {
	s := &Shipping{
		OrderLines: []OrderLine{
			{ProductID: "p-1", Price: decimal.RequireFromString("12.50"), Quantity: 2},
			{ProductID: "p-2", Price: decimal.RequireFromString("3.25"), Quantity: 4},
		},
	}

	assert.True(t, decimal.RequireFromString("38").Equal(s.Total()))
	assert.Equal(t, 6, s.ItemCount())
}

func TestShippingTotalWithoutLines(t *testing.T) {
	s := &Shipping{}

	assert.True(t, s.Total().IsZero())
	assert.Equal(t, 0, s.ItemCount())
}
