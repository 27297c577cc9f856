package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

type ShippingStatus string

const (
	ShippingStatusPending   ShippingStatus = "pending"
	ShippingStatusReady     ShippingStatus = "ready"
	ShippingStatusShipped   ShippingStatus = "shipped"
	ShippingStatusDelivered ShippingStatus = "delivered"
	ShippingStatusCancelled ShippingStatus = "cancelled"
)

// ShippingStatuses lists every status in the order they are offered on forms.
var ShippingStatuses = []ShippingStatus{
	ShippingStatusPending,
	ShippingStatusReady,
	ShippingStatusShipped,
	ShippingStatusDelivered,
	ShippingStatusCancelled,
}

type PostalCarrier struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type Product struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Image string          `json:"image"`
	Price decimal.Decimal `json:"price"`
}

type OrderLine struct {
	ID        int64           `json:"id"`
	OrderID   string          `json:"order_id"`
	ProductID string          `json:"product_id"`
	Product   *Product        `json:"product,omitempty"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
}

// Subtotal is the line price multiplied by its quantity.
func (l OrderLine) Subtotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

type Shipping struct {
	ID              string         `json:"id"`
	CompanyName     string         `json:"company_name"`
	ContactPerson   string         `json:"contact_person"`
	Email           string         `json:"email"`
	PhoneNumber     string         `json:"phone_number"`
	Address         string         `json:"address"`
	City            string         `json:"city"`
	PostalCode      string         `json:"postal_code"`
	TrackingCode    string         `json:"tracking_code"`
	OrderDate       time.Time      `json:"order_date"`
	Status          ShippingStatus `json:"status"`
	PostalCarrierID int            `json:"postal_carrier_id"`
	PostalCarrier   *PostalCarrier `json:"postal_carrier,omitempty"`
	OrderLines      []OrderLine    `json:"order_lines"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

func (s *Shipping) Total() decimal.Decimal {
	total := decimal.Zero
	for _, line := range s.OrderLines {
		total = total.Add(line.Subtotal())
	}
	return total
}

func (s *Shipping) ItemCount() int {
	count := 0
	for _, line := range s.OrderLines {
		count += line.Quantity
	}
	return count
}
