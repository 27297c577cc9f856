package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/RehanAthallahAzhar/tokohobby-shippings/internal/entities"
)

// DefaultPostalCarrierID is preselected on a blank shipping form.
const DefaultPostalCarrierID = 1

type OrderLineViewModel struct {
	ProductID    string          `validate:"required,max=64"`
	ProductName  string          `validate:"max=200"`
	ProductImage string          `validate:"max=2048"`
	ProductPrice decimal.Decimal `validate:"-"`
	Quantity     int             `validate:"gte=1,lte=10000"`
}

func (l OrderLineViewModel) Subtotal() decimal.Decimal {
	return l.ProductPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

type ShippingViewModel struct {
	ID                string `validate:"omitempty,max=64"`
	CompanyName       string `validate:"required,max=100"`
	ContactPerson     string `validate:"required,max=100"`
	Email             string `validate:"required,email,max=254"`
	PhoneNumber       string `validate:"omitempty,max=30"`
	Address           string `validate:"required,max=200"`
	City              string `validate:"required,max=100"`
	PostalCode        string `validate:"required,max=16"`
	TrackingCode      string `validate:"omitempty,max=64"`
	OrderDate         time.Time
	Status            string `validate:"required,oneof=pending ready shipped delivered cancelled"`
	PostalCarrierID   int    `validate:"required,gt=0"`
	PostalCarrierName string
	TotalAmount       decimal.Decimal `validate:"-"`
	MaxAvailableItems int
	OrderLines        []OrderLineViewModel `validate:"dive"`
}

// CanAddOrderLine reports whether the form may offer another product.
// A zero MaxAvailableItems means the limit is unknown.
func (vm ShippingViewModel) CanAddOrderLine() bool {
	return vm.MaxAvailableItems == 0 || len(vm.OrderLines) < vm.MaxAvailableItems
}

type ShippingSummaryViewModel struct {
	ID                string
	CompanyName       string
	ContactPerson     string
	City              string
	OrderDate         time.Time
	Status            string
	PostalCarrierName string
	TrackingCode      string
	ItemCount         int
	TotalAmount       decimal.Decimal
}

// ShippingFormPage is what the create and edit views render: the model being
// edited, the postal carrier dropdown and the validation state.
type ShippingFormPage struct {
	Shipping       ShippingViewModel
	PostalCarriers []entities.PostalCarrier
	Statuses       []entities.ShippingStatus
	Errors         map[string]string
	CSRFToken      string
}

func (p ShippingFormPage) HasErrors() bool {
	return len(p.Errors) > 0
}

type ErrorPage struct {
	Status    int
	Message   string
	RequestID string
}
