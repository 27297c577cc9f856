package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const OrderDateLayout = "2006-01-02"

// ShippingForm is the raw form post. Every field is bound as text so that
// the entered values survive a failed conversion and can be shown again.
// Order lines arrive as parallel repeated fields.
type ShippingForm struct {
	ID              string `form:"id"`
	CompanyName     string `form:"company_name"`
	ContactPerson   string `form:"contact_person"`
	Email           string `form:"email"`
	PhoneNumber     string `form:"phone_number"`
	Address         string `form:"address"`
	City            string `form:"city"`
	PostalCode      string `form:"postal_code"`
	TrackingCode    string `form:"tracking_code"`
	OrderDate       string `form:"order_date"`
	Status          string `form:"status"`
	PostalCarrierID string `form:"postal_carrier_id"`

	LineProductIDs    []string `form:"line_product_id"`
	LineProductNames  []string `form:"line_product_name"`
	LineProductImages []string `form:"line_product_image"`
	LinePrices        []string `form:"line_price"`
	LineQuantities    []string `form:"line_quantity"`
}

// ToViewModel converts the form into a view model. Conversion problems are
// returned as field errors keyed like validation errors.
func (f ShippingForm) ToViewModel() (ShippingViewModel, map[string]string) {
	fieldErrors := make(map[string]string)

	vm := ShippingViewModel{
		ID:            strings.TrimSpace(f.ID),
		CompanyName:   strings.TrimSpace(f.CompanyName),
		ContactPerson: strings.TrimSpace(f.ContactPerson),
		Email:         strings.TrimSpace(f.Email),
		PhoneNumber:   strings.TrimSpace(f.PhoneNumber),
		Address:       strings.TrimSpace(f.Address),
		City:          strings.TrimSpace(f.City),
		PostalCode:    strings.TrimSpace(f.PostalCode),
		TrackingCode:  strings.TrimSpace(f.TrackingCode),
		Status:        strings.TrimSpace(f.Status),
		OrderLines:    []OrderLineViewModel{},
	}

	if raw := strings.TrimSpace(f.OrderDate); raw != "" {
		orderDate, err := time.Parse(OrderDateLayout, raw)
		if err != nil {
			fieldErrors["OrderDate"] = "must be a date formatted as YYYY-MM-DD"
		} else {
			vm.OrderDate = orderDate
		}
	}

	if raw := strings.TrimSpace(f.PostalCarrierID); raw != "" {
		carrierID, err := strconv.Atoi(raw)
		if err != nil {
			fieldErrors["PostalCarrierID"] = "must be a number"
		} else {
			vm.PostalCarrierID = carrierID
		}
	}

	total := decimal.Zero
	for i, productID := range f.LineProductIDs {
		line := OrderLineViewModel{
			ProductID:    strings.TrimSpace(productID),
			ProductName:  valueAt(f.LineProductNames, i),
			ProductImage: valueAt(f.LineProductImages, i),
		}

		if raw := strings.TrimSpace(valueAt(f.LinePrices, i)); raw != "" {
			price, err := decimal.NewFromString(raw)
			if err != nil || price.IsNegative() {
				fieldErrors[fmt.Sprintf("OrderLines[%d].ProductPrice", i)] = "must be a positive amount"
			} else {
				line.ProductPrice = price
			}
		}

		quantity, err := strconv.Atoi(strings.TrimSpace(valueAt(f.LineQuantities, i)))
		if err != nil {
			fieldErrors[fmt.Sprintf("OrderLines[%d].Quantity", i)] = "must be a number"
		} else {
			line.Quantity = quantity
		}

		total = total.Add(line.Subtotal())
		vm.OrderLines = append(vm.OrderLines, line)
	}
	vm.TotalAmount = total

	return vm, fieldErrors
}

func valueAt(values []string, i int) string {
	if i < len(values) {
		return values[i]
	}
	return ""
}
