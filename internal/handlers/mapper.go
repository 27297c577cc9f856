package handlers

import (
	"github.com/RehanAthallahAzhar/tokohobby-shippings/internal/entities"
	"github.com/RehanAthallahAzhar/tokohobby-shippings/internal/models"
)

func toShippingViewModel(s *entities.Shipping) models.ShippingViewModel {
	vm := models.ShippingViewModel{
		ID:              s.ID,
		CompanyName:     s.CompanyName,
		ContactPerson:   s.ContactPerson,
		Email:           s.Email,
		PhoneNumber:     s.PhoneNumber,
		Address:         s.Address,
		City:            s.City,
		PostalCode:      s.PostalCode,
		TrackingCode:    s.TrackingCode,
		OrderDate:       s.OrderDate,
		Status:          string(s.Status),
		PostalCarrierID: s.PostalCarrierID,
		TotalAmount:     s.Total(),
		OrderLines:      make([]models.OrderLineViewModel, 0, len(s.OrderLines)),
	}
	if s.PostalCarrier != nil {
		vm.PostalCarrierName = s.PostalCarrier.Name
	}

	for _, line := range s.OrderLines {
		vm.OrderLines = append(vm.OrderLines, toOrderLineViewModel(line))
	}

	return vm
}

func toOrderLineViewModel(line entities.OrderLine) models.OrderLineViewModel {
	vm := models.OrderLineViewModel{
		ProductID:    line.ProductID,
		ProductPrice: line.Price,
		Quantity:     line.Quantity,
	}
	if line.Product != nil {
		vm.ProductName = line.Product.Name
		vm.ProductImage = line.Product.Image
	}
	return vm
}

func toShippingSummaries(shippings []entities.Shipping) []models.ShippingSummaryViewModel {
	summaries := make([]models.ShippingSummaryViewModel, 0, len(shippings))
	for i := range shippings {
		s := &shippings[i]

		summary := models.ShippingSummaryViewModel{
			ID:            s.ID,
			CompanyName:   s.CompanyName,
			ContactPerson: s.ContactPerson,
			City:          s.City,
			OrderDate:     s.OrderDate,
			Status:        string(s.Status),
			TrackingCode:  s.TrackingCode,
			ItemCount:     s.ItemCount(),
			TotalAmount:   s.Total(),
		}
		if s.PostalCarrier != nil {
			summary.PostalCarrierName = s.PostalCarrier.Name
		}

		summaries = append(summaries, summary)
	}
	return summaries
}

func toShippingEntity(vm models.ShippingViewModel) *entities.Shipping {
	shipping := &entities.Shipping{
		ID:              vm.ID,
		CompanyName:     vm.CompanyName,
		ContactPerson:   vm.ContactPerson,
		Email:           vm.Email,
		PhoneNumber:     vm.PhoneNumber,
		Address:         vm.Address,
		City:            vm.City,
		PostalCode:      vm.PostalCode,
		TrackingCode:    vm.TrackingCode,
		OrderDate:       vm.OrderDate,
		Status:          entities.ShippingStatus(vm.Status),
		PostalCarrierID: vm.PostalCarrierID,
		OrderLines:      make([]entities.OrderLine, 0, len(vm.OrderLines)),
	}

	for _, line := range vm.OrderLines {
		shipping.OrderLines = append(shipping.OrderLines, entities.OrderLine{
			OrderID:   vm.ID,
			ProductID: line.ProductID,
			Price:     line.ProductPrice,
			Quantity:  line.Quantity,
		})
	}

	return shipping
}

// toNewOrderLine is the line offered when a product is added to a form.
func toNewOrderLine(p entities.Product) models.OrderLineViewModel {
	return models.OrderLineViewModel{
		ProductID:    p.ID,
		ProductName:  p.Name,
		ProductImage: p.Image,
		ProductPrice: p.Price,
		Quantity:     1,
	}
}
