// Package mocks holds testify mocks for the repository interfaces.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/RehanAthallahAzhar/tokohobby-shippings/internal/entities"
)

type OrderRepository struct {
	mock.Mock
}

func (m *OrderRepository) GetShippings(ctx context.Context) ([]entities.Shipping, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.Shipping), args.Error(1)
}

func (m *OrderRepository) GetShipping(ctx context.Context, id string) (*entities.Shipping, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Shipping), args.Error(1)
}

func (m *OrderRepository) GetProductCount(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *OrderRepository) GetProducts(ctx context.Context) ([]entities.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.Product), args.Error(1)
}

func (m *OrderRepository) GetPostalCarriers(ctx context.Context) ([]entities.PostalCarrier, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.PostalCarrier), args.Error(1)
}

func (m *OrderRepository) AddShipping(ctx context.Context, shipping *entities.Shipping) error {
	args := m.Called(ctx, shipping)
	return args.Error(0)
}

func (m *OrderRepository) UpdateShipping(ctx context.Context, shipping *entities.Shipping) error {
	args := m.Called(ctx, shipping)
	return args.Error(0)
}
