package transport

import (
	"context"

	"storefront/internal/cart"
	"storefront/internal/domain"
	"storefront/internal/repository"
	"storefront/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type mockCatalogService struct {
	mock.Mock
}

func (m *mockCatalogService) ListProducts(ctx context.Context, filter repository.ProductFilter) ([]*domain.Product, error) {
	args := m.Called(ctx, filter)
	if products, ok := args.Get(0).([]*domain.Product); ok {
		return products, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCatalogService) GetProduct(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	args := m.Called(ctx, id)
	if p, ok := args.Get(0).(*domain.Product); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCatalogService) CreateProduct(ctx context.Context, input service.ProductInput) (*domain.Product, error) {
	args := m.Called(ctx, input)
	if p, ok := args.Get(0).(*domain.Product); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCatalogService) UpdateProduct(ctx context.Context, id uuid.UUID, input service.ProductInput) (*domain.Product, error) {
	args := m.Called(ctx, id, input)
	if p, ok := args.Get(0).(*domain.Product); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCatalogService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockCatalogService) ListCategories(ctx context.Context) ([]*domain.Category, error) {
	args := m.Called(ctx)
	if categories, ok := args.Get(0).([]*domain.Category); ok {
		return categories, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCatalogService) CreateCategory(ctx context.Context, input service.CategoryInput) (*domain.Category, error) {
	args := m.Called(ctx, input)
	if c, ok := args.Get(0).(*domain.Category); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockRatingService struct {
	mock.Mock
}

func (m *mockRatingService) SubmitRating(ctx context.Context, productID uuid.UUID, input service.RatingInput) (*domain.Rating, error) {
	args := m.Called(ctx, productID, input)
	if r, ok := args.Get(0).(*domain.Rating); ok {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRatingService) ListRatings(ctx context.Context, productID uuid.UUID) (*service.RatingList, error) {
	args := m.Called(ctx, productID)
	if list, ok := args.Get(0).(*service.RatingList); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockOrderService struct {
	mock.Mock
}

func (m *mockOrderService) PlaceOrder(ctx context.Context, req *cart.CreateOrderRequest) (*domain.Order, error) {
	args := m.Called(ctx, req)
	if o, ok := args.Get(0).(*domain.Order); ok {
		return o, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockOrderService) GetOrder(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	args := m.Called(ctx, id)
	if o, ok := args.Get(0).(*domain.Order); ok {
		return o, args.Error(1)
	}
	return nil, args.Error(1)
}
