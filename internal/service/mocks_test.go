package service

import (
	"context"

	"storefront/internal/domain"
	"storefront/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type mockProductRepository struct {
	mock.Mock
}

func (m *mockProductRepository) Create(ctx context.Context, product *domain.Product) error {
	return m.Called(ctx, product).Error(0)
}

func (m *mockProductRepository) Update(ctx context.Context, product *domain.Product) error {
	return m.Called(ctx, product).Error(0)
}

func (m *mockProductRepository) UpdateAggregates(ctx context.Context, productID uuid.UUID, averageRating float64, reviewCount int) error {
	return m.Called(ctx, productID, averageRating, reviewCount).Error(0)
}

func (m *mockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	args := m.Called(ctx, id)
	if p, ok := args.Get(0).(*domain.Product); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockProductRepository) List(ctx context.Context, filter repository.ProductFilter) ([]*domain.Product, error) {
	args := m.Called(ctx, filter)
	if products, ok := args.Get(0).([]*domain.Product); ok {
		return products, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockCategoryRepository struct {
	mock.Mock
}

func (m *mockCategoryRepository) Create(ctx context.Context, category *domain.Category) error {
	return m.Called(ctx, category).Error(0)
}

func (m *mockCategoryRepository) List(ctx context.Context) ([]*domain.Category, error) {
	args := m.Called(ctx)
	if categories, ok := args.Get(0).([]*domain.Category); ok {
		return categories, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Category, error) {
	args := m.Called(ctx, id)
	if c, ok := args.Get(0).(*domain.Category); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCategoryRepository) FindBySlug(ctx context.Context, slug string) (*domain.Category, error) {
	args := m.Called(ctx, slug)
	if c, ok := args.Get(0).(*domain.Category); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockRatingRepository struct {
	mock.Mock
}

func (m *mockRatingRepository) Create(ctx context.Context, rating *domain.Rating) error {
	return m.Called(ctx, rating).Error(0)
}

func (m *mockRatingRepository) ListByProduct(ctx context.Context, productID uuid.UUID) ([]*domain.Rating, error) {
	args := m.Called(ctx, productID)
	if ratings, ok := args.Get(0).([]*domain.Rating); ok {
		return ratings, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRatingRepository) ValuesByProduct(ctx context.Context, productID uuid.UUID) ([]int, error) {
	args := m.Called(ctx, productID)
	if values, ok := args.Get(0).([]int); ok {
		return values, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRatingRepository) ValuesByProductIDs(ctx context.Context, productIDs []uuid.UUID) (map[uuid.UUID][]int, error) {
	args := m.Called(ctx, productIDs)
	if values, ok := args.Get(0).(map[uuid.UUID][]int); ok {
		return values, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockReviewRepository struct {
	mock.Mock
}

func (m *mockReviewRepository) Create(ctx context.Context, review *domain.Review) error {
	return m.Called(ctx, review).Error(0)
}

func (m *mockReviewRepository) ListByProduct(ctx context.Context, productID uuid.UUID) ([]*domain.Review, error) {
	args := m.Called(ctx, productID)
	if reviews, ok := args.Get(0).([]*domain.Review); ok {
		return reviews, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockReviewRepository) ValuesByProduct(ctx context.Context, productID uuid.UUID) ([]int, error) {
	args := m.Called(ctx, productID)
	if values, ok := args.Get(0).([]int); ok {
		return values, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockOrderRepository struct {
	mock.Mock
}

func (m *mockOrderRepository) Create(ctx context.Context, order *domain.Order) error {
	return m.Called(ctx, order).Error(0)
}

func (m *mockOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	args := m.Called(ctx, id)
	if o, ok := args.Get(0).(*domain.Order); ok {
		return o, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) OrderCreated(order *domain.Order) error {
	return m.Called(order).Error(0)
}

func (m *mockPublisher) Close() error {
	return m.Called().Error(0)
}
