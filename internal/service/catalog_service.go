package service

import (
	"context"
	"fmt"
	"time"

	"storefront/internal/catalog"
	"storefront/internal/database"
	"storefront/internal/domain"
	"storefront/internal/repository"

	"github.com/google/uuid"
)

// ProductInput carries the writable product fields for create and update.
type ProductInput struct {
	Name        string    `json:"name" validate:"required"`
	Description string    `json:"description"`
	Price       float64   `json:"price" validate:"gte=0"`
	Stock       int       `json:"stock" validate:"gte=0"`
	ImageURL    string    `json:"imageUrl"`
	CategoryID  uuid.UUID `json:"categoryId" validate:"required"`
}

// CategoryInput carries the writable category fields.
type CategoryInput struct {
	Name        string `json:"name" validate:"required"`
	Slug        string `json:"slug" validate:"required,lowercase"`
	Description string `json:"description"`
}

// CatalogService is the business logic behind the product and category
// endpoints.
type CatalogService interface {
	ListProducts(ctx context.Context, filter repository.ProductFilter) ([]*domain.Product, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	CreateProduct(ctx context.Context, input ProductInput) (*domain.Product, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, input ProductInput) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error
	ListCategories(ctx context.Context) ([]*domain.Category, error)
	CreateCategory(ctx context.Context, input CategoryInput) (*domain.Category, error)
}

type catalogService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	ratingRepo   repository.RatingRepository
	caps         database.Capabilities
}

// NewCatalogService creates a new instance of CatalogService.
func NewCatalogService(
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	ratingRepo repository.RatingRepository,
	caps database.Capabilities,
) CatalogService {
	return &catalogService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		ratingRepo:   ratingRepo,
		caps:         caps,
	}
}

// ListProducts returns the filtered catalog, newest first, with each
// product's rating aggregate computed from its rating rows.
func (s *catalogService) ListProducts(ctx context.Context, filter repository.ProductFilter) ([]*domain.Product, error) {
	products, err := s.productRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	if err := s.attachRatingAggregates(ctx, products); err != nil {
		return nil, err
	}

	return products, nil
}

// GetProduct returns one product with relations and rating aggregate.
func (s *catalogService) GetProduct(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.attachRatingAggregates(ctx, []*domain.Product{product}); err != nil {
		return nil, err
	}

	return product, nil
}

// attachRatingAggregates overwrites each product's averageRating and
// totalRatings with the aggregate over its rating rows. Skipped when the
// schema has no ratings table; the persisted review aggregate then stands.
func (s *catalogService) attachRatingAggregates(ctx context.Context, products []*domain.Product) error {
	if !s.caps.Ratings || len(products) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, len(products))
	for i, p := range products {
		ids[i] = p.ID
	}

	values, err := s.ratingRepo.ValuesByProductIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("failed to aggregate ratings: %w", err)
	}

	for _, p := range products {
		summary := catalog.AggregateRatings(values[p.ID])
		p.AverageRating = summary.Average
		p.TotalRatings = summary.Count
	}

	return nil
}

// CreateProduct validates the category reference and inserts the product.
func (s *catalogService) CreateProduct(ctx context.Context, input ProductInput) (*domain.Product, error) {
	if _, err := s.categoryRepo.FindByID(ctx, input.CategoryID); err != nil {
		return nil, err
	}

	now := time.Now()
	product := &domain.Product{
		ID:          uuid.New(),
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		Stock:       input.Stock,
		CategoryID:  input.CategoryID,
		ImageURL:    input.ImageURL,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	return product, nil
}

// UpdateProduct overwrites the product's writable fields.
func (s *catalogService) UpdateProduct(ctx context.Context, id uuid.UUID, input ProductInput) (*domain.Product, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if product.CategoryID != input.CategoryID {
		if _, err := s.categoryRepo.FindByID(ctx, input.CategoryID); err != nil {
			return nil, err
		}
	}

	product.Name = input.Name
	product.Description = input.Description
	product.Price = input.Price
	product.Stock = input.Stock
	product.ImageURL = input.ImageURL
	product.CategoryID = input.CategoryID
	product.UpdatedAt = time.Now()

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}

// DeleteProduct removes the product; dependents cascade in the schema.
func (s *catalogService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	return s.productRepo.Delete(ctx, id)
}

// ListCategories returns all categories ordered by name.
func (s *catalogService) ListCategories(ctx context.Context) ([]*domain.Category, error) {
	return s.categoryRepo.List(ctx)
}

// CreateCategory inserts a new category.
func (s *catalogService) CreateCategory(ctx context.Context, input CategoryInput) (*domain.Category, error) {
	category := &domain.Category{
		ID:          uuid.New(),
		Name:        input.Name,
		Slug:        input.Slug,
		Description: input.Description,
		CreatedAt:   time.Now(),
	}

	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}

	return category, nil
}
