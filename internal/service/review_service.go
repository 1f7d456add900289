package service

import (
	"context"
	"fmt"
	"time"

	"storefront/internal/catalog"
	"storefront/internal/domain"
	"storefront/internal/repository"

	"github.com/google/uuid"
)

// ReviewInput is the body of a review submission.
type ReviewInput struct {
	Rating  int     `json:"rating" validate:"required,min=1,max=5"`
	Comment *string `json:"comment"`
}

// ReviewService handles review submissions. Unlike ratings, reviews keep
// their aggregate persisted on the product row, recomputed from the full
// set after every submission.
type ReviewService interface {
	SubmitReview(ctx context.Context, productID uuid.UUID, input ReviewInput) (*domain.Review, error)
	ListReviews(ctx context.Context, productID uuid.UUID) ([]*domain.Review, error)
}

type reviewService struct {
	reviewRepo  repository.ReviewRepository
	productRepo repository.ProductRepository
}

// NewReviewService creates a new instance of ReviewService.
func NewReviewService(reviewRepo repository.ReviewRepository, productRepo repository.ProductRepository) ReviewService {
	return &reviewService{reviewRepo: reviewRepo, productRepo: productRepo}
}

// SubmitReview stores the review, then recomputes the product's persisted
// averageRating and reviewCount from all of its reviews.
func (s *reviewService) SubmitReview(ctx context.Context, productID uuid.UUID, input ReviewInput) (*domain.Review, error) {
	if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
		return nil, err
	}

	review := &domain.Review{
		ID:        uuid.New(),
		ProductID: productID,
		Rating:    input.Rating,
		Comment:   input.Comment,
		CreatedAt: time.Now(),
	}

	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return nil, fmt.Errorf("failed to submit review: %w", err)
	}

	values, err := s.reviewRepo.ValuesByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	summary := catalog.AggregateRatings(values)
	if err := s.productRepo.UpdateAggregates(ctx, productID, summary.Average, summary.Count); err != nil {
		return nil, fmt.Errorf("failed to update product aggregates: %w", err)
	}

	return review, nil
}

// ListReviews returns a product's reviews, newest first.
func (s *reviewService) ListReviews(ctx context.Context, productID uuid.UUID) ([]*domain.Review, error) {
	if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
		return nil, err
	}

	return s.reviewRepo.ListByProduct(ctx, productID)
}
