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

// RatingInput is the body of a rating submission.
type RatingInput struct {
	Rating    int     `json:"rating" validate:"required,min=1,max=5"`
	Review    *string `json:"review"`
	GuestName *string `json:"guestName"`
}

// RatingList is the response shape of the rating listing endpoint: the
// rows plus the aggregate computed over them.
type RatingList struct {
	Ratings       []*domain.Rating `json:"ratings"`
	AverageRating float64          `json:"averageRating"`
	TotalRatings  int              `json:"totalRatings"`
}

// RatingService handles guest rating submissions and listings.
type RatingService interface {
	SubmitRating(ctx context.Context, productID uuid.UUID, input RatingInput) (*domain.Rating, error)
	ListRatings(ctx context.Context, productID uuid.UUID) (*RatingList, error)
}

type ratingService struct {
	ratingRepo  repository.RatingRepository
	productRepo repository.ProductRepository
}

// NewRatingService creates a new instance of RatingService.
func NewRatingService(ratingRepo repository.RatingRepository, productRepo repository.ProductRepository) RatingService {
	return &ratingService{ratingRepo: ratingRepo, productRepo: productRepo}
}

// SubmitRating stores a rating for an existing product.
func (s *ratingService) SubmitRating(ctx context.Context, productID uuid.UUID, input RatingInput) (*domain.Rating, error) {
	if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
		return nil, err
	}

	rating := &domain.Rating{
		ID:        uuid.New(),
		ProductID: productID,
		Rating:    input.Rating,
		Review:    input.Review,
		GuestName: input.GuestName,
		CreatedAt: time.Now(),
	}

	if err := s.ratingRepo.Create(ctx, rating); err != nil {
		return nil, fmt.Errorf("failed to submit rating: %w", err)
	}

	return rating, nil
}

// ListRatings returns a product's ratings, newest first, with the
// aggregate over the full set.
func (s *ratingService) ListRatings(ctx context.Context, productID uuid.UUID) (*RatingList, error) {
	if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
		return nil, err
	}

	ratings, err := s.ratingRepo.ListByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	values := make([]int, len(ratings))
	for i, r := range ratings {
		values[i] = r.Rating
	}
	summary := catalog.AggregateRatings(values)

	return &RatingList{
		Ratings:       ratings,
		AverageRating: summary.Average,
		TotalRatings:  summary.Count,
	}, nil
}
