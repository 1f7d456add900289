package repository

import (
	"context"
	"database/sql"
	"fmt"

	"storefront/internal/domain"

	"github.com/google/uuid"
)

// ReviewRepository defines the interface for review data access. Reviews
// are the comment-only sibling of ratings; their aggregate is persisted on
// the product row by the service layer.
type ReviewRepository interface {
	Create(ctx context.Context, review *domain.Review) error
	ListByProduct(ctx context.Context, productID uuid.UUID) ([]*domain.Review, error)
	ValuesByProduct(ctx context.Context, productID uuid.UUID) ([]int, error)
}

type reviewRepository struct {
	db *sql.DB
}

// NewReviewRepository creates a new instance of ReviewRepository.
func NewReviewRepository(db *sql.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

// Create inserts a new review using parameterized queries.
func (r *reviewRepository) Create(ctx context.Context, review *domain.Review) error {
	query := `
		INSERT INTO reviews (id, product_id, rating, comment, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.ExecContext(
		ctx,
		query,
		review.ID,
		review.ProductID,
		review.Rating,
		review.Comment,
		review.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create review: %w", err)
	}

	return nil
}

// ListByProduct retrieves a product's reviews, newest first.
func (r *reviewRepository) ListByProduct(ctx context.Context, productID uuid.UUID) ([]*domain.Review, error) {
	query := `
		SELECT id, product_id, rating, comment, created_at
		FROM reviews
		WHERE product_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	defer rows.Close()

	reviews := []*domain.Review{}
	for rows.Next() {
		review := &domain.Review{}
		var comment sql.NullString
		err := rows.Scan(
			&review.ID,
			&review.ProductID,
			&review.Rating,
			&comment,
			&review.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan review: %w", err)
		}

		review.Comment = nullString(comment)
		reviews = append(reviews, review)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating reviews: %w", err)
	}

	return reviews, nil
}

// ValuesByProduct retrieves only the numeric rating values of a product's
// reviews, used to recompute the persisted aggregate after a submission.
func (r *reviewRepository) ValuesByProduct(ctx context.Context, productID uuid.UUID) ([]int, error) {
	query := `SELECT rating FROM reviews WHERE product_id = $1`

	rows, err := r.db.QueryContext(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to load review values: %w", err)
	}
	defer rows.Close()

	values := []int{}
	for rows.Next() {
		var v int
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("failed to scan review value: %w", err)
		}
		values = append(values, v)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating review values: %w", err)
	}

	return values, nil
}
