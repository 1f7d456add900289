package repository

import (
	"context"
	"database/sql"
	"fmt"

	"storefront/internal/domain"

	"github.com/google/uuid"
)

// RatingRepository defines the interface for guest-rating data access.
type RatingRepository interface {
	Create(ctx context.Context, rating *domain.Rating) error
	ListByProduct(ctx context.Context, productID uuid.UUID) ([]*domain.Rating, error)
	ValuesByProduct(ctx context.Context, productID uuid.UUID) ([]int, error)
	ValuesByProductIDs(ctx context.Context, productIDs []uuid.UUID) (map[uuid.UUID][]int, error)
}

type ratingRepository struct {
	db *sql.DB
}

// NewRatingRepository creates a new instance of RatingRepository.
func NewRatingRepository(db *sql.DB) RatingRepository {
	return &ratingRepository{db: db}
}

// Create inserts a new rating using parameterized queries.
func (r *ratingRepository) Create(ctx context.Context, rating *domain.Rating) error {
	query := `
		INSERT INTO ratings (id, product_id, rating, review, guest_name, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.ExecContext(
		ctx,
		query,
		rating.ID,
		rating.ProductID,
		rating.Rating,
		rating.Review,
		rating.GuestName,
		rating.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create rating: %w", err)
	}

	return nil
}

// ListByProduct retrieves a product's ratings, newest first.
func (r *ratingRepository) ListByProduct(ctx context.Context, productID uuid.UUID) ([]*domain.Rating, error) {
	query := `
		SELECT id, product_id, rating, review, guest_name, created_at
		FROM ratings
		WHERE product_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to list ratings: %w", err)
	}
	defer rows.Close()

	ratings := []*domain.Rating{}
	for rows.Next() {
		rating := &domain.Rating{}
		var review, guestName sql.NullString
		err := rows.Scan(
			&rating.ID,
			&rating.ProductID,
			&rating.Rating,
			&review,
			&guestName,
			&rating.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan rating: %w", err)
		}

		rating.Review = nullString(review)
		rating.GuestName = nullString(guestName)
		ratings = append(ratings, rating)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ratings: %w", err)
	}

	return ratings, nil
}

// ValuesByProduct retrieves only the numeric rating values for a product,
// enough for aggregate computation without the text columns.
func (r *ratingRepository) ValuesByProduct(ctx context.Context, productID uuid.UUID) ([]int, error) {
	query := `SELECT rating FROM ratings WHERE product_id = $1`

	rows, err := r.db.QueryContext(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to load rating values: %w", err)
	}
	defer rows.Close()

	values := []int{}
	for rows.Next() {
		var v int
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("failed to scan rating value: %w", err)
		}
		values = append(values, v)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rating values: %w", err)
	}

	return values, nil
}

// ValuesByProductIDs retrieves rating values for many products at once,
// keyed by product ID, so a catalog listing needs a single query.
func (r *ratingRepository) ValuesByProductIDs(ctx context.Context, productIDs []uuid.UUID) (map[uuid.UUID][]int, error) {
	values := make(map[uuid.UUID][]int, len(productIDs))
	if len(productIDs) == 0 {
		return values, nil
	}

	query := fmt.Sprintf(`
		SELECT product_id, rating
		FROM ratings
		WHERE product_id IN (%s)
	`, placeholders(1, len(productIDs)))

	rows, err := r.db.QueryContext(ctx, query, idArgs(productIDs)...)
	if err != nil {
		return nil, fmt.Errorf("failed to load rating values: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var productID uuid.UUID
		var v int
		if err := rows.Scan(&productID, &v); err != nil {
			return nil, fmt.Errorf("failed to scan rating value: %w", err)
		}
		values[productID] = append(values[productID], v)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rating values: %w", err)
	}

	return values, nil
}
