package domain

import (
	"time"

	"github.com/google/uuid"
)

// Rating is a guest product rating with an optional free-text review.
// Ratings are aggregated at read time.
type Rating struct {
	ID        uuid.UUID `json:"id" db:"id"`
	ProductID uuid.UUID `json:"productId" db:"product_id"`
	Rating    int       `json:"rating" db:"rating"`
	Review    *string   `json:"review" db:"review"`
	GuestName *string   `json:"guestName" db:"guest_name"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// Review is the comment-only sibling of Rating. Submitting one recomputes
// the product's persisted averageRating and reviewCount from the full set.
// Both shapes are kept for compatibility with existing clients.
type Review struct {
	ID        uuid.UUID `json:"id" db:"id"`
	ProductID uuid.UUID `json:"productId" db:"product_id"`
	Rating    int       `json:"rating" db:"rating"`
	Comment   *string   `json:"comment" db:"comment"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
