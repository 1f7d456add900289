package domain

import (
	"time"

	"github.com/google/uuid"
)

// Product represents a product in the catalog. AverageRating and
// TotalRatings are filled from rating rows at read time; the review flow
// persists them denormalized on the product row instead.
type Product struct {
	ID            uuid.UUID         `json:"id" db:"id"`
	Name          string            `json:"name" db:"name"`
	Description   string            `json:"description" db:"description"`
	Price         float64           `json:"price" db:"price"`
	Stock         int               `json:"stock" db:"stock"`
	CategoryID    uuid.UUID         `json:"categoryId" db:"category_id"`
	Category      *Category         `json:"category,omitempty"`
	ImageURL      string            `json:"imageUrl" db:"image_url"`
	Images        []*ProductImage   `json:"images,omitempty"`
	Variants      []*ProductVariant `json:"variants,omitempty"`
	AverageRating float64           `json:"averageRating" db:"average_rating"`
	TotalRatings  int               `json:"totalRatings" db:"review_count"`
	CreatedAt     time.Time         `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time         `json:"updatedAt" db:"updated_at"`
}

// Category represents a product category. Slug is the stable filter key
// used by the catalog listing endpoint.
type Category struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Slug        string    `json:"slug" db:"slug"`
	Description string    `json:"description" db:"description"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}

// ProductVariant is a purchasable configuration of a product. Price is an
// optional override of the product price; Stock is always the variant's
// own count and never inherited from the product.
type ProductVariant struct {
	ID        uuid.UUID `json:"id" db:"id"`
	ProductID uuid.UUID `json:"productId" db:"product_id"`
	SKU       *string   `json:"sku" db:"sku"`
	Size      *string   `json:"size" db:"size"`
	Color     *string   `json:"color" db:"color"`
	Material  *string   `json:"material" db:"material"`
	Price     *float64  `json:"price" db:"price"`
	Stock     int       `json:"stock" db:"stock"`
	ImageURL  *string   `json:"imageUrl" db:"image_url"`
	IsDefault bool      `json:"isDefault" db:"is_default"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// ProductImage is one entry of a product's gallery. Order controls display
// position; ties are broken by insertion order.
type ProductImage struct {
	ID        uuid.UUID `json:"id" db:"id"`
	ProductID uuid.UUID `json:"productId" db:"product_id"`
	URL       string    `json:"url" db:"url"`
	Alt       *string   `json:"alt" db:"alt"`
	Order     int       `json:"order" db:"order"`
	IsPrimary bool      `json:"isPrimary" db:"is_primary"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}
