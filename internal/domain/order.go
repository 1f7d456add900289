package domain

import (
	"time"

	"github.com/google/uuid"
)

// Order statuses. New orders start as pending.
const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusCompleted  = "completed"
	OrderStatusCancelled  = "cancelled"
)

// Order is a placed customer order with its shipping details snapshot.
type Order struct {
	ID            uuid.UUID    `json:"id" db:"id"`
	CustomerName  string       `json:"customerName" db:"customer_name"`
	CustomerPhone string       `json:"customerPhone" db:"customer_phone"`
	Address       string       `json:"address" db:"address"`
	TotalAmount   float64      `json:"totalAmount" db:"total_amount"`
	Status        string       `json:"status" db:"status"`
	Items         []*OrderItem `json:"items,omitempty"`
	CreatedAt     time.Time    `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time    `json:"updatedAt" db:"updated_at"`
}

// OrderItem is one line of an order. PriceAtTime is the effective price
// resolved at checkout, so later catalog edits do not rewrite history.
type OrderItem struct {
	ID          uuid.UUID  `json:"id" db:"id"`
	OrderID     uuid.UUID  `json:"orderId" db:"order_id"`
	ProductID   uuid.UUID  `json:"productId" db:"product_id"`
	VariantID   *uuid.UUID `json:"variantId" db:"variant_id"`
	Quantity    int        `json:"quantity" db:"quantity"`
	PriceAtTime float64    `json:"priceAtTime" db:"price_at_time"`
	CreatedAt   time.Time  `json:"createdAt" db:"created_at"`
}
