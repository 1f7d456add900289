package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"storefront/internal/domain"

	"github.com/google/uuid"
)

var (
	ErrOrderNotFound = errors.New("order not found")
	// ErrInsufficientStock is returned when the conditional stock
	// decrement matches no row, i.e. another checkout got there first.
	ErrInsufficientStock = errors.New("insufficient stock")
)

// OrderRepository defines the interface for order persistence.
type OrderRepository interface {
	// Create inserts the order with its items and decrements the stock of
	// every line in a single transaction. Stock decrements are guarded by
	// stock >= quantity, so two simultaneous checkouts of the last unit
	// cannot both succeed.
	Create(ctx context.Context, order *domain.Order) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Order, error)
}

type orderRepository struct {
	db *sql.DB
}

// NewOrderRepository creates a new instance of OrderRepository.
func NewOrderRepository(db *sql.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) Create(ctx context.Context, order *domain.Order) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	orderQuery := `
		INSERT INTO orders (id, customer_name, customer_phone, address, total_amount, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err = tx.ExecContext(
		ctx,
		orderQuery,
		order.ID,
		order.CustomerName,
		order.CustomerPhone,
		order.Address,
		order.TotalAmount,
		order.Status,
		order.CreatedAt,
		order.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}

	itemQuery := `
		INSERT INTO order_items (id, order_id, product_id, variant_id, quantity, price_at_time, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	for _, item := range order.Items {
		_, err = tx.ExecContext(
			ctx,
			itemQuery,
			item.ID,
			item.OrderID,
			item.ProductID,
			item.VariantID,
			item.Quantity,
			item.PriceAtTime,
			item.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to create order item: %w", err)
		}

		if err := decrementStock(ctx, tx, item); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit order: %w", err)
	}

	return nil
}

// decrementStock takes the ordered quantity off the variant when one was
// selected, otherwise off the product. A zero-row update means stock ran
// out between display and checkout.
func decrementStock(ctx context.Context, tx *sql.Tx, item *domain.OrderItem) error {
	var result sql.Result
	var err error

	if item.VariantID != nil {
		result, err = tx.ExecContext(ctx, `
			UPDATE product_variants
			SET stock = stock - $1
			WHERE id = $2 AND stock >= $1
		`, item.Quantity, *item.VariantID)
	} else {
		result, err = tx.ExecContext(ctx, `
			UPDATE products
			SET stock = stock - $1
			WHERE id = $2 AND stock >= $1
		`, item.Quantity, item.ProductID)
	}

	if err != nil {
		return fmt.Errorf("failed to decrement stock: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrInsufficientStock
	}

	return nil
}

// FindByID retrieves an order with its items.
func (r *orderRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	orderQuery := `
		SELECT id, customer_name, customer_phone, address, total_amount, status, created_at, updated_at
		FROM orders
		WHERE id = $1
	`

	order := &domain.Order{}
	err := r.db.QueryRowContext(ctx, orderQuery, id).Scan(
		&order.ID,
		&order.CustomerName,
		&order.CustomerPhone,
		&order.Address,
		&order.TotalAmount,
		&order.Status,
		&order.CreatedAt,
		&order.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to find order by ID: %w", err)
	}

	itemsQuery := `
		SELECT id, order_id, product_id, variant_id, quantity, price_at_time, created_at
		FROM order_items
		WHERE order_id = $1
		ORDER BY created_at ASC
	`

	rows, err := r.db.QueryContext(ctx, itemsQuery, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load order items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		item := &domain.OrderItem{}
		var variantID uuid.NullUUID
		err := rows.Scan(
			&item.ID,
			&item.OrderID,
			&item.ProductID,
			&variantID,
			&item.Quantity,
			&item.PriceAtTime,
			&item.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}

		if variantID.Valid {
			v := variantID.UUID
			item.VariantID = &v
		}
		order.Items = append(order.Items, item)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating order items: %w", err)
	}

	return order, nil
}
