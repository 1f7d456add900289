package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"storefront/internal/domain"

	"github.com/google/uuid"
)

func newOrder(lines ...*domain.OrderItem) *domain.Order {
	now := time.Now()
	order := &domain.Order{
		ID:            uuid.New(),
		CustomerName:  "Ada Lovelace",
		CustomerPhone: "015551234567",
		Address:       "10 Example Street, Springfield",
		Status:        domain.OrderStatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	for _, line := range lines {
		line.ID = uuid.New()
		line.OrderID = order.ID
		line.CreatedAt = now
		order.TotalAmount += line.PriceAtTime * float64(line.Quantity)
		order.Items = append(order.Items, line)
	}
	return order
}

func productStock(t *testing.T, id uuid.UUID) int {
	t.Helper()
	var stock int
	if err := testDB.QueryRow("SELECT stock FROM products WHERE id = $1", id).Scan(&stock); err != nil {
		t.Fatalf("failed to read product stock: %v", err)
	}
	return stock
}

func TestOrderCreate(t *testing.T) {
	resetCatalog(t)
	ctx := context.Background()
	repo := NewOrderRepository(testDB)

	category := insertCategory(t, "Apparel", "apparel")

	t.Run("creates the order and decrements stock", func(t *testing.T) {
		product := insertProduct(t, "Classic T-Shirt", "", 24.99, 5, category.ID, time.Now())

		order := newOrder(&domain.OrderItem{ProductID: product.ID, Quantity: 2, PriceAtTime: 24.99})
		if err := repo.Create(ctx, order); err != nil {
			t.Fatalf("Create() error = %v", err)
		}

		if got := productStock(t, product.ID); got != 3 {
			t.Errorf("stock = %d, want 3 after ordering 2 of 5", got)
		}

		found, err := repo.FindByID(ctx, order.ID)
		if err != nil {
			t.Fatalf("FindByID() error = %v", err)
		}
		if found.TotalAmount != 49.98 || len(found.Items) != 1 {
			t.Errorf("order = %+v, want total 49.98 with one item", found)
		}
	})

	t.Run("ordering beyond stock rolls everything back", func(t *testing.T) {
		product := insertProduct(t, "Limited Hoodie", "", 59.99, 1, category.ID, time.Now())

		order := newOrder(&domain.OrderItem{ProductID: product.ID, Quantity: 2, PriceAtTime: 59.99})
		err := repo.Create(ctx, order)
		if !errors.Is(err, ErrInsufficientStock) {
			t.Fatalf("Create() error = %v, want ErrInsufficientStock", err)
		}

		if got := productStock(t, product.ID); got != 1 {
			t.Errorf("stock = %d, want untouched 1 after rollback", got)
		}
		if _, err := repo.FindByID(ctx, order.ID); !errors.Is(err, ErrOrderNotFound) {
			t.Errorf("FindByID() error = %v, want ErrOrderNotFound after rollback", err)
		}
	})

	t.Run("variant line decrements the variant not the product", func(t *testing.T) {
		product := insertProduct(t, "Wireless Headphones", "", 199.99, 10, category.ID, time.Now())
		variantID := uuid.New()
		_, err := testDB.Exec(`
			INSERT INTO product_variants (id, product_id, sku, stock, is_default, created_at, updated_at)
			VALUES ($1, $2, 'WH-VAR', 4, TRUE, NOW(), NOW())
		`, variantID, product.ID)
		if err != nil {
			t.Fatalf("failed to insert variant: %v", err)
		}

		order := newOrder(&domain.OrderItem{
			ProductID:   product.ID,
			VariantID:   &variantID,
			Quantity:    3,
			PriceAtTime: 199.99,
		})
		if err := repo.Create(ctx, order); err != nil {
			t.Fatalf("Create() error = %v", err)
		}

		var variantStock int
		if err := testDB.QueryRow("SELECT stock FROM product_variants WHERE id = $1", variantID).Scan(&variantStock); err != nil {
			t.Fatalf("failed to read variant stock: %v", err)
		}
		if variantStock != 1 {
			t.Errorf("variant stock = %d, want 1", variantStock)
		}
		if got := productStock(t, product.ID); got != 10 {
			t.Errorf("product stock = %d, want untouched 10", got)
		}

		found, err := repo.FindByID(ctx, order.ID)
		if err != nil {
			t.Fatalf("FindByID() error = %v", err)
		}
		if found.Items[0].VariantID == nil || *found.Items[0].VariantID != variantID {
			t.Errorf("VariantID = %v, want %s", found.Items[0].VariantID, variantID)
		}
	})
}
