package database

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Seed inserts demo catalog data when the database is empty. It is only
// called for non-production environments so a fresh checkout has
// something to browse.
func (s *Service) Seed(ctx context.Context, logger *zap.Logger) error {
	var count int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM products").Scan(&count); err != nil {
		return fmt.Errorf("failed to count products: %w", err)
	}
	if count > 0 {
		logger.Info("Catalog already seeded, skipping")
		return nil
	}

	logger.Info("Seeding demo catalog")

	categories := []struct {
		id   uuid.UUID
		name string
		slug string
		desc string
	}{
		{uuid.New(), "Electronics", "electronics", "Electronic devices and accessories"},
		{uuid.New(), "Apparel", "apparel", "Clothing and wearables"},
	}

	for _, c := range categories {
		_, err := s.db.ExecContext(ctx, `
			INSERT INTO categories (id, name, slug, description, created_at)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (slug) DO NOTHING
		`, c.id, c.name, c.slug, c.desc, time.Now())
		if err != nil {
			return fmt.Errorf("failed to seed category %s: %w", c.slug, err)
		}
	}

	products := []struct {
		id    uuid.UUID
		name  string
		desc  string
		price float64
		stock int
		cat   uuid.UUID
	}{
		{uuid.New(), "Wireless Headphones", "Premium noise-cancelling wireless headphones", 199.99, 10, categories[0].id},
		{uuid.New(), "Mechanical Keyboard", "Hot-swappable mechanical keyboard with RGB", 89.99, 25, categories[0].id},
		{uuid.New(), "Classic T-Shirt", "Heavyweight cotton t-shirt", 24.99, 80, categories[1].id},
	}

	for _, p := range products {
		_, err := s.db.ExecContext(ctx, `
			INSERT INTO products (id, name, description, price, stock, category_id, image_url, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)
		`, p.id, p.name, p.desc, p.price, p.stock, p.cat, "", time.Now())
		if err != nil {
			return fmt.Errorf("failed to seed product %s: %w", p.name, err)
		}

		// One size run per product, first variant is the default.
		for i, size := range []string{"Small", "Medium", "Large"} {
			sku := fmt.Sprintf("%s-%s", strings.ToUpper(strings.ReplaceAll(p.name, " ", "-")), size[:1])
			_, err := s.db.ExecContext(ctx, `
				INSERT INTO product_variants (id, product_id, sku, size, stock, is_default, created_at, updated_at)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
				ON CONFLICT (sku) DO NOTHING
			`, uuid.New(), p.id, sku, size, 10+5*i, i == 0, time.Now())
			if err != nil {
				return fmt.Errorf("failed to seed variant %s: %w", sku, err)
			}
		}
	}

	logger.Info("Demo catalog seeded",
		zap.Int("categories", len(categories)),
		zap.Int("products", len(products)),
	)
	return nil
}
