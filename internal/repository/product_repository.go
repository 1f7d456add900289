package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"storefront/internal/database"
	"storefront/internal/domain"

	"github.com/google/uuid"
)

var (
	ErrProductNotFound = errors.New("product not found")
)

// ProductFilter narrows a catalog listing. Zero values apply no filter.
type ProductFilter struct {
	// Search matches a case-insensitive substring of name or description.
	Search string
	// CategorySlug restricts results to one category.
	CategorySlug string
}

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	Update(ctx context.Context, product *domain.Product) error
	UpdateAggregates(ctx context.Context, productID uuid.UUID, averageRating float64, reviewCount int) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	List(ctx context.Context, filter ProductFilter) ([]*domain.Product, error)
}

type productRepository struct {
	db   *sql.DB
	caps database.Capabilities
}

// NewProductRepository creates a ProductRepository. The capability flags
// decide which optional relations (variants, images) are loaded; a schema
// without those tables degrades to base products instead of erroring.
func NewProductRepository(db *sql.DB, caps database.Capabilities) ProductRepository {
	return &productRepository{db: db, caps: caps}
}

const productColumns = `
	p.id, p.name, p.description, p.price, p.stock, p.category_id, p.image_url,
	p.average_rating, p.review_count, p.created_at, p.updated_at,
	c.id, c.name, c.slug, c.description, c.created_at
`

// Create inserts a new product using parameterized queries.
func (r *productRepository) Create(ctx context.Context, product *domain.Product) error {
	query := `
		INSERT INTO products (id, name, description, price, stock, category_id, image_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.ExecContext(
		ctx,
		query,
		product.ID,
		product.Name,
		product.Description,
		product.Price,
		product.Stock,
		product.CategoryID,
		product.ImageURL,
		product.CreatedAt,
		product.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}

	return nil
}

// Update rewrites the mutable product fields.
func (r *productRepository) Update(ctx context.Context, product *domain.Product) error {
	query := `
		UPDATE products
		SET name = $2, description = $3, price = $4, stock = $5,
		    category_id = $6, image_url = $7, updated_at = $8
		WHERE id = $1
	`

	result, err := r.db.ExecContext(
		ctx,
		query,
		product.ID,
		product.Name,
		product.Description,
		product.Price,
		product.Stock,
		product.CategoryID,
		product.ImageURL,
		product.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrProductNotFound
	}

	return nil
}

// UpdateAggregates persists the denormalized rating aggregate written on
// review submission.
func (r *productRepository) UpdateAggregates(ctx context.Context, productID uuid.UUID, averageRating float64, reviewCount int) error {
	query := `
		UPDATE products
		SET average_rating = $2, review_count = $3
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query, productID, averageRating, reviewCount)
	if err != nil {
		return fmt.Errorf("failed to update product aggregates: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrProductNotFound
	}

	return nil
}

// Delete removes a product. Variants, images, ratings and reviews cascade.
func (r *productRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM products WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrProductNotFound
	}

	return nil
}

// FindByID retrieves a product with its category and enabled relations.
func (r *productRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM products p
		JOIN categories c ON c.id = p.category_id
		WHERE p.id = $1
	`, productColumns)

	product, err := scanProduct(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to find product by ID: %w", err)
	}

	if err := r.loadRelations(ctx, []*domain.Product{product}); err != nil {
		return nil, err
	}

	return product, nil
}

// List retrieves products matching the filter, newest first. Search and
// category apply independently; both together intersect.
func (r *productRepository) List(ctx context.Context, filter ProductFilter) ([]*domain.Product, error) {
	conditions := []string{}
	args := []interface{}{}
	argIndex := 1

	if strings.TrimSpace(filter.Search) != "" {
		conditions = append(conditions,
			fmt.Sprintf("(p.name ILIKE $%d OR p.description ILIKE $%d)", argIndex, argIndex))
		args = append(args, "%"+filter.Search+"%")
		argIndex++
	}

	if filter.CategorySlug != "" {
		conditions = append(conditions, fmt.Sprintf("c.slug = $%d", argIndex))
		args = append(args, filter.CategorySlug)
		argIndex++
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM products p
		JOIN categories c ON c.id = p.category_id
		%s
		ORDER BY p.created_at DESC
	`, productColumns, whereClause)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	products := []*domain.Product{}
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, product)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	if err := r.loadRelations(ctx, products); err != nil {
		return nil, err
	}

	return products, nil
}

// scanTarget covers both *sql.Row and *sql.Rows.
type scanTarget interface {
	Scan(dest ...interface{}) error
}

func scanProduct(row scanTarget) (*domain.Product, error) {
	product := &domain.Product{Category: &domain.Category{}}
	err := row.Scan(
		&product.ID,
		&product.Name,
		&product.Description,
		&product.Price,
		&product.Stock,
		&product.CategoryID,
		&product.ImageURL,
		&product.AverageRating,
		&product.TotalRatings,
		&product.CreatedAt,
		&product.UpdatedAt,
		&product.Category.ID,
		&product.Category.Name,
		&product.Category.Slug,
		&product.Category.Description,
		&product.Category.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return product, nil
}

// loadRelations attaches variants and images to the given products,
// skipping any relation the connected schema does not support.
func (r *productRepository) loadRelations(ctx context.Context, products []*domain.Product) error {
	if len(products) == 0 {
		return nil
	}

	byID := make(map[uuid.UUID]*domain.Product, len(products))
	ids := make([]uuid.UUID, 0, len(products))
	for _, p := range products {
		byID[p.ID] = p
		ids = append(ids, p.ID)
	}

	if r.caps.Variants {
		if err := r.loadVariants(ctx, ids, byID); err != nil {
			return err
		}
	}
	if r.caps.Images {
		if err := r.loadImages(ctx, ids, byID); err != nil {
			return err
		}
	}

	return nil
}

// placeholders renders $start..$start+n-1 for an IN clause.
func placeholders(start, n int) string {
	parts := make([]string, n)
	for i := 0; i < n; i++ {
		parts[i] = fmt.Sprintf("$%d", start+i)
	}
	return strings.Join(parts, ", ")
}

func idArgs(ids []uuid.UUID) []interface{} {
	args := make([]interface{}, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	return args
}

func (r *productRepository) loadVariants(ctx context.Context, ids []uuid.UUID, byID map[uuid.UUID]*domain.Product) error {
	query := fmt.Sprintf(`
		SELECT id, product_id, sku, size, color, material, price, stock, image_url, is_default, created_at, updated_at
		FROM product_variants
		WHERE product_id IN (%s)
		ORDER BY created_at ASC
	`, placeholders(1, len(ids)))

	rows, err := r.db.QueryContext(ctx, query, idArgs(ids)...)
	if err != nil {
		return fmt.Errorf("failed to load product variants: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		v := &domain.ProductVariant{}
		var sku, size, color, material, imageURL sql.NullString
		var price sql.NullFloat64
		err := rows.Scan(
			&v.ID,
			&v.ProductID,
			&sku,
			&size,
			&color,
			&material,
			&price,
			&v.Stock,
			&imageURL,
			&v.IsDefault,
			&v.CreatedAt,
			&v.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to scan product variant: %w", err)
		}

		v.SKU = nullString(sku)
		v.Size = nullString(size)
		v.Color = nullString(color)
		v.Material = nullString(material)
		v.ImageURL = nullString(imageURL)
		v.Price = nullFloat(price)

		if p, ok := byID[v.ProductID]; ok {
			p.Variants = append(p.Variants, v)
		}
	}

	if err = rows.Err(); err != nil {
		return fmt.Errorf("error iterating product variants: %w", err)
	}

	return nil
}

func (r *productRepository) loadImages(ctx context.Context, ids []uuid.UUID, byID map[uuid.UUID]*domain.Product) error {
	query := fmt.Sprintf(`
		SELECT id, product_id, url, alt, "order", is_primary, created_at, updated_at
		FROM product_images
		WHERE product_id IN (%s)
		ORDER BY "order" ASC, created_at ASC
	`, placeholders(1, len(ids)))

	rows, err := r.db.QueryContext(ctx, query, idArgs(ids)...)
	if err != nil {
		return fmt.Errorf("failed to load product images: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		img := &domain.ProductImage{}
		var alt sql.NullString
		err := rows.Scan(
			&img.ID,
			&img.ProductID,
			&img.URL,
			&alt,
			&img.Order,
			&img.IsPrimary,
			&img.CreatedAt,
			&img.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to scan product image: %w", err)
		}

		img.Alt = nullString(alt)

		if p, ok := byID[img.ProductID]; ok {
			p.Images = append(p.Images, img)
		}
	}

	if err = rows.Err(); err != nil {
		return fmt.Errorf("error iterating product images: %w", err)
	}

	return nil
}

func nullString(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	return &s.String
}

func nullFloat(f sql.NullFloat64) *float64 {
	if !f.Valid {
		return nil
	}
	return &f.Float64
}
