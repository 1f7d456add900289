// Package catalog holds the pure pricing and rating logic shared by the
// HTTP services and the cart. Both sides must go through these functions
// so the displayed price and the charged price can never disagree.
package catalog

import (
	"storefront/internal/domain"

	"github.com/google/uuid"
)

// ResolvePriceStock returns the effective price and stock for a product
// with an optionally selected variant. A matching variant supplies its own
// stock unconditionally and overrides the price only when it carries one.
// A nil or unknown variant ID falls back to the product's own fields.
func ResolvePriceStock(p *domain.Product, variantID *uuid.UUID) (price float64, stock int) {
	if v := FindVariant(p, variantID); v != nil {
		price = p.Price
		if v.Price != nil {
			price = *v.Price
		}
		return price, v.Stock
	}
	return p.Price, p.Stock
}

// FindVariant returns the product's variant with the given ID, or nil when
// no ID is given or no variant matches.
func FindVariant(p *domain.Product, variantID *uuid.UUID) *domain.ProductVariant {
	if variantID == nil {
		return nil
	}
	for _, v := range p.Variants {
		if v.ID == *variantID {
			return v
		}
	}
	return nil
}
