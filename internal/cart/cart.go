// Package cart implements the storefront's in-memory shopping cart and
// the checkout payload assembly. A cart is confined to a single shopping
// session and is never persisted; it is not safe for concurrent use.
package cart

import (
	"errors"

	"storefront/internal/catalog"
	"storefront/internal/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ErrStockLimit is returned by Add when the line already holds as many
// units as the resolved stock allows. The cart is left unchanged.
var ErrStockLimit = errors.New("stock limit reached")

// lineKey identifies a cart line. VariantID is uuid.Nil for lines without
// a selected variant, so (product, no variant) and (product, variant) are
// distinct lines.
type lineKey struct {
	ProductID uuid.UUID
	VariantID uuid.UUID
}

// Line is one cart entry. Product is the snapshot taken when the item was
// added, including its variants so prices resolve without a refetch.
type Line struct {
	Product   *domain.Product
	VariantID *uuid.UUID
	Quantity  int
}

// Cart is a keyed collection of lines with stock-limit enforcement on Add.
type Cart struct {
	lines map[lineKey]*Line
	order []lineKey
}

// New returns an empty cart.
func New() *Cart {
	return &Cart{lines: make(map[lineKey]*Line)}
}

func keyFor(productID uuid.UUID, variantID *uuid.UUID) lineKey {
	k := lineKey{ProductID: productID}
	if variantID != nil {
		k.VariantID = *variantID
	}
	return k
}

// Add puts one unit of the product (with an optional variant selection)
// into the cart. An existing line already at the resolved stock limit is
// rejected with ErrStockLimit; otherwise the quantity is incremented, and
// a new line starts at 1.
func (c *Cart) Add(product *domain.Product, variantID *uuid.UUID) error {
	key := keyFor(product.ID, variantID)
	_, stock := catalog.ResolvePriceStock(product, variantID)

	if line, ok := c.lines[key]; ok {
		if line.Quantity >= stock {
			return ErrStockLimit
		}
		line.Quantity++
		return nil
	}

	c.lines[key] = &Line{Product: product, VariantID: variantID, Quantity: 1}
	c.order = append(c.order, key)
	return nil
}

// Remove deletes the matching line unconditionally. Removing an absent
// line is a no-op.
func (c *Cart) Remove(productID uuid.UUID, variantID *uuid.UUID) {
	key := keyFor(productID, variantID)
	if _, ok := c.lines[key]; !ok {
		return
	}
	delete(c.lines, key)
	for i, k := range c.order {
		if k == key {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}

// SetQuantity overwrites the quantity of the matching line. A quantity of
// zero or less removes the line. Unlike Add, no stock check is applied;
// that asymmetry matches the storefront's manual quantity field.
func (c *Cart) SetQuantity(productID uuid.UUID, quantity int, variantID *uuid.UUID) {
	if quantity <= 0 {
		c.Remove(productID, variantID)
		return
	}
	if line, ok := c.lines[keyFor(productID, variantID)]; ok {
		line.Quantity = quantity
	}
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.lines = make(map[lineKey]*Line)
	c.order = nil
}

// Items returns the cart lines in insertion order.
func (c *Cart) Items() []*Line {
	items := make([]*Line, 0, len(c.order))
	for _, k := range c.order {
		items = append(items, c.lines[k])
	}
	return items
}

// Len returns the number of distinct lines.
func (c *Cart) Len() int {
	return len(c.lines)
}

// Total sums resolved price times quantity over all lines. It is
// recomputed on every call so it always reflects live price resolution.
// Decimal arithmetic keeps cent sums exact.
func (c *Cart) Total() float64 {
	total := decimal.Zero
	for _, k := range c.order {
		line := c.lines[k]
		price, _ := catalog.ResolvePriceStock(line.Product, line.VariantID)
		total = total.Add(decimal.NewFromFloat(price).Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	f, _ := total.Float64()
	return f
}
