package cart

import (
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"storefront/internal/catalog"
)

var validate = validator.New()

// ShippingInfo is the checkout form. Limits mirror the storefront form
// validation so a payload that passes here passes on the server too.
type ShippingInfo struct {
	Name    string `json:"name" validate:"required,min=2"`
	Phone   string `json:"phone" validate:"required,min=8"`
	Address string `json:"address" validate:"required,min=10"`
}

// OrderLine is one cart line in the order-creation contract. Price is the
// effective price resolved at assembly time.
type OrderLine struct {
	ProductID uuid.UUID  `json:"id"`
	Quantity  int        `json:"quantity"`
	Price     float64    `json:"price"`
	VariantID *uuid.UUID `json:"variantId,omitempty"`
}

// CreateOrderRequest is the body sent to POST /api/orders.
type CreateOrderRequest struct {
	ClientInfo ShippingInfo `json:"clientInfo"`
	CartItems  []OrderLine  `json:"cartItems"`
}

// BuildOrderRequest assembles the order-creation payload from the
// shipping form and the current cart lines. The shipping info is
// validated first; the cart itself is left untouched so a failed
// submission can be retried.
func BuildOrderRequest(shipping ShippingInfo, c *Cart) (*CreateOrderRequest, error) {
	if err := validate.Struct(shipping); err != nil {
		return nil, err
	}

	items := c.Items()
	lines := make([]OrderLine, 0, len(items))
	for _, line := range items {
		price, _ := catalog.ResolvePriceStock(line.Product, line.VariantID)
		lines = append(lines, OrderLine{
			ProductID: line.Product.ID,
			Quantity:  line.Quantity,
			Price:     price,
			VariantID: line.VariantID,
		})
	}

	return &CreateOrderRequest{ClientInfo: shipping, CartItems: lines}, nil
}
