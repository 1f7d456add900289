package transport

import (
	"errors"
	"net/http"

	"storefront/internal/cart"
	"storefront/internal/middleware"
	"storefront/internal/repository"
	"storefront/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// OrderHandler handles checkout HTTP requests.
type OrderHandler struct {
	orderService service.OrderService
	logger       *zap.Logger
}

// NewOrderHandler creates a new instance of OrderHandler.
func NewOrderHandler(orderService service.OrderService, logger *zap.Logger) *OrderHandler {
	return &OrderHandler{orderService: orderService, logger: logger}
}

// RegisterRoutes registers order routes.
func (h *OrderHandler) RegisterRoutes(r chi.Router) {
	r.Route("/orders", func(r chi.Router) {
		r.Post("/", h.CreateOrder)
		r.Get("/{id}", h.GetOrder)
	})
}

// CreateOrder handles POST /api/orders.
func (h *OrderHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req createOrderBody
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if fieldErrors := middleware.FormatValidationErrors(err); len(fieldErrors) > 0 {
			middleware.RespondWithValidationErrors(w, fieldErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	order, err := h.orderService.PlaceOrder(r.Context(), req.toRequest())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyOrder):
			middleware.RespondWithError(w, http.StatusBadRequest, "Order has no items")
		case errors.Is(err, repository.ErrProductNotFound):
			middleware.RespondWithError(w, http.StatusBadRequest, "Product not found")
		case errors.Is(err, repository.ErrInsufficientStock):
			middleware.RespondWithError(w, http.StatusConflict, "Insufficient stock")
		default:
			h.logger.Error("Failed to create order", zap.Error(err))
			middleware.RespondWithError(w, http.StatusInternalServerError, "Failed to create order")
		}
		return
	}

	middleware.RespondWithJSON(w, http.StatusCreated, order)
}

// GetOrder handles GET /api/orders/{id}.
func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "Invalid order ID")
		return
	}

	order, err := h.orderService.GetOrder(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "Order not found")
			return
		}
		h.logger.Error("Failed to get order", zap.Error(err), zap.String("order_id", id.String()))
		middleware.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch order")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, order)
}

// createOrderBody mirrors cart.CreateOrderRequest with the validation
// tags the HTTP layer enforces on the shipping form and the lines.
type createOrderBody struct {
	ClientInfo struct {
		Name    string `json:"name" validate:"required,min=2"`
		Phone   string `json:"phone" validate:"required,min=8"`
		Address string `json:"address" validate:"required,min=10"`
	} `json:"clientInfo" validate:"required"`
	CartItems []struct {
		ProductID uuid.UUID  `json:"id" validate:"required"`
		Quantity  int        `json:"quantity" validate:"required,min=1"`
		Price     float64    `json:"price"`
		VariantID *uuid.UUID `json:"variantId"`
	} `json:"cartItems" validate:"required,min=1,dive"`
}

func (b *createOrderBody) toRequest() *cart.CreateOrderRequest {
	req := &cart.CreateOrderRequest{
		ClientInfo: cart.ShippingInfo{
			Name:    b.ClientInfo.Name,
			Phone:   b.ClientInfo.Phone,
			Address: b.ClientInfo.Address,
		},
	}
	for _, item := range b.CartItems {
		req.CartItems = append(req.CartItems, cart.OrderLine{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
			VariantID: item.VariantID,
		})
	}
	return req
}
