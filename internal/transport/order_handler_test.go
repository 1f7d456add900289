package transport

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"storefront/internal/cart"
	"storefront/internal/domain"
	"storefront/internal/repository"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newOrderRouter(svc *mockOrderService) chi.Router {
	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		NewOrderHandler(svc, zap.NewNop()).RegisterRoutes(r)
	})
	return r
}

func orderBody(productID uuid.UUID) string {
	return `{
		"clientInfo": {
			"name": "Ada Lovelace",
			"phone": "015551234567",
			"address": "10 Example Street, Springfield"
		},
		"cartItems": [
			{"id": "` + productID.String() + `", "quantity": 2, "price": 24.99}
		]
	}`
}

func TestCreateOrderHandler(t *testing.T) {
	t.Run("valid payload creates the order", func(t *testing.T) {
		svc := new(mockOrderService)
		productID := uuid.New()
		created := &domain.Order{ID: uuid.New(), TotalAmount: 49.98, Status: domain.OrderStatusPending}

		svc.On("PlaceOrder", mock.Anything, mock.MatchedBy(func(req *cart.CreateOrderRequest) bool {
			return req.ClientInfo.Name == "Ada Lovelace" &&
				len(req.CartItems) == 1 &&
				req.CartItems[0].ProductID == productID &&
				req.CartItems[0].Quantity == 2
		})).Return(created, nil)

		req := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(orderBody(productID)))
		rec := httptest.NewRecorder()
		newOrderRouter(svc).ServeHTTP(rec, req)

		require.Equal(t, http.StatusCreated, rec.Code)

		var got domain.Order
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, 49.98, got.TotalAmount)
		svc.AssertExpectations(t)
	})

	t.Run("short shipping fields return field errors", func(t *testing.T) {
		svc := new(mockOrderService)

		body := `{
			"clientInfo": {"name": "A", "phone": "123", "address": "short"},
			"cartItems": [{"id": "` + uuid.NewString() + `", "quantity": 1}]
		}`
		req := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(body))
		rec := httptest.NewRecorder()
		newOrderRouter(svc).ServeHTTP(rec, req)

		require.Equal(t, http.StatusBadRequest, rec.Code)

		var resp struct {
			Error   string `json:"error"`
			Details []struct {
				Field string `json:"field"`
			} `json:"details"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "Validation failed", resp.Error)
		assert.Len(t, resp.Details, 3)
		svc.AssertNotCalled(t, "PlaceOrder", mock.Anything, mock.Anything)
	})

	t.Run("empty cart returns 400", func(t *testing.T) {
		svc := new(mockOrderService)

		body := `{
			"clientInfo": {
				"name": "Ada Lovelace",
				"phone": "015551234567",
				"address": "10 Example Street, Springfield"
			},
			"cartItems": []
		}`
		req := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(body))
		rec := httptest.NewRecorder()
		newOrderRouter(svc).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		svc.AssertNotCalled(t, "PlaceOrder", mock.Anything, mock.Anything)
	})

	t.Run("insufficient stock returns 409", func(t *testing.T) {
		svc := new(mockOrderService)
		svc.On("PlaceOrder", mock.Anything, mock.Anything).
			Return(nil, repository.ErrInsufficientStock)

		req := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(orderBody(uuid.New())))
		rec := httptest.NewRecorder()
		newOrderRouter(svc).ServeHTTP(rec, req)

		require.Equal(t, http.StatusConflict, rec.Code)

		var body map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "Insufficient stock", body["error"])
	})
}

func TestGetOrderHandler(t *testing.T) {
	t.Run("unknown order returns 404", func(t *testing.T) {
		svc := new(mockOrderService)
		id := uuid.New()
		svc.On("GetOrder", mock.Anything, id).Return(nil, repository.ErrOrderNotFound)

		req := httptest.NewRequest(http.MethodGet, "/api/orders/"+id.String(), nil)
		rec := httptest.NewRecorder()
		newOrderRouter(svc).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("found order is returned with its items", func(t *testing.T) {
		svc := new(mockOrderService)
		order := &domain.Order{
			ID:          uuid.New(),
			TotalAmount: 24.99,
			Status:      domain.OrderStatusPending,
			Items: []*domain.OrderItem{
				{ID: uuid.New(), ProductID: uuid.New(), Quantity: 1, PriceAtTime: 24.99},
			},
		}
		svc.On("GetOrder", mock.Anything, order.ID).Return(order, nil)

		req := httptest.NewRequest(http.MethodGet, "/api/orders/"+order.ID.String(), nil)
		rec := httptest.NewRecorder()
		newOrderRouter(svc).ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var got domain.Order
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Len(t, got.Items, 1)
	})
}
