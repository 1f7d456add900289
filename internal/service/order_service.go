package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"storefront/internal/cart"
	"storefront/internal/catalog"
	"storefront/internal/domain"
	"storefront/internal/events"
	"storefront/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ErrEmptyOrder is returned when an order request carries no cart items.
var ErrEmptyOrder = errors.New("order has no items")

// OrderService handles checkout and order lookup.
type OrderService interface {
	// PlaceOrder creates an order from the request. Prices are resolved
	// server-side from the current catalog; the prices in the request body
	// are ignored so a tampered client cannot set its own.
	PlaceOrder(ctx context.Context, req *cart.CreateOrderRequest) (*domain.Order, error)
	GetOrder(ctx context.Context, id uuid.UUID) (*domain.Order, error)
}

type orderService struct {
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
	publisher   events.Publisher
	logger      *zap.Logger
}

// NewOrderService creates a new instance of OrderService. The publisher
// may be nil when no broker is configured.
func NewOrderService(
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	publisher events.Publisher,
	logger *zap.Logger,
) OrderService {
	return &orderService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		publisher:   publisher,
		logger:      logger,
	}
}

func (s *orderService) PlaceOrder(ctx context.Context, req *cart.CreateOrderRequest) (*domain.Order, error) {
	if len(req.CartItems) == 0 {
		return nil, ErrEmptyOrder
	}

	now := time.Now()
	order := &domain.Order{
		ID:            uuid.New(),
		CustomerName:  req.ClientInfo.Name,
		CustomerPhone: req.ClientInfo.Phone,
		Address:       req.ClientInfo.Address,
		Status:        domain.OrderStatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	total := decimal.Zero
	for _, line := range req.CartItems {
		product, err := s.productRepo.FindByID(ctx, line.ProductID)
		if err != nil {
			return nil, err
		}

		if line.VariantID != nil && catalog.FindVariant(product, line.VariantID) == nil {
			return nil, fmt.Errorf("product %s has no variant %s: %w",
				product.ID, *line.VariantID, repository.ErrProductNotFound)
		}

		price, _ := catalog.ResolvePriceStock(product, line.VariantID)
		total = total.Add(decimal.NewFromFloat(price).Mul(decimal.NewFromInt(int64(line.Quantity))))

		order.Items = append(order.Items, &domain.OrderItem{
			ID:          uuid.New(),
			OrderID:     order.ID,
			ProductID:   product.ID,
			VariantID:   line.VariantID,
			Quantity:    line.Quantity,
			PriceAtTime: price,
			CreatedAt:   now,
		})
	}

	order.TotalAmount, _ = total.Round(2).Float64()

	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, err
	}

	s.logger.Info("order placed",
		zap.String("order_id", order.ID.String()),
		zap.Float64("total_amount", order.TotalAmount),
		zap.Int("items", len(order.Items)),
	)

	// The order is already committed; a broker outage must not fail the
	// checkout.
	if s.publisher != nil {
		if err := s.publisher.OrderCreated(order); err != nil {
			s.logger.Warn("failed to publish order event",
				zap.String("order_id", order.ID.String()),
				zap.Error(err),
			)
		}
	}

	return order, nil
}

// GetOrder retrieves an order with its items.
func (s *orderService) GetOrder(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	return s.orderRepo.FindByID(ctx, id)
}
