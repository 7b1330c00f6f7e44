package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/alumex/aluminium-shop-platform/internal/api/middleware"
	"github.com/alumex/aluminium-shop-platform/internal/config"
	appErrors "github.com/alumex/aluminium-shop-platform/internal/errors"
	"github.com/alumex/aluminium-shop-platform/internal/metrics"
	"github.com/alumex/aluminium-shop-platform/internal/models"
	"github.com/alumex/aluminium-shop-platform/internal/pricing"
	repository "github.com/alumex/aluminium-shop-platform/internal/repositories"
	"github.com/google/uuid"
)

// totalTolerancePerLine is how far the client-displayed grand total may
// drift from the server-recomputed one before the submission is rejected:
// one penny per line item covers rounding differences and nothing else.
const totalTolerancePerLine = 0.01

type OrderService interface {
	CreateOrder(ctx context.Context, req *models.CreateOrderRequest) (*models.Order, error)
	GetOrderByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	ListOrders(ctx context.Context, page, size int) ([]models.Order, int, error)
	UpdateOrderStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus) (*models.Order, error)
}

type orderService struct {
	orderRepo   repository.OrderRepository
	cartService CartService
	notifier    NotificationService
	deliveryCfg *config.Delivery
}

func NewOrderService(orderRepo repository.OrderRepository, cartService CartService, notifier NotificationService, deliveryCfg *config.Delivery) OrderService {
	return &orderService{orderRepo: orderRepo, cartService: cartService, notifier: notifier, deliveryCfg: deliveryCfg}
}

// CreateOrder snapshots the session cart into an immutable order. Totals
// are always recomputed here from the raw cart contents; whatever subtotal
// the client showed is treated as a display hint and only cross-checked.
func (s *orderService) CreateOrder(ctx context.Context, req *models.CreateOrderRequest) (*models.Order, error) {

	logger := middleware.LoggerFromContext(ctx)

	cart, err := s.cartService.GetCart(ctx, req.SessionID)
	if err != nil {
		return nil, err
	}

	if len(cart.Items) == 0 {
		return nil, appErrors.BadRequestError("Cannot create order with empty cart")
	}

	// Re-run the calculator over every line from its embedded product
	// snapshot. Whatever derived fields the stored cart carried are
	// overwritten, so a tampered session blob cannot change the price.
	items := make([]models.CartItem, len(cart.Items))

	for i, item := range cart.Items {
		quote := pricing.Calculate(&item.Product, item.Length, item.Quantity, false)
		item.CalculatedPrice = quote.FinalPrice
		item.CalculatedWeight = quote.TotalWeight
		items[i] = item
	}

	summary := pricing.Aggregate(items)

	deliveryCost, _ := pricing.DeliveryCost(req.Delivery.Postcode, summary.Total, req.Delivery.Method, s.deliveryCfg)

	serverTotal := summary.Total + deliveryCost

	if req.ClientTotal > 0 {
		tolerance := totalTolerancePerLine * float64(len(items))

		if math.Abs(req.ClientTotal-serverTotal) > tolerance {
			logger.Warn("Client total diverges from recomputed total",
				slog.Float64("client_total", req.ClientTotal),
				slog.Float64("server_total", serverTotal))

			metrics.RecordTotalMismatch()

			return nil, appErrors.TotalMismatchError("Submitted total does not match the recomputed order total").
				WithDetail(fmt.Sprintf("recomputed total is %.2f", serverTotal))
		}
	}

	id := uuid.New()

	order := &models.Order{
		ID:           id,
		Number:       orderNumber(id),
		Customer:     req.Customer,
		Delivery:     req.Delivery,
		Items:        items,
		Subtotal:     summary.Subtotal,
		Discount:     summary.Discount,
		DeliveryCost: deliveryCost,
		Total:        serverTotal,
		TotalWeight:  summary.TotalWeight,
		IsWholesale:  summary.IsWholesale,
		Status:       models.OrderStatusNew,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := s.orderRepo.CreateOrder(ctx, order); err != nil {
		return nil, appErrors.DatabaseError("Failed to create order").WithError(err)
	}

	metrics.RecordOrderPlaced()

	// The order is durable from here. Cart cleanup and sales alerts are
	// best-effort and must never report failure to the customer.
	if err := s.cartService.ClearCart(ctx, req.SessionID); err != nil {
		logger.Warn("Failed to clear cart after order submission", slog.Any("error", err))
	}

	s.notifier.NotifyOrderPlaced(ctx, order)

	return order, nil
}

func orderNumber(id uuid.UUID) string {
	return "ALX-" + strings.ToUpper(strings.ReplaceAll(id.String(), "-", "")[:8])
}

func (s *orderService) GetOrderByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {

	order, err := s.orderRepo.GetOrderByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NotFoundError("Order not found").WithError(err)
		}

		return nil, appErrors.DatabaseError("Failed to fetch order").WithError(err)
	}

	return order, nil
}

func (s *orderService) ListOrders(ctx context.Context, page, size int) ([]models.Order, int, error) {

	if page < 1 {
		page = 1
	}

	if size < 1 || size > 100 {
		size = 20
	}

	orders, total, err := s.orderRepo.ListOrders(ctx, page, size)
	if err != nil {
		return nil, 0, appErrors.DatabaseError("Failed to fetch orders").WithError(err)
	}

	return orders, total, nil
}

// UpdateOrderStatus sets the status field. Any status may follow any other:
// the value is informational for the back office and gates nothing.
func (s *orderService) UpdateOrderStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus) (*models.Order, error) {

	if err := s.orderRepo.UpdateOrderStatus(ctx, id, status); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NotFoundError("Order not found").WithError(err)
		}

		return nil, appErrors.DatabaseError("Failed to update order status").WithError(err)
	}

	return s.GetOrderByID(ctx, id)
}
