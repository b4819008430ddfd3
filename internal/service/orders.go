// Package service holds the order placement workflow and the order
// read-side that joins line items back to product records.
package service

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/AR-Raju/online-nursery-server/internal/domain"
	"github.com/AR-Raju/online-nursery-server/internal/repository"
	"github.com/AR-Raju/online-nursery-server/internal/telemetry"
)

type OrderService struct {
	products repository.ProductStore
	orders   repository.OrderStore
	metrics  *telemetry.Metrics
	tracer   trace.Tracer
}

func NewOrderService(products repository.ProductStore, orders repository.OrderStore, metrics *telemetry.Metrics) *OrderService {
	return &OrderService{
		products: products,
		orders:   orders,
		metrics:  metrics,
		tracer:   otel.Tracer("internal/service/orders"),
	}
}

// PlaceOrder validates every line item against current stock, freezes the
// total, persists the order with status pending, and then decrements stock
// per item. Validation touches no state: the first missing product or short
// stock rejects the whole request before anything is written.
//
// Decrements run after the order is committed and use the store's guarded
// compare-and-decrement, so stock never goes negative under concurrent
// orders. A decrement that loses such a race after commit is reported as an
// error while the order stays committed; there is no rollback.
func (s *OrderService) PlaceOrder(ctx context.Context, input domain.CreateOrderInput) (*domain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.PlaceOrder",
		trace.WithAttributes(attribute.Int("order.items", len(input.Items))))
	defer span.End()

	if len(input.Items) == 0 {
		return nil, fmt.Errorf("order must contain at least one item: %w", domain.ErrValidation)
	}

	seen := make(map[string]bool, len(input.Items))
	items := make([]domain.OrderItem, 0, len(input.Items))
	var total float64

	for _, itemInput := range input.Items {
		if itemInput.Quantity < 1 {
			return nil, fmt.Errorf("quantity for product %s must be at least 1: %w", itemInput.ProductID, domain.ErrValidation)
		}
		if seen[itemInput.ProductID] {
			return nil, fmt.Errorf("duplicate product %s in order: %w", itemInput.ProductID, domain.ErrValidation)
		}
		seen[itemInput.ProductID] = true

		product, err := s.products.GetByID(ctx, itemInput.ProductID)
		if err != nil {
			return nil, err
		}
		if product.Stock < itemInput.Quantity {
			return nil, fmt.Errorf("product %s has %d in stock, %d requested: %w",
				product.Name, product.Stock, itemInput.Quantity, domain.ErrInsufficientStock)
		}

		items = append(items, domain.OrderItem{
			ProductID:    itemInput.ProductID,
			Quantity:     itemInput.Quantity,
			PriceAtOrder: product.Price,
		})
		total += product.Price * float64(itemInput.Quantity)
	}

	order := &domain.Order{
		CustomerName: input.CustomerName,
		Phone:        input.Phone,
		Address:      input.Address,
		Items:        items,
		TotalAmount:  total,
		Status:       domain.StatusPending,
	}
	if err := s.orders.Create(ctx, order); err != nil {
		return nil, err
	}

	for _, item := range order.Items {
		if err := s.products.DecrementStock(ctx, item.ProductID, item.Quantity); err != nil {
			// The order is already committed; surface the failure without
			// unwinding it.
			slog.Error("stock decrement failed after order commit",
				"order_id", order.ID.Hex(), "product_id", item.ProductID, "error", err)
			return nil, fmt.Errorf("order %s committed but stock decrement failed for product %s", order.ID.Hex(), item.ProductID)
		}
	}

	s.metrics.OrderPlaced(ctx, total)
	slog.Info("order placed", "order_id", order.ID.Hex(), "total", total, "items", len(order.Items))
	return order, nil
}

// UpdateStatus overwrites an order's status. All five statuses are mutually
// reachable; only unknown values are rejected.
func (s *OrderService) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, error) {
	if !status.IsValid() {
		return nil, fmt.Errorf("unknown order status %q: %w", status, domain.ErrValidation)
	}
	return s.orders.UpdateStatus(ctx, id, status)
}

// GetOrder fetches one order with line items resolved to product details.
func (s *OrderService) GetOrder(ctx context.Context, id string) (*domain.ResolvedOrder, error) {
	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	byID, err := s.products.GetByIDs(ctx, productIDs([]*domain.Order{order}))
	if err != nil {
		return nil, err
	}
	return resolve(order, byID), nil
}

// ListOrders fetches all orders, resolving every referenced product in a
// single lookup.
func (s *OrderService) ListOrders(ctx context.Context) ([]*domain.ResolvedOrder, error) {
	orders, err := s.orders.List(ctx)
	if err != nil {
		return nil, err
	}

	byID, err := s.products.GetByIDs(ctx, productIDs(orders))
	if err != nil {
		return nil, err
	}

	resolved := make([]*domain.ResolvedOrder, 0, len(orders))
	for _, order := range orders {
		resolved = append(resolved, resolve(order, byID))
	}
	return resolved, nil
}

func productIDs(orders []*domain.Order) []string {
	seen := map[string]bool{}
	var ids []string
	for _, order := range orders {
		for _, item := range order.Items {
			if !seen[item.ProductID] {
				seen[item.ProductID] = true
				ids = append(ids, item.ProductID)
			}
		}
	}
	return ids
}

func resolve(order *domain.Order, products map[string]*domain.Product) *domain.ResolvedOrder {
	items := make([]domain.ResolvedOrderItem, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, domain.ResolvedOrderItem{
			ProductID:    item.ProductID,
			Quantity:     item.Quantity,
			PriceAtOrder: item.PriceAtOrder,
			Product:      products[item.ProductID],
		})
	}
	return &domain.ResolvedOrder{
		ID:           order.ID,
		CustomerName: order.CustomerName,
		Phone:        order.Phone,
		Address:      order.Address,
		Items:        items,
		TotalAmount:  order.TotalAmount,
		Status:       order.Status,
		CreatedAt:    order.CreatedAt,
		UpdatedAt:    order.UpdatedAt,
	}
}
