package repository

import (
	"context"

	"github.com/AR-Raju/online-nursery-server/internal/catalog"
	"github.com/AR-Raju/online-nursery-server/internal/domain"
)

// ProductStore is the persistence port for products.
type ProductStore interface {
	Create(ctx context.Context, product *domain.Product) error
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	GetByIDs(ctx context.Context, ids []string) (map[string]*domain.Product, error)
	List(ctx context.Context, query catalog.ProductQuery) ([]*domain.Product, int64, error)
	Update(ctx context.Context, id string, input domain.UpdateProductInput) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
	// DecrementStock atomically subtracts qty from the product's stock,
	// matching only when stock >= qty. It reports ErrInsufficientStock when
	// no document matched an existing product.
	DecrementStock(ctx context.Context, id string, qty int) error
}

// CategoryStore is the persistence port for categories.
type CategoryStore interface {
	Create(ctx context.Context, category *domain.Category) error
	GetByID(ctx context.Context, id string) (*domain.Category, error)
	List(ctx context.Context) ([]*domain.Category, error)
	Update(ctx context.Context, id string, input domain.UpdateCategoryInput) (*domain.Category, error)
	Delete(ctx context.Context, id string) error
}

// OrderStore is the persistence port for orders. Orders are never deleted.
type OrderStore interface {
	Create(ctx context.Context, order *domain.Order) error
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	List(ctx context.Context) ([]*domain.Order, error)
	UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, error)
}
