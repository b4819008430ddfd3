package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type OrderStatus string

const (
	StatusPending    OrderStatus = "pending"
	StatusProcessing OrderStatus = "processing"
	StatusShipped    OrderStatus = "shipped"
	StatusDelivered  OrderStatus = "delivered"
	StatusCancelled  OrderStatus = "cancelled"
)

// IsValid reports whether s is one of the five known statuses. Any status
// may move to any other; there is no transition guard.
func (s OrderStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	default:
		return false
	}
}

type OrderItem struct {
	ProductID    string  `json:"productId" bson:"product_id"`
	Quantity     int     `json:"quantity" bson:"quantity"`
	PriceAtOrder float64 `json:"priceAtOrder" bson:"price_at_order"`
}

type Order struct {
	ID           primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	CustomerName string             `json:"customerName" bson:"customer_name"`
	Phone        string             `json:"phone" bson:"phone"`
	Address      string             `json:"address" bson:"address"`
	Items        []OrderItem        `json:"items" bson:"items"`
	TotalAmount  float64            `json:"totalAmount" bson:"total_amount"`
	Status       OrderStatus        `json:"status" bson:"status"`
	CreatedAt    time.Time          `json:"createdAt" bson:"created_at"`
	UpdatedAt    time.Time          `json:"updatedAt" bson:"updated_at"`
}

type OrderItemInput struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,gt=0"`
}

type CreateOrderInput struct {
	CustomerName string           `json:"customerName" binding:"required"`
	Phone        string           `json:"phone" binding:"required"`
	Address      string           `json:"address" binding:"required"`
	Items        []OrderItemInput `json:"items" binding:"required,min=1,dive"`
}

type UpdateOrderStatusInput struct {
	Status OrderStatus `json:"status" binding:"required"`
}

// ResolvedOrderItem is a line item joined with the current product record
// for order reads. Product is nil when the product was deleted after the
// order was placed; the frozen quantity and unit price still stand.
type ResolvedOrderItem struct {
	ProductID    string   `json:"productId"`
	Quantity     int      `json:"quantity"`
	PriceAtOrder float64  `json:"priceAtOrder"`
	Product      *Product `json:"product,omitempty"`
}

// ResolvedOrder is the read-side shape of an Order with items resolved to
// product details.
type ResolvedOrder struct {
	ID           primitive.ObjectID  `json:"id"`
	CustomerName string              `json:"customerName"`
	Phone        string              `json:"phone"`
	Address      string              `json:"address"`
	Items        []ResolvedOrderItem `json:"items"`
	TotalAmount  float64             `json:"totalAmount"`
	Status       OrderStatus         `json:"status"`
	CreatedAt    time.Time           `json:"createdAt"`
	UpdatedAt    time.Time           `json:"updatedAt"`
}
