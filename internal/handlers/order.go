package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AR-Raju/online-nursery-server/internal/domain"
)

// OrderService is the order workflow consumed by the HTTP surface.
type OrderService interface {
	PlaceOrder(ctx context.Context, input domain.CreateOrderInput) (*domain.Order, error)
	UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, error)
	GetOrder(ctx context.Context, id string) (*domain.ResolvedOrder, error)
	ListOrders(ctx context.Context) ([]*domain.ResolvedOrder, error)
}

type OrderHandler struct {
	service OrderService
}

func NewOrderHandler(service OrderService) *OrderHandler {
	return &OrderHandler{service: service}
}

func (h *OrderHandler) Create(c *gin.Context) {
	var input domain.CreateOrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	order, err := h.service.PlaceOrder(c.Request.Context(), input)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	respond(c, http.StatusCreated, order)
}

func (h *OrderHandler) List(c *gin.Context) {
	orders, err := h.service.ListOrders(c.Request.Context())
	if err != nil {
		respondDomainError(c, err)
		return
	}
	respond(c, http.StatusOK, orders)
}

func (h *OrderHandler) Get(c *gin.Context) {
	order, err := h.service.GetOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondDomainError(c, err)
		return
	}
	respond(c, http.StatusOK, order)
}

func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	var input domain.UpdateOrderStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	order, err := h.service.UpdateStatus(c.Request.Context(), c.Param("id"), input.Status)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	respond(c, http.StatusOK, order)
}
