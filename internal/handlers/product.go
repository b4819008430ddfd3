package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AR-Raju/online-nursery-server/internal/catalog"
	"github.com/AR-Raju/online-nursery-server/internal/domain"
	"github.com/AR-Raju/online-nursery-server/internal/repository"
)

// Uploader sends base64 image bytes to the external image host and returns
// a public URL.
type Uploader interface {
	Upload(ctx context.Context, imageBase64 string) (string, error)
}

type ProductHandler struct {
	store    repository.ProductStore
	uploader Uploader
}

func NewProductHandler(store repository.ProductStore, uploader Uploader) *ProductHandler {
	return &ProductHandler{store: store, uploader: uploader}
}

func (h *ProductHandler) List(c *gin.Context) {
	query := catalog.Parse(c.Request.URL.Query())

	products, total, err := h.store.List(c.Request.Context(), query)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	respondPage(c, http.StatusOK, products, &Pagination{
		Total: total,
		Page:  query.Page,
		Limit: query.Limit,
	})
}

func (h *ProductHandler) Get(c *gin.Context) {
	product, err := h.store.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondDomainError(c, err)
		return
	}
	respond(c, http.StatusOK, product)
}

func (h *ProductHandler) Create(c *gin.Context) {
	var input domain.CreateProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	product := &domain.Product{
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		Stock:       input.Stock,
		Category:    input.Category,
	}
	if input.Rating != nil {
		product.Rating = *input.Rating
	}

	if input.Image != "" {
		url, err := h.uploader.Upload(c.Request.Context(), input.Image)
		if err != nil {
			respondDomainError(c, err)
			return
		}
		product.ImageURL = url
	}

	if err := h.store.Create(c.Request.Context(), product); err != nil {
		respondDomainError(c, err)
		return
	}
	respond(c, http.StatusCreated, product)
}

func (h *ProductHandler) Update(c *gin.Context) {
	var input domain.UpdateProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if input.Image != "" {
		url, err := h.uploader.Upload(c.Request.Context(), input.Image)
		if err != nil {
			respondDomainError(c, err)
			return
		}
		input.Image = url
	}

	product, err := h.store.Update(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	respond(c, http.StatusOK, product)
}

func (h *ProductHandler) Delete(c *gin.Context) {
	if err := h.store.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondDomainError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "Product deleted successfully")
}
