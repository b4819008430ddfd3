package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AR-Raju/online-nursery-server/internal/domain"
	"github.com/AR-Raju/online-nursery-server/internal/repository"
)

type CategoryHandler struct {
	store    repository.CategoryStore
	uploader Uploader
}

func NewCategoryHandler(store repository.CategoryStore, uploader Uploader) *CategoryHandler {
	return &CategoryHandler{store: store, uploader: uploader}
}

func (h *CategoryHandler) List(c *gin.Context) {
	categories, err := h.store.List(c.Request.Context())
	if err != nil {
		respondDomainError(c, err)
		return
	}
	respond(c, http.StatusOK, categories)
}

func (h *CategoryHandler) Get(c *gin.Context) {
	category, err := h.store.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondDomainError(c, err)
		return
	}
	respond(c, http.StatusOK, category)
}

func (h *CategoryHandler) Create(c *gin.Context) {
	var input domain.CreateCategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	category := &domain.Category{Name: input.Name}

	if input.Image != "" {
		url, err := h.uploader.Upload(c.Request.Context(), input.Image)
		if err != nil {
			respondDomainError(c, err)
			return
		}
		category.ImageURL = url
	}

	if err := h.store.Create(c.Request.Context(), category); err != nil {
		respondDomainError(c, err)
		return
	}
	respond(c, http.StatusCreated, category)
}

func (h *CategoryHandler) Update(c *gin.Context) {
	var input domain.UpdateCategoryInput
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

	category, err := h.store.Update(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	respond(c, http.StatusOK, category)
}

func (h *CategoryHandler) Delete(c *gin.Context) {
	if err := h.store.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondDomainError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "Category deleted successfully")
}
