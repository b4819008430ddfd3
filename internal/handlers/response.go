package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AR-Raju/online-nursery-server/internal/domain"
)

// Envelope is the uniform response shape: success mirrors the HTTP class,
// statusCode mirrors the HTTP status, message is set on errors and
// confirmations.
type Envelope struct {
	Success    bool        `json:"success"`
	StatusCode int         `json:"statusCode"`
	Message    string      `json:"message,omitempty"`
	Data       interface{} `json:"data,omitempty"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

type Pagination struct {
	Total int64 `json:"total"`
	Page  int64 `json:"page"`
	Limit int64 `json:"limit"`
}

func respond(c *gin.Context, status int, data interface{}) {
	c.JSON(status, Envelope{Success: true, StatusCode: status, Data: data})
}

func respondPage(c *gin.Context, status int, data interface{}, page *Pagination) {
	c.JSON(status, Envelope{Success: true, StatusCode: status, Data: data, Pagination: page})
}

func respondMessage(c *gin.Context, status int, message string) {
	c.JSON(status, Envelope{Success: true, StatusCode: status, Message: message})
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, Envelope{Success: false, StatusCode: status, Message: message})
}

// respondDomainError maps the error taxonomy onto HTTP statuses; anything
// outside the taxonomy becomes a 500 carrying the raw message.
func respondDomainError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		respondError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrValidation):
		respondError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrInsufficientStock):
		respondError(c, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrUpstream):
		respondError(c, http.StatusBadGateway, err.Error())
	default:
		respondError(c, http.StatusInternalServerError, err.Error())
	}
}
