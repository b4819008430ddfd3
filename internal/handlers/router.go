package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

// NewRouter wires the API routes, the metrics endpoint, and the terminal
// handlers for unmatched routes and panics.
func NewRouter(serviceName string, products *ProductHandler, categories *CategoryHandler, orders *OrderHandler, metrics http.Handler) *gin.Engine {
	router := gin.New()
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		respondError(c, http.StatusInternalServerError, fmt.Sprint(recovered))
	}))
	router.Use(otelgin.Middleware(serviceName))

	router.NoRoute(func(c *gin.Context) {
		respondError(c, http.StatusNotFound, "Route not found")
	})

	if metrics != nil {
		router.GET("/metrics", gin.WrapH(metrics))
	}

	api := router.Group("/api")
	{
		api.GET("/products", products.List)
		api.GET("/products/:id", products.Get)
		api.POST("/products", products.Create)
		api.PUT("/products/:id", products.Update)
		api.DELETE("/products/:id", products.Delete)

		api.GET("/categories", categories.List)
		api.GET("/categories/:id", categories.Get)
		api.POST("/categories", categories.Create)
		api.PUT("/categories/:id", categories.Update)
		api.DELETE("/categories/:id", categories.Delete)

		api.POST("/orders", orders.Create)
		api.GET("/orders", orders.List)
		api.GET("/orders/:id", orders.Get)
		api.PUT("/orders/:id", orders.UpdateStatus)
	}

	return router
}
