package handler

import "github.com/gin-gonic/gin"

// Handlers groups all HTTP handlers used by the server.
type Handlers struct {
	Page        *PageHandler
	Category    *CategoryHandler
	Product     *ProductHandler
	ProductEdit *ProductEditHandler
	Health      *HealthHandler
	SSE         *SSEHandler
}

// RegisterRoutes registers all routes.
func RegisterRoutes(router *gin.Engine, h *Handlers) {
	router.NoRoute(h.Page.NotFound)
	router.GET("/healthz", h.Health.GetHealth)
	router.GET("/", h.Page.Landing)

	admin := router.Group("/admin")
	{
		admin.GET("/categories", h.Category.List)
		admin.POST("/categories", h.Category.Create)

		admin.GET("/products", h.Product.List)
		admin.POST("/products", h.Product.Create)
		admin.GET("/products/:id", h.ProductEdit.Show)
		admin.POST("/products/:id", h.ProductEdit.Save)
		admin.POST("/products/:id/images", h.ProductEdit.UploadImage)
		admin.POST("/products/:id/images/:imageId/delete", h.ProductEdit.DeleteImage)

		admin.GET("/orders", h.Page.Orders)
		admin.GET("/events", h.SSE.Stream)
	}
}
