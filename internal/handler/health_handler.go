package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/listingadmin/listing_admin/internal/service"
	"github.com/listingadmin/listing_admin/internal/utils"
)

var startTime = time.Now()

// HealthHandler provides health endpoint.
type HealthHandler struct {
	backend *service.BackendService
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(backend *service.BackendService) *HealthHandler {
	return &HealthHandler{backend: backend}
}

// GetHealth responds with dashboard uptime and the last backend probe. The
// dashboard itself is healthy even when the backend is not.
func (h *HealthHandler) GetHealth(c *gin.Context) {
	utils.Success(c, 200, "Service is healthy", gin.H{
		"status":  "healthy",
		"uptime":  int(time.Since(startTime).Seconds()),
		"backend": h.backend.Status(),
	})
}
