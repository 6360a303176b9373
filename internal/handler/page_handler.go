package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/listingadmin/listing_admin/internal/service"
	"github.com/listingadmin/listing_admin/internal/utils"
	"github.com/listingadmin/listing_admin/internal/web"
)

// PageHandler serves the static screens.
type PageHandler struct{}

// NewPageHandler constructs a PageHandler.
func NewPageHandler() *PageHandler {
	return &PageHandler{}
}

// Landing handles GET /.
func (h *PageHandler) Landing(c *gin.Context) {
	c.HTML(http.StatusOK, web.Landing, web.Page{})
}

// Orders handles GET /admin/orders. Orders are not available until the
// backend exposes them.
func (h *PageHandler) Orders(c *gin.Context) {
	c.HTML(http.StatusOK, web.Orders, web.Page{Title: "Orders"})
}

// NotFound answers unknown routes with the JSON error envelope.
func (h *PageHandler) NotFound(c *gin.Context) {
	utils.Error(c, http.StatusNotFound, "NOT_FOUND", "No route for "+c.Request.Method+" "+c.Request.URL.Path)
}

// bindError is returned when a form cannot be bound, e.g. a non-numeric
// price.
func bindError(err error) error {
	log.Debug().Err(err).Msg("form binding failed")
	return service.NewInputError(utils.ErrInvalidForm, "Category, price and stock must be whole numbers.")
}

// loadStatus is the status of a screen whose load failed or succeeded.
func loadStatus(viewErr string) int {
	if viewErr != "" {
		return http.StatusBadGateway
	}
	return http.StatusOK
}

// failureStatus maps an action error to the status of the re-rendered screen.
func failureStatus(err error) int {
	switch {
	case errors.Is(err, utils.ErrInvalidForm), errors.Is(err, utils.ErrMissingFile):
		return http.StatusUnprocessableEntity
	case errors.Is(err, utils.ErrInvalidProductID), errors.Is(err, utils.ErrInvalidImageID):
		return http.StatusBadRequest
	default:
		return http.StatusBadGateway
	}
}
