package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/listingadmin/listing_admin/internal/service"
	"github.com/listingadmin/listing_admin/internal/utils"
	"github.com/listingadmin/listing_admin/internal/web"
)

// CategoryHandler serves the categories screen.
type CategoryHandler struct {
	categoryService *service.CategoryService
}

// NewCategoryHandler constructs a CategoryHandler.
func NewCategoryHandler(categoryService *service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// List handles GET /admin/categories.
func (h *CategoryHandler) List(c *gin.Context) {
	view := h.categoryService.Page(c.Request.Context(), service.CategoryForm{})
	h.render(c, loadStatus(view.Error), view)
}

// Create handles POST /admin/categories. On success the browser is redirected
// back to the list, which clears the form and reloads the table.
func (h *CategoryHandler) Create(c *gin.Context) {
	var form service.CategoryForm
	if err := c.ShouldBind(&form); err != nil {
		h.fail(c, form, bindError(err))
		return
	}

	if err := h.categoryService.Create(c.Request.Context(), form); err != nil {
		h.fail(c, form, err)
		return
	}
	c.Redirect(http.StatusSeeOther, "/admin/categories")
}

func (h *CategoryHandler) fail(c *gin.Context, form service.CategoryForm, err error) {
	log.Warn().Err(err).Bool("backend", service.IsBackendError(err)).Str("request_id", utils.RequestID(c)).Msg("create category failed")

	view := h.categoryService.Page(c.Request.Context(), form)
	view.Error = service.ErrorMessage(err, "Create failed")
	h.render(c, failureStatus(err), view)
}

func (h *CategoryHandler) render(c *gin.Context, code int, view *service.CategoriesView) {
	c.HTML(code, web.Categories, web.Page{Title: "Categories", View: view})
}
