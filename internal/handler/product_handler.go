package handler

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/listingadmin/listing_admin/internal/service"
	"github.com/listingadmin/listing_admin/internal/utils"
	"github.com/listingadmin/listing_admin/internal/web"
)

// ProductHandler serves the products screen.
type ProductHandler struct {
	productService *service.ProductService
}

// NewProductHandler constructs a ProductHandler.
func NewProductHandler(productService *service.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// List handles GET /admin/products. Form fields kept after a create arrive as
// query parameters; anything missing or malformed uses the defaults.
func (h *ProductHandler) List(c *gin.Context) {
	form := service.NewProductForm()
	if err := c.ShouldBindQuery(&form); err != nil {
		form = service.NewProductForm()
	}

	view := h.productService.Page(c.Request.Context(), form)
	view.RefreshURL = c.Request.URL.RequestURI()
	h.render(c, loadStatus(view.Error), view)
}

// Create handles POST /admin/products.
func (h *ProductHandler) Create(c *gin.Context) {
	var form service.ProductForm
	if err := c.ShouldBind(&form); err != nil {
		h.fail(c, form, bindError(err))
		return
	}

	if err := h.productService.Create(c.Request.Context(), form); err != nil {
		h.fail(c, form, err)
		return
	}
	c.Redirect(http.StatusSeeOther, productsPath(service.AfterCreate(form)))
}

func (h *ProductHandler) fail(c *gin.Context, form service.ProductForm, err error) {
	log.Warn().Err(err).Bool("backend", service.IsBackendError(err)).Str("request_id", utils.RequestID(c)).Msg("create product failed")

	view := h.productService.Page(c.Request.Context(), form)
	view.Error = service.ErrorMessage(err, "Create failed")
	view.RefreshURL = productsPath(form)
	h.render(c, failureStatus(err), view)
}

func (h *ProductHandler) render(c *gin.Context, code int, view *service.ProductsView) {
	c.HTML(code, web.Products, web.Page{Title: "Products", View: view})
}

func productsPath(form service.ProductForm) string {
	return "/admin/products?" + keptFields(form).Encode()
}

// keptFields encodes the create form fields that survive a successful create.
func keptFields(form service.ProductForm) url.Values {
	q := url.Values{}
	q.Set("categoryId", strconv.Itoa(form.CategoryID))
	q.Set("priceCents", strconv.Itoa(form.PriceCents))
	q.Set("currency", form.Currency)
	q.Set("stock", strconv.Itoa(form.Stock))
	return q
}
