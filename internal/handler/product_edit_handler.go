package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/listingadmin/listing_admin/internal/service"
	"github.com/listingadmin/listing_admin/internal/utils"
	"github.com/listingadmin/listing_admin/internal/web"
	"github.com/listingadmin/listing_admin/pkg/catalog"
)

// ProductEditHandler serves the product edit and image management screen.
type ProductEditHandler struct {
	editService *service.ProductEditService
}

// NewProductEditHandler constructs a ProductEditHandler.
func NewProductEditHandler(editService *service.ProductEditService) *ProductEditHandler {
	return &ProductEditHandler{editService: editService}
}

// Show handles GET /admin/products/:id.
func (h *ProductEditHandler) Show(c *gin.Context) {
	id, ok := h.productID(c)
	if !ok {
		return
	}
	view := h.editService.Page(c.Request.Context(), id)
	h.render(c, loadStatus(view.Error), view)
}

// Save handles POST /admin/products/:id.
func (h *ProductEditHandler) Save(c *gin.Context) {
	id, ok := h.productID(c)
	if !ok {
		return
	}

	var form service.ProductForm
	if err := c.ShouldBind(&form); err != nil {
		h.fail(c, id, &form, bindError(err))
		return
	}
	if err := h.editService.Save(c.Request.Context(), id, form); err != nil {
		h.fail(c, id, &form, err)
		return
	}
	c.Redirect(http.StatusSeeOther, productPath(id))
}

// UploadImage handles POST /admin/products/:id/images with a multipart
// "image" field.
func (h *ProductEditHandler) UploadImage(c *gin.Context) {
	id, ok := h.productID(c)
	if !ok {
		return
	}

	fh, err := c.FormFile("image")
	if err != nil {
		h.fail(c, id, nil, service.NewInputError(utils.ErrMissingFile, "Choose an image to upload."))
		return
	}
	file, err := fh.Open()
	if err != nil {
		h.fail(c, id, nil, fmt.Errorf("failed to read upload: %w", err))
		return
	}
	defer file.Close()

	err = h.editService.UploadImage(c.Request.Context(), id, catalog.ImageFile{
		Name:        fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Body:        file,
	})
	if err != nil {
		h.fail(c, id, nil, err)
		return
	}
	c.Redirect(http.StatusSeeOther, productPath(id))
}

// DeleteImage handles POST /admin/products/:id/images/:imageId/delete.
func (h *ProductEditHandler) DeleteImage(c *gin.Context) {
	id, ok := h.productID(c)
	if !ok {
		return
	}
	raw := c.Param("imageId")
	imageID, err := strconv.Atoi(raw)
	if err != nil {
		h.fail(c, id, nil, service.NewInputError(utils.ErrInvalidImageID, fmt.Sprintf("Invalid image id %q.", raw)))
		return
	}

	if err := h.editService.DeleteImage(c.Request.Context(), id, imageID); err != nil {
		h.fail(c, id, nil, err)
		return
	}
	c.Redirect(http.StatusSeeOther, productPath(id))
}

// productID parses the :id parameter. A non-numeric id renders the error
// screen without calling the backend.
func (h *ProductEditHandler) productID(c *gin.Context) (int, bool) {
	raw := c.Param("id")
	id, err := strconv.Atoi(raw)
	if err != nil {
		log.Warn().Err(fmt.Errorf("%w: %q", utils.ErrInvalidProductID, raw)).Str("request_id", utils.RequestID(c)).Msg("product action rejected")
		h.render(c, http.StatusBadRequest, service.InvalidPage(raw))
		return 0, false
	}
	return id, true
}

// fail reloads the screen and shows err inline. A non-nil form replaces the
// prefilled values so the user's input is kept.
func (h *ProductEditHandler) fail(c *gin.Context, id int, form *service.ProductForm, err error) {
	log.Warn().Err(err).Bool("backend", service.IsBackendError(err)).Int("product_id", id).Str("request_id", utils.RequestID(c)).Msg("product action failed")

	view := h.editService.Page(c.Request.Context(), id)
	if form != nil {
		view.Form = *form
	}
	view.Error = service.ErrorMessage(err, "Request failed")
	h.render(c, failureStatus(err), view)
}

func (h *ProductEditHandler) render(c *gin.Context, code int, view *service.ProductEditView) {
	c.HTML(code, web.ProductEdit, web.Page{Title: "Edit product", View: view})
}

func productPath(id int) string {
	return "/admin/products/" + strconv.Itoa(id)
}
