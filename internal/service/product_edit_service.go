package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/listingadmin/listing_admin/internal/sse"
	"github.com/listingadmin/listing_admin/pkg/catalog"
)

// ImageView is a product image as displayed in the browser.
type ImageView struct {
	ID  int
	URL string
	Src string
}

// ProductEditView is the state of the product edit screen.
type ProductEditView struct {
	ID         int
	Product    *catalog.Product
	Categories []catalog.Category
	Form       ProductForm
	Current    string
	Images     []ImageView
	Error      string
}

// MissingCategory reports whether the form's category is set but absent from
// the loaded categories. The screen then offers the id itself as the
// selected option so the product can still be saved.
func (v *ProductEditView) MissingCategory() bool {
	if v.Form.CategoryID <= 0 {
		return false
	}
	for _, c := range v.Categories {
		if c.ID == v.Form.CategoryID {
			return false
		}
	}
	return true
}

// ProductEditService backs the product edit and image management screen.
type ProductEditService struct {
	catalog       Catalog
	notifier      sse.CatalogNotifier
	publicBaseURL string
}

// NewProductEditService constructs a ProductEditService. publicBaseURL is
// prepended to server-relative image urls.
func NewProductEditService(c Catalog, notifier sse.CatalogNotifier, publicBaseURL string) *ProductEditService {
	return &ProductEditService{
		catalog:       c,
		notifier:      notifierOrNop(notifier),
		publicBaseURL: publicBaseURL,
	}
}

// Page loads categories and the product concurrently and prefills the form.
func (s *ProductEditService) Page(ctx context.Context, id int) *ProductEditView {
	view := &ProductEditView{ID: id}

	var (
		categories []catalog.Category
		product    *catalog.Product
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		categories, err = s.catalog.ListCategories(gctx)
		return err
	})
	g.Go(func() (err error) {
		product, err = s.catalog.GetProduct(gctx, id)
		return err
	})
	if err := g.Wait(); err != nil {
		log.Warn().Err(err).Int("product_id", id).Msg("failed to load product")
		view.Error = ErrorMessage(err, "Failed to load")
		return view
	}

	view.Categories = categories
	view.Product = product
	view.Form = ProductFormFrom(product)
	view.Current = Money(product.PriceCents, product.Currency)
	view.Images = make([]ImageView, 0, len(product.Images))
	for _, img := range product.Images {
		view.Images = append(view.Images, ImageView{
			ID:  img.ID,
			URL: img.URL,
			Src: s.publicBaseURL + img.URL,
		})
	}
	return view
}

// InvalidPage is shown for a product id that is not a number. The backend is
// not called.
func InvalidPage(raw string) *ProductEditView {
	return &ProductEditView{
		Error: fmt.Sprintf("Invalid product id %q.", raw),
	}
}

// Save validates the form and replaces the product's fields.
func (s *ProductEditService) Save(ctx context.Context, id int, form ProductForm) error {
	if !form.CanSave() {
		return invalidForm("Name, category and a positive price are required.")
	}
	if _, err := s.catalog.UpdateProduct(ctx, id, form.Input().Patch()); err != nil {
		return err
	}
	s.notifier.NotifyProductUpdated(id)
	return nil
}

// UploadImage uploads a new image. Nothing is inserted locally; the screen
// shows the image only after re-fetching the product.
func (s *ProductEditService) UploadImage(ctx context.Context, id int, file catalog.ImageFile) error {
	upload, err := s.catalog.UploadProductImage(ctx, id, file)
	if err != nil {
		return err
	}
	log.Info().Int("product_id", id).Str("url", upload.URL).Msg("product image uploaded")
	s.notifier.NotifyImagesChanged(id)
	return nil
}

// DeleteImage removes an image from the product.
func (s *ProductEditService) DeleteImage(ctx context.Context, id, imageID int) error {
	if err := s.catalog.DeleteProductImage(ctx, id, imageID); err != nil {
		return err
	}
	s.notifier.NotifyImagesChanged(id)
	return nil
}
