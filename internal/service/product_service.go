package service

import (
	"context"
	"strconv"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/listingadmin/listing_admin/internal/sse"
	"github.com/listingadmin/listing_admin/pkg/catalog"
)

// ProductRow is one line of the products table.
type ProductRow struct {
	catalog.Product
	CategoryLabel string
	Price         string
}

// ProductsView is the state of the products screen.
type ProductsView struct {
	Categories []catalog.Category
	Rows       []ProductRow
	Form       ProductForm
	Error      string
	// RefreshURL reloads the screen keeping the form fields.
	RefreshURL string
}

// ProductService backs the products screen.
type ProductService struct {
	catalog  Catalog
	notifier sse.CatalogNotifier
}

// NewProductService constructs a ProductService.
func NewProductService(c Catalog, notifier sse.CatalogNotifier) *ProductService {
	return &ProductService{catalog: c, notifier: notifierOrNop(notifier)}
}

// CategoryLabels returns a lookup from category id to name. Unknown ids are
// labelled with the id itself.
func CategoryLabels(categories []catalog.Category) func(id int) string {
	names := make(map[int]string, len(categories))
	for _, c := range categories {
		names[c.ID] = c.Name
	}
	return func(id int) string {
		if name, ok := names[id]; ok {
			return name
		}
		return strconv.Itoa(id)
	}
}

// Page loads categories and products concurrently. If either load fails
// neither list is shown.
func (s *ProductService) Page(ctx context.Context, form ProductForm) *ProductsView {
	view := &ProductsView{Form: form}

	var (
		categories []catalog.Category
		products   []catalog.Product
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		categories, err = s.catalog.ListCategories(gctx)
		return err
	})
	g.Go(func() (err error) {
		products, err = s.catalog.ListProducts(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		log.Warn().Err(err).Msg("failed to load products")
		view.Error = ErrorMessage(err, "Failed to load")
		return view
	}

	label := CategoryLabels(categories)
	view.Categories = categories
	view.Rows = make([]ProductRow, 0, len(products))
	for _, p := range products {
		view.Rows = append(view.Rows, ProductRow{
			Product:       p,
			CategoryLabel: label(p.CategoryID),
			Price:         Money(p.PriceCents, p.Currency),
		})
	}
	return view
}

// Create validates the form and creates the product.
func (s *ProductService) Create(ctx context.Context, form ProductForm) error {
	if !form.CanCreate() {
		return invalidForm("Name, category, a positive price and a 3-letter currency are required.")
	}
	if _, err := s.catalog.CreateProduct(ctx, form.Input()); err != nil {
		return err
	}
	s.notifier.NotifyProductCreated()
	return nil
}

// AfterCreate returns the form shown after a successful create: name and
// description are cleared, the other fields are kept.
func AfterCreate(form ProductForm) ProductForm {
	form.Name = ""
	form.Description = ""
	return form
}
