package service

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/listingadmin/listing_admin/internal/sse"
	"github.com/listingadmin/listing_admin/pkg/catalog"
)

// CategoriesView is the state of the categories screen.
type CategoriesView struct {
	Categories []catalog.Category
	Form       CategoryForm
	Error      string
}

// CategoryService backs the categories screen.
type CategoryService struct {
	catalog  Catalog
	notifier sse.CatalogNotifier
}

// NewCategoryService constructs a CategoryService. A nil notifier announces
// nothing.
func NewCategoryService(c Catalog, notifier sse.CatalogNotifier) *CategoryService {
	return &CategoryService{catalog: c, notifier: notifierOrNop(notifier)}
}

func notifierOrNop(n sse.CatalogNotifier) sse.CatalogNotifier {
	if n == nil {
		return &sse.NopNotifier{}
	}
	return n
}

// Page loads the category list. A load failure is reported in the view's
// Error and leaves the list empty.
func (s *CategoryService) Page(ctx context.Context, form CategoryForm) *CategoriesView {
	view := &CategoriesView{Form: form}
	categories, err := s.catalog.ListCategories(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("failed to load categories")
		view.Error = ErrorMessage(err, "Failed to load")
		return view
	}
	view.Categories = categories
	return view
}

// Create validates the form and creates the category. The backend's response
// is not used; the screen re-fetches the list afterwards.
func (s *CategoryService) Create(ctx context.Context, form CategoryForm) error {
	if !form.Valid() {
		return invalidForm("Name and slug need at least 2 characters.")
	}
	if _, err := s.catalog.CreateCategory(ctx, form.Input()); err != nil {
		return err
	}
	s.notifier.NotifyCategoryCreated()
	return nil
}
