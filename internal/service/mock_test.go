package service

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/listingadmin/listing_admin/pkg/catalog"
)

// --- Mock implementations ---

type mockCatalog struct {
	mu sync.Mutex

	categories  []catalog.Category
	products    []catalog.Product
	product     *catalog.Product
	listCatErr  error
	listProdErr error
	getErr      error
	createErr   error
	updateErr   error
	uploadErr   error
	deleteErr   error

	lastCategory *catalog.NewCategory
	lastInput    *catalog.ProductInput
	lastPatch    *catalog.ProductPatch
	lastUpload   *catalog.ImageFile
	deleted      [][2]int
	calls        int
}

func (m *mockCatalog) called() {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
}

func (m *mockCatalog) ListCategories(_ context.Context) ([]catalog.Category, error) {
	m.called()
	return m.categories, m.listCatErr
}

func (m *mockCatalog) ListProducts(_ context.Context) ([]catalog.Product, error) {
	m.called()
	return m.products, m.listProdErr
}

func (m *mockCatalog) GetProduct(_ context.Context, _ int) (*catalog.Product, error) {
	m.called()
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.product, nil
}

func (m *mockCatalog) CreateCategory(_ context.Context, body catalog.NewCategory) (json.RawMessage, error) {
	m.called()
	m.lastCategory = &body
	return json.RawMessage(`{}`), m.createErr
}

func (m *mockCatalog) CreateProduct(_ context.Context, body catalog.ProductInput) (json.RawMessage, error) {
	m.called()
	m.lastInput = &body
	return json.RawMessage(`{}`), m.createErr
}

func (m *mockCatalog) UpdateProduct(_ context.Context, _ int, patch catalog.ProductPatch) (json.RawMessage, error) {
	m.called()
	m.lastPatch = &patch
	return json.RawMessage(`{}`), m.updateErr
}

func (m *mockCatalog) UploadProductImage(_ context.Context, _ int, file catalog.ImageFile) (*catalog.ImageUpload, error) {
	m.called()
	m.lastUpload = &file
	if m.uploadErr != nil {
		return nil, m.uploadErr
	}
	return &catalog.ImageUpload{URL: "/uploads/" + file.Name}, nil
}

func (m *mockCatalog) DeleteProductImage(_ context.Context, productID, imageID int) error {
	m.called()
	m.deleted = append(m.deleted, [2]int{productID, imageID})
	return m.deleteErr
}

type mockNotifier struct {
	events []string
}

func (n *mockNotifier) NotifyCategoryCreated()     { n.events = append(n.events, "category.created") }
func (n *mockNotifier) NotifyProductCreated()      { n.events = append(n.events, "product.created") }
func (n *mockNotifier) NotifyProductUpdated(_ int) { n.events = append(n.events, "product.updated") }
func (n *mockNotifier) NotifyImagesChanged(_ int)  { n.events = append(n.events, "product.images_changed") }

func strPtr(s string) *string { return &s }
