package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/listingadmin/listing_admin/internal/service"
	"github.com/listingadmin/listing_admin/internal/sse"
	"github.com/listingadmin/listing_admin/internal/web"
	"github.com/listingadmin/listing_admin/pkg/catalog"
)

// fakeBackend is an in-memory catalog API.
type fakeBackend struct {
	mu         sync.Mutex
	categories []catalog.Category
	products   []catalog.Product
	nextImage  int
	requests   []string

	failCategories int
	failUpload     int
}

func (b *fakeBackend) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/categories", func(w http.ResponseWriter, r *http.Request) {
		if b.failCategories != 0 {
			w.WriteHeader(b.failCategories)
			return
		}
		writeJSON(w, http.StatusOK, b.categories)
	})
	mux.HandleFunc("POST /api/categories", func(w http.ResponseWriter, r *http.Request) {
		var in catalog.NewCategory
		_ = json.NewDecoder(r.Body).Decode(&in)
		cat := catalog.Category{ID: len(b.categories) + 1, Name: in.Name, Slug: in.Slug}
		b.categories = append(b.categories, cat)
		writeJSON(w, http.StatusCreated, cat)
	})
	mux.HandleFunc("GET /api/products", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, b.products)
	})
	mux.HandleFunc("POST /api/products", func(w http.ResponseWriter, r *http.Request) {
		var in catalog.ProductInput
		_ = json.NewDecoder(r.Body).Decode(&in)
		p := catalog.Product{
			ID:          len(b.products) + 1,
			CategoryID:  in.CategoryID,
			Name:        in.Name,
			Description: in.Description,
			PriceCents:  in.PriceCents,
			Currency:    in.Currency,
			Stock:       in.Stock,
			IsActive:    true,
		}
		b.products = append(b.products, p)
		writeJSON(w, http.StatusCreated, p)
	})
	mux.HandleFunc("GET /api/products/{id}", func(w http.ResponseWriter, r *http.Request) {
		p := b.product(r)
		if p == nil {
			http.Error(w, "product not found", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, p)
	})
	mux.HandleFunc("PUT /api/products/{id}", func(w http.ResponseWriter, r *http.Request) {
		p := b.product(r)
		if p == nil {
			http.Error(w, "product not found", http.StatusNotFound)
			return
		}
		var in catalog.ProductInput
		_ = json.NewDecoder(r.Body).Decode(&in)
		p.Name, p.Description, p.CategoryID = in.Name, in.Description, in.CategoryID
		p.PriceCents, p.Currency, p.Stock = in.PriceCents, in.Currency, in.Stock
		writeJSON(w, http.StatusOK, p)
	})
	mux.HandleFunc("POST /api/products/{id}/images", func(w http.ResponseWriter, r *http.Request) {
		if b.failUpload != 0 {
			http.Error(w, "file too large", b.failUpload)
			return
		}
		p := b.product(r)
		_, fh, err := r.FormFile("image")
		if p == nil || err != nil {
			http.Error(w, "bad upload", http.StatusBadRequest)
			return
		}
		b.nextImage++
		img := catalog.ProductImage{ID: b.nextImage, URL: "/uploads/" + fh.Filename, SortOrder: len(p.Images)}
		p.Images = append(p.Images, img)
		writeJSON(w, http.StatusCreated, map[string]string{"url": img.URL})
	})
	mux.HandleFunc("DELETE /api/products/{id}/images/{imageId}", func(w http.ResponseWriter, r *http.Request) {
		p := b.product(r)
		imageID, _ := strconv.Atoi(r.PathValue("imageId"))
		if p == nil {
			http.Error(w, "product not found", http.StatusNotFound)
			return
		}
		kept := p.Images[:0]
		for _, img := range p.Images {
			if img.ID != imageID {
				kept = append(kept, img)
			}
		}
		p.Images = kept
		w.WriteHeader(http.StatusNoContent)
	})

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		b.requests = append(b.requests, r.Method+" "+r.URL.Path)
		mux.ServeHTTP(w, r)
	})
}

func (b *fakeBackend) product(r *http.Request) *catalog.Product {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		return nil
	}
	for i := range b.products {
		if b.products[i].ID == id {
			return &b.products[i]
		}
	}
	return nil
}

func (b *fakeBackend) requestLog() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.requests...)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// newTestRouter wires the dashboard against backend the same way the server
// command does.
func newTestRouter(t *testing.T, backend http.Handler) (*gin.Engine, *sse.Hub) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	srv := httptest.NewServer(backend)
	t.Cleanup(srv.Close)

	client := catalog.NewClient(catalog.Config{BaseURL: srv.URL})
	hub := sse.NewHub()
	notifier := sse.NewHubNotifier(hub)

	renderer, err := web.NewRenderer(srv.URL)
	require.NoError(t, err)

	router := gin.New()
	router.HTMLRender = renderer
	RegisterRoutes(router, &Handlers{
		Page:        NewPageHandler(),
		Category:    NewCategoryHandler(service.NewCategoryService(client, notifier)),
		Product:     NewProductHandler(service.NewProductService(client, notifier)),
		ProductEdit: NewProductEditHandler(service.NewProductEditService(client, notifier, srv.URL)),
		Health:      NewHealthHandler(service.NewBackendService(client, srv.URL)),
		SSE:         NewSSEHandler(hub),
	})
	return router, hub
}
