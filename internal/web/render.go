package web

import (
	"embed"
	"fmt"
	"html/template"

	"github.com/gin-gonic/gin/render"
)

// Screen names accepted by Renderer.Instance.
const (
	Landing     = "landing"
	Categories  = "categories"
	Products    = "products"
	ProductEdit = "product_edit"
	Orders      = "orders"
)

//go:embed templates/*.html
var files embed.FS

// Page is the data every screen template receives.
type Page struct {
	Title      string
	Nav        string
	APIBaseURL string
	View       any
}

// Renderer implements gin's render.HTMLRender over the embedded screens.
// Each screen is parsed together with the shared layout and shell.
type Renderer struct {
	templates  map[string]*template.Template
	apiBaseURL string
}

// NewRenderer parses all screens. apiBaseURL is shown in the configuration
// hint of every page.
func NewRenderer(apiBaseURL string) (*Renderer, error) {
	r := &Renderer{
		templates:  make(map[string]*template.Template),
		apiBaseURL: apiBaseURL,
	}
	for _, name := range []string{Landing, Categories, Products, ProductEdit, Orders} {
		t, err := template.New(name).ParseFS(files,
			"templates/layout.html",
			"templates/shell.html",
			"templates/"+name+".html",
		)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s template: %w", name, err)
		}
		r.templates[name] = t
	}
	return r, nil
}

// Instance returns the render for the named screen. data is usually a Page;
// any other value is wrapped in one.
func (r *Renderer) Instance(name string, data any) render.Render {
	page, ok := data.(Page)
	if !ok {
		page = Page{View: data}
	}
	if page.Nav == "" {
		page.Nav = name
	}
	page.APIBaseURL = r.apiBaseURL

	return render.HTML{
		Template: r.templates[name],
		Name:     "layout",
		Data:     page,
	}
}
