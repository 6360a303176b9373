package service

import (
	"strings"
	"unicode/utf8"

	"github.com/listingadmin/listing_admin/internal/utils"
	"github.com/listingadmin/listing_admin/pkg/catalog"
)

const (
	minNameLength     = 2
	minSlugLength     = 2
	minCurrencyLength = 3

	defaultPriceCents = 1999
	defaultCurrency   = "GBP"
	defaultStock      = 10
)

func trimmedLen(s string) int {
	return utf8.RuneCountInString(strings.TrimSpace(s))
}

// CategoryForm holds the create-category form fields.
type CategoryForm struct {
	Name string `form:"name"`
	Slug string `form:"slug"`
}

// Valid reports whether the form may be submitted.
func (f CategoryForm) Valid() bool {
	return trimmedLen(f.Name) >= minNameLength && trimmedLen(f.Slug) >= minSlugLength
}

// Input returns the trimmed request body.
func (f CategoryForm) Input() catalog.NewCategory {
	return catalog.NewCategory{
		Name: strings.TrimSpace(f.Name),
		Slug: strings.TrimSpace(f.Slug),
	}
}

// ProductForm holds the product create/edit form fields. A CategoryID of 0
// means no category is selected.
type ProductForm struct {
	Name        string `form:"name"`
	Description string `form:"description"`
	CategoryID  int    `form:"categoryId"`
	PriceCents  int    `form:"priceCents"`
	Currency    string `form:"currency"`
	Stock       int    `form:"stock"`
}

// NewProductForm returns the create form with its initial values.
func NewProductForm() ProductForm {
	return ProductForm{
		PriceCents: defaultPriceCents,
		Currency:   defaultCurrency,
		Stock:      defaultStock,
	}
}

// ProductFormFrom prefills the edit form from a loaded product.
func ProductFormFrom(p *catalog.Product) ProductForm {
	f := ProductForm{
		Name:       p.Name,
		CategoryID: p.CategoryID,
		PriceCents: p.PriceCents,
		Currency:   p.Currency,
		Stock:      p.Stock,
	}
	if p.Description != nil {
		f.Description = *p.Description
	}
	if f.Currency == "" {
		f.Currency = defaultCurrency
	}
	return f
}

// CanCreate reports whether the create form may be submitted.
func (f ProductForm) CanCreate() bool {
	return trimmedLen(f.Name) >= minNameLength &&
		f.CategoryID != 0 &&
		f.PriceCents > 0 &&
		trimmedLen(f.Currency) >= minCurrencyLength
}

// CanSave reports whether the edit form may be submitted.
func (f ProductForm) CanSave() bool {
	return trimmedLen(f.Name) >= minNameLength &&
		f.CategoryID > 0 &&
		f.PriceCents > 0
}

// Input returns the request body: trimmed name, a nil description when blank
// and an uppercased currency code.
func (f ProductForm) Input() catalog.ProductInput {
	in := catalog.ProductInput{
		Name:       strings.TrimSpace(f.Name),
		CategoryID: f.CategoryID,
		PriceCents: f.PriceCents,
		Currency:   strings.ToUpper(strings.TrimSpace(f.Currency)),
		Stock:      f.Stock,
	}
	if d := strings.TrimSpace(f.Description); d != "" {
		in.Description = &d
	}
	return in
}

func invalidForm(message string) error {
	return NewInputError(utils.ErrInvalidForm, message)
}
