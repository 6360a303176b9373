package catalog

import (
	"io"

	"github.com/go-faster/jx"
)

// Category is a named, sluggable grouping for products.
type Category struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// ProductImage is a media asset attached to a product. URL is server-relative.
type ProductImage struct {
	ID        int    `json:"id"`
	URL       string `json:"url"`
	SortOrder int    `json:"sortOrder"`
}

// Product is a sellable catalog entry in its canonical shape.
type Product struct {
	ID          int            `json:"id"`
	CategoryID  int            `json:"categoryId"`
	Name        string         `json:"name"`
	Description *string        `json:"description"`
	PriceCents  int            `json:"priceCents"`
	Currency    string         `json:"currency"`
	Stock       int            `json:"stock"`
	IsActive    bool           `json:"isActive"`
	Images      []ProductImage `json:"images"`
}

// NewCategory is the request body of POST /api/categories.
type NewCategory struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// ProductInput is the full product body (everything but id and images).
// A nil Description is sent as JSON null.
type ProductInput struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	CategoryID  int     `json:"categoryId"`
	PriceCents  int     `json:"priceCents"`
	Currency    string  `json:"currency"`
	Stock       int     `json:"stock"`
	IsActive    *bool   `json:"isActive,omitempty"`
}

// ProductPatch is the body of PUT /api/products/{id}. Only set fields are
// written; ClearDescription sends an explicit null description.
type ProductPatch struct {
	Name             *string
	Description      *string
	ClearDescription bool
	CategoryID       *int
	PriceCents       *int
	Currency         *string
	Stock            *int
	IsActive         *bool
}

// Patch converts a full input into an update that replaces every field.
func (in ProductInput) Patch() ProductPatch {
	p := ProductPatch{
		Name:        &in.Name,
		Description: in.Description,
		CategoryID:  &in.CategoryID,
		PriceCents:  &in.PriceCents,
		Currency:    &in.Currency,
		Stock:       &in.Stock,
		IsActive:    in.IsActive,
	}
	if in.Description == nil {
		p.ClearDescription = true
	}
	return p
}

// Encode writes the patch as a JSON object.
func (p ProductPatch) Encode(e *jx.Encoder) {
	e.ObjStart()
	if p.Name != nil {
		e.FieldStart("name")
		e.Str(*p.Name)
	}
	switch {
	case p.Description != nil:
		e.FieldStart("description")
		e.Str(*p.Description)
	case p.ClearDescription:
		e.FieldStart("description")
		e.Null()
	}
	if p.CategoryID != nil {
		e.FieldStart("categoryId")
		e.Int(*p.CategoryID)
	}
	if p.PriceCents != nil {
		e.FieldStart("priceCents")
		e.Int(*p.PriceCents)
	}
	if p.Currency != nil {
		e.FieldStart("currency")
		e.Str(*p.Currency)
	}
	if p.Stock != nil {
		e.FieldStart("stock")
		e.Int(*p.Stock)
	}
	if p.IsActive != nil {
		e.FieldStart("isActive")
		e.Bool(*p.IsActive)
	}
	e.ObjEnd()
}

// MarshalJSON implements json.Marshaler.
func (p ProductPatch) MarshalJSON() ([]byte, error) {
	var e jx.Encoder
	p.Encode(&e)
	return e.Bytes(), nil
}

// ImageFile is a file selected for upload.
type ImageFile struct {
	Name        string
	ContentType string
	Body        io.Reader
}

// ImageUpload is the response of POST /api/products/{id}/images.
type ImageUpload struct {
	URL string `json:"url"`
}
