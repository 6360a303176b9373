package service

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/listingadmin/listing_admin/pkg/catalog"
)

// Catalog is the backend facade the screens depend on. *catalog.Client
// implements it.
type Catalog interface {
	ListCategories(ctx context.Context) ([]catalog.Category, error)
	ListProducts(ctx context.Context) ([]catalog.Product, error)
	GetProduct(ctx context.Context, id int) (*catalog.Product, error)
	CreateCategory(ctx context.Context, body catalog.NewCategory) (json.RawMessage, error)
	CreateProduct(ctx context.Context, body catalog.ProductInput) (json.RawMessage, error)
	UpdateProduct(ctx context.Context, id int, patch catalog.ProductPatch) (json.RawMessage, error)
	UploadProductImage(ctx context.Context, productID int, file catalog.ImageFile) (*catalog.ImageUpload, error)
	DeleteProductImage(ctx context.Context, productID, imageID int) error
}

// InputError is user input rejected before reaching the backend. Code is one
// of the utils sentinels and is what logs and status mapping see; Message is
// the text shown on the screen.
type InputError struct {
	Code    error
	Message string
}

// NewInputError wraps code with a screen message.
func NewInputError(code error, message string) error {
	return &InputError{Code: code, Message: message}
}

func (e *InputError) Error() string {
	return e.Code.Error() + ": " + e.Message
}

func (e *InputError) Unwrap() error {
	return e.Code
}

// ErrorMessage returns the message shown inline for err, or fallback when
// err carries no text. Input errors show their screen message; backend and
// transport errors show their full text.
func ErrorMessage(err error, fallback string) string {
	if err == nil {
		return ""
	}
	var inputErr *InputError
	if errors.As(err, &inputErr) && inputErr.Message != "" {
		return inputErr.Message
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return fallback
}

// IsBackendError reports whether err came from the catalog backend rather
// than from local form validation.
func IsBackendError(err error) bool {
	var httpErr *catalog.HTTPError
	return errors.As(err, &httpErr)
}
