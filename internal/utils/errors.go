package utils

import "errors"

// Common application errors used across services.
var (
	ErrInvalidForm      = errors.New("INVALID_FORM")
	ErrInvalidProductID = errors.New("INVALID_PRODUCT_ID")
	ErrInvalidImageID   = errors.New("INVALID_IMAGE_ID")
	ErrMissingFile      = errors.New("MISSING_FILE")
)
