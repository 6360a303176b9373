package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
)

// ListCategories retrieves all categories in server order.
func (c *Client) ListCategories(ctx context.Context) ([]Category, error) {
	data, err := Do[[]json.RawMessage](ctx, c, "/api/categories", nil)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return []Category{}, nil
	}
	return normalizeAll(*data, NormalizeCategory)
}

// ListProducts retrieves all products in server order.
func (c *Client) ListProducts(ctx context.Context) ([]Product, error) {
	data, err := Do[[]json.RawMessage](ctx, c, "/api/products", nil)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return []Product{}, nil
	}
	return normalizeAll(*data, NormalizeProduct)
}

// GetProduct retrieves a single product including its images.
func (c *Client) GetProduct(ctx context.Context, id int) (*Product, error) {
	data, err := Do[json.RawMessage](ctx, c, fmt.Sprintf("/api/products/%d", id), nil)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, errors.New("empty product response")
	}
	p, err := NormalizeProduct(*data)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// CreateCategory creates a category. The response is returned exactly as the
// backend sent it, without normalization.
func (c *Client) CreateCategory(ctx context.Context, body NewCategory) (json.RawMessage, error) {
	return c.write(ctx, http.MethodPost, "/api/categories", body)
}

// CreateProduct creates a product. The response is returned unnormalized.
func (c *Client) CreateProduct(ctx context.Context, body ProductInput) (json.RawMessage, error) {
	return c.write(ctx, http.MethodPost, "/api/products", body)
}

// UpdateProduct replaces the fields set in patch. The response is returned
// unnormalized.
func (c *Client) UpdateProduct(ctx context.Context, id int, patch ProductPatch) (json.RawMessage, error) {
	return c.write(ctx, http.MethodPut, fmt.Sprintf("/api/products/%d", id), patch)
}

func (c *Client) write(ctx context.Context, method, path string, body any) (json.RawMessage, error) {
	payload, err := c.jsonBody(body)
	if err != nil {
		return nil, err
	}
	data, err := Do[json.RawMessage](ctx, c, path, &Request{Method: method, Body: payload})
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, nil
	}
	return *data, nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// UploadProductImage uploads file as the multipart field "image". The file is
// buffered in memory for the duration of the request only.
func (c *Client) UploadProductImage(ctx context.Context, productID int, file ImageFile) (*ImageUpload, error) {
	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name="image"; filename="%s"`, quoteEscaper.Replace(file.Name)))
	contentType := file.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	header.Set("Content-Type", contentType)

	part, err := form.CreatePart(header)
	if err != nil {
		return nil, fmt.Errorf("failed to create form part: %w", err)
	}
	if _, err := io.Copy(part, file.Body); err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}
	if err := form.Close(); err != nil {
		return nil, fmt.Errorf("failed to close form: %w", err)
	}

	path := fmt.Sprintf("/api/products/%d/images", productID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, &buf)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", form.FormDataContentType())

	resp, err := c.send(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var out ImageUpload
	if err := c.decode(resp, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteProductImage removes an image from a product.
func (c *Client) DeleteProductImage(ctx context.Context, productID, imageID int) error {
	path := fmt.Sprintf("/api/products/%d/images/%d", productID, imageID)
	_, err := Do[struct{}](ctx, c, path, &Request{Method: http.MethodDelete})
	return err
}
