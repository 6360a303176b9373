package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
)

const (
	// DefaultBaseURL is used when no backend base URL is configured.
	DefaultBaseURL = "http://127.0.0.1:5000"
)

// Config holds catalog backend client configuration.
type Config struct {
	BaseURL    string
	HTTPClient *http.Client
	Debug      bool
}

// Client is a minimal HTTP client for the catalog backend REST API.
// It performs no retries, no caching and enforces no timeout of its own;
// callers bound requests through the context.
type Client struct {
	httpClient *http.Client
	baseURL    string
	debug      bool
}

// NewClient constructs a new catalog client.
func NewClient(cfg Config) *Client {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		debug:      cfg.Debug,
	}
}

// BaseURL returns the backend base URL without a trailing slash.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// HTTPError is returned for every non-2xx backend response.
type HTTPError struct {
	StatusCode int
	StatusText string
	Body       string
}

func (e *HTTPError) Error() string {
	msg := strconv.Itoa(e.StatusCode) + " " + e.StatusText
	if e.Body != "" {
		msg += ": " + e.Body
	}
	return msg
}

// IsNotFound reports whether err is an HTTPError with status 404.
func IsNotFound(err error) bool {
	var httpErr *HTTPError
	return errors.As(err, &httpErr) && httpErr.StatusCode == http.StatusNotFound
}

// Request describes an optional method, body and header overrides for Do.
// Method defaults to GET. Header values replace the defaults key by key.
type Request struct {
	Method string
	Body   io.Reader
	Header http.Header
}

// Do sends a request to path (relative to the base URL) and decodes the JSON
// response into T. A 204 response yields (nil, nil) without decoding.
// The decoded value is trusted as-is; no schema validation is performed.
func Do[T any](ctx context.Context, c *Client, path string, r *Request) (*T, error) {
	if r == nil {
		r = &Request{}
	}
	method := r.Method
	if method == "" {
		method = http.MethodGet
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, r.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	for key, values := range r.Header {
		req.Header.Del(key)
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}

	resp, err := c.send(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNoContent {
		return nil, nil
	}

	var out T
	if err := c.decode(resp, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// jsonBody marshals v for use as a request body.
func (c *Client) jsonBody(v any) (io.Reader, error) {
	payload, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}
	if c.debug {
		log.Debug().RawJSON("request", payload).Msg("[CATALOG] Request body")
	}
	return bytes.NewReader(payload), nil
}

// send executes req with caching disabled and converts non-2xx responses
// into *HTTPError. On success the caller owns resp.Body.
func (c *Client) send(req *http.Request) (*http.Response, error) {
	req.Header.Set("Cache-Control", "no-store")
	req.Header.Set("Pragma", "no-cache")

	if c.debug {
		log.Debug().
			Str("method", req.Method).
			Str("endpoint", req.URL.String()).
			Msg("[CATALOG] Outgoing request")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		// Best effort: an unreadable body leaves the detail empty.
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			body = nil
		}
		httpErr := &HTTPError{
			StatusCode: resp.StatusCode,
			StatusText: statusText(resp),
			Body:       string(body),
		}
		if c.debug {
			log.Debug().
				Str("endpoint", req.URL.Path).
				Int("status_code", resp.StatusCode).
				Str("response", httpErr.Body).
				Msg("[CATALOG] Request failed")
		}
		return nil, httpErr
	}
	return resp, nil
}

// decode reads the JSON response body into out.
func (c *Client) decode(resp *http.Response, out any) error {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if c.debug {
		log.Debug().
			Str("endpoint", resp.Request.URL.Path).
			Int("status_code", resp.StatusCode).
			Bytes("response", body).
			Msg("[CATALOG] Incoming response")
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// statusText returns the reason phrase of resp, e.g. "Not Found".
func statusText(resp *http.Response) string {
	if text, ok := strings.CutPrefix(resp.Status, strconv.Itoa(resp.StatusCode)+" "); ok {
		return text
	}
	return http.StatusText(resp.StatusCode)
}
