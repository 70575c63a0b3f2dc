// Package catalog implements the typed client for the remote product API.
package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/suteetoe/catalogadmin/internal/model"
	"github.com/suteetoe/catalogadmin/pkg/config"
)

// Client talks to the remote catalog API. All failures are returned as
// *Error; the client never retries on its own.
type Client struct {
	BaseURL    string
	Token      string
	HTTPClient *http.Client
	Logger     *zap.Logger
}

// NewClient creates a catalog API client from configuration.
func NewClient(cfg *config.APIConfig, logger *zap.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		BaseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		Token:      cfg.Token,
		HTTPClient: &http.Client{Timeout: timeout},
		Logger:     logger,
	}
}

// ListProducts fetches one page of products for the given query. The query's
// sentinel axes are omitted from the request entirely. An unrecognized
// response envelope yields an empty page, not an error.
func (c *Client) ListProducts(ctx context.Context, q model.Query) (model.ProductPage, error) {
	body, err := c.do(ctx, http.MethodGet, "/products?"+q.Values().Encode(), nil)
	if err != nil {
		return model.ProductPage{}, err
	}

	page, ok := decodeProductPage(body)
	if !ok {
		c.Logger.Warn("unrecognized product list response shape, treating as empty",
			zap.Int("body_bytes", len(body)))
	}
	return page, nil
}

// GetProduct fetches a single product by ID.
func (c *Client) GetProduct(ctx context.Context, id uint) (model.Product, error) {
	body, err := c.do(ctx, http.MethodGet, fmt.Sprintf("/products/%d", id), nil)
	if err != nil {
		return model.Product{}, err
	}
	p, ok := decodeProduct(body)
	if !ok {
		return model.Product{}, &Error{Kind: KindUnrecognizedShape, Message: "product response matched no known shape"}
	}
	return p, nil
}

// CreateProduct creates a new product.
func (c *Client) CreateProduct(ctx context.Context, payload model.ProductPayload) (model.Product, error) {
	body, err := c.doJSON(ctx, http.MethodPost, "/products", payload)
	if err != nil {
		return model.Product{}, err
	}
	p, _ := decodeProduct(body)
	return p, nil
}

// UpdateProduct applies a partial update to an existing product.
func (c *Client) UpdateProduct(ctx context.Context, id uint, patch model.ProductUpdate) (model.Product, error) {
	body, err := c.doJSON(ctx, http.MethodPut, fmt.Sprintf("/products/%d", id), patch)
	if err != nil {
		return model.Product{}, err
	}
	p, _ := decodeProduct(body)
	return p, nil
}

// DeleteProduct removes a product.
func (c *Client) DeleteProduct(ctx context.Context, id uint) error {
	_, err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/products/%d", id), nil)
	return err
}

// ListActiveCategories fetches the active categories for filter options.
func (c *Client) ListActiveCategories(ctx context.Context) ([]model.Category, error) {
	body, err := c.do(ctx, http.MethodGet, "/categories?isActive=true", nil)
	if err != nil {
		return nil, err
	}
	cats, ok := decodeCategories(body)
	if !ok {
		c.Logger.Warn("unrecognized category list response shape, treating as empty")
	}
	return cats, nil
}

// UploadImage uploads product image bytes as the multipart field "image" and
// returns the URL the server stored it under.
func (c *Client) UploadImage(ctx context.Context, filename string, r io.Reader) (string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("image", filepath.Base(filename))
	if err != nil {
		return "", networkError(err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return "", networkError(err)
	}
	if err := w.Close(); err != nil {
		return "", networkError(err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/upload/product", &buf)
	if err != nil {
		return "", networkError(err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	body, err := c.send(req)
	if err != nil {
		return "", err
	}

	var result struct {
		URL  string `json:"url"`
		Data *struct {
			URL string `json:"url"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return "", &Error{Kind: KindUnrecognizedShape, Message: "upload response matched no known shape", Err: err}
	}
	if result.Data != nil && result.Data.URL != "" {
		return result.Data.URL, nil
	}
	if result.URL == "" {
		return "", &Error{Kind: KindUnrecognizedShape, Message: "upload response missing url"}
	}
	return result.URL, nil
}

// doJSON marshals payload and performs a JSON request.
func (c *Client) doJSON(ctx context.Context, method, path string, payload interface{}) ([]byte, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, &Error{Kind: KindValidation, Message: "unencodable payload", Err: err}
	}
	return c.do(ctx, method, path, bytes.NewReader(raw))
}

// do performs one request against the API and returns the raw response body.
func (c *Client) do(ctx context.Context, method, path string, body io.Reader) ([]byte, error) {
	req, err := c.newRequest(ctx, method, path, body)
	if err != nil {
		return nil, networkError(err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.send(req)
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-Request-ID", uuid.New().String())
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}
	return req, nil
}

func (c *Client) send(req *http.Request) ([]byte, error) {
	c.Logger.Debug("catalog API call",
		zap.String("method", req.Method),
		zap.String("url", req.URL.String()))

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		c.Logger.Error("catalog API request failed", zap.Error(err))
		return nil, networkError(err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		c.Logger.Error("failed to read catalog API response", zap.Error(err))
		return nil, networkError(err)
	}

	if resp.StatusCode >= 400 {
		message := apiErrorMessage(respBody)
		c.Logger.Error("catalog API returned error status",
			zap.Int("status", resp.StatusCode),
			zap.String("message", message))
		return nil, serverError(resp.StatusCode, message)
	}

	return respBody, nil
}

// apiErrorMessage pulls a human-readable message out of an error payload.
func apiErrorMessage(body []byte) string {
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.Error != "" {
			return payload.Error
		}
		if payload.Message != "" {
			return payload.Message
		}
	}
	return strings.TrimSpace(string(body))
}
