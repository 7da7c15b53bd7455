// Package storefrontapi talks to the storefront's remote REST backend: the
// product catalog, search and order creation.
package storefrontapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	pkgerrors "github.com/angelmondragon/organics-storefront/pkg/errors"
)

const (
	DefaultBaseURL             = "https://b-organics-backend.onrender.com/api"
	defaultTimeout             = 10 * time.Second
	responseBodyReadLimit int64 = 4096
)

// Client wraps the remote storefront API.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// Option configures optional client behavior.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithBaseURL overrides the API base URL.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		trimmed := strings.TrimSpace(baseURL)
		if trimmed != "" {
			c.baseURL = trimmed
		}
	}
}

// WithTimeout sets the timeout of the default HTTP client.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient = &http.Client{Timeout: timeout}
		}
	}
}

// NewClient builds a client against DefaultBaseURL unless overridden.
func NewClient(opts ...Option) *Client {
	client := &Client{
		baseURL:    DefaultBaseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}
	return client
}

// ListProducts returns the whole catalog.
func (c *Client) ListProducts(ctx context.Context) ([]Product, error) {
	var products []Product
	if err := c.getJSON(ctx, "products", nil, &products, "list products"); err != nil {
		return nil, err
	}
	return products, nil
}

// FindProduct looks a product up by catalog id. The remote API has no public
// single-product read, so the full listing is scanned.
func (c *Client) FindProduct(ctx context.Context, productID string) (*Product, error) {
	id := strings.TrimSpace(productID)
	if id == "" {
		return nil, pkgerrors.New(pkgerrors.CodeInvalidArgument, "product id is required").
			WithDetails(map[string]any{"field": "productId"})
	}
	products, err := c.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	for i := range products {
		if strings.TrimSpace(products[i].ID) == id {
			return &products[i], nil
		}
	}
	return nil, pkgerrors.Newf(pkgerrors.CodeNotFound, "product %s not found", id)
}

// ListByCategory returns the products in a category such as "honey".
func (c *Client) ListByCategory(ctx context.Context, category string) ([]Product, error) {
	trimmed := strings.TrimSpace(category)
	if trimmed == "" {
		return c.ListProducts(ctx)
	}
	var products []Product
	path := "products/category/" + url.PathEscape(strings.ToLower(trimmed))
	if err := c.getJSON(ctx, path, nil, &products, "list products by category"); err != nil {
		return nil, err
	}
	return products, nil
}

// Search forwards a free-text query to the remote search endpoint. A blank
// query returns no results without a round trip.
func (c *Client) Search(ctx context.Context, query string) ([]Product, error) {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return []Product{}, nil
	}
	var products []Product
	if err := c.getJSON(ctx, "search", url.Values{"query": {trimmed}}, &products, "search products"); err != nil {
		return nil, err
	}
	return products, nil
}

// CreateOrder submits an order. idempotencyKey is sent as the
// Idempotency-Key header when non-empty.
func (c *Client) CreateOrder(ctx context.Context, order OrderRequest, idempotencyKey string) (*Order, error) {
	if c == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "storefront api client not configured")
	}
	payload, err := json.Marshal(order)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "marshal order request")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.buildURL("orders/create", nil), bytes.NewReader(payload))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "build create order request")
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	if key := strings.TrimSpace(idempotencyKey); key != "" {
		httpReq.Header.Set("Idempotency-Key", key)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "execute create order request")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, statusError(resp, "create order")
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "read create order response")
	}
	return decodeOrder(body)
}

// decodeOrder accepts either the order itself or {"message", "order"}.
func decodeOrder(body []byte) (*Order, error) {
	var created Order
	if len(bytes.TrimSpace(body)) == 0 {
		return &created, nil
	}
	var envelope struct {
		Message string `json:"message"`
		Order   *Order `json:"order"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode create order response")
	}
	if envelope.Order != nil {
		created = *envelope.Order
		if created.Message == "" {
			created.Message = envelope.Message
		}
		return &created, nil
	}
	if err := json.Unmarshal(body, &created); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode create order response")
	}
	return &created, nil
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any, action string) error {
	if c == nil {
		return pkgerrors.New(pkgerrors.CodeDependency, "storefront api client not configured")
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.buildURL(path, query), nil)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "build "+action+" request")
	}
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "execute "+action+" request")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return statusError(resp, action)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode "+action+" response")
	}
	return nil
}

func (c *Client) buildURL(path string, query url.Values) string {
	trimmed := strings.TrimRight(c.baseURL, "/")
	path = strings.TrimLeft(path, "/")
	out := fmt.Sprintf("%s/%s", trimmed, path)
	if len(query) > 0 {
		out += "?" + query.Encode()
	}
	return out
}

// statusError maps a non-2xx response onto a coded error, keeping the
// server's "message" field when it sends one.
func statusError(resp *http.Response, action string) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, responseBodyReadLimit))
	message := strings.TrimSpace(string(raw))
	var body struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &body); err == nil && strings.TrimSpace(body.Message) != "" {
		message = strings.TrimSpace(body.Message)
	}

	cause := fmt.Errorf("status %d: %s", resp.StatusCode, message)
	if resp.StatusCode == http.StatusNotFound {
		return pkgerrors.Wrap(pkgerrors.CodeNotFound, cause, action+": not found")
	}
	wrapped := pkgerrors.Wrap(pkgerrors.CodeDependency, cause, action+" failed")
	if message != "" {
		wrapped = wrapped.WithDetails(map[string]any{"upstream_message": message, "upstream_status": resp.StatusCode})
	}
	return wrapped
}
