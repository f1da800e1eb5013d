// Package api is the client for the remote platform API. All business logic
// (inventory, pricing, payment, order lifecycle) lives behind that API; this
// package only shuttles JSON and normalizes response shapes.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/Sujal391/Gaushala-Ecom-sub001/internal/models"
)

// Response is the envelope the platform API is expected to return. Success is
// a pointer so the bare `{data: ...}` shape can be told apart from
// `{success: false}`.
type Response struct {
	Success *bool           `json:"success,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
	Message string          `json:"message,omitempty"`
}

// APIError is a logical failure reported by the platform (`success: false`).
// Message holds the server-provided text when present.
type APIError struct {
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return "api: request failed"
	}
	return e.Message
}

type ctxKey int

const requestIDKey ctxKey = 0

// WithRequestID attaches a request id that outbound calls forward as
// X-Request-Id.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

func requestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient builds a platform client. The timeout bounds every call; without
// it a hung request would leave its triggering control disabled until reload.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *Client) do(ctx context.Context, method, path, token string, body interface{}) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("api: encoding request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("api: building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if id := requestIDFrom(ctx); id != "" {
		req.Header.Set("X-Request-Id", id)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("api: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("api: reading response: %w", err)
	}

	if resp.StatusCode >= 400 {
		// Error bodies usually still carry the envelope; surface its message.
		var env Response
		if json.Unmarshal(raw, &env) == nil && env.Message != "" {
			return nil, &APIError{Message: env.Message}
		}
		return nil, fmt.Errorf("api: %s %s: unexpected status %s", method, path, resp.Status)
	}

	return raw, nil
}

// envelope decodes a single-object response, honoring `success: false`.
func (c *Client) envelope(raw []byte) (json.RawMessage, error) {
	var env Response
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("api: decoding response: %w", err)
	}
	if env.Success != nil && !*env.Success {
		return nil, &APIError{Message: env.Message}
	}
	if env.Data != nil {
		return env.Data, nil
	}
	return raw, nil
}

// --- Auth ---

type LoginResult struct {
	Token string            `json:"token"`
	User  models.UserRecord `json:"user"`
}

func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	raw, err := c.do(ctx, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return nil, err
	}
	data, err := c.envelope(raw)
	if err != nil {
		return nil, err
	}
	var result LoginResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("api: decoding login response: %w", err)
	}
	return &result, nil
}

// RegisterStep1 performs the server-side pre-registration (name/email/mobile).
func (c *Client) RegisterStep1(ctx context.Context, name, email, mobile string) error {
	raw, err := c.do(ctx, http.MethodPost, "/api/auth/register/initiate", "", map[string]string{
		"name":   name,
		"email":  email,
		"mobile": mobile,
	})
	if err != nil {
		return err
	}
	_, err = c.envelope(raw)
	return err
}

// RegisterStep2 finalizes registration by setting the password.
func (c *Client) RegisterStep2(ctx context.Context, email, password string) error {
	raw, err := c.do(ctx, http.MethodPost, "/api/auth/register/complete", "", map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return err
	}
	_, err = c.envelope(raw)
	return err
}

// --- Catalog ---

func (c *Client) Products(ctx context.Context) ([]models.CatalogProduct, error) {
	raw, err := c.do(ctx, http.MethodGet, "/api/products", "", nil)
	if err != nil {
		return nil, err
	}
	var products []models.CatalogProduct
	if err := json.Unmarshal(NormalizeList(raw), &products); err != nil {
		slog.Warn("Unexpected product list payload", "error", err)
		return nil, nil
	}
	return products, nil
}

func (c *Client) NewArrivals(ctx context.Context) ([]models.CatalogProduct, error) {
	raw, err := c.do(ctx, http.MethodGet, "/api/products/new-arrivals", "", nil)
	if err != nil {
		return nil, err
	}
	var products []models.CatalogProduct
	if err := json.Unmarshal(NormalizeList(raw), &products); err != nil {
		return nil, nil
	}
	return products, nil
}

func (c *Client) Banners(ctx context.Context) ([]models.Banner, error) {
	raw, err := c.do(ctx, http.MethodGet, "/api/banners", "", nil)
	if err != nil {
		return nil, err
	}
	var banners []models.Banner
	if err := json.Unmarshal(NormalizeList(raw), &banners); err != nil {
		return nil, nil
	}
	return banners, nil
}

// --- Orders ---

func (c *Client) UserOrders(ctx context.Context, token string, userID int64) ([]models.Order, error) {
	raw, err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/orders/user/%d", userID), token, nil)
	if err != nil {
		return nil, err
	}
	var orders []models.Order
	if err := json.Unmarshal(NormalizeList(raw), &orders); err != nil {
		slog.Warn("Unexpected order list payload", "error", err)
		return nil, nil
	}
	return orders, nil
}

func (c *Client) CancelOrder(ctx context.Context, token string, orderID, userID int64) error {
	raw, err := c.do(ctx, http.MethodPost, fmt.Sprintf("/api/orders/%d/cancel", orderID), token, map[string]int64{
		"userId": userID,
	})
	if err != nil {
		return err
	}
	_, err = c.envelope(raw)
	return err
}

// --- Sample requests ---

func (c *Client) SampleRequests(ctx context.Context, token string, userID int64) ([]models.SampleRequest, error) {
	raw, err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/sample-requests/user/%d", userID), token, nil)
	if err != nil {
		return nil, err
	}
	var requests []models.SampleRequest
	if err := json.Unmarshal(NormalizeList(raw), &requests); err != nil {
		return nil, nil
	}
	return requests, nil
}

func (c *Client) CreateSampleRequest(ctx context.Context, token string, req *models.SampleRequest) error {
	raw, err := c.do(ctx, http.MethodPost, "/api/sample-requests", token, req)
	if err != nil {
		return err
	}
	_, err = c.envelope(raw)
	return err
}

// Ping is a cheap health probe used by the ops CLI.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodGet, "/api/health", "", nil)
	return err
}
