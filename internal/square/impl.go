package square

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	ProductionBaseURL = "https://connect.squareup.com"
	SandboxBaseURL    = "https://connect.squareupsandbox.com"

	// apiVersion pins the response shapes this package decodes.
	apiVersion = "2025-01-23"

	// maxPages bounds cursor loops against a misbehaving API that keeps
	// returning the same cursor.
	maxPages = 1000
)

// BaseURLFor maps a SQUARE_ENVIRONMENT value to the Connect API host. Only
// the exact values "production" and "sandbox" are accepted; config validation
// goes through here so the two cannot disagree.
func BaseURLFor(env string) (string, error) {
	switch env {
	case "production":
		return ProductionBaseURL, nil
	case "sandbox":
		return SandboxBaseURL, nil
	default:
		return "", fmt.Errorf("square: unknown environment %q (want production or sandbox)", env)
	}
}

// httpClient is the concrete Client backed by the Connect v2 REST API.
type httpClient struct {
	accessToken string
	baseURL     string
	http        *http.Client
}

// NewClient returns a Client that calls the Square API at baseURL.
//   - accessToken: your SQUARE_ACCESS_TOKEN
//   - baseURL:     ProductionBaseURL, SandboxBaseURL, or a test server
func NewClient(accessToken, baseURL string) Client {
	return &httpClient{
		accessToken: accessToken,
		baseURL:     strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// ─── SQUARE API SHAPES ────────────────────────────────────────────────────────

type listPaymentsResponse struct {
	Payments []Payment `json:"payments"`
	Cursor   string    `json:"cursor"`
}

type getOrderResponse struct {
	Order Order `json:"order"`
}

type listCatalogResponse struct {
	Objects []CatalogObject `json:"objects"`
	Cursor  string          `json:"cursor"`
}

type errorResponse struct {
	Errors []ErrorDetail `json:"errors"`
}

// ─── CLIENT IMPLEMENTATION ────────────────────────────────────────────────────

// ListPayments pages through GET /v2/payments.
func (c *httpClient) ListPayments(ctx context.Context, p ListPaymentsParams) ([]Payment, error) {
	var out []Payment
	cursor := ""
	for i := 0; i < maxPages; i++ {
		q := url.Values{}
		if p.BeginTime != "" {
			q.Set("begin_time", p.BeginTime)
		}
		if p.EndTime != "" {
			q.Set("end_time", p.EndTime)
		}
		if p.LocationID != "" {
			q.Set("location_id", p.LocationID)
		}
		if cursor != "" {
			q.Set("cursor", cursor)
		}

		var resp listPaymentsResponse
		if err := c.get(ctx, "/v2/payments", q, &resp); err != nil {
			return nil, fmt.Errorf("square: list payments: %w", err)
		}
		out = append(out, resp.Payments...)

		if resp.Cursor == "" {
			return out, nil
		}
		cursor = resp.Cursor
	}
	return nil, fmt.Errorf("square: list payments: more than %d pages", maxPages)
}

// GetOrder calls GET /v2/orders/{order_id}.
func (c *httpClient) GetOrder(ctx context.Context, orderID string) (Order, error) {
	var resp getOrderResponse
	if err := c.get(ctx, "/v2/orders/"+url.PathEscape(orderID), nil, &resp); err != nil {
		return Order{}, fmt.Errorf("square: get order %s: %w", orderID, err)
	}
	return resp.Order, nil
}

// ListCatalog pages through GET /v2/catalog/list.
func (c *httpClient) ListCatalog(ctx context.Context, types string) ([]CatalogObject, error) {
	var out []CatalogObject
	cursor := ""
	for i := 0; i < maxPages; i++ {
		q := url.Values{}
		if types != "" {
			q.Set("types", types)
		}
		if cursor != "" {
			q.Set("cursor", cursor)
		}

		var resp listCatalogResponse
		if err := c.get(ctx, "/v2/catalog/list", q, &resp); err != nil {
			return nil, fmt.Errorf("square: list catalog: %w", err)
		}
		out = append(out, resp.Objects...)

		if resp.Cursor == "" {
			return out, nil
		}
		cursor = resp.Cursor
	}
	return nil, fmt.Errorf("square: list catalog: more than %d pages", maxPages)
}

// ─── HTTP ─────────────────────────────────────────────────────────────────────

// get issues an authenticated GET and decodes a 2xx body into dst. Non-2xx
// responses come back as *APIError.
func (c *httpClient) get(ctx context.Context, path string, q url.Values, dst any) error {
	u := c.baseURL + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.accessToken)
	req.Header.Set("Square-Version", apiVersion)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 16<<20))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var parsed errorResponse
		if json.Unmarshal(body, &parsed) == nil {
			apiErr.Errors = parsed.Errors
		}
		return apiErr
	}

	if err := json.Unmarshal(body, dst); err != nil {
		return fmt.Errorf("unmarshal response (status %d): %w", resp.StatusCode, err)
	}
	return nil
}
