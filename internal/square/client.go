// Package square defines the interface for the Square Connect API calls the
// report job makes, and provides an HTTP-backed implementation.
package square

import (
	"context"
	"fmt"
	"strings"
)

// ─── TYPES ────────────────────────────────────────────────────────────────────

// Money is an amount in the smallest denomination of the currency
// (cents for USD).
type Money struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

// Payment is the subset of a Square Payment the report needs.
type Payment struct {
	ID      string `json:"id"`
	OrderID string `json:"order_id"`
}

// LineItem is one purchased entry within an order. Quantity is a decimal
// string on the wire ("2", "1.5" for weighted items).
type LineItem struct {
	Name       string `json:"name"`
	Quantity   string `json:"quantity"`
	TotalMoney Money  `json:"total_money"`
}

// Order is the subset of a Square Order the report needs.
type Order struct {
	ID        string     `json:"id"`
	LineItems []LineItem `json:"line_items"`
}

// CategoryRef points at a catalog category from an item.
type CategoryRef struct {
	ID string `json:"id"`
}

// ItemData is the item_data payload of an ITEM catalog object.
type ItemData struct {
	Name       string        `json:"name"`
	Categories []CategoryRef `json:"categories"`
	// CategoryID is the legacy single-category field. Newer catalogs use
	// Categories instead.
	CategoryID string `json:"category_id"`
}

// InCategory reports whether the item is assigned to categoryID.
func (d ItemData) InCategory(categoryID string) bool {
	if len(d.Categories) == 0 {
		return d.CategoryID != "" && d.CategoryID == categoryID
	}
	for _, c := range d.Categories {
		if c.ID == categoryID {
			return true
		}
	}
	return false
}

// CatalogObject is a catalog entry. ItemData is nil for non-ITEM objects.
type CatalogObject struct {
	Type     string    `json:"type"`
	ID       string    `json:"id"`
	ItemData *ItemData `json:"item_data"`
}

// ListPaymentsParams filters the payments listing. BeginTime and EndTime are
// RFC 3339 timestamps.
type ListPaymentsParams struct {
	BeginTime  string
	EndTime    string
	LocationID string
}

// ─── ERRORS ───────────────────────────────────────────────────────────────────

// ErrorDetail is a single entry of the "errors" array Square returns on any
// non-2xx response.
type ErrorDetail struct {
	Category string `json:"category"`
	Code     string `json:"code"`
	Detail   string `json:"detail"`
	Field    string `json:"field,omitempty"`
}

// APIError is returned when Square answers with an error payload. Transport
// and decoding failures are plain errors, not APIError, so callers can tell a
// rejected request from a broken connection.
type APIError struct {
	StatusCode int
	Errors     []ErrorDetail
}

func (e *APIError) Error() string {
	if len(e.Errors) == 0 {
		return fmt.Sprintf("square: api error (status %d)", e.StatusCode)
	}
	parts := make([]string, len(e.Errors))
	for i, d := range e.Errors {
		parts[i] = fmt.Sprintf("%s/%s: %s", d.Category, d.Code, d.Detail)
	}
	return fmt.Sprintf("square: api error (status %d): %s", e.StatusCode, strings.Join(parts, "; "))
}

// ─── CLIENT INTERFACE ─────────────────────────────────────────────────────────

// Client is the interface the report package uses for all Square calls.
// The concrete implementation talks to the Connect v2 REST API.
// Tests inject a stub.
type Client interface {
	// ListPayments returns every payment matching p, following pagination
	// cursors until exhausted. Order is the API's order.
	ListPayments(ctx context.Context, p ListPaymentsParams) ([]Payment, error)

	// GetOrder retrieves a single order. An unknown id yields an *APIError
	// with code NOT_FOUND.
	GetOrder(ctx context.Context, orderID string) (Order, error)

	// ListCatalog returns every catalog object of the given types
	// (e.g. "ITEM"), following pagination cursors.
	ListCatalog(ctx context.Context, types string) ([]CatalogObject, error)
}
