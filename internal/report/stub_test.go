package report_test

import (
	"bytes"
	"context"
	"io"
	"log/slog"

	"github.com/nyashahama/square-sales-report/internal/square"
)

// ─── STUBS ────────────────────────────────────────────────────────────────────

type stubSquare struct {
	payments    []square.Payment
	paymentsErr error
	paymentsReq square.ListPaymentsParams

	orders    map[string]square.Order
	orderErrs map[string]error
	gets      []string

	catalog    []square.CatalogObject
	catalogErr error
}

func (s *stubSquare) ListPayments(_ context.Context, p square.ListPaymentsParams) ([]square.Payment, error) {
	s.paymentsReq = p
	return s.payments, s.paymentsErr
}

func (s *stubSquare) GetOrder(_ context.Context, id string) (square.Order, error) {
	s.gets = append(s.gets, id)
	if err, ok := s.orderErrs[id]; ok {
		return square.Order{}, err
	}
	return s.orders[id], nil
}

func (s *stubSquare) ListCatalog(_ context.Context, _ string) ([]square.CatalogObject, error) {
	return s.catalog, s.catalogErr
}

func notFound(detail string) *square.APIError {
	return &square.APIError{
		StatusCode: 404,
		Errors: []square.ErrorDetail{{
			Category: "INVALID_REQUEST_ERROR",
			Code:     "NOT_FOUND",
			Detail:   detail,
		}},
	}
}

func item(name, qty string, cents int64) square.LineItem {
	return square.LineItem{
		Name:       name,
		Quantity:   qty,
		TotalMoney: square.Money{Amount: cents, Currency: "USD"},
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func bufferLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})), &buf
}
