package report

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/nyashahama/square-sales-report/internal/square"
)

// ─── PAYMENTS ─────────────────────────────────────────────────────────────────

// PaymentsResult is the outcome of FetchPayments. When Degraded is true the
// listing was rejected by Square, OrderIDs is empty, and Err holds the
// *square.APIError that caused it.
type PaymentsResult struct {
	OrderIDs []string
	Degraded bool
	Err      error
}

// FetchPayments lists the location's payments inside w and returns their
// order ids in API order. Repeated ids are kept: an order paid in two
// tenders is resolved and counted twice downstream.
//
// A Square API rejection is not fatal. Each reported error is logged and the
// run continues with no payments. Any other failure is returned.
func FetchPayments(ctx context.Context, client square.Client, w Window, locationID string, logger *slog.Logger) (PaymentsResult, error) {
	payments, err := client.ListPayments(ctx, square.ListPaymentsParams{
		BeginTime:  w.BeginTime(),
		EndTime:    w.EndTime(),
		LocationID: locationID,
	})
	if err != nil {
		var apiErr *square.APIError
		if !errors.As(err, &apiErr) {
			return PaymentsResult{}, fmt.Errorf("report: fetch payments: %w", err)
		}
		for _, d := range apiErr.Errors {
			logger.Warn("report: payments listing rejected",
				"category", d.Category,
				"code", d.Code,
				"detail", d.Detail,
			)
		}
		return PaymentsResult{OrderIDs: []string{}, Degraded: true, Err: apiErr}, nil
	}

	ids := make([]string, 0, len(payments))
	for _, p := range payments {
		if p.OrderID == "" {
			logger.Debug("report: payment has no order, skipping", "payment_id", p.ID)
			continue
		}
		ids = append(ids, p.OrderID)
	}
	return PaymentsResult{OrderIDs: ids}, nil
}

// ─── ORDERS ───────────────────────────────────────────────────────────────────

// OrderOutcome is the result of resolving one order id. Exactly one of Order
// (when Err is nil) or Err is meaningful.
type OrderOutcome struct {
	OrderID string
	Order   square.Order
	Err     error
}

// OK reports whether the lookup succeeded.
func (o OrderOutcome) OK() bool { return o.Err == nil }

// FetchOrders resolves each id in turn. A Square API rejection for one id is
// recorded on that id's outcome and the loop moves on. Any other failure
// aborts and is returned.
func FetchOrders(ctx context.Context, client square.Client, orderIDs []string) ([]OrderOutcome, error) {
	outcomes := make([]OrderOutcome, 0, len(orderIDs))
	for _, id := range orderIDs {
		order, err := client.GetOrder(ctx, id)
		if err != nil {
			var apiErr *square.APIError
			if !errors.As(err, &apiErr) {
				return nil, fmt.Errorf("report: fetch order %s: %w", id, err)
			}
			outcomes = append(outcomes, OrderOutcome{OrderID: id, Err: apiErr})
			continue
		}
		outcomes = append(outcomes, OrderOutcome{OrderID: id, Order: order})
	}
	return outcomes, nil
}

// Resolved returns the orders of the successful outcomes, in input order.
func Resolved(outcomes []OrderOutcome) []square.Order {
	orders := make([]square.Order, 0, len(outcomes))
	for _, o := range outcomes {
		if o.OK() {
			orders = append(orders, o.Order)
		}
	}
	return orders
}

// ─── CATALOG ──────────────────────────────────────────────────────────────────

// TicketItemNames lists every ITEM in the catalog and returns the names of
// those assigned to categoryID. Names are not deduplicated.
func TicketItemNames(ctx context.Context, client square.Client, categoryID string) ([]string, error) {
	objects, err := client.ListCatalog(ctx, "ITEM")
	if err != nil {
		return nil, fmt.Errorf("report: list ticket items: %w", err)
	}

	var names []string
	for _, obj := range objects {
		if obj.ItemData == nil {
			continue
		}
		if obj.ItemData.InCategory(categoryID) {
			names = append(names, obj.ItemData.Name)
		}
	}
	return names, nil
}
