package report

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/nyashahama/square-sales-report/internal/square"
)

// ItemTotals is the running total for one item name. Revenue is in minor
// currency units.
type ItemTotals struct {
	Quantity int64
	Revenue  int64
}

// Summary maps item name to its totals. Iteration order carries no meaning;
// use Names for a stable order.
type Summary map[string]ItemTotals

// Names returns the summary's keys sorted.
func (s Summary) Names() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Summarize folds every line item of every order into a Summary keyed by
// item name. Orders without line items contribute nothing.
//
// A quantity that is not a whole number, or a negative quantity or amount,
// is an error: the totals would otherwise be silently wrong. Square keeps
// refunds and returns off the sale's line items (Refund objects and the
// order's returns), so a same-day refund never shows up here as a negative
// line; a negative value means the order data itself is malformed.
func Summarize(orders []square.Order) (Summary, error) {
	summary := make(Summary)
	for _, order := range orders {
		for _, item := range order.LineItems {
			qty, err := strconv.ParseInt(strings.TrimSpace(item.Quantity), 10, 64)
			if err != nil {
				return nil, fmt.Errorf("report: order %s item %q: parse quantity %q: %w",
					order.ID, item.Name, item.Quantity, err)
			}
			revenue := item.TotalMoney.Amount
			if qty < 0 || revenue < 0 {
				return nil, fmt.Errorf("report: order %s item %q: negative quantity %d or revenue %d",
					order.ID, item.Name, qty, revenue)
			}

			t := summary[item.Name]
			t.Quantity += qty
			t.Revenue += revenue
			summary[item.Name] = t
		}
	}
	return summary, nil
}

// FilterTickets returns a new Summary holding only the entries whose name
// appears in ticketNames. summary is left untouched.
func FilterTickets(summary Summary, ticketNames []string) Summary {
	keep := make(map[string]struct{}, len(ticketNames))
	for _, n := range ticketNames {
		keep[n] = struct{}{}
	}

	out := make(Summary)
	for name, totals := range summary {
		if _, ok := keep[name]; ok {
			out[name] = totals
		}
	}
	return out
}
