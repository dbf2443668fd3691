package report_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nyashahama/square-sales-report/internal/report"
	"github.com/nyashahama/square-sales-report/internal/square"
)

// ─── Summarize ────────────────────────────────────────────────────────────────

func TestSummarize_SumsAcrossOrders(t *testing.T) {
	orders := []square.Order{
		{ID: "1", LineItems: []square.LineItem{item("Concert", "2", 5000)}},
		{ID: "2", LineItems: []square.LineItem{item("Concert", "1", 2500)}},
	}

	summary, err := report.Summarize(orders)
	require.NoError(t, err)
	assert.Equal(t, report.Summary{"Concert": {Quantity: 3, Revenue: 7500}}, summary)
}

func TestSummarize_RevenueIsExactIntegerAddition(t *testing.T) {
	orders := []square.Order{{ID: "1", LineItems: []square.LineItem{
		item("Soda", "1", 150),
		item("Soda", "1", 250),
	}}}

	summary, err := report.Summarize(orders)
	require.NoError(t, err)
	assert.Equal(t, int64(400), summary["Soda"].Revenue)
	assert.Equal(t, int64(2), summary["Soda"].Quantity)
}

func TestSummarize_OrdersWithoutLineItemsContributeNothing(t *testing.T) {
	base := []square.Order{{ID: "1", LineItems: []square.LineItem{item("Concert", "2", 5000)}}}
	withEmpty := append([]square.Order{{ID: "e1"}, {ID: "e2", LineItems: []square.LineItem{}}}, base...)

	want, err := report.Summarize(base)
	require.NoError(t, err)
	got, err := report.Summarize(withEmpty)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	empty, err := report.Summarize([]square.Order{{ID: "e"}})
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestSummarize_OrderIndependent(t *testing.T) {
	a := square.Order{ID: "a", LineItems: []square.LineItem{item("Concert", "2", 5000), item("Poster", "1", 1200)}}
	b := square.Order{ID: "b", LineItems: []square.LineItem{item("Poster", "3", 3600)}}
	c := square.Order{ID: "c", LineItems: []square.LineItem{item("Concert", "1", 2500), item("Soda", "4", 800)}}

	perms := [][]square.Order{
		{a, b, c}, {a, c, b}, {b, a, c}, {b, c, a}, {c, a, b}, {c, b, a},
	}

	want, err := report.Summarize(perms[0])
	require.NoError(t, err)
	for i, p := range perms[1:] {
		got, err := report.Summarize(p)
		require.NoError(t, err)
		assert.Equal(t, want, got, "permutation %d", i+1)
	}
	assert.Equal(t, report.ItemTotals{Quantity: 3, Revenue: 7500}, want["Concert"])
	assert.Equal(t, report.ItemTotals{Quantity: 4, Revenue: 4800}, want["Poster"])
}

func TestSummarize_RejectsBadQuantities(t *testing.T) {
	tests := []struct {
		name string
		item square.LineItem
	}{
		{"fractional", item("Coffee Beans", "1.5", 1800)},
		{"empty", item("Mystery", "", 100)},
		{"negative quantity", item("Refund", "-1", 100)},
		{"negative revenue", item("Refund", "1", -100)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := report.Summarize([]square.Order{{ID: "x", LineItems: []square.LineItem{tt.item}}})
			assert.Error(t, err)
		})
	}
}

func TestSummarize_NegativeLineNamesOrderAndItem(t *testing.T) {
	orders := []square.Order{
		{ID: "ok", LineItems: []square.LineItem{item("Concert", "2", 5000)}},
		{ID: "ord_bad", LineItems: []square.LineItem{item("Poster", "-1", -1200)}},
	}

	got, err := report.Summarize(orders)
	require.Error(t, err)
	assert.Nil(t, got, "no partial totals on a malformed line")
	assert.Contains(t, err.Error(), "ord_bad")
	assert.Contains(t, err.Error(), `"Poster"`)
}

// ─── FilterTickets ────────────────────────────────────────────────────────────

func TestFilterTickets_IsPureSubset(t *testing.T) {
	full := report.Summary{
		"Concert": {Quantity: 3, Revenue: 7500},
		"Matinee": {Quantity: 1, Revenue: 1500},
		"T-Shirt": {Quantity: 2, Revenue: 4000},
	}
	names := []string{"Concert", "Matinee", "Concert", "Not Sold Today"}

	tickets := report.FilterTickets(full, names)

	assert.Equal(t, report.Summary{
		"Concert": {Quantity: 3, Revenue: 7500},
		"Matinee": {Quantity: 1, Revenue: 1500},
	}, tickets)

	for name := range tickets {
		assert.Contains(t, full, name)
	}
	for name := range full {
		if _, kept := tickets[name]; !kept {
			assert.NotContains(t, names, name)
		}
	}

	assert.Len(t, full, 3, "input must not be mutated")
	assert.Contains(t, full, "T-Shirt")
}

func TestFilterTickets_NoTicketNames(t *testing.T) {
	full := report.Summary{"T-Shirt": {Quantity: 2, Revenue: 4000}}
	assert.Empty(t, report.FilterTickets(full, nil))
	assert.Len(t, full, 1)
}
