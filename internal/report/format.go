package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	ownerHeader  = "Item Sales Summary:\n"
	ticketHeader = "🎟 Ticket Sales Summary:\n"

	// dateLayout renders e.g. "March 9, 2026".
	dateLayout = "January 2, 2006"
)

// FormatCents renders an amount in minor units as a two-decimal major-unit
// string: 7500 → "75.00".
func FormatCents(cents int64) string {
	return decimal.New(cents, -2).StringFixed(2)
}

// OwnerBody renders the full sales summary for the business owner. An empty
// summary yields the header alone.
func OwnerBody(summary Summary) string {
	lines := []string{ownerHeader}
	for _, name := range summary.Names() {
		t := summary[name]
		lines = append(lines, fmt.Sprintf("%s: %d sold for $%s", name, t.Quantity, FormatCents(t.Revenue)))
	}
	return strings.Join(lines, "\n")
}

// TicketBody renders the ticket-only summary, closing with the Eastern date
// the report covers.
func TicketBody(summary Summary, now time.Time) string {
	lines := []string{ticketHeader}
	for _, name := range summary.Names() {
		t := summary[name]
		lines = append(lines, fmt.Sprintf("%s: %d sold, $%s revenue", name, t.Quantity, FormatCents(t.Revenue)))
	}
	lines = append(lines, "\nReport generated for "+now.In(Eastern).Format(dateLayout))
	return strings.Join(lines, "\n")
}
