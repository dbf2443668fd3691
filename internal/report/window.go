// Package report holds the aggregation and formatting logic of the daily
// sales job: turning Square payments into orders, orders into a per-item
// summary, and summaries into email bodies.
//
// Dependency rule: report imports square only. It never imports email,
// config, or worker.
package report

import (
	"time"
	_ "time/tzdata" // embed the zone database for minimal containers
)

// Eastern is the civil timezone the business day is defined in.
var Eastern = mustLoad("America/New_York")

func mustLoad(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		panic("report: load location " + name + ": " + err.Error())
	}
	return loc
}

// Window is the [Start, End] range of one business day.
type Window struct {
	Start time.Time
	End   time.Time
}

// TodayWindow returns 00:00:00.000000 through 23:59:59.999999 of the Eastern
// calendar date containing now. Offsets come from the zone rules for that
// date, so DST transition days are handled.
func TodayWindow(now time.Time) Window {
	y, m, d := now.In(Eastern).Date()
	return Window{
		Start: time.Date(y, m, d, 0, 0, 0, 0, Eastern),
		End:   time.Date(y, m, d, 23, 59, 59, 999999000, Eastern),
	}
}

// BeginTime is Start as an offset-qualified RFC 3339 string.
func (w Window) BeginTime() string { return w.Start.Format(time.RFC3339Nano) }

// EndTime is End as an offset-qualified RFC 3339 string.
func (w Window) EndTime() string { return w.End.Format(time.RFC3339Nano) }
