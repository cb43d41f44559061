// Package period implements the calendar-month window that budgets are
// evaluated over. A Month is identified by its "YYYY-MM" form, which is also
// how alert records partition dedup state.
package period

import (
	"fmt"
	"time"
)

// Layout is the wire format for a month identifier.
const Layout = "2006-01"

// Month is a calendar month in the local timezone of the server.
type Month struct {
	Year  int
	Month time.Month
}

// Parse parses a "YYYY-MM" month identifier.
func Parse(s string) (Month, error) {
	t, err := time.Parse(Layout, s)
	if err != nil {
		return Month{}, fmt.Errorf("invalid month %q: expected YYYY-MM", s)
	}
	return Month{Year: t.Year(), Month: t.Month()}, nil
}

// Of returns the month containing the given time.
func Of(t time.Time) Month {
	return Month{Year: t.Year(), Month: t.Month()}
}

// Current returns the month containing the current time.
func Current() Month {
	return Of(time.Now())
}

// String returns the "YYYY-MM" form.
func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}

// Bounds returns the half-open interval [first of month, first of next month)
// covering every instant of the month.
func (m Month) Bounds() (start, end time.Time) {
	start = time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.Local)
	end = start.AddDate(0, 1, 0)
	return start, end
}

// Contains reports whether t falls within the month.
func (m Month) Contains(t time.Time) bool {
	start, end := m.Bounds()
	return !t.Before(start) && t.Before(end)
}

// Next returns the following calendar month.
func (m Month) Next() Month {
	start, _ := m.Bounds()
	return Of(start.AddDate(0, 1, 0))
}

// IsZero reports whether the month is the zero value.
func (m Month) IsZero() bool {
	return m.Year == 0 && m.Month == 0
}
