// Package filter turns raw temporal query parameters into a validated
// predicate over pin creation timestamps.
package filter

import (
	"fmt"
	"time"

	"pinmap/internal/domain"
)

const (
	layoutDate  = "2006-01-02"
	layoutMonth = "2006-01"
	layoutYear  = "2006"
)

// Params carries the raw, optional filter parameters as received from the
// transport layer. Empty strings mean "not supplied".
type Params struct {
	Date  string
	Month string
	Year  string
	Start string
	End   string
}

// Filter is an immutable temporal predicate. All supplied criteria must
// hold for a timestamp to match (logical AND). The zero value matches
// every timestamp.
type Filter struct {
	date  *time.Time
	month *time.Time
	year  *time.Time
	start *time.Time
	end   *time.Time

	rawDate  string
	rawMonth string
	rawYear  string
	rawStart string
	rawEnd   string
}

// Parse validates every supplied parameter independently and combines the
// valid ones. A single malformed value fails the whole parse with a
// field-level validation error; partial filters are never returned.
func Parse(p Params) (*Filter, error) {
	f := &Filter{
		rawDate:  p.Date,
		rawMonth: p.Month,
		rawYear:  p.Year,
		rawStart: p.Start,
		rawEnd:   p.End,
	}

	if p.Date != "" {
		t, err := time.ParseInLocation(layoutDate, p.Date, time.UTC)
		if err != nil {
			return nil, domain.NewValidationError("date", "YYYY-MM-DD")
		}
		f.date = &t
	}
	if p.Month != "" {
		t, err := time.ParseInLocation(layoutMonth, p.Month, time.UTC)
		if err != nil {
			return nil, domain.NewValidationError("month", "YYYY-MM")
		}
		f.month = &t
	}
	if p.Year != "" {
		if len(p.Year) != 4 {
			return nil, domain.NewValidationError("year", "YYYY")
		}
		t, err := time.ParseInLocation(layoutYear, p.Year, time.UTC)
		if err != nil {
			return nil, domain.NewValidationError("year", "YYYY")
		}
		f.year = &t
	}
	if p.Start != "" {
		t, err := time.ParseInLocation(layoutDate, p.Start, time.UTC)
		if err != nil {
			return nil, domain.NewValidationError("start", "YYYY-MM-DD")
		}
		f.start = &t
	}
	if p.End != "" {
		t, err := time.ParseInLocation(layoutDate, p.End, time.UTC)
		if err != nil {
			return nil, domain.NewValidationError("end", "YYYY-MM-DD")
		}
		f.end = &t
	}

	return f, nil
}

// Matches reports whether ts satisfies every supplied criterion. Comparison
// happens in UTC at calendar-date granularity for date/start/end, at
// year-month granularity for month and year granularity for year.
func (f *Filter) Matches(ts time.Time) bool {
	ts = ts.UTC()
	day := time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, time.UTC)

	if f.date != nil && !day.Equal(*f.date) {
		return false
	}
	if f.month != nil && (ts.Year() != f.month.Year() || ts.Month() != f.month.Month()) {
		return false
	}
	if f.year != nil && ts.Year() != f.year.Year() {
		return false
	}
	if f.start != nil && day.Before(*f.start) {
		return false
	}
	if f.end != nil && day.After(*f.end) {
		return false
	}
	return true
}

// IsEmpty reports whether no criteria were supplied.
func (f *Filter) IsEmpty() bool {
	return f.date == nil && f.month == nil && f.year == nil && f.start == nil && f.end == nil
}

// Qualifier encodes the most specific supplied criterion for use in export
// filenames: dia_<date>, mes_<month>, anio_<year>, <start>_a_<end>
// (desde_/hasta_ for a single bound) or todo when nothing was supplied.
func (f *Filter) Qualifier() string {
	switch {
	case f.date != nil:
		return "dia_" + f.rawDate
	case f.month != nil:
		return "mes_" + f.rawMonth
	case f.year != nil:
		return "anio_" + f.rawYear
	case f.start != nil && f.end != nil:
		return fmt.Sprintf("%s_a_%s", f.rawStart, f.rawEnd)
	case f.start != nil:
		return "desde_" + f.rawStart
	case f.end != nil:
		return "hasta_" + f.rawEnd
	default:
		return "todo"
	}
}
