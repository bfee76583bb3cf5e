package models

import (
	"bytes"
	"fmt"
	"strconv"
	"time"

	"cloud.google.com/go/civil"
)

// DateLayout is the calendar date format used by the API.
const DateLayout = "2006-01-02"

// Date is a calendar day without time of day or zone.
type Date struct {
	d civil.Date
}

// NewDate builds a Date, normalising out-of-range months and days like time.Date.
func NewDate(year int, month time.Month, day int) Date {
	return Date{d: civil.DateOf(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))}
}

// DateOf returns the calendar day of t in t's own location.
func DateOf(t time.Time) Date {
	return Date{d: civil.DateOf(t)}
}

// ParseDate parses a YYYY-MM-DD string. Full RFC 3339 timestamps are accepted
// and truncated to their calendar day.
func ParseDate(s string) (Date, error) {
	d, err := civil.ParseDate(s)
	if err == nil {
		return Date{d: d}, nil
	}
	if ts, tsErr := time.Parse(time.RFC3339, s); tsErr == nil {
		return DateOf(ts), nil
	}
	return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
}

// MustParseDate is ParseDate for literals; it panics on error.
func MustParseDate(s string) Date {
	d, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

// Time returns the date as UTC midnight, or the zero time when unset.
func (d Date) Time() time.Time {
	if d.IsZero() {
		return time.Time{}
	}
	return d.d.In(time.UTC)
}

// IsZero reports whether the date is unset.
func (d Date) IsZero() bool { return d.d == civil.Date{} }

// Year returns the year.
func (d Date) Year() int { return d.d.Year }

// Month returns the month.
func (d Date) Month() time.Month { return d.d.Month }

// Day returns the day of the month.
func (d Date) Day() int { return d.d.Day }

// AddDays returns the date n days later (earlier when n is negative).
func (d Date) AddDays(n int) Date { return Date{d: d.d.AddDays(n)} }

// AddDate mirrors time.Time.AddDate.
func (d Date) AddDate(years, months, days int) Date {
	return DateOf(d.Time().AddDate(years, months, days))
}

// Before reports whether d is strictly earlier than o.
func (d Date) Before(o Date) bool { return d.d.Before(o.d) }

// After reports whether d is strictly later than o.
func (d Date) After(o Date) bool { return d.d.After(o.d) }

// Equal reports whether d and o are the same day.
func (d Date) Equal(o Date) bool { return d.d == o.d }

// DaysUntil returns the number of whole days from d to o.
func (d Date) DaysUntil(o Date) int { return o.d.DaysSince(d.d) }

// String formats the date as YYYY-MM-DD, or "" when unset.
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.d.String()
}

// MarshalJSON encodes the date as "YYYY-MM-DD", or null when unset.
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return []byte(strconv.Quote(d.String())), nil
}

// UnmarshalJSON accepts "YYYY-MM-DD", RFC 3339 timestamps, "" and null.
func (d *Date) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*d = Date{}
		return nil
	}
	s, err := strconv.Unquote(string(data))
	if err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}
	if s == "" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
