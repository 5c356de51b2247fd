// Copyright (c) 2026 Raduga Center. All rights reserved.

// Package dateonly provides a calendar date that marshals as "2006-01-02".
//
// Birth dates and statistics buckets are dates, not instants; this type
// keeps the clock and timezone out of the wire format.
package dateonly

import (
	"fmt"
	"strings"
	"time"
)

// Layout is the wire format.
const Layout = "2006-01-02"

// Date is a calendar date with day precision, UTC.
type Date struct {
	time.Time
}

// New builds a Date from year, month, day.
func New(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// FromTime truncates a time to its calendar date.
func FromTime(t time.Time) Date {
	return New(t.Year(), t.Month(), t.Day())
}

// Today returns the current date in UTC.
func Today() Date {
	return FromTime(time.Now().UTC())
}

// Parse reads a "2006-01-02" string.
func Parse(value string) (Date, error) {
	parsed, err := time.Parse(Layout, value)
	if err != nil {
		return Date{}, fmt.Errorf("dateonly: invalid date %q: %w", value, err)
	}
	return FromTime(parsed), nil
}

// String renders the wire format.
func (date Date) String() string {
	return date.Format(Layout)
}

// MarshalJSON renders the date as a quoted "2006-01-02" string.
func (date Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + date.String() + `"`), nil
}

// UnmarshalJSON accepts a quoted "2006-01-02" string.
func (date *Date) UnmarshalJSON(data []byte) error {
	raw := strings.Trim(string(data), `"`)
	if raw == "" || raw == "null" {
		*date = Date{}
		return nil
	}

	parsed, err := Parse(raw)
	if err != nil {
		return err
	}

	*date = parsed
	return nil
}

// AddDays returns the date shifted by the given number of days.
func (date Date) AddDays(days int) Date {
	return FromTime(date.AddDate(0, 0, days))
}

// YearsSince returns full years elapsed from date to now, birthday-aware:
// the year counter only advances once the anniversary has passed.
func (date Date) YearsSince(now time.Time) int {

	years := now.Year() - date.Year()

	anniversary := time.Date(now.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	if now.Before(anniversary) {
		years--
	}

	if years < 0 {
		return 0
	}
	return years
}
