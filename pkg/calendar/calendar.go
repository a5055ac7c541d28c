// Copyright (c) 2026 Shelfmark. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package calendar decodes request timestamps that may also be plain dates.

Clients send either an RFC 3339 instant ("2026-01-31T18:00:00Z") or a bare
calendar date ("2026-01-31"). A bare date has no zone of its own, so it is
kept as a date and only turned into an instant once the caller picks one.
*/
package calendar

import (
	"encoding/json"
	"errors"
	"time"
)

// ErrFormat is returned for values that are neither an RFC 3339 instant nor a YYYY-MM-DD date.
var ErrFormat = errors.New("calendar: expected RFC 3339 timestamp or YYYY-MM-DD date")

// Moment is an instant or a whole calendar day.
type Moment struct {
	time.Time

	// DateOnly marks a bare date. Time then holds midnight UTC of that date.
	DateOnly bool
}

// At wraps an instant.
func At(t time.Time) Moment {
	return Moment{Time: t}
}

// Date returns the whole calendar day year-month-day.
func Date(year int, month time.Month, day int) Moment {
	return Moment{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC), DateOnly: true}
}

// Parse reads an RFC 3339 instant or a YYYY-MM-DD date.
func Parse(raw string) (Moment, error) {
	if parsed, err := time.Parse(time.DateOnly, raw); err == nil {
		return Moment{Time: parsed, DateOnly: true}, nil
	}
	if parsed, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		return Moment{Time: parsed}, nil
	}
	return Moment{}, ErrFormat
}

// StartIn returns the first instant of a date in location, or the instant itself.
func (m Moment) StartIn(location *time.Location) time.Time {
	if !m.DateOnly {
		return m.Time
	}
	year, month, day := m.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, location)
}

// EndIn returns the last instant of a date in location, or the instant itself.
func (m Moment) EndIn(location *time.Location) time.Time {
	if !m.DateOnly {
		return m.Time
	}
	year, month, day := m.Date()
	return time.Date(year, month, day+1, 0, 0, 0, 0, location).Add(-time.Nanosecond)
}

func (m *Moment) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}

	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	parsed, err := Parse(raw)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

func (m Moment) MarshalJSON() ([]byte, error) {
	if m.DateOnly {
		return json.Marshal(m.Format(time.DateOnly))
	}
	return json.Marshal(m.Time)
}
