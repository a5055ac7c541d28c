// Copyright (c) 2026 Shelfmark. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package activity records reading sessions and derives daily streaks from them.

Activities are stored with day granularity. The streak is never persisted:
[StreakCalculator] recomputes it from the full log on every read.
*/
package activity

import (
	"time"

	"github.com/taibuivan/shelfmark/pkg/calendar"
)

// ReadingActivity is one logged reading session. Several may share a day.
type ReadingActivity struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	BookID       *string   `json:"book_id,omitempty"`
	ActivityDate time.Time `json:"activity_date"`
	MinutesRead  int       `json:"minutes_read"`
	PagesRead    int       `json:"pages_read"`
	CreatedAt    time.Time `json:"created_at"`
}

// NewActivity is the input for logging a session. A nil ActivityDate means
// today. A bare date is taken as is; an instant is reduced to its day in the
// configured zone.
type NewActivity struct {
	BookID       *string          `json:"book_id"`
	ActivityDate *calendar.Moment `json:"activity_date"`
	MinutesRead  int              `json:"minutes_read"`
	PagesRead    int              `json:"pages_read"`
}

// DateRange bounds a listing by calendar day, both ends included. Nil means open.
type DateRange struct {
	From *time.Time
	To   *time.Time
}

// Contains reports whether day falls inside the range.
func (r DateRange) Contains(day time.Time) bool {
	if r.From != nil && day.Before(Day(*r.From)) {
		return false
	}
	if r.To != nil && day.After(Day(*r.To)) {
		return false
	}
	return true
}

// Day truncates t to its calendar date in t's own location and returns that
// date at midnight UTC, so days from different zones compare by date alone.
func Day(t time.Time) time.Time {
	year, month, date := t.Date()
	return time.Date(year, month, date, 0, 0, 0, 0, time.UTC)
}

// # Field Names

const (
	FieldBookID       = "book_id"
	FieldActivityDate = "activity_date"
	FieldMinutesRead  = "minutes_read"
	FieldPagesRead    = "pages_read"
	FieldFrom         = "from"
	FieldTo           = "to"
)
