// Copyright (c) 2026 Shelfmark. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package goal tracks time-boxed reading goals ("read 12 books in 2026").

Core Responsibilities:

  - Derivation: [CalculateProgress] turns a goal snapshot into percentage,
    status and remaining counts. It is pure and never fails.
  - Synchronisation: [Service.SyncGoalProgress] recounts the finished books
    inside a goal window from scratch and latches completion.
  - Serialisation: syncs for the same user and goal run one at a time
    through a [Locker].
*/
package goal

import (
	"time"

	"github.com/taibuivan/shelfmark/pkg/calendar"
)

// # Domain Entities

// Goal is a reading target over an inclusive window [StartDate, EndDate].
//
// CurrentBooks and Completed are owned by the sync engine; every other field
// only changes through explicit user edits.
type Goal struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	Title        string    `json:"title"`
	Description  *string   `json:"description,omitempty"`
	TargetBooks  int       `json:"target_books"`
	CurrentBooks int       `json:"current_books"`
	StartDate    time.Time `json:"start_date"`
	EndDate      time.Time `json:"end_date"`
	Completed    bool      `json:"completed"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Contains reports whether at falls inside the goal window, both ends included.
func (g *Goal) Contains(at time.Time) bool {
	return !at.Before(g.StartDate) && !at.After(g.EndDate)
}

// NewGoal is the input for creating a goal. A bare date as StartDate opens
// the window at midnight UTC; as EndDate it closes the window at the last
// instant of that day, so books finished any time on it still count.
type NewGoal struct {
	Title       string          `json:"title"`
	Description *string         `json:"description"`
	TargetBooks int             `json:"target_books"`
	StartDate   calendar.Moment `json:"start_date"`
	EndDate     calendar.Moment `json:"end_date"`
}

// Window resolves the requested bounds to instants.
func (input NewGoal) Window() (start, end time.Time) {
	return input.StartDate.StartIn(time.UTC).UTC(), input.EndDate.EndIn(time.UTC).UTC()
}

// Update is a partial update written by the sync engine.
type Update struct {
	CurrentBooks *int
	Completed    *bool
}

// Apply writes the update onto goal in place.
func (u Update) Apply(goal *Goal) {
	if u.CurrentBooks != nil {
		goal.CurrentBooks = *u.CurrentBooks
	}
	if u.Completed != nil {
		goal.Completed = *u.Completed
	}
}

// WithProgress is a goal together with its derived progress, as returned to clients.
type WithProgress struct {
	*Goal
	Progress Progress `json:"progress"`
}

// # Field Names

const (
	FieldTitle        = "title"
	FieldDescription  = "description"
	FieldTargetBooks  = "target_books"
	FieldCurrentBooks = "current_books"
	FieldStartDate    = "start_date"
	FieldEndDate      = "end_date"
)
