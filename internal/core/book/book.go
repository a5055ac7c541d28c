// Copyright (c) 2026 Shelfmark. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package book manages a user's personal library and the reading lifecycle of
each book in it.

Core Responsibilities:

  - Lifecycle: Governs legal moves between want-to-read, reading and read.
  - Side Effects: Computes the field changes a status change implies
    (finish date, page reset, rating removal) as a [Patch].
  - Progress: Validates page and rating updates and signals when a book
    should be finished automatically.

Goal recomputation is triggered through [GoalSyncer]; this package never
depends on the goal package.
*/
package book

import (
	"slices"
	"time"
)

// # Domain Enums

// Status is the reading lifecycle stage of a book.
type Status string

const (
	// StatusWantToRead marks a book the user plans to read.
	StatusWantToRead Status = "want-to-read"

	// StatusReading marks a book currently being read.
	StatusReading Status = "reading"

	// StatusRead marks a finished book. Only finished books carry a rating and a finish date.
	StatusRead Status = "read"
)

// IsValid reports whether s is a recognised [Status] value.
func (s Status) IsValid() bool {
	switch s {
	case StatusWantToRead, StatusReading, StatusRead:
		return true
	}
	return false
}

// Statuses lists every valid status, in lifecycle order.
func Statuses() []string {
	return []string{string(StatusWantToRead), string(StatusReading), string(StatusRead)}
}

// # Domain Entities

// Book is a catalogue item placed on a user's shelf.
//
// Invariants: Rating and FinishedAt are nil whenever Status is not [StatusRead],
// and CurrentPage never exceeds PageCount when PageCount is known.
type Book struct {
	ID          string     `json:"id"`
	UserID      string     `json:"user_id"`
	ExternalID  string     `json:"external_id"`
	Title       string     `json:"title"`
	Authors     []string   `json:"authors"`
	Status      Status     `json:"status"`
	CurrentPage int        `json:"current_page"`
	PageCount   *int       `json:"page_count,omitempty"`
	Rating      *int       `json:"rating,omitempty"`
	Genres      []string   `json:"genres"`
	AddedAt     time.Time  `json:"added_at"`
	FinishedAt  *time.Time `json:"finished_at,omitempty"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// IsFinished reports whether the book counts as read for goal purposes.
func (b *Book) IsFinished() bool {
	return b.Status == StatusRead && b.FinishedAt != nil
}

// Clone returns a deep copy of the book.
func (b *Book) Clone() *Book {
	clone := *b
	clone.Authors = slices.Clone(b.Authors)
	clone.Genres = slices.Clone(b.Genres)
	clone.PageCount = cloneInt(b.PageCount)
	clone.Rating = cloneInt(b.Rating)
	if b.FinishedAt != nil {
		finishedAt := *b.FinishedAt
		clone.FinishedAt = &finishedAt
	}
	return &clone
}

// NewBook is the input for adding a book to a shelf.
//
// FinishedAt and Rating are accepted only when Status is [StatusRead], which
// allows back-filling books finished in the past.
type NewBook struct {
	ExternalID string     `json:"external_id"`
	Title      string     `json:"title"`
	Authors    []string   `json:"authors"`
	Status     Status     `json:"status"`
	PageCount  *int       `json:"page_count"`
	Genres     []string   `json:"genres"`
	FinishedAt *time.Time `json:"finished_at"`
	Rating     *int       `json:"rating"`
}

// Filter narrows a shelf listing.
type Filter struct {
	Status Status   // Empty means every status
	Genres []string // Normalised genre slugs; a book must carry all of them
}

// # Patches

// Patch is a partial update to a book. Nil fields are left untouched.
//
// ClearRating and ClearFinishedAt set the column to NULL and take precedence
// over Rating and FinishedAt.
type Patch struct {
	Status          *Status
	CurrentPage     *int
	Rating          *int
	FinishedAt      *time.Time
	ClearRating     bool
	ClearFinishedAt bool
}

// IsEmpty reports whether the patch changes nothing.
func (p Patch) IsEmpty() bool {
	return p.Status == nil && p.CurrentPage == nil && p.Rating == nil && p.FinishedAt == nil &&
		!p.ClearRating && !p.ClearFinishedAt
}

// Merge overlays other onto p; fields set in other win.
func (p Patch) Merge(other Patch) Patch {
	if other.Status != nil {
		p.Status = other.Status
	}
	if other.CurrentPage != nil {
		p.CurrentPage = other.CurrentPage
	}
	if other.Rating != nil {
		p.Rating = other.Rating
	}
	if other.FinishedAt != nil {
		p.FinishedAt = other.FinishedAt
	}
	p.ClearRating = p.ClearRating || other.ClearRating
	p.ClearFinishedAt = p.ClearFinishedAt || other.ClearFinishedAt
	return p
}

// Apply writes the patch onto book in place.
func (p Patch) Apply(book *Book) {
	if p.Status != nil {
		book.Status = *p.Status
	}
	if p.CurrentPage != nil {
		book.CurrentPage = *p.CurrentPage
	}
	if p.Rating != nil {
		book.Rating = cloneInt(p.Rating)
	}
	if p.FinishedAt != nil {
		finishedAt := *p.FinishedAt
		book.FinishedAt = &finishedAt
	}
	if p.ClearRating {
		book.Rating = nil
	}
	if p.ClearFinishedAt {
		book.FinishedAt = nil
	}
}

// # Field Names

const (
	FieldTitle       = "title"
	FieldExternalID  = "external_id"
	FieldAuthors     = "authors"
	FieldStatus      = "status"
	FieldCurrentPage = "current_page"
	FieldPageCount   = "page_count"
	FieldRating      = "rating"
	FieldGenres      = "genres"
	FieldFinishedAt  = "finished_at"
)

func cloneInt(value *int) *int {
	if value == nil {
		return nil
	}
	copied := *value
	return &copied
}
