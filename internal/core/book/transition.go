// Copyright (c) 2026 Shelfmark. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package book

import (
	"fmt"
	"time"

	"github.com/taibuivan/shelfmark/internal/platform/apperr"
	"github.com/taibuivan/shelfmark/internal/platform/validate"
)

// MaxRating and MinRating bound the star rating of a finished book.
const (
	MinRating = 1
	MaxRating = 5
)

// transitions is the directed graph of legal status changes. Self loops are absent.
var transitions = map[Status][]Status{
	StatusWantToRead: {StatusReading, StatusRead},
	StatusReading:    {StatusWantToRead, StatusRead},
	StatusRead:       {StatusReading, StatusWantToRead},
}

// # Status Transition Policy

// CanTransition reports whether a book may move from one status to another.
func CanTransition(from, to Status) bool {
	for _, allowed := range transitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

/*
Transition validates a status change and computes every field it implies.

Description: The returned patch always carries the new status. Entering
"read" stamps FinishedAt (when unset) and jumps to the last page when the
page count is known. Leaving "read" drops FinishedAt and Rating. Entering
"want-to-read" resets CurrentPage to zero. Nothing else is touched.

Parameters:
  - book: *Book (Current state; not modified)
  - next: Status (Requested status)
  - now: time.Time (Finish timestamp to record)

Returns:
  - Patch: Changes to persist
  - error: VALIDATION_ERROR naming the illegal pair
*/
func Transition(book *Book, next Status, now time.Time) (Patch, error) {
	if !CanTransition(book.Status, next) {
		return Patch{}, apperr.ValidationError(
			fmt.Sprintf("Cannot change status from %q to %q", book.Status, next),
			apperr.FieldError{
				Field:   FieldStatus,
				Message: fmt.Sprintf("Transition %s -> %s is not allowed", book.Status, next),
			},
		)
	}

	patch := Patch{Status: &next}

	if next == StatusRead {
		patch = patch.Merge(finishPatch(book, now))
	}

	if book.Status == StatusRead && next != StatusRead {
		patch.ClearFinishedAt = true
		patch.ClearRating = true
	}

	if next == StatusWantToRead {
		zero := 0
		patch.CurrentPage = &zero
	}

	return patch, nil
}

// finishPatch holds the side effects of a book becoming finished.
func finishPatch(book *Book, now time.Time) Patch {
	var patch Patch
	if book.FinishedAt != nil {
		return patch
	}

	finishedAt := now
	patch.FinishedAt = &finishedAt
	if book.PageCount != nil {
		lastPage := *book.PageCount
		patch.CurrentPage = &lastPage
	}
	return patch
}

// # Supplementary Validations

// ValidateRating checks that book is finished and rating is within [MinRating, MaxRating].
func ValidateRating(book *Book, rating int) error {
	validator := &validate.Validator{}
	validator.Custom(FieldRating, book.Status != StatusRead, "Only finished books can be rated")
	validator.Range(FieldRating, rating, MinRating, MaxRating)
	return validator.Err()
}

// ValidateCurrentPage checks that page is not negative and does not pass the last page.
func ValidateCurrentPage(book *Book, page int) error {
	validator := &validate.Validator{}
	validator.Min(FieldCurrentPage, page, 0)
	if book.PageCount != nil {
		validator.Max(FieldCurrentPage, page, *book.PageCount)
	}
	return validator.Err()
}

// ShouldAutoFinish reports whether a book being read has reached its last page.
// Acting on the signal is up to the caller.
func ShouldAutoFinish(book *Book) bool {
	return book.Status == StatusReading &&
		book.PageCount != nil &&
		book.CurrentPage == *book.PageCount
}
