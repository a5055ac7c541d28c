// Copyright (c) 2026 Shelfmark. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package book

import "context"

// # Book Data Access

// BookRepository defines the data access contract for shelved books.
// Implementations never validate; the service and the transition policy do.
type BookRepository interface {

	/*
		FindByUser returns every book on the user's shelf, newest first.

		Parameters:
		  - context: context.Context
		  - userID: string (UUID)
		  - filter: Filter (Optional status and genre criteria)

		Returns:
		  - []*Book: Matching books, empty when none
		  - error: Database retrieval failures
	*/
	FindByUser(context context.Context, userID string, filter Filter) ([]*Book, error)

	// FindByUserAndStatus returns the user's books currently in status.
	FindByUserAndStatus(context context.Context, userID string, status Status) ([]*Book, error)

	/*
		FindByID returns the book with the given ID, regardless of owner.

		Returns:
		  - *Book: The hydrated entity
		  - error: NOT_FOUND if missing
	*/
	FindByID(context context.Context, id string) (*Book, error)

	// Create persists a new book. ID, AddedAt and UpdatedAt must already be set.
	Create(context context.Context, book *Book) error

	/*
		Update applies a partial update and returns the stored result.

		Parameters:
		  - context: context.Context
		  - id: string (UUID)
		  - patch: Patch (Fields to change)

		Returns:
		  - *Book: The book after the update
		  - error: NOT_FOUND if missing
	*/
	Update(context context.Context, id string, patch Patch) (*Book, error)

	// Delete removes the book permanently.
	Delete(context context.Context, id string) error
}
