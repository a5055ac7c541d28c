// Copyright (c) 2026 Shelfmark. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package goal

import "context"

// # Goal Data Access

// GoalRepository defines the data access contract for reading goals.
type GoalRepository interface {

	/*
		FindByID returns the goal with the given ID, regardless of owner.

		Returns:
		  - *Goal: The hydrated entity
		  - error: NOT_FOUND if missing
	*/
	FindByID(context context.Context, id string) (*Goal, error)

	// FindByUser returns every goal of the user, most recent window first.
	FindByUser(context context.Context, userID string) ([]*Goal, error)

	// Create persists a new goal. ID and timestamps must already be set.
	Create(context context.Context, goal *Goal) error

	/*
		Update applies a partial update and returns the stored result.

		Parameters:
		  - context: context.Context
		  - id: string (UUID)
		  - update: Update (CurrentBooks and/or Completed)

		Returns:
		  - *Goal: The goal after the update
		  - error: NOT_FOUND if missing
	*/
	Update(context context.Context, id string, update Update) (*Goal, error)

	// Delete removes the goal permanently.
	Delete(context context.Context, id string) error
}
