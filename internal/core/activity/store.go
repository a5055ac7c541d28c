// Copyright (c) 2026 Shelfmark. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package activity

import "context"

// ActivityRepository defines the data access contract for the reading log.
type ActivityRepository interface {

	/*
		FindByUser returns the user's activities, most recent day first.

		Parameters:
		  - context: context.Context
		  - userID: string (UUID)
		  - dateRange: DateRange (Zero value returns the full log)

		Returns:
		  - []*ReadingActivity: Matching records, empty when none
		  - error: Database retrieval failures
	*/
	FindByUser(context context.Context, userID string, dateRange DateRange) ([]*ReadingActivity, error)

	/*
		ListByUser returns one page of [ActivityRepository.FindByUser].

		Returns:
		  - []*ReadingActivity: At most limit records, starting at offset
		  - int: Number of records in the whole range
		  - error: Database retrieval failures
	*/
	ListByUser(context context.Context, userID string, dateRange DateRange, limit, offset int) ([]*ReadingActivity, int, error)

	// Create appends an activity. ID, ActivityDate and CreatedAt must already be set.
	Create(context context.Context, activity *ReadingActivity) error
}
