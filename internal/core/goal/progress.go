// Copyright (c) 2026 Shelfmark. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package goal

import (
	"math"
	"time"
)

// Status is the derived state of a goal.
type Status string

const (
	StatusCompleted  Status = "completed"
	StatusOverdue    Status = "overdue"
	StatusNotStarted Status = "not-started"
	StatusInProgress Status = "in-progress"
)

const day = 24 * time.Hour

// Progress is the derived, never persisted view of a goal.
type Progress struct {
	Percentage         int    `json:"percentage"`
	IsCompleted        bool   `json:"is_completed"`
	IsOverdue          bool   `json:"is_overdue"`
	DaysRemaining      int    `json:"days_remaining"`
	BooksRemaining     int    `json:"books_remaining"`
	Status             Status `json:"status"`
	ShouldAutoComplete bool   `json:"-"`
}

/*
CalculateProgress derives the progress of goal at now.

Description: Total over any snapshot. A zero target yields 0 percent
instead of dividing by zero. A goal already marked completed is never
overdue, and ShouldAutoComplete only ever points from incomplete to
complete.

Parameters:
  - goal: Goal (Snapshot; TargetBooks, CurrentBooks, EndDate and Completed are read)
  - now: time.Time

Returns:
  - Progress
*/
func CalculateProgress(goal Goal, now time.Time) Progress {
	progress := Progress{
		IsCompleted:    goal.CurrentBooks >= goal.TargetBooks,
		IsOverdue:      now.After(goal.EndDate) && !goal.Completed,
		BooksRemaining: max(0, goal.TargetBooks-goal.CurrentBooks),
	}

	if goal.TargetBooks > 0 {
		ratio := float64(goal.CurrentBooks) / float64(goal.TargetBooks) * 100
		progress.Percentage = int(math.Round(max(0, min(100, ratio))))
	}

	if remaining := goal.EndDate.Sub(now); remaining > 0 {
		progress.DaysRemaining = int(math.Ceil(float64(remaining) / float64(day)))
	}

	progress.ShouldAutoComplete = !goal.Completed && progress.IsCompleted

	switch {
	case goal.Completed || progress.IsCompleted:
		progress.Status = StatusCompleted
	case progress.IsOverdue:
		progress.Status = StatusOverdue
	case goal.CurrentBooks == 0:
		progress.Status = StatusNotStarted
	default:
		progress.Status = StatusInProgress
	}

	return progress
}
