// Copyright (c) 2026 Shelfmark. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package goal

import (
	"context"
	"errors"
	"log/slog"

	"github.com/taibuivan/shelfmark/internal/core/book"
	"github.com/taibuivan/shelfmark/internal/platform/apperr"
	"github.com/taibuivan/shelfmark/internal/platform/validate"
	"github.com/taibuivan/shelfmark/pkg/slice"
)

// # Goal Synchronisation

/*
SyncGoalProgress recounts the books that count toward a goal.

Description: Recomputes from scratch instead of incrementing, so edited
finish dates, back-filled books and deletions correct themselves on the
next sync. Only books in "read" with a finish date inside the inclusive
window count. Completion is latched: a completed goal stays completed even
if the count later drops. Calls for the same user and goal are serialised.

Parameters:
  - context: context.Context
  - goalID: string (UUID)
  - userID: string (Acting user)

Returns:
  - *Goal: The persisted goal
  - error: NOT_FOUND if missing, UNAUTHORIZED if owned by someone else
*/
func (service *Service) SyncGoalProgress(context context.Context, goalID, userID string) (*Goal, error) {
	held, unlock, err := service.locker.Lock(context, lockKey(userID, goalID))
	if err != nil {
		return nil, err
	}
	defer unlock()

	goal, err := service.owned(held, userID, goalID)
	if err != nil {
		return nil, err
	}

	books, err := service.books.FindByUser(held, userID, book.Filter{})
	if err != nil {
		return nil, err
	}

	counted := CountFinishedInWindow(goal, books)
	return service.applyCount(held, goal, counted)
}

/*
UpdateGoalProgress stores a count the caller already knows, such as after a
bulk import. It applies the same ownership checks and completion latch as
[Service.SyncGoalProgress] but skips the book scan.
*/
func (service *Service) UpdateGoalProgress(context context.Context, goalID, userID string, currentBooks int) (*Goal, error) {
	validator := &validate.Validator{}
	validator.Min(FieldCurrentBooks, currentBooks, 0)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	held, unlock, err := service.locker.Lock(context, lockKey(userID, goalID))
	if err != nil {
		return nil, err
	}
	defer unlock()

	goal, err := service.owned(held, userID, goalID)
	if err != nil {
		return nil, err
	}

	return service.applyCount(held, goal, currentBooks)
}

// SyncAllGoals runs [Service.SyncGoalProgress] for every goal of the user.
// A failing goal does not stop the others; all failures are returned joined.
func (service *Service) SyncAllGoals(context context.Context, userID string) error {
	goals, err := service.repo.FindByUser(context, userID)
	if err != nil {
		return err
	}

	var errs []error
	for _, goal := range goals {
		if _, err := service.SyncGoalProgress(context, goal.ID, userID); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// CountFinishedInWindow counts books in "read" whose finish date falls inside the goal window.
func CountFinishedInWindow(goal *Goal, books []*book.Book) int {
	return len(slice.Filter(books, func(candidate *book.Book) bool {
		return candidate.IsFinished() && goal.Contains(*candidate.FinishedAt)
	}))
}

// applyCount persists currentBooks and latches completion when reached.
// context is the lock context; nothing is written once its lease is over.
func (service *Service) applyCount(context context.Context, goal *Goal, currentBooks int) (*Goal, error) {
	if err := context.Err(); err != nil {
		service.logger.Warn("goal_lock_lease_expired",
			slog.String("goal_id", goal.ID),
			slog.Any("error", err),
		)
		return nil, apperr.Internal(err)
	}

	snapshot := *goal
	snapshot.CurrentBooks = currentBooks
	progress := CalculateProgress(snapshot, service.now())

	update := Update{CurrentBooks: &currentBooks}
	if progress.ShouldAutoComplete {
		completed := true
		update.Completed = &completed
	}

	updated, err := service.repo.Update(context, goal.ID, update)
	if err != nil {
		return nil, err
	}

	service.logger.Info("goal_progress_synced",
		slog.String("goal_id", goal.ID),
		slog.Int("previous_books", goal.CurrentBooks),
		slog.Int("current_books", currentBooks),
	)

	if progress.ShouldAutoComplete {
		service.logger.Info("goal_auto_completed",
			slog.String("goal_id", goal.ID),
			slog.Int("target_books", goal.TargetBooks),
		)
	}

	return updated, nil
}
