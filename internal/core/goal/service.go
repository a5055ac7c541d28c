// Copyright (c) 2026 Shelfmark. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package goal

import (
	"context"
	"log/slog"
	"time"

	"github.com/taibuivan/shelfmark/internal/core/book"
	"github.com/taibuivan/shelfmark/internal/platform/apperr"
	"github.com/taibuivan/shelfmark/internal/platform/validate"
	"github.com/taibuivan/shelfmark/pkg/uuid"
)

// # Service Layer

// Service owns the goal use cases and the synchronisation engine.
type Service struct {
	repo   GoalRepository
	books  book.BookRepository
	locker Locker
	logger *slog.Logger
	now    func() time.Time
}

/*
NewService constructs a [Service].

Parameters:
  - repo: GoalRepository
  - books: book.BookRepository (Read-only; used to recount finished books)
  - locker: Locker (nil selects a [LocalLocker])
  - logger: *slog.Logger
*/
func NewService(repo GoalRepository, books book.BookRepository, locker Locker, logger *slog.Logger) *Service {
	if locker == nil {
		locker = NewLocalLocker()
	}

	return &Service{
		repo:   repo,
		books:  books,
		locker: locker,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// # Goal Lookups

// ListGoals returns the user's goals with their derived progress.
func (service *Service) ListGoals(context context.Context, userID string) ([]WithProgress, error) {
	goals, err := service.repo.FindByUser(context, userID)
	if err != nil {
		return nil, err
	}

	now := service.now()
	views := make([]WithProgress, 0, len(goals))
	for _, goal := range goals {
		views = append(views, WithProgress{Goal: goal, Progress: CalculateProgress(*goal, now)})
	}
	return views, nil
}

// GetGoal returns one of the user's goals with its derived progress.
func (service *Service) GetGoal(context context.Context, userID, goalID string) (*WithProgress, error) {
	goal, err := service.owned(context, userID, goalID)
	if err != nil {
		return nil, err
	}
	return service.view(goal), nil
}

// # Goal Management

/*
CreateGoal validates and stores a new goal, then syncs it immediately so
books already finished inside the window count from the start.

Returns:
  - *WithProgress: The synced goal, or the stored unsynced goal when the first sync fails
  - error: VALIDATION_ERROR on bad input, storage failures from the insert
*/
func (service *Service) CreateGoal(context context.Context, userID string, input NewGoal) (*WithProgress, error) {
	validator := &validate.Validator{}
	validator.Required(FieldTitle, input.Title).MaxLen(FieldTitle, input.Title, 200)
	if input.Description != nil {
		validator.MaxLen(FieldDescription, *input.Description, 2000)
	}
	validator.Min(FieldTargetBooks, input.TargetBooks, 1)
	validator.Custom(FieldStartDate, input.StartDate.IsZero(), "This field is required")
	validator.Custom(FieldEndDate, input.EndDate.IsZero(), "This field is required")
	start, end := input.Window()
	if !input.StartDate.IsZero() && !input.EndDate.IsZero() {
		validator.After(FieldEndDate, end, start, FieldStartDate)
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	now := service.now()
	goal := &Goal{
		ID:          uuid.New(),
		UserID:      userID,
		Title:       input.Title,
		Description: input.Description,
		TargetBooks: input.TargetBooks,
		StartDate:   start,
		EndDate:     end,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := service.repo.Create(context, goal); err != nil {
		return nil, err
	}

	service.logger.Info("goal_created",
		slog.String("goal_id", goal.ID),
		slog.Int("target_books", goal.TargetBooks),
	)

	// The goal exists from here on; a failed first sync is repaired by the
	// next one rather than reported as a failed create.
	synced, err := service.SyncGoalProgress(context, goal.ID, userID)
	if err != nil {
		service.logger.Error("goal_sync_failed",
			slog.String("goal_id", goal.ID),
			slog.String("user_id", userID),
			slog.Any("error", err),
		)
		return service.view(goal), nil
	}
	return service.view(synced), nil
}

// DeleteGoal removes one of the user's goals.
func (service *Service) DeleteGoal(context context.Context, userID, goalID string) error {
	if _, err := service.owned(context, userID, goalID); err != nil {
		return err
	}

	if err := service.repo.Delete(context, goalID); err != nil {
		return err
	}

	service.logger.Warn("goal_deleted", slog.String("goal_id", goalID))
	return nil
}

// # Helpers

// owned loads a goal and checks it belongs to userID.
func (service *Service) owned(context context.Context, userID, goalID string) (*Goal, error) {
	goal, err := service.repo.FindByID(context, goalID)
	if err != nil {
		return nil, err
	}

	if goal.UserID != userID {
		return nil, apperr.Unauthorized("You do not own this goal")
	}
	return goal, nil
}

func (service *Service) view(goal *Goal) *WithProgress {
	return &WithProgress{Goal: goal, Progress: CalculateProgress(*goal, service.now())}
}
