// Copyright (c) 2026 Shelfmark. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package activity

import (
	"context"
	"log/slog"
	"time"

	"github.com/taibuivan/shelfmark/internal/core/book"
	"github.com/taibuivan/shelfmark/internal/platform/apperr"
	"github.com/taibuivan/shelfmark/internal/platform/validate"
	"github.com/taibuivan/shelfmark/pkg/uuid"
)

// Service logs reading sessions and serves streaks.
type Service struct {
	repo     ActivityRepository
	books    book.BookRepository
	location *time.Location
	logger   *slog.Logger
	now      func() time.Time
}

/*
NewService constructs a [Service].

Parameters:
  - repo: ActivityRepository
  - books: book.BookRepository (Checks that a referenced book belongs to the user)
  - location: *time.Location (Zone whose midnight separates reading days)
  - logger: *slog.Logger
*/
func NewService(repo ActivityRepository, books book.BookRepository, location *time.Location, logger *slog.Logger) *Service {
	if location == nil {
		location = time.UTC
	}

	return &Service{
		repo:     repo,
		books:    books,
		location: location,
		logger:   logger,
		now:      time.Now,
	}
}

// Location returns the default day boundary zone.
func (service *Service) Location() *time.Location {
	return service.location
}

/*
LogActivity appends a reading session to the user's log.

Description: The date is reduced to a calendar day in the configured zone,
the same zone [Service.GetStreak] takes "today" from.
When a book is referenced it must exist and belong to the user.

Returns:
  - *ReadingActivity: The stored record
  - error: VALIDATION_ERROR, NOT_FOUND or UNAUTHORIZED
*/
func (service *Service) LogActivity(context context.Context, userID string, input NewActivity) (*ReadingActivity, error) {
	validator := &validate.Validator{}
	validator.Min(FieldMinutesRead, input.MinutesRead, 0)
	validator.Min(FieldPagesRead, input.PagesRead, 0)
	if input.BookID != nil {
		validator.UUID(FieldBookID, *input.BookID)
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	if input.BookID != nil && service.books != nil {
		shelved, err := service.books.FindByID(context, *input.BookID)
		if err != nil {
			return nil, err
		}
		if shelved.UserID != userID {
			return nil, apperr.Unauthorized("You do not own this book")
		}
	}

	now := service.now()
	date := now
	if input.ActivityDate != nil {
		date = input.ActivityDate.StartIn(service.location)
	}

	activity := &ReadingActivity{
		ID:           uuid.New(),
		UserID:       userID,
		BookID:       input.BookID,
		ActivityDate: Day(date.In(service.location)),
		MinutesRead:  input.MinutesRead,
		PagesRead:    input.PagesRead,
		CreatedAt:    now.UTC(),
	}

	if err := service.repo.Create(context, activity); err != nil {
		return nil, err
	}

	service.logger.Info("reading_activity_logged",
		slog.String("activity_id", activity.ID),
		slog.String("activity_date", activity.ActivityDate.Format(time.DateOnly)),
		slog.Int("minutes_read", activity.MinutesRead),
		slog.Int("pages_read", activity.PagesRead),
	)
	return activity, nil
}

/*
ListActivities returns one page of the user's log within dateRange, most
recent day first.

Returns:
  - []*ReadingActivity: The page
  - int: Number of activities in the whole range
  - error: VALIDATION_ERROR for an inverted range
*/
func (service *Service) ListActivities(context context.Context, userID string, dateRange DateRange, limit, offset int) ([]*ReadingActivity, int, error) {
	if dateRange.From != nil && dateRange.To != nil && dateRange.To.Before(*dateRange.From) {
		return nil, 0, apperr.InvalidField(FieldTo, "Must not be before from")
	}
	return service.repo.ListByUser(context, userID, dateRange, limit, offset)
}

/*
GetStreak computes the user's streak as of now.

Description: "today" is the calendar day of now in the configured zone.
Stored days were cut in that zone too, so the two always agree.

Returns:
  - ReadingStreak
  - error: Repository failures only
*/
func (service *Service) GetStreak(context context.Context, userID string, now time.Time) (ReadingStreak, error) {
	activities, err := service.repo.FindByUser(context, userID, DateRange{})
	if err != nil {
		return ReadingStreak{}, err
	}

	today := Day(now.In(service.location))
	return NewStreakCalculator(activities, today).Streak(), nil
}
