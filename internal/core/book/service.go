// Copyright (c) 2026 Shelfmark. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package book

import (
	"context"
	"log/slog"
	"slices"
	"time"

	"github.com/taibuivan/shelfmark/internal/platform/apperr"
	"github.com/taibuivan/shelfmark/internal/platform/validate"
	"github.com/taibuivan/shelfmark/pkg/slug"
	"github.com/taibuivan/shelfmark/pkg/uuid"
)

// GoalSyncer recomputes every goal of a user after their set of finished
// books changed.
type GoalSyncer interface {
	SyncAllGoals(context context.Context, userID string) error
}

// # Service Layer

// Service implements the shelf use cases on top of the status transition policy.
type Service struct {
	repo       BookRepository
	goals      GoalSyncer
	autoFinish bool
	logger     *slog.Logger
	now        func() time.Time
}

/*
NewService constructs a [Service].

Parameters:
  - repo: BookRepository
  - goals: GoalSyncer (Called whenever a book enters or leaves the finished set)
  - autoFinish: bool (Finish books automatically when the last page is reached)
  - logger: *slog.Logger
*/
func NewService(repo BookRepository, goals GoalSyncer, autoFinish bool, logger *slog.Logger) *Service {
	return &Service{
		repo:       repo,
		goals:      goals,
		autoFinish: autoFinish,
		logger:     logger,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// # Shelf Lookups

// ListBooks returns the user's shelf, optionally narrowed by status and genres.
func (service *Service) ListBooks(context context.Context, userID string, filter Filter) ([]*Book, error) {
	if filter.Status != "" {
		validator := &validate.Validator{}
		validator.OneOf(FieldStatus, string(filter.Status), Statuses()...)
		if err := validator.Err(); err != nil {
			return nil, err
		}
	}

	filter.Genres = NormalizeGenres(filter.Genres)
	return service.repo.FindByUser(context, userID, filter)
}

/*
GetBook returns one of the user's books.

Returns:
  - *Book: The requested book
  - error: NOT_FOUND if missing, UNAUTHORIZED if owned by someone else
*/
func (service *Service) GetBook(context context.Context, userID, bookID string) (*Book, error) {
	return service.owned(context, userID, bookID)
}

// # Shelf Management

/*
AddBook places a new book on the user's shelf.

Description: Status defaults to want-to-read. A book added directly as
read goes through the same finish side effects as a status change, unless
the caller supplies its historical FinishedAt. Genres are normalised to a
deduplicated slug set.

Parameters:
  - context: context.Context
  - userID: string (Owner)
  - input: NewBook

Returns:
  - *Book: The persisted book
  - error: VALIDATION_ERROR on bad input
*/
func (service *Service) AddBook(context context.Context, userID string, input NewBook) (*Book, error) {
	if input.Status == "" {
		input.Status = StatusWantToRead
	}

	validator := &validate.Validator{}
	validator.Required(FieldTitle, input.Title).MaxLen(FieldTitle, input.Title, 500)
	validator.MaxLen(FieldExternalID, input.ExternalID, 200)
	validator.OneOf(FieldStatus, string(input.Status), Statuses()...)
	for _, author := range input.Authors {
		validator.Required(FieldAuthors, author).MaxLen(FieldAuthors, author, 200)
	}
	if input.PageCount != nil {
		validator.Min(FieldPageCount, *input.PageCount, 1)
	}
	if input.Rating != nil {
		validator.Custom(FieldRating, input.Status != StatusRead, "Only finished books can be rated")
		validator.Range(FieldRating, *input.Rating, MinRating, MaxRating)
	}
	if input.FinishedAt != nil {
		validator.Custom(FieldFinishedAt, input.Status != StatusRead, "Only finished books have a finish date")
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	now := service.now()
	book := &Book{
		ID:         uuid.New(),
		UserID:     userID,
		ExternalID: input.ExternalID,
		Title:      input.Title,
		Authors:    nonNil(input.Authors),
		Status:     input.Status,
		PageCount:  cloneInt(input.PageCount),
		Rating:     cloneInt(input.Rating),
		Genres:     NormalizeGenres(input.Genres),
		FinishedAt: input.FinishedAt,
		AddedAt:    now,
		UpdatedAt:  now,
	}

	if book.Status == StatusRead {
		finishPatch(book, now).Apply(book)
		if book.PageCount != nil {
			book.CurrentPage = *book.PageCount
		}
	}

	if err := service.repo.Create(context, book); err != nil {
		return nil, err
	}

	service.logger.Info("book_added",
		slog.String("book_id", book.ID),
		slog.String("status", string(book.Status)),
	)

	if book.IsFinished() {
		service.syncGoals(context, userID)
	}
	return book, nil
}

// DeleteBook removes a book; goals are recomputed when it was counted as read.
func (service *Service) DeleteBook(context context.Context, userID, bookID string) error {
	book, err := service.owned(context, userID, bookID)
	if err != nil {
		return err
	}

	if err := service.repo.Delete(context, bookID); err != nil {
		return err
	}

	service.logger.Warn("book_deleted", slog.String("book_id", bookID))

	if book.IsFinished() {
		service.syncGoals(context, userID)
	}
	return nil
}

// # Reading Lifecycle

/*
ChangeStatus moves a book through its lifecycle.

Description: The transition policy computes the patch. Goals are
recomputed whenever the book enters or leaves "read".

Returns:
  - *Book: The updated book
  - error: VALIDATION_ERROR for an illegal transition
*/
func (service *Service) ChangeStatus(context context.Context, userID, bookID string, next Status) (*Book, error) {
	book, err := service.owned(context, userID, bookID)
	if err != nil {
		return nil, err
	}

	patch, err := Transition(book, next, service.now())
	if err != nil {
		return nil, err
	}

	updated, err := service.repo.Update(context, bookID, patch)
	if err != nil {
		return nil, err
	}

	service.logger.Info("book_status_changed",
		slog.String("book_id", bookID),
		slog.String("from", string(book.Status)),
		slog.String("to", string(next)),
	)

	if book.Status == StatusRead || next == StatusRead {
		service.syncGoals(context, userID)
	}
	return updated, nil
}

/*
UpdateProgress records the page the user has reached.

Description: When auto-finish is enabled and the page is the last one of a
book being read, the book is finished in the same update.
*/
func (service *Service) UpdateProgress(context context.Context, userID, bookID string, page int) (*Book, error) {
	book, err := service.owned(context, userID, bookID)
	if err != nil {
		return nil, err
	}

	if err := ValidateCurrentPage(book, page); err != nil {
		return nil, err
	}

	patch := Patch{CurrentPage: &page}

	projected := book.Clone()
	patch.Apply(projected)

	finished := false
	if service.autoFinish && ShouldAutoFinish(projected) {
		finish, err := Transition(projected, StatusRead, service.now())
		if err != nil {
			return nil, err
		}
		patch = patch.Merge(finish)
		finished = true
	}

	updated, err := service.repo.Update(context, bookID, patch)
	if err != nil {
		return nil, err
	}

	service.logger.Info("book_progress_updated",
		slog.String("book_id", bookID),
		slog.Int("current_page", page),
		slog.Bool("auto_finished", finished),
	)

	if finished {
		service.syncGoals(context, userID)
	}
	return updated, nil
}

// RateBook sets the star rating of a finished book.
func (service *Service) RateBook(context context.Context, userID, bookID string, rating int) (*Book, error) {
	book, err := service.owned(context, userID, bookID)
	if err != nil {
		return nil, err
	}

	if err := ValidateRating(book, rating); err != nil {
		return nil, err
	}

	updated, err := service.repo.Update(context, bookID, Patch{Rating: &rating})
	if err != nil {
		return nil, err
	}

	service.logger.Info("book_rated", slog.String("book_id", bookID), slog.Int("rating", rating))
	return updated, nil
}

/*
UpdateFinishedAt corrects the finish date of a finished book.

Description: Moving the date can move the book into or out of a goal
window, so goals are always recomputed afterwards.
*/
func (service *Service) UpdateFinishedAt(context context.Context, userID, bookID string, finishedAt time.Time) (*Book, error) {
	book, err := service.owned(context, userID, bookID)
	if err != nil {
		return nil, err
	}

	validator := &validate.Validator{}
	validator.Custom(FieldFinishedAt, book.Status != StatusRead, "Only finished books have a finish date")
	validator.Custom(FieldFinishedAt, finishedAt.IsZero(), "This field is required")
	if err := validator.Err(); err != nil {
		return nil, err
	}

	finishedAt = finishedAt.UTC()
	updated, err := service.repo.Update(context, bookID, Patch{FinishedAt: &finishedAt})
	if err != nil {
		return nil, err
	}

	service.logger.Info("book_finish_date_changed",
		slog.String("book_id", bookID),
		slog.Time("finished_at", finishedAt),
	)

	service.syncGoals(context, userID)
	return updated, nil
}

// # Helpers

// owned loads a book and checks it belongs to userID.
func (service *Service) owned(context context.Context, userID, bookID string) (*Book, error) {
	book, err := service.repo.FindByID(context, bookID)
	if err != nil {
		return nil, err
	}

	if book.UserID != userID {
		return nil, apperr.Unauthorized("You do not own this book")
	}
	return book, nil
}

// syncGoals recomputes goals after the book change has been persisted. A
// failure is logged, not returned: the next sync recounts from scratch.
func (service *Service) syncGoals(context context.Context, userID string) {
	if service.goals == nil {
		return
	}

	if err := service.goals.SyncAllGoals(context, userID); err != nil {
		service.logger.Error("goal_sync_failed",
			slog.String("user_id", userID),
			slog.Any("error", err),
		)
	}
}

// NormalizeGenres slugifies genres and removes blanks and duplicates. The
// result is sorted.
func NormalizeGenres(genres []string) []string {
	normalized := make([]string, 0, len(genres))
	for _, genre := range genres {
		if value := slug.From(genre); value != "" {
			normalized = append(normalized, value)
		}
	}

	slices.Sort(normalized)
	return slices.Compact(normalized)
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return slices.Clone(values)
}
