// Copyright (c) 2026 Shelfmark. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package book_test

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/shelfmark/internal/core/book"
	"github.com/taibuivan/shelfmark/internal/platform/apperr"
	"github.com/taibuivan/shelfmark/pkg/pointer"
)

const (
	alice = "0190a4c2-0000-7000-8000-000000000001"
	bob   = "0190a4c2-0000-7000-8000-000000000002"
)

// recordingSyncer counts goal sync requests per user.
type recordingSyncer struct {
	mu    sync.Mutex
	calls map[string]int
}

func (syncer *recordingSyncer) SyncAllGoals(_ context.Context, userID string) error {
	syncer.mu.Lock()
	defer syncer.mu.Unlock()
	if syncer.calls == nil {
		syncer.calls = make(map[string]int)
	}
	syncer.calls[userID]++
	return nil
}

func (syncer *recordingSyncer) count(userID string) int {
	syncer.mu.Lock()
	defer syncer.mu.Unlock()
	return syncer.calls[userID]
}

func newTestService(autoFinish bool) (*book.Service, *recordingSyncer) {
	syncer := &recordingSyncer{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return book.NewService(book.NewMemoryRepository(), syncer, autoFinish, logger), syncer
}

/*
TestService_AddBook checks defaults and genre normalisation.
*/
func TestService_AddBook(t *testing.T) {
	service, syncer := newTestService(false)
	ctx := context.Background()

	added, err := service.AddBook(ctx, alice, book.NewBook{
		Title:     "The Left Hand of Darkness",
		Authors:   []string{"Ursula K. Le Guin"},
		PageCount: pointer.To(304),
		Genres:    []string{"Science Fiction", "science-fiction", "  ", "Clásico"},
	})
	require.NoError(t, err)

	assert.Equal(t, book.StatusWantToRead, added.Status)
	assert.Equal(t, 0, added.CurrentPage)
	assert.Equal(t, []string{"clasico", "science-fiction"}, added.Genres)
	assert.Nil(t, added.FinishedAt)
	assert.Zero(t, syncer.count(alice))
}

/*
TestService_AddBook_AsRead applies the finish side effects and syncs goals.
*/
func TestService_AddBook_AsRead(t *testing.T) {
	service, syncer := newTestService(false)

	added, err := service.AddBook(context.Background(), alice, book.NewBook{
		Title:     "Piranesi",
		Status:    book.StatusRead,
		PageCount: pointer.To(272),
		Rating:    pointer.To(5),
	})
	require.NoError(t, err)

	assert.NotNil(t, added.FinishedAt)
	assert.Equal(t, 272, added.CurrentPage)
	assert.Equal(t, 5, *added.Rating)
	assert.Equal(t, 1, syncer.count(alice))
}

/*
TestService_AddBook_Validation rejects ratings on unfinished books and bad page counts.
*/
func TestService_AddBook_Validation(t *testing.T) {
	service, _ := newTestService(false)

	_, err := service.AddBook(context.Background(), alice, book.NewBook{
		Title:     "",
		Status:    book.StatusReading,
		PageCount: pointer.To(0),
		Rating:    pointer.To(3),
	})
	require.Error(t, err)

	appError := apperr.As(err)
	require.NotNil(t, appError)
	fields := make([]string, 0, len(appError.Details))
	for _, detail := range appError.Details {
		fields = append(fields, detail.Field)
	}
	assert.ElementsMatch(t, []string{book.FieldTitle, book.FieldPageCount, book.FieldRating}, fields)
}

/*
TestService_ChangeStatus_SyncsOnlyAroundRead triggers goal sync when a book
enters or leaves "read" and never otherwise.
*/
func TestService_ChangeStatus_SyncsOnlyAroundRead(t *testing.T) {
	service, syncer := newTestService(false)
	ctx := context.Background()

	added, err := service.AddBook(ctx, alice, book.NewBook{Title: "Dune", PageCount: pointer.To(412)})
	require.NoError(t, err)

	_, err = service.ChangeStatus(ctx, alice, added.ID, book.StatusReading)
	require.NoError(t, err)
	assert.Zero(t, syncer.count(alice))

	finished, err := service.ChangeStatus(ctx, alice, added.ID, book.StatusRead)
	require.NoError(t, err)
	assert.Equal(t, 412, finished.CurrentPage)
	assert.NotNil(t, finished.FinishedAt)
	assert.Equal(t, 1, syncer.count(alice))

	_, err = service.RateBook(ctx, alice, added.ID, 4)
	require.NoError(t, err)

	shelved, err := service.ChangeStatus(ctx, alice, added.ID, book.StatusWantToRead)
	require.NoError(t, err)
	assert.Equal(t, 0, shelved.CurrentPage)
	assert.Nil(t, shelved.Rating)
	assert.Nil(t, shelved.FinishedAt)
	assert.Equal(t, 2, syncer.count(alice))
}

/*
TestService_ChangeStatus_Illegal leaves the stored book untouched.
*/
func TestService_ChangeStatus_Illegal(t *testing.T) {
	service, _ := newTestService(false)
	ctx := context.Background()

	added, err := service.AddBook(ctx, alice, book.NewBook{Title: "Dune"})
	require.NoError(t, err)

	_, err = service.ChangeStatus(ctx, alice, added.ID, book.StatusWantToRead)
	assert.True(t, apperr.HasCode(err, apperr.CodeValidation))

	stored, err := service.GetBook(ctx, alice, added.ID)
	require.NoError(t, err)
	assert.Equal(t, added, stored)
}

/*
TestService_Ownership rejects access to another user's book.
*/
func TestService_Ownership(t *testing.T) {
	service, _ := newTestService(false)
	ctx := context.Background()

	added, err := service.AddBook(ctx, alice, book.NewBook{Title: "Dune"})
	require.NoError(t, err)

	_, err = service.GetBook(ctx, bob, added.ID)
	assert.True(t, apperr.HasCode(err, apperr.CodeUnauthorized))

	_, err = service.ChangeStatus(ctx, bob, added.ID, book.StatusReading)
	assert.True(t, apperr.HasCode(err, apperr.CodeUnauthorized))

	err = service.DeleteBook(ctx, bob, added.ID)
	assert.True(t, apperr.HasCode(err, apperr.CodeUnauthorized))

	_, err = service.GetBook(ctx, alice, "0190a4c2-0000-7000-8000-0000000000ff")
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))
}

/*
TestService_UpdateProgress_AutoFinish finishes the book on its last page
only when enabled.
*/
func TestService_UpdateProgress_AutoFinish(t *testing.T) {
	for _, autoFinish := range []bool{true, false} {
		service, syncer := newTestService(autoFinish)
		ctx := context.Background()

		added, err := service.AddBook(ctx, alice, book.NewBook{Title: "Kindred", PageCount: pointer.To(264)})
		require.NoError(t, err)
		_, err = service.ChangeStatus(ctx, alice, added.ID, book.StatusReading)
		require.NoError(t, err)

		updated, err := service.UpdateProgress(ctx, alice, added.ID, 264)
		require.NoError(t, err)

		assert.Equal(t, 264, updated.CurrentPage)
		if autoFinish {
			assert.Equal(t, book.StatusRead, updated.Status)
			assert.NotNil(t, updated.FinishedAt)
			assert.Equal(t, 1, syncer.count(alice))
		} else {
			assert.Equal(t, book.StatusReading, updated.Status)
			assert.Nil(t, updated.FinishedAt)
			assert.Zero(t, syncer.count(alice))
		}
	}
}

/*
TestService_UpdateProgress_OutOfBounds rejects pages past the end.
*/
func TestService_UpdateProgress_OutOfBounds(t *testing.T) {
	service, _ := newTestService(true)
	ctx := context.Background()

	added, err := service.AddBook(ctx, alice, book.NewBook{Title: "Kindred", PageCount: pointer.To(264)})
	require.NoError(t, err)

	_, err = service.UpdateProgress(ctx, alice, added.ID, 265)
	require.Error(t, err)
	assert.Equal(t, book.FieldCurrentPage, apperr.As(err).Details[0].Field)
}

/*
TestService_UpdateFinishedAt only applies to finished books and always syncs.
*/
func TestService_UpdateFinishedAt(t *testing.T) {
	service, syncer := newTestService(false)
	ctx := context.Background()

	reading, err := service.AddBook(ctx, alice, book.NewBook{Title: "Beloved", Status: book.StatusReading})
	require.NoError(t, err)

	_, err = service.UpdateFinishedAt(ctx, alice, reading.ID, time.Now())
	assert.True(t, apperr.HasCode(err, apperr.CodeValidation))

	finished, err := service.AddBook(ctx, alice, book.NewBook{Title: "Sula", Status: book.StatusRead})
	require.NoError(t, err)
	assert.Equal(t, 1, syncer.count(alice))

	moved := time.Date(2025, 12, 30, 20, 0, 0, 0, time.UTC)
	updated, err := service.UpdateFinishedAt(ctx, alice, finished.ID, moved)
	require.NoError(t, err)
	assert.Equal(t, moved, *updated.FinishedAt)
	assert.Equal(t, 2, syncer.count(alice))
}

/*
TestService_ListBooks filters by status and genre.
*/
func TestService_ListBooks(t *testing.T) {
	service, _ := newTestService(false)
	ctx := context.Background()

	_, err := service.AddBook(ctx, alice, book.NewBook{Title: "A", Genres: []string{"Fantasy"}})
	require.NoError(t, err)
	_, err = service.AddBook(ctx, alice, book.NewBook{Title: "B", Status: book.StatusRead, Genres: []string{"Fantasy", "Horror"}})
	require.NoError(t, err)
	_, err = service.AddBook(ctx, bob, book.NewBook{Title: "C", Genres: []string{"Fantasy"}})
	require.NoError(t, err)

	all, err := service.ListBooks(ctx, alice, book.Filter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	read, err := service.ListBooks(ctx, alice, book.Filter{Status: book.StatusRead})
	require.NoError(t, err)
	require.Len(t, read, 1)
	assert.Equal(t, "B", read[0].Title)

	horror, err := service.ListBooks(ctx, alice, book.Filter{Genres: []string{"HORROR"}})
	require.NoError(t, err)
	require.Len(t, horror, 1)
	assert.Equal(t, "B", horror[0].Title)

	_, err = service.ListBooks(ctx, alice, book.Filter{Status: "abandoned"})
	assert.True(t, apperr.HasCode(err, apperr.CodeValidation))
}

/*
TestService_DeleteBook syncs goals only when a finished book disappears.
*/
func TestService_DeleteBook(t *testing.T) {
	service, syncer := newTestService(false)
	ctx := context.Background()

	unread, err := service.AddBook(ctx, alice, book.NewBook{Title: "Unread"})
	require.NoError(t, err)
	finished, err := service.AddBook(ctx, alice, book.NewBook{Title: "Done", Status: book.StatusRead})
	require.NoError(t, err)
	require.Equal(t, 1, syncer.count(alice))

	require.NoError(t, service.DeleteBook(ctx, alice, unread.ID))
	assert.Equal(t, 1, syncer.count(alice))

	require.NoError(t, service.DeleteBook(ctx, alice, finished.ID))
	assert.Equal(t, 2, syncer.count(alice))

	_, err = service.GetBook(ctx, alice, finished.ID)
	assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))
}
