// Copyright (c) 2026 Shelfmark. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package book_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/shelfmark/internal/core/book"
	"github.com/taibuivan/shelfmark/internal/platform/apperr"
	"github.com/taibuivan/shelfmark/internal/platform/sqlite/sqlitetest"
	"github.com/taibuivan/shelfmark/pkg/pointer"
)

// repositories lists every BookRepository that runs without external services.
func repositories(t *testing.T) map[string]book.BookRepository {
	return map[string]book.BookRepository{
		"memory": book.NewMemoryRepository(),
		"sqlite": book.NewSQLiteRepository(sqlitetest.Open(t)),
	}
}

func storedBook(id, userID string, status book.Status, addedAt time.Time, genres ...string) *book.Book {
	return &book.Book{
		ID:        id,
		UserID:    userID,
		Title:     "Title " + id[len(id)-2:],
		Authors:   []string{"Ursula K. Le Guin"},
		Status:    status,
		PageCount: pointer.To(300),
		Genres:    genres,
		AddedAt:   addedAt,
		UpdatedAt: addedAt,
	}
}

/*
TestBookRepository_Contract runs the same scenario against each implementation.
*/
func TestBookRepository_Contract(t *testing.T) {
	base := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)

	for name, repository := range repositories(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			first := storedBook("0190a4c2-0000-7000-8000-0000000000a1", alice, book.StatusReading, base, "fantasy", "classic")
			second := storedBook("0190a4c2-0000-7000-8000-0000000000a2", alice, book.StatusWantToRead, base.Add(time.Hour), "fantasy")
			other := storedBook("0190a4c2-0000-7000-8000-0000000000a3", bob, book.StatusReading, base, "fantasy")
			for _, b := range []*book.Book{first, second, other} {
				require.NoError(t, repository.Create(ctx, b))
			}

			all, err := repository.FindByUser(ctx, alice, book.Filter{})
			require.NoError(t, err)
			require.Len(t, all, 2)
			assert.Equal(t, second.ID, all[0].ID, "newest first")
			assert.Equal(t, []string{"Ursula K. Le Guin"}, all[0].Authors)

			classics, err := repository.FindByUser(ctx, alice, book.Filter{Genres: []string{"fantasy", "classic"}})
			require.NoError(t, err)
			require.Len(t, classics, 1)
			assert.Equal(t, first.ID, classics[0].ID)

			reading, err := repository.FindByUserAndStatus(ctx, alice, book.StatusReading)
			require.NoError(t, err)
			require.Len(t, reading, 1)
			assert.Equal(t, first.ID, reading[0].ID)

			finishedAt := base.Add(48 * time.Hour)
			updated, err := repository.Update(ctx, first.ID, book.Patch{
				Status:      pointer.To(book.StatusRead),
				CurrentPage: pointer.To(300),
				FinishedAt:  &finishedAt,
				Rating:      pointer.To(5),
			})
			require.NoError(t, err)
			assert.Equal(t, book.StatusRead, updated.Status)
			assert.Equal(t, 300, updated.CurrentPage)
			require.NotNil(t, updated.FinishedAt)
			assert.True(t, updated.FinishedAt.Equal(finishedAt))
			assert.Equal(t, pointer.To(5), updated.Rating)

			reopened, err := repository.Update(ctx, first.ID, book.Patch{
				Status:          pointer.To(book.StatusReading),
				ClearFinishedAt: true,
				ClearRating:     true,
			})
			require.NoError(t, err)
			assert.Nil(t, reopened.FinishedAt)
			assert.Nil(t, reopened.Rating)

			fetched, err := repository.FindByID(ctx, first.ID)
			require.NoError(t, err)
			assert.Equal(t, book.StatusReading, fetched.Status)
			assert.True(t, fetched.AddedAt.Equal(base))

			require.NoError(t, repository.Delete(ctx, first.ID))

			_, err = repository.FindByID(ctx, first.ID)
			assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))
			assert.True(t, apperr.HasCode(repository.Delete(ctx, first.ID), apperr.CodeNotFound))

			_, err = repository.Update(ctx, first.ID, book.Patch{CurrentPage: pointer.To(1)})
			assert.True(t, apperr.HasCode(err, apperr.CodeNotFound))
		})
	}
}
