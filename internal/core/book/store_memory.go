// Copyright (c) 2026 Shelfmark. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package book

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/taibuivan/shelfmark/internal/platform/apperr"
)

// MemoryRepository is a map-backed [BookRepository] for tests and the
// "memory" storage driver. Every read returns a copy.
type MemoryRepository struct {
	mu    sync.RWMutex
	books map[string]*Book
}

// NewMemoryRepository returns an empty repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{books: make(map[string]*Book)}
}

func (repository *MemoryRepository) FindByUser(_ context.Context, userID string, filter Filter) ([]*Book, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	books := make([]*Book, 0)
	for _, book := range repository.books {
		if book.UserID != userID {
			continue
		}
		if filter.Status != "" && book.Status != filter.Status {
			continue
		}
		if !hasAllGenres(book, filter.Genres) {
			continue
		}
		books = append(books, book.Clone())
	}

	sortNewestFirst(books)
	return books, nil
}

func (repository *MemoryRepository) FindByUserAndStatus(context context.Context, userID string, status Status) ([]*Book, error) {
	return repository.FindByUser(context, userID, Filter{Status: status})
}

func (repository *MemoryRepository) FindByID(_ context.Context, id string) (*Book, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	book, ok := repository.books[id]
	if !ok {
		return nil, apperr.NotFound("Book")
	}
	return book.Clone(), nil
}

func (repository *MemoryRepository) Create(_ context.Context, book *Book) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	if _, exists := repository.books[book.ID]; exists {
		return apperr.Conflict("Book already exists")
	}
	repository.books[book.ID] = book.Clone()
	return nil
}

func (repository *MemoryRepository) Update(_ context.Context, id string, patch Patch) (*Book, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	book, ok := repository.books[id]
	if !ok {
		return nil, apperr.NotFound("Book")
	}

	patch.Apply(book)
	book.UpdatedAt = time.Now().UTC()
	return book.Clone(), nil
}

func (repository *MemoryRepository) Delete(_ context.Context, id string) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	if _, ok := repository.books[id]; !ok {
		return apperr.NotFound("Book")
	}
	delete(repository.books, id)
	return nil
}

func hasAllGenres(book *Book, genres []string) bool {
	for _, genre := range genres {
		if !slices.Contains(book.Genres, genre) {
			return false
		}
	}
	return true
}

func sortNewestFirst(books []*Book) {
	slices.SortFunc(books, func(a, b *Book) int {
		if c := b.AddedAt.Compare(a.AddedAt); c != 0 {
			return c
		}
		// UUIDv7 ids are time ordered.
		if a.ID > b.ID {
			return -1
		}
		if a.ID < b.ID {
			return 1
		}
		return 0
	})
}
