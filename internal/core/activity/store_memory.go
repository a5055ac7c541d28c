// Copyright (c) 2026 Shelfmark. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package activity

import (
	"context"
	"slices"
	"sync"
)

// MemoryRepository is a slice-backed [ActivityRepository] for tests and the
// "memory" storage driver.
type MemoryRepository struct {
	mu         sync.RWMutex
	activities []*ReadingActivity
}

// NewMemoryRepository returns an empty repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

func (repository *MemoryRepository) FindByUser(_ context.Context, userID string, dateRange DateRange) ([]*ReadingActivity, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	found := make([]*ReadingActivity, 0)
	for _, activity := range repository.activities {
		if activity.UserID != userID || !dateRange.Contains(activity.ActivityDate) {
			continue
		}
		copied := *activity
		found = append(found, &copied)
	}

	slices.SortStableFunc(found, func(a, b *ReadingActivity) int {
		if c := b.ActivityDate.Compare(a.ActivityDate); c != 0 {
			return c
		}
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return found, nil
}

func (repository *MemoryRepository) ListByUser(context context.Context, userID string, dateRange DateRange, limit, offset int) ([]*ReadingActivity, int, error) {
	found, _ := repository.FindByUser(context, userID, dateRange)

	start := min(offset, len(found))
	end := min(start+limit, len(found))
	return found[start:end], len(found), nil
}

func (repository *MemoryRepository) Create(_ context.Context, activity *ReadingActivity) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	copied := *activity
	repository.activities = append(repository.activities, &copied)
	return nil
}
