// Copyright (c) 2026 Shelfmark. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package goal

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/taibuivan/shelfmark/internal/platform/apperr"
)

// MemoryRepository is a map-backed [GoalRepository] for tests and the
// "memory" storage driver.
type MemoryRepository struct {
	mu    sync.RWMutex
	goals map[string]*Goal
}

// NewMemoryRepository returns an empty repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{goals: make(map[string]*Goal)}
}

func (repository *MemoryRepository) FindByID(_ context.Context, id string) (*Goal, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	goal, ok := repository.goals[id]
	if !ok {
		return nil, apperr.NotFound("Goal")
	}
	return clone(goal), nil
}

func (repository *MemoryRepository) FindByUser(_ context.Context, userID string) ([]*Goal, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	goals := make([]*Goal, 0)
	for _, goal := range repository.goals {
		if goal.UserID == userID {
			goals = append(goals, clone(goal))
		}
	}

	slices.SortFunc(goals, func(a, b *Goal) int {
		if c := b.StartDate.Compare(a.StartDate); c != 0 {
			return c
		}
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return goals, nil
}

func (repository *MemoryRepository) Create(_ context.Context, goal *Goal) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	if _, exists := repository.goals[goal.ID]; exists {
		return apperr.Conflict("Goal already exists")
	}
	repository.goals[goal.ID] = clone(goal)
	return nil
}

func (repository *MemoryRepository) Update(_ context.Context, id string, update Update) (*Goal, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	goal, ok := repository.goals[id]
	if !ok {
		return nil, apperr.NotFound("Goal")
	}

	update.Apply(goal)
	goal.UpdatedAt = time.Now().UTC()
	return clone(goal), nil
}

func (repository *MemoryRepository) Delete(_ context.Context, id string) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	if _, ok := repository.goals[id]; !ok {
		return apperr.NotFound("Goal")
	}
	delete(repository.goals, id)
	return nil
}

func clone(goal *Goal) *Goal {
	copied := *goal
	if goal.Description != nil {
		description := *goal.Description
		copied.Description = &description
	}
	return &copied
}
