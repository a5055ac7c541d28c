// Copyright (c) 2026 Shelfmark. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package activity

import (
	"fmt"
	"slices"
	"time"
)

// Category groups streaks for display.
type Category string

const (
	CategoryNoActivity  Category = "no-activity"
	CategoryAtRisk      Category = "at-risk"
	CategoryBuilding    Category = "building"
	CategoryLongRunning Category = "long-running"
)

// LongRunningDays is the current streak length from which a streak is long-running.
const LongRunningDays = 7

// ReadingStreak is the derived streak view. It is never stored.
type ReadingStreak struct {
	CurrentStreak    int        `json:"current_streak"`
	LongestStreak    int        `json:"longest_streak"`
	TotalDaysRead    int        `json:"total_days_read"`
	IsActiveToday    bool       `json:"is_active_today"`
	LastActivityDate *time.Time `json:"last_activity_date"`
	IsAtRisk         bool       `json:"is_at_risk"`
	Category         Category   `json:"category"`
	Message          string     `json:"message"`
}

// StreakCalculator derives streak statistics relative to a reference day
// instead of the wall clock.
type StreakCalculator struct {
	days  []time.Time // unique, most recent first
	set   map[time.Time]struct{}
	today time.Time
}

/*
NewStreakCalculator collapses activities into unique calendar days.

Parameters:
  - activities: []*ReadingActivity (One user's log, any order, duplicates allowed)
  - today: time.Time (Reference day; already in the caller's day boundary)
*/
func NewStreakCalculator(activities []*ReadingActivity, today time.Time) *StreakCalculator {
	calculator := &StreakCalculator{
		set:   make(map[time.Time]struct{}, len(activities)),
		today: Day(today),
	}

	for _, activity := range activities {
		day := Day(activity.ActivityDate)
		if _, seen := calculator.set[day]; seen {
			continue
		}
		calculator.set[day] = struct{}{}
		calculator.days = append(calculator.days, day)
	}

	slices.SortFunc(calculator.days, func(a, b time.Time) int { return b.Compare(a) })
	return calculator
}

// TotalDaysRead is the number of distinct days with activity.
func (calculator *StreakCalculator) TotalDaysRead() int {
	return len(calculator.days)
}

// IsActiveToday reports whether the reference day has activity.
func (calculator *StreakCalculator) IsActiveToday() bool {
	return calculator.has(calculator.today)
}

/*
CurrentStreak counts consecutive days ending today, or yesterday when
nothing is logged yet today. Any older last activity means the streak is
broken and the result is 0.
*/
func (calculator *StreakCalculator) CurrentStreak() int {
	cursor := calculator.today
	if !calculator.has(cursor) {
		cursor = previousDay(cursor)
		if !calculator.has(cursor) {
			return 0
		}
	}

	streak := 0
	for calculator.has(cursor) {
		streak++
		cursor = previousDay(cursor)
	}
	return streak
}

// LongestStreak is the longest run of consecutive days anywhere in the log.
func (calculator *StreakCalculator) LongestStreak() int {
	if len(calculator.days) == 0 {
		return 0
	}

	longest, run := 1, 1
	for i := 1; i < len(calculator.days); i++ {
		if calculator.days[i].Equal(previousDay(calculator.days[i-1])) {
			run++
		} else {
			run = 1
		}
		longest = max(longest, run)
	}
	return longest
}

// IsAtRisk reports an active streak that lapses unless something is logged today.
func (calculator *StreakCalculator) IsAtRisk() bool {
	return !calculator.IsActiveToday() &&
		calculator.has(previousDay(calculator.today)) &&
		calculator.CurrentStreak() > 0
}

// LastActivityDate is the most recent day with activity, or nil.
func (calculator *StreakCalculator) LastActivityDate() *time.Time {
	if len(calculator.days) == 0 {
		return nil
	}
	last := calculator.days[0]
	return &last
}

// Category classifies the streak: no activity, at risk, long-running, or building.
func (calculator *StreakCalculator) Category() Category {
	switch current := calculator.CurrentStreak(); {
	case current == 0:
		return CategoryNoActivity
	case calculator.IsAtRisk():
		return CategoryAtRisk
	case current >= LongRunningDays:
		return CategoryLongRunning
	default:
		return CategoryBuilding
	}
}

// Streak assembles the full view.
func (calculator *StreakCalculator) Streak() ReadingStreak {
	current := calculator.CurrentStreak()
	category := calculator.Category()

	return ReadingStreak{
		CurrentStreak:    current,
		LongestStreak:    calculator.LongestStreak(),
		TotalDaysRead:    calculator.TotalDaysRead(),
		IsActiveToday:    calculator.IsActiveToday(),
		LastActivityDate: calculator.LastActivityDate(),
		IsAtRisk:         calculator.IsAtRisk(),
		Category:         category,
		Message:          message(category, current),
	}
}

func (calculator *StreakCalculator) has(day time.Time) bool {
	_, ok := calculator.set[day]
	return ok
}

func previousDay(day time.Time) time.Time {
	return day.AddDate(0, 0, -1)
}

func message(category Category, current int) string {
	switch category {
	case CategoryNoActivity:
		return "Read a few pages today to start a streak."
	case CategoryAtRisk:
		return fmt.Sprintf("Your %d-day streak ends tonight. Read something today to keep it.", current)
	case CategoryLongRunning:
		return fmt.Sprintf("%d days in a row. Keep going!", current)
	default:
		if current == 1 {
			return "Day one done. Come back tomorrow."
		}
		return fmt.Sprintf("%d days in a row.", current)
	}
}
