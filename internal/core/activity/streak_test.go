// Copyright (c) 2026 Shelfmark. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package activity_test

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/shelfmark/internal/core/activity"
)

var today = time.Date(2026, 4, 20, 0, 0, 0, 0, time.UTC)

// logAt builds one activity per day offset before today (0 = today).
func logAt(offsets ...int) []*activity.ReadingActivity {
	activities := make([]*activity.ReadingActivity, 0, len(offsets))
	for _, offset := range offsets {
		activities = append(activities, &activity.ReadingActivity{
			ActivityDate: today.AddDate(0, 0, -offset).Add(13 * time.Hour),
			MinutesRead:  20,
		})
	}
	return activities
}

/*
TestStreak_Table covers the anchoring, gap and risk rules.
*/
func TestStreak_Table(t *testing.T) {
	tests := []struct {
		name     string
		offsets  []int
		current  int
		longest  int
		total    int
		active   bool
		atRisk   bool
		category activity.Category
	}{
		{"empty log", nil, 0, 0, 0, false, false, activity.CategoryNoActivity},
		{"four consecutive days", []int{0, 1, 2, 3}, 4, 4, 4, true, false, activity.CategoryBuilding},
		{"gap two days ago", []int{0, 1, 3, 4}, 2, 2, 4, true, false, activity.CategoryBuilding},
		{"only yesterday", []int{1}, 1, 1, 1, false, true, activity.CategoryAtRisk},
		{"three days ago", []int{3}, 0, 1, 1, false, false, activity.CategoryNoActivity},
		{"duplicate today", []int{0, 0}, 1, 1, 1, true, false, activity.CategoryBuilding},
		{"old run is longest", []int{0, 10, 11, 12, 13, 14}, 1, 5, 6, true, false, activity.CategoryBuilding},
		{"week from yesterday", []int{1, 2, 3, 4, 5, 6, 7}, 7, 7, 7, false, true, activity.CategoryAtRisk},
		{"week including today", []int{6, 5, 4, 3, 2, 1, 0}, 7, 7, 7, true, false, activity.CategoryLongRunning},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			streak := activity.NewStreakCalculator(logAt(tt.offsets...), today).Streak()

			assert.Equal(t, tt.current, streak.CurrentStreak, "current")
			assert.Equal(t, tt.longest, streak.LongestStreak, "longest")
			assert.Equal(t, tt.total, streak.TotalDaysRead, "total")
			assert.Equal(t, tt.active, streak.IsActiveToday, "active today")
			assert.Equal(t, tt.atRisk, streak.IsAtRisk, "at risk")
			assert.Equal(t, tt.category, streak.Category)
			assert.NotEmpty(t, streak.Message)
		})
	}
}

/*
TestStreak_LastActivityDate returns the most recent day or nil.
*/
func TestStreak_LastActivityDate(t *testing.T) {
	assert.Nil(t, activity.NewStreakCalculator(nil, today).LastActivityDate())

	last := activity.NewStreakCalculator(logAt(5, 2, 9), today).LastActivityDate()
	require.NotNil(t, last)
	assert.Equal(t, today.AddDate(0, 0, -2), *last)
}

/*
TestStreak_ReferenceDayIgnoresClock accepts any time of day as the reference.
*/
func TestStreak_ReferenceDayIgnoresClock(t *testing.T) {
	lateNight := today.Add(23*time.Hour + 59*time.Minute)

	streak := activity.NewStreakCalculator(logAt(0, 1), lateNight).Streak()
	assert.Equal(t, 2, streak.CurrentStreak)
	assert.True(t, streak.IsActiveToday)
}

/*
TestStreak_AcrossMonthBoundary walks back over month and leap-day edges.
*/
func TestStreak_AcrossMonthBoundary(t *testing.T) {
	march1 := time.Date(2028, 3, 1, 0, 0, 0, 0, time.UTC)
	activities := []*activity.ReadingActivity{
		{ActivityDate: march1},
		{ActivityDate: time.Date(2028, 2, 29, 0, 0, 0, 0, time.UTC)},
		{ActivityDate: time.Date(2028, 2, 28, 0, 0, 0, 0, time.UTC)},
	}

	streak := activity.NewStreakCalculator(activities, march1).Streak()
	assert.Equal(t, 3, streak.CurrentStreak)
	assert.Equal(t, 3, streak.LongestStreak)
}

/*
TestDay keeps the calendar date of the input's own zone.
*/
func TestDay(t *testing.T) {
	tokyo, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)

	// 2026-04-20 01:30 in Tokyo is still 2026-04-19 in UTC.
	local := time.Date(2026, 4, 20, 1, 30, 0, 0, tokyo)

	assert.Equal(t, time.Date(2026, 4, 20, 0, 0, 0, 0, time.UTC), activity.Day(local))
	assert.Equal(t, time.Date(2026, 4, 19, 0, 0, 0, 0, time.UTC), activity.Day(local.UTC()))
}
