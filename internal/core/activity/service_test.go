// Copyright (c) 2026 Shelfmark. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package activity_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/shelfmark/internal/core/activity"
	"github.com/taibuivan/shelfmark/internal/core/book"
	"github.com/taibuivan/shelfmark/internal/platform/apperr"
	"github.com/taibuivan/shelfmark/pkg/calendar"
	"github.com/taibuivan/shelfmark/pkg/pointer"
)

const (
	alice = "0190a4c2-0000-7000-8000-000000000001"
	bob   = "0190a4c2-0000-7000-8000-000000000002"
)

func newService(t *testing.T, location *time.Location) (*activity.Service, *book.MemoryRepository) {
	t.Helper()

	books := book.NewMemoryRepository()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return activity.NewService(activity.NewMemoryRepository(), books, location, logger), books
}

/*
TestLogActivity_NormalisesDay stores the calendar day of the configured zone.
*/
func TestLogActivity_NormalisesDay(t *testing.T) {
	tokyo, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)
	service, _ := newService(t, tokyo)

	// 16:00 UTC on the 19th is already the 20th in Tokyo.
	at := calendar.At(time.Date(2026, 4, 19, 16, 0, 0, 0, time.UTC))
	logged, err := service.LogActivity(context.Background(), alice, activity.NewActivity{
		ActivityDate: &at,
		MinutesRead:  25,
		PagesRead:    12,
	})
	require.NoError(t, err)

	assert.Equal(t, time.Date(2026, 4, 20, 0, 0, 0, 0, time.UTC), logged.ActivityDate)
	assert.NotEmpty(t, logged.ID)

	// A bare date is already a day and is stored unchanged.
	day := calendar.Date(2026, 4, 19)
	dated, err := service.LogActivity(context.Background(), alice, activity.NewActivity{ActivityDate: &day})
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 4, 19, 0, 0, 0, 0, time.UTC), dated.ActivityDate)
}

/*
TestLogActivity_Validation rejects negative counts and foreign books.
*/
func TestLogActivity_Validation(t *testing.T) {
	service, books := newService(t, time.UTC)
	ctx := context.Background()

	_, err := service.LogActivity(ctx, alice, activity.NewActivity{MinutesRead: -1, PagesRead: -5})
	require.Error(t, err)
	assert.Len(t, apperr.As(err).Details, 2)

	bookID := "0190a4c2-0000-7000-8000-0000000000b1"
	require.NoError(t, books.Create(ctx, &book.Book{ID: bookID, UserID: bob, Title: "Theirs", Status: book.StatusReading}))

	_, err = service.LogActivity(ctx, alice, activity.NewActivity{BookID: pointer.To(bookID), MinutesRead: 10})
	assert.True(t, apperr.HasCode(err, apperr.CodeUnauthorized))

	_, err = service.LogActivity(ctx, alice, activity.NewActivity{BookID: pointer.To("not-a-uuid")})
	assert.True(t, apperr.HasCode(err, apperr.CodeValidation))

	logged, err := service.LogActivity(ctx, bob, activity.NewActivity{BookID: pointer.To(bookID), PagesRead: 30})
	require.NoError(t, err)
	assert.Equal(t, bookID, *logged.BookID)
}

/*
TestGetStreak aggregates several sessions per day.
*/
func TestGetStreak(t *testing.T) {
	service, _ := newService(t, time.UTC)
	ctx := context.Background()
	now := time.Date(2026, 4, 20, 21, 0, 0, 0, time.UTC)

	for _, offset := range []int{0, 0, 1, 2, 2, 2} {
		at := calendar.At(now.AddDate(0, 0, -offset))
		_, err := service.LogActivity(ctx, alice, activity.NewActivity{ActivityDate: &at, MinutesRead: 15})
		require.NoError(t, err)
	}

	streak, err := service.GetStreak(ctx, alice, now)
	require.NoError(t, err)
	assert.Equal(t, 3, streak.CurrentStreak)
	assert.Equal(t, 3, streak.TotalDaysRead)
	assert.True(t, streak.IsActiveToday)

	empty, err := service.GetStreak(ctx, bob, now)
	require.NoError(t, err)
	assert.Equal(t, activity.CategoryNoActivity, empty.Category)
	assert.Nil(t, empty.LastActivityDate)
}

/*
TestGetStreak_SameZoneAsLog counts a session logged late in UTC as today in
a zone that has already crossed midnight.
*/
func TestGetStreak_SameZoneAsLog(t *testing.T) {
	tokyo, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)
	service, _ := newService(t, tokyo)
	ctx := context.Background()

	// 23:00 UTC on the 20th is 08:00 on the 21st in Tokyo.
	now := time.Date(2026, 4, 20, 23, 0, 0, 0, time.UTC)
	earlier := calendar.At(time.Date(2026, 4, 20, 10, 0, 0, 0, time.UTC))
	current := calendar.At(now)

	_, err = service.LogActivity(ctx, alice, activity.NewActivity{ActivityDate: &earlier})
	require.NoError(t, err)
	_, err = service.LogActivity(ctx, alice, activity.NewActivity{ActivityDate: &current})
	require.NoError(t, err)

	streak, err := service.GetStreak(ctx, alice, now)
	require.NoError(t, err)
	assert.True(t, streak.IsActiveToday)
	assert.False(t, streak.IsAtRisk)
	assert.Equal(t, 2, streak.CurrentStreak)
	require.NotNil(t, streak.LastActivityDate)
	assert.Equal(t, time.Date(2026, 4, 21, 0, 0, 0, 0, time.UTC), *streak.LastActivityDate)

	// The same sessions read from a UTC server fall on a single day.
	utcService, _ := newService(t, time.UTC)
	for _, at := range []calendar.Moment{earlier, current} {
		_, err = utcService.LogActivity(ctx, alice, activity.NewActivity{ActivityDate: &at})
		require.NoError(t, err)
	}
	inUTC, err := utcService.GetStreak(ctx, alice, now)
	require.NoError(t, err)
	assert.True(t, inUTC.IsActiveToday)
	assert.Equal(t, 1, inUTC.CurrentStreak)
}

/*
TestListActivities filters by an inclusive day range.
*/
func TestListActivities(t *testing.T) {
	service, _ := newService(t, time.UTC)
	ctx := context.Background()

	for day := 1; day <= 5; day++ {
		at := calendar.Date(2026, 4, day)
		_, err := service.LogActivity(ctx, alice, activity.NewActivity{ActivityDate: &at, PagesRead: day})
		require.NoError(t, err)
	}

	from := time.Date(2026, 4, 2, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 4, 4, 0, 0, 0, 0, time.UTC)
	found, total, err := service.ListActivities(ctx, alice, activity.DateRange{From: &from, To: &to}, 20, 0)
	require.NoError(t, err)

	assert.Equal(t, 3, total)
	require.Len(t, found, 3)
	assert.Equal(t, 4, found[0].PagesRead)
	assert.Equal(t, 2, found[2].PagesRead)

	second, total, err := service.ListActivities(ctx, alice, activity.DateRange{}, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, 5, total)
	require.Len(t, second, 2)
	assert.Equal(t, 3, second[0].PagesRead)

	_, _, err = service.ListActivities(ctx, alice, activity.DateRange{From: &to, To: &from}, 20, 0)
	assert.True(t, apperr.HasCode(err, apperr.CodeValidation))
}
