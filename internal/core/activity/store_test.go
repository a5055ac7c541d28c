// Copyright (c) 2026 Shelfmark. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package activity_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/shelfmark/internal/core/activity"
	"github.com/taibuivan/shelfmark/internal/platform/sqlite/sqlitetest"
)

/*
TestActivityRepository_Contract checks range filtering and ordering on each implementation.
*/
func TestActivityRepository_Contract(t *testing.T) {
	repositories := map[string]activity.ActivityRepository{
		"memory": activity.NewMemoryRepository(),
		"sqlite": activity.NewSQLiteRepository(sqlitetest.Open(t)),
	}

	day := func(d int) time.Time { return time.Date(2026, 5, d, 0, 0, 0, 0, time.UTC) }

	for name, repository := range repositories {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			for i, d := range []int{3, 1, 5, 3} {
				require.NoError(t, repository.Create(ctx, &activity.ReadingActivity{
					ID:           fmt.Sprintf("0190a4c2-0000-7000-8000-0000000000d%d", i),
					UserID:       alice,
					ActivityDate: day(d),
					MinutesRead:  10 * (i + 1),
					CreatedAt:    day(d).Add(time.Duration(i) * time.Minute),
				}))
			}
			require.NoError(t, repository.Create(ctx, &activity.ReadingActivity{
				ID: "0190a4c2-0000-7000-8000-0000000000e1", UserID: bob, ActivityDate: day(3), CreatedAt: day(3),
			}))

			all, err := repository.FindByUser(ctx, alice, activity.DateRange{})
			require.NoError(t, err)
			require.Len(t, all, 4)
			assert.Equal(t, day(5), all[0].ActivityDate)
			assert.Equal(t, "0190a4c2-0000-7000-8000-0000000000d3", all[1].ID, "same day, latest first")
			assert.Equal(t, day(1), all[3].ActivityDate)
			assert.Nil(t, all[0].BookID)

			// Bounds are whole days, whatever the time of day.
			from := day(2).Add(15 * time.Hour)
			to := day(3).Add(23 * time.Hour)
			window, err := repository.FindByUser(ctx, alice, activity.DateRange{From: &from, To: &to})
			require.NoError(t, err)
			require.Len(t, window, 2)
			for _, a := range window {
				assert.Equal(t, day(3), a.ActivityDate)
			}

			page, total, err := repository.ListByUser(ctx, alice, activity.DateRange{}, 2, 2)
			require.NoError(t, err)
			assert.Equal(t, 4, total)
			require.Len(t, page, 2)
			assert.Equal(t, all[2].ID, page[0].ID)
			assert.Equal(t, all[3].ID, page[1].ID)

			past, total, err := repository.ListByUser(ctx, alice, activity.DateRange{}, 2, 10)
			require.NoError(t, err)
			assert.Empty(t, past)
			assert.Equal(t, 4, total, "a page past the end still reports the total")

			_, total, err = repository.ListByUser(ctx, alice, activity.DateRange{From: &from, To: &to}, 1, 0)
			require.NoError(t, err)
			assert.Equal(t, 2, total)
		})
	}
}
