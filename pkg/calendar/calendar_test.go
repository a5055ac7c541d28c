// Copyright (c) 2026 Shelfmark. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package calendar_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/shelfmark/pkg/calendar"
)

func TestMoment_UnmarshalJSON(t *testing.T) {
	var payload struct {
		Day     calendar.Moment  `json:"day"`
		Instant calendar.Moment  `json:"instant"`
		Missing *calendar.Moment `json:"missing"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"day":"2026-01-31","instant":"2026-01-31T18:30:00+09:00","missing":null}`), &payload))

	assert.True(t, payload.Day.DateOnly)
	assert.Equal(t, time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC), payload.Day.Time)
	assert.False(t, payload.Instant.DateOnly)
	assert.True(t, payload.Instant.Equal(time.Date(2026, 1, 31, 9, 30, 0, 0, time.UTC)))
	assert.Nil(t, payload.Missing)

	assert.Error(t, json.Unmarshal([]byte(`{"day":"31/01/2026"}`), &payload))
	assert.Error(t, json.Unmarshal([]byte(`{"day":20260131}`), &payload))
}

func TestMoment_Bounds(t *testing.T) {
	tokyo, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)

	day := calendar.Date(2026, 1, 31)
	assert.Equal(t, time.Date(2026, 1, 31, 0, 0, 0, 0, tokyo), day.StartIn(tokyo))
	assert.Equal(t, time.Date(2026, 1, 31, 23, 59, 59, 999999999, time.UTC), day.EndIn(time.UTC))

	leap := calendar.Date(2028, 2, 29)
	assert.Equal(t, time.Date(2028, 3, 1, 0, 0, 0, 0, time.UTC), leap.EndIn(time.UTC).Add(time.Nanosecond))

	instant := calendar.At(time.Date(2026, 1, 31, 12, 0, 0, 0, time.UTC))
	assert.Equal(t, instant.Time, instant.StartIn(tokyo))
	assert.Equal(t, instant.Time, instant.EndIn(tokyo))
}

func TestMoment_MarshalJSON(t *testing.T) {
	encoded, err := json.Marshal(calendar.Date(2026, 4, 20))
	require.NoError(t, err)
	assert.JSONEq(t, `"2026-04-20"`, string(encoded))

	encoded, err = json.Marshal(calendar.At(time.Date(2026, 4, 20, 8, 0, 0, 0, time.UTC)))
	require.NoError(t, err)
	assert.JSONEq(t, `"2026-04-20T08:00:00Z"`, string(encoded))
}
