// Copyright (c) 2026 Shelfmark. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sqlite_test

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/shelfmark/internal/platform/sqlite"
)

/*
TestOpen creates missing directories and enables foreign keys.
*/
func TestOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "shelf.db")
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	db, err := sqlite.Open(context.Background(), path, logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	var foreignKeys int
	require.NoError(t, db.QueryRow("PRAGMA foreign_keys").Scan(&foreignKeys))
	assert.Equal(t, 1, foreignKeys)
	assert.FileExists(t, path)
}

/*
TestTimeRoundTrip keeps instants and sorts lexically.
*/
func TestTimeRoundTrip(t *testing.T) {
	paris, err := time.LoadLocation("Europe/Paris")
	require.NoError(t, err)

	early := time.Date(2026, 3, 1, 9, 30, 0, 500, paris)
	late := early.Add(time.Second)

	parsed, err := sqlite.ParseTime(sqlite.FormatTime(early))
	require.NoError(t, err)
	assert.True(t, parsed.Equal(early))
	assert.Less(t, sqlite.FormatTime(early), sqlite.FormatTime(late))

	none, err := sqlite.ParseNullTime(sqlite.NullTime(nil))
	require.NoError(t, err)
	assert.Nil(t, none)

	some, err := sqlite.ParseNullTime(sql.NullString{String: sqlite.FormatTime(late), Valid: true})
	require.NoError(t, err)
	require.NotNil(t, some)
	assert.True(t, some.Equal(late))
}
