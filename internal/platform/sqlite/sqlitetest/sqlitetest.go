// Copyright (c) 2026 Shelfmark. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package sqlitetest opens migrated throwaway SQLite databases for repository tests.
package sqlitetest

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/taibuivan/shelfmark/internal/platform/migration"
	"github.com/taibuivan/shelfmark/internal/platform/sqlite"
)

// Open returns a database in t.TempDir() with every SQLite migration applied.
// It is closed when the test ends.
func Open(t *testing.T) *sql.DB {
	t.Helper()

	_, file, _, ok := runtime.Caller(0)
	require.True(t, ok, "locate sqlitetest source")
	migrations := filepath.Join(filepath.Dir(file), "..", "..", "..", "..", "data", "migrations", "sqlite")

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	path := filepath.Join(t.TempDir(), "shelfmark.db")

	require.NoError(t, migration.RunUpSQLite(path, migrations, logger))

	db, err := sqlite.Open(context.Background(), path, logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return db
}
