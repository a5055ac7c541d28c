// Copyright (c) 2026 Shelfmark. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package sqlite opens the single-file database behind STORAGE_DRIVER=sqlite.
//
// It targets self-hosted, single-instance deployments. The driver is the
// pure-Go modernc.org/sqlite, so the binary stays cgo-free.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	// Registers the "sqlite" database/sql driver.
	_ "modernc.org/sqlite"
)

// TimeLayout is the fixed-width UTC layout timestamps are stored with, so
// lexical order equals chronological order.
const TimeLayout = "2006-01-02T15:04:05.000000000Z"

// DateLayout stores calendar days.
const DateLayout = time.DateOnly

const pingTimeout = 2 * time.Second

// Open creates the parent directory if needed, opens the database file at
// path and verifies the connection.
//
// SQLite allows one writer at a time, so the pool is capped at a single
// connection and writers queue in Go instead of failing with SQLITE_BUSY.
func Open(ctx context.Context, path string, logger *slog.Logger) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("sqlite: failed to create database directory: %w", err)
	}

	dsn := fmt.Sprintf("file:%s?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", path)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite: failed to open %s: %w", path, err)
	}
	db.SetMaxOpenConns(1)

	if err := Ping(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	logger.Info("sqlite_database_opened", slog.String("path", path))
	return db, nil
}

// Ping verifies that the database file is reachable.
func Ping(ctx context.Context, db *sql.DB) error {
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		return fmt.Errorf("sqlite: ping failed: %w", err)
	}
	return nil
}

// FormatTime renders t in [TimeLayout].
func FormatTime(t time.Time) string {
	return t.UTC().Format(TimeLayout)
}

// ParseTime reads a value written by [FormatTime].
func ParseTime(value string) (time.Time, error) {
	return time.Parse(TimeLayout, value)
}

// NullTime maps a nil pointer to SQL NULL.
func NullTime(t *time.Time) sql.NullString {
	if t == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: FormatTime(*t), Valid: true}
}

// ParseNullTime is the inverse of [NullTime].
func ParseNullTime(value sql.NullString) (*time.Time, error) {
	if !value.Valid {
		return nil, nil
	}
	t, err := ParseTime(value.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
