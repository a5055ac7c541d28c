// Copyright (c) 2026 Shelfmark. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package activity

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/taibuivan/shelfmark/internal/platform/database/schema"
	"github.com/taibuivan/shelfmark/internal/platform/dberr"
	"github.com/taibuivan/shelfmark/internal/platform/sqlite"
)

// SQLiteRepository implements [ActivityRepository] on a single-file database.
// Activity days are stored as YYYY-MM-DD text.
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository constructs a [SQLiteRepository].
func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func sqliteWhere(userID string, dateRange DateRange) (string, []any) {
	where := fmt.Sprintf("%s = ?", schema.LibraryReadingActivity.UserID)
	args := []any{userID}

	if dateRange.From != nil {
		where += fmt.Sprintf(" AND %s >= ?", schema.LibraryReadingActivity.ActivityDate)
		args = append(args, Day(*dateRange.From).Format(sqlite.DateLayout))
	}
	if dateRange.To != nil {
		where += fmt.Sprintf(" AND %s <= ?", schema.LibraryReadingActivity.ActivityDate)
		args = append(args, Day(*dateRange.To).Format(sqlite.DateLayout))
	}
	return where, args
}

func (repository *SQLiteRepository) FindByUser(context context.Context, userID string, dateRange DateRange) ([]*ReadingActivity, error) {
	where, args := sqliteWhere(userID, dateRange)
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s`, activityColumns, schema.LibraryReadingActivity.Name, where) + activityOrder

	rows, err := repository.db.QueryContext(context, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, resourceActivity, "list")
	}
	defer rows.Close()

	activities := make([]*ReadingActivity, 0)
	for rows.Next() {
		activity, err := scanSQLiteActivity(rows)
		if err != nil {
			return nil, err
		}
		activities = append(activities, activity)
	}

	return activities, dberr.Wrap(rows.Err(), resourceActivity, "list")
}

// ListByUser pages through the log with the same window count as the Postgres store.
func (repository *SQLiteRepository) ListByUser(context context.Context, userID string, dateRange DateRange, limit, offset int) ([]*ReadingActivity, int, error) {
	where, args := sqliteWhere(userID, dateRange)
	query := fmt.Sprintf(`SELECT %s, COUNT(*) OVER() AS total_count FROM %s WHERE %s`,
		activityColumns, schema.LibraryReadingActivity.Name, where,
	) + activityOrder + " LIMIT ? OFFSET ?"

	rows, err := repository.db.QueryContext(context, query, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, resourceActivity, "list")
	}
	defer rows.Close()

	activities := make([]*ReadingActivity, 0, limit)
	var total int
	for rows.Next() {
		activity, err := scanSQLiteActivity(rows, &total)
		if err != nil {
			return nil, 0, err
		}
		activities = append(activities, activity)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, resourceActivity, "list")
	}

	if len(activities) == 0 && offset > 0 {
		count := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE %s`, schema.LibraryReadingActivity.Name, where)
		if err := repository.db.QueryRowContext(context, count, args...).Scan(&total); err != nil {
			return nil, 0, dberr.Wrap(err, resourceActivity, "count")
		}
	}
	return activities, total, nil
}

func (repository *SQLiteRepository) Create(context context.Context, activity *ReadingActivity) error {
	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		schema.LibraryReadingActivity.Name, activityColumns,
	)

	_, err := repository.db.ExecContext(context, query,
		activity.ID, activity.UserID, activity.BookID, Day(activity.ActivityDate).Format(sqlite.DateLayout),
		activity.MinutesRead, activity.PagesRead, sqlite.FormatTime(activity.CreatedAt),
	)
	return dberr.Wrap(err, resourceActivity, "create")
}

func scanSQLiteActivity(rows *sql.Rows, extra ...any) (*ReadingActivity, error) {
	var (
		activity                ReadingActivity
		activityDate, createdAt string
	)
	targets := append([]any{
		&activity.ID, &activity.UserID, &activity.BookID, &activityDate,
		&activity.MinutesRead, &activity.PagesRead, &createdAt,
	}, extra...)

	if err := rows.Scan(targets...); err != nil {
		return nil, dberr.Wrap(err, resourceActivity, "scan")
	}

	var err error
	if activity.ActivityDate, err = time.Parse(sqlite.DateLayout, activityDate); err != nil {
		return nil, dberr.Wrap(err, resourceActivity, "decode")
	}
	if activity.CreatedAt, err = sqlite.ParseTime(createdAt); err != nil {
		return nil, dberr.Wrap(err, resourceActivity, "decode")
	}
	return &activity, nil
}
