// Copyright (c) 2026 Shelfmark. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package activity

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/shelfmark/internal/platform/database/schema"
	"github.com/taibuivan/shelfmark/internal/platform/dberr"
)

const resourceActivity = "Reading activity"

// PostgresRepository implements [ActivityRepository] on library.readingactivity.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository constructs a [PostgresRepository].
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

var activityColumns = strings.Join(schema.LibraryReadingActivity.Columns(), ", ")

// postgresWhere selects the user's activities inside dateRange.
func postgresWhere(userID string, dateRange DateRange) (string, []any) {
	where := fmt.Sprintf("%s = $1", schema.LibraryReadingActivity.UserID)
	args := []any{userID}

	if dateRange.From != nil {
		args = append(args, Day(*dateRange.From))
		where += fmt.Sprintf(" AND %s >= $%d", schema.LibraryReadingActivity.ActivityDate, len(args))
	}
	if dateRange.To != nil {
		args = append(args, Day(*dateRange.To))
		where += fmt.Sprintf(" AND %s <= $%d", schema.LibraryReadingActivity.ActivityDate, len(args))
	}
	return where, args
}

var activityOrder = fmt.Sprintf(" ORDER BY %s DESC, %s DESC",
	schema.LibraryReadingActivity.ActivityDate, schema.LibraryReadingActivity.CreatedAt,
)

func (repository *PostgresRepository) FindByUser(context context.Context, userID string, dateRange DateRange) ([]*ReadingActivity, error) {
	where, args := postgresWhere(userID, dateRange)
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s`, activityColumns, schema.LibraryReadingActivity.Table, where) + activityOrder

	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, resourceActivity, "list")
	}
	defer rows.Close()

	activities := make([]*ReadingActivity, 0)
	for rows.Next() {
		activity, err := scanPostgresActivity(rows)
		if err != nil {
			return nil, err
		}
		activities = append(activities, activity)
	}

	return activities, dberr.Wrap(rows.Err(), resourceActivity, "list")
}

/*
ListByUser returns one page of the user's log and the size of the whole range.

Description: The total rides along each row through COUNT(*) OVER(). A page
past the end has no rows to carry it, so it is counted separately.
*/
func (repository *PostgresRepository) ListByUser(context context.Context, userID string, dateRange DateRange, limit, offset int) ([]*ReadingActivity, int, error) {
	where, args := postgresWhere(userID, dateRange)
	query := fmt.Sprintf(`SELECT %s, COUNT(*) OVER() AS total_count FROM %s WHERE %s`,
		activityColumns, schema.LibraryReadingActivity.Table, where,
	) + activityOrder + fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)

	rows, err := repository.db.Query(context, query, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, resourceActivity, "list")
	}
	defer rows.Close()

	activities := make([]*ReadingActivity, 0, limit)
	var total int
	for rows.Next() {
		activity, err := scanPostgresActivity(rows, &total)
		if err != nil {
			return nil, 0, err
		}
		activities = append(activities, activity)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, resourceActivity, "list")
	}

	if len(activities) == 0 && offset > 0 {
		count := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE %s`, schema.LibraryReadingActivity.Table, where)
		if err := repository.db.QueryRow(context, count, args...).Scan(&total); err != nil {
			return nil, 0, dberr.Wrap(err, resourceActivity, "count")
		}
	}
	return activities, total, nil
}

func (repository *PostgresRepository) Create(context context.Context, activity *ReadingActivity) error {
	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		schema.LibraryReadingActivity.Table, activityColumns,
	)

	_, err := repository.db.Exec(context, query,
		activity.ID, activity.UserID, activity.BookID, activity.ActivityDate,
		activity.MinutesRead, activity.PagesRead, activity.CreatedAt,
	)
	return dberr.Wrap(err, resourceActivity, "create")
}

func scanPostgresActivity(rows pgx.Rows, extra ...any) (*ReadingActivity, error) {
	var activity ReadingActivity
	targets := append([]any{
		&activity.ID, &activity.UserID, &activity.BookID, &activity.ActivityDate,
		&activity.MinutesRead, &activity.PagesRead, &activity.CreatedAt,
	}, extra...)

	if err := rows.Scan(targets...); err != nil {
		return nil, dberr.Wrap(err, resourceActivity, "scan")
	}
	return &activity, nil
}
