// Copyright (c) 2026 Shelfmark. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package goal

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/taibuivan/shelfmark/internal/platform/database/schema"
	"github.com/taibuivan/shelfmark/internal/platform/dberr"
	"github.com/taibuivan/shelfmark/internal/platform/sqlite"
)

// SQLiteRepository implements [GoalRepository] on a single-file database.
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository constructs a [SQLiteRepository].
func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (repository *SQLiteRepository) FindByID(context context.Context, id string) (*Goal, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = ?`,
		goalColumns, schema.LibraryGoal.Name, schema.LibraryGoal.ID,
	)

	goal, err := scanSQLiteGoal(repository.db.QueryRowContext(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, resourceGoal, "get")
	}
	return goal, nil
}

func (repository *SQLiteRepository) FindByUser(context context.Context, userID string) ([]*Goal, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = ? ORDER BY %s DESC, %s DESC`,
		goalColumns, schema.LibraryGoal.Name, schema.LibraryGoal.UserID,
		schema.LibraryGoal.StartDate, schema.LibraryGoal.CreatedAt,
	)

	rows, err := repository.db.QueryContext(context, query, userID)
	if err != nil {
		return nil, dberr.Wrap(err, resourceGoal, "list")
	}
	defer rows.Close()

	goals := make([]*Goal, 0)
	for rows.Next() {
		goal, err := scanSQLiteGoal(rows)
		if err != nil {
			return nil, dberr.Wrap(err, resourceGoal, "scan")
		}
		goals = append(goals, goal)
	}

	return goals, dberr.Wrap(rows.Err(), resourceGoal, "list")
}

func (repository *SQLiteRepository) Create(context context.Context, goal *Goal) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, schema.LibraryGoal.Name, goalColumns)

	_, err := repository.db.ExecContext(context, query,
		goal.ID, goal.UserID, goal.Title, goal.Description, goal.TargetBooks, goal.CurrentBooks,
		sqlite.FormatTime(goal.StartDate), sqlite.FormatTime(goal.EndDate), goal.Completed,
		sqlite.FormatTime(goal.CreatedAt), sqlite.FormatTime(goal.UpdatedAt),
	)
	return dberr.Wrap(err, resourceGoal, "create")
}

func (repository *SQLiteRepository) Update(context context.Context, id string, update Update) (*Goal, error) {
	var (
		sets []string
		args []any
	)

	if update.CurrentBooks != nil {
		sets = append(sets, schema.LibraryGoal.CurrentBooks+" = ?")
		args = append(args, *update.CurrentBooks)
	}
	if update.Completed != nil {
		sets = append(sets, schema.LibraryGoal.Completed+" = ?")
		args = append(args, *update.Completed)
	}
	sets = append(sets, schema.LibraryGoal.UpdatedAt+" = ?")
	args = append(args, sqlite.FormatTime(time.Now()), id)

	query := fmt.Sprintf(`UPDATE %s SET %s WHERE %s = ? RETURNING %s`,
		schema.LibraryGoal.Name, strings.Join(sets, ", "), schema.LibraryGoal.ID, goalColumns,
	)

	goal, err := scanSQLiteGoal(repository.db.QueryRowContext(context, query, args...))
	if err != nil {
		return nil, dberr.Wrap(err, resourceGoal, "update")
	}
	return goal, nil
}

func (repository *SQLiteRepository) Delete(context context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = ?`, schema.LibraryGoal.Name, schema.LibraryGoal.ID)

	result, err := repository.db.ExecContext(context, query, id)
	if err != nil {
		return dberr.Wrap(err, resourceGoal, "delete")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return dberr.Wrap(err, resourceGoal, "delete")
	}
	if affected == 0 {
		return dberr.Wrap(sql.ErrNoRows, resourceGoal, "delete")
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSQLiteGoal(row rowScanner) (*Goal, error) {
	var (
		goal                 Goal
		description          sql.NullString
		startDate, endDate   string
		createdAt, updatedAt string
	)

	err := row.Scan(
		&goal.ID, &goal.UserID, &goal.Title, &description, &goal.TargetBooks, &goal.CurrentBooks,
		&startDate, &endDate, &goal.Completed, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if description.Valid {
		goal.Description = &description.String
	}

	for _, field := range []struct {
		raw    string
		target *time.Time
	}{
		{startDate, &goal.StartDate},
		{endDate, &goal.EndDate},
		{createdAt, &goal.CreatedAt},
		{updatedAt, &goal.UpdatedAt},
	} {
		if *field.target, err = sqlite.ParseTime(field.raw); err != nil {
			return nil, err
		}
	}

	return &goal, nil
}
