// Copyright (c) 2026 Shelfmark. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package goal

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/shelfmark/internal/platform/database/schema"
	"github.com/taibuivan/shelfmark/internal/platform/dberr"
)

const resourceGoal = "Goal"

// PostgresRepository implements [GoalRepository] on library.goal.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository constructs a [PostgresRepository].
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

var goalColumns = strings.Join(schema.LibraryGoal.Columns(), ", ")

func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Goal, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		goalColumns, schema.LibraryGoal.Table, schema.LibraryGoal.ID,
	)

	goal, err := scanGoal(repository.db.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, resourceGoal, "get")
	}
	return goal, nil
}

func (repository *PostgresRepository) FindByUser(context context.Context, userID string) ([]*Goal, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 ORDER BY %s DESC, %s DESC`,
		goalColumns, schema.LibraryGoal.Table, schema.LibraryGoal.UserID,
		schema.LibraryGoal.StartDate, schema.LibraryGoal.CreatedAt,
	)

	rows, err := repository.db.Query(context, query, userID)
	if err != nil {
		return nil, dberr.Wrap(err, resourceGoal, "list")
	}
	defer rows.Close()

	goals := make([]*Goal, 0)
	for rows.Next() {
		goal, err := scanGoal(rows)
		if err != nil {
			return nil, dberr.Wrap(err, resourceGoal, "scan")
		}
		goals = append(goals, goal)
	}

	return goals, dberr.Wrap(rows.Err(), resourceGoal, "list")
}

func (repository *PostgresRepository) Create(context context.Context, goal *Goal) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`, schema.LibraryGoal.Table, goalColumns)

	_, err := repository.db.Exec(context, query,
		goal.ID, goal.UserID, goal.Title, goal.Description, goal.TargetBooks, goal.CurrentBooks,
		goal.StartDate, goal.EndDate, goal.Completed, goal.CreatedAt, goal.UpdatedAt,
	)
	return dberr.Wrap(err, resourceGoal, "create")
}

func (repository *PostgresRepository) Update(context context.Context, id string, update Update) (*Goal, error) {
	args := []any{id}
	var sets []string

	if update.CurrentBooks != nil {
		args = append(args, *update.CurrentBooks)
		sets = append(sets, fmt.Sprintf("%s = $%d", schema.LibraryGoal.CurrentBooks, len(args)))
	}
	if update.Completed != nil {
		args = append(args, *update.Completed)
		sets = append(sets, fmt.Sprintf("%s = $%d", schema.LibraryGoal.Completed, len(args)))
	}
	sets = append(sets, schema.LibraryGoal.UpdatedAt+" = NOW()")

	query := fmt.Sprintf(`UPDATE %s SET %s WHERE %s = $1 RETURNING %s`,
		schema.LibraryGoal.Table, strings.Join(sets, ", "), schema.LibraryGoal.ID, goalColumns,
	)

	goal, err := scanGoal(repository.db.QueryRow(context, query, args...))
	if err != nil {
		return nil, dberr.Wrap(err, resourceGoal, "update")
	}
	return goal, nil
}

func (repository *PostgresRepository) Delete(context context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.LibraryGoal.Table, schema.LibraryGoal.ID)

	command, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, resourceGoal, "delete")
	}

	if command.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, resourceGoal, "delete")
	}
	return nil
}

func scanGoal(row pgx.Row) (*Goal, error) {
	var goal Goal
	err := row.Scan(
		&goal.ID, &goal.UserID, &goal.Title, &goal.Description, &goal.TargetBooks, &goal.CurrentBooks,
		&goal.StartDate, &goal.EndDate, &goal.Completed, &goal.CreatedAt, &goal.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &goal, nil
}
