// Copyright (c) 2026 Shelfmark. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package book

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/shelfmark/internal/platform/database/schema"
	"github.com/taibuivan/shelfmark/internal/platform/dberr"
)

const resourceBook = "Book"

// PostgresRepository implements [BookRepository] on library.book.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository constructs a [PostgresRepository].
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// bookColumns is the select list matching [scanBook].
var bookColumns = strings.Join(append(schema.LibraryBook.Columns(), schema.LibraryBook.UpdatedAt), ", ")

func (repository *PostgresRepository) FindByUser(context context.Context, userID string, filter Filter) ([]*Book, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		bookColumns, schema.LibraryBook.Table, schema.LibraryBook.UserID,
	)
	args := []any{userID}

	if filter.Status != "" {
		args = append(args, string(filter.Status))
		query += fmt.Sprintf(" AND %s = $%d", schema.LibraryBook.Status, len(args))
	}

	if len(filter.Genres) > 0 {
		args = append(args, filter.Genres)
		query += fmt.Sprintf(" AND %s @> $%d", schema.LibraryBook.Genres, len(args))
	}

	query += fmt.Sprintf(" ORDER BY %s DESC, %s DESC", schema.LibraryBook.AddedAt, schema.LibraryBook.ID)

	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, resourceBook, "list")
	}
	defer rows.Close()

	books := make([]*Book, 0)
	for rows.Next() {
		book, err := scanBook(rows)
		if err != nil {
			return nil, dberr.Wrap(err, resourceBook, "scan")
		}
		books = append(books, book)
	}

	return books, dberr.Wrap(rows.Err(), resourceBook, "list")
}

func (repository *PostgresRepository) FindByUserAndStatus(context context.Context, userID string, status Status) ([]*Book, error) {
	return repository.FindByUser(context, userID, Filter{Status: status})
}

func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Book, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		bookColumns, schema.LibraryBook.Table, schema.LibraryBook.ID,
	)

	book, err := scanBook(repository.db.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, resourceBook, "get")
	}
	return book, nil
}

func (repository *PostgresRepository) Create(context context.Context, book *Book) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`, schema.LibraryBook.Table, strings.Join(schema.LibraryBook.Columns(), ", "), schema.LibraryBook.UpdatedAt)

	_, err := repository.db.Exec(context, query,
		book.ID, book.UserID, book.ExternalID, book.Title, book.Authors, string(book.Status),
		book.CurrentPage, book.PageCount, book.Rating, book.Genres, book.AddedAt, book.FinishedAt,
		book.UpdatedAt,
	)
	return dberr.Wrap(err, resourceBook, "create")
}

/*
Update builds a SET clause from the non-nil fields of patch.

Description: Clear flags become explicit NULL assignments so the
book_finished_only_when_read constraint sees the whole change at once.
*/
func (repository *PostgresRepository) Update(context context.Context, id string, patch Patch) (*Book, error) {
	args := []any{id}
	var sets []string

	set := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if patch.Status != nil {
		set(schema.LibraryBook.Status, string(*patch.Status))
	}
	if patch.CurrentPage != nil {
		set(schema.LibraryBook.CurrentPage, *patch.CurrentPage)
	}

	switch {
	case patch.ClearRating:
		sets = append(sets, schema.LibraryBook.Rating+" = NULL")
	case patch.Rating != nil:
		set(schema.LibraryBook.Rating, *patch.Rating)
	}

	switch {
	case patch.ClearFinishedAt:
		sets = append(sets, schema.LibraryBook.FinishedAt+" = NULL")
	case patch.FinishedAt != nil:
		set(schema.LibraryBook.FinishedAt, *patch.FinishedAt)
	}

	sets = append(sets, schema.LibraryBook.UpdatedAt+" = NOW()")

	query := fmt.Sprintf(`UPDATE %s SET %s WHERE %s = $1 RETURNING %s`,
		schema.LibraryBook.Table, strings.Join(sets, ", "), schema.LibraryBook.ID, bookColumns,
	)

	book, err := scanBook(repository.db.QueryRow(context, query, args...))
	if err != nil {
		return nil, dberr.Wrap(err, resourceBook, "update")
	}
	return book, nil
}

func (repository *PostgresRepository) Delete(context context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.LibraryBook.Table, schema.LibraryBook.ID)

	command, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, resourceBook, "delete")
	}

	if command.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, resourceBook, "delete")
	}
	return nil
}

// scanBook reads one row in [bookColumns] order.
func scanBook(row pgx.Row) (*Book, error) {
	var (
		book   Book
		status string
	)

	err := row.Scan(
		&book.ID, &book.UserID, &book.ExternalID, &book.Title, &book.Authors, &status,
		&book.CurrentPage, &book.PageCount, &book.Rating, &book.Genres, &book.AddedAt,
		&book.FinishedAt, &book.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	book.Status = Status(status)
	return &book, nil
}
