// Copyright (c) 2026 Shelfmark. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package book

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/taibuivan/shelfmark/internal/platform/database/schema"
	"github.com/taibuivan/shelfmark/internal/platform/dberr"
	"github.com/taibuivan/shelfmark/internal/platform/sqlite"
)

// SQLiteRepository implements [BookRepository] on a single-file database.
// Authors and genres are stored as JSON arrays.
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository constructs a [SQLiteRepository].
func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (repository *SQLiteRepository) FindByUser(context context.Context, userID string, filter Filter) ([]*Book, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = ?`,
		bookColumns, schema.LibraryBook.Name, schema.LibraryBook.UserID,
	)
	args := []any{userID}

	if filter.Status != "" {
		query += fmt.Sprintf(" AND %s = ?", schema.LibraryBook.Status)
		args = append(args, string(filter.Status))
	}

	// Every requested genre must be present.
	for _, genre := range filter.Genres {
		query += fmt.Sprintf(" AND EXISTS (SELECT 1 FROM json_each(%s) WHERE value = ?)", schema.LibraryBook.Genres)
		args = append(args, genre)
	}

	query += fmt.Sprintf(" ORDER BY %s DESC, %s DESC", schema.LibraryBook.AddedAt, schema.LibraryBook.ID)

	rows, err := repository.db.QueryContext(context, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, resourceBook, "list")
	}
	defer rows.Close()

	books := make([]*Book, 0)
	for rows.Next() {
		book, err := scanSQLiteBook(rows)
		if err != nil {
			return nil, dberr.Wrap(err, resourceBook, "scan")
		}
		books = append(books, book)
	}

	return books, dberr.Wrap(rows.Err(), resourceBook, "list")
}

func (repository *SQLiteRepository) FindByUserAndStatus(context context.Context, userID string, status Status) ([]*Book, error) {
	return repository.FindByUser(context, userID, Filter{Status: status})
}

func (repository *SQLiteRepository) FindByID(context context.Context, id string) (*Book, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = ?`,
		bookColumns, schema.LibraryBook.Name, schema.LibraryBook.ID,
	)

	book, err := scanSQLiteBook(repository.db.QueryRowContext(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, resourceBook, "get")
	}
	return book, nil
}

func (repository *SQLiteRepository) Create(context context.Context, book *Book) error {
	authors, err := json.Marshal(nonNil(book.Authors))
	if err != nil {
		return dberr.Wrap(err, resourceBook, "encode")
	}
	genres, err := json.Marshal(nonNil(book.Genres))
	if err != nil {
		return dberr.Wrap(err, resourceBook, "encode")
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, schema.LibraryBook.Name, strings.Join(schema.LibraryBook.Columns(), ", "), schema.LibraryBook.UpdatedAt)

	_, err = repository.db.ExecContext(context, query,
		book.ID, book.UserID, book.ExternalID, book.Title, string(authors), string(book.Status),
		book.CurrentPage, book.PageCount, book.Rating, string(genres), sqlite.FormatTime(book.AddedAt),
		sqlite.NullTime(book.FinishedAt), sqlite.FormatTime(book.UpdatedAt),
	)
	return dberr.Wrap(err, resourceBook, "create")
}

// Update mirrors [PostgresRepository.Update]; SQLite supports RETURNING since 3.35.
func (repository *SQLiteRepository) Update(context context.Context, id string, patch Patch) (*Book, error) {
	var (
		sets []string
		args []any
	)

	set := func(column string, value any) {
		sets = append(sets, column+" = ?")
		args = append(args, value)
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
		set(schema.LibraryBook.FinishedAt, sqlite.FormatTime(*patch.FinishedAt))
	}

	set(schema.LibraryBook.UpdatedAt, sqlite.FormatTime(time.Now()))
	args = append(args, id)

	query := fmt.Sprintf(`UPDATE %s SET %s WHERE %s = ? RETURNING %s`,
		schema.LibraryBook.Name, strings.Join(sets, ", "), schema.LibraryBook.ID, bookColumns,
	)

	book, err := scanSQLiteBook(repository.db.QueryRowContext(context, query, args...))
	if err != nil {
		return nil, dberr.Wrap(err, resourceBook, "update")
	}
	return book, nil
}

func (repository *SQLiteRepository) Delete(context context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = ?`, schema.LibraryBook.Name, schema.LibraryBook.ID)

	result, err := repository.db.ExecContext(context, query, id)
	if err != nil {
		return dberr.Wrap(err, resourceBook, "delete")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return dberr.Wrap(err, resourceBook, "delete")
	}
	if affected == 0 {
		return dberr.Wrap(sql.ErrNoRows, resourceBook, "delete")
	}
	return nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanSQLiteBook reads one row in [bookColumns] order.
func scanSQLiteBook(row rowScanner) (*Book, error) {
	var (
		book                    Book
		status, authors, genres string
		addedAt, updatedAt      string
		finishedAt              sql.NullString
		pageCount, rating       sql.NullInt64
	)

	err := row.Scan(
		&book.ID, &book.UserID, &book.ExternalID, &book.Title, &authors, &status,
		&book.CurrentPage, &pageCount, &rating, &genres, &addedAt,
		&finishedAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	book.Status = Status(status)
	book.PageCount = nullInt(pageCount)
	book.Rating = nullInt(rating)

	if err := json.Unmarshal([]byte(authors), &book.Authors); err != nil {
		return nil, fmt.Errorf("decode authors: %w", err)
	}
	if err := json.Unmarshal([]byte(genres), &book.Genres); err != nil {
		return nil, fmt.Errorf("decode genres: %w", err)
	}

	if book.AddedAt, err = sqlite.ParseTime(addedAt); err != nil {
		return nil, err
	}
	if book.UpdatedAt, err = sqlite.ParseTime(updatedAt); err != nil {
		return nil, err
	}
	if book.FinishedAt, err = sqlite.ParseNullTime(finishedAt); err != nil {
		return nil, err
	}

	return &book, nil
}

func nullInt(value sql.NullInt64) *int {
	if !value.Valid {
		return nil
	}
	v := int(value.Int64)
	return &v
}
