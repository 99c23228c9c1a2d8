package book

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"libraryapi/internal/platform/database"
)

const sqliteBookColumns = `id, isbn, title, author, publication_year, total_copies, available_copies, status, created_at, updated_at`

// SQLiteRepo stores books in SQLite. The handle is expected to hold a single
// connection, which serialises the read-check-write transactions.
type SQLiteRepo struct {
	db      *sqlx.DB
	timeout time.Duration
}

func NewSQLiteRepo(db *sqlx.DB, timeout time.Duration) *SQLiteRepo {
	return &SQLiteRepo{db: db, timeout: timeout}
}

func (r *SQLiteRepo) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}

func (r *SQLiteRepo) Create(ctx context.Context, b *Book) error {
	const q = `
		INSERT INTO books (id, isbn, title, author, publication_year, total_copies, available_copies, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()
	_, err := r.db.ExecContext(ctx, q,
		b.ID, b.ISBN, b.Title, b.Author, b.PublicationYear,
		b.TotalCopies, b.AvailableCopies, string(b.Status), b.CreatedAt, b.UpdatedAt,
	)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return ErrISBNTaken
		}
		return fmt.Errorf("insert book: %w", err)
	}
	return nil
}

func (r *SQLiteRepo) GetByID(ctx context.Context, id string) (Book, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()
	return getBook(ctx, r.db, `SELECT `+sqliteBookColumns+` FROM books WHERE id = ?`, id)
}

func (r *SQLiteRepo) GetByISBN(ctx context.Context, isbn string) (Book, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()
	return getBook(ctx, r.db, `SELECT `+sqliteBookColumns+` FROM books WHERE isbn = ? LIMIT 1`, isbn)
}

func (r *SQLiteRepo) List(ctx context.Context, q Query) ([]Book, int, error) {
	where := "WHERE 1=1"
	args := []any{}
	if q.Status != "" {
		where += " AND status = ?"
		args = append(args, string(q.Status))
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM books "+where, args...); err != nil {
		return nil, 0, fmt.Errorf("count books: %w", err)
	}

	out := []Book{}
	dataSQL := `SELECT ` + sqliteBookColumns + ` FROM books ` + where + ` ORDER BY title, id LIMIT ? OFFSET ?`
	if err := r.db.SelectContext(ctx, &out, dataSQL, append(args, q.Limit, q.Offset)...); err != nil {
		return nil, 0, fmt.Errorf("list books: %w", err)
	}
	return out, total, nil
}

func (r *SQLiteRepo) Update(ctx context.Context, id string, fn func(b *Book, activeLoans int) error) (Book, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return Book{}, err
	}
	defer tx.Rollback()

	b, active, err := sqliteWithActiveLoans(ctx, tx, id)
	if err != nil {
		return Book{}, err
	}
	if err := fn(&b, active); err != nil {
		return Book{}, err
	}

	const q = `
		UPDATE books
		SET isbn = ?, title = ?, author = ?, publication_year = ?,
		    total_copies = ?, available_copies = ?, status = ?, updated_at = ?
		WHERE id = ?`
	_, err = tx.ExecContext(ctx, q,
		b.ISBN, b.Title, b.Author, b.PublicationYear,
		b.TotalCopies, b.AvailableCopies, string(b.Status), b.UpdatedAt, b.ID,
	)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return Book{}, ErrISBNTaken
		}
		return Book{}, fmt.Errorf("update book: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return Book{}, err
	}
	return b, nil
}

func (r *SQLiteRepo) Delete(ctx context.Context, id string, guard func(activeLoans int) error) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, active, err := sqliteWithActiveLoans(ctx, tx, id)
	if err != nil {
		return err
	}
	if err := guard(active); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM books WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete book: %w", err)
	}
	return tx.Commit()
}

func getBook(ctx context.Context, q sqlx.QueryerContext, query string, args ...any) (Book, error) {
	var b Book
	if err := sqlx.GetContext(ctx, q, &b, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Book{}, ErrNotFound
		}
		return Book{}, err
	}
	return b, nil
}

func sqliteWithActiveLoans(ctx context.Context, tx *sqlx.Tx, id string) (Book, int, error) {
	b, err := getBook(ctx, tx, `SELECT `+sqliteBookColumns+` FROM books WHERE id = ?`, id)
	if err != nil {
		return Book{}, 0, err
	}
	var active int
	if err := tx.GetContext(ctx, &active, `SELECT COUNT(*) FROM loans WHERE book_id = ? AND status = 'ACTIVE'`, id); err != nil {
		return Book{}, 0, fmt.Errorf("count active loans: %w", err)
	}
	return b, active, nil
}
