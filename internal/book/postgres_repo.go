package book

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"libraryapi/internal/platform/database"
)

const (
	bookColumns = `id::text, isbn, title, author, publication_year, total_copies, available_copies, status, created_at, updated_at`

	countActiveLoansSQL = `SELECT COUNT(*) FROM loans WHERE book_id = $1 AND status = 'ACTIVE'`
)

type PostgresRepo struct {
	db      *pgxpool.Pool
	timeout time.Duration
}

func NewPostgresRepo(db *pgxpool.Pool, timeout time.Duration) *PostgresRepo {
	return &PostgresRepo{db: db, timeout: timeout}
}

func (r *PostgresRepo) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}

func scanBook(row pgx.Row) (Book, error) {
	var b Book
	err := row.Scan(
		&b.ID, &b.ISBN, &b.Title, &b.Author, &b.PublicationYear,
		&b.TotalCopies, &b.AvailableCopies, &b.Status, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Book{}, ErrNotFound
		}
		return Book{}, err
	}
	return b, nil
}

func (r *PostgresRepo) Create(ctx context.Context, b *Book) error {
	const sql = `
		INSERT INTO books (id, isbn, title, author, publication_year, total_copies, available_copies, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()
	_, err := r.db.Exec(ctx, sql,
		b.ID, b.ISBN, b.Title, b.Author, b.PublicationYear,
		b.TotalCopies, b.AvailableCopies, b.Status, b.CreatedAt, b.UpdatedAt,
	)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return ErrISBNTaken
		}
		return fmt.Errorf("insert book: %w", err)
	}
	return nil
}

func (r *PostgresRepo) GetByID(ctx context.Context, id string) (Book, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()
	b, err := scanBook(r.db.QueryRow(ctx, `SELECT `+bookColumns+` FROM books WHERE id = $1`, id))
	if database.IsInvalidText(err) {
		return Book{}, ErrNotFound
	}
	return b, err
}

func (r *PostgresRepo) GetByISBN(ctx context.Context, isbn string) (Book, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()
	return scanBook(r.db.QueryRow(ctx, `SELECT `+bookColumns+` FROM books WHERE isbn = $1 LIMIT 1`, isbn))
}

func (r *PostgresRepo) List(ctx context.Context, q Query) ([]Book, int, error) {
	clauses := []string{"1=1"}
	args := []any{}
	argn := 1

	if q.Status != "" {
		clauses = append(clauses, fmt.Sprintf("status = $%d", argn))
		args = append(args, q.Status)
		argn++
	}
	where := "WHERE " + strings.Join(clauses, " AND ")

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var total int
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM books "+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count books: %w", err)
	}

	dataSQL := fmt.Sprintf(`SELECT %s FROM books %s ORDER BY title, id LIMIT $%d OFFSET $%d`,
		bookColumns, where, argn, argn+1)
	rows, err := r.db.Query(ctx, dataSQL, append(args, q.Limit, q.Offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("list books: %w", err)
	}
	defer rows.Close()

	out := []Book{}
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, b)
	}
	return out, total, rows.Err()
}

func (r *PostgresRepo) Update(ctx context.Context, id string, fn func(b *Book, activeLoans int) error) (Book, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return Book{}, err
	}
	defer tx.Rollback(ctx)

	b, active, err := lockWithActiveLoans(ctx, tx, id)
	if err != nil {
		return Book{}, err
	}
	if err := fn(&b, active); err != nil {
		return Book{}, err
	}

	const sql = `
		UPDATE books
		SET isbn = $2, title = $3, author = $4, publication_year = $5,
		    total_copies = $6, available_copies = $7, status = $8, updated_at = $9
		WHERE id = $1`
	_, err = tx.Exec(ctx, sql,
		b.ID, b.ISBN, b.Title, b.Author, b.PublicationYear,
		b.TotalCopies, b.AvailableCopies, b.Status, b.UpdatedAt,
	)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return Book{}, ErrISBNTaken
		}
		return Book{}, fmt.Errorf("update book: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return Book{}, err
	}
	return b, nil
}

func (r *PostgresRepo) Delete(ctx context.Context, id string, guard func(activeLoans int) error) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	_, active, err := lockWithActiveLoans(ctx, tx, id)
	if err != nil {
		return err
	}
	if err := guard(active); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `DELETE FROM books WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete book: %w", err)
	}
	return tx.Commit(ctx)
}

func lockWithActiveLoans(ctx context.Context, tx pgx.Tx, id string) (Book, int, error) {
	b, err := scanBook(tx.QueryRow(ctx, `SELECT `+bookColumns+` FROM books WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		if database.IsInvalidText(err) {
			return Book{}, 0, ErrNotFound
		}
		return Book{}, 0, err
	}
	var active int
	if err := tx.QueryRow(ctx, countActiveLoansSQL, id).Scan(&active); err != nil {
		return Book{}, 0, fmt.Errorf("count active loans: %w", err)
	}
	return b, active, nil
}
