package loan

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"libraryapi/internal/book"
	"libraryapi/internal/patron"
	"libraryapi/internal/platform/database"
	"libraryapi/internal/platform/retry"
)

const (
	lockPatronSQL = `
		SELECT id::text, name, email, national_id, status, registered_at, updated_at
		FROM patrons WHERE id = $1 FOR UPDATE`

	lockBookSQL = `
		SELECT id::text, isbn, title, author, publication_year, total_copies, available_copies, status, created_at, updated_at
		FROM books WHERE id = $1 FOR UPDATE`

	lockLoanSQL = `
		SELECT id::text, patron_id::text, book_id::text, loan_date, expected_return_date, return_date, status
		FROM loans WHERE id = $1 FOR UPDATE`
)

// PostgresStore runs loan transactions at READ COMMITTED with row locks.
type PostgresStore struct {
	db      *pgxpool.Pool
	timeout time.Duration
	retry   []retry.Option
}

func NewPostgresStore(db *pgxpool.Pool, timeout time.Duration, opts ...retry.Option) *PostgresStore {
	return &PostgresStore{db: db, timeout: timeout, retry: opts}
}

func (s *PostgresStore) WithinTx(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error {
	return runTx(ctx, func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(ctx, s.timeout)
		defer cancel()

		tx, err := s.db.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
		if err != nil {
			return fmt.Errorf("begin loan tx: %w", err)
		}
		defer tx.Rollback(ctx)

		if err := fn(ctx, &pgTx{tx: tx}); err != nil {
			return err
		}
		return tx.Commit(ctx)
	}, s.retry...)
}

func (s *PostgresStore) ListViews(ctx context.Context, f Filter) ([]View, error) {
	query, args, err := viewSQL(dialectPostgres, f)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		if database.IsInvalidText(err) {
			return []View{}, nil
		}
		return nil, fmt.Errorf("list loans: %w", err)
	}
	views, err := pgx.CollectRows(rows, pgx.RowToStructByName[View])
	if err != nil {
		if database.IsInvalidText(err) {
			return []View{}, nil
		}
		return nil, fmt.Errorf("list loans: %w", err)
	}
	return views, nil
}

func (s *PostgresStore) PatronExists(ctx context.Context, id string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var exists bool
	err := s.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM patrons WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		if database.IsInvalidText(err) {
			return false, nil
		}
		return false, fmt.Errorf("patron exists: %w", err)
	}
	return exists, nil
}

type pgTx struct {
	tx pgx.Tx
}

func (t *pgTx) LockPatron(ctx context.Context, id string) (patron.Patron, error) {
	var p patron.Patron
	err := t.tx.QueryRow(ctx, lockPatronSQL, id).
		Scan(&p.ID, &p.Name, &p.Email, &p.NationalID, &p.Status, &p.RegisteredAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || database.IsInvalidText(err) {
			return patron.Patron{}, patron.ErrNotFound
		}
		return patron.Patron{}, fmt.Errorf("lock patron: %w", err)
	}
	return p, nil
}

func (t *pgTx) LockBook(ctx context.Context, id string) (book.Book, error) {
	var b book.Book
	err := t.tx.QueryRow(ctx, lockBookSQL, id).Scan(
		&b.ID, &b.ISBN, &b.Title, &b.Author, &b.PublicationYear,
		&b.TotalCopies, &b.AvailableCopies, &b.Status, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || database.IsInvalidText(err) {
			return book.Book{}, book.ErrNotFound
		}
		return book.Book{}, fmt.Errorf("lock book: %w", err)
	}
	return b, nil
}

func (t *pgTx) UpdateStock(ctx context.Context, id string, available int, status book.Status) error {
	const sql = `UPDATE books SET available_copies = $2, status = $3, updated_at = now() WHERE id = $1`
	if _, err := t.tx.Exec(ctx, sql, id, available, string(status)); err != nil {
		return fmt.Errorf("update stock: %w", err)
	}
	return nil
}

func (t *pgTx) CountActiveLoans(ctx context.Context, patronID string) (int, error) {
	var n int
	err := t.tx.QueryRow(ctx, `SELECT COUNT(*) FROM loans WHERE patron_id = $1 AND status = 'ACTIVE'`, patronID).Scan(&n)
	return n, err
}

func (t *pgTx) InsertLoan(ctx context.Context, l Loan, patronName, bookTitle string) error {
	const sql = `
		INSERT INTO loans (id, patron_id, book_id, patron_name, book_title, loan_date, expected_return_date, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := t.tx.Exec(ctx, sql,
		l.ID, l.PatronID, l.BookID, patronName, bookTitle, l.LoanDate, l.ExpectedReturnDate, string(l.Status))
	if err != nil {
		return fmt.Errorf("insert loan: %w", err)
	}
	return nil
}

func (t *pgTx) LockLoan(ctx context.Context, id string) (Loan, error) {
	var (
		l                Loan
		patronID, bookID *string
	)
	err := t.tx.QueryRow(ctx, lockLoanSQL, id).
		Scan(&l.ID, &patronID, &bookID, &l.LoanDate, &l.ExpectedReturnDate, &l.ReturnDate, &l.Status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || database.IsInvalidText(err) {
			return Loan{}, ErrNotFound
		}
		return Loan{}, fmt.Errorf("lock loan: %w", err)
	}
	l.PatronID = deref(patronID)
	l.BookID = deref(bookID)
	return l, nil
}

func (t *pgTx) MarkReturned(ctx context.Context, id string, at time.Time) error {
	const sql = `UPDATE loans SET status = 'RETURNED', return_date = $2 WHERE id = $1 AND status = 'ACTIVE'`
	tag, err := t.tx.Exec(ctx, sql, id, at)
	if err != nil {
		return fmt.Errorf("mark loan returned: %w", err)
	}
	if tag.RowsAffected() != 1 {
		return ErrAlreadyReturned
	}
	return nil
}

func (t *pgTx) View(ctx context.Context, id string) (View, error) {
	query, args, err := viewSQL(dialectPostgres, Filter{LoanID: id})
	if err != nil {
		return View{}, err
	}
	rows, err := t.tx.Query(ctx, query, args...)
	if err != nil {
		return View{}, fmt.Errorf("read loan: %w", err)
	}
	v, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[View])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return View{}, ErrNotFound
		}
		return View{}, fmt.Errorf("read loan: %w", err)
	}
	return v, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
