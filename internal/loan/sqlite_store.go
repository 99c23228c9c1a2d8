package loan

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"libraryapi/internal/book"
	"libraryapi/internal/patron"
	"libraryapi/internal/platform/retry"
)

// SQLiteStore runs loan transactions on a single-connection SQLite handle.
// Transactions are serialised by the connection, so no row locks are needed.
type SQLiteStore struct {
	db      *sqlx.DB
	timeout time.Duration
	retry   []retry.Option
	now     func() time.Time
}

func NewSQLiteStore(db *sqlx.DB, timeout time.Duration, opts ...retry.Option) *SQLiteStore {
	return &SQLiteStore{
		db:      db,
		timeout: timeout,
		retry:   opts,
		now:     func() time.Time { return time.Now().UTC().Truncate(time.Microsecond) },
	}
}

func (s *SQLiteStore) WithinTx(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error {
	return runTx(ctx, func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(ctx, s.timeout)
		defer cancel()

		tx, err := s.db.BeginTxx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin loan tx: %w", err)
		}
		defer tx.Rollback()

		if err := fn(ctx, &sqliteTx{tx: tx, now: s.now}); err != nil {
			return err
		}
		return tx.Commit()
	}, s.retry...)
}

func (s *SQLiteStore) ListViews(ctx context.Context, f Filter) ([]View, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return selectViews(ctx, s.db, f)
}

func (s *SQLiteStore) PatronExists(ctx context.Context, id string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var exists bool
	if err := s.db.GetContext(ctx, &exists, `SELECT EXISTS (SELECT 1 FROM patrons WHERE id = ?)`, id); err != nil {
		return false, fmt.Errorf("patron exists: %w", err)
	}
	return exists, nil
}

func selectViews(ctx context.Context, q sqlx.QueryerContext, f Filter) ([]View, error) {
	query, args, err := viewSQL(dialectSQLite, f)
	if err != nil {
		return nil, err
	}
	out := []View{}
	if err := sqlx.SelectContext(ctx, q, &out, query, args...); err != nil {
		return nil, fmt.Errorf("list loans: %w", err)
	}
	return out, nil
}

type sqliteTx struct {
	tx  *sqlx.Tx
	now func() time.Time
}

func (t *sqliteTx) LockPatron(ctx context.Context, id string) (patron.Patron, error) {
	var p patron.Patron
	err := t.tx.GetContext(ctx, &p, `
		SELECT id, name, email, national_id, status, registered_at, updated_at
		FROM patrons WHERE id = ?`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return patron.Patron{}, patron.ErrNotFound
		}
		return patron.Patron{}, fmt.Errorf("lock patron: %w", err)
	}
	return p, nil
}

func (t *sqliteTx) LockBook(ctx context.Context, id string) (book.Book, error) {
	var b book.Book
	err := t.tx.GetContext(ctx, &b, `
		SELECT id, isbn, title, author, publication_year, total_copies, available_copies, status, created_at, updated_at
		FROM books WHERE id = ?`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return book.Book{}, book.ErrNotFound
		}
		return book.Book{}, fmt.Errorf("lock book: %w", err)
	}
	return b, nil
}

func (t *sqliteTx) UpdateStock(ctx context.Context, id string, available int, status book.Status) error {
	const q = `UPDATE books SET available_copies = ?, status = ?, updated_at = ? WHERE id = ?`
	if _, err := t.tx.ExecContext(ctx, q, available, string(status), t.now(), id); err != nil {
		return fmt.Errorf("update stock: %w", err)
	}
	return nil
}

func (t *sqliteTx) CountActiveLoans(ctx context.Context, patronID string) (int, error) {
	var n int
	err := t.tx.GetContext(ctx, &n, `SELECT COUNT(*) FROM loans WHERE patron_id = ? AND status = 'ACTIVE'`, patronID)
	return n, err
}

func (t *sqliteTx) InsertLoan(ctx context.Context, l Loan, patronName, bookTitle string) error {
	const q = `
		INSERT INTO loans (id, patron_id, book_id, patron_name, book_title, loan_date, expected_return_date, status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := t.tx.ExecContext(ctx, q,
		l.ID, l.PatronID, l.BookID, patronName, bookTitle, l.LoanDate.UTC(), l.ExpectedReturnDate.UTC(), string(l.Status))
	if err != nil {
		return fmt.Errorf("insert loan: %w", err)
	}
	return nil
}

func (t *sqliteTx) LockLoan(ctx context.Context, id string) (Loan, error) {
	var (
		l                Loan
		patronID, bookID sql.NullString
		returned         sql.NullTime
	)
	err := t.tx.QueryRowxContext(ctx, `
		SELECT id, patron_id, book_id, loan_date, expected_return_date, return_date, status
		FROM loans WHERE id = ?`, id).
		Scan(&l.ID, &patronID, &bookID, &l.LoanDate, &l.ExpectedReturnDate, &returned, &l.Status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Loan{}, ErrNotFound
		}
		return Loan{}, fmt.Errorf("lock loan: %w", err)
	}
	l.PatronID = patronID.String
	l.BookID = bookID.String
	if returned.Valid {
		l.ReturnDate = &returned.Time
	}
	return l, nil
}

func (t *sqliteTx) MarkReturned(ctx context.Context, id string, at time.Time) error {
	const q = `UPDATE loans SET status = 'RETURNED', return_date = ? WHERE id = ? AND status = 'ACTIVE'`
	res, err := t.tx.ExecContext(ctx, q, at.UTC(), id)
	if err != nil {
		return fmt.Errorf("mark loan returned: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n != 1 {
		return ErrAlreadyReturned
	}
	return nil
}

func (t *sqliteTx) View(ctx context.Context, id string) (View, error) {
	views, err := selectViews(ctx, t.tx, Filter{LoanID: id})
	if err != nil {
		return View{}, err
	}
	if len(views) == 0 {
		return View{}, ErrNotFound
	}
	return views[0], nil
}
