package patron

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"libraryapi/internal/platform/database"
)

const sqlitePatronColumns = `id, name, email, national_id, status, registered_at, updated_at`

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

func getPatron(ctx context.Context, q sqlx.QueryerContext, id string) (Patron, error) {
	var p Patron
	err := sqlx.GetContext(ctx, q, &p, `SELECT `+sqlitePatronColumns+` FROM patrons WHERE id = ?`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Patron{}, ErrNotFound
		}
		return Patron{}, err
	}
	return p, nil
}

func (r *SQLiteRepo) Create(ctx context.Context, p *Patron) error {
	const q = `
		INSERT INTO patrons (id, name, email, national_id, status, registered_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()
	_, err := r.db.ExecContext(ctx, q, p.ID, p.Name, p.Email, p.NationalID, string(p.Status), p.RegisteredAt, p.UpdatedAt)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return ErrContactTaken
		}
		return fmt.Errorf("insert patron: %w", err)
	}
	return nil
}

func (r *SQLiteRepo) GetByID(ctx context.Context, id string) (Patron, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()
	return getPatron(ctx, r.db, id)
}

func (r *SQLiteRepo) List(ctx context.Context, q Query) ([]Patron, int, error) {
	where := "WHERE (? = '' OR status = ?)"
	status := string(q.Status)

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM patrons `+where, status, status); err != nil {
		return nil, 0, fmt.Errorf("count patrons: %w", err)
	}

	out := []Patron{}
	err := r.db.SelectContext(ctx, &out,
		`SELECT `+sqlitePatronColumns+` FROM patrons `+where+` ORDER BY registered_at, id LIMIT ? OFFSET ?`,
		status, status, q.Limit, q.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list patrons: %w", err)
	}
	return out, total, nil
}

func (r *SQLiteRepo) Update(ctx context.Context, id string, fn func(p *Patron) error) (Patron, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return Patron{}, err
	}
	defer tx.Rollback()

	p, err := getPatron(ctx, tx, id)
	if err != nil {
		return Patron{}, err
	}
	if err := fn(&p); err != nil {
		return Patron{}, err
	}

	const q = `UPDATE patrons SET name = ?, email = ?, national_id = ?, status = ?, updated_at = ? WHERE id = ?`
	if _, err := tx.ExecContext(ctx, q, p.Name, p.Email, p.NationalID, string(p.Status), p.UpdatedAt, p.ID); err != nil {
		if database.IsUniqueViolation(err) {
			return Patron{}, ErrContactTaken
		}
		return Patron{}, fmt.Errorf("update patron: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return Patron{}, err
	}
	return p, nil
}

func (r *SQLiteRepo) Delete(ctx context.Context, id string, guard func(activeLoans int) error) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := getPatron(ctx, tx, id); err != nil {
		return err
	}
	var active int
	if err := tx.GetContext(ctx, &active, `SELECT COUNT(*) FROM loans WHERE patron_id = ? AND status = 'ACTIVE'`, id); err != nil {
		return fmt.Errorf("count active loans: %w", err)
	}
	if err := guard(active); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM patrons WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete patron: %w", err)
	}
	return tx.Commit()
}
