package patron

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"libraryapi/internal/platform/database"
)

const patronColumns = `id::text, name, email, national_id, status, registered_at, updated_at`

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

func scanPatron(row pgx.Row) (Patron, error) {
	var p Patron
	err := row.Scan(&p.ID, &p.Name, &p.Email, &p.NationalID, &p.Status, &p.RegisteredAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || database.IsInvalidText(err) {
			return Patron{}, ErrNotFound
		}
		return Patron{}, err
	}
	return p, nil
}

func (r *PostgresRepo) Create(ctx context.Context, p *Patron) error {
	const sql = `
		INSERT INTO patrons (id, name, email, national_id, status, registered_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()
	_, err := r.db.Exec(ctx, sql, p.ID, p.Name, p.Email, p.NationalID, p.Status, p.RegisteredAt, p.UpdatedAt)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return ErrContactTaken
		}
		return fmt.Errorf("insert patron: %w", err)
	}
	return nil
}

func (r *PostgresRepo) GetByID(ctx context.Context, id string) (Patron, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()
	return scanPatron(r.db.QueryRow(ctx, `SELECT `+patronColumns+` FROM patrons WHERE id = $1`, id))
}

func (r *PostgresRepo) List(ctx context.Context, q Query) ([]Patron, int, error) {
	where := "WHERE ($1 = '' OR status = $1)"

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM patrons `+where, string(q.Status)).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count patrons: %w", err)
	}

	rows, err := r.db.Query(ctx,
		`SELECT `+patronColumns+` FROM patrons `+where+` ORDER BY registered_at, id LIMIT $2 OFFSET $3`,
		string(q.Status), q.Limit, q.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list patrons: %w", err)
	}
	defer rows.Close()

	out := []Patron{}
	for rows.Next() {
		p, err := scanPatron(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, p)
	}
	return out, total, rows.Err()
}

func (r *PostgresRepo) Update(ctx context.Context, id string, fn func(p *Patron) error) (Patron, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return Patron{}, err
	}
	defer tx.Rollback(ctx)

	p, err := scanPatron(tx.QueryRow(ctx, `SELECT `+patronColumns+` FROM patrons WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		return Patron{}, err
	}
	if err := fn(&p); err != nil {
		return Patron{}, err
	}

	const sql = `
		UPDATE patrons
		SET name = $2, email = $3, national_id = $4, status = $5, updated_at = $6
		WHERE id = $1`
	if _, err := tx.Exec(ctx, sql, p.ID, p.Name, p.Email, p.NationalID, p.Status, p.UpdatedAt); err != nil {
		if database.IsUniqueViolation(err) {
			return Patron{}, ErrContactTaken
		}
		return Patron{}, fmt.Errorf("update patron: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return Patron{}, err
	}
	return p, nil
}

func (r *PostgresRepo) Delete(ctx context.Context, id string, guard func(activeLoans int) error) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := scanPatron(tx.QueryRow(ctx, `SELECT `+patronColumns+` FROM patrons WHERE id = $1 FOR UPDATE`, id)); err != nil {
		return err
	}
	var active int
	if err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM loans WHERE patron_id = $1 AND status = 'ACTIVE'`, id).Scan(&active); err != nil {
		return fmt.Errorf("count active loans: %w", err)
	}
	if err := guard(active); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `DELETE FROM patrons WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete patron: %w", err)
	}
	return tx.Commit(ctx)
}
