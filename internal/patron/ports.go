package patron

import (
	"context"
)

// Repository defines the contract for patron data storage. Delete holds the
// patron row while guard inspects its ACTIVE loan count.
type Repository interface {
	Create(ctx context.Context, p *Patron) error
	GetByID(ctx context.Context, id string) (Patron, error)
	List(ctx context.Context, q Query) ([]Patron, int, error)
	Update(ctx context.Context, id string, fn func(p *Patron) error) (Patron, error)
	Delete(ctx context.Context, id string, guard func(activeLoans int) error) error
}
