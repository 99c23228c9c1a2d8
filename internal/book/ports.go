package book

import (
	"context"
)

// Repository defines the contract for book data storage.
//
// Update and Delete run inside one transaction holding the book row; the
// callback receives the number of ACTIVE loans on the book at that moment.
// Returning an error from the callback aborts the transaction.
type Repository interface {
	Create(ctx context.Context, b *Book) error
	GetByID(ctx context.Context, id string) (Book, error)
	GetByISBN(ctx context.Context, isbn string) (Book, error)
	List(ctx context.Context, q Query) ([]Book, int, error)
	Update(ctx context.Context, id string, fn func(b *Book, activeLoans int) error) (Book, error)
	Delete(ctx context.Context, id string, guard func(activeLoans int) error) error
}
