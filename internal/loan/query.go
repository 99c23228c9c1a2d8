package loan

import (
	"context"
	"time"

	"libraryapi/internal/patron"
)

// QueryService serves read-only loan projections.
type QueryService struct {
	store Store
	order Order
	now   func() time.Time
}

// NewQueryService returns a query service listing in order by default; an
// unknown order falls back to ascending loan date.
func NewQueryService(store Store, order Order) *QueryService {
	if _, ok := ParseOrder(string(order)); !ok {
		order = OrderAsc
	}
	return &QueryService{
		store: store,
		order: order,
		now:   func() time.Time { return time.Now().UTC().Truncate(time.Microsecond) },
	}
}

// WithClock replaces the time source; used by tests.
func (q *QueryService) WithClock(now func() time.Time) *QueryService {
	q.now = now
	return q
}

// ListAll returns every loan by loan date. An empty order uses the default.
func (q *QueryService) ListAll(ctx context.Context, order Order) ([]View, error) {
	return q.store.ListViews(ctx, Filter{Order: q.orderOr(order)})
}

// ListByPatron returns the patron's loans, or patron.ErrNotFound when the
// patron does not exist.
func (q *QueryService) ListByPatron(ctx context.Context, patronID string) ([]View, error) {
	ok, err := q.store.PatronExists(ctx, patronID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, patron.ErrNotFound
	}
	return q.store.ListViews(ctx, Filter{PatronID: patronID, Order: q.order})
}

// ListOverdue returns ACTIVE loans whose expected return date has passed.
func (q *QueryService) ListOverdue(ctx context.Context) ([]View, error) {
	return q.store.ListViews(ctx, Filter{
		Status:        StatusActive,
		OverdueBefore: q.now(),
		Order:         OrderAsc,
	})
}

func (q *QueryService) Get(ctx context.Context, id string) (View, error) {
	views, err := q.store.ListViews(ctx, Filter{LoanID: id})
	if err != nil {
		return View{}, err
	}
	if len(views) == 0 {
		return View{}, ErrNotFound
	}
	return views[0], nil
}

func (q *QueryService) orderOr(o Order) Order {
	if o == "" {
		return q.order
	}
	return o
}
