package loan_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"libraryapi/internal/loan"
	"libraryapi/internal/patron"
	"libraryapi/internal/testutil"
)

func TestQueryService_SQLite(t *testing.T) {
	db := testutil.SQLiteDB(t)
	store := loan.NewSQLiteStore(db, 5*time.Second)
	ctx := context.Background()

	ada := testutil.InsertPatron(t, db, "Ada", "ACTIVE")
	grace := testutil.InsertPatron(t, db, "Grace", "ACTIVE")
	lonely := testutil.InsertPatron(t, db, "Lonely", "ACTIVE")
	dune := testutil.InsertBook(t, db, "Dune", 3, 1)
	emma := testutil.InsertBook(t, db, "Emma", 1, 0)

	overdue := testutil.InsertLoan(t, db, ada, dune, testutil.Epoch, "ACTIVE")
	returned := testutil.InsertLoan(t, db, ada, dune, testutil.Epoch.AddDate(0, 0, -30), "RETURNED")
	recent := testutil.InsertLoan(t, db, grace, emma, testutil.Epoch.AddDate(0, 0, 10), "ACTIVE")

	now := testutil.Epoch.AddDate(0, 0, 20)
	q := loan.NewQueryService(store, loan.OrderAsc).WithClock(func() time.Time { return now })

	ids := func(views []loan.View) []string {
		out := make([]string, 0, len(views))
		for _, v := range views {
			out = append(out, v.ID)
		}
		return out
	}

	t.Run("list all ascending", func(t *testing.T) {
		views, err := q.ListAll(ctx, "")
		require.NoError(t, err)
		assert.Equal(t, []string{returned, overdue, recent}, ids(views))
	})

	t.Run("list all descending", func(t *testing.T) {
		views, err := q.ListAll(ctx, loan.OrderDesc)
		require.NoError(t, err)
		assert.Equal(t, []string{recent, overdue, returned}, ids(views))
	})

	t.Run("configured default order", func(t *testing.T) {
		desc := loan.NewQueryService(store, loan.OrderDesc)
		views, err := desc.ListAll(ctx, "")
		require.NoError(t, err)
		assert.Equal(t, []string{recent, overdue, returned}, ids(views))
	})

	t.Run("by patron", func(t *testing.T) {
		views, err := q.ListByPatron(ctx, ada)
		require.NoError(t, err)
		assert.Equal(t, []string{returned, overdue}, ids(views))
		for _, v := range views {
			assert.Equal(t, "Ada", v.PatronName)
			assert.Equal(t, "Dune", v.BookTitle)
		}
	})

	t.Run("by patron without loans", func(t *testing.T) {
		views, err := q.ListByPatron(ctx, lonely)
		require.NoError(t, err)
		assert.NotNil(t, views)
		assert.Empty(t, views)
	})

	t.Run("by unknown patron", func(t *testing.T) {
		_, err := q.ListByPatron(ctx, "00000000-0000-0000-0000-000000000000")
		assert.ErrorIs(t, err, patron.ErrNotFound)
	})

	t.Run("overdue", func(t *testing.T) {
		views, err := q.ListOverdue(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{overdue}, ids(views))
	})

	t.Run("get", func(t *testing.T) {
		v, err := q.Get(ctx, returned)
		require.NoError(t, err)
		assert.Equal(t, loan.StatusReturned, v.Status)
		require.NotNil(t, v.ReturnDate)
		assert.True(t, v.ReturnDate.Equal(testutil.Epoch.AddDate(0, 0, -29)))
		assert.True(t, v.ExpectedReturnDate.Equal(testutil.Epoch.AddDate(0, 0, -16)))
	})

	t.Run("get unknown", func(t *testing.T) {
		_, err := q.Get(ctx, "00000000-0000-0000-0000-000000000000")
		assert.ErrorIs(t, err, loan.ErrNotFound)
	})
}

func TestNewQueryService_UnknownOrderFallsBack(t *testing.T) {
	db := testutil.SQLiteDB(t)
	p := testutil.InsertPatron(t, db, "Ada", "ACTIVE")
	b := testutil.InsertBook(t, db, "Dune", 2, 2)
	first := testutil.InsertLoan(t, db, p, b, testutil.Epoch, "ACTIVE")
	second := testutil.InsertLoan(t, db, p, b, testutil.Epoch.Add(time.Hour), "ACTIVE")

	views, err := loan.NewQueryService(loan.NewSQLiteStore(db, time.Second), "random").ListAll(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, first, views[0].ID)
	assert.Equal(t, second, views[1].ID)
}
