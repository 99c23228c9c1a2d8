package loan

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestViewSQL_Postgres(t *testing.T) {
	cutoff := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	query, args, err := viewSQL(dialectPostgres, Filter{
		PatronID:      "p1",
		Status:        StatusActive,
		OverdueBefore: cutoff,
		Order:         OrderDesc,
	})
	require.NoError(t, err)

	assert.Contains(t, query, `"l"."id"::text AS "id"`)
	assert.Contains(t, query, `LEFT JOIN "books" AS "b"`)
	assert.Contains(t, query, `COALESCE("b"."title", "l"."book_title") AS "book_title"`)
	assert.Contains(t, query, `"l"."patron_id" = $1`)
	assert.Contains(t, query, `"l"."status" = $2`)
	assert.Contains(t, query, `"l"."expected_return_date" < $3`)
	assert.Contains(t, query, `ORDER BY "l"."loan_date" DESC, "l"."id" DESC`)
	assert.Equal(t, []any{"p1", "ACTIVE", cutoff}, args)
}

func TestViewSQL_SQLite(t *testing.T) {
	query, args, err := viewSQL(dialectSQLite, Filter{LoanID: "l1"})
	require.NoError(t, err)

	assert.NotContains(t, query, "::text")
	assert.Contains(t, query, "= ?")
	assert.Contains(t, query, "ASC")
	assert.Equal(t, []any{"l1"}, args)
}

func TestViewSQL_NoFilter(t *testing.T) {
	query, args, err := viewSQL(dialectSQLite, Filter{})
	require.NoError(t, err)
	assert.NotContains(t, query, "WHERE")
	assert.Empty(t, args)
}
