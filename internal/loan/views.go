package loan

import (
	"fmt"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	_ "github.com/doug-martin/goqu/v9/dialect/sqlite3"
	"github.com/doug-martin/goqu/v9/exp"
)

const (
	dialectPostgres = "postgres"
	dialectSQLite   = "sqlite3"

	castText = "?::text"
)

// viewSQL builds the loan projection for one dialect. Titles and names come
// from the live rows and fall back to the snapshot columns once the book or
// patron has been deleted.
func viewSQL(dialect string, f Filter) (string, []any, error) {
	idCol := func(col, as string) exp.AliasedExpression {
		if dialect == dialectPostgres {
			return goqu.L(castText, goqu.I(col)).As(as)
		}
		return goqu.I(col).As(as)
	}

	ds := goqu.Dialect(dialect).
		From(goqu.T("loans").As("l")).
		LeftJoin(goqu.T("books").As("b"), goqu.On(goqu.I("b.id").Eq(goqu.I("l.book_id")))).
		LeftJoin(goqu.T("patrons").As("p"), goqu.On(goqu.I("p.id").Eq(goqu.I("l.patron_id")))).
		Select(
			idCol("l.id", "id"),
			idCol("l.book_id", "book_id"),
			goqu.COALESCE(goqu.I("b.title"), goqu.I("l.book_title")).As("book_title"),
			idCol("l.patron_id", "patron_id"),
			goqu.COALESCE(goqu.I("p.name"), goqu.I("l.patron_name")).As("patron_name"),
			goqu.I("l.loan_date").As("loan_date"),
			goqu.I("l.expected_return_date").As("expected_return_date"),
			goqu.I("l.return_date").As("return_date"),
			goqu.I("l.status").As("status"),
		).
		Prepared(true)

	where := []exp.Expression{}
	if f.LoanID != "" {
		where = append(where, goqu.I("l.id").Eq(f.LoanID))
	}
	if f.PatronID != "" {
		where = append(where, goqu.I("l.patron_id").Eq(f.PatronID))
	}
	if f.Status != "" {
		where = append(where, goqu.I("l.status").Eq(string(f.Status)))
	}
	if !f.OverdueBefore.IsZero() {
		where = append(where, goqu.I("l.expected_return_date").Lt(f.OverdueBefore.UTC()))
	}
	if len(where) > 0 {
		ds = ds.Where(where...)
	}

	if f.Order == OrderDesc {
		ds = ds.Order(goqu.I("l.loan_date").Desc(), goqu.I("l.id").Desc())
	} else {
		ds = ds.Order(goqu.I("l.loan_date").Asc(), goqu.I("l.id").Asc())
	}

	query, args, err := ds.ToSQL()
	if err != nil {
		return "", nil, fmt.Errorf("build loan view query: %w", err)
	}
	return query, args, nil
}
