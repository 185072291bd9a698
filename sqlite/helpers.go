package sqlite

import (
	"fmt"
	"strings"
	"time"
)

// timeLayout is how timestamps are stored. Fixed-width UTC strings sort in
// time order.
const timeLayout = time.RFC3339

// selectQuery accumulates a SELECT statement and its arguments.
type selectQuery struct {
	sql  strings.Builder
	args []any
}

func newSelectQuery(base string) *selectQuery {
	q := &selectQuery{}
	q.sql.WriteString(base)
	q.sql.WriteString(" WHERE 1=1")
	return q
}

// where adds "AND cond" with a single bound argument.
func (q *selectQuery) where(cond string, arg any) {
	q.sql.WriteString(" AND ")
	q.sql.WriteString(cond)
	q.args = append(q.args, arg)
}

func (q *selectQuery) orderBy(clause string) {
	q.sql.WriteString(" ORDER BY ")
	q.sql.WriteString(clause)
}

// page adds LIMIT and OFFSET when positive. SQLite requires a LIMIT before
// OFFSET, so an offset alone uses LIMIT -1.
func (q *selectQuery) page(limit, offset int) {
	switch {
	case limit > 0:
		q.sql.WriteString(" LIMIT ?")
		q.args = append(q.args, limit)
	case offset > 0:
		q.sql.WriteString(" LIMIT -1")
	}
	if offset > 0 {
		q.sql.WriteString(" OFFSET ?")
		q.args = append(q.args, offset)
	}
}

func (q *selectQuery) String() string { return q.sql.String() }

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(value, column string) (time.Time, error) {
	t, err := time.Parse(timeLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse %s: %w", column, err)
	}
	return t, nil
}
