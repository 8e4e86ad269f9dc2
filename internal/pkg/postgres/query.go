package postgres

import (
	"context"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
)

// Builder is a squirrel builder using $N placeholders.
var Builder = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// EqualFold matches col case-insensitively against val.
func EqualFold(col, val string) sq.Sqlizer {
	return sq.Expr("lower("+col+") = lower(?)", val)
}

// EqualFoldOrNull is EqualFold for a non-empty val and "col IS NULL" otherwise.
func EqualFoldOrNull(col, val string) sq.Sqlizer {
	if strings.TrimSpace(val) == "" {
		return sq.Eq{col: nil}
	}
	return EqualFold(col, strings.TrimSpace(val))
}

// ContainsAny matches rows where any of cols contains term, ignoring case.
func ContainsAny(term string, cols ...string) sq.Sqlizer {
	pattern := "%" + escapeLike(term) + "%"
	or := make(sq.Or, 0, len(cols))
	for _, c := range cols {
		or = append(or, sq.ILike{c: pattern})
	}
	return or
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

// DefaultBatchSize keeps multi-row inserts well under the 65535 bind
// parameter limit for the widest table.
const DefaultBatchSize = 500

// NamedInsertBatches runs a named multi-row INSERT over rows in chunks of size
// inside tx and returns the number of rows written.
func NamedInsertBatches[T any](ctx context.Context, tx *sqlx.Tx, query string, rows []T, size int) (int, error) {
	if size <= 0 {
		size = DefaultBatchSize
	}

	var total int
	for start := 0; start < len(rows); start += size {
		end := min(start+size, len(rows))
		res, err := tx.NamedExecContext(ctx, query, rows[start:end])
		if err != nil {
			return 0, err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return 0, err
		}
		total += int(n)
	}
	return total, nil
}

// NamedColumns renders cols as a column list and the matching :named values.
func NamedColumns(cols []string) (columns, values string) {
	named := make([]string, len(cols))
	for i, c := range cols {
		named[i] = ":" + c
	}
	return strings.Join(cols, ", "), strings.Join(named, ", ")
}
