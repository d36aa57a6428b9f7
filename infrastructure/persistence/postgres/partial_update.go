package postgres

import (
	"fmt"
	"strings"
)

// updateBuilder accumulates SET clauses for a partial UPDATE statement,
// numbering placeholders from $1. Columns are appended only for fields the
// caller actually set, so omitted fields keep their stored values.
type updateBuilder struct {
	clauses []string
	args    []interface{}
}

func newUpdateBuilder() *updateBuilder {
	return &updateBuilder{}
}

func (b *updateBuilder) Set(column string, value interface{}) {
	b.clauses = append(b.clauses, fmt.Sprintf("%s = $%d", column, len(b.args)+1))
	b.args = append(b.args, value)
}

func (b *updateBuilder) Empty() bool {
	return len(b.clauses) == 0
}

// Build renders "UPDATE <table> SET ... WHERE <keyColumn> = $n" plus the
// argument slice, with the key value as the final argument.
func (b *updateBuilder) Build(table, keyColumn string, keyValue interface{}) (string, []interface{}) {
	args := append(b.args, keyValue)
	query := fmt.Sprintf(
		"UPDATE %s SET %s WHERE %s = $%d",
		table,
		strings.Join(b.clauses, ", "),
		keyColumn,
		len(args),
	)
	return query, args
}
