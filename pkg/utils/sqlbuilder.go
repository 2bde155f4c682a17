package utils

import (
	"strconv"
	"strings"
)

// QueryBuilder accumulates WHERE fragments and a parallel positional
// parameter list. Fragments use ? markers which are rewritten to $n
// placeholders in the order their arguments are appended, so fixed and
// dynamically generated predicates can be mixed without index arithmetic.
type QueryBuilder struct {
	conditions []string
	args       []interface{}
}

// NewQueryBuilder creates an empty builder.
func NewQueryBuilder() *QueryBuilder {
	return &QueryBuilder{}
}

// Where appends a predicate fragment and its arguments. The fragment must
// contain exactly one ? per argument; markers are numbered left to right
// continuing from the arguments already added.
func (qb *QueryBuilder) Where(fragment string, args ...interface{}) *QueryBuilder {
	var sb strings.Builder
	n := len(qb.args)
	for _, r := range fragment {
		if r == '?' {
			n++
			sb.WriteByte('$')
			sb.WriteString(strconv.Itoa(n))
		} else {
			sb.WriteRune(r)
		}
	}
	qb.conditions = append(qb.conditions, sb.String())
	qb.args = append(qb.args, args...)
	return qb
}

// Clause renders the accumulated predicates as a WHERE clause joined with
// AND, or an empty string when no predicates were added.
func (qb *QueryBuilder) Clause() string {
	if len(qb.conditions) == 0 {
		return ""
	}
	return "WHERE " + strings.Join(qb.conditions, " AND ")
}

// Args returns the positional parameter list matching the rendered clause.
func (qb *QueryBuilder) Args() []interface{} {
	return qb.args
}

// ArgCount returns how many placeholders have been allocated so far. Callers
// appending their own trailing placeholders (LIMIT/OFFSET) number from here.
func (qb *QueryBuilder) ArgCount() int {
	return len(qb.args)
}
