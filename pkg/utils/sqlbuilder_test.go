package utils

import (
	"reflect"
	"testing"
)

func TestQueryBuilder(t *testing.T) {
	t.Run("empty builder renders no clause", func(t *testing.T) {
		qb := NewQueryBuilder()
		if got := qb.Clause(); got != "" {
			t.Errorf("Clause() = %q, want empty", got)
		}
		if got := qb.ArgCount(); got != 0 {
			t.Errorf("ArgCount() = %d, want 0", got)
		}
	})

	t.Run("single predicate", func(t *testing.T) {
		qb := NewQueryBuilder()
		qb.Where("r.user_id = ?", 7)
		if got, want := qb.Clause(), "WHERE r.user_id = $1"; got != want {
			t.Errorf("Clause() = %q, want %q", got, want)
		}
		if got := qb.Args(); !reflect.DeepEqual(got, []interface{}{7}) {
			t.Errorf("Args() = %v, want [7]", got)
		}
	})

	t.Run("placeholders continue across predicates", func(t *testing.T) {
		qb := NewQueryBuilder()
		qb.Where("r.user_id = ?", 7)
		qb.Where("t.name = ANY(?)", []string{"landscape", "night"})
		qb.Where("(p.subject ILIKE ? OR p.subject ILIKE ?)", "%even%", "%street%")

		want := "WHERE r.user_id = $1 AND t.name = ANY($2) AND (p.subject ILIKE $3 OR p.subject ILIKE $4)"
		if got := qb.Clause(); got != want {
			t.Errorf("Clause() = %q, want %q", got, want)
		}

		wantArgs := []interface{}{7, []string{"landscape", "night"}, "%even%", "%street%"}
		if got := qb.Args(); !reflect.DeepEqual(got, wantArgs) {
			t.Errorf("Args() = %v, want %v", got, wantArgs)
		}
		if got := qb.ArgCount(); got != 4 {
			t.Errorf("ArgCount() = %d, want 4", got)
		}
	})

	t.Run("argument order matches marker order within a fragment", func(t *testing.T) {
		qb := NewQueryBuilder()
		qb.Where("created_at BETWEEN ? AND ?", "2024-01-01", "2024-12-31")
		if got, want := qb.Clause(), "WHERE created_at BETWEEN $1 AND $2"; got != want {
			t.Errorf("Clause() = %q, want %q", got, want)
		}
	})
}
