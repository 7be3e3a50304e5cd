package repository

import (
	"strings"
	"testing"

	"storefront-api/internal/data/entity"
)

func TestLikePatternEscapesWildcards(t *testing.T) {
	tests := map[string]string{
		"shirt":  "%shirt%",
		"50%":    `%50\%%`,
		"a_b":    `%a\_b%`,
		`back\s`: `%back\\s%`,
	}
	for in, want := range tests {
		if got := likePattern(in); got != want {
			t.Errorf("likePattern(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestProductWhereBindsOneSearchArg(t *testing.T) {
	where, args := productWhere(entity.ProductFilter{Demographic: "women", Search: "linen"})

	if len(args) != 2 {
		t.Fatalf("args = %v, want 2 values", args)
	}
	if !strings.Contains(where, "demographic = $1") || !strings.Contains(where, "title ILIKE $2") {
		t.Fatalf("unexpected where clause: %s", where)
	}
}

func TestOrderWhereCombinesFieldsWithQuery(t *testing.T) {
	status := entity.OrderStatusPlaced
	where, args := orderWhere(entity.OrderFilter{Status: &status, Query: "tx-9"})

	if len(args) != 2 || args[0] != "placed" || args[1] != "tx-9" {
		t.Fatalf("args = %v", args)
	}
	if !strings.Contains(where, "status = $1") || !strings.Contains(where, "transaction_id = $2)") {
		t.Fatalf("unexpected where clause: %s", where)
	}
}
