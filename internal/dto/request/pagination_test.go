package request

import "testing"

func TestPaginatedRequestOffsetAndLimit(t *testing.T) {
	cases := []struct {
		name   string
		req    PaginatedRequest
		offset int
		limit  int
	}{
		{"defaults", PaginatedRequest{}, 0, 10},
		{"first page", PaginatedRequest{Page: 1, PerPage: 20}, 0, 20},
		{"third page", PaginatedRequest{Page: 3, PerPage: 20}, 40, 20},
		{"per page capped", PaginatedRequest{Page: 2, PerPage: 500}, 100, 100},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.req.Offset(); got != tc.offset {
				t.Fatalf("offset = %d, want %d", got, tc.offset)
			}
			if got := tc.req.Limit(); got != tc.limit {
				t.Fatalf("limit = %d, want %d", got, tc.limit)
			}
		})
	}
}
