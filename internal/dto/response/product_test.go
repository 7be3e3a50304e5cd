package response

import (
	"testing"
)

func TestProjectKeepsRequestedFieldsAndID(t *testing.T) {
	items := []ProductResponse{{ID: "1", Title: "Shirt", Price: 19.99, Category: "tops"}}

	got, err := Project(items, []string{"title", "price"})
	if err != nil {
		t.Fatalf("project: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d items", len(got))
	}

	row := got[0]
	if len(row) != 3 {
		t.Fatalf("row keys = %v, want id, title, price", row)
	}
	if row["price"] != 19.99 || row["title"] != "Shirt" || row["id"] != "1" {
		t.Fatalf("unexpected row %v", row)
	}
}

func TestValidateFields(t *testing.T) {
	if err := ValidateFields([]string{"title", "images"}, ProductFields); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := ValidateFields([]string{"title", "password"}, ProductFields); err == nil {
		t.Fatal("expected unknown field error")
	}
}

func TestNewPaginatedResponse(t *testing.T) {
	resp := NewPaginatedResponse[int](nil, 2, 10, 25)
	if resp.Data == nil || len(resp.Data) != 0 {
		t.Fatal("nil data should become empty slice")
	}
	if resp.Pagination.TotalPages != 3 {
		t.Fatalf("total pages = %d, want 3", resp.Pagination.TotalPages)
	}
}
