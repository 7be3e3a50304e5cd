package repository

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"storefront-api/internal/data/entity"
)

func TestMemoryUserUpsertIsIdempotent(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()
	now := time.Now()

	first := &entity.User{Base: entity.NewBase(now), Email: "alice@example.com", Name: "Alice"}
	if _, err := repo.User.Upsert(ctx, first); err != nil {
		t.Fatalf("first upsert: %v", err)
	}

	second := &entity.User{Base: entity.NewBase(now.Add(time.Second)), Email: "alice@example.com", Name: "Alice B", Phone: "555"}
	saved, err := repo.User.Upsert(ctx, second)
	if err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	if saved.ID != first.ID {
		t.Fatalf("upsert changed id: %s -> %s", first.ID, saved.ID)
	}
	if saved.Name != "Alice B" || saved.Phone != "555" {
		t.Fatalf("latest values not applied: %+v", saved)
	}
	if n, _ := repo.User.CountAll(ctx); n != 1 {
		t.Fatalf("user count = %d, want 1", n)
	}
}

func TestMemoryUserRoleSurvivesUpsert(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()

	_, _ = repo.User.Upsert(ctx, &entity.User{Base: entity.NewBase(time.Now()), Email: "a@x.io"})
	if err := repo.User.SetRole(ctx, "a@x.io", entity.RoleAdmin); err != nil {
		t.Fatalf("set role: %v", err)
	}
	saved, _ := repo.User.Upsert(ctx, &entity.User{Base: entity.NewBase(time.Now()), Email: "a@x.io", Name: "A"})
	if saved.Role != entity.RoleAdmin {
		t.Fatalf("role = %s, want admin", saved.Role)
	}

	if err := repo.User.SetRole(ctx, "nobody@x.io", entity.RoleAdmin); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestMemoryProductLatestN(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()

	for i := 1; i <= 5; i++ {
		p := &entity.Product{Base: entity.NewBase(time.Now()), Title: fmt.Sprintf("p%d", i)}
		if err := repo.Product.Create(ctx, p); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	tests := []struct {
		limit int
		want  []string
	}{
		{3, []string{"p5", "p4", "p3"}},
		{10, []string{"p5", "p4", "p3", "p2", "p1"}},
	}
	for _, tt := range tests {
		got, err := repo.Product.FindAll(ctx, entity.ProductFilter{}, tt.limit, 0)
		if err != nil {
			t.Fatalf("find all: %v", err)
		}
		if len(got) != len(tt.want) {
			t.Fatalf("limit %d: got %d items, want %d", tt.limit, len(got), len(tt.want))
		}
		for i := range got {
			if got[i].Title != tt.want[i] {
				t.Fatalf("limit %d: item %d = %s, want %s", tt.limit, i, got[i].Title, tt.want[i])
			}
		}
	}
}

func TestMemoryProductSearch(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()
	_ = repo.Product.Create(ctx, &entity.Product{Base: entity.NewBase(time.Now()), Title: "Linen Shirt", Category: "shirts", Demographic: "men"})
	_ = repo.Product.Create(ctx, &entity.Product{Base: entity.NewBase(time.Now()), Title: "Summer Dress", Description: "light LINEN", Category: "dresses", Demographic: "women"})
	_ = repo.Product.Create(ctx, &entity.Product{Base: entity.NewBase(time.Now()), Title: "Boots", Category: "shoes", Demographic: "women"})

	tests := []struct {
		name   string
		filter entity.ProductFilter
		want   int64
	}{
		{"search across title and description", entity.ProductFilter{Search: "linen"}, 2},
		{"search demographic", entity.ProductFilter{Search: "WOMEN"}, 2},
		{"demographic and search", entity.ProductFilter{Demographic: "women", Search: "linen"}, 1},
		{"category", entity.ProductFilter{Category: "shoes"}, 1},
		{"no match", entity.ProductFilter{Search: "hat"}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, _ := repo.Product.Count(ctx, tt.filter)
			if n != tt.want {
				t.Fatalf("count = %d, want %d", n, tt.want)
			}
		})
	}
}

func TestMemoryDeleteIsIdempotent(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()
	p := &entity.Product{Base: entity.NewBase(time.Now()), Title: "x"}
	_ = repo.Product.Create(ctx, p)

	if n, _ := repo.Product.Delete(ctx, p.ID); n != 1 {
		t.Fatalf("first delete = %d, want 1", n)
	}
	if n, err := repo.Product.Delete(ctx, p.ID); err != nil || n != 0 {
		t.Fatalf("second delete = %d, %v; want 0, nil", n, err)
	}
}

func TestMemoryOrderFilters(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()

	mk := func(email, phone, tx string, status entity.OrderStatus) {
		o := &entity.Order{
			ID:       entity.NewBase(time.Now()).ID,
			Delivery: entity.Delivery{Email: email, Phone: phone},
			Payment:  entity.Payment{TransactionID: tx},
			Status:   status,
			PlacedAt: time.Now(),
		}
		_ = repo.Order.Create(ctx, o)
	}
	mk("a@x.io", "111", "tx-1", entity.OrderStatusPlaced)
	mk("b@x.io", "222", "tx-2", entity.OrderStatusDelivered)
	mk("a@x.io", "333", "tx-3", entity.OrderStatusDelivered)

	delivered := entity.OrderStatusDelivered
	tests := []struct {
		name   string
		filter entity.OrderFilter
		want   int64
	}{
		{"all", entity.OrderFilter{}, 3},
		{"status", entity.OrderFilter{Status: &delivered}, 2},
		{"email and status", entity.OrderFilter{DeliveryEmail: "a@x.io", Status: &delivered}, 1},
		{"query matches phone", entity.OrderFilter{Query: "222"}, 1},
		{"query matches transaction", entity.OrderFilter{Query: "tx-3"}, 1},
		{"query matches email", entity.OrderFilter{Query: "a@x.io"}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, _ := repo.Order.Count(ctx, tt.filter)
			if n != tt.want {
				t.Fatalf("count = %d, want %d", n, tt.want)
			}
		})
	}
}

func TestMemoryOrderUpdateStatusCompareAndSet(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()
	o := &entity.Order{ID: entity.NewBase(time.Now()).ID, Status: entity.OrderStatusPlaced, PlacedAt: time.Now()}
	_ = repo.Order.Create(ctx, o)

	if err := repo.Order.UpdateStatus(ctx, o.ID, entity.OrderStatusPlaced, entity.OrderStatusProcessing, time.Now()); err != nil {
		t.Fatalf("update: %v", err)
	}
	err := repo.Order.UpdateStatus(ctx, o.ID, entity.OrderStatusPlaced, entity.OrderStatusCancelled, time.Now())
	if !errors.Is(err, ErrStaleStatus) {
		t.Fatalf("err = %v, want ErrStaleStatus", err)
	}

	err = repo.Order.UpdateStatus(ctx, entity.NewBase(time.Now()).ID, entity.OrderStatusPlaced, entity.OrderStatusCancelled, time.Now())
	if !errors.Is(err, ErrNotFound) || errors.Is(err, ErrStaleStatus) {
		t.Fatalf("missing order err = %v, want ErrNotFound", err)
	}
}
