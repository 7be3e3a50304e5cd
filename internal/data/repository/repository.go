package repository

import (
	"context"
	"errors"
	"time"

	"storefront-api/pkg/database"

	"go.uber.org/zap"
)

// ErrNotFound is returned by writes that target a missing row. Reads return (nil, nil) instead.
var ErrNotFound = errors.New("record not found")

type Repository struct {
	User     UserRepository
	Product  ProductRepository
	Category CategoryRepository
	Slider   SliderRepository
	Heading  HeadingRepository
	Setting  SettingRepository
	Order    OrderRepository

	ping  func(ctx context.Context) error
	close func()
}

// NewRepository builds the Postgres-backed repositories. Every call is bounded by queryTimeout.
func NewRepository(db database.PgxIface, queryTimeout time.Duration, log *zap.Logger) *Repository {
	b := base{db: db, timeout: queryTimeout}
	return &Repository{
		User:     NewUserRepository(b, log),
		Product:  NewProductRepository(b, log),
		Category: NewCategoryRepository(b, log),
		Slider:   NewSliderRepository(b, log),
		Heading:  NewHeadingRepository(b, log),
		Setting:  NewSettingRepository(b, log),
		Order:    NewOrderRepository(b, log),
		ping:     db.Ping,
		close:    db.Close,
	}
}

// Ping reports whether the backing store is reachable.
func (r *Repository) Ping(ctx context.Context) error {
	if r.ping == nil {
		return nil
	}
	return r.ping(ctx)
}

// Close releases the connection pool. The in-memory store has nothing to release.
func (r *Repository) Close() {
	if r.close != nil {
		r.close()
	}
}

type base struct {
	db      database.PgxIface
	timeout time.Duration
}

func (b base) ctx(ctx context.Context) (context.Context, context.CancelFunc) {
	return database.WithTimeout(ctx, b.timeout)
}

// likePattern escapes LIKE wildcards and wraps s for a substring match.
func likePattern(s string) string {
	r := []rune{}
	for _, c := range s {
		if c == '%' || c == '_' || c == '\\' {
			r = append(r, '\\')
		}
		r = append(r, c)
	}
	return "%" + string(r) + "%"
}

// nonNil keeps TEXT[] NOT NULL columns happy.
func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
