package repository

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"storefront-api/internal/data/entity"

	"github.com/google/uuid"
)

// NewMemoryRepository keeps every collection in process memory.
// It backs memory mode when Postgres is unreachable and is the store used by tests.
func NewMemoryRepository() *Repository {
	return &Repository{
		User:     &memUserRepo{rows: map[string]*entity.User{}},
		Product:  &memProductRepo{rows: map[uuid.UUID]*entity.Product{}},
		Category: &memCategoryRepo{rows: map[uuid.UUID]*entity.Category{}},
		Slider:   &memSliderRepo{rows: map[uuid.UUID]*entity.Slider{}},
		Heading:  &memHeadingRepo{rows: map[string]*entity.Heading{}},
		Setting:  &memSettingRepo{},
		Order:    &memOrderRepo{rows: map[uuid.UUID]*entity.Order{}},
	}
}

func newestFirst[T any](rows []*T, seq func(*T) int64) {
	sort.Slice(rows, func(i, j int) bool { return seq(rows[i]) > seq(rows[j]) })
}

func window[T any](rows []*T, limit, offset int) []*T {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(rows) {
		return []*T{}
	}
	rows = rows[offset:]
	if limit > 0 && limit < len(rows) {
		rows = rows[:limit]
	}
	return rows
}

func cloneStrings(s []string) []string {
	if s == nil {
		return []string{}
	}
	out := make([]string, len(s))
	copy(out, s)
	return out
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

// ==================== USERS ====================

type memUserRepo struct {
	mu   sync.RWMutex
	seq  int64
	rows map[string]*entity.User
}

func (m *memUserRepo) Upsert(_ context.Context, user *entity.User) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if existing, ok := m.rows[user.Email]; ok {
		existing.Name = user.Name
		existing.Phone = user.Phone
		existing.Address = user.Address
		existing.PhotoURL = user.PhotoURL
		existing.UpdatedAt = user.UpdatedAt
		cp := *existing
		return &cp, nil
	}

	m.seq++
	stored := *user
	stored.Seq = m.seq
	stored.Role = entity.RoleCustomer
	m.rows[user.Email] = &stored
	cp := stored
	return &cp, nil
}

func (m *memUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.rows[email]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (m *memUserRepo) SetRole(_ context.Context, email string, role entity.UserRole) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.rows[email]
	if !ok {
		return fmt.Errorf("user %s: %w", email, ErrNotFound)
	}
	u.Role = role
	u.UpdatedAt = time.Now()
	return nil
}

func (m *memUserRepo) FindAll(_ context.Context, limit, offset int) ([]*entity.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*entity.User, 0, len(m.rows))
	for _, u := range m.rows {
		cp := *u
		out = append(out, &cp)
	}
	newestFirst(out, func(u *entity.User) int64 { return u.Seq })
	return window(out, limit, offset), nil
}

func (m *memUserRepo) CountAll(_ context.Context) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return int64(len(m.rows)), nil
}

// ==================== PRODUCTS ====================

type memProductRepo struct {
	mu   sync.RWMutex
	seq  int64
	rows map[uuid.UUID]*entity.Product
}

func cloneProduct(p *entity.Product) *entity.Product {
	cp := *p
	cp.Images = cloneStrings(p.Images)
	cp.Sizes = cloneStrings(p.Sizes)
	cp.Colors = cloneStrings(p.Colors)
	cp.Specifications = cloneStrings(p.Specifications)
	return &cp
}

func productMatches(p *entity.Product, f entity.ProductFilter) bool {
	if f.Demographic != "" && p.Demographic != f.Demographic {
		return false
	}
	if f.Category != "" && p.Category != f.Category {
		return false
	}
	if f.Search != "" {
		return containsFold(p.Title, f.Search) ||
			containsFold(p.Description, f.Search) ||
			containsFold(p.Category, f.Search) ||
			containsFold(p.Demographic, f.Search)
	}
	return true
}

func (m *memProductRepo) Create(_ context.Context, product *entity.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	product.Seq = m.seq
	m.rows[product.ID] = cloneProduct(product)
	return nil
}

func (m *memProductRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.rows[id]
	if !ok {
		return nil, nil
	}
	return cloneProduct(p), nil
}

func (m *memProductRepo) FindAll(_ context.Context, filter entity.ProductFilter, limit, offset int) ([]*entity.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []*entity.Product{}
	for _, p := range m.rows {
		if productMatches(p, filter) {
			out = append(out, cloneProduct(p))
		}
	}
	newestFirst(out, func(p *entity.Product) int64 { return p.Seq })
	return window(out, limit, offset), nil
}

func (m *memProductRepo) Count(_ context.Context, filter entity.ProductFilter) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var n int64
	for _, p := range m.rows {
		if productMatches(p, filter) {
			n++
		}
	}
	return n, nil
}

func (m *memProductRepo) Update(_ context.Context, product *entity.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.rows[product.ID]
	if !ok {
		return fmt.Errorf("product %s: %w", product.ID, ErrNotFound)
	}
	updated := cloneProduct(product)
	updated.Seq = existing.Seq
	updated.CreatedAt = existing.CreatedAt
	m.rows[product.ID] = updated
	return nil
}

func (m *memProductRepo) Delete(_ context.Context, id uuid.UUID) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[id]; !ok {
		return 0, nil
	}
	delete(m.rows, id)
	return 1, nil
}

// ==================== CATEGORIES ====================

type memCategoryRepo struct {
	mu   sync.RWMutex
	seq  int64
	rows map[uuid.UUID]*entity.Category
}

func (m *memCategoryRepo) Create(_ context.Context, category *entity.Category) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	category.Seq = m.seq
	cp := *category
	m.rows[category.ID] = &cp
	return nil
}

func (m *memCategoryRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Category, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.rows[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (m *memCategoryRepo) FindAll(_ context.Context, filter entity.CategoryFilter, limit int) ([]*entity.Category, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []*entity.Category{}
	for _, c := range m.rows {
		if filter.Demographic != "" && c.Demographic != filter.Demographic {
			continue
		}
		cp := *c
		out = append(out, &cp)
	}
	newestFirst(out, func(c *entity.Category) int64 { return c.Seq })
	return window(out, limit, 0), nil
}

func (m *memCategoryRepo) CountAll(_ context.Context) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return int64(len(m.rows)), nil
}

func (m *memCategoryRepo) Update(_ context.Context, category *entity.Category) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.rows[category.ID]
	if !ok {
		return fmt.Errorf("category %s: %w", category.ID, ErrNotFound)
	}
	cp := *category
	cp.Seq = existing.Seq
	cp.CreatedAt = existing.CreatedAt
	m.rows[category.ID] = &cp
	return nil
}

func (m *memCategoryRepo) Delete(_ context.Context, id uuid.UUID) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[id]; !ok {
		return 0, nil
	}
	delete(m.rows, id)
	return 1, nil
}

// ==================== SLIDERS ====================

type memSliderRepo struct {
	mu   sync.RWMutex
	seq  int64
	rows map[uuid.UUID]*entity.Slider
}

func (m *memSliderRepo) Create(_ context.Context, slider *entity.Slider) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	slider.Seq = m.seq
	cp := *slider
	m.rows[slider.ID] = &cp
	return nil
}

func (m *memSliderRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Slider, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.rows[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (m *memSliderRepo) FindAll(_ context.Context, limit int) ([]*entity.Slider, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*entity.Slider, 0, len(m.rows))
	for _, s := range m.rows {
		cp := *s
		out = append(out, &cp)
	}
	newestFirst(out, func(s *entity.Slider) int64 { return s.Seq })
	return window(out, limit, 0), nil
}

func (m *memSliderRepo) Update(_ context.Context, slider *entity.Slider) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.rows[slider.ID]
	if !ok {
		return fmt.Errorf("slider %s: %w", slider.ID, ErrNotFound)
	}
	cp := *slider
	cp.Seq = existing.Seq
	cp.CreatedAt = existing.CreatedAt
	m.rows[slider.ID] = &cp
	return nil
}

func (m *memSliderRepo) Delete(_ context.Context, id uuid.UUID) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[id]; !ok {
		return 0, nil
	}
	delete(m.rows, id)
	return 1, nil
}

// ==================== CONTENT ====================

type memHeadingRepo struct {
	mu   sync.RWMutex
	rows map[string]*entity.Heading
}

func (m *memHeadingRepo) FindAll(_ context.Context) ([]*entity.Heading, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*entity.Heading, 0, len(m.rows))
	for _, h := range m.rows {
		cp := *h
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memHeadingRepo) Upsert(_ context.Context, heading *entity.Heading) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *heading
	m.rows[heading.ID] = &cp
	return nil
}

type memSettingRepo struct {
	mu      sync.RWMutex
	setting *entity.Setting
}

func (m *memSettingRepo) Find(_ context.Context) (*entity.Setting, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.setting == nil {
		return nil, nil
	}
	cp := *m.setting
	return &cp, nil
}

func (m *memSettingRepo) Upsert(_ context.Context, setting *entity.Setting) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *setting
	cp.ID = entity.SettingID
	m.setting = &cp
	return nil
}

// ==================== ORDERS ====================

type memOrderRepo struct {
	mu   sync.RWMutex
	seq  int64
	rows map[uuid.UUID]*entity.Order
}

func cloneOrder(o *entity.Order) *entity.Order {
	cp := *o
	cp.Items = make([]entity.OrderItem, len(o.Items))
	copy(cp.Items, o.Items)
	return &cp
}

func orderMatches(o *entity.Order, f entity.OrderFilter) bool {
	if f.Status != nil && o.Status != *f.Status {
		return false
	}
	if f.DeliveryEmail != "" && o.Delivery.Email != f.DeliveryEmail {
		return false
	}
	if f.DeliveryPhone != "" && o.Delivery.Phone != f.DeliveryPhone {
		return false
	}
	if f.TransactionID != "" && o.Payment.TransactionID != f.TransactionID {
		return false
	}
	if f.Query != "" {
		q := f.Query
		return string(o.Status) == q || o.Delivery.Email == q || o.Delivery.Phone == q || o.Payment.TransactionID == q
	}
	return true
}

func (m *memOrderRepo) Create(_ context.Context, order *entity.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	order.Seq = m.seq
	m.rows[order.ID] = cloneOrder(order)
	return nil
}

func (m *memOrderRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	o, ok := m.rows[id]
	if !ok {
		return nil, nil
	}
	return cloneOrder(o), nil
}

func (m *memOrderRepo) FindAll(_ context.Context, filter entity.OrderFilter, limit, offset int) ([]*entity.Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []*entity.Order{}
	for _, o := range m.rows {
		if orderMatches(o, filter) {
			out = append(out, cloneOrder(o))
		}
	}
	newestFirst(out, func(o *entity.Order) int64 { return o.Seq })
	return window(out, limit, offset), nil
}

func (m *memOrderRepo) Count(_ context.Context, filter entity.OrderFilter) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var n int64
	for _, o := range m.rows {
		if orderMatches(o, filter) {
			n++
		}
	}
	return n, nil
}

func (m *memOrderRepo) CountPlacedBetween(_ context.Context, from, to time.Time) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var n int64
	for _, o := range m.rows {
		if !o.PlacedAt.Before(from) && o.PlacedAt.Before(to) {
			n++
		}
	}
	return n, nil
}

func (m *memOrderRepo) UpdateStatus(_ context.Context, id uuid.UUID, from, to entity.OrderStatus, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.rows[id]
	if !ok {
		return fmt.Errorf("order %s: %w", id, ErrNotFound)
	}
	if o.Status != from {
		return fmt.Errorf("order %s: %w", id, ErrStaleStatus)
	}
	o.Status = to
	o.UpdatedAt = at
	return nil
}
