package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"storefront-api/internal/data/entity"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// ErrStaleStatus means the order status moved between read and write.
var ErrStaleStatus = errors.New("order status changed concurrently")

type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error)
	// FindAll lists orders newest first. limit <= 0 means no limit.
	FindAll(ctx context.Context, filter entity.OrderFilter, limit, offset int) ([]*entity.Order, error)
	Count(ctx context.Context, filter entity.OrderFilter) (int64, error)
	CountPlacedBetween(ctx context.Context, from, to time.Time) (int64, error)
	// UpdateStatus writes to only if the stored status still equals from.
	// A missing row yields ErrNotFound, a changed status ErrStaleStatus.
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to entity.OrderStatus, at time.Time) error
}

type orderRepository struct {
	base
	log *zap.Logger
}

func NewOrderRepository(b base, log *zap.Logger) OrderRepository {
	return &orderRepository{
		base: b,
		log:  log.With(zap.String("repository", "order")),
	}
}

const orderColumns = `id, seq, items, delivery_name, delivery_email, delivery_phone, delivery_address,
	transaction_id, payment_method, status, total, placed_at, updated_at`

func scanOrder(row pgx.Row) (*entity.Order, error) {
	var o entity.Order
	var status string
	err := row.Scan(
		&o.ID,
		&o.Seq,
		&o.Items,
		&o.Delivery.Name,
		&o.Delivery.Email,
		&o.Delivery.Phone,
		&o.Delivery.Address,
		&o.Payment.TransactionID,
		&o.Payment.Method,
		&status,
		&o.Total,
		&o.PlacedAt,
		&o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	o.Status = entity.OrderStatus(status)
	return &o, nil
}

func (r *orderRepository) Create(ctx context.Context, order *entity.Order) error {
	ctx, cancel := r.ctx(ctx)
	defer cancel()

	query := `
		INSERT INTO orders (id, items, delivery_name, delivery_email, delivery_phone, delivery_address,
		                    transaction_id, payment_method, status, total, placed_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING seq
	`

	err := r.db.QueryRow(ctx, query,
		order.ID,
		order.Items,
		order.Delivery.Name,
		order.Delivery.Email,
		order.Delivery.Phone,
		order.Delivery.Address,
		order.Payment.TransactionID,
		order.Payment.Method,
		string(order.Status),
		order.Total,
		order.PlacedAt,
		order.UpdatedAt,
	).Scan(&order.Seq)
	if err != nil {
		r.log.Error("Failed to create order",
			zap.Error(err),
			zap.String("delivery_email", order.Delivery.Email),
		)
		return fmt.Errorf("failed to create order: %w", err)
	}

	return nil
}

func (r *orderRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	ctx, cancel := r.ctx(ctx)
	defer cancel()

	order, err := scanOrder(r.db.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find order by ID", zap.Error(err), zap.String("order_id", id.String()))
		return nil, fmt.Errorf("failed to find order: %w", err)
	}

	return order, nil
}

func orderWhere(filter entity.OrderFilter) (string, []any) {
	var sb strings.Builder
	sb.WriteString(" WHERE 1=1")
	args := []any{}

	add := func(column, value string) {
		args = append(args, value)
		sb.WriteString(fmt.Sprintf(" AND %s = $%d", column, len(args)))
	}

	if filter.Status != nil {
		add("status", string(*filter.Status))
	}
	if filter.DeliveryEmail != "" {
		add("delivery_email", filter.DeliveryEmail)
	}
	if filter.DeliveryPhone != "" {
		add("delivery_phone", filter.DeliveryPhone)
	}
	if filter.TransactionID != "" {
		add("transaction_id", filter.TransactionID)
	}
	if filter.Query != "" {
		args = append(args, filter.Query)
		n := len(args)
		sb.WriteString(fmt.Sprintf(
			" AND (status = $%d OR delivery_email = $%d OR delivery_phone = $%d OR transaction_id = $%d)",
			n, n, n, n))
	}

	return sb.String(), args
}

func (r *orderRepository) FindAll(ctx context.Context, filter entity.OrderFilter, limit, offset int) ([]*entity.Order, error) {
	ctx, cancel := r.ctx(ctx)
	defer cancel()

	where, args := orderWhere(filter)

	var qb strings.Builder
	qb.WriteString(`SELECT ` + orderColumns + ` FROM orders`)
	qb.WriteString(where)
	qb.WriteString(" ORDER BY seq DESC")
	if limit > 0 {
		args = append(args, limit, offset)
		qb.WriteString(fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args)))
	}

	rows, err := r.db.Query(ctx, qb.String(), args...)
	if err != nil {
		r.log.Error("Failed to find orders",
			zap.Error(err),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("failed to find orders: %w", err)
	}
	defer rows.Close()

	orders := []*entity.Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			r.log.Error("Failed to scan order row", zap.Error(err))
			return nil, fmt.Errorf("scan order row: %w", err)
		}
		orders = append(orders, o)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate order rows: %w", err)
	}

	return orders, nil
}

func (r *orderRepository) Count(ctx context.Context, filter entity.OrderFilter) (int64, error) {
	ctx, cancel := r.ctx(ctx)
	defer cancel()

	where, args := orderWhere(filter)

	var count int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM orders`+where, args...).Scan(&count); err != nil {
		r.log.Error("Failed to count orders", zap.Error(err))
		return 0, fmt.Errorf("count orders: %w", err)
	}
	return count, nil
}

func (r *orderRepository) CountPlacedBetween(ctx context.Context, from, to time.Time) (int64, error) {
	ctx, cancel := r.ctx(ctx)
	defer cancel()

	var count int64
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM orders WHERE placed_at >= $1 AND placed_at < $2`, from, to).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count orders by placed date", zap.Error(err))
		return 0, fmt.Errorf("count orders placed between: %w", err)
	}
	return count, nil
}

func (r *orderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to entity.OrderStatus, at time.Time) error {
	ctx, cancel := r.ctx(ctx)
	defer cancel()

	result, err := r.db.Exec(ctx,
		`UPDATE orders SET status = $3, updated_at = $4 WHERE id = $1 AND status = $2`,
		id, string(from), string(to), at)
	if err != nil {
		r.log.Error("Failed to update order status",
			zap.Error(err),
			zap.String("order_id", id.String()),
			zap.String("to", string(to)),
		)
		return fmt.Errorf("failed to update order status: %w", err)
	}

	if result.RowsAffected() == 0 {
		var exists bool
		if err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM orders WHERE id = $1)`, id).Scan(&exists); err != nil {
			return fmt.Errorf("failed to check order: %w", err)
		}
		if !exists {
			return fmt.Errorf("order %s: %w", id, ErrNotFound)
		}
		return fmt.Errorf("order %s: %w", id, ErrStaleStatus)
	}

	return nil
}
