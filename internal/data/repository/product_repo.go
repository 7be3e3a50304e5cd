package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"storefront-api/internal/data/entity"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)
	// FindAll lists products newest first. limit <= 0 means no limit.
	FindAll(ctx context.Context, filter entity.ProductFilter, limit, offset int) ([]*entity.Product, error)
	Count(ctx context.Context, filter entity.ProductFilter) (int64, error)
	Update(ctx context.Context, product *entity.Product) error
	// Delete removes the row and returns how many rows went away (0 or 1).
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
}

type productRepository struct {
	base
	log *zap.Logger
}

func NewProductRepository(b base, log *zap.Logger) ProductRepository {
	return &productRepository{
		base: b,
		log:  log.With(zap.String("repository", "product")),
	}
}

const productColumns = `id, seq, title, price, images, category, demographic, description,
	sizes, colors, specifications, created_at, updated_at`

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(
		&p.ID,
		&p.Seq,
		&p.Title,
		&p.Price,
		&p.Images,
		&p.Category,
		&p.Demographic,
		&p.Description,
		&p.Sizes,
		&p.Colors,
		&p.Specifications,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *productRepository) Create(ctx context.Context, product *entity.Product) error {
	ctx, cancel := r.ctx(ctx)
	defer cancel()

	query := `
		INSERT INTO products (id, title, price, images, category, demographic, description,
		                      sizes, colors, specifications, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING seq
	`

	err := r.db.QueryRow(ctx, query,
		product.ID,
		product.Title,
		product.Price,
		nonNil(product.Images),
		product.Category,
		product.Demographic,
		product.Description,
		nonNil(product.Sizes),
		nonNil(product.Colors),
		nonNil(product.Specifications),
		product.CreatedAt,
		product.UpdatedAt,
	).Scan(&product.Seq)

	if err != nil {
		r.log.Error("Failed to create product",
			zap.Error(err),
			zap.String("title", product.Title),
		)
		return fmt.Errorf("failed to create product: %w", err)
	}

	return nil
}

func (r *productRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	ctx, cancel := r.ctx(ctx)
	defer cancel()

	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`

	product, err := scanProduct(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find product by ID",
			zap.Error(err),
			zap.String("product_id", id.String()),
		)
		return nil, fmt.Errorf("failed to find product: %w", err)
	}

	return product, nil
}

// productWhere builds the WHERE clause shared by FindAll and Count.
func productWhere(filter entity.ProductFilter) (string, []any) {
	var sb strings.Builder
	sb.WriteString(" WHERE 1=1")
	args := []any{}

	if filter.Demographic != "" {
		args = append(args, filter.Demographic)
		sb.WriteString(fmt.Sprintf(" AND demographic = $%d", len(args)))
	}
	if filter.Category != "" {
		args = append(args, filter.Category)
		sb.WriteString(fmt.Sprintf(" AND category = $%d", len(args)))
	}
	if filter.Search != "" {
		args = append(args, likePattern(filter.Search))
		n := len(args)
		sb.WriteString(fmt.Sprintf(
			" AND (title ILIKE $%d OR description ILIKE $%d OR category ILIKE $%d OR demographic ILIKE $%d)",
			n, n, n, n))
	}

	return sb.String(), args
}

func (r *productRepository) FindAll(ctx context.Context, filter entity.ProductFilter, limit, offset int) ([]*entity.Product, error) {
	ctx, cancel := r.ctx(ctx)
	defer cancel()

	where, args := productWhere(filter)

	var qb strings.Builder
	qb.WriteString(`SELECT ` + productColumns + ` FROM products`)
	qb.WriteString(where)
	qb.WriteString(" ORDER BY seq DESC")
	if limit > 0 {
		args = append(args, limit, offset)
		qb.WriteString(fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args)))
	}

	rows, err := r.db.Query(ctx, qb.String(), args...)
	if err != nil {
		r.log.Error("Failed to find all products",
			zap.Error(err),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("failed to find products: %w", err)
	}
	defer rows.Close()

	products := []*entity.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			r.log.Error("Failed to scan product row", zap.Error(err))
			return nil, fmt.Errorf("scan product row: %w", err)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate product rows: %w", err)
	}

	return products, nil
}

func (r *productRepository) Count(ctx context.Context, filter entity.ProductFilter) (int64, error) {
	ctx, cancel := r.ctx(ctx)
	defer cancel()

	where, args := productWhere(filter)

	var count int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM products`+where, args...).Scan(&count); err != nil {
		r.log.Error("Failed to count products", zap.Error(err))
		return 0, fmt.Errorf("count products: %w", err)
	}

	return count, nil
}

func (r *productRepository) Update(ctx context.Context, product *entity.Product) error {
	ctx, cancel := r.ctx(ctx)
	defer cancel()

	query := `
		UPDATE products
		SET title = $2, price = $3, images = $4, category = $5, demographic = $6,
		    description = $7, sizes = $8, colors = $9, specifications = $10, updated_at = $11
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		product.ID,
		product.Title,
		product.Price,
		nonNil(product.Images),
		product.Category,
		product.Demographic,
		product.Description,
		nonNil(product.Sizes),
		nonNil(product.Colors),
		nonNil(product.Specifications),
		product.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to update product",
			zap.Error(err),
			zap.String("product_id", product.ID.String()),
		)
		return fmt.Errorf("failed to update product: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("product %s: %w", product.ID, ErrNotFound)
	}

	return nil
}

func (r *productRepository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	ctx, cancel := r.ctx(ctx)
	defer cancel()

	result, err := r.db.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete product",
			zap.Error(err),
			zap.String("product_id", id.String()),
		)
		return 0, fmt.Errorf("failed to delete product: %w", err)
	}

	return result.RowsAffected(), nil
}
