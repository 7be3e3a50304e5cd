package repository

import (
	"context"
	"errors"
	"fmt"

	"storefront-api/internal/data/entity"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Category, error)
	FindAll(ctx context.Context, filter entity.CategoryFilter, limit int) ([]*entity.Category, error)
	CountAll(ctx context.Context) (int64, error)
	Update(ctx context.Context, category *entity.Category) error
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
}

type categoryRepository struct {
	base
	log *zap.Logger
}

func NewCategoryRepository(b base, log *zap.Logger) CategoryRepository {
	return &categoryRepository{
		base: b,
		log:  log.With(zap.String("repository", "category")),
	}
}

const categoryColumns = `id, seq, title, demographic, route, image, created_at, updated_at`

func scanCategory(row pgx.Row) (*entity.Category, error) {
	var c entity.Category
	if err := row.Scan(&c.ID, &c.Seq, &c.Title, &c.Demographic, &c.Route, &c.Image, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *categoryRepository) Create(ctx context.Context, category *entity.Category) error {
	ctx, cancel := r.ctx(ctx)
	defer cancel()

	query := `
		INSERT INTO categories (id, title, demographic, route, image, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING seq
	`

	err := r.db.QueryRow(ctx, query,
		category.ID,
		category.Title,
		category.Demographic,
		category.Route,
		category.Image,
		category.CreatedAt,
		category.UpdatedAt,
	).Scan(&category.Seq)
	if err != nil {
		r.log.Error("Failed to create category", zap.Error(err), zap.String("title", category.Title))
		return fmt.Errorf("failed to create category: %w", err)
	}

	return nil
}

func (r *categoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
	ctx, cancel := r.ctx(ctx)
	defer cancel()

	category, err := scanCategory(r.db.QueryRow(ctx, `SELECT `+categoryColumns+` FROM categories WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find category by ID", zap.Error(err), zap.String("category_id", id.String()))
		return nil, fmt.Errorf("failed to find category: %w", err)
	}

	return category, nil
}

// FindAll lists categories newest first. limit <= 0 means no limit.
func (r *categoryRepository) FindAll(ctx context.Context, filter entity.CategoryFilter, limit int) ([]*entity.Category, error) {
	ctx, cancel := r.ctx(ctx)
	defer cancel()

	query := `SELECT ` + categoryColumns + ` FROM categories
		WHERE ($1 = '' OR demographic = $1)
		ORDER BY seq DESC`
	args := []any{filter.Demographic}
	if limit > 0 {
		query += ` LIMIT $2`
		args = append(args, limit)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to find all categories", zap.Error(err))
		return nil, fmt.Errorf("failed to find categories: %w", err)
	}
	defer rows.Close()

	categories := []*entity.Category{}
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			r.log.Error("Failed to scan category row", zap.Error(err))
			return nil, fmt.Errorf("scan category row: %w", err)
		}
		categories = append(categories, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate category rows: %w", err)
	}

	return categories, nil
}

func (r *categoryRepository) CountAll(ctx context.Context) (int64, error) {
	ctx, cancel := r.ctx(ctx)
	defer cancel()

	var count int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM categories`).Scan(&count); err != nil {
		r.log.Error("Failed to count categories", zap.Error(err))
		return 0, fmt.Errorf("count categories: %w", err)
	}
	return count, nil
}

func (r *categoryRepository) Update(ctx context.Context, category *entity.Category) error {
	ctx, cancel := r.ctx(ctx)
	defer cancel()

	query := `
		UPDATE categories
		SET title = $2, demographic = $3, route = $4, image = $5, updated_at = $6
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		category.ID,
		category.Title,
		category.Demographic,
		category.Route,
		category.Image,
		category.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to update category", zap.Error(err), zap.String("category_id", category.ID.String()))
		return fmt.Errorf("failed to update category: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("category %s: %w", category.ID, ErrNotFound)
	}

	return nil
}

func (r *categoryRepository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	ctx, cancel := r.ctx(ctx)
	defer cancel()

	result, err := r.db.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete category", zap.Error(err), zap.String("category_id", id.String()))
		return 0, fmt.Errorf("failed to delete category: %w", err)
	}

	return result.RowsAffected(), nil
}
