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

type SliderRepository interface {
	Create(ctx context.Context, slider *entity.Slider) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Slider, error)
	FindAll(ctx context.Context, limit int) ([]*entity.Slider, error)
	Update(ctx context.Context, slider *entity.Slider) error
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
}

type sliderRepository struct {
	base
	log *zap.Logger
}

func NewSliderRepository(b base, log *zap.Logger) SliderRepository {
	return &sliderRepository{
		base: b,
		log:  log.With(zap.String("repository", "slider")),
	}
}

const sliderColumns = `id, seq, title, image, created_at, updated_at`

func scanSlider(row pgx.Row) (*entity.Slider, error) {
	var s entity.Slider
	if err := row.Scan(&s.ID, &s.Seq, &s.Title, &s.Image, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *sliderRepository) Create(ctx context.Context, slider *entity.Slider) error {
	ctx, cancel := r.ctx(ctx)
	defer cancel()

	query := `
		INSERT INTO sliders (id, title, image, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING seq
	`

	err := r.db.QueryRow(ctx, query, slider.ID, slider.Title, slider.Image, slider.CreatedAt, slider.UpdatedAt).Scan(&slider.Seq)
	if err != nil {
		r.log.Error("Failed to create slider", zap.Error(err))
		return fmt.Errorf("failed to create slider: %w", err)
	}

	return nil
}

func (r *sliderRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Slider, error) {
	ctx, cancel := r.ctx(ctx)
	defer cancel()

	slider, err := scanSlider(r.db.QueryRow(ctx, `SELECT `+sliderColumns+` FROM sliders WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find slider by ID", zap.Error(err), zap.String("slider_id", id.String()))
		return nil, fmt.Errorf("failed to find slider: %w", err)
	}

	return slider, nil
}

// FindAll lists sliders newest first. limit <= 0 means no limit.
func (r *sliderRepository) FindAll(ctx context.Context, limit int) ([]*entity.Slider, error) {
	ctx, cancel := r.ctx(ctx)
	defer cancel()

	query := `SELECT ` + sliderColumns + ` FROM sliders ORDER BY seq DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT $1`
		args = append(args, limit)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to find all sliders", zap.Error(err))
		return nil, fmt.Errorf("failed to find sliders: %w", err)
	}
	defer rows.Close()

	sliders := []*entity.Slider{}
	for rows.Next() {
		s, err := scanSlider(rows)
		if err != nil {
			return nil, fmt.Errorf("scan slider row: %w", err)
		}
		sliders = append(sliders, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate slider rows: %w", err)
	}

	return sliders, nil
}

func (r *sliderRepository) Update(ctx context.Context, slider *entity.Slider) error {
	ctx, cancel := r.ctx(ctx)
	defer cancel()

	result, err := r.db.Exec(ctx,
		`UPDATE sliders SET title = $2, image = $3, updated_at = $4 WHERE id = $1`,
		slider.ID, slider.Title, slider.Image, slider.UpdatedAt)
	if err != nil {
		r.log.Error("Failed to update slider", zap.Error(err), zap.String("slider_id", slider.ID.String()))
		return fmt.Errorf("failed to update slider: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("slider %s: %w", slider.ID, ErrNotFound)
	}

	return nil
}

func (r *sliderRepository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	ctx, cancel := r.ctx(ctx)
	defer cancel()

	result, err := r.db.Exec(ctx, `DELETE FROM sliders WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete slider", zap.Error(err), zap.String("slider_id", id.String()))
		return 0, fmt.Errorf("failed to delete slider: %w", err)
	}

	return result.RowsAffected(), nil
}
