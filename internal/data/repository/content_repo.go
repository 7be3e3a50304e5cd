package repository

import (
	"context"
	"errors"
	"fmt"

	"storefront-api/internal/data/entity"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type HeadingRepository interface {
	FindAll(ctx context.Context) ([]*entity.Heading, error)
	Upsert(ctx context.Context, heading *entity.Heading) error
}

type SettingRepository interface {
	// Find returns nil when the singleton has never been written.
	Find(ctx context.Context) (*entity.Setting, error)
	Upsert(ctx context.Context, setting *entity.Setting) error
}

type headingRepository struct {
	base
	log *zap.Logger
}

func NewHeadingRepository(b base, log *zap.Logger) HeadingRepository {
	return &headingRepository{base: b, log: log.With(zap.String("repository", "heading"))}
}

func (r *headingRepository) FindAll(ctx context.Context) ([]*entity.Heading, error) {
	ctx, cancel := r.ctx(ctx)
	defer cancel()

	rows, err := r.db.Query(ctx, `SELECT id, title, subtitle, updated_at FROM headings ORDER BY id`)
	if err != nil {
		r.log.Error("Failed to list headings", zap.Error(err))
		return nil, fmt.Errorf("list headings: %w", err)
	}
	defer rows.Close()

	headings := []*entity.Heading{}
	for rows.Next() {
		var h entity.Heading
		if err := rows.Scan(&h.ID, &h.Title, &h.Subtitle, &h.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan heading row: %w", err)
		}
		headings = append(headings, &h)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate heading rows: %w", err)
	}
	return headings, nil
}

func (r *headingRepository) Upsert(ctx context.Context, heading *entity.Heading) error {
	ctx, cancel := r.ctx(ctx)
	defer cancel()

	query := `
		INSERT INTO headings (id, title, subtitle, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE
		SET title = EXCLUDED.title, subtitle = EXCLUDED.subtitle, updated_at = EXCLUDED.updated_at
	`

	if _, err := r.db.Exec(ctx, query, heading.ID, heading.Title, heading.Subtitle, heading.UpdatedAt); err != nil {
		r.log.Error("Failed to upsert heading", zap.Error(err), zap.String("heading_id", heading.ID))
		return fmt.Errorf("upsert heading: %w", err)
	}
	return nil
}

type settingRepository struct {
	base
	log *zap.Logger
}

func NewSettingRepository(b base, log *zap.Logger) SettingRepository {
	return &settingRepository{base: b, log: log.With(zap.String("repository", "setting"))}
}

func (r *settingRepository) Find(ctx context.Context) (*entity.Setting, error) {
	ctx, cancel := r.ctx(ctx)
	defer cancel()

	query := `
		SELECT id, navbar_title, display, about_us, terms, contact, updated_at
		FROM settings
		WHERE id = $1
	`

	var s entity.Setting
	err := r.db.QueryRow(ctx, query, entity.SettingID).Scan(
		&s.ID,
		&s.NavbarTitle,
		&s.Display,
		&s.AboutUs,
		&s.Terms,
		&s.Contact,
		&s.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to load settings", zap.Error(err))
		return nil, fmt.Errorf("load settings: %w", err)
	}

	return &s, nil
}

func (r *settingRepository) Upsert(ctx context.Context, setting *entity.Setting) error {
	ctx, cancel := r.ctx(ctx)
	defer cancel()

	query := `
		INSERT INTO settings (id, navbar_title, display, about_us, terms, contact, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE
		SET navbar_title = EXCLUDED.navbar_title,
		    display = EXCLUDED.display,
		    about_us = EXCLUDED.about_us,
		    terms = EXCLUDED.terms,
		    contact = EXCLUDED.contact,
		    updated_at = EXCLUDED.updated_at
	`

	_, err := r.db.Exec(ctx, query,
		entity.SettingID,
		setting.NavbarTitle,
		setting.Display,
		setting.AboutUs,
		setting.Terms,
		setting.Contact,
		setting.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to save settings", zap.Error(err))
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}
