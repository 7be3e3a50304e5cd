package repository

import (
	"context"
	"errors"
	"fmt"

	"storefront-api/internal/data/entity"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type UserRepository interface {
	// Upsert inserts or updates the profile keyed by email. Role is never changed here.
	Upsert(ctx context.Context, user *entity.User) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	SetRole(ctx context.Context, email string, role entity.UserRole) error
	FindAll(ctx context.Context, limit, offset int) ([]*entity.User, error)
	CountAll(ctx context.Context) (int64, error)
}

type userRepository struct {
	base
	log *zap.Logger
}

func NewUserRepository(b base, log *zap.Logger) UserRepository {
	return &userRepository{
		base: b,
		log:  log.With(zap.String("repository", "user")),
	}
}

const userColumns = `id, seq, email, name, phone, address, photo_url, role, created_at, updated_at`

func scanUser(row pgx.Row) (*entity.User, error) {
	var user entity.User
	var role string
	err := row.Scan(
		&user.ID,
		&user.Seq,
		&user.Email,
		&user.Name,
		&user.Phone,
		&user.Address,
		&user.PhotoURL,
		&role,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	user.Role = entity.ParseUserRole(role)
	return &user, nil
}

func (ur *userRepository) Upsert(ctx context.Context, user *entity.User) (*entity.User, error) {
	ctx, cancel := ur.ctx(ctx)
	defer cancel()

	query := `
		INSERT INTO users (id, email, name, phone, address, photo_url, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (email) DO UPDATE
		SET name = EXCLUDED.name,
		    phone = EXCLUDED.phone,
		    address = EXCLUDED.address,
		    photo_url = EXCLUDED.photo_url,
		    updated_at = EXCLUDED.updated_at
		RETURNING ` + userColumns

	saved, err := scanUser(ur.db.QueryRow(ctx, query,
		user.ID,
		user.Email,
		user.Name,
		user.Phone,
		user.Address,
		user.PhotoURL,
		entity.RoleCustomer,
		user.CreatedAt,
		user.UpdatedAt,
	))
	if err != nil {
		ur.log.Error("Failed to upsert user",
			zap.Error(err),
			zap.String("email", user.Email),
		)
		return nil, fmt.Errorf("upsert user %s: %w", user.Email, err)
	}

	return saved, nil
}

func (ur *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	ctx, cancel := ur.ctx(ctx)
	defer cancel()

	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	user, err := scanUser(ur.db.QueryRow(ctx, query, email))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		ur.log.Error("Failed to find user by email",
			zap.Error(err),
			zap.String("email", email),
		)
		return nil, fmt.Errorf("find user by email %s: %w", email, err)
	}

	return user, nil
}

func (ur *userRepository) SetRole(ctx context.Context, email string, role entity.UserRole) error {
	ctx, cancel := ur.ctx(ctx)
	defer cancel()

	query := `UPDATE users SET role = $2, updated_at = NOW() WHERE email = $1`

	result, err := ur.db.Exec(ctx, query, email, role)
	if err != nil {
		ur.log.Error("Failed to set user role",
			zap.Error(err),
			zap.String("email", email),
			zap.String("role", string(role)),
		)
		return fmt.Errorf("set role for %s: %w", email, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("user %s: %w", email, ErrNotFound)
	}

	ur.log.Info("User role changed", zap.String("email", email), zap.String("role", string(role)))
	return nil
}

// FindAll lists users newest first.
func (ur *userRepository) FindAll(ctx context.Context, limit, offset int) ([]*entity.User, error) {
	ctx, cancel := ur.ctx(ctx)
	defer cancel()

	query := `SELECT ` + userColumns + ` FROM users ORDER BY seq DESC LIMIT $1 OFFSET $2`

	rows, err := ur.db.Query(ctx, query, limit, offset)
	if err != nil {
		ur.log.Error("Failed to get all users",
			zap.Error(err),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("find all users limit %d offset %d: %w", limit, offset, err)
	}
	defer rows.Close()

	users := []*entity.User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			ur.log.Error("Failed to scan user row", zap.Error(err))
			return nil, fmt.Errorf("scan user row: %w", err)
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		ur.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate users rows: %w", err)
	}

	return users, nil
}

func (ur *userRepository) CountAll(ctx context.Context) (int64, error) {
	ctx, cancel := ur.ctx(ctx)
	defer cancel()

	var count int64
	if err := ur.db.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&count); err != nil {
		ur.log.Error("Database error counting users", zap.Error(err))
		return 0, fmt.Errorf("count all users: %w", err)
	}

	return count, nil
}
