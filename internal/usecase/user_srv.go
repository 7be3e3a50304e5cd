package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"storefront-api/internal/data/entity"
	"storefront-api/internal/data/repository"
	"storefront-api/internal/dto/request"
	"storefront-api/internal/dto/response"
	"storefront-api/pkg/cache"
	"storefront-api/pkg/utils"

	"go.uber.org/zap"
)

type UserService interface {
	IsAdmin(ctx context.Context, email string) (bool, error)
	MakeAdmin(ctx context.Context, req *request.RoleRequest) error
	RemoveAdmin(ctx context.Context, req *request.RoleRequest) error
	GetAllUsers(ctx context.Context, req *request.ListRequest) (*response.PaginatedResponse[response.UserResponse], error)
	// SeedAdmins creates each user if missing and grants the admin role.
	SeedAdmins(ctx context.Context, emails []string) error
}

type userService struct {
	userRepo repository.UserRepository
	cache    cache.Cache
	roleTTL  time.Duration
	log      *zap.Logger
}

func NewUserService(userRepo repository.UserRepository, c cache.Cache, roleTTL time.Duration, log *zap.Logger) UserService {
	return &userService{
		userRepo: userRepo,
		cache:    c,
		roleTTL:  roleTTL,
		log:      log.With(zap.String("service", "user")),
	}
}

func roleKey(email string) string {
	return fmt.Sprintf(cache.KeyRole, email)
}

// IsAdmin reports whether email belongs to an admin. Unknown users are not admins.
func (us *userService) IsAdmin(ctx context.Context, email string) (bool, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return false, nil
	}

	if role, found, err := us.cache.Get(ctx, roleKey(email)); err == nil && found {
		return entity.UserRole(role) == entity.RoleAdmin, nil
	}

	user, err := us.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return false, upstream("find user", err)
	}

	// Only known users are cached.
	if user == nil {
		return false, nil
	}
	if err := us.cache.Set(ctx, roleKey(email), string(user.Role), us.roleTTL); err != nil {
		us.log.Warn("Failed to cache role", zap.String("email", email), zap.Error(err))
	}

	return user.Role == entity.RoleAdmin, nil
}

func (us *userService) MakeAdmin(ctx context.Context, req *request.RoleRequest) error {
	return us.setRole(ctx, req, entity.RoleAdmin)
}

func (us *userService) RemoveAdmin(ctx context.Context, req *request.RoleRequest) error {
	return us.setRole(ctx, req, entity.RoleCustomer)
}

func (us *userService) setRole(ctx context.Context, req *request.RoleRequest, role entity.UserRole) error {
	if err := validate(req); err != nil {
		return err
	}

	if err := us.userRepo.SetRole(ctx, req.Email, role); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound("user")
		}
		return upstream("set role", err)
	}

	// Drop the cached role so the gate sees the change on the next request.
	if err := us.cache.Delete(ctx, roleKey(req.Email)); err != nil {
		us.log.Warn("Failed to invalidate role cache", zap.String("email", req.Email), zap.Error(err))
	}

	us.log.Info("Role updated", zap.String("email", req.Email), zap.String("role", string(role)))
	return nil
}

func (us *userService) SeedAdmins(ctx context.Context, emails []string) error {
	for _, email := range emails {
		email = strings.TrimSpace(email)
		if errs := utils.ValidateStruct(request.RoleRequest{Email: email}); len(errs) > 0 {
			return invalid("admin seed %q is not an email", email)
		}

		existing, err := us.userRepo.FindByEmail(ctx, email)
		if err != nil {
			return upstream("find user", err)
		}
		if existing == nil {
			if _, err := us.userRepo.Upsert(ctx, &entity.User{Base: entity.NewBase(time.Now()), Email: email}); err != nil {
				return upstream("seed user", err)
			}
		} else if existing.IsAdmin() {
			continue
		}

		if err := us.setRole(ctx, &request.RoleRequest{Email: email}, entity.RoleAdmin); err != nil {
			return err
		}
	}
	return nil
}

func (us *userService) GetAllUsers(ctx context.Context, req *request.ListRequest) (*response.PaginatedResponse[response.UserResponse], error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	limit, offset, page := req.Limit(), req.Offset(), req.Page
	if req.Latest > 0 {
		limit, offset, page = req.Latest, 0, 1
	}

	users, err := us.userRepo.FindAll(ctx, limit, offset)
	if err != nil {
		return nil, upstream("get users", err)
	}

	total, err := us.userRepo.CountAll(ctx)
	if err != nil {
		return nil, upstream("count users", err)
	}

	return response.NewPaginatedResponse(response.UsersToResponse(users), page, limit, total), nil
}
