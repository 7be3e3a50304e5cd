package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"storefront-api/internal/data/entity"
	"storefront-api/internal/data/repository"
	"storefront-api/internal/dto/request"
	"storefront-api/internal/dto/response"

	"go.uber.org/zap"
)

type AuthService interface {
	// Login upserts the profile keyed by email and issues a token for it.
	// There is no password: the email is trusted as sent.
	Login(ctx context.Context, req *request.UpsertUserRequest) (*response.AuthResponse, error)
	// Authenticate verifies a bearer token and returns the email it was issued for.
	Authenticate(token string) (string, error)
}

type authService struct {
	userRepo repository.UserRepository
	tokens   TokenIssuer
	log      *zap.Logger
	now      func() time.Time
}

func NewAuthService(userRepo repository.UserRepository, tokens TokenIssuer, log *zap.Logger) AuthService {
	return &authService{
		userRepo: userRepo,
		tokens:   tokens,
		log:      log.With(zap.String("service", "auth")),
		now:      time.Now,
	}
}

func (s *authService) Login(ctx context.Context, req *request.UpsertUserRequest) (*response.AuthResponse, error) {
	req.Email = strings.TrimSpace(req.Email)
	if err := validate(req); err != nil {
		s.log.Warn("Login validation failed", zap.Error(err))
		return nil, err
	}

	// 1. Merge onto the stored profile so omitted fields keep their value
	existing, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, upstream("find user", err)
	}

	now := s.now()
	user := &entity.User{Base: entity.NewBase(now), Email: req.Email}
	if existing != nil {
		user.Name = existing.Name
		user.Phone = existing.Phone
		user.Address = existing.Address
		user.PhotoURL = existing.PhotoURL
	}
	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Phone != nil {
		user.Phone = *req.Phone
	}
	if req.Address != nil {
		user.Address = *req.Address
	}
	if req.PhotoURL != nil {
		user.PhotoURL = *req.PhotoURL
	}

	// 2. Upsert keyed by email
	saved, err := s.userRepo.Upsert(ctx, user)
	if err != nil {
		return nil, upstream("upsert user", err)
	}

	// 3. Issue credential
	token, expiresAt, err := s.tokens.Issue(saved.Email)
	if err != nil {
		s.log.Error("Failed to issue token", zap.Error(err), zap.String("email", saved.Email))
		return nil, fmt.Errorf("issue token: %w", err)
	}

	s.log.Info("User logged in",
		zap.String("email", saved.Email),
		zap.Bool("created", existing == nil),
	)

	return &response.AuthResponse{
		User:      response.UserToResponse(saved),
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}

func (s *authService) Authenticate(token string) (string, error) {
	email, err := s.tokens.Verify(token)
	if err != nil {
		return "", fmt.Errorf("invalid or expired credential: %w", ErrForbidden)
	}
	return email, nil
}
