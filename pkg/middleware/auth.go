package middleware

import (
	"context"
	"net/http"
	"strings"

	"storefront-api/pkg/utils"

	"go.uber.org/zap"
)

// Authenticator turns a bearer token into the email it was issued for.
type Authenticator interface {
	Authenticate(token string) (string, error)
}

// RoleChecker reports whether an email belongs to an admin.
type RoleChecker interface {
	IsAdmin(ctx context.Context, email string) (bool, error)
}

// bearerToken reads the "auth" header, falling back to Authorization.
// The token is the second whitespace-separated field.
func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("auth")
	if header == "" {
		header = r.Header.Get("Authorization")
	}
	if strings.TrimSpace(header) == "" {
		return "", false
	}

	parts := strings.Fields(header)
	if len(parts) < 2 {
		return "", true
	}
	return parts[1], true
}

// VerifyToken requires a valid token whose email equals the "email" query parameter.
func VerifyToken(auth Authenticator, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, present := bearerToken(r)
			if !present {
				utils.ResponseUnauthorized(w, "authorization required")
				return
			}

			email, err := auth.Authenticate(token)
			if err != nil || token == "" {
				logger.Warn("Rejected credential",
					zap.String("path", r.URL.Path),
					zap.Error(err))
				utils.ResponseForbidden(w, "invalid or expired credential")
				return
			}

			if r.URL.Query().Get("email") != email {
				logger.Warn("Token email mismatch",
					zap.String("path", r.URL.Path),
					zap.String("token_email", email))
				utils.ResponseForbidden(w, "email/token mismatch")
				return
			}

			ctx := utils.SetEmailContext(r.Context(), email)
			ctx = utils.SetTokenContext(ctx, token)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Admin must run after VerifyToken; it checks the verified email holds the admin role.
func Admin(roles RoleChecker, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			email, ok := utils.GetEmailFromContext(r.Context())
			if !ok {
				utils.ResponseUnauthorized(w, "authorization required")
				return
			}

			isAdmin, err := roles.IsAdmin(r.Context(), email)
			if err != nil {
				logger.Error("Admin check failed", zap.Error(err), zap.String("email", email))
				utils.ResponseUpstreamError(w, "failed to verify role")
				return
			}

			if !isAdmin {
				logger.Warn("Non-admin access attempt",
					zap.String("email", email),
					zap.String("path", r.URL.Path))
				utils.ResponseForbidden(w, "admin required")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
