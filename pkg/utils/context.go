package utils

import (
	"context"
)

type contextKey string

const (
	EmailKey contextKey = "email"
	TokenKey contextKey = "token"
)

// SetEmailContext stores the verified email of the caller.
func SetEmailContext(ctx context.Context, email string) context.Context {
	return context.WithValue(ctx, EmailKey, email)
}

func GetEmailFromContext(ctx context.Context) (string, bool) {
	emailVal := ctx.Value(EmailKey)
	if emailVal == nil {
		return "", false
	}

	email, ok := emailVal.(string)
	if !ok || email == "" {
		return "", false
	}
	return email, true
}

// GetTokenFromContext mendapatkan token dari context
func GetTokenFromContext(ctx context.Context) (string, bool) {
	tokenVal := ctx.Value(TokenKey)
	if tokenVal == nil {
		return "", false
	}

	token, ok := tokenVal.(string)
	return token, ok
}

// SetTokenContext menambahkan token ke context
func SetTokenContext(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, TokenKey, token)
}
