package usecase

import (
	"errors"
	"fmt"

	"storefront-api/pkg/storage"
	"storefront-api/pkg/utils"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("authorization required")
	ErrForbidden    = errors.New("forbidden")
	ErrConflict     = errors.New("conflict")
	ErrUpstream     = errors.New("store unavailable")
)

// ValidationError carries per-field messages back to the client.
type ValidationError struct {
	Message string
	Fields  map[string]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	return e.Message + ": " + utils.FormatValidationErrors(e.Fields)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

func invalid(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// validate runs struct tags and returns a *ValidationError on failure.
func validate(req any) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return &ValidationError{Message: "validation failed", Fields: errs}
	}
	return nil
}

// upstream marks a store failure. The cause stays in the chain so deadline errors remain detectable.
func upstream(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrUpstream, err)
}

func notFound(what string) error {
	return fmt.Errorf("%s %w", what, ErrNotFound)
}

// uploadError turns client-side upload problems into validation errors.
func uploadError(err error) error {
	for _, target := range []error{storage.ErrNoFile, storage.ErrUnsupportedType, storage.ErrFileTooLarge, storage.ErrTooManyFiles} {
		if errors.Is(err, target) {
			return &ValidationError{Message: err.Error()}
		}
	}
	return fmt.Errorf("store images: %w", err)
}
