package usecase

import (
	"errors"

	"github.com/go-playground/validator/v10"

	"ergasia-marketplace/internal/domain"
	"ergasia-marketplace/pkg/apperror"
	"ergasia-marketplace/pkg/validation"
)

// notFound turns domain.ErrNotFound into a 404 with the given message and
// wraps anything else as an internal error.
func notFound(err error, message string) error {
	if errors.Is(err, domain.ErrNotFound) {
		return apperror.NotFound(message)
	}
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return apperror.Internal(err)
}

// invalid converts validator output into a 422 carrying one message per
// json field.
func invalid(err error) error {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		return apperror.Unprocessable("Validation failed", validation.JSONFieldMessages(err))
	}
	return apperror.BadRequest(err.Error())
}
