package service

import (
	"errors"

	"github.com/spec-kit/employee-service/internal/repository"
	apperrors "github.com/spec-kit/employee-service/pkg/util"
)

// mapSortError turns an unsupported sort field into a validation error.
func mapSortError(err error, allowed []string) error {
	if errors.Is(err, repository.ErrInvalidSort) {
		return apperrors.NewValidationError("unsupported sort field", map[string]any{"allowed": allowed})
	}
	return apperrors.MapError(err)
}
