package http

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"

	apperrors "github.com/spec-kit/employee-service/pkg/util"
)

func TestToDomainError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"route not found", fiber.ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
		{"method not allowed", fiber.ErrMethodNotAllowed, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED"},
		{"deadline", fmt.Errorf("list: %w", context.DeadlineExceeded), http.StatusInternalServerError, "TIMEOUT"},
		{"wrapped deadline", apperrors.NewInternalError(context.DeadlineExceeded), http.StatusInternalServerError, "TIMEOUT"},
		{"domain", apperrors.NewForbidden("no"), http.StatusForbidden, "FORBIDDEN"},
		{"unknown", fmt.Errorf("boom"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			de := toDomainError(tt.err)
			assert.Equal(t, tt.status, de.HTTPStatus)
			assert.Equal(t, tt.code, de.Code)
		})
	}
}
