package handlers

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/employee-service/internal/domain"
)

func TestParseSort(t *testing.T) {
	tests := []struct {
		raw  string
		want domain.Sort
	}{
		{"", domain.Sort{Field: "id", Direction: domain.SortAsc}},
		{"name", domain.Sort{Field: "name", Direction: domain.SortAsc}},
		{"name,desc", domain.Sort{Field: "name", Direction: domain.SortDesc}},
		{" lastName , DESC ", domain.Sort{Field: "lastName", Direction: domain.SortDesc}},
		{"email,sideways", domain.Sort{Field: "email", Direction: domain.SortAsc}},
		{",desc", domain.Sort{Field: "id", Direction: domain.SortDesc}},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, parseSort(tt.raw))
		})
	}
}

func TestParsePageRequest(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		req, err := parsePageRequest(c)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).SendString(err.Error())
		}
		return c.JSON(req)
	})

	tests := []struct {
		query  string
		status int
	}{
		{"", fiber.StatusOK},
		{"?page=2&size=100", fiber.StatusOK},
		{"?page=-1", fiber.StatusBadRequest},
		{"?page=abc", fiber.StatusBadRequest},
		{"?page=922337203685477581&size=10", fiber.StatusBadRequest},
		{"?page=21474836&size=100", fiber.StatusOK},
		{"?size=0", fiber.StatusBadRequest},
		{"?size=101", fiber.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest("GET", "/"+tt.query, nil))
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)
		})
	}
}
