package handlers

import (
	"math"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/employee-service/internal/domain"
	apperrors "github.com/spec-kit/employee-service/pkg/util"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
	maxPage         = math.MaxInt32 / maxPageSize
	defaultSort     = "id"
)

// parsePageRequest reads page, size and sort=field,direction from the query.
func parsePageRequest(c *fiber.Ctx) (domain.PageRequest, error) {
	req := domain.PageRequest{Page: 0, Size: defaultPageSize}

	if raw := strings.TrimSpace(c.Query("page")); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 0 || page > maxPage {
			return req, apperrors.NewValidationError("page must be between 0 and "+strconv.Itoa(maxPage), map[string]any{"page": raw})
		}
		req.Page = page
	}

	if raw := strings.TrimSpace(c.Query("size")); raw != "" {
		size, err := strconv.Atoi(raw)
		if err != nil || size < 1 || size > maxPageSize {
			return req, apperrors.NewValidationError("size must be between 1 and 100", map[string]any{"size": raw})
		}
		req.Size = size
	}

	req.Sort = parseSort(c.Query("sort"))
	return req, nil
}

// parseSort accepts "field" or "field,direction". Only "desc" (any case)
// sorts descending; anything else is ascending.
func parseSort(raw string) domain.Sort {
	field, direction, _ := strings.Cut(raw, ",")
	sort := domain.Sort{Field: strings.TrimSpace(field), Direction: domain.SortAsc}
	if sort.Field == "" {
		sort.Field = defaultSort
	}
	if strings.EqualFold(strings.TrimSpace(direction), string(domain.SortDesc)) {
		sort.Direction = domain.SortDesc
	}
	return sort
}
