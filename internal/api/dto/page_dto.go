package dto

import "github.com/spec-kit/employee-service/internal/domain"

// PageResponse is the paged listing envelope.
type PageResponse[T any] struct {
	Content          []T   `json:"content"`
	Number           int   `json:"number"`
	Size             int   `json:"size"`
	TotalElements    int64 `json:"totalElements"`
	TotalPages       int   `json:"totalPages"`
	First            bool  `json:"first"`
	Last             bool  `json:"last"`
	NumberOfElements int   `json:"numberOfElements"`
	Empty            bool  `json:"empty"`
}

// NewPageResponse maps a domain page through fn.
func NewPageResponse[T, R any](page domain.Page[T], fn func(T) R) PageResponse[R] {
	mapped := domain.MapPage(page, fn)
	totalPages := mapped.TotalPages()
	return PageResponse[R]{
		Content:          mapped.Items,
		Number:           mapped.Number,
		Size:             mapped.Size,
		TotalElements:    mapped.Total,
		TotalPages:       totalPages,
		First:            mapped.Number == 0,
		Last:             mapped.Number >= totalPages-1,
		NumberOfElements: len(mapped.Items),
		Empty:            len(mapped.Items) == 0,
	}
}
