package domain

// SortDirection orders a listing.
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// Sort names one field and its direction.
type Sort struct {
	Field     string
	Direction SortDirection
}

// PageRequest selects a zero-based page of a sorted listing.
type PageRequest struct {
	Page int
	Size int
	Sort Sort
}

// Offset returns the number of rows preceding the page.
func (p PageRequest) Offset() int {
	return p.Page * p.Size
}

// Page is one slice of a sorted listing plus the total row count.
type Page[T any] struct {
	Items  []T
	Number int
	Size   int
	Total  int64
}

// TotalPages returns how many pages of Size cover Total.
func (p Page[T]) TotalPages() int {
	if p.Size <= 0 {
		return 0
	}
	return int((p.Total + int64(p.Size) - 1) / int64(p.Size))
}

// MapPage converts the items of a page while keeping its metadata.
func MapPage[T, R any](p Page[T], fn func(T) R) Page[R] {
	items := make([]R, 0, len(p.Items))
	for _, item := range p.Items {
		items = append(items, fn(item))
	}
	return Page[R]{Items: items, Number: p.Number, Size: p.Size, Total: p.Total}
}

// Sortable fields exposed by the listing endpoints.
var (
	DepartmentSortFields = []string{"id", "name"}
	EmployeeSortFields   = []string{"id", "firstName", "lastName", "email"}
)
