// Package memory is a process-local implementation of the repository
// interfaces. It backs the service when no database is configured and
// keeps the same uniqueness and reference rules as the Postgres schema.
package memory

import (
	"cmp"
	"context"
	"fmt"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/spec-kit/employee-service/internal/domain"
	"github.com/spec-kit/employee-service/internal/repository"
)

// Store keeps all records in maps guarded by one mutex.
type Store struct {
	mu    sync.Mutex
	state *state
	now   func() time.Time
}

var _ repository.Store = (*Store)(nil)

type state struct {
	nextDepartmentID int64
	nextEmployeeID   int64
	departments      map[int64]domain.Department
	employees        map[int64]domain.Employee
	principals       map[string]domain.Principal
}

func (s *state) clone() *state {
	return &state{
		nextDepartmentID: s.nextDepartmentID,
		nextEmployeeID:   s.nextEmployeeID,
		departments:      maps.Clone(s.departments),
		employees:        maps.Clone(s.employees),
		principals:       maps.Clone(s.principals),
	}
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		state: &state{
			departments: make(map[int64]domain.Department),
			employees:   make(map[int64]domain.Employee),
			principals:  make(map[string]domain.Principal),
		},
		now: func() time.Time { return time.Now().UTC() },
	}
}

// Repositories returns repositories that lock the store per call.
func (s *Store) Repositories() repository.Repositories {
	return s.repositories(false)
}

// WithinTx holds the store lock for the whole callback and restores the
// previous state when fn fails.
func (s *Store) WithinTx(ctx context.Context, fn func(repository.Repositories) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.state.clone()
	if err := fn(s.repositories(true)); err != nil {
		s.state = snapshot
		return err
	}
	return nil
}

func (s *Store) repositories(inTx bool) repository.Repositories {
	return repository.Repositories{
		Departments: &departmentRepository{store: s, inTx: inTx},
		Employees:   &employeeRepository{store: s, inTx: inTx},
		Principals:  &principalRepository{store: s, inTx: inTx},
	}
}

// lock acquires the store mutex unless the caller already runs inside WithinTx.
func (s *Store) lock(inTx bool) func() {
	if inTx {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

// paginate sorts items with cmpFn, breaking ties by id, and cuts out the requested page.
func paginate[T any](items []T, req domain.PageRequest, cmpFn func(a, b T) int, id func(T) int64) domain.Page[T] {
	slices.SortFunc(items, func(a, b T) int {
		c := cmpFn(a, b)
		if c == 0 {
			c = cmp.Compare(id(a), id(b))
		}
		if req.Sort.Direction == domain.SortDesc {
			return -c
		}
		return c
	})

	page := domain.Page[T]{Number: req.Page, Size: req.Size, Total: int64(len(items)), Items: []T{}}
	start := req.Offset()
	if start < 0 || start >= len(items) {
		return page
	}
	end := min(start+req.Size, len(items))
	page.Items = append(page.Items, items[start:end]...)
	return page
}

func invalidSort(field string) error {
	return fmt.Errorf("%w: %s", repository.ErrInvalidSort, field)
}
