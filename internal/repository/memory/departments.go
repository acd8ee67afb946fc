package memory

import (
	"cmp"
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/spec-kit/employee-service/internal/domain"
	"github.com/spec-kit/employee-service/internal/repository"
)

type departmentRepository struct {
	store *Store
	inTx  bool
}

func (r *departmentRepository) Create(_ context.Context, dept *domain.Department) error {
	defer r.store.lock(r.inTx)()
	st := r.store.state

	if nameTaken(st, dept.Name, 0) {
		return fmt.Errorf("%w: departments_name_key", repository.ErrDuplicate)
	}
	st.nextDepartmentID++
	now := r.store.now()
	dept.ID = st.nextDepartmentID
	dept.CreatedAt = now
	dept.UpdatedAt = now
	st.departments[dept.ID] = *dept
	return nil
}

func (r *departmentRepository) Update(_ context.Context, dept *domain.Department) error {
	defer r.store.lock(r.inTx)()
	st := r.store.state

	existing, ok := st.departments[dept.ID]
	if !ok {
		return repository.ErrNotFound
	}
	if nameTaken(st, dept.Name, dept.ID) {
		return fmt.Errorf("%w: departments_name_key", repository.ErrDuplicate)
	}
	dept.CreatedAt = existing.CreatedAt
	dept.UpdatedAt = r.store.now()
	st.departments[dept.ID] = *dept
	return nil
}

func (r *departmentRepository) Delete(_ context.Context, id int64) error {
	defer r.store.lock(r.inTx)()
	st := r.store.state

	if _, ok := st.departments[id]; !ok {
		return repository.ErrNotFound
	}
	for _, emp := range st.employees {
		if emp.DepartmentID == id {
			return fmt.Errorf("%w: employees_department_id_fkey", repository.ErrReferenced)
		}
	}
	delete(st.departments, id)
	return nil
}

func (r *departmentRepository) GetByID(_ context.Context, id int64) (*domain.Department, error) {
	defer r.store.lock(r.inTx)()

	dept, ok := r.store.state.departments[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &dept, nil
}

func (r *departmentRepository) GetByName(_ context.Context, name string) (*domain.Department, error) {
	defer r.store.lock(r.inTx)()

	for _, dept := range r.store.state.departments {
		if dept.Name == name {
			return &dept, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *departmentRepository) List(_ context.Context, req domain.PageRequest) (domain.Page[domain.Department], error) {
	defer r.store.lock(r.inTx)()

	var cmpFn func(a, b domain.Department) int
	switch req.Sort.Field {
	case "id":
		cmpFn = func(a, b domain.Department) int { return cmp.Compare(a.ID, b.ID) }
	case "name":
		cmpFn = func(a, b domain.Department) int { return strings.Compare(a.Name, b.Name) }
	default:
		return domain.Page[domain.Department]{Number: req.Page, Size: req.Size}, invalidSort(req.Sort.Field)
	}

	items := slices.Collect(maps.Values(r.store.state.departments))
	return paginate(items, req, cmpFn, func(d domain.Department) int64 { return d.ID }), nil
}

func nameTaken(st *state, name string, exceptID int64) bool {
	for id, dept := range st.departments {
		if id != exceptID && dept.Name == name {
			return true
		}
	}
	return false
}
