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

type employeeRepository struct {
	store *Store
	inTx  bool
}

func (r *employeeRepository) Create(_ context.Context, emp *domain.Employee) error {
	defer r.store.lock(r.inTx)()
	st := r.store.state

	if err := checkEmployee(st, emp); err != nil {
		return err
	}
	st.nextEmployeeID++
	now := r.store.now()
	emp.ID = st.nextEmployeeID
	emp.CreatedAt = now
	emp.UpdatedAt = now
	emp.Department = nil
	st.employees[emp.ID] = *emp
	return nil
}

func (r *employeeRepository) Update(_ context.Context, emp *domain.Employee) error {
	defer r.store.lock(r.inTx)()
	st := r.store.state

	existing, ok := st.employees[emp.ID]
	if !ok {
		return repository.ErrNotFound
	}
	if err := checkEmployee(st, emp); err != nil {
		return err
	}
	emp.CreatedAt = existing.CreatedAt
	emp.UpdatedAt = r.store.now()
	emp.Department = nil
	st.employees[emp.ID] = *emp
	return nil
}

func (r *employeeRepository) Delete(_ context.Context, id int64) error {
	defer r.store.lock(r.inTx)()
	st := r.store.state

	if _, ok := st.employees[id]; !ok {
		return repository.ErrNotFound
	}
	delete(st.employees, id)
	return nil
}

func (r *employeeRepository) GetByID(_ context.Context, id int64) (*domain.Employee, error) {
	defer r.store.lock(r.inTx)()
	st := r.store.state

	emp, ok := st.employees[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return withDepartment(st, emp), nil
}

func (r *employeeRepository) GetByEmail(_ context.Context, email string) (*domain.Employee, error) {
	defer r.store.lock(r.inTx)()
	st := r.store.state

	for _, emp := range st.employees {
		if emp.Email == email {
			return withDepartment(st, emp), nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *employeeRepository) List(_ context.Context, req domain.PageRequest) (domain.Page[domain.Employee], error) {
	defer r.store.lock(r.inTx)()
	st := r.store.state

	var cmpFn func(a, b domain.Employee) int
	switch req.Sort.Field {
	case "id":
		cmpFn = func(a, b domain.Employee) int { return cmp.Compare(a.ID, b.ID) }
	case "firstName":
		cmpFn = func(a, b domain.Employee) int { return strings.Compare(a.FirstName, b.FirstName) }
	case "lastName":
		cmpFn = func(a, b domain.Employee) int { return strings.Compare(a.LastName, b.LastName) }
	case "email":
		cmpFn = func(a, b domain.Employee) int { return strings.Compare(a.Email, b.Email) }
	default:
		return domain.Page[domain.Employee]{Number: req.Page, Size: req.Size}, invalidSort(req.Sort.Field)
	}

	items := slices.Collect(maps.Values(st.employees))
	page := paginate(items, req, cmpFn, func(e domain.Employee) int64 { return e.ID })
	for i := range page.Items {
		page.Items[i] = *withDepartment(st, page.Items[i])
	}
	return page, nil
}

func checkEmployee(st *state, emp *domain.Employee) error {
	for id, other := range st.employees {
		if id != emp.ID && other.Email == emp.Email {
			return fmt.Errorf("%w: employees_email_key", repository.ErrDuplicate)
		}
	}
	if _, ok := st.departments[emp.DepartmentID]; !ok {
		return fmt.Errorf("%w: employees_department_id_fkey", repository.ErrReferenced)
	}
	return nil
}

func withDepartment(st *state, emp domain.Employee) *domain.Employee {
	if dept, ok := st.departments[emp.DepartmentID]; ok {
		emp.Department = &dept
	}
	return &emp
}
