package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/employee-service/internal/domain"
	"github.com/spec-kit/employee-service/internal/events"
	"github.com/spec-kit/employee-service/internal/repository"
	apperrors "github.com/spec-kit/employee-service/pkg/util"
)

// EmployeeInput is the full set of writable employee fields.
type EmployeeInput struct {
	FirstName      string
	LastName       string
	Email          string
	DepartmentName string
}

func (in EmployeeInput) normalized() EmployeeInput {
	return EmployeeInput{
		FirstName:      strings.TrimSpace(in.FirstName),
		LastName:       strings.TrimSpace(in.LastName),
		Email:          strings.ToLower(strings.TrimSpace(in.Email)),
		DepartmentName: strings.TrimSpace(in.DepartmentName),
	}
}

func (in EmployeeInput) validate() error {
	missing := []string{}
	if in.FirstName == "" {
		missing = append(missing, "firstName")
	}
	if in.LastName == "" {
		missing = append(missing, "lastName")
	}
	if in.Email == "" {
		missing = append(missing, "email")
	}
	if in.DepartmentName == "" {
		missing = append(missing, "departmentName")
	}
	if len(missing) > 0 {
		return apperrors.NewValidationError("required fields missing", map[string]any{"fields": missing})
	}
	return nil
}

// EmployeeService implements employee CRUD. Writes resolve the department
// and persist the employee in one transaction.
type EmployeeService struct {
	store      repository.Store
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewEmployeeService constructs the service. dispatcher may be nil.
func NewEmployeeService(store repository.Store, dispatcher events.Dispatcher, logger *zap.Logger) *EmployeeService {
	return &EmployeeService{store: store, dispatcher: dispatcher, logger: logger}
}

// List returns one page of employees with their departments.
func (s *EmployeeService) List(ctx context.Context, req domain.PageRequest) (domain.Page[domain.Employee], error) {
	page, err := s.store.Repositories().Employees.List(ctx, req)
	if err != nil {
		return page, mapSortError(err, domain.EmployeeSortFields)
	}
	return page, nil
}

// GetByID fetches an employee.
func (s *EmployeeService) GetByID(ctx context.Context, id int64) (*domain.Employee, error) {
	emp, err := s.store.Repositories().Employees.GetByID(ctx, id)
	if err != nil {
		return nil, employeeError(err, map[string]any{"id": id}, "")
	}
	return emp, nil
}

// GetByEmail fetches an employee by unique email.
func (s *EmployeeService) GetByEmail(ctx context.Context, email string) (*domain.Employee, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	emp, err := s.store.Repositories().Employees.GetByEmail(ctx, email)
	if err != nil {
		return nil, employeeError(err, map[string]any{"email": email}, email)
	}
	return emp, nil
}

// Create adds an employee to the named department.
func (s *EmployeeService) Create(ctx context.Context, in EmployeeInput) (*domain.Employee, error) {
	in = in.normalized()
	if err := in.validate(); err != nil {
		return nil, err
	}

	var emp *domain.Employee
	err := s.store.WithinTx(ctx, func(repos repository.Repositories) error {
		dept, err := lookupDepartment(ctx, repos, in.DepartmentName)
		if err != nil {
			return err
		}
		emp = &domain.Employee{
			FirstName:    in.FirstName,
			LastName:     in.LastName,
			Email:        in.Email,
			DepartmentID: dept.ID,
		}
		if err := repos.Employees.Create(ctx, emp); err != nil {
			return employeeError(err, nil, in.Email)
		}
		emp.Department = dept
		return nil
	})
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	s.logger.Info("employee created", zap.Int64("id", emp.ID), zap.Int64("department_id", emp.DepartmentID))
	publish(ctx, s.dispatcher, s.logger, events.NewEvent(events.EventEmployeeCreated, emp.ID, employeePayload(emp)))
	return emp, nil
}

// Update replaces every writable field of an existing employee.
func (s *EmployeeService) Update(ctx context.Context, id int64, in EmployeeInput) (*domain.Employee, error) {
	in = in.normalized()
	if err := in.validate(); err != nil {
		return nil, err
	}

	var emp *domain.Employee
	err := s.store.WithinTx(ctx, func(repos repository.Repositories) error {
		if _, err := repos.Employees.GetByID(ctx, id); err != nil {
			return employeeError(err, map[string]any{"id": id}, "")
		}
		dept, err := lookupDepartment(ctx, repos, in.DepartmentName)
		if err != nil {
			return err
		}
		emp = &domain.Employee{
			ID:           id,
			FirstName:    in.FirstName,
			LastName:     in.LastName,
			Email:        in.Email,
			DepartmentID: dept.ID,
		}
		if err := repos.Employees.Update(ctx, emp); err != nil {
			return employeeError(err, map[string]any{"id": id}, in.Email)
		}
		emp.Department = dept
		return nil
	})
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	publish(ctx, s.dispatcher, s.logger, events.NewEvent(events.EventEmployeeUpdated, emp.ID, employeePayload(emp)))
	return emp, nil
}

// Delete removes an employee.
func (s *EmployeeService) Delete(ctx context.Context, id int64) error {
	if err := s.store.Repositories().Employees.Delete(ctx, id); err != nil {
		return employeeError(err, map[string]any{"id": id}, "")
	}
	s.logger.Info("employee deleted", zap.Int64("id", id))
	publish(ctx, s.dispatcher, s.logger, events.NewEvent(events.EventEmployeeDeleted, id, nil))
	return nil
}

func employeePayload(emp *domain.Employee) events.EmployeePayload {
	return events.EmployeePayload{Email: emp.Email, DepartmentID: emp.DepartmentID}
}

func lookupDepartment(ctx context.Context, repos repository.Repositories, name string) (*domain.Department, error) {
	dept, err := repos.Departments.GetByName(ctx, name)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NewInvalidReference("department", map[string]any{"departmentName": name})
	}
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return dept, nil
}

func employeeError(err error, details map[string]any, email string) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return apperrors.NewNotFound("employee", details)
	case errors.Is(err, repository.ErrDuplicate):
		return apperrors.NewDuplicate("employee", "email", email)
	case errors.Is(err, repository.ErrReferenced):
		return apperrors.NewInvalidReference("department", details)
	default:
		return apperrors.MapError(err)
	}
}
