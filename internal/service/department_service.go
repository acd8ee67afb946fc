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

// DepartmentService implements department CRUD over the store.
type DepartmentService struct {
	store      repository.Store
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewDepartmentService constructs the service. dispatcher may be nil.
func NewDepartmentService(store repository.Store, dispatcher events.Dispatcher, logger *zap.Logger) *DepartmentService {
	return &DepartmentService{store: store, dispatcher: dispatcher, logger: logger}
}

// List returns one page of departments.
func (s *DepartmentService) List(ctx context.Context, req domain.PageRequest) (domain.Page[domain.Department], error) {
	page, err := s.store.Repositories().Departments.List(ctx, req)
	if err != nil {
		return page, mapSortError(err, domain.DepartmentSortFields)
	}
	return page, nil
}

// GetByID fetches a department.
func (s *DepartmentService) GetByID(ctx context.Context, id int64) (*domain.Department, error) {
	dept, err := s.store.Repositories().Departments.GetByID(ctx, id)
	if err != nil {
		return nil, departmentError(err, map[string]any{"id": id}, "")
	}
	return dept, nil
}

// GetByName fetches a department by its unique name.
func (s *DepartmentService) GetByName(ctx context.Context, name string) (*domain.Department, error) {
	name = strings.TrimSpace(name)
	dept, err := s.store.Repositories().Departments.GetByName(ctx, name)
	if err != nil {
		return nil, departmentError(err, map[string]any{"name": name}, name)
	}
	return dept, nil
}

// Create adds a department with a unique name.
func (s *DepartmentService) Create(ctx context.Context, name string) (*domain.Department, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.NewValidationError("name required", nil)
	}
	dept := &domain.Department{Name: name}
	if err := s.store.Repositories().Departments.Create(ctx, dept); err != nil {
		return nil, departmentError(err, nil, name)
	}
	s.logger.Info("department created", zap.Int64("id", dept.ID), zap.String("name", dept.Name))
	publish(ctx, s.dispatcher, s.logger, events.NewEvent(events.EventDepartmentCreated, dept.ID, events.DepartmentPayload{Name: dept.Name}))
	return dept, nil
}

// Update replaces the department's fields.
func (s *DepartmentService) Update(ctx context.Context, id int64, name string) (*domain.Department, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.NewValidationError("name required", nil)
	}
	dept := &domain.Department{ID: id, Name: name}
	if err := s.store.Repositories().Departments.Update(ctx, dept); err != nil {
		return nil, departmentError(err, map[string]any{"id": id}, name)
	}
	publish(ctx, s.dispatcher, s.logger, events.NewEvent(events.EventDepartmentUpdated, dept.ID, events.DepartmentPayload{Name: dept.Name}))
	return dept, nil
}

// Delete removes a department that no employee references.
func (s *DepartmentService) Delete(ctx context.Context, id int64) error {
	if err := s.store.Repositories().Departments.Delete(ctx, id); err != nil {
		return departmentError(err, map[string]any{"id": id}, "")
	}
	s.logger.Info("department deleted", zap.Int64("id", id))
	publish(ctx, s.dispatcher, s.logger, events.NewEvent(events.EventDepartmentDeleted, id, nil))
	return nil
}

func departmentError(err error, details map[string]any, name string) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return apperrors.NewNotFound("department", details)
	case errors.Is(err, repository.ErrDuplicate):
		return apperrors.NewDuplicate("department", "name", name)
	case errors.Is(err, repository.ErrReferenced):
		return apperrors.NewConflict("department has employees and cannot be deleted", details)
	default:
		return apperrors.MapError(err)
	}
}
