package dto

import "github.com/spec-kit/employee-service/internal/domain"

// DepartmentRequest is the body for create and full update.
type DepartmentRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

// DepartmentResponse view.
type DepartmentResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// NewDepartmentResponse maps the domain entity.
func NewDepartmentResponse(dept domain.Department) DepartmentResponse {
	return DepartmentResponse{ID: dept.ID, Name: dept.Name}
}
