package dto

import "github.com/spec-kit/employee-service/internal/domain"

// EmployeeRequest is the body for create and full update.
type EmployeeRequest struct {
	FirstName      string `json:"firstName" validate:"required,max=100"`
	LastName       string `json:"lastName" validate:"required,max=100"`
	Email          string `json:"email" validate:"required,email,max=254"`
	DepartmentName string `json:"departmentName" validate:"required,max=100"`
}

// EmployeeResponse view with the embedded department.
type EmployeeResponse struct {
	ID         int64               `json:"id"`
	FirstName  string              `json:"firstName"`
	LastName   string              `json:"lastName"`
	Email      string              `json:"email"`
	Department *DepartmentResponse `json:"department"`
}

// NewEmployeeResponse maps the domain entity.
func NewEmployeeResponse(emp domain.Employee) EmployeeResponse {
	resp := EmployeeResponse{
		ID:        emp.ID,
		FirstName: emp.FirstName,
		LastName:  emp.LastName,
		Email:     emp.Email,
	}
	if emp.Department != nil {
		dept := NewDepartmentResponse(*emp.Department)
		resp.Department = &dept
	}
	return resp
}
