package handlers

import (
	"fmt"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/employee-service/internal/api/dto"
	"github.com/spec-kit/employee-service/internal/service"
)

// EmployeesHandler serves /api/employees.
type EmployeesHandler struct {
	service *service.EmployeeService
}

// NewEmployeesHandler constructs handler.
func NewEmployeesHandler(employeeService *service.EmployeeService) *EmployeesHandler {
	return &EmployeesHandler{service: employeeService}
}

// List GET /api/employees.
func (h *EmployeesHandler) List(c *fiber.Ctx) error {
	req, err := parsePageRequest(c)
	if err != nil {
		return err
	}
	page, err := h.service.List(c.UserContext(), req)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewPageResponse(page, dto.NewEmployeeResponse))
}

// GetByID GET /api/employees/:id.
func (h *EmployeesHandler) GetByID(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	emp, err := h.service.GetByID(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewEmployeeResponse(*emp))
}

// GetByEmail GET /api/employees/email/:email.
func (h *EmployeesHandler) GetByEmail(c *fiber.Ctx) error {
	emp, err := h.service.GetByEmail(c.UserContext(), c.Params("email"))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewEmployeeResponse(*emp))
}

// Create POST /api/employees.
func (h *EmployeesHandler) Create(c *fiber.Ctx) error {
	var req dto.EmployeeRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	emp, err := h.service.Create(c.UserContext(), toEmployeeInput(req))
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.NewEmployeeResponse(*emp))
}

// Update PUT /api/employees/:id.
func (h *EmployeesHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var req dto.EmployeeRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	emp, err := h.service.Update(c.UserContext(), id, toEmployeeInput(req))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewEmployeeResponse(*emp))
}

// Delete DELETE /api/employees/:id.
func (h *EmployeesHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: fmt.Sprintf("Deleted employee id - %d", id)})
}

func toEmployeeInput(req dto.EmployeeRequest) service.EmployeeInput {
	return service.EmployeeInput{
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Email:          req.Email,
		DepartmentName: req.DepartmentName,
	}
}
