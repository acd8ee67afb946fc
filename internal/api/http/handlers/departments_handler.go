package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/employee-service/internal/api/dto"
	"github.com/spec-kit/employee-service/internal/service"
)

// DepartmentsHandler serves /api/departments.
type DepartmentsHandler struct {
	service *service.DepartmentService
}

// NewDepartmentsHandler constructs handler.
func NewDepartmentsHandler(departmentService *service.DepartmentService) *DepartmentsHandler {
	return &DepartmentsHandler{service: departmentService}
}

// List GET /api/departments.
func (h *DepartmentsHandler) List(c *fiber.Ctx) error {
	req, err := parsePageRequest(c)
	if err != nil {
		return err
	}
	page, err := h.service.List(c.UserContext(), req)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewPageResponse(page, dto.NewDepartmentResponse))
}

// GetByID GET /api/departments/id/:id.
func (h *DepartmentsHandler) GetByID(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	dept, err := h.service.GetByID(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewDepartmentResponse(*dept))
}

// GetByName GET /api/departments/name/:name.
func (h *DepartmentsHandler) GetByName(c *fiber.Ctx) error {
	dept, err := h.service.GetByName(c.UserContext(), c.Params("name"))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewDepartmentResponse(*dept))
}

// Create POST /api/departments.
func (h *DepartmentsHandler) Create(c *fiber.Ctx) error {
	var req dto.DepartmentRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	dept, err := h.service.Create(c.UserContext(), req.Name)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.NewDepartmentResponse(*dept))
}

// Update PUT /api/departments/:id.
func (h *DepartmentsHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var req dto.DepartmentRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	dept, err := h.service.Update(c.UserContext(), id, req.Name)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewDepartmentResponse(*dept))
}

// Delete DELETE /api/departments/:id.
func (h *DepartmentsHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}
