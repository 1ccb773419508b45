package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/emsdev/ems-service/internal/api/dto"
	"github.com/emsdev/ems-service/internal/listing"
	"github.com/emsdev/ems-service/internal/service"
)

// DepartmentsHandler manages department endpoints.
type DepartmentsHandler struct {
	service *service.DepartmentService
}

// NewDepartmentsHandler constructs handler.
func NewDepartmentsHandler(departmentService *service.DepartmentService) *DepartmentsHandler {
	return &DepartmentsHandler{service: departmentService}
}

// List GET /departments.
func (h *DepartmentsHandler) List(c *fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	page, err := h.service.List(c.UserContext(), actor, parseListQuery(c))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": listing.Map(page, departmentResponse)})
}

// Get GET /departments/:id.
func (h *DepartmentsHandler) Get(c *fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id", "department")
	if err != nil {
		return err
	}
	dept, err := h.service.Get(c.UserContext(), actor, id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": departmentResponse(*dept)})
}

// Create POST /departments.
func (h *DepartmentsHandler) Create(c *fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	var req dto.DepartmentRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	dept, err := h.service.Create(c.UserContext(), actor, service.DepartmentInput{
		Name:        req.Name,
		Description: req.Description,
		Manager:     req.Manager,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": departmentResponse(*dept)})
}

// Update PUT /departments/:id.
func (h *DepartmentsHandler) Update(c *fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	var req dto.DepartmentRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	id, err := pathID(c, "id", "department")
	if err != nil {
		return err
	}
	dept, err := h.service.Update(c.UserContext(), actor, id, service.DepartmentInput{
		Name:        req.Name,
		Description: req.Description,
		Manager:     req.Manager,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": departmentResponse(*dept)})
}

// Delete DELETE /departments/:id.
func (h *DepartmentsHandler) Delete(c *fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id", "department")
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.UserContext(), actor, id); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}
