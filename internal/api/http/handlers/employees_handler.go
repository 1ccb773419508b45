package handlers

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/emsdev/ems-service/internal/api/dto"
	"github.com/emsdev/ems-service/internal/export"
	"github.com/emsdev/ems-service/internal/listing"
	"github.com/emsdev/ems-service/internal/service"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// EmployeesHandler manages employee endpoints.
type EmployeesHandler struct {
	service   *service.EmployeeService
	companies *service.CompanyService
	now       func() time.Time
}

// NewEmployeesHandler constructs handler.
func NewEmployeesHandler(employeeService *service.EmployeeService, companyService *service.CompanyService) *EmployeesHandler {
	return &EmployeesHandler{service: employeeService, companies: companyService, now: time.Now}
}

// List GET /employees.
func (h *EmployeesHandler) List(c *fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	page, err := h.service.List(c.UserContext(), actor, parseListQuery(c))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": listing.Map(page, employeeResponse)})
}

// Get GET /employees/:id.
func (h *EmployeesHandler) Get(c *fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id", "employee")
	if err != nil {
		return err
	}
	employee, err := h.service.Get(c.UserContext(), actor, id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": employeeResponse(*employee)})
}

// Create POST /employees.
func (h *EmployeesHandler) Create(c *fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	input, err := employeeInput(c)
	if err != nil {
		return err
	}
	employee, err := h.service.Create(c.UserContext(), actor, input)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": employeeResponse(*employee)})
}

// Update PUT /employees/:id.
func (h *EmployeesHandler) Update(c *fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	input, err := employeeInput(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id", "employee")
	if err != nil {
		return err
	}
	employee, err := h.service.Update(c.UserContext(), actor, id, input)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": employeeResponse(*employee)})
}

// Delete DELETE /employees/:id.
func (h *EmployeesHandler) Delete(c *fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id", "employee")
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.UserContext(), actor, id); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// Export GET /employees/export. Same search and filters as List, without pagination.
func (h *EmployeesHandler) Export(c *fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	employees, err := h.service.Filtered(c.UserContext(), actor, parseListQuery(c))
	if err != nil {
		return err
	}
	company, err := h.companies.Get(c.UserContext(), actor)
	if err != nil {
		return err
	}
	buf, filename, err := export.EmployeesXLSX(company.Name, employees, h.now())
	if err != nil {
		return err
	}
	return sendAttachment(c, xlsxContentType, filename, buf.Bytes())
}

func employeeInput(c *fiber.Ctx) (service.EmployeeInput, error) {
	var req dto.EmployeeRequest
	if err := bind(c, &req); err != nil {
		return service.EmployeeInput{}, err
	}
	joined, err := dto.ParseDate("join_date", req.JoinDate)
	if err != nil {
		return service.EmployeeInput{}, err
	}
	input := service.EmployeeInput{
		Name:       req.Name,
		Email:      req.Email,
		Position:   req.Position,
		Department: req.Department,
		Status:     req.Status,
		Avatar:     req.Avatar,
	}
	if joined != nil {
		input.JoinDate = *joined
	}
	return input, nil
}
