package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/emsdev/ems-service/internal/api/dto"
	"github.com/emsdev/ems-service/internal/listing"
	"github.com/emsdev/ems-service/internal/service"
)

// CompanyHandler serves the company page and its positions.
type CompanyHandler struct {
	service *service.CompanyService
}

// NewCompanyHandler constructs handler.
func NewCompanyHandler(companyService *service.CompanyService) *CompanyHandler {
	return &CompanyHandler{service: companyService}
}

// Get GET /company.
func (h *CompanyHandler) Get(c *fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	company, err := h.service.Get(c.UserContext(), actor)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": companyResponse(company)})
}

// Update PUT /company.
func (h *CompanyHandler) Update(c *fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	var req dto.CompanyRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	company, err := h.service.Update(c.UserContext(), actor, service.CompanyInput{
		Name:        req.Name,
		Website:     req.Website,
		Email:       req.Email,
		Phone:       req.Phone,
		Address:     req.Address,
		Description: req.Description,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": companyResponse(company)})
}

// ListPositions GET /company/positions.
func (h *CompanyHandler) ListPositions(c *fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	page, err := h.service.ListPositions(c.UserContext(), actor, parseListQuery(c))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": listing.Map(page, positionResponse)})
}

// CreatePosition POST /company/positions.
func (h *CompanyHandler) CreatePosition(c *fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	var req dto.PositionRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	position, err := h.service.CreatePosition(c.UserContext(), actor, service.PositionInput{
		Title:       req.Title,
		Department:  req.Department,
		Description: req.Description,
		Salary:      req.Salary,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": positionResponse(*position)})
}

// DeletePosition DELETE /company/positions/:id.
func (h *CompanyHandler) DeletePosition(c *fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id", "position")
	if err != nil {
		return err
	}
	if err := h.service.DeletePosition(c.UserContext(), actor, id); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}
