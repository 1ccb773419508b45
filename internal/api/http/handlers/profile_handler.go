package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/emsdev/ems-service/internal/api/dto"
	"github.com/emsdev/ems-service/internal/domain"
	"github.com/emsdev/ems-service/internal/service"
)

// ProfileHandler serves the signed in user's profile and its collections.
type ProfileHandler struct {
	service *service.ProfileService
}

// NewProfileHandler constructs handler.
func NewProfileHandler(profileService *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{service: profileService}
}

// Get GET /profile.
func (h *ProfileHandler) Get(c *fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	profile, err := h.service.Get(c.UserContext(), actor)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": profileResponse(profile)})
}

// Update PUT /profile.
func (h *ProfileHandler) Update(c *fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	var req dto.ProfileRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	user, err := h.service.Update(c.UserContext(), actor, service.ProfileInput{
		Name:   req.Name,
		Email:  req.Email,
		Bio:    req.Bio,
		Avatar: req.Avatar,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": userResponse(user)})
}

// AddSkill POST /profile/skills.
func (h *ProfileHandler) AddSkill(c *fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	var req dto.SkillRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	skill, err := h.service.AddSkill(c.UserContext(), actor, req.Name, req.Level)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": skillResponse(*skill)})
}

// DeleteSkill DELETE /profile/skills/:id.
func (h *ProfileHandler) DeleteSkill(c *fiber.Ctx) error {
	return h.remove(c, h.service.DeleteSkill)
}

// AddEducation POST /profile/education.
func (h *ProfileHandler) AddEducation(c *fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	var req dto.EducationRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	start, end, err := parsePeriod("start_date", req.StartDate, "end_date", req.EndDate)
	if err != nil {
		return err
	}
	edu, err := h.service.AddEducation(c.UserContext(), actor, domain.Education{
		Institution:  req.Institution,
		Degree:       req.Degree,
		FieldOfStudy: req.FieldOfStudy,
		StartDate:    start,
		EndDate:      end,
		Current:      req.Current,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": educationResponse(*edu)})
}

// DeleteEducation DELETE /profile/education/:id.
func (h *ProfileHandler) DeleteEducation(c *fiber.Ctx) error {
	return h.remove(c, h.service.DeleteEducation)
}

// AddExperience POST /profile/experience.
func (h *ProfileHandler) AddExperience(c *fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	var req dto.ExperienceRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	start, end, err := parsePeriod("start_date", req.StartDate, "end_date", req.EndDate)
	if err != nil {
		return err
	}
	exp, err := h.service.AddExperience(c.UserContext(), actor, domain.Experience{
		Company:     req.Company,
		Position:    req.Position,
		Description: req.Description,
		StartDate:   start,
		EndDate:     end,
		Current:     req.Current,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": experienceResponse(*exp)})
}

// DeleteExperience DELETE /profile/experience/:id.
func (h *ProfileHandler) DeleteExperience(c *fiber.Ctx) error {
	return h.remove(c, h.service.DeleteExperience)
}

// AddCertification POST /profile/certifications.
func (h *ProfileHandler) AddCertification(c *fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	var req dto.CertificationRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	issued, expires, err := parsePeriod("issue_date", req.IssueDate, "expiry_date", req.ExpiryDate)
	if err != nil {
		return err
	}
	cert, err := h.service.AddCertification(c.UserContext(), actor, domain.Certification{
		Name:         req.Name,
		Issuer:       req.Issuer,
		IssueDate:    issued,
		ExpiryDate:   expires,
		CredentialID: req.CredentialID,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": certificationResponse(*cert)})
}

// DeleteCertification DELETE /profile/certifications/:id.
func (h *ProfileHandler) DeleteCertification(c *fiber.Ctx) error {
	return h.remove(c, h.service.DeleteCertification)
}

func (h *ProfileHandler) remove(c *fiber.Ctx, del func(ctx context.Context, actor service.Actor, id string) error) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id", "profile entry")
	if err != nil {
		return err
	}
	if err := del(c.UserContext(), actor, id); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// parsePeriod reads a required start date and an optional end date.
func parsePeriod(fromField, from, toField, to string) (time.Time, *time.Time, error) {
	start, err := dto.ParseDate(fromField, from)
	if err != nil {
		return time.Time{}, nil, err
	}
	end, err := dto.ParseDate(toField, to)
	if err != nil {
		return time.Time{}, nil, err
	}
	if start == nil {
		return time.Time{}, end, nil
	}
	return *start, end, nil
}
