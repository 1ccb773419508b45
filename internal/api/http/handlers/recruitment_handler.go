package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/emsdev/ems-service/internal/api/dto"
	"github.com/emsdev/ems-service/internal/domain"
	"github.com/emsdev/ems-service/internal/listing"
	"github.com/emsdev/ems-service/internal/service"
)

// RecruitmentHandler manages job postings and applications.
type RecruitmentHandler struct {
	service *service.RecruitmentService
}

// NewRecruitmentHandler constructs handler.
func NewRecruitmentHandler(recruitmentService *service.RecruitmentService) *RecruitmentHandler {
	return &RecruitmentHandler{service: recruitmentService}
}

// ListJobs GET /recruitment/jobs.
func (h *RecruitmentHandler) ListJobs(c *fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	page, err := h.service.ListJobs(c.UserContext(), actor, parseListQuery(c))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": listing.Map(page, jobResponse)})
}

// GetJob GET /recruitment/jobs/:id.
func (h *RecruitmentHandler) GetJob(c *fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id", "job posting")
	if err != nil {
		return err
	}
	job, err := h.service.GetJob(c.UserContext(), actor, id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": jobResponse(*job)})
}

// CreateJob POST /recruitment/jobs.
func (h *RecruitmentHandler) CreateJob(c *fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	input, err := jobInput(c)
	if err != nil {
		return err
	}
	job, err := h.service.CreateJob(c.UserContext(), actor, input)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": jobResponse(*job)})
}

// UpdateJob PUT /recruitment/jobs/:id.
func (h *RecruitmentHandler) UpdateJob(c *fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	input, err := jobInput(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id", "job posting")
	if err != nil {
		return err
	}
	job, err := h.service.UpdateJob(c.UserContext(), actor, id, input)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": jobResponse(*job)})
}

// UpdateJobStatus PATCH /recruitment/jobs/:id/status.
func (h *RecruitmentHandler) UpdateJobStatus(c *fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	var req dto.JobStatusRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	id, err := pathID(c, "id", "job posting")
	if err != nil {
		return err
	}
	job, err := h.service.UpdateJobStatus(c.UserContext(), actor, id, req.Status)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": jobResponse(*job)})
}

// DeleteJob DELETE /recruitment/jobs/:id.
func (h *RecruitmentHandler) DeleteJob(c *fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id", "job posting")
	if err != nil {
		return err
	}
	if err := h.service.DeleteJob(c.UserContext(), actor, id); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// ListApplications GET /recruitment/applications.
func (h *RecruitmentHandler) ListApplications(c *fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	page, err := h.service.ListApplications(c.UserContext(), actor, parseListQuery(c))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": listing.Map(page, applicationResponse)})
}

// ListJobApplications GET /recruitment/jobs/:id/applications.
func (h *RecruitmentHandler) ListJobApplications(c *fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id", "job posting")
	if err != nil {
		return err
	}
	page, err := h.service.ListJobApplications(c.UserContext(), actor, id, parseListQuery(c))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": listing.Map(page, applicationResponse)})
}

// Apply POST /recruitment/jobs/:id/applications.
func (h *RecruitmentHandler) Apply(c *fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	var req dto.ApplicationRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	id, err := pathID(c, "id", "job posting")
	if err != nil {
		return err
	}
	app, err := h.service.Apply(c.UserContext(), actor, id, service.ApplicationInput{
		FullName:       req.FullName,
		Email:          req.Email,
		Phone:          req.Phone,
		Resume:         req.Resume,
		CoverLetter:    req.CoverLetter,
		Experience:     req.Experience,
		CurrentCompany: req.CurrentCompany,
		NoticePeriod:   req.NoticePeriod,
		ExpectedSalary: req.ExpectedSalary,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": applicationResponse(*app)})
}

// UpdateApplicationStatus PATCH /recruitment/applications/:id/status.
func (h *RecruitmentHandler) UpdateApplicationStatus(c *fiber.Ctx) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	var req dto.ApplicationStatusRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	id, err := pathID(c, "id", "application")
	if err != nil {
		return err
	}
	app, err := h.service.UpdateApplicationStatus(c.UserContext(), actor, id, req.Status)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": applicationResponse(*app)})
}

func jobInput(c *fiber.Ctx) (service.JobInput, error) {
	var req dto.JobRequest
	if err := bind(c, &req); err != nil {
		return service.JobInput{}, err
	}
	deadline, err := dto.ParseDate("application_deadline", req.ApplicationDeadline)
	if err != nil {
		return service.JobInput{}, err
	}
	return service.JobInput{
		Title:        req.Title,
		DepartmentID: req.DepartmentID,
		Location:     req.Location,
		Type:         req.Type,
		Salary: domain.SalaryRange{
			Min:  req.SalaryMin,
			Max:  req.SalaryMax,
			Show: req.ShowSalary,
		},
		Description:         req.Description,
		Requirements:        req.Requirements,
		ApplicationDeadline: deadline,
		Status:              req.Status,
	}, nil
}
