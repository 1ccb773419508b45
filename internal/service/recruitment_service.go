package service

import (
	"context"
	"strings"
	"time"

	"github.com/emsdev/ems-service/internal/domain"
	"github.com/emsdev/ems-service/internal/events"
	"github.com/emsdev/ems-service/internal/listing"
	"github.com/emsdev/ems-service/internal/repository"
	apperrors "github.com/emsdev/ems-service/pkg/util/errorutil"
)

// JobInput carries the editable posting fields.
type JobInput struct {
	Title               string
	DepartmentID        string
	Location            string
	Type                domain.JobType
	Salary              domain.SalaryRange
	Description         string
	Requirements        string
	ApplicationDeadline *time.Time
	Status              domain.JobStatus
}

// ApplicationInput carries a candidate's submission.
type ApplicationInput struct {
	FullName       string
	Email          string
	Phone          string
	Resume         string
	CoverLetter    string
	Experience     string
	CurrentCompany string
	NoticePeriod   string
	ExpectedSalary string
}

// RecruitmentDependencies encapsulates repo requirements for recruitment.
type RecruitmentDependencies struct {
	JobRepo         repository.JobRepository
	ApplicationRepo repository.ApplicationRepository
	DepartmentRepo  repository.DepartmentRepository
}

// RecruitmentService manages job postings and the applications they receive.
type RecruitmentService struct {
	jobs         repository.JobRepository
	applications repository.ApplicationRepository
	departments  repository.DepartmentRepository
	col          *Collections
	now          func() time.Time
}

// NewRecruitmentService constructs the service.
func NewRecruitmentService(deps RecruitmentDependencies, col *Collections) *RecruitmentService {
	return &RecruitmentService{
		jobs:         deps.JobRepo,
		applications: deps.ApplicationRepo,
		departments:  deps.DepartmentRepo,
		col:          col,
		now:          time.Now,
	}
}

// AllJobs returns the tenant's postings with application counts.
func (s *RecruitmentService) AllJobs(ctx context.Context, actor Actor) ([]domain.JobPosting, error) {
	items, err := loadCollection(ctx, s.col, actor.CompanyID, ResourceJobs, func(ctx context.Context) ([]domain.JobPosting, error) {
		return s.jobs.List(ctx, actor.CompanyID)
	})
	return items, apperrors.MapError(err)
}

// ListJobs runs the list pipeline over postings.
func (s *RecruitmentService) ListJobs(ctx context.Context, actor Actor, q listing.Query) (listing.Page[domain.JobPosting], error) {
	items, err := s.AllJobs(ctx, actor)
	if err != nil {
		return listing.Page[domain.JobPosting]{}, err
	}
	return list(s.col, JobSpec, q, items), nil
}

// GetJob returns one posting.
func (s *RecruitmentService) GetJob(ctx context.Context, actor Actor, id string) (*domain.JobPosting, error) {
	j, err := s.jobs.GetByID(ctx, actor.CompanyID, id)
	if err != nil {
		return nil, apperrors.MapError(err, "job posting")
	}
	return j, nil
}

// CreateJob adds a posting. New postings default to draft.
func (s *RecruitmentService) CreateJob(ctx context.Context, actor Actor, in JobInput) (*domain.JobPosting, error) {
	if err := s.checkJobInput(ctx, actor.CompanyID, in); err != nil {
		return nil, err
	}
	j := &domain.JobPosting{CompanyID: actor.CompanyID}
	applyJobInput(j, in)
	if err := s.jobs.Create(ctx, j); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.col.invalidate(ctx, actor.CompanyID, ResourceJobs)
	return s.GetJob(ctx, actor, j.ID)
}

// UpdateJob replaces a posting's editable fields.
func (s *RecruitmentService) UpdateJob(ctx context.Context, actor Actor, id string, in JobInput) (*domain.JobPosting, error) {
	existing, err := s.jobs.GetByID(ctx, actor.CompanyID, id)
	if err != nil {
		return nil, apperrors.MapError(err, "job posting")
	}
	if err := s.checkJobInput(ctx, actor.CompanyID, in); err != nil {
		return nil, err
	}
	applyJobInput(existing, in)
	if err := s.jobs.Update(ctx, existing); err != nil {
		return nil, apperrors.MapError(err, "job posting")
	}
	s.col.invalidate(ctx, actor.CompanyID, ResourceJobs, ResourceApplications)
	return s.GetJob(ctx, actor, id)
}

// UpdateJobStatus publishes, closes or drafts a posting.
func (s *RecruitmentService) UpdateJobStatus(ctx context.Context, actor Actor, id string, status domain.JobStatus) (*domain.JobPosting, error) {
	if err := s.jobs.UpdateStatus(ctx, actor.CompanyID, id, status); err != nil {
		return nil, apperrors.MapError(err, "job posting")
	}
	s.col.invalidate(ctx, actor.CompanyID, ResourceJobs)
	return s.GetJob(ctx, actor, id)
}

// DeleteJob removes a posting and its applications.
func (s *RecruitmentService) DeleteJob(ctx context.Context, actor Actor, id string) error {
	if err := s.jobs.Delete(ctx, actor.CompanyID, id); err != nil {
		return apperrors.MapError(err, "job posting")
	}
	s.col.invalidate(ctx, actor.CompanyID, ResourceJobs, ResourceApplications)
	return nil
}

// AllApplications returns every application in the tenant.
func (s *RecruitmentService) AllApplications(ctx context.Context, actor Actor) ([]domain.Application, error) {
	items, err := loadCollection(ctx, s.col, actor.CompanyID, ResourceApplications, func(ctx context.Context) ([]domain.Application, error) {
		return s.applications.List(ctx, actor.CompanyID)
	})
	return items, apperrors.MapError(err)
}

// ListApplications runs the list pipeline over applications.
func (s *RecruitmentService) ListApplications(ctx context.Context, actor Actor, q listing.Query) (listing.Page[domain.Application], error) {
	items, err := s.AllApplications(ctx, actor)
	if err != nil {
		return listing.Page[domain.Application]{}, err
	}
	return list(s.col, ApplicationSpec, q, items), nil
}

// ListJobApplications is ListApplications pinned to one posting.
func (s *RecruitmentService) ListJobApplications(ctx context.Context, actor Actor, jobID string, q listing.Query) (listing.Page[domain.Application], error) {
	if _, err := s.GetJob(ctx, actor, jobID); err != nil {
		return listing.Page[domain.Application]{}, err
	}
	filters := map[string]string{"jobId": jobID}
	for k, v := range q.Filters {
		if k != "jobId" {
			filters[k] = v
		}
	}
	q.Filters = filters
	return s.ListApplications(ctx, actor, q)
}

// Apply records an application. Only published postings before their deadline accept applications.
func (s *RecruitmentService) Apply(ctx context.Context, actor Actor, jobID string, in ApplicationInput) (*domain.Application, error) {
	job, err := s.GetJob(ctx, actor, jobID)
	if err != nil {
		return nil, err
	}
	if job.Status != domain.JobPublished {
		return nil, apperrors.NewValidationError("job posting is not accepting applications", map[string]any{"status": job.Status})
	}
	if job.ApplicationDeadline != nil && s.now().After(endOfDay(*job.ApplicationDeadline)) {
		return nil, apperrors.NewValidationError("application deadline has passed", map[string]any{"deadline": job.ApplicationDeadline.Format("2006-01-02")})
	}

	app := &domain.Application{
		CompanyID:      actor.CompanyID,
		JobID:          jobID,
		JobTitle:       job.Title,
		FullName:       strings.TrimSpace(in.FullName),
		Email:          strings.TrimSpace(in.Email),
		Phone:          strings.TrimSpace(in.Phone),
		Resume:         in.Resume,
		CoverLetter:    in.CoverLetter,
		Experience:     in.Experience,
		CurrentCompany: in.CurrentCompany,
		NoticePeriod:   in.NoticePeriod,
		ExpectedSalary: in.ExpectedSalary,
		Status:         domain.ApplicationNew,
	}
	if err := s.applications.Create(ctx, app); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.col.invalidate(ctx, actor.CompanyID, ResourceApplications, ResourceJobs)
	s.col.publish(ctx, events.New(events.EventApplicationReceived, actor.CompanyID, actor.UserID, app.ID,
		events.ApplicationReceivedPayload{JobID: jobID, JobTitle: job.Title, FullName: app.FullName, Email: app.Email}))
	return app, nil
}

// UpdateApplicationStatus moves an application through the hiring pipeline.
func (s *RecruitmentService) UpdateApplicationStatus(ctx context.Context, actor Actor, id string, status domain.ApplicationStatus) (*domain.Application, error) {
	app, err := s.applications.GetByID(ctx, actor.CompanyID, id)
	if err != nil {
		return nil, apperrors.MapError(err, "application")
	}
	if app.Status == status {
		return app, nil
	}
	if err := s.applications.UpdateStatus(ctx, actor.CompanyID, id, status); err != nil {
		return nil, apperrors.MapError(err, "application")
	}
	s.col.invalidate(ctx, actor.CompanyID, ResourceApplications)
	s.col.publish(ctx, events.New(events.EventApplicationStatusChanged, actor.CompanyID, actor.UserID, id,
		events.StatusChangedPayload{OldStatus: string(app.Status), NewStatus: string(status)}))

	app.Status = status
	return app, nil
}

func (s *RecruitmentService) checkJobInput(ctx context.Context, companyID string, in JobInput) error {
	if in.Salary.Min.GreaterThan(in.Salary.Max) {
		return apperrors.NewValidationError("invalid salary range", map[string]any{"salary": "min must not exceed max"})
	}
	if in.Salary.Min.IsNegative() {
		return apperrors.NewValidationError("invalid salary range", map[string]any{"salary": "min must not be negative"})
	}
	if _, err := s.departments.GetByID(ctx, companyID, in.DepartmentID); err != nil {
		if apperrors.IsNotFound(err) {
			return apperrors.NewValidationError("unknown department", map[string]any{"department": in.DepartmentID})
		}
		return apperrors.MapError(err)
	}
	return nil
}

func applyJobInput(j *domain.JobPosting, in JobInput) {
	j.Title = strings.TrimSpace(in.Title)
	j.DepartmentID = in.DepartmentID
	j.Location = strings.TrimSpace(in.Location)
	j.Type = in.Type
	j.Salary = in.Salary
	j.Description = in.Description
	j.Requirements = in.Requirements
	j.ApplicationDeadline = in.ApplicationDeadline
	if in.Status != "" {
		j.Status = in.Status
	}
	if j.Status == "" {
		j.Status = domain.JobDraft
	}
}

func endOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, 0, t.Location())
}
