package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/emsdev/ems-service/internal/domain"
)

// JobRequest creates or replaces a posting. The salary range is checked by the service.
type JobRequest struct {
	Title               string           `json:"title" validate:"required,min=3"`
	DepartmentID        string           `json:"department_id" validate:"required,uuid"`
	Location            string           `json:"location" validate:"required"`
	Type                domain.JobType   `json:"type" validate:"required,oneof=full-time part-time contract internship remote"`
	SalaryMin           decimal.Decimal  `json:"salary_min"`
	SalaryMax           decimal.Decimal  `json:"salary_max"`
	ShowSalary          bool             `json:"show_salary"`
	Description         string           `json:"description" validate:"required,min=10"`
	Requirements        string           `json:"requirements" validate:"required,min=10"`
	ApplicationDeadline string           `json:"application_deadline" validate:"omitempty,datetime=2006-01-02"`
	Status              domain.JobStatus `json:"status" validate:"omitempty,oneof=draft published closed"`
}

// JobStatusRequest publishes, closes or drafts a posting.
type JobStatusRequest struct {
	Status domain.JobStatus `json:"status" validate:"required,oneof=draft published closed"`
}

// SalaryResponse is omitted from public views when Show is false.
type SalaryResponse struct {
	Min  string `json:"min"`
	Max  string `json:"max"`
	Show bool   `json:"show"`
}

// JobResponse payload.
type JobResponse struct {
	ID                  string           `json:"id"`
	Title               string           `json:"title"`
	DepartmentID        string           `json:"department_id"`
	DepartmentName      string           `json:"department_name"`
	Location            string           `json:"location"`
	Type                domain.JobType   `json:"type"`
	Salary              SalaryResponse   `json:"salary"`
	Description         string           `json:"description"`
	Requirements        string           `json:"requirements"`
	ApplicationDeadline *string          `json:"application_deadline"`
	Status              domain.JobStatus `json:"status"`
	Applications        int              `json:"applications"`
	PostedAt            time.Time        `json:"posted_at"`
}

// ApplicationRequest is a candidate's submission.
type ApplicationRequest struct {
	FullName       string `json:"full_name" validate:"required,min=3"`
	Email          string `json:"email" validate:"required,email"`
	Phone          string `json:"phone" validate:"required,min=10"`
	Resume         string `json:"resume" validate:"required"`
	CoverLetter    string `json:"cover_letter" validate:"max=5000"`
	Experience     string `json:"experience" validate:"required"`
	CurrentCompany string `json:"current_company"`
	NoticePeriod   string `json:"notice_period"`
	ExpectedSalary string `json:"expected_salary"`
}

// ApplicationStatusRequest moves an application through the pipeline.
type ApplicationStatusRequest struct {
	Status domain.ApplicationStatus `json:"status" validate:"required,oneof=new reviewing shortlisted interviewing offered hired rejected"`
}

// ApplicationResponse payload.
type ApplicationResponse struct {
	ID             string                   `json:"id"`
	JobID          string                   `json:"job_id"`
	JobTitle       string                   `json:"job_title"`
	FullName       string                   `json:"full_name"`
	Email          string                   `json:"email"`
	Phone          string                   `json:"phone"`
	Resume         string                   `json:"resume"`
	CoverLetter    string                   `json:"cover_letter,omitempty"`
	Experience     string                   `json:"experience"`
	CurrentCompany string                   `json:"current_company,omitempty"`
	NoticePeriod   string                   `json:"notice_period,omitempty"`
	ExpectedSalary string                   `json:"expected_salary,omitempty"`
	Status         domain.ApplicationStatus `json:"status"`
	AppliedAt      time.Time                `json:"applied_at"`
}
