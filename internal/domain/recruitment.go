package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// JobType enumerates employment types.
type JobType string

const (
	JobFullTime   JobType = "full-time"
	JobPartTime   JobType = "part-time"
	JobContract   JobType = "contract"
	JobInternship JobType = "internship"
	JobRemote     JobType = "remote"
)

// JobStatus enumerates posting lifecycle states.
type JobStatus string

const (
	JobDraft     JobStatus = "draft"
	JobPublished JobStatus = "published"
	JobClosed    JobStatus = "closed"
)

// SalaryRange is shown on a posting only when Show is set.
type SalaryRange struct {
	Min  decimal.Decimal
	Max  decimal.Decimal
	Show bool
}

// JobPosting is an advertised opening. Applications is a derived count.
type JobPosting struct {
	ID                  string
	CompanyID           string
	Title               string
	DepartmentID        string
	DepartmentName      string
	Location            string
	Type                JobType
	Salary              SalaryRange
	Description         string
	Requirements        string
	ApplicationDeadline *time.Time
	Status              JobStatus
	Applications        int
	PostedAt            time.Time
	UpdatedAt           time.Time
}

// ApplicationStatus enumerates the hiring pipeline stages.
type ApplicationStatus string

const (
	ApplicationNew          ApplicationStatus = "new"
	ApplicationReviewing    ApplicationStatus = "reviewing"
	ApplicationShortlisted  ApplicationStatus = "shortlisted"
	ApplicationInterviewing ApplicationStatus = "interviewing"
	ApplicationOffered      ApplicationStatus = "offered"
	ApplicationHired        ApplicationStatus = "hired"
	ApplicationRejected     ApplicationStatus = "rejected"
)

// Application is a candidate's submission for a posting.
type Application struct {
	ID             string
	CompanyID      string
	JobID          string
	JobTitle       string
	FullName       string
	Email          string
	Phone          string
	Resume         string
	CoverLetter    string
	Experience     string
	CurrentCompany string
	NoticePeriod   string
	ExpectedSalary string
	Status         ApplicationStatus
	AppliedAt      time.Time
}
