package repository

import (
	"context"

	"github.com/emsdev/ems-service/internal/domain"
)

// ApplicationRepository persists candidate applications.
type ApplicationRepository interface {
	List(ctx context.Context, companyID string) ([]domain.Application, error)
	GetByID(ctx context.Context, companyID, id string) (*domain.Application, error)
	Create(ctx context.Context, app *domain.Application) error
	UpdateStatus(ctx context.Context, companyID, id string, status domain.ApplicationStatus) error
}

type applicationRepository struct {
	db DB
}

// NewApplicationRepository instantiates repository.
func NewApplicationRepository(db DB) ApplicationRepository {
	return &applicationRepository{db: db}
}

const applicationSelect = `
        SELECT a.id, a.company_id, a.job_id, j.title, a.full_name, a.email, a.phone, a.resume, a.cover_letter,
            a.experience, a.current_company, a.notice_period, a.expected_salary, a.status, a.applied_at
        FROM applications a
        JOIN job_postings j ON j.id = a.job_id`

func scanApplication(row rowScanner) (domain.Application, error) {
	var a domain.Application
	err := row.Scan(
		&a.ID,
		&a.CompanyID,
		&a.JobID,
		&a.JobTitle,
		&a.FullName,
		&a.Email,
		&a.Phone,
		&a.Resume,
		&a.CoverLetter,
		&a.Experience,
		&a.CurrentCompany,
		&a.NoticePeriod,
		&a.ExpectedSalary,
		&a.Status,
		&a.AppliedAt,
	)
	return a, err
}

func (r *applicationRepository) List(ctx context.Context, companyID string) ([]domain.Application, error) {
	rows, err := r.db.Query(ctx, applicationSelect+` WHERE a.company_id=$1 ORDER BY a.applied_at DESC, a.id`, companyID)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanApplication)
}

func (r *applicationRepository) GetByID(ctx context.Context, companyID, id string) (*domain.Application, error) {
	a, err := scanApplication(r.db.QueryRow(ctx, applicationSelect+` WHERE a.id=$1 AND a.company_id=$2`, id, companyID))
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *applicationRepository) Create(ctx context.Context, app *domain.Application) error {
	const query = `
        INSERT INTO applications (company_id, job_id, full_name, email, phone, resume, cover_letter, experience,
            current_company, notice_period, expected_salary, status)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
        RETURNING id, applied_at`
	return r.db.QueryRow(ctx, query,
		app.CompanyID,
		app.JobID,
		app.FullName,
		app.Email,
		app.Phone,
		app.Resume,
		app.CoverLetter,
		app.Experience,
		app.CurrentCompany,
		app.NoticePeriod,
		app.ExpectedSalary,
		app.Status,
	).Scan(&app.ID, &app.AppliedAt)
}

func (r *applicationRepository) UpdateStatus(ctx context.Context, companyID, id string, status domain.ApplicationStatus) error {
	const query = `UPDATE applications SET status=$1 WHERE id=$2 AND company_id=$3`
	return expectAffected(r.db.Exec(ctx, query, status, id, companyID))
}
