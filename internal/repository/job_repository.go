package repository

import (
	"context"

	"github.com/emsdev/ems-service/internal/domain"
)

// JobRepository persists job postings. Applications is a derived count.
type JobRepository interface {
	List(ctx context.Context, companyID string) ([]domain.JobPosting, error)
	GetByID(ctx context.Context, companyID, id string) (*domain.JobPosting, error)
	Create(ctx context.Context, job *domain.JobPosting) error
	Update(ctx context.Context, job *domain.JobPosting) error
	UpdateStatus(ctx context.Context, companyID, id string, status domain.JobStatus) error
	Delete(ctx context.Context, companyID, id string) error
}

type jobRepository struct {
	db DB
}

// NewJobRepository instantiates repository.
func NewJobRepository(db DB) JobRepository {
	return &jobRepository{db: db}
}

const jobSelect = `
        SELECT j.id, j.company_id, j.title, j.department_id, d.name, j.location, j.type,
            j.salary_min::text, j.salary_max::text, j.show_salary, j.description, j.requirements,
            j.application_deadline, j.status,
            (SELECT COUNT(*) FROM applications a WHERE a.job_id = j.id) AS applications,
            j.posted_at, j.updated_at
        FROM job_postings j
        JOIN departments d ON d.id = j.department_id`

func scanJob(row rowScanner) (domain.JobPosting, error) {
	var (
		j         domain.JobPosting
		minSalary string
		maxSalary string
	)
	if err := row.Scan(
		&j.ID,
		&j.CompanyID,
		&j.Title,
		&j.DepartmentID,
		&j.DepartmentName,
		&j.Location,
		&j.Type,
		&minSalary,
		&maxSalary,
		&j.Salary.Show,
		&j.Description,
		&j.Requirements,
		&j.ApplicationDeadline,
		&j.Status,
		&j.Applications,
		&j.PostedAt,
		&j.UpdatedAt,
	); err != nil {
		return j, err
	}
	var err error
	if j.Salary.Min, err = parseDecimal(minSalary); err != nil {
		return j, err
	}
	j.Salary.Max, err = parseDecimal(maxSalary)
	return j, err
}

func (r *jobRepository) List(ctx context.Context, companyID string) ([]domain.JobPosting, error) {
	rows, err := r.db.Query(ctx, jobSelect+` WHERE j.company_id=$1 ORDER BY j.posted_at DESC, j.id`, companyID)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanJob)
}

func (r *jobRepository) GetByID(ctx context.Context, companyID, id string) (*domain.JobPosting, error) {
	j, err := scanJob(r.db.QueryRow(ctx, jobSelect+` WHERE j.id=$1 AND j.company_id=$2`, id, companyID))
	if err != nil {
		return nil, err
	}
	return &j, nil
}

func (r *jobRepository) Create(ctx context.Context, job *domain.JobPosting) error {
	const query = `
        INSERT INTO job_postings (company_id, title, department_id, location, type, salary_min, salary_max, show_salary,
            description, requirements, application_deadline, status)
        VALUES ($1, $2, $3, $4, $5, $6::numeric, $7::numeric, $8, $9, $10, $11, $12)
        RETURNING id, posted_at, updated_at`
	return r.db.QueryRow(ctx, query,
		job.CompanyID,
		job.Title,
		job.DepartmentID,
		job.Location,
		job.Type,
		job.Salary.Min.String(),
		job.Salary.Max.String(),
		job.Salary.Show,
		job.Description,
		job.Requirements,
		job.ApplicationDeadline,
		job.Status,
	).Scan(&job.ID, &job.PostedAt, &job.UpdatedAt)
}

func (r *jobRepository) Update(ctx context.Context, job *domain.JobPosting) error {
	const query = `
        UPDATE job_postings SET title=$1, department_id=$2, location=$3, type=$4, salary_min=$5::numeric, salary_max=$6::numeric,
            show_salary=$7, description=$8, requirements=$9, application_deadline=$10, status=$11, updated_at=NOW()
        WHERE id=$12 AND company_id=$13`
	return expectAffected(r.db.Exec(ctx, query,
		job.Title,
		job.DepartmentID,
		job.Location,
		job.Type,
		job.Salary.Min.String(),
		job.Salary.Max.String(),
		job.Salary.Show,
		job.Description,
		job.Requirements,
		job.ApplicationDeadline,
		job.Status,
		job.ID,
		job.CompanyID,
	))
}

func (r *jobRepository) UpdateStatus(ctx context.Context, companyID, id string, status domain.JobStatus) error {
	const query = `UPDATE job_postings SET status=$1, updated_at=NOW() WHERE id=$2 AND company_id=$3`
	return expectAffected(r.db.Exec(ctx, query, status, id, companyID))
}

func (r *jobRepository) Delete(ctx context.Context, companyID, id string) error {
	return expectAffected(r.db.Exec(ctx, `DELETE FROM job_postings WHERE id=$1 AND company_id=$2`, id, companyID))
}
