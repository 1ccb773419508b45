package repository

import (
	"context"

	"github.com/emsdev/ems-service/internal/domain"
)

// EmployeeRepository encapsulates employee persistence. Every call is tenant scoped.
type EmployeeRepository interface {
	List(ctx context.Context, companyID string) ([]domain.Employee, error)
	GetByID(ctx context.Context, companyID, id string) (*domain.Employee, error)
	Create(ctx context.Context, employee *domain.Employee) error
	Update(ctx context.Context, employee *domain.Employee) error
	Delete(ctx context.Context, companyID, id string) error
}

type employeeRepository struct {
	db DB
}

// NewEmployeeRepository instantiates repository.
func NewEmployeeRepository(db DB) EmployeeRepository {
	return &employeeRepository{db: db}
}

const employeeColumns = `id, company_id, name, email, position, department, status, join_date, avatar, created_at, updated_at`

func scanEmployee(row rowScanner) (domain.Employee, error) {
	var e domain.Employee
	err := row.Scan(
		&e.ID,
		&e.CompanyID,
		&e.Name,
		&e.Email,
		&e.Position,
		&e.Department,
		&e.Status,
		&e.JoinDate,
		&e.Avatar,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
	return e, err
}

func (r *employeeRepository) List(ctx context.Context, companyID string) ([]domain.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE company_id=$1 ORDER BY created_at, id`
	rows, err := r.db.Query(ctx, query, companyID)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanEmployee)
}

func (r *employeeRepository) GetByID(ctx context.Context, companyID, id string) (*domain.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE id=$1 AND company_id=$2`
	e, err := scanEmployee(r.db.QueryRow(ctx, query, id, companyID))
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *employeeRepository) Create(ctx context.Context, employee *domain.Employee) error {
	const query = `
        INSERT INTO employees (company_id, name, email, position, department, status, join_date, avatar)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING id, created_at, updated_at`
	return r.db.QueryRow(ctx, query,
		employee.CompanyID,
		employee.Name,
		employee.Email,
		employee.Position,
		employee.Department,
		employee.Status,
		employee.JoinDate,
		employee.Avatar,
	).Scan(&employee.ID, &employee.CreatedAt, &employee.UpdatedAt)
}

func (r *employeeRepository) Update(ctx context.Context, employee *domain.Employee) error {
	const query = `
        UPDATE employees SET name=$1, email=$2, position=$3, department=$4, status=$5, join_date=$6, avatar=$7, updated_at=NOW()
        WHERE id=$8 AND company_id=$9
        RETURNING created_at, updated_at`
	return r.db.QueryRow(ctx, query,
		employee.Name,
		employee.Email,
		employee.Position,
		employee.Department,
		employee.Status,
		employee.JoinDate,
		employee.Avatar,
		employee.ID,
		employee.CompanyID,
	).Scan(&employee.CreatedAt, &employee.UpdatedAt)
}

func (r *employeeRepository) Delete(ctx context.Context, companyID, id string) error {
	return expectAffected(r.db.Exec(ctx, `DELETE FROM employees WHERE id=$1 AND company_id=$2`, id, companyID))
}
