package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/emsdev/ems-service/internal/domain"
)

// DepartmentRepository manages departments. EmployeeCount is computed on read.
type DepartmentRepository interface {
	List(ctx context.Context, companyID string) ([]domain.Department, error)
	GetByID(ctx context.Context, companyID, id string) (*domain.Department, error)
	Create(ctx context.Context, dept *domain.Department) error
	Update(ctx context.Context, dept *domain.Department) error
	Delete(ctx context.Context, companyID, id string) error
}

type departmentRepository struct {
	db DB
}

// NewDepartmentRepository constructs repository.
func NewDepartmentRepository(db DB) DepartmentRepository {
	return &departmentRepository{db: db}
}

const departmentSelect = `
        SELECT d.id, d.company_id, d.name, d.description, d.manager,
            (SELECT COUNT(*) FROM employees e WHERE e.company_id = d.company_id AND e.department = d.name) AS employee_count,
            d.created_at, d.updated_at
        FROM departments d`

func scanDepartment(row rowScanner) (domain.Department, error) {
	var d domain.Department
	err := row.Scan(
		&d.ID,
		&d.CompanyID,
		&d.Name,
		&d.Description,
		&d.Manager,
		&d.EmployeeCount,
		&d.CreatedAt,
		&d.UpdatedAt,
	)
	return d, err
}

func (r *departmentRepository) List(ctx context.Context, companyID string) ([]domain.Department, error) {
	rows, err := r.db.Query(ctx, departmentSelect+` WHERE d.company_id=$1 ORDER BY d.created_at, d.id`, companyID)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanDepartment)
}

func (r *departmentRepository) GetByID(ctx context.Context, companyID, id string) (*domain.Department, error) {
	d, err := scanDepartment(r.db.QueryRow(ctx, departmentSelect+` WHERE d.id=$1 AND d.company_id=$2`, id, companyID))
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *departmentRepository) Create(ctx context.Context, dept *domain.Department) error {
	const query = `
        INSERT INTO departments (company_id, name, description, manager)
        VALUES ($1, $2, $3, $4)
        RETURNING id, created_at, updated_at`
	return r.db.QueryRow(ctx, query,
		dept.CompanyID,
		dept.Name,
		dept.Description,
		dept.Manager,
	).Scan(&dept.ID, &dept.CreatedAt, &dept.UpdatedAt)
}

// Update rewrites the department row. Employees and positions reference departments
// by name, so a rename is carried over to them in the same transaction.
func (r *departmentRepository) Update(ctx context.Context, dept *domain.Department) error {
	return pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		var oldName string
		err := tx.QueryRow(ctx, `SELECT name FROM departments WHERE id=$1 AND company_id=$2 FOR UPDATE`,
			dept.ID, dept.CompanyID).Scan(&oldName)
		if err != nil {
			return err
		}

		const query = `
            UPDATE departments SET name=$1, description=$2, manager=$3, updated_at=NOW()
            WHERE id=$4 AND company_id=$5`
		if _, err := tx.Exec(ctx, query,
			dept.Name,
			dept.Description,
			dept.Manager,
			dept.ID,
			dept.CompanyID,
		); err != nil {
			return err
		}
		if oldName == dept.Name {
			return nil
		}

		if _, err := tx.Exec(ctx, `UPDATE employees SET department=$1, updated_at=NOW() WHERE company_id=$2 AND department=$3`,
			dept.Name, dept.CompanyID, oldName); err != nil {
			return err
		}
		_, err = tx.Exec(ctx, `UPDATE positions SET department=$1, updated_at=NOW() WHERE company_id=$2 AND department=$3`,
			dept.Name, dept.CompanyID, oldName)
		return err
	})
}

func (r *departmentRepository) Delete(ctx context.Context, companyID, id string) error {
	return expectAffected(r.db.Exec(ctx, `DELETE FROM departments WHERE id=$1 AND company_id=$2`, id, companyID))
}
