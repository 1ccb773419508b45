package repository

import (
	"context"

	"github.com/emsdev/ems-service/internal/domain"
)

// PositionRepository persists the company's defined positions.
type PositionRepository interface {
	List(ctx context.Context, companyID string) ([]domain.Position, error)
	Create(ctx context.Context, position *domain.Position) error
	Delete(ctx context.Context, companyID, id string) error
}

type positionRepository struct {
	db DB
}

// NewPositionRepository returns a Postgres-backed implementation.
func NewPositionRepository(db DB) PositionRepository {
	return &positionRepository{db: db}
}

func (r *positionRepository) List(ctx context.Context, companyID string) ([]domain.Position, error) {
	const query = `
        SELECT id, company_id, title, department, description, salary::text, created_at, updated_at
        FROM positions WHERE company_id=$1 ORDER BY created_at`
	rows, err := r.db.Query(ctx, query, companyID)
	if err != nil {
		return nil, err
	}
	return collect(rows, func(row rowScanner) (domain.Position, error) {
		var (
			p      domain.Position
			salary string
		)
		if err := row.Scan(&p.ID, &p.CompanyID, &p.Title, &p.Department, &p.Description, &salary, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return p, err
		}
		var err error
		p.Salary, err = parseDecimal(salary)
		return p, err
	})
}

func (r *positionRepository) Create(ctx context.Context, position *domain.Position) error {
	const query = `
        INSERT INTO positions (company_id, title, department, description, salary)
        VALUES ($1, $2, $3, $4, $5::numeric)
        RETURNING id, created_at, updated_at`
	return r.db.QueryRow(ctx, query,
		position.CompanyID,
		position.Title,
		position.Department,
		position.Description,
		position.Salary.String(),
	).Scan(&position.ID, &position.CreatedAt, &position.UpdatedAt)
}

func (r *positionRepository) Delete(ctx context.Context, companyID, id string) error {
	return expectAffected(r.db.Exec(ctx, `DELETE FROM positions WHERE id=$1 AND company_id=$2`, id, companyID))
}
