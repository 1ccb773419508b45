package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/emsdev/ems-service/internal/domain"
)

// CompanyRepository persists tenants.
type CompanyRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Company, error)
	Update(ctx context.Context, company *domain.Company) error
}

type companyRepository struct {
	db DB
}

// NewCompanyRepository returns a Postgres-backed implementation.
func NewCompanyRepository(db DB) CompanyRepository {
	return &companyRepository{db: db}
}

const companyColumns = `id, name, website, email, phone, address, description, package_id, created_at, updated_at`

func scanCompany(row rowScanner) (*domain.Company, error) {
	var c domain.Company
	if err := row.Scan(
		&c.ID,
		&c.Name,
		&c.Website,
		&c.Email,
		&c.Phone,
		&c.Address,
		&c.Description,
		&c.PackageID,
		&c.CreatedAt,
		&c.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *companyRepository) GetByID(ctx context.Context, id string) (*domain.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies WHERE id=$1`
	return scanCompany(r.db.QueryRow(ctx, query, id))
}

func (r *companyRepository) Update(ctx context.Context, company *domain.Company) error {
	const query = `
        UPDATE companies SET name=$1, website=$2, email=$3, phone=$4, address=$5, description=$6, updated_at=NOW()
        WHERE id=$7
        RETURNING updated_at`
	return r.db.QueryRow(ctx, query,
		company.Name,
		company.Website,
		company.Email,
		company.Phone,
		company.Address,
		company.Description,
		company.ID,
	).Scan(&company.UpdatedAt)
}

// insertCompany runs inside the registration transaction.
func insertCompany(ctx context.Context, tx pgx.Tx, company *domain.Company) error {
	const query = `
        INSERT INTO companies (name, website, email, phone, address, description)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id, created_at, updated_at`
	return tx.QueryRow(ctx, query,
		company.Name,
		company.Website,
		company.Email,
		company.Phone,
		company.Address,
		company.Description,
	).Scan(&company.ID, &company.CreatedAt, &company.UpdatedAt)
}
