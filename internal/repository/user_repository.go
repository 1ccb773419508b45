package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/emsdev/ems-service/internal/domain"
)

// UserRepository defines persistence access for dashboard accounts.
type UserRepository interface {
	CreateWithCompany(ctx context.Context, company *domain.Company, user *domain.User) error
	Update(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

type userRepository struct {
	db DB
}

// NewUserRepository returns a Postgres-backed implementation.
func NewUserRepository(db DB) UserRepository {
	return &userRepository{db: db}
}

const userColumns = `id, company_id, name, email, password_hash, role, bio, avatar, created_at, updated_at`

func scanUser(row rowScanner) (*domain.User, error) {
	var user domain.User
	if err := row.Scan(
		&user.ID,
		&user.CompanyID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.Role,
		&user.Bio,
		&user.Avatar,
		&user.CreatedAt,
		&user.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &user, nil
}

// CreateWithCompany inserts the tenant and its first account atomically.
func (r *userRepository) CreateWithCompany(ctx context.Context, company *domain.Company, user *domain.User) error {
	return pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		if err := insertCompany(ctx, tx, company); err != nil {
			return err
		}
		user.CompanyID = company.ID

		const query = `
            INSERT INTO users (company_id, name, email, password_hash, role)
            VALUES ($1, $2, $3, $4, $5)
            RETURNING id, created_at, updated_at`
		return tx.QueryRow(ctx, query,
			user.CompanyID,
			user.Name,
			user.Email,
			user.PasswordHash,
			user.Role,
		).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	})
}

func (r *userRepository) Update(ctx context.Context, user *domain.User) error {
	const query = `
        UPDATE users SET name=$1, email=$2, role=$3, bio=$4, avatar=$5, updated_at=NOW()
        WHERE id=$6`

	return expectAffected(r.db.Exec(ctx, query,
		user.Name,
		user.Email,
		user.Role,
		user.Bio,
		user.Avatar,
		user.ID,
	))
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id=$1`
	return scanUser(r.db.QueryRow(ctx, query, id))
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE lower(email)=lower($1)`
	return scanUser(r.db.QueryRow(ctx, query, email))
}
