package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/emsdev/ems-service/internal/domain"
)

// PaymentRepository persists the company's payment history.
type PaymentRepository interface {
	List(ctx context.Context, companyID string) ([]domain.Payment, error)
	GetByID(ctx context.Context, companyID, id string) (*domain.Payment, error)
	Create(ctx context.Context, payment *domain.Payment) error
	Subscribe(ctx context.Context, payment *domain.Payment, userID string, role domain.Role) error
}

type paymentRepository struct {
	db DB
}

// NewPaymentRepository instantiates repository.
func NewPaymentRepository(db DB) PaymentRepository {
	return &paymentRepository{db: db}
}

const paymentSelect = `
        SELECT id, company_id, user_id, reference_key, amount::text, method, account_number, status,
            reference, description, package_id, paid_at
        FROM payments`

func scanPayment(row rowScanner) (domain.Payment, error) {
	var (
		p      domain.Payment
		amount string
	)
	if err := row.Scan(
		&p.ID,
		&p.CompanyID,
		&p.UserID,
		&p.Key,
		&amount,
		&p.Method,
		&p.AccountNumber,
		&p.Status,
		&p.Reference,
		&p.Description,
		&p.PackageID,
		&p.PaidAt,
	); err != nil {
		return p, err
	}
	var err error
	p.Amount, err = parseDecimal(amount)
	return p, err
}

func (r *paymentRepository) List(ctx context.Context, companyID string) ([]domain.Payment, error) {
	rows, err := r.db.Query(ctx, paymentSelect+` WHERE company_id=$1 ORDER BY paid_at DESC, id`, companyID)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanPayment)
}

// GetByID accepts either the row uuid or the PAY- key.
func (r *paymentRepository) GetByID(ctx context.Context, companyID, id string) (*domain.Payment, error) {
	p, err := scanPayment(r.db.QueryRow(ctx, paymentSelect+` WHERE (id::text=$1 OR reference_key=$1) AND company_id=$2`, id, companyID))
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *paymentRepository) Create(ctx context.Context, payment *domain.Payment) error {
	return insertPayment(ctx, r.db, payment)
}

// Subscribe records the package payment, stamps the package on the company and, when
// role is set, moves the subscribing user to it. All three commit or none do.
func (r *paymentRepository) Subscribe(ctx context.Context, payment *domain.Payment, userID string, role domain.Role) error {
	if payment.PackageID == nil {
		return errors.New("subscription payment has no package")
	}
	return pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		if err := insertPayment(ctx, tx, payment); err != nil {
			return err
		}
		if err := expectAffected(tx.Exec(ctx, `UPDATE companies SET package_id=$1, updated_at=NOW() WHERE id=$2`,
			*payment.PackageID, payment.CompanyID)); err != nil {
			return err
		}
		if role == "" {
			return nil
		}
		return expectAffected(tx.Exec(ctx, `UPDATE users SET role=$1, updated_at=NOW() WHERE id=$2 AND company_id=$3`,
			role, userID, payment.CompanyID))
	})
}

func insertPayment(ctx context.Context, q rowQuerier, payment *domain.Payment) error {
	const query = `
        INSERT INTO payments (company_id, user_id, reference_key, amount, method, account_number, status, reference, description, package_id)
        VALUES ($1, $2, $3, $4::numeric, $5, $6, $7, $8, $9, $10)
        RETURNING id, paid_at`
	return q.QueryRow(ctx, query,
		payment.CompanyID,
		payment.UserID,
		payment.Key,
		payment.Amount.String(),
		payment.Method,
		payment.AccountNumber,
		payment.Status,
		payment.Reference,
		payment.Description,
		payment.PackageID,
	).Scan(&payment.ID, &payment.PaidAt)
}
