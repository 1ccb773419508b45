package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/emsdev/ems-service/internal/domain"
	"github.com/emsdev/ems-service/internal/events"
	"github.com/emsdev/ems-service/internal/listing"
	"github.com/emsdev/ems-service/internal/repository"
	apperrors "github.com/emsdev/ems-service/pkg/util/errorutil"
)

// PaymentInput carries a payment request.
type PaymentInput struct {
	Amount        decimal.Decimal
	Method        domain.PaymentMethod
	AccountNumber string
	Reference     string
	Description   string
	PackageID     *string
}

// SubscriptionInput selects how a package is paid for.
type SubscriptionInput struct {
	Method        domain.PaymentMethod
	AccountNumber string
}

// Subscription is the result of subscribing to a package.
type Subscription struct {
	Package domain.Package
	Payment *domain.Payment
	User    *domain.User
}

// PaymentDependencies encapsulates repo requirements for payments and packages.
type PaymentDependencies struct {
	PaymentRepo repository.PaymentRepository
	UserRepo    repository.UserRepository
}

// PaymentService records payments and package subscriptions.
type PaymentService struct {
	payments repository.PaymentRepository
	users    repository.UserRepository
	col      *Collections
	newKey   func() string
}

// NewPaymentService constructs the service.
func NewPaymentService(deps PaymentDependencies, col *Collections) *PaymentService {
	return &PaymentService{
		payments: deps.PaymentRepo,
		users:    deps.UserRepo,
		col:      col,
		newKey:   NewPaymentKey,
	}
}

// NewPaymentKey returns a human readable payment id such as PAY-3F9A12BC.
func NewPaymentKey() string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "PAY-" + strings.ToUpper(raw[:8])
}

// All returns the tenant's payment history.
func (s *PaymentService) All(ctx context.Context, actor Actor) ([]domain.Payment, error) {
	items, err := loadCollection(ctx, s.col, actor.CompanyID, ResourcePayments, func(ctx context.Context) ([]domain.Payment, error) {
		return s.payments.List(ctx, actor.CompanyID)
	})
	return items, apperrors.MapError(err)
}

// List runs the list pipeline over payment history.
func (s *PaymentService) List(ctx context.Context, actor Actor, q listing.Query) (listing.Page[domain.Payment], error) {
	items, err := s.All(ctx, actor)
	if err != nil {
		return listing.Page[domain.Payment]{}, err
	}
	return list(s.col, PaymentSpec, q, items), nil
}

// Get accepts the row id or the PAY- key.
func (s *PaymentService) Get(ctx context.Context, actor Actor, id string) (*domain.Payment, error) {
	p, err := s.payments.GetByID(ctx, actor.CompanyID, id)
	if err != nil {
		return nil, apperrors.MapError(err, "payment")
	}
	return p, nil
}

// Create submits a payment request. Requests start pending.
func (s *PaymentService) Create(ctx context.Context, actor Actor, in PaymentInput) (*domain.Payment, error) {
	p, err := s.newPayment(actor, in)
	if err != nil {
		return nil, err
	}
	if err := s.payments.Create(ctx, p); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.col.invalidate(ctx, actor.CompanyID, ResourcePayments)
	s.col.publish(ctx, events.New(events.EventPaymentCreated, actor.CompanyID, actor.UserID, p.ID, paymentPayload(p)))
	return p, nil
}

func (s *PaymentService) newPayment(actor Actor, in PaymentInput) (*domain.Payment, error) {
	if !in.Amount.IsPositive() {
		return nil, apperrors.NewValidationError("amount must be greater than 0", map[string]any{"amount": in.Amount.String()})
	}
	if in.PackageID != nil {
		if _, ok := domain.FindPackage(*in.PackageID); !ok {
			return nil, apperrors.NewValidationError("unknown package", map[string]any{"package": *in.PackageID})
		}
	}

	p := &domain.Payment{
		CompanyID:     actor.CompanyID,
		Key:           s.newKey(),
		Amount:        in.Amount,
		Method:        in.Method,
		AccountNumber: strings.TrimSpace(in.AccountNumber),
		Status:        domain.PaymentPending,
		Reference:     strings.TrimSpace(in.Reference),
		Description:   strings.TrimSpace(in.Description),
		PackageID:     in.PackageID,
	}
	if actor.UserID != "" {
		uid := actor.UserID
		p.UserID = &uid
	}
	return p, nil
}

func paymentPayload(p *domain.Payment) events.PaymentPayload {
	payload := events.PaymentPayload{Key: p.Key, Amount: p.Amount.StringFixed(2), Method: string(p.Method)}
	if p.PackageID != nil {
		payload.PackageID = *p.PackageID
	}
	return payload
}

// Packages returns the subscription catalog.
func (s *PaymentService) Packages() []domain.Package {
	return domain.Packages
}

// Subscribe creates a pending payment for the package price and stamps the package
// on the company in one transaction. A plain User who subscribes becomes the company's CEO.
func (s *PaymentService) Subscribe(ctx context.Context, actor Actor, packageID string, in SubscriptionInput) (*Subscription, error) {
	pkg, ok := domain.FindPackage(packageID)
	if !ok {
		return nil, apperrors.NewNotFound("package", map[string]any{"id": packageID})
	}

	user, err := s.users.GetByID(ctx, actor.UserID)
	if err != nil {
		return nil, apperrors.MapError(err, "user")
	}

	payment, err := s.newPayment(actor, PaymentInput{
		Amount:        pkg.Price,
		Method:        in.Method,
		AccountNumber: in.AccountNumber,
		Reference:     "Subscription " + pkg.Name,
		Description:   pkg.Name + " package, billed " + pkg.Billing,
		PackageID:     &pkg.ID,
	})
	if err != nil {
		return nil, err
	}

	var promote domain.Role
	if user.Role == domain.RoleUser {
		promote = domain.RoleCEO
	}
	if err := s.payments.Subscribe(ctx, payment, user.ID, promote); err != nil {
		return nil, apperrors.MapError(err, "company")
	}
	if promote != "" {
		user.Role = promote
	}

	s.col.invalidate(ctx, actor.CompanyID, ResourcePayments)
	s.col.publish(ctx, events.New(events.EventPaymentCreated, actor.CompanyID, actor.UserID, payment.ID, paymentPayload(payment)))
	s.col.publish(ctx, events.New(events.EventPackageSubscribed, actor.CompanyID, actor.UserID, payment.ID, paymentPayload(payment)))
	return &Subscription{Package: pkg, Payment: payment, User: user}, nil
}
