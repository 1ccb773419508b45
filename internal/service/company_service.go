package service

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/emsdev/ems-service/internal/domain"
	"github.com/emsdev/ems-service/internal/listing"
	"github.com/emsdev/ems-service/internal/repository"
	apperrors "github.com/emsdev/ems-service/pkg/util/errorutil"
)

// CompanyInput carries the editable company profile.
type CompanyInput struct {
	Name        string
	Website     string
	Email       string
	Phone       string
	Address     string
	Description string
}

// PositionInput carries a new position.
type PositionInput struct {
	Title       string
	Department  string
	Description string
	Salary      decimal.Decimal
}

// CompanyDependencies encapsulates repo requirements for the company page.
type CompanyDependencies struct {
	CompanyRepo  repository.CompanyRepository
	PositionRepo repository.PositionRepository
}

// CompanyService manages the tenant profile and its positions.
type CompanyService struct {
	companies repository.CompanyRepository
	positions repository.PositionRepository
	col       *Collections
}

// NewCompanyService constructs the service.
func NewCompanyService(deps CompanyDependencies, col *Collections) *CompanyService {
	return &CompanyService{companies: deps.CompanyRepo, positions: deps.PositionRepo, col: col}
}

// Get returns the caller's company.
func (s *CompanyService) Get(ctx context.Context, actor Actor) (*domain.Company, error) {
	c, err := s.companies.GetByID(ctx, actor.CompanyID)
	if err != nil {
		return nil, apperrors.MapError(err, "company")
	}
	return c, nil
}

// Update replaces the company profile.
func (s *CompanyService) Update(ctx context.Context, actor Actor, in CompanyInput) (*domain.Company, error) {
	c, err := s.Get(ctx, actor)
	if err != nil {
		return nil, err
	}
	c.Name = strings.TrimSpace(in.Name)
	c.Website = strings.TrimSpace(in.Website)
	c.Email = strings.TrimSpace(in.Email)
	c.Phone = strings.TrimSpace(in.Phone)
	c.Address = strings.TrimSpace(in.Address)
	c.Description = strings.TrimSpace(in.Description)
	if err := s.companies.Update(ctx, c); err != nil {
		return nil, apperrors.MapError(err, "company")
	}
	return c, nil
}

// ListPositions runs the list pipeline over the company's positions.
func (s *CompanyService) ListPositions(ctx context.Context, actor Actor, q listing.Query) (listing.Page[domain.Position], error) {
	items, err := loadCollection(ctx, s.col, actor.CompanyID, ResourcePositions, func(ctx context.Context) ([]domain.Position, error) {
		return s.positions.List(ctx, actor.CompanyID)
	})
	if err != nil {
		return listing.Page[domain.Position]{}, apperrors.MapError(err)
	}
	return list(s.col, PositionSpec, q, items), nil
}

// CreatePosition adds a position. Salary must be positive.
func (s *CompanyService) CreatePosition(ctx context.Context, actor Actor, in PositionInput) (*domain.Position, error) {
	if !in.Salary.IsPositive() {
		return nil, apperrors.NewValidationError("salary must be greater than 0", map[string]any{"salary": in.Salary.String()})
	}
	p := &domain.Position{
		CompanyID:   actor.CompanyID,
		Title:       strings.TrimSpace(in.Title),
		Department:  strings.TrimSpace(in.Department),
		Description: strings.TrimSpace(in.Description),
		Salary:      in.Salary,
	}
	if err := s.positions.Create(ctx, p); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.col.invalidate(ctx, actor.CompanyID, ResourcePositions)
	return p, nil
}

// DeletePosition removes a position.
func (s *CompanyService) DeletePosition(ctx context.Context, actor Actor, id string) error {
	if err := s.positions.Delete(ctx, actor.CompanyID, id); err != nil {
		return apperrors.MapError(err, "position")
	}
	s.col.invalidate(ctx, actor.CompanyID, ResourcePositions)
	return nil
}
