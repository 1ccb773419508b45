package service

import (
	"context"
	"strings"

	"github.com/emsdev/ems-service/internal/domain"
	"github.com/emsdev/ems-service/internal/listing"
	"github.com/emsdev/ems-service/internal/repository"
	apperrors "github.com/emsdev/ems-service/pkg/util/errorutil"
)

// DepartmentInput carries the editable department fields.
type DepartmentInput struct {
	Name        string
	Description string
	Manager     string
}

// DepartmentService manages departments.
type DepartmentService struct {
	departments repository.DepartmentRepository
	col         *Collections
}

// NewDepartmentService constructs the service.
func NewDepartmentService(departments repository.DepartmentRepository, col *Collections) *DepartmentService {
	return &DepartmentService{departments: departments, col: col}
}

// All returns the tenant's departments with derived employee counts.
func (s *DepartmentService) All(ctx context.Context, actor Actor) ([]domain.Department, error) {
	items, err := loadCollection(ctx, s.col, actor.CompanyID, ResourceDepartments, func(ctx context.Context) ([]domain.Department, error) {
		return s.departments.List(ctx, actor.CompanyID)
	})
	return items, apperrors.MapError(err)
}

// List runs the list pipeline over the department collection.
func (s *DepartmentService) List(ctx context.Context, actor Actor, q listing.Query) (listing.Page[domain.Department], error) {
	items, err := s.All(ctx, actor)
	if err != nil {
		return listing.Page[domain.Department]{}, err
	}
	return list(s.col, DepartmentSpec, q, items), nil
}

// Get returns one department.
func (s *DepartmentService) Get(ctx context.Context, actor Actor, id string) (*domain.Department, error) {
	d, err := s.departments.GetByID(ctx, actor.CompanyID, id)
	if err != nil {
		return nil, apperrors.MapError(err, "department")
	}
	return d, nil
}

// Create adds a department. Names are unique per tenant.
func (s *DepartmentService) Create(ctx context.Context, actor Actor, in DepartmentInput) (*domain.Department, error) {
	d := &domain.Department{
		CompanyID:   actor.CompanyID,
		Name:        strings.TrimSpace(in.Name),
		Description: strings.TrimSpace(in.Description),
		Manager:     strings.TrimSpace(in.Manager),
	}
	if err := s.departments.Create(ctx, d); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.col.invalidate(ctx, actor.CompanyID, ResourceDepartments)
	return d, nil
}

// Update replaces a department's editable fields. A rename carries over to the
// employees and positions filed under the old name.
func (s *DepartmentService) Update(ctx context.Context, actor Actor, id string, in DepartmentInput) (*domain.Department, error) {
	d := &domain.Department{
		ID:          id,
		CompanyID:   actor.CompanyID,
		Name:        strings.TrimSpace(in.Name),
		Description: strings.TrimSpace(in.Description),
		Manager:     strings.TrimSpace(in.Manager),
	}
	if err := s.departments.Update(ctx, d); err != nil {
		return nil, apperrors.MapError(err, "department")
	}
	s.col.invalidate(ctx, actor.CompanyID, ResourceDepartments, ResourceEmployees, ResourcePositions, ResourceTasks, ResourceJobs)
	return s.Get(ctx, actor, id)
}

// Delete removes a department. Departments still owning tasks or postings are kept.
func (s *DepartmentService) Delete(ctx context.Context, actor Actor, id string) error {
	if err := s.departments.Delete(ctx, actor.CompanyID, id); err != nil {
		if apperrors.IsForeignKeyViolation(err) {
			return apperrors.NewConflict("department still has tasks or job postings", map[string]any{"id": id})
		}
		return apperrors.MapError(err, "department")
	}
	s.col.invalidate(ctx, actor.CompanyID, ResourceDepartments)
	return nil
}
