package service

import (
	"context"
	"strings"
	"time"

	"github.com/emsdev/ems-service/internal/domain"
	"github.com/emsdev/ems-service/internal/events"
	"github.com/emsdev/ems-service/internal/listing"
	"github.com/emsdev/ems-service/internal/repository"
	apperrors "github.com/emsdev/ems-service/pkg/util/errorutil"
)

// EmployeeInput carries the editable employee fields.
type EmployeeInput struct {
	Name       string
	Email      string
	Position   string
	Department string
	Status     domain.EmployeeStatus
	JoinDate   time.Time
	Avatar     string
}

// EmployeeDependencies encapsulates repo requirements for the employee service.
type EmployeeDependencies struct {
	EmployeeRepo   repository.EmployeeRepository
	DepartmentRepo repository.DepartmentRepository
	CompanyRepo    repository.CompanyRepository
}

// EmployeeService manages employee records.
type EmployeeService struct {
	employees   repository.EmployeeRepository
	departments repository.DepartmentRepository
	companies   repository.CompanyRepository
	col         *Collections
}

// NewEmployeeService constructs the service.
func NewEmployeeService(deps EmployeeDependencies, col *Collections) *EmployeeService {
	return &EmployeeService{
		employees:   deps.EmployeeRepo,
		departments: deps.DepartmentRepo,
		companies:   deps.CompanyRepo,
		col:         col,
	}
}

// All returns the tenant's full employee collection.
func (s *EmployeeService) All(ctx context.Context, actor Actor) ([]domain.Employee, error) {
	items, err := loadCollection(ctx, s.col, actor.CompanyID, ResourceEmployees, func(ctx context.Context) ([]domain.Employee, error) {
		return s.employees.List(ctx, actor.CompanyID)
	})
	return items, apperrors.MapError(err)
}

// List runs the list pipeline over the employee collection.
func (s *EmployeeService) List(ctx context.Context, actor Actor, q listing.Query) (listing.Page[domain.Employee], error) {
	items, err := s.All(ctx, actor)
	if err != nil {
		return listing.Page[domain.Employee]{}, err
	}
	return list(s.col, EmployeeSpec, q, items), nil
}

// Filtered returns every employee matching q, unpaginated. Used by the export.
func (s *EmployeeService) Filtered(ctx context.Context, actor Actor, q listing.Query) ([]domain.Employee, error) {
	items, err := s.All(ctx, actor)
	if err != nil {
		return nil, err
	}
	return listing.Filter(EmployeeSpec, q, items), nil
}

// Get returns one employee.
func (s *EmployeeService) Get(ctx context.Context, actor Actor, id string) (*domain.Employee, error) {
	e, err := s.employees.GetByID(ctx, actor.CompanyID, id)
	if err != nil {
		return nil, apperrors.MapError(err, "employee")
	}
	return e, nil
}

// Create adds an employee after checking the department and the package seat limit.
func (s *EmployeeService) Create(ctx context.Context, actor Actor, in EmployeeInput) (*domain.Employee, error) {
	if err := s.checkDepartment(ctx, actor.CompanyID, in.Department); err != nil {
		return nil, err
	}
	if err := s.checkSeatLimit(ctx, actor); err != nil {
		return nil, err
	}

	e := &domain.Employee{CompanyID: actor.CompanyID}
	applyEmployeeInput(e, in)
	if err := s.employees.Create(ctx, e); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.col.invalidate(ctx, actor.CompanyID, ResourceEmployees, ResourceDepartments)
	s.col.publish(ctx, events.New(events.EventEmployeeCreated, actor.CompanyID, actor.UserID, e.ID, nil))
	return e, nil
}

// Update replaces an employee's editable fields.
func (s *EmployeeService) Update(ctx context.Context, actor Actor, id string, in EmployeeInput) (*domain.Employee, error) {
	existing, err := s.employees.GetByID(ctx, actor.CompanyID, id)
	if err != nil {
		return nil, apperrors.MapError(err, "employee")
	}
	if in.Department != existing.Department {
		if err := s.checkDepartment(ctx, actor.CompanyID, in.Department); err != nil {
			return nil, err
		}
	}

	applyEmployeeInput(existing, in)
	if err := s.employees.Update(ctx, existing); err != nil {
		return nil, apperrors.MapError(err, "employee")
	}
	s.col.invalidate(ctx, actor.CompanyID, ResourceEmployees, ResourceDepartments, ResourceTasks)
	return existing, nil
}

// Delete removes an employee.
func (s *EmployeeService) Delete(ctx context.Context, actor Actor, id string) error {
	if err := s.employees.Delete(ctx, actor.CompanyID, id); err != nil {
		return apperrors.MapError(err, "employee")
	}
	s.col.invalidate(ctx, actor.CompanyID, ResourceEmployees, ResourceDepartments, ResourceTasks)
	s.col.publish(ctx, events.New(events.EventEmployeeDeleted, actor.CompanyID, actor.UserID, id, nil))
	return nil
}

func applyEmployeeInput(e *domain.Employee, in EmployeeInput) {
	e.Name = strings.TrimSpace(in.Name)
	e.Email = strings.TrimSpace(in.Email)
	e.Position = strings.TrimSpace(in.Position)
	e.Department = strings.TrimSpace(in.Department)
	e.Status = in.Status
	if e.Status == "" {
		e.Status = domain.EmployeeActive
	}
	e.JoinDate = in.JoinDate
	if e.JoinDate.IsZero() {
		e.JoinDate = time.Now().UTC().Truncate(24 * time.Hour)
	}
	e.Avatar = in.Avatar
}

// checkDepartment requires a non-empty department name to exist in the tenant.
func (s *EmployeeService) checkDepartment(ctx context.Context, companyID, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}
	depts, err := s.departments.List(ctx, companyID)
	if err != nil {
		return apperrors.MapError(err)
	}
	for _, d := range depts {
		if d.Name == name {
			return nil
		}
	}
	return apperrors.NewValidationError("unknown department", map[string]any{"department": name})
}

func (s *EmployeeService) checkSeatLimit(ctx context.Context, actor Actor) error {
	if s.companies == nil {
		return nil
	}
	company, err := s.companies.GetByID(ctx, actor.CompanyID)
	if err != nil {
		return apperrors.MapError(err, "company")
	}
	if company.PackageID == nil {
		return nil
	}
	pkg, ok := domain.FindPackage(*company.PackageID)
	if !ok || pkg.EmployeeLimit == 0 {
		return nil
	}
	current, err := s.employees.List(ctx, actor.CompanyID)
	if err != nil {
		return apperrors.MapError(err)
	}
	if len(current) >= pkg.EmployeeLimit {
		return apperrors.NewForbidden("employee limit reached for the " + pkg.Name + " package")
	}
	return nil
}
