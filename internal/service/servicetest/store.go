// Package servicetest provides in-memory repositories for service and handler tests.
package servicetest

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/emsdev/ems-service/internal/domain"
	"github.com/emsdev/ems-service/internal/repository"
)

// Store holds every tenant's rows. The repository views below share it.
type Store struct {
	mu sync.Mutex

	companies      []*domain.Company
	users          []*domain.User
	employees      []*domain.Employee
	departments    []*domain.Department
	positions      []*domain.Position
	tasks          []*domain.Task
	jobs           []*domain.JobPosting
	applications   []*domain.Application
	payments       []*domain.Payment
	skills         []*domain.Skill
	education      []*domain.Education
	experience     []*domain.Experience
	certifications []*domain.Certification

	// Calls counts List invocations per resource, for cache assertions.
	Calls map[string]int
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{Calls: map[string]int{}}
}

func uniqueViolation(constraint string) error {
	return &pgconn.PgError{Code: "23505", ConstraintName: constraint}
}

func fkViolation(constraint string) error {
	return &pgconn.PgError{Code: "23503", ConstraintName: constraint}
}

func stamp() time.Time { return time.Now().UTC() }

// Repositories bundles every repository view over the store.
type Repositories struct {
	Companies    repository.CompanyRepository
	Users        repository.UserRepository
	Profiles     repository.ProfileRepository
	Positions    repository.PositionRepository
	Employees    repository.EmployeeRepository
	Departments  repository.DepartmentRepository
	Tasks        repository.TaskRepository
	Jobs         repository.JobRepository
	Applications repository.ApplicationRepository
	Payments     repository.PaymentRepository
}

// Repositories returns the repository views.
func (s *Store) Repositories() Repositories {
	return Repositories{
		Companies:    companyRepo{s},
		Users:        userRepo{s},
		Profiles:     profileRepo{s},
		Positions:    positionRepo{s},
		Employees:    employeeRepo{s},
		Departments:  departmentRepo{s},
		Tasks:        taskRepo{s},
		Jobs:         jobRepo{s},
		Applications: applicationRepo{s},
		Payments:     paymentRepo{s},
	}
}

// SeedCompany inserts a company and returns its id.
func (s *Store) SeedCompany(name string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := &domain.Company{ID: uuid.NewString(), Name: name, CreatedAt: stamp(), UpdatedAt: stamp()}
	s.companies = append(s.companies, c)
	return c.ID
}

type companyRepo struct{ s *Store }

func (r companyRepo) GetByID(_ context.Context, id string) (*domain.Company, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, c := range r.s.companies {
		if c.ID == id {
			cp := *c
			return &cp, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r companyRepo) Update(_ context.Context, company *domain.Company) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i, c := range r.s.companies {
		if c.ID == company.ID {
			cp := *company
			cp.UpdatedAt = stamp()
			r.s.companies[i] = &cp
			return nil
		}
	}
	return pgx.ErrNoRows
}

// SetCompanyPackage stamps a package on a company, standing in for a settled subscription.
func (s *Store) SetCompanyPackage(companyID, packageID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.companies {
		if c.ID == companyID {
			id := packageID
			c.PackageID = &id
		}
	}
}

type userRepo struct{ s *Store }

func (r userRepo) CreateWithCompany(_ context.Context, company *domain.Company, user *domain.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if strings.EqualFold(u.Email, user.Email) {
			return uniqueViolation("users_email_key")
		}
	}
	company.ID = uuid.NewString()
	company.CreatedAt, company.UpdatedAt = stamp(), stamp()
	user.ID = uuid.NewString()
	user.CompanyID = company.ID
	user.CreatedAt, user.UpdatedAt = stamp(), stamp()
	c, u := *company, *user
	r.s.companies = append(r.s.companies, &c)
	r.s.users = append(r.s.users, &u)
	return nil
}

func (r userRepo) Update(_ context.Context, user *domain.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i, u := range r.s.users {
		if u.ID == user.ID {
			cp := *user
			r.s.users[i] = &cp
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (r userRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r userRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if strings.EqualFold(u.Email, email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, pgx.ErrNoRows
}

type positionRepo struct{ s *Store }

func (r positionRepo) List(_ context.Context, companyID string) ([]domain.Position, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.Calls["positions"]++
	out := []domain.Position{}
	for _, p := range r.s.positions {
		if p.CompanyID == companyID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r positionRepo) Create(_ context.Context, position *domain.Position) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	position.ID = uuid.NewString()
	position.CreatedAt = stamp()
	cp := *position
	r.s.positions = append(r.s.positions, &cp)
	return nil
}

func (r positionRepo) Delete(_ context.Context, companyID, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i, p := range r.s.positions {
		if p.ID == id && p.CompanyID == companyID {
			r.s.positions = append(r.s.positions[:i], r.s.positions[i+1:]...)
			return nil
		}
	}
	return pgx.ErrNoRows
}
