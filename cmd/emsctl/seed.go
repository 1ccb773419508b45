package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/emsdev/ems-service/internal/api/dto"
	"github.com/emsdev/ems-service/internal/cache"
	"github.com/emsdev/ems-service/internal/config"
	"github.com/emsdev/ems-service/internal/domain"
	"github.com/emsdev/ems-service/internal/events"
	"github.com/emsdev/ems-service/internal/persistence"
	"github.com/emsdev/ems-service/internal/repository"
	"github.com/emsdev/ems-service/internal/service"
	apperrors "github.com/emsdev/ems-service/pkg/util/errorutil"
)

// SeedFile describes one tenant to load.
type SeedFile struct {
	Company     string           `yaml:"company"`
	Owner       SeedOwner        `yaml:"owner"`
	Departments []SeedDepartment `yaml:"departments"`
	Employees   []SeedEmployee   `yaml:"employees"`
}

// SeedOwner becomes the company's CEO.
type SeedOwner struct {
	Name     string `yaml:"name"`
	Email    string `yaml:"email"`
	Password string `yaml:"password"`
}

type SeedDepartment struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Manager     string `yaml:"manager"`
}

type SeedEmployee struct {
	Name       string `yaml:"name"`
	Email      string `yaml:"email"`
	Position   string `yaml:"position"`
	Department string `yaml:"department"`
	Status     string `yaml:"status"`
	JoinDate   string `yaml:"join_date"`
}

// SeedResult counts what was created; existing rows are skipped.
type SeedResult struct {
	CompanyID   string
	Departments int
	Employees   int
	Skipped     int
}

func loadSeed(path string) (*SeedFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file %s: %w", path, err)
	}
	var seed SeedFile
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("parse seed file %s: %w", path, err)
	}
	if seed.Company == "" || seed.Owner.Email == "" || seed.Owner.Password == "" {
		return nil, fmt.Errorf("seed file %s: company, owner.email and owner.password are required", path)
	}
	return &seed, nil
}

// seeder applies a SeedFile through the same services the API uses.
type seeder struct {
	auth        *service.AuthService
	departments *service.DepartmentService
	employees   *service.EmployeeService
	logger      *zap.Logger
}

func newSeeder(cfg config.Config, users repository.UserRepository, companies repository.CompanyRepository,
	departments repository.DepartmentRepository, employees repository.EmployeeRepository, logger *zap.Logger) *seeder {
	col := service.NewCollections(cfg.Listing, cache.NopCollectionCache{}, events.NewInMemoryDispatcher(), logger)
	return &seeder{
		auth:        service.NewAuthService(cfg, service.AuthDependencies{UserRepo: users}, logger),
		departments: service.NewDepartmentService(departments, col),
		employees: service.NewEmployeeService(service.EmployeeDependencies{
			EmployeeRepo:   employees,
			DepartmentRepo: departments,
			CompanyRepo:    companies,
		}, col),
		logger: logger,
	}
}

func (s *seeder) apply(ctx context.Context, seed *SeedFile) (SeedResult, error) {
	var res SeedResult
	session, err := s.auth.Register(ctx, service.RegisterInput{
		Name:     seed.Owner.Name,
		Email:    seed.Owner.Email,
		Password: seed.Owner.Password,
		Company:  seed.Company,
	})
	if isConflict(err) {
		s.logger.Info("owner already exists, reusing", zap.String("email", seed.Owner.Email))
		session, err = s.auth.Login(ctx, seed.Owner.Email, seed.Owner.Password)
	}
	if err != nil {
		return res, fmt.Errorf("owner %s: %w", seed.Owner.Email, err)
	}
	actor := service.Actor{UserID: session.User.ID, CompanyID: session.User.CompanyID, Role: session.User.Role}
	res.CompanyID = actor.CompanyID

	for _, d := range seed.Departments {
		_, err := s.departments.Create(ctx, actor, service.DepartmentInput{
			Name:        d.Name,
			Description: d.Description,
			Manager:     d.Manager,
		})
		switch {
		case isConflict(err):
			res.Skipped++
		case err != nil:
			return res, fmt.Errorf("department %s: %w", d.Name, err)
		default:
			res.Departments++
		}
	}

	for _, e := range seed.Employees {
		joined, err := dto.ParseDate("join_date", e.JoinDate)
		if err != nil {
			return res, fmt.Errorf("employee %s: %w", e.Email, err)
		}
		in := service.EmployeeInput{
			Name:       e.Name,
			Email:      e.Email,
			Position:   e.Position,
			Department: e.Department,
			Status:     domain.EmployeeStatus(e.Status),
		}
		if joined != nil {
			in.JoinDate = *joined
		}
		_, err = s.employees.Create(ctx, actor, in)
		switch {
		case isConflict(err):
			res.Skipped++
		case err != nil:
			return res, fmt.Errorf("employee %s: %w", e.Email, err)
		default:
			res.Employees++
		}
	}
	return res, nil
}

func isConflict(err error) bool {
	if err == nil {
		return false
	}
	return apperrors.ToDomainError(err).Code == "CONFLICT"
}

func newSeedCmd(e *env) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:     "seed",
		Short:   "Load a company, its departments and employees from YAML",
		Example: "  emsctl seed --file cmd/emsctl/testdata/seed.yaml",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			seed, err := loadSeed(file)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			pg, err := persistence.NewPostgres(ctx, e.cfg.Postgres, e.logger)
			if err != nil {
				return err
			}
			defer pg.Close()
			if pg.Pool == nil {
				return fmt.Errorf("POSTGRES_DSN is required")
			}

			s := newSeeder(*e.cfg,
				repository.NewUserRepository(pg.Pool),
				repository.NewCompanyRepository(pg.Pool),
				repository.NewDepartmentRepository(pg.Pool),
				repository.NewEmployeeRepository(pg.Pool),
				e.logger)
			res, err := s.apply(ctx, seed)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "company %s: %d departments, %d employees created, %d skipped\n",
				res.CompanyID, res.Departments, res.Employees, res.Skipped)
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "seed.yaml", "path to the seed YAML file")
	return cmd
}
