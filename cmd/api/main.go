package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/emsdev/ems-service/internal/api/http"
	"github.com/emsdev/ems-service/internal/api/http/handlers"
	"github.com/emsdev/ems-service/internal/auth"
	"github.com/emsdev/ems-service/internal/cache"
	"github.com/emsdev/ems-service/internal/config"
	"github.com/emsdev/ems-service/internal/events"
	"github.com/emsdev/ems-service/internal/observability"
	"github.com/emsdev/ems-service/internal/persistence"
	"github.com/emsdev/ems-service/internal/repository"
	"github.com/emsdev/ems-service/internal/service"
	"github.com/emsdev/ems-service/internal/worker"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger, cfg.App)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(cfg.Postgres.DSN, logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()
	if pg.Pool == nil {
		logger.Fatal("POSTGRES_DSN is required")
	}

	rdb := persistence.NewRedis(ctx, cfg.Redis, logger)
	defer rdb.Close()

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher()
	notifications := worker.NewNotificationWorker(service.NewNotificationService(logger, cfg.Notification), cfg.Notification.QueueSize, logger)
	notifications.Subscribe(dispatcher)
	notifications.Start(ctx)

	pool := pg.Pool
	userRepo := repository.NewUserRepository(pool)
	companyRepo := repository.NewCompanyRepository(pool)
	departmentRepo := repository.NewDepartmentRepository(pool)
	employeeRepo := repository.NewEmployeeRepository(pool)

	revocations := cache.NewRevocationList(rdb.Client)
	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes)
	col := service.NewCollections(cfg.Listing, cache.NewCollectionCache(rdb.Client, cfg.Redis.CacheTTL()), dispatcher, logger)

	authService := service.NewAuthService(*cfg, service.AuthDependencies{
		UserRepo:     userRepo,
		TokenManager: tokens,
		Revocations:  revocations,
	}, logger)
	companyService := service.NewCompanyService(service.CompanyDependencies{
		CompanyRepo:  companyRepo,
		PositionRepo: repository.NewPositionRepository(pool),
	}, col)
	employeeService := service.NewEmployeeService(service.EmployeeDependencies{
		EmployeeRepo:   employeeRepo,
		DepartmentRepo: departmentRepo,
		CompanyRepo:    companyRepo,
	}, col)
	departmentService := service.NewDepartmentService(departmentRepo, col)
	taskService := service.NewTaskService(service.TaskDependencies{
		TaskRepo:       repository.NewTaskRepository(pool),
		DepartmentRepo: departmentRepo,
		EmployeeRepo:   employeeRepo,
	}, col)
	recruitmentService := service.NewRecruitmentService(service.RecruitmentDependencies{
		JobRepo:         repository.NewJobRepository(pool),
		ApplicationRepo: repository.NewApplicationRepository(pool),
		DepartmentRepo:  departmentRepo,
	}, col)
	paymentService := service.NewPaymentService(service.PaymentDependencies{
		PaymentRepo: repository.NewPaymentRepository(pool),
		UserRepo:    userRepo,
	}, col)
	profileService := service.NewProfileService(service.ProfileDependencies{
		UserRepo:    userRepo,
		ProfileRepo: repository.NewProfileRepository(pool),
	})
	analyticsService := service.NewAnalyticsService(employeeService, departmentService, taskService, recruitmentService, paymentService)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		BodyLimit:    cfg.App.BodyLimitBytes,
		ErrorHandler: httptransport.ErrorHandler(logger, metrics),
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health: handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, map[string]handlers.Pinger{
			"postgres": pg,
			"redis":    rdb,
		}),
		Auth:           handlers.NewAuthHandler(authService),
		Company:        handlers.NewCompanyHandler(companyService),
		Employees:      handlers.NewEmployeesHandler(employeeService, companyService),
		Departments:    handlers.NewDepartmentsHandler(departmentService),
		Tasks:          handlers.NewTasksHandler(taskService, companyService),
		Recruitment:    handlers.NewRecruitmentHandler(recruitmentService),
		Payments:       handlers.NewPaymentsHandler(paymentService, companyService),
		Profile:        handlers.NewProfileHandler(profileService),
		Analytics:      handlers.NewAnalyticsHandler(analyticsService),
		Metrics:        handlers.NewMetricsHandler(metrics),
		AuthMiddleware: auth.NewAuthMiddleware(tokens, userRepo, revocations, logger),
	})

	go func() {
		logger.Info("http server listening", zap.String("addr", cfg.App.Addr()))
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
		logger.Warn("graceful shutdown failed", zap.Error(err))
	}
	notifications.Stop()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
