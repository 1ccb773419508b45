package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/emsdev/ems-service/internal/api/http/handlers"
	"github.com/emsdev/ems-service/internal/auth"
	"github.com/emsdev/ems-service/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Company        *handlers.CompanyHandler
	Employees      *handlers.EmployeesHandler
	Departments    *handlers.DepartmentsHandler
	Tasks          *handlers.TasksHandler
	Recruitment    *handlers.RecruitmentHandler
	Payments       *handlers.PaymentsHandler
	Profile        *handlers.ProfileHandler
	Analytics      *handlers.AnalyticsHandler
	Metrics        *handlers.MetricsHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	api := app.Group("/api/v1")

	authGroup := api.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)

	// Authentication is attached per prefix, never to /api/v1 as a whole, so unknown
	// paths still reach the not found handler.
	authn := cfg.AuthMiddleware.Handle
	authGroup.Get("/me", authn, cfg.Auth.Me)
	authGroup.Post("/logout", authn, cfg.Auth.Logout)
	authGroup.Get("/navigation", authn, cfg.Auth.Navigation)
	if cfg.Metrics != nil {
		api.Get("/metrics", authn, auth.RequireRole(domain.RoleCEO), cfg.Metrics.Snapshot)
	}

	section := func(prefix string, s auth.Section) fiber.Router {
		return api.Group(prefix, authn, auth.RequireSection(s))
	}

	company := section("/company", auth.SectionCompany)
	company.Get("", cfg.Company.Get)
	company.Put("", cfg.Company.Update)
	company.Get("/positions", cfg.Company.ListPositions)
	company.Post("/positions", cfg.Company.CreatePosition)
	company.Delete("/positions/:id", cfg.Company.DeletePosition)

	employees := section("/employees", auth.SectionEmployees)
	employees.Get("", cfg.Employees.List)
	employees.Get("/export", cfg.Employees.Export)
	employees.Post("", cfg.Employees.Create)
	employees.Get("/:id", cfg.Employees.Get)
	employees.Put("/:id", cfg.Employees.Update)
	employees.Delete("/:id", cfg.Employees.Delete)

	departments := section("/departments", auth.SectionDepartments)
	departments.Get("", cfg.Departments.List)
	departments.Post("", cfg.Departments.Create)
	departments.Get("/:id", cfg.Departments.Get)
	departments.Put("/:id", cfg.Departments.Update)
	departments.Delete("/:id", cfg.Departments.Delete)

	tasks := section("/tasks", auth.SectionTasks)
	tasks.Get("", cfg.Tasks.List)
	tasks.Get("/board", cfg.Tasks.Board)
	tasks.Get("/calendar.ics", cfg.Tasks.Calendar)
	tasks.Post("", cfg.Tasks.Create)
	tasks.Get("/:id", cfg.Tasks.Get)
	tasks.Put("/:id", cfg.Tasks.Update)
	tasks.Patch("/:id", cfg.Tasks.UpdateStatus)
	tasks.Delete("/:id", cfg.Tasks.Delete)
	tasks.Post("/:id/subtasks", cfg.Tasks.AddSubtask)
	tasks.Patch("/:id/subtasks/:subtaskId", cfg.Tasks.UpdateSubtaskStatus)

	recruitment := section("/recruitment", auth.SectionRecruitment)
	recruitment.Get("/jobs", cfg.Recruitment.ListJobs)
	recruitment.Post("/jobs", cfg.Recruitment.CreateJob)
	recruitment.Get("/jobs/:id", cfg.Recruitment.GetJob)
	recruitment.Put("/jobs/:id", cfg.Recruitment.UpdateJob)
	recruitment.Delete("/jobs/:id", cfg.Recruitment.DeleteJob)
	recruitment.Patch("/jobs/:id/status", cfg.Recruitment.UpdateJobStatus)
	recruitment.Get("/jobs/:id/applications", cfg.Recruitment.ListJobApplications)
	recruitment.Post("/jobs/:id/applications", cfg.Recruitment.Apply)
	recruitment.Get("/applications", cfg.Recruitment.ListApplications)
	recruitment.Patch("/applications/:id/status", cfg.Recruitment.UpdateApplicationStatus)

	payments := section("/payments", auth.SectionPayments)
	payments.Get("", cfg.Payments.List)
	payments.Post("", cfg.Payments.Create)
	payments.Get("/:id", cfg.Payments.Get)
	payments.Get("/:id/receipt", cfg.Payments.Receipt)

	packages := section("/packages", auth.SectionPackages)
	packages.Get("", cfg.Payments.Packages)
	packages.Post("/:id/subscribe", cfg.Payments.Subscribe)

	profile := section("/profile", auth.SectionProfile)
	profile.Get("", cfg.Profile.Get)
	profile.Put("", cfg.Profile.Update)
	profile.Post("/skills", cfg.Profile.AddSkill)
	profile.Delete("/skills/:id", cfg.Profile.DeleteSkill)
	profile.Post("/education", cfg.Profile.AddEducation)
	profile.Delete("/education/:id", cfg.Profile.DeleteEducation)
	profile.Post("/experience", cfg.Profile.AddExperience)
	profile.Delete("/experience/:id", cfg.Profile.DeleteExperience)
	profile.Post("/certifications", cfg.Profile.AddCertification)
	profile.Delete("/certifications/:id", cfg.Profile.DeleteCertification)

	analytics := section("/analytics", auth.SectionAnalytics)
	analytics.Get("/overview", cfg.Analytics.Overview)
}
