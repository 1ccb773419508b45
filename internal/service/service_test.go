package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/emsdev/ems-service/internal/auth"
	"github.com/emsdev/ems-service/internal/cache"
	"github.com/emsdev/ems-service/internal/config"
	"github.com/emsdev/ems-service/internal/domain"
	"github.com/emsdev/ems-service/internal/events"
	"github.com/emsdev/ems-service/internal/listing"
	"github.com/emsdev/ems-service/internal/repository"
	"github.com/emsdev/ems-service/internal/service/servicetest"
	apperrors "github.com/emsdev/ems-service/pkg/util/errorutil"
)

type recorder struct {
	mu     sync.Mutex
	events []events.Event
}

func (r *recorder) handle(_ context.Context, e events.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return nil
}

func (r *recorder) types() []events.EventType {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]events.EventType, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Type)
	}
	return out
}

type fixture struct {
	store    *servicetest.Store
	repos    servicetest.Repositories
	col      *Collections
	recorded *recorder
	actor    Actor
}

func newFixture(t *testing.T, c cache.CollectionCache) *fixture {
	t.Helper()
	store := servicetest.NewStore()
	dispatcher := events.NewInMemoryDispatcher()
	rec := &recorder{}
	for _, et := range []events.EventType{
		events.EventEmployeeCreated, events.EventEmployeeDeleted, events.EventTaskAssigned,
		events.EventTaskStatusChanged, events.EventApplicationReceived, events.EventApplicationStatusChanged,
		events.EventPaymentCreated, events.EventPackageSubscribed,
	} {
		dispatcher.Subscribe(et, rec.handle)
	}
	companyID := store.SeedCompany("Acme")
	return &fixture{
		store:    store,
		repos:    store.Repositories(),
		col:      NewCollections(config.ListingConfig{DefaultPageSize: 5, MaxPageSize: 100}, c, dispatcher, zap.NewNop()),
		recorded: rec,
		actor:    Actor{UserID: "u-1", CompanyID: companyID, Role: domain.RoleHR},
	}
}

func (f *fixture) employees() *EmployeeService {
	return NewEmployeeService(EmployeeDependencies{
		EmployeeRepo:   f.repos.Employees,
		DepartmentRepo: f.repos.Departments,
		CompanyRepo:    f.repos.Companies,
	}, f.col)
}

func (f *fixture) departments() *DepartmentService {
	return NewDepartmentService(f.repos.Departments, f.col)
}

func (f *fixture) tasks() *TaskService {
	return NewTaskService(TaskDependencies{
		TaskRepo:       f.repos.Tasks,
		DepartmentRepo: f.repos.Departments,
		EmployeeRepo:   f.repos.Employees,
	}, f.col)
}

func (f *fixture) recruitment() *RecruitmentService {
	return NewRecruitmentService(RecruitmentDependencies{
		JobRepo:         f.repos.Jobs,
		ApplicationRepo: f.repos.Applications,
		DepartmentRepo:  f.repos.Departments,
	}, f.col)
}

func (f *fixture) payments() *PaymentService {
	return NewPaymentService(PaymentDependencies{
		PaymentRepo: f.repos.Payments,
		UserRepo:    f.repos.Users,
	}, f.col)
}

func (f *fixture) department(t *testing.T, name string) *domain.Department {
	t.Helper()
	d, err := f.departments().Create(context.Background(), f.actor, DepartmentInput{Name: name})
	if err != nil {
		t.Fatalf("create department %s: %v", name, err)
	}
	return d
}

func (f *fixture) employee(t *testing.T, name, dept string, status domain.EmployeeStatus) *domain.Employee {
	t.Helper()
	e, err := f.employees().Create(context.Background(), f.actor, EmployeeInput{
		Name:       name,
		Email:      strings.ToLower(strings.ReplaceAll(name, " ", ".")) + "@acme.test",
		Position:   "Engineer",
		Department: dept,
		Status:     status,
	})
	if err != nil {
		t.Fatalf("create employee %s: %v", name, err)
	}
	return e
}

func assertCode(t *testing.T, err error, code string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s error, got nil", code)
	}
	var de *apperrors.DomainError
	if !errors.As(err, &de) {
		t.Fatalf("expected DomainError %s, got %T: %v", code, err, err)
	}
	if de.Code != code {
		t.Fatalf("expected code %s, got %s (%v)", code, de.Code, err)
	}
}

func TestEmployeeService_ListPipeline(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	f.department(t, "Engineering")
	f.department(t, "Sales")

	names := []string{"Ada Lovelace", "Alan Turing", "Grace Hopper", "Linus Torvalds", "Ken Thompson", "Dennis Ritchie", "Barbara Liskov"}
	for i, n := range names {
		status := domain.EmployeeActive
		if i%3 == 0 {
			status = domain.EmployeeOnLeave
		}
		dept := "Engineering"
		if i == 6 {
			dept = "Sales"
		}
		f.employee(t, n, dept, status)
	}

	svc := f.employees()
	page, err := svc.List(ctx, f.actor, listing.Query{Page: 2})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if page.Total != 7 || page.TotalPages != 2 || len(page.Items) != 2 || page.From != 6 || page.To != 7 {
		t.Fatalf("unexpected page: %+v", page)
	}

	page, err = svc.List(ctx, f.actor, listing.Query{Search: "TURING"})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if page.Total != 1 || page.Items[0].Name != "Alan Turing" {
		t.Fatalf("search should match case-insensitively: %+v", page)
	}

	page, err = svc.List(ctx, f.actor, listing.Query{Filters: map[string]string{"status": "on-leave", "department": "Engineering"}})
	if err != nil {
		t.Fatalf("filter: %v", err)
	}
	if page.Total != 2 {
		t.Fatalf("expected 2 engineering employees on leave, got %d", page.Total)
	}

	page, err = svc.List(ctx, f.actor, listing.Query{Filters: map[string]string{"status": listing.FilterAll, "department": "Sales"}})
	if err != nil {
		t.Fatalf("filter all: %v", err)
	}
	if page.Total != 1 || page.Items[0].Name != "Barbara Liskov" {
		t.Fatalf("unexpected sales page: %+v", page)
	}

	filtered, err := svc.Filtered(ctx, f.actor, listing.Query{Filters: map[string]string{"department": "Engineering"}})
	if err != nil {
		t.Fatalf("filtered: %v", err)
	}
	if len(filtered) != 6 {
		t.Fatalf("export set should ignore pagination, got %d", len(filtered))
	}
}

func TestEmployeeService_DeleteLastItemClampsPage(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	f.department(t, "Engineering")
	var last *domain.Employee
	for i := 0; i < 6; i++ {
		last = f.employee(t, "Person "+string(rune('A'+i)), "Engineering", domain.EmployeeActive)
	}

	svc := f.employees()
	page, err := svc.List(ctx, f.actor, listing.Query{Page: 2})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(page.Items) != 1 || page.Items[0].ID != last.ID {
		t.Fatalf("expected the sixth employee alone on page 2: %+v", page)
	}

	if err := svc.Delete(ctx, f.actor, last.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	page, err = svc.List(ctx, f.actor, listing.Query{Page: 2})
	if err != nil {
		t.Fatalf("list after delete: %v", err)
	}
	if page.Page != 1 || page.Total != 5 || page.TotalPages != 1 || len(page.Items) != 5 {
		t.Fatalf("expected clamp to page 1 of 1: %+v", page)
	}

	assertCode(t, svc.Delete(ctx, f.actor, last.ID), "NOT_FOUND")
}

func TestEmployeeService_CreateValidation(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	f.department(t, "Engineering")
	svc := f.employees()

	_, err := svc.Create(ctx, f.actor, EmployeeInput{Name: "Ghost", Email: "ghost@acme.test", Department: "Nowhere"})
	assertCode(t, err, "VALIDATION_FAILED")

	f.employee(t, "Ada Lovelace", "Engineering", domain.EmployeeActive)
	_, err = svc.Create(ctx, f.actor, EmployeeInput{Name: "Ada Again", Email: "ada.lovelace@acme.test", Department: "Engineering"})
	assertCode(t, err, "CONFLICT")

	types := f.recorded.types()
	if len(types) != 1 || types[0] != events.EventEmployeeCreated {
		t.Fatalf("expected a single employee_created event, got %v", types)
	}
}

func TestEmployeeService_SeatLimit(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	f.department(t, "Engineering")
	f.store.SetCompanyPackage(f.actor.CompanyID, "basic")
	for i := 0; i < 5; i++ {
		f.employee(t, "Seat "+string(rune('A'+i)), "Engineering", domain.EmployeeActive)
	}
	_, err := f.employees().Create(ctx, f.actor, EmployeeInput{Name: "Seat F", Email: "f@acme.test", Department: "Engineering"})
	assertCode(t, err, "FORBIDDEN")
}

func TestEmployeeService_TenantIsolation(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	f.department(t, "Engineering")
	e := f.employee(t, "Ada Lovelace", "Engineering", domain.EmployeeActive)

	other := Actor{UserID: "u-2", CompanyID: f.store.SeedCompany("Globex"), Role: domain.RoleCEO}
	page, err := f.employees().List(ctx, other, listing.Query{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if page.Total != 0 || page.Page != 1 || page.TotalPages != 0 {
		t.Fatalf("other tenant should see page 1 of 0: %+v", page)
	}
	_, err = f.employees().Get(ctx, other, e.ID)
	assertCode(t, err, "NOT_FOUND")
}

func TestDepartmentService(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	svc := f.departments()
	eng := f.department(t, "Engineering")
	f.department(t, "Sales")

	_, err := svc.Create(ctx, f.actor, DepartmentInput{Name: "Engineering"})
	assertCode(t, err, "CONFLICT")

	f.employee(t, "Ada Lovelace", "Engineering", domain.EmployeeActive)
	got, err := svc.Get(ctx, f.actor, eng.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.EmployeeCount != 1 {
		t.Fatalf("expected derived employee count 1, got %d", got.EmployeeCount)
	}

	if _, err := f.tasks().Create(ctx, f.actor, TaskInput{Title: "Ship it", DepartmentID: eng.ID}); err != nil {
		t.Fatalf("create task: %v", err)
	}
	assertCode(t, svc.Delete(ctx, f.actor, eng.ID), "CONFLICT")

	page, err := svc.List(ctx, f.actor, listing.Query{Search: "sal"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if page.Total != 1 {
		t.Fatalf("expected one match for 'sal', got %d", page.Total)
	}
	if err := svc.Delete(ctx, f.actor, page.Items[0].ID); err != nil {
		t.Fatalf("delete unreferenced department: %v", err)
	}
}

func TestDepartmentService_RenameCarriesReferences(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	f := newFixture(t, cache.NewCollectionCache(rdb, time.Minute))
	ctx := context.Background()
	svc := f.departments()
	eng := f.department(t, "Engineering")
	f.employee(t, "Ada Lovelace", "Engineering", domain.EmployeeActive)
	companies := NewCompanyService(CompanyDependencies{CompanyRepo: f.repos.Companies, PositionRepo: f.repos.Positions}, f.col)
	if _, err := companies.CreatePosition(ctx, f.actor, PositionInput{Title: "Staff Engineer", Department: "Engineering", Salary: decimal.NewFromInt(100)}); err != nil {
		t.Fatalf("create position: %v", err)
	}

	// Warm the cached collections so the rename has to invalidate them.
	if _, err := f.employees().List(ctx, f.actor, listing.Query{}); err != nil {
		t.Fatalf("list employees: %v", err)
	}
	if _, err := companies.ListPositions(ctx, f.actor, listing.Query{}); err != nil {
		t.Fatalf("list positions: %v", err)
	}

	renamed, err := svc.Update(ctx, f.actor, eng.ID, DepartmentInput{Name: "R&D"})
	if err != nil {
		t.Fatalf("rename: %v", err)
	}
	if renamed.Name != "R&D" || renamed.EmployeeCount != 1 {
		t.Fatalf("expected R&D with one employee, got %+v", renamed)
	}

	byDept := listing.Query{Filters: map[string]string{"department": "R&D"}}
	employees, err := f.employees().List(ctx, f.actor, byDept)
	if err != nil {
		t.Fatalf("list employees: %v", err)
	}
	if employees.Total != 1 || employees.Items[0].Department != "R&D" {
		t.Fatalf("employees should follow the rename, got %+v", employees)
	}
	positions, err := companies.ListPositions(ctx, f.actor, byDept)
	if err != nil {
		t.Fatalf("list positions: %v", err)
	}
	if positions.Total != 1 {
		t.Fatalf("positions should follow the rename, got %+v", positions)
	}
}

func TestTaskService_BoardAndEvents(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	eng := f.department(t, "Engineering")
	ops := f.department(t, "Operations")
	ada := f.employee(t, "Ada Lovelace", "Engineering", domain.EmployeeActive)
	svc := f.tasks()

	assignee := ada.ID
	first, err := svc.Create(ctx, f.actor, TaskInput{Title: "Design schema", DepartmentID: eng.ID, AssigneeID: &assignee, Priority: domain.PriorityHigh})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if first.Status != domain.TaskTodo || first.AssigneeName != "Ada Lovelace" || first.DepartmentName != "Engineering" {
		t.Fatalf("unexpected task: %+v", first)
	}
	if _, err := svc.Create(ctx, f.actor, TaskInput{Title: "Rack servers", DepartmentID: ops.ID, Status: domain.TaskReview}); err != nil {
		t.Fatalf("create: %v", err)
	}

	missing := "missing"
	_, err = svc.Create(ctx, f.actor, TaskInput{Title: "Orphan", DepartmentID: eng.ID, AssigneeID: &missing})
	assertCode(t, err, "VALIDATION_FAILED")

	moved, err := svc.UpdateStatus(ctx, f.actor, first.ID, domain.TaskInProgress)
	if err != nil {
		t.Fatalf("update status: %v", err)
	}
	if moved.Status != domain.TaskInProgress {
		t.Fatalf("status not applied: %s", moved.Status)
	}

	board, err := svc.Board(ctx, f.actor, listing.Query{Filters: map[string]string{"status": "todo", "department": eng.ID}})
	if err != nil {
		t.Fatalf("board: %v", err)
	}
	if len(board) != len(domain.TaskStatuses) {
		t.Fatalf("expected %d columns, got %d", len(domain.TaskStatuses), len(board))
	}
	if len(board[1].Tasks) != 1 || board[1].Tasks[0].ID != first.ID {
		t.Fatalf("board should ignore the status filter and place the task in progress: %+v", board)
	}
	if len(board[2].Tasks) != 0 {
		t.Fatalf("department filter should hide operations tasks")
	}

	sub, err := svc.AddSubtask(ctx, f.actor, first.ID, SubtaskInput{Title: "Draft ERD"})
	if err != nil {
		t.Fatalf("add subtask: %v", err)
	}
	updated, err := svc.UpdateSubtaskStatus(ctx, f.actor, first.ID, sub.ID, domain.TaskCompleted)
	if err != nil {
		t.Fatalf("subtask status: %v", err)
	}
	if len(updated.Subtasks) != 1 || updated.Subtasks[0].Status != domain.TaskCompleted {
		t.Fatalf("unexpected subtasks: %+v", updated.Subtasks)
	}

	want := []events.EventType{events.EventEmployeeCreated, events.EventTaskAssigned, events.EventTaskStatusChanged}
	got := f.recorded.types()
	if len(got) != len(want) {
		t.Fatalf("events = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("events = %v, want %v", got, want)
		}
	}
}

func TestRecruitmentService_Apply(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	eng := f.department(t, "Engineering")
	svc := f.recruitment()
	svc.now = func() time.Time { return time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC) }

	_, err := svc.CreateJob(ctx, f.actor, JobInput{
		Title: "Backend Engineer", DepartmentID: eng.ID, Location: "Remote",
		Salary: domain.SalaryRange{Min: decimal.NewFromInt(9000), Max: decimal.NewFromInt(5000)},
	})
	assertCode(t, err, "VALIDATION_FAILED")

	deadline := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	job, err := svc.CreateJob(ctx, f.actor, JobInput{
		Title: "Backend Engineer", DepartmentID: eng.ID, Location: "Remote", Type: domain.JobFullTime,
		Salary:              domain.SalaryRange{Min: decimal.NewFromInt(5000), Max: decimal.NewFromInt(9000), Show: true},
		Description:         "Build and run services",
		Requirements:        "Go and Postgres",
		ApplicationDeadline: &deadline,
	})
	if err != nil {
		t.Fatalf("create job: %v", err)
	}
	if job.Status != domain.JobDraft || job.DepartmentName != "Engineering" {
		t.Fatalf("unexpected job: %+v", job)
	}

	in := ApplicationInput{FullName: "Grace Hopper", Email: "grace@example.com", Phone: "0300 1234567", Resume: "cv.pdf", Experience: "5 years"}
	_, err = svc.Apply(ctx, f.actor, job.ID, in)
	assertCode(t, err, "VALIDATION_FAILED")

	if _, err := svc.UpdateJobStatus(ctx, f.actor, job.ID, domain.JobPublished); err != nil {
		t.Fatalf("publish: %v", err)
	}
	app, err := svc.Apply(ctx, f.actor, job.ID, in)
	if err != nil {
		t.Fatalf("apply on deadline day: %v", err)
	}
	if app.Status != domain.ApplicationNew || app.JobTitle != "Backend Engineer" {
		t.Fatalf("unexpected application: %+v", app)
	}

	svc.now = func() time.Time { return time.Date(2026, 3, 11, 0, 0, 1, 0, time.UTC) }
	_, err = svc.Apply(ctx, f.actor, job.ID, in)
	assertCode(t, err, "VALIDATION_FAILED")

	jobs, err := svc.ListJobs(ctx, f.actor, listing.Query{Filters: map[string]string{"status": "published"}})
	if err != nil {
		t.Fatalf("list jobs: %v", err)
	}
	if jobs.Total != 1 || jobs.Items[0].Applications != 1 {
		t.Fatalf("expected one published job with one application: %+v", jobs)
	}

	if _, err := svc.UpdateApplicationStatus(ctx, f.actor, app.ID, domain.ApplicationShortlisted); err != nil {
		t.Fatalf("update application: %v", err)
	}
	apps, err := svc.ListJobApplications(ctx, f.actor, job.ID, listing.Query{Filters: map[string]string{"status": "shortlisted"}})
	if err != nil {
		t.Fatalf("list applications: %v", err)
	}
	if apps.Total != 1 {
		t.Fatalf("expected one shortlisted application, got %d", apps.Total)
	}

	if err := svc.DeleteJob(ctx, f.actor, job.ID); err != nil {
		t.Fatalf("delete job: %v", err)
	}
	all, err := svc.ListApplications(ctx, f.actor, listing.Query{})
	if err != nil {
		t.Fatalf("list all applications: %v", err)
	}
	if all.Total != 0 {
		t.Fatalf("applications should go with their posting, got %d", all.Total)
	}
}

func TestPaymentService(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	authSvc := newAuthService(f)
	session, err := authSvc.Register(ctx, RegisterInput{Name: "Solo", Email: "solo@example.com", Password: "secret123"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	actor := Actor{UserID: session.User.ID, CompanyID: session.User.CompanyID, Role: session.User.Role}
	if actor.Role != domain.RoleUser {
		t.Fatalf("expected plain user, got %s", actor.Role)
	}

	svc := f.payments()
	_, err = svc.Create(ctx, actor, PaymentInput{Amount: decimal.Zero, Method: domain.MethodJazzCash, AccountNumber: "0300"})
	assertCode(t, err, "VALIDATION_FAILED")

	_, err = svc.Subscribe(ctx, actor, "platinum", SubscriptionInput{Method: domain.MethodEasypaisa, AccountNumber: "0311"})
	assertCode(t, err, "NOT_FOUND")

	sub, err := svc.Subscribe(ctx, actor, "professional", SubscriptionInput{Method: domain.MethodEasypaisa, AccountNumber: "0311"})
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	if !sub.Payment.Amount.Equal(decimal.NewFromInt(199)) || sub.Payment.Status != domain.PaymentPending {
		t.Fatalf("unexpected payment: %+v", sub.Payment)
	}
	if !strings.HasPrefix(sub.Payment.Key, "PAY-") || len(sub.Payment.Key) != 12 {
		t.Fatalf("unexpected payment key %q", sub.Payment.Key)
	}
	if sub.User.Role != domain.RoleCEO {
		t.Fatalf("subscribing user should become CEO, got %s", sub.User.Role)
	}
	company, err := f.repos.Companies.GetByID(ctx, actor.CompanyID)
	if err != nil || company.PackageID == nil || *company.PackageID != "professional" {
		t.Fatalf("package not stamped on company: %+v, %v", company, err)
	}

	byKey, err := svc.Get(ctx, actor, sub.Payment.Key)
	if err != nil || byKey.ID != sub.Payment.ID {
		t.Fatalf("lookup by key failed: %v", err)
	}

	page, err := svc.List(ctx, actor, listing.Query{Search: strings.ToLower(sub.Payment.Key[4:])})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if page.Total != 1 {
		t.Fatalf("search by key fragment should match, got %d", page.Total)
	}

	got := f.recorded.types()
	if len(got) != 2 || got[0] != events.EventPaymentCreated || got[1] != events.EventPackageSubscribed {
		t.Fatalf("unexpected events %v", got)
	}
}

func TestPaymentService_SubscribeIsAllOrNothing(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	session, err := newAuthService(f).Register(ctx, RegisterInput{Name: "Solo", Email: "solo@example.com", Password: "secret123"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	// The company row is gone by the time the package is stamped.
	actor := Actor{UserID: session.User.ID, CompanyID: uuid.NewString(), Role: session.User.Role}

	svc := f.payments()
	_, err = svc.Subscribe(ctx, actor, "basic", SubscriptionInput{Method: domain.MethodJazzCash, AccountNumber: "0300"})
	assertCode(t, err, "NOT_FOUND")

	for _, companyID := range []string{actor.CompanyID, session.User.CompanyID} {
		payments, err := f.repos.Payments.List(ctx, companyID)
		if err != nil || len(payments) != 0 {
			t.Fatalf("no payment should survive a failed subscription, got %d (%v)", len(payments), err)
		}
	}
	user, err := f.repos.Users.GetByID(ctx, session.User.ID)
	if err != nil || user.Role != domain.RoleUser {
		t.Fatalf("role should be unchanged, got %+v (%v)", user, err)
	}
	if got := f.recorded.types(); len(got) != 0 {
		t.Fatalf("unexpected events %v", got)
	}
}

func newAuthService(f *fixture) *AuthService {
	cfg := config.Config{Auth: config.AuthConfig{JWTSecret: "test-secret", AccessTokenTTLMinutes: 15, BcryptCost: bcrypt.MinCost}}
	return NewAuthService(cfg, AuthDependencies{UserRepo: f.repos.Users, Revocations: &memRevocations{revoked: map[string]time.Duration{}}}, zap.NewNop())
}

type memRevocations struct {
	revoked map[string]time.Duration
}

func (m *memRevocations) Revoke(_ context.Context, jti string, ttl time.Duration) error {
	m.revoked[jti] = ttl
	return nil
}

func (m *memRevocations) IsRevoked(_ context.Context, jti string) (bool, error) {
	_, ok := m.revoked[jti]
	return ok, nil
}

func TestAuthService(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	revoked := &memRevocations{revoked: map[string]time.Duration{}}
	cfg := config.Config{Auth: config.AuthConfig{JWTSecret: "test-secret", AccessTokenTTLMinutes: 15, BcryptCost: bcrypt.MinCost}}
	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes)
	svc := NewAuthService(cfg, AuthDependencies{UserRepo: f.repos.Users, TokenManager: tokens, Revocations: revoked}, zap.NewNop())

	session, err := svc.Register(ctx, RegisterInput{Name: "Ceo Person", Email: "CEO@Acme.test", Password: "secret123", Company: "Acme Ltd"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if session.User.Role != domain.RoleCEO || session.User.Email != "ceo@acme.test" || session.User.PasswordHash == "secret123" {
		t.Fatalf("unexpected user: %+v", session.User)
	}

	_, err = svc.Register(ctx, RegisterInput{Name: "Dup", Email: "ceo@acme.test", Password: "secret123"})
	assertCode(t, err, "CONFLICT")

	_, err = svc.Login(ctx, "ceo@acme.test", "wrong-password")
	assertCode(t, err, "UNAUTHORIZED")
	_, err = svc.Login(ctx, "nobody@acme.test", "secret123")
	assertCode(t, err, "UNAUTHORIZED")

	login, err := svc.Login(ctx, "ceo@acme.test", "secret123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	claims, err := tokens.ParseToken(login.Token.Token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.CompanyID != session.User.CompanyID || claims.Role != domain.RoleCEO {
		t.Fatalf("unexpected claims: %+v", claims)
	}

	me, err := svc.Me(ctx, claims.UserID)
	if err != nil || me.ID != session.User.ID {
		t.Fatalf("me: %+v, %v", me, err)
	}

	if err := svc.Logout(ctx, claims); err != nil {
		t.Fatalf("logout: %v", err)
	}
	ttl, ok := revoked.revoked[claims.ID]
	if !ok || ttl <= 0 || ttl > 15*time.Minute {
		t.Fatalf("token not revoked with its remaining lifetime: %v %v", ok, ttl)
	}

	if nav := svc.Navigation(domain.RoleEmployee); len(nav) == 0 {
		t.Fatalf("employees should still see a navigation")
	}
}

func TestProfileService(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	session, err := newAuthService(f).Register(ctx, RegisterInput{Name: "Ada", Email: "ada@example.com", Password: "secret123", Company: "Analytical"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	actor := Actor{UserID: session.User.ID, CompanyID: session.User.CompanyID, Role: session.User.Role}
	svc := NewProfileService(ProfileDependencies{UserRepo: f.repos.Users, ProfileRepo: f.repos.Profiles})

	user, err := svc.Update(ctx, actor, ProfileInput{Name: " Ada Lovelace ", Email: "Ada@Example.com", Bio: "First programmer"})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if user.Name != "Ada Lovelace" || user.Email != "ada@example.com" {
		t.Fatalf("unexpected user: %+v", user)
	}

	skill, err := svc.AddSkill(ctx, actor, "Mathematics", domain.SkillExpert)
	if err != nil {
		t.Fatalf("add skill: %v", err)
	}

	start := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	before := start.AddDate(-1, 0, 0)
	_, err = svc.AddEducation(ctx, actor, domain.Education{Institution: "Home", Degree: "Tutoring", StartDate: start})
	assertCode(t, err, "VALIDATION_FAILED")
	_, err = svc.AddExperience(ctx, actor, domain.Experience{Company: "Engine", Position: "Analyst", StartDate: start, EndDate: &before})
	assertCode(t, err, "VALIDATION_FAILED")
	edu, err := svc.AddEducation(ctx, actor, domain.Education{Institution: "Home", Degree: "Tutoring", StartDate: start, EndDate: &before, Current: true})
	if err != nil {
		t.Fatalf("add current education: %v", err)
	}
	if edu.EndDate != nil {
		t.Fatalf("current entries drop their end date")
	}
	_, err = svc.AddCertification(ctx, actor, domain.Certification{Name: "Notes", Issuer: "Society", IssueDate: start, ExpiryDate: &before})
	assertCode(t, err, "VALIDATION_FAILED")

	profile, err := svc.Get(ctx, actor)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(profile.Skills) != 1 || len(profile.Education) != 1 || len(profile.Experience) != 0 || len(profile.Certifications) != 0 {
		t.Fatalf("unexpected profile: %+v", profile)
	}

	if err := svc.DeleteSkill(ctx, actor, skill.ID); err != nil {
		t.Fatalf("delete skill: %v", err)
	}
	assertCode(t, svc.DeleteSkill(ctx, actor, skill.ID), "NOT_FOUND")
}

func TestCompanyService_Positions(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	svc := NewCompanyService(CompanyDependencies{CompanyRepo: f.repos.Companies, PositionRepo: f.repos.Positions}, f.col)

	company, err := svc.Update(ctx, f.actor, CompanyInput{Name: "Acme Corp", Email: "hello@acme.test", Phone: "12345", Address: "1 Main St"})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if company.Name != "Acme Corp" {
		t.Fatalf("name not updated: %+v", company)
	}

	_, err = svc.CreatePosition(ctx, f.actor, PositionInput{Title: "Intern", Department: "Engineering", Salary: decimal.Zero})
	assertCode(t, err, "VALIDATION_FAILED")

	pos, err := svc.CreatePosition(ctx, f.actor, PositionInput{Title: "Staff Engineer", Department: "Engineering", Salary: decimal.RequireFromString("12500.50")})
	if err != nil {
		t.Fatalf("create position: %v", err)
	}
	page, err := svc.ListPositions(ctx, f.actor, listing.Query{Filters: map[string]string{"department": "Engineering"}})
	if err != nil || page.Total != 1 {
		t.Fatalf("list positions: %+v, %v", page, err)
	}
	if err := svc.DeletePosition(ctx, f.actor, pos.ID); err != nil {
		t.Fatalf("delete position: %v", err)
	}
}

func TestAnalyticsService_Overview(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	eng := f.department(t, "Engineering")
	f.department(t, "Sales")
	f.department(t, "Legal")
	f.employee(t, "Ada Lovelace", "Engineering", domain.EmployeeActive)
	f.employee(t, "Alan Turing", "Engineering", domain.EmployeeOnLeave)
	f.employee(t, "Mary Sales", "Sales", domain.EmployeeActive)

	tasks := f.tasks()
	past := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for _, in := range []TaskInput{
		{Title: "Overdue one", DepartmentID: eng.ID, DueDate: &past},
		{Title: "Running", DepartmentID: eng.ID, Status: domain.TaskInProgress},
		{Title: "Finished late", DepartmentID: eng.ID, Status: domain.TaskCompleted, DueDate: &past},
	} {
		if _, err := tasks.Create(ctx, f.actor, in); err != nil {
			t.Fatalf("create task: %v", err)
		}
	}

	rec := f.recruitment()
	if _, err := rec.CreateJob(ctx, f.actor, JobInput{Title: "Engineer", DepartmentID: eng.ID, Location: "Lahore", Status: domain.JobPublished}); err != nil {
		t.Fatalf("create job: %v", err)
	}
	if _, err := rec.CreateJob(ctx, f.actor, JobInput{Title: "Draft role", DepartmentID: eng.ID, Location: "Lahore"}); err != nil {
		t.Fatalf("create draft: %v", err)
	}

	payments := f.payments()
	paid, err := payments.Create(ctx, f.actor, PaymentInput{Amount: decimal.RequireFromString("150.25"), Method: domain.MethodBankTransfer, AccountNumber: "PK00"})
	if err != nil {
		t.Fatalf("create payment: %v", err)
	}
	if _, err := payments.Create(ctx, f.actor, PaymentInput{Amount: decimal.NewFromInt(99), Method: domain.MethodJazzCash, AccountNumber: "0300"}); err != nil {
		t.Fatalf("create payment: %v", err)
	}
	f.store.CompletePayment(paid.ID)

	svc := NewAnalyticsService(f.employees(), f.departments(), tasks, rec, payments)
	svc.now = func() time.Time { return time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC) }
	got, err := svc.Overview(ctx, f.actor, HireMonth)
	if err != nil {
		t.Fatalf("overview: %v", err)
	}
	if got.Employees != 3 || got.ActiveEmployees != 2 || got.ActiveDepartments != 2 || got.OpenPositions != 1 {
		t.Fatalf("unexpected totals: %+v", got)
	}
	if got.Tasks != (TaskTotals{Total: 3, Completed: 1, InProgress: 1, Overdue: 1}) {
		t.Fatalf("unexpected task totals: %+v", got.Tasks)
	}
	if len(got.Headcount) != 3 || got.Headcount[0].Department != "Engineering" || got.Headcount[0].Employees != 2 {
		t.Fatalf("unexpected headcount: %+v", got.Headcount)
	}
	if !got.PaymentsCompleted.Equal(decimal.RequireFromString("150.25")) {
		t.Fatalf("completed payments = %s", got.PaymentsCompleted)
	}
}

func TestAnalyticsService_NewHires(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	f.department(t, "Engineering")
	for i, joined := range []string{"2026-06-10", "2026-06-02", "2026-05-20", "2026-05-10", "2026-03-20", "2025-09-01", "2026-07-01"} {
		day, _ := time.Parse("2006-01-02", joined)
		if _, err := f.employees().Create(ctx, f.actor, EmployeeInput{
			Name:       "Joiner " + joined,
			Email:      "joiner" + string(rune('a'+i)) + "@acme.test",
			Department: "Engineering",
			JoinDate:   day,
		}); err != nil {
			t.Fatalf("create employee: %v", err)
		}
	}

	svc := NewAnalyticsService(f.employees(), f.departments(), f.tasks(), f.recruitment(), f.payments())
	svc.now = func() time.Time { return time.Date(2026, 6, 15, 9, 0, 0, 0, time.UTC) }

	for _, tc := range []struct {
		window HireWindow
		want   int
	}{
		{HireWeek, 1},
		{HireMonth, 3},
		{HireQuarter, 5},
		{HireYear, 6},
	} {
		got, err := svc.Overview(ctx, f.actor, tc.window)
		if err != nil {
			t.Fatalf("overview %s: %v", tc.window, err)
		}
		if got.Hires.Count != tc.want || got.Hires.Window != tc.window {
			t.Fatalf("%s: expected %d hires, got %+v", tc.window, tc.want, got.Hires)
		}
		if got.NewHiresThisMonth != 2 || got.NewHiresLastMonth != 2 {
			t.Fatalf("%s: month over month = %d vs %d", tc.window, got.NewHiresThisMonth, got.NewHiresLastMonth)
		}
	}

	if w, ok := ParseHireWindow(""); !ok || w != HireMonth {
		t.Fatalf("empty range should default to month, got %q", w)
	}
	if _, ok := ParseHireWindow("decade"); ok {
		t.Fatalf("decade should be rejected")
	}
}

func TestCollections_ReadThroughCache(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	f := newFixture(t, cache.NewCollectionCache(rdb, time.Minute))
	ctx := context.Background()
	f.department(t, "Engineering")
	f.employee(t, "Ada Lovelace", "Engineering", domain.EmployeeActive)
	svc := f.employees()
	before := f.store.Calls["employees"]

	for i := 0; i < 3; i++ {
		page, err := svc.List(ctx, f.actor, listing.Query{})
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if page.Total != 1 {
			t.Fatalf("expected 1 employee, got %d", page.Total)
		}
	}
	if calls := f.store.Calls["employees"] - before; calls != 1 {
		t.Fatalf("expected a single repository load, got %d", calls)
	}
	if !mr.Exists(cache.CollectionKey(f.actor.CompanyID, ResourceEmployees, 0)) {
		t.Fatalf("collection not cached")
	}

	f.employee(t, "Alan Turing", "Engineering", domain.EmployeeActive)
	page, err := svc.List(ctx, f.actor, listing.Query{})
	if err != nil {
		t.Fatalf("list after create: %v", err)
	}
	if page.Total != 2 {
		t.Fatalf("create should invalidate the cached collection, got %d", page.Total)
	}
}

func TestCollections_CacheFailureFallsBack(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	f := newFixture(t, cache.NewCollectionCache(rdb, time.Minute))
	f.department(t, "Engineering")
	mr.Close()

	page, err := f.departments().List(context.Background(), f.actor, listing.Query{})
	if err != nil {
		t.Fatalf("list should fall back to the database: %v", err)
	}
	if page.Total != 1 {
		t.Fatalf("expected 1 department, got %d", page.Total)
	}
}

type racingEmployees struct {
	repository.EmployeeRepository
	once   sync.Once
	during func()
}

// List returns the rows it read, then lets a writer commit before the caller caches them.
func (r *racingEmployees) List(ctx context.Context, companyID string) ([]domain.Employee, error) {
	items, err := r.EmployeeRepository.List(ctx, companyID)
	r.once.Do(r.during)
	return items, err
}

func TestCollections_WriteDuringLoadIsNotCached(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	f := newFixture(t, cache.NewCollectionCache(rdb, time.Minute))
	ctx := context.Background()
	f.department(t, "Engineering")

	reader := NewEmployeeService(EmployeeDependencies{
		EmployeeRepo: &racingEmployees{
			EmployeeRepository: f.repos.Employees,
			during:             func() { f.employee(t, "Ada Lovelace", "Engineering", domain.EmployeeActive) },
		},
		DepartmentRepo: f.repos.Departments,
		CompanyRepo:    f.repos.Companies,
	}, f.col)

	first, err := reader.List(ctx, f.actor, listing.Query{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if first.Total != 0 {
		t.Fatalf("first load ran before the write, got %d", first.Total)
	}

	next, err := reader.List(ctx, f.actor, listing.Query{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if next.Total != 1 {
		t.Fatalf("expected the committed employee after invalidation, got %d", next.Total)
	}
}
