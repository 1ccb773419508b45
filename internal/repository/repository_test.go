package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"

	"github.com/emsdev/ems-service/internal/domain"
	apperrors "github.com/emsdev/ems-service/pkg/util/errorutil"
)

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	t.Cleanup(mock.Close)
	return mock
}

func assertExpectations(t *testing.T, mock pgxmock.PgxPoolIface) {
	t.Helper()
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestEmployeeRepository_List(t *testing.T) {
	t.Parallel()

	mock := newMock(t)
	repo := NewEmployeeRepository(mock)

	now := time.Now().UTC()
	rows := pgxmock.NewRows([]string{"id", "company_id", "name", "email", "position", "department", "status", "join_date", "avatar", "created_at", "updated_at"}).
		AddRow("e-1", "c-1", "Ada", "ada@acme.io", "Engineer", "Engineering", domain.EmployeeActive, now, "", now, now).
		AddRow("e-2", "c-1", "Grace", "grace@acme.io", "Lead", "Engineering", domain.EmployeeOnLeave, now, "", now, now)

	mock.ExpectQuery(regexp.QuoteMeta("FROM employees WHERE company_id=$1 ORDER BY created_at, id")).
		WithArgs("c-1").
		WillReturnRows(rows)

	employees, err := repo.List(context.Background(), "c-1")
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(employees) != 2 {
		t.Fatalf("expected 2 employees, got %d", len(employees))
	}
	if employees[1].Status != domain.EmployeeOnLeave {
		t.Fatalf("unexpected status %q", employees[1].Status)
	}
	assertExpectations(t, mock)
}

func TestEmployeeRepository_DeleteMissing(t *testing.T) {
	t.Parallel()

	mock := newMock(t)
	repo := NewEmployeeRepository(mock)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM employees WHERE id=$1 AND company_id=$2")).
		WithArgs("e-404", "c-1").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	if err := repo.Delete(context.Background(), "c-1", "e-404"); !errors.Is(err, pgx.ErrNoRows) {
		t.Fatalf("expected pgx.ErrNoRows, got %v", err)
	}
	assertExpectations(t, mock)
}

func TestDepartmentRepository_ListCountsEmployees(t *testing.T) {
	t.Parallel()

	mock := newMock(t)
	repo := NewDepartmentRepository(mock)

	now := time.Now().UTC()
	rows := pgxmock.NewRows([]string{"id", "company_id", "name", "description", "manager", "employee_count", "created_at", "updated_at"}).
		AddRow("d-1", "c-1", "Engineering", "Builds things", "Ada", 4, now, now)

	mock.ExpectQuery(regexp.QuoteMeta("e.department = d.name")).
		WithArgs("c-1").
		WillReturnRows(rows)

	depts, err := repo.List(context.Background(), "c-1")
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(depts) != 1 || depts[0].EmployeeCount != 4 {
		t.Fatalf("unexpected departments %+v", depts)
	}
	assertExpectations(t, mock)
}

func TestDepartmentRepository_CreateDuplicate(t *testing.T) {
	t.Parallel()

	mock := newMock(t)
	repo := NewDepartmentRepository(mock)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO departments")).
		WithArgs("c-1", "Engineering", "", "").
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "departments_company_name_key"})

	err := repo.Create(context.Background(), &domain.Department{CompanyID: "c-1", Name: "Engineering"})
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != "23505" {
		t.Fatalf("expected unique violation, got %v", err)
	}
	assertExpectations(t, mock)
}

func TestDepartmentRepository_RenameCascades(t *testing.T) {
	t.Parallel()

	mock := newMock(t)
	repo := NewDepartmentRepository(mock)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT name FROM departments WHERE id=$1 AND company_id=$2 FOR UPDATE")).
		WithArgs("d-1", "c-1").
		WillReturnRows(pgxmock.NewRows([]string{"name"}).AddRow("Engineering"))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE departments SET name=$1")).
		WithArgs("R&D", "", "Ada", "d-1", "c-1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE employees SET department=$1")).
		WithArgs("R&D", "c-1", "Engineering").
		WillReturnResult(pgxmock.NewResult("UPDATE", 3))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE positions SET department=$1")).
		WithArgs("R&D", "c-1", "Engineering").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectCommit()

	err := repo.Update(context.Background(), &domain.Department{ID: "d-1", CompanyID: "c-1", Name: "R&D", Manager: "Ada"})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	assertExpectations(t, mock)
}

func TestDepartmentRepository_UpdateKeepsNameAndMissing(t *testing.T) {
	t.Parallel()

	mock := newMock(t)
	repo := NewDepartmentRepository(mock)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT name FROM departments")).
		WithArgs("d-1", "c-1").
		WillReturnRows(pgxmock.NewRows([]string{"name"}).AddRow("Engineering"))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE departments SET name=$1")).
		WithArgs("Engineering", "Builds things", "", "d-1", "c-1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectCommit()

	dept := &domain.Department{ID: "d-1", CompanyID: "c-1", Name: "Engineering", Description: "Builds things"}
	if err := repo.Update(context.Background(), dept); err != nil {
		t.Fatalf("Update returned error: %v", err)
	}

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT name FROM departments")).
		WithArgs("d-404", "c-1").
		WillReturnError(pgx.ErrNoRows)
	mock.ExpectRollback()

	err := repo.Update(context.Background(), &domain.Department{ID: "d-404", CompanyID: "c-1", Name: "Ops"})
	if !errors.Is(err, pgx.ErrNoRows) {
		t.Fatalf("expected pgx.ErrNoRows, got %v", err)
	}
	assertExpectations(t, mock)
}

func TestUserRepository_CreateWithCompany(t *testing.T) {
	t.Parallel()

	mock := newMock(t)
	repo := NewUserRepository(mock)
	now := time.Now().UTC()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO companies")).
		WithArgs("Acme", "", "", "", "", "").
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow("c-1", now, now))
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users")).
		WithArgs("c-1", "Ada", "ada@acme.io", "hash", domain.RoleCEO).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow("u-1", now, now))
	mock.ExpectCommit()

	company := &domain.Company{Name: "Acme"}
	user := &domain.User{Name: "Ada", Email: "ada@acme.io", PasswordHash: "hash", Role: domain.RoleCEO}
	if err := repo.CreateWithCompany(context.Background(), company, user); err != nil {
		t.Fatalf("CreateWithCompany returned error: %v", err)
	}
	if user.ID != "u-1" || user.CompanyID != "c-1" {
		t.Fatalf("unexpected user %+v", user)
	}
	assertExpectations(t, mock)
}

func TestUserRepository_CreateWithCompanyRollsBack(t *testing.T) {
	t.Parallel()

	mock := newMock(t)
	repo := NewUserRepository(mock)
	now := time.Now().UTC()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO companies")).
		WithArgs("Acme", "", "", "", "", "").
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow("c-1", now, now))
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users")).
		WithArgs("c-1", "Ada", "ada@acme.io", "hash", domain.RoleCEO).
		WillReturnError(&pgconn.PgError{Code: "23505"})
	mock.ExpectRollback()

	err := repo.CreateWithCompany(context.Background(), &domain.Company{Name: "Acme"},
		&domain.User{Name: "Ada", Email: "ada@acme.io", PasswordHash: "hash", Role: domain.RoleCEO})
	if err == nil {
		t.Fatalf("expected error")
	}
	assertExpectations(t, mock)
}

func TestPaymentRepository_ListParsesAmounts(t *testing.T) {
	t.Parallel()

	mock := newMock(t)
	repo := NewPaymentRepository(mock)

	now := time.Now().UTC()
	rows := pgxmock.NewRows([]string{"id", "company_id", "user_id", "reference_key", "amount", "method", "account_number", "status", "reference", "description", "package_id", "paid_at"}).
		AddRow("p-1", "c-1", nil, "PAY-1A2B3C4D", "199.00", domain.MethodJazzCash, "0300", domain.PaymentPending, "INV-1", "", nil, now)

	mock.ExpectQuery(regexp.QuoteMeta("FROM payments WHERE company_id=$1")).
		WithArgs("c-1").
		WillReturnRows(rows)

	payments, err := repo.List(context.Background(), "c-1")
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(payments) != 1 || !payments[0].Amount.Equal(decimal.NewFromInt(199)) {
		t.Fatalf("unexpected payments %+v", payments)
	}
	if payments[0].Method != domain.MethodJazzCash {
		t.Fatalf("unexpected method %q", payments[0].Method)
	}
	assertExpectations(t, mock)
}

func TestPaymentRepository_Create(t *testing.T) {
	t.Parallel()

	mock := newMock(t)
	repo := NewPaymentRepository(mock)
	now := time.Now().UTC()

	p := &domain.Payment{
		CompanyID:     "c-1",
		Key:           "PAY-0000AAAA",
		Amount:        decimal.RequireFromString("99.50"),
		Method:        domain.MethodEasypaisa,
		AccountNumber: "0345",
		Status:        domain.PaymentPending,
	}
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO payments")).
		WithArgs("c-1", p.UserID, "PAY-0000AAAA", "99.5", domain.MethodEasypaisa, "0345", domain.PaymentPending, "", "", p.PackageID).
		WillReturnRows(pgxmock.NewRows([]string{"id", "paid_at"}).AddRow("p-1", now))

	if err := repo.Create(context.Background(), p); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if p.ID != "p-1" {
		t.Fatalf("expected id to be populated")
	}
	assertExpectations(t, mock)
}

func subscriptionPayment() *domain.Payment {
	pkg := "basic"
	uid := "u-1"
	return &domain.Payment{
		CompanyID:     "c-1",
		UserID:        &uid,
		Key:           "PAY-0000BBBB",
		Amount:        decimal.NewFromInt(49),
		Method:        domain.MethodJazzCash,
		AccountNumber: "0300",
		Status:        domain.PaymentPending,
		Reference:     "Subscription Basic",
		PackageID:     &pkg,
	}
}

func TestPaymentRepository_Subscribe(t *testing.T) {
	t.Parallel()

	mock := newMock(t)
	repo := NewPaymentRepository(mock)
	p := subscriptionPayment()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO payments")).
		WithArgs("c-1", p.UserID, "PAY-0000BBBB", "49", domain.MethodJazzCash, "0300", domain.PaymentPending, "Subscription Basic", "", p.PackageID).
		WillReturnRows(pgxmock.NewRows([]string{"id", "paid_at"}).AddRow("p-1", time.Now().UTC()))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE companies SET package_id=$1")).
		WithArgs("basic", "c-1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE users SET role=$1")).
		WithArgs(domain.RoleCEO, "u-1", "c-1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectCommit()

	if err := repo.Subscribe(context.Background(), p, "u-1", domain.RoleCEO); err != nil {
		t.Fatalf("Subscribe returned error: %v", err)
	}
	if p.ID != "p-1" {
		t.Fatalf("expected id to be populated")
	}
	assertExpectations(t, mock)
}

func TestPaymentRepository_SubscribeRollsBack(t *testing.T) {
	t.Parallel()

	mock := newMock(t)
	repo := NewPaymentRepository(mock)
	p := subscriptionPayment()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO payments")).
		WillReturnRows(pgxmock.NewRows([]string{"id", "paid_at"}).AddRow("p-1", time.Now().UTC()))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE companies SET package_id=$1")).
		WithArgs("basic", "c-1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	mock.ExpectRollback()

	err := repo.Subscribe(context.Background(), p, "u-1", "")
	if !errors.Is(err, pgx.ErrNoRows) {
		t.Fatalf("expected ErrNoRows, got %v", err)
	}
	assertExpectations(t, mock)
}

func TestTaskRepository_ListAttachesSubtasks(t *testing.T) {
	t.Parallel()

	mock := newMock(t)
	repo := NewTaskRepository(mock)
	now := time.Now().UTC()

	taskRows := pgxmock.NewRows([]string{"id", "company_id", "title", "description", "department_id", "dept_name", "assignee_id", "assignee_name", "priority", "due_date", "status", "created_at", "updated_at"}).
		AddRow("t-1", "c-1", "Ship v2", "", "d-1", "Engineering", nil, "", domain.PriorityHigh, nil, domain.TaskTodo, now, now).
		AddRow("t-2", "c-1", "Hire SRE", "", "d-2", "Operations", nil, "", domain.PriorityLow, nil, domain.TaskReview, now, now)
	subRows := pgxmock.NewRows([]string{"id", "task_id", "title", "assignee_id", "status", "created_at"}).
		AddRow("s-1", "t-2", "Screen candidates", nil, domain.TaskTodo, now)

	mock.ExpectQuery(regexp.QuoteMeta("FROM tasks t")).WithArgs("c-1").WillReturnRows(taskRows)
	mock.ExpectQuery(regexp.QuoteMeta("FROM subtasks s JOIN tasks t")).WithArgs("c-1").WillReturnRows(subRows)

	tasks, err := repo.List(context.Background(), "c-1")
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(tasks) != 2 || len(tasks[0].Subtasks) != 0 || len(tasks[1].Subtasks) != 1 {
		t.Fatalf("unexpected subtasks attachment %+v", tasks)
	}
	assertExpectations(t, mock)
}

func TestTaskRepository_GetByMalformedID(t *testing.T) {
	t.Parallel()

	mock := newMock(t)
	repo := NewTaskRepository(mock)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE t.id=$1 AND t.company_id=$2")).
		WithArgs("abc", "c-1").
		WillReturnError(&pgconn.PgError{Code: "22P02", Message: `invalid input syntax for type uuid: "abc"`})

	_, err := repo.GetByID(context.Background(), "c-1", "abc")
	if !apperrors.IsNotFound(err) {
		t.Fatalf("expected malformed id to read as not found, got %v", err)
	}
	var de *apperrors.DomainError
	if !errors.As(apperrors.MapError(err, "task"), &de) || de.Code != "NOT_FOUND" {
		t.Fatalf("expected NOT_FOUND, got %v", de)
	}
	assertExpectations(t, mock)
}

func TestJobRepository_UpdateStatusMissing(t *testing.T) {
	t.Parallel()

	mock := newMock(t)
	repo := NewJobRepository(mock)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE job_postings SET status=$1")).
		WithArgs(domain.JobClosed, "j-1", "c-1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	if err := repo.UpdateStatus(context.Background(), "c-1", "j-1", domain.JobClosed); !errors.Is(err, pgx.ErrNoRows) {
		t.Fatalf("expected pgx.ErrNoRows, got %v", err)
	}
	assertExpectations(t, mock)
}

func TestParseDecimal(t *testing.T) {
	t.Parallel()

	if _, err := parseDecimal("abc"); err == nil {
		t.Fatalf("expected parse error")
	}
	d, err := parseDecimal("1500.25")
	if err != nil || d.String() != "1500.25" {
		t.Fatalf("unexpected decimal %v %v", d, err)
	}
}
