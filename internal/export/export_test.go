package export

import (
	"bytes"
	"strings"
	"testing"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/emsdev/ems-service/internal/domain"
)

func TestEmployeesXLSX(t *testing.T) {
	t.Parallel()

	join := time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)
	employees := []domain.Employee{
		{Name: "Ada Lovelace", Email: "ada@acme.test", Position: "Engineer", Department: "Engineering", Status: domain.EmployeeActive, JoinDate: join},
		{Name: "Alan Turing", Email: "alan@acme.test", Position: "Researcher", Department: "Research", Status: domain.EmployeeOnLeave, JoinDate: join},
	}

	buf, name, err := EmployeesXLSX("Acme & Sons Ltd", employees, time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if name != "employees_acme-sons-ltd_20261018.xlsx" {
		t.Fatalf("unexpected filename %q", name)
	}

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()
	rows, err := f.GetRows(employeeSheet)
	if err != nil {
		t.Fatalf("rows: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d", len(rows))
	}
	if rows[0][0] != "Name" || rows[0][5] != "Join Date" {
		t.Fatalf("unexpected header %v", rows[0])
	}
	if rows[2][1] != "alan@acme.test" || rows[2][4] != "on-leave" || rows[2][5] != "2024-02-29" {
		t.Fatalf("unexpected row %v", rows[2])
	}
}

func TestEmployeesXLSX_Empty(t *testing.T) {
	t.Parallel()

	buf, name, err := EmployeesXLSX("", nil, time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if name != "employees_company_20260102.xlsx" || buf.Len() == 0 {
		t.Fatalf("unexpected output %q (%d bytes)", name, buf.Len())
	}
}

func TestPaymentReceiptPDF(t *testing.T) {
	t.Parallel()

	pkg := "professional"
	p := domain.Payment{
		Key:           "PAY-3F9A12BC",
		Amount:        decimal.NewFromInt(199),
		Method:        domain.MethodJazzCash,
		AccountNumber: "03001234567",
		Status:        domain.PaymentPending,
		Reference:     "Subscription Professional",
		Description:   "Professional package, billed monthly",
		PackageID:     &pkg,
		PaidAt:        time.Date(2026, 10, 18, 10, 30, 0, 0, time.UTC),
	}
	buf, name, err := PaymentReceiptPDF(domain.Company{Name: "Acme", Email: "billing@acme.test"}, p)
	if err != nil {
		t.Fatalf("receipt: %v", err)
	}
	if name != "receipt_PAY-3F9A12BC.pdf" {
		t.Fatalf("unexpected filename %q", name)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")) {
		t.Fatalf("output is not a PDF")
	}
}

func TestMaskAccount(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"":            "",
		"1234":        "1234",
		"03001234567": "*******4567",
	}
	for in, want := range cases {
		if got := MaskAccount(in); got != want {
			t.Fatalf("MaskAccount(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestTasksICS(t *testing.T) {
	t.Parallel()

	due := time.Date(2026, 11, 3, 15, 0, 0, 0, time.UTC)
	created := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	tasks := []domain.Task{
		{ID: "t-1", Title: "Quarterly review", DepartmentName: "Engineering", AssigneeName: "Ada Lovelace",
			Priority: domain.PriorityHigh, Status: domain.TaskInProgress, DueDate: &due, CreatedAt: created, UpdatedAt: created},
		{ID: "t-2", Title: "No due date", Status: domain.TaskTodo, CreatedAt: created, UpdatedAt: created},
		{ID: "t-3", Title: "Ship release", Status: domain.TaskCompleted, DueDate: &due, CreatedAt: created, UpdatedAt: created},
	}

	out := TasksICS("Acme", tasks, time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC))
	cal, err := ics.ParseCalendar(strings.NewReader(out))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	events := cal.Events()
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}

	first := events[0]
	if got := first.GetProperty(ics.ComponentPropertySummary).Value; got != "Quarterly review" {
		t.Fatalf("unexpected summary %q", got)
	}
	if got := first.GetProperty(ics.ComponentPropertyDtStart).Value; got != "20261103" {
		t.Fatalf("unexpected start %q", got)
	}
	if got := first.GetProperty(ics.ComponentPropertyPriority).Value; got != "3" {
		t.Fatalf("unexpected priority %q", got)
	}
	if got := events[1].GetProperty(ics.ComponentPropertySummary).Value; got != "Ship release (completed)" {
		t.Fatalf("unexpected summary %q", got)
	}
}
