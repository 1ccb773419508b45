package dto

import (
	"errors"
	"testing"

	"github.com/emsdev/ems-service/internal/domain"
	apperrors "github.com/emsdev/ems-service/pkg/util/errorutil"
)

const engineeringID = "4b0f5a52-7c1e-4c55-9a53-2f9f6b1d7e10"

func detailsOf(t *testing.T, err error) map[string]any {
	t.Helper()
	var de *apperrors.DomainError
	if !errors.As(err, &de) {
		t.Fatalf("expected DomainError, got %v", err)
	}
	if de.Code != "VALIDATION_FAILED" {
		t.Fatalf("unexpected code %s", de.Code)
	}
	return de.Details
}

func TestValidate_CompanyRequest(t *testing.T) {
	t.Parallel()

	ok := CompanyRequest{Name: "Acme", Email: "hi@acme.test", Phone: "12345", Address: "1 Main"}
	if err := Validate(ok); err != nil {
		t.Fatalf("valid request rejected: %v", err)
	}

	bad := CompanyRequest{Name: "A", Website: "not a url", Email: "nope", Phone: "1", Address: "x"}
	details := detailsOf(t, Validate(bad))
	for _, field := range []string{"name", "website", "email", "phone", "address"} {
		if _, ok := details[field]; !ok {
			t.Fatalf("expected a message for %s, got %v", field, details)
		}
	}
	if details["name"] != "must be at least 2 characters" {
		t.Fatalf("unexpected name message %v", details["name"])
	}
}

func TestValidate_PaymentMethod(t *testing.T) {
	t.Parallel()

	for _, method := range []string{"Bank Transfer", "Easypaisa", "JazzCash"} {
		req := PaymentRequest{Method: domain.PaymentMethod(method), AccountNumber: "0300"}
		if err := Validate(req); err != nil {
			t.Fatalf("method %q rejected: %v", method, err)
		}
	}
	details := detailsOf(t, Validate(PaymentRequest{Method: "Cash", AccountNumber: "0300"}))
	if details["method"] != "must be one of Bank Transfer Easypaisa JazzCash" {
		t.Fatalf("unexpected message %v", details["method"])
	}
}

func TestValidate_ApplicationRequest(t *testing.T) {
	t.Parallel()

	details := detailsOf(t, Validate(ApplicationRequest{FullName: "Al", Email: "al@example.com", Phone: "123"}))
	for _, field := range []string{"full_name", "phone", "resume", "experience"} {
		if _, ok := details[field]; !ok {
			t.Fatalf("expected a message for %s, got %v", field, details)
		}
	}
	if _, ok := details["email"]; ok {
		t.Fatalf("valid email flagged")
	}
}

func TestValidate_Dates(t *testing.T) {
	t.Parallel()

	details := detailsOf(t, Validate(TaskRequest{Title: "Write docs", DepartmentID: engineeringID, DueDate: "03/11/2026"}))
	if details["due_date"] != "must be a date formatted YYYY-MM-DD" {
		t.Fatalf("unexpected message %v", details["due_date"])
	}

	got, err := ParseDate("due_date", "2026-03-11")
	if err != nil || got == nil || got.Day() != 11 {
		t.Fatalf("ParseDate: %v %v", got, err)
	}
	if got, err := ParseDate("due_date", " "); err != nil || got != nil {
		t.Fatalf("blank dates are nil: %v %v", got, err)
	}
	if _, err := ParseDate("due_date", "tomorrow"); err == nil {
		t.Fatalf("expected parse error")
	}
	if s := FormatDate(got); s == nil || *s != "2026-03-11" {
		t.Fatalf("unexpected formatted date %v", s)
	}
	if FormatDate(nil) != nil {
		t.Fatalf("nil date should format to nil")
	}
}

func TestValidate_IDs(t *testing.T) {
	t.Parallel()

	empty, bogus, valid := "", "sales", engineeringID
	if err := Validate(TaskRequest{Title: "Write docs", DepartmentID: valid, AssigneeID: &empty}); err != nil {
		t.Fatalf("empty assignee should mean unassigned: %v", err)
	}
	if err := Validate(SubtaskRequest{Title: "Outline", AssigneeID: &valid}); err != nil {
		t.Fatalf("valid assignee rejected: %v", err)
	}

	details := detailsOf(t, Validate(TaskRequest{Title: "Write docs", DepartmentID: "sales", AssigneeID: &bogus}))
	for _, field := range []string{"department_id", "assignee_id"} {
		if details[field] != "must be a valid id" {
			t.Fatalf("unexpected %s message %v", field, details[field])
		}
	}
	if _, ok := detailsOf(t, Validate(SubtaskRequest{Title: "Outline", AssigneeID: &bogus}))["assignee_id"]; !ok {
		t.Fatalf("expected subtask assignee to be checked")
	}
}
