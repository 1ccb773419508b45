package util

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

func TestToDomainError_PassesThroughDomainErrors(t *testing.T) {
	t.Parallel()

	original := NewForbidden("nope")
	wrapped := fmt.Errorf("handler: %w", original)

	got := ToDomainError(wrapped)
	if got.Code != "FORBIDDEN" || got.HTTPStatus != http.StatusForbidden {
		t.Fatalf("expected FORBIDDEN/403, got %s/%d", got.Code, got.HTTPStatus)
	}
}

func TestToDomainError_TranslatesPgErrors(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		err    error
		code   string
		status int
	}{
		{"no rows", pgx.ErrNoRows, "NOT_FOUND", http.StatusNotFound},
		{"unique", &pgconn.PgError{Code: pgUniqueViolation, ConstraintName: "employees_company_email_key"}, "CONFLICT", http.StatusConflict},
		{"foreign key", &pgconn.PgError{Code: pgForeignKeyViolation}, "VALIDATION_FAILED", http.StatusBadRequest},
		{"check", &pgconn.PgError{Code: pgCheckViolation}, "VALIDATION_FAILED", http.StatusBadRequest},
		{"malformed uuid", &pgconn.PgError{Code: pgInvalidText}, "NOT_FOUND", http.StatusNotFound},
		{"other", errors.New("boom"), "INTERNAL_ERROR", http.StatusInternalServerError},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := ToDomainError(tc.err)
			if got.Code != tc.code || got.HTTPStatus != tc.status {
				t.Fatalf("expected %s/%d, got %s/%d", tc.code, tc.status, got.Code, got.HTTPStatus)
			}
		})
	}
}

func TestMapError_NamesResourceOnNotFound(t *testing.T) {
	t.Parallel()

	err := MapError(pgx.ErrNoRows, "employee")
	if err.Error() != "employee not found" {
		t.Fatalf("unexpected message %q", err.Error())
	}
	if !IsNotFound(err) {
		t.Fatalf("expected IsNotFound to report true")
	}
	if MapError(nil, "employee") != nil {
		t.Fatalf("expected nil for nil error")
	}
}

func TestMapError_MalformedIDIsNotFound(t *testing.T) {
	t.Parallel()

	raw := fmt.Errorf("select task: %w", &pgconn.PgError{Code: pgInvalidText, Message: `invalid input syntax for type uuid: "abc"`})
	if !IsNotFound(raw) {
		t.Fatalf("expected malformed id to count as not found")
	}
	err := MapError(raw, "task")
	if err.Error() != "task not found" {
		t.Fatalf("unexpected message %q", err.Error())
	}
}

func TestFromStatus(t *testing.T) {
	t.Parallel()

	if got := FromStatus(http.StatusNotFound, "Cannot GET /nope"); got.Code != "NOT_FOUND" {
		t.Fatalf("unexpected code %s", got.Code)
	}
	if got := FromStatus(http.StatusTeapot, "tea"); got.Code != "REQUEST_FAILED" {
		t.Fatalf("unexpected code %s", got.Code)
	}
}

func TestIsForeignKeyViolation(t *testing.T) {
	t.Parallel()

	if !IsForeignKeyViolation(fmt.Errorf("delete: %w", &pgconn.PgError{Code: "23503"})) {
		t.Fatalf("expected wrapped FK violation to be detected")
	}
	if IsForeignKeyViolation(&pgconn.PgError{Code: "23505"}) || IsForeignKeyViolation(errors.New("x")) {
		t.Fatalf("unexpected FK detection")
	}
}
