package dto

import (
	"time"

	"github.com/emsdev/ems-service/internal/domain"
)

// EmployeeRequest creates or replaces an employee. Department is the department name.
type EmployeeRequest struct {
	Name       string                `json:"name" validate:"required,min=2"`
	Email      string                `json:"email" validate:"required,email"`
	Position   string                `json:"position" validate:"required"`
	Department string                `json:"department" validate:"required"`
	Status     domain.EmployeeStatus `json:"status" validate:"omitempty,oneof=active on-leave inactive"`
	JoinDate   string                `json:"join_date" validate:"omitempty,datetime=2006-01-02"`
	Avatar     string                `json:"avatar" validate:"max=2048"`
}

// EmployeeResponse payload.
type EmployeeResponse struct {
	ID         string                `json:"id"`
	Name       string                `json:"name"`
	Email      string                `json:"email"`
	Position   string                `json:"position"`
	Department string                `json:"department"`
	Status     domain.EmployeeStatus `json:"status"`
	JoinDate   string                `json:"join_date"`
	Avatar     string                `json:"avatar,omitempty"`
	CreatedAt  time.Time             `json:"created_at"`
}

// DepartmentRequest creates or replaces a department.
type DepartmentRequest struct {
	Name        string `json:"name" validate:"required,min=2"`
	Description string `json:"description" validate:"max=500"`
	Manager     string `json:"manager" validate:"max=100"`
}

// DepartmentResponse payload. EmployeeCount is derived.
type DepartmentResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	Manager       string    `json:"manager"`
	EmployeeCount int       `json:"employee_count"`
	CreatedAt     time.Time `json:"created_at"`
}
