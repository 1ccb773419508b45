package domain

import "time"

// EmployeeStatus tracks whether an employee is working.
type EmployeeStatus string

const (
	EmployeeActive   EmployeeStatus = "active"
	EmployeeOnLeave  EmployeeStatus = "on-leave"
	EmployeeInactive EmployeeStatus = "inactive"
)

// Employee is a person record managed by HR. Department holds the department name.
type Employee struct {
	ID         string
	CompanyID  string
	Name       string
	Email      string
	Position   string
	Department string
	Status     EmployeeStatus
	JoinDate   time.Time
	Avatar     string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
