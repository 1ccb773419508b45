package domain

import "time"

// Department is an organizational unit. EmployeeCount is derived from employees
// whose department name equals Name.
type Department struct {
	ID            string
	CompanyID     string
	Name          string
	Description   string
	Manager       string
	EmployeeCount int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
