package dto

import "time"

// OverviewResponse is the analytics dashboard.
type OverviewResponse struct {
	Employees         int                 `json:"employees"`
	ActiveEmployees   int                 `json:"active_employees"`
	ActiveDepartments int                 `json:"active_departments"`
	OpenPositions     int                 `json:"open_positions"`
	NewHiresThisMonth int                 `json:"new_hires_this_month"`
	NewHiresLastMonth int                 `json:"new_hires_last_month"`
	Hires             HiresResponse       `json:"hires"`
	Tasks             TaskTotalsResponse  `json:"tasks"`
	Headcount         []HeadcountResponse `json:"headcount"`
	PaymentsCompleted string              `json:"payments_completed"`
	GeneratedAt       time.Time           `json:"generated_at"`
}

// TaskTotalsResponse counts tasks by progress.
type TaskTotalsResponse struct {
	Total      int `json:"total"`
	Completed  int `json:"completed"`
	InProgress int `json:"in_progress"`
	Overdue    int `json:"overdue"`
}

// HeadcountResponse is one department bar.
type HeadcountResponse struct {
	Department string `json:"department"`
	Employees  int    `json:"employees"`
}

// HiresResponse counts joiners over the requested range.
type HiresResponse struct {
	Range string    `json:"range"`
	Since time.Time `json:"since"`
	Count int       `json:"count"`
}
