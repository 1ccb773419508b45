package service

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/emsdev/ems-service/internal/domain"
)

// DepartmentHeadcount is one bar of the per-department chart.
type DepartmentHeadcount struct {
	Department string
	Employees  int
}

// TaskTotals counts tasks by progress.
type TaskTotals struct {
	Total      int
	Completed  int
	InProgress int
	Overdue    int
}

// HireWindow is the trailing period the hiring count covers.
type HireWindow string

const (
	HireWeek    HireWindow = "week"
	HireMonth   HireWindow = "month"
	HireQuarter HireWindow = "quarter"
	HireYear    HireWindow = "year"
)

// ParseHireWindow accepts week, month, quarter or year. Empty means month.
func ParseHireWindow(s string) (HireWindow, bool) {
	switch w := HireWindow(s); w {
	case "":
		return HireMonth, true
	case HireWeek, HireMonth, HireQuarter, HireYear:
		return w, true
	}
	return "", false
}

// Since returns the start of the window ending at now.
func (w HireWindow) Since(now time.Time) time.Time {
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	switch w {
	case HireWeek:
		return day.AddDate(0, 0, -7)
	case HireQuarter:
		return day.AddDate(0, -3, 0)
	case HireYear:
		return day.AddDate(-1, 0, 0)
	default:
		return day.AddDate(0, -1, 0)
	}
}

// HireCount is the number of employees who joined within a window.
type HireCount struct {
	Window HireWindow
	Since  time.Time
	Count  int
}

// Overview is the analytics dashboard payload.
type Overview struct {
	Employees         int
	ActiveEmployees   int
	ActiveDepartments int
	OpenPositions     int
	NewHiresThisMonth int
	NewHiresLastMonth int
	Hires             HireCount
	Tasks             TaskTotals
	Headcount         []DepartmentHeadcount
	PaymentsCompleted decimal.Decimal
	GeneratedAt       time.Time
}

// AnalyticsService aggregates the cached tenant collections.
type AnalyticsService struct {
	employees   *EmployeeService
	departments *DepartmentService
	tasks       *TaskService
	recruitment *RecruitmentService
	payments    *PaymentService
	now         func() time.Time
}

// NewAnalyticsService wires the collection owning services.
func NewAnalyticsService(employees *EmployeeService, departments *DepartmentService, tasks *TaskService, recruitment *RecruitmentService, payments *PaymentService) *AnalyticsService {
	return &AnalyticsService{
		employees:   employees,
		departments: departments,
		tasks:       tasks,
		recruitment: recruitment,
		payments:    payments,
		now:         time.Now,
	}
}

// Overview computes the dashboard totals for the actor's company. Hires are
// counted by join date over window and over the current and previous calendar month.
func (s *AnalyticsService) Overview(ctx context.Context, actor Actor, window HireWindow) (*Overview, error) {
	employees, err := s.employees.All(ctx, actor)
	if err != nil {
		return nil, err
	}
	departments, err := s.departments.All(ctx, actor)
	if err != nil {
		return nil, err
	}
	tasks, err := s.tasks.All(ctx, actor)
	if err != nil {
		return nil, err
	}
	jobs, err := s.recruitment.AllJobs(ctx, actor)
	if err != nil {
		return nil, err
	}
	payments, err := s.payments.All(ctx, actor)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	out := &Overview{
		Hires:             HireCount{Window: window, Since: window.Since(now)},
		Employees:         len(employees),
		PaymentsCompleted: decimal.Zero,
		GeneratedAt:       now,
		Headcount:         make([]DepartmentHeadcount, 0, len(departments)),
	}

	thisMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	lastMonth := thisMonth.AddDate(0, -1, 0)
	byDepartment := make(map[string]int, len(departments))
	for _, e := range employees {
		if e.Status == domain.EmployeeActive {
			out.ActiveEmployees++
		}
		joined := e.JoinDate.UTC()
		switch {
		case joined.After(now):
		case !joined.Before(thisMonth):
			out.NewHiresThisMonth++
		case !joined.Before(lastMonth):
			out.NewHiresLastMonth++
		}
		if !joined.Before(out.Hires.Since) && !joined.After(now) {
			out.Hires.Count++
		}
		byDepartment[e.Department]++
	}
	for _, d := range departments {
		n := byDepartment[d.Name]
		if n > 0 {
			out.ActiveDepartments++
		}
		out.Headcount = append(out.Headcount, DepartmentHeadcount{Department: d.Name, Employees: n})
	}
	sort.SliceStable(out.Headcount, func(i, j int) bool {
		return out.Headcount[i].Employees > out.Headcount[j].Employees
	})

	for _, j := range jobs {
		if j.Status == domain.JobPublished {
			out.OpenPositions++
		}
	}

	out.Tasks.Total = len(tasks)
	for i := range tasks {
		switch tasks[i].Status {
		case domain.TaskCompleted:
			out.Tasks.Completed++
		case domain.TaskInProgress:
			out.Tasks.InProgress++
		}
		if tasks[i].Overdue(now) {
			out.Tasks.Overdue++
		}
	}

	for _, p := range payments {
		if p.Status == domain.PaymentCompleted {
			out.PaymentsCompleted = out.PaymentsCompleted.Add(p.Amount)
		}
	}
	return out, nil
}
