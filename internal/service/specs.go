package service

import (
	"github.com/emsdev/ems-service/internal/domain"
	"github.com/emsdev/ems-service/internal/listing"
)

// EmployeeSpec matches the employees table search box and status/department selects.
var EmployeeSpec = listing.Spec[domain.Employee]{
	SearchFields: func(e domain.Employee) []string {
		return []string{e.Name, e.Email, e.Position, e.Department}
	},
	FilterFields: map[string]func(domain.Employee) string{
		"status":     func(e domain.Employee) string { return string(e.Status) },
		"department": func(e domain.Employee) string { return e.Department },
	},
}

var DepartmentSpec = listing.Spec[domain.Department]{
	SearchFields: func(d domain.Department) []string {
		return []string{d.Name, d.Description, d.Manager}
	},
}

// TaskSpec filters by department id, not name.
var TaskSpec = listing.Spec[domain.Task]{
	SearchFields: func(t domain.Task) []string {
		return []string{t.Title, t.Description, t.AssigneeName}
	},
	FilterFields: map[string]func(domain.Task) string{
		"status":     func(t domain.Task) string { return string(t.Status) },
		"department": func(t domain.Task) string { return t.DepartmentID },
		"priority":   func(t domain.Task) string { return string(t.Priority) },
	},
}

var JobSpec = listing.Spec[domain.JobPosting]{
	SearchFields: func(j domain.JobPosting) []string {
		return []string{j.Title, j.Location, j.Description, j.DepartmentName}
	},
	FilterFields: map[string]func(domain.JobPosting) string{
		"status":     func(j domain.JobPosting) string { return string(j.Status) },
		"type":       func(j domain.JobPosting) string { return string(j.Type) },
		"department": func(j domain.JobPosting) string { return j.DepartmentID },
	},
}

var ApplicationSpec = listing.Spec[domain.Application]{
	SearchFields: func(a domain.Application) []string {
		return []string{a.FullName, a.Email, a.JobTitle}
	},
	FilterFields: map[string]func(domain.Application) string{
		"status": func(a domain.Application) string { return string(a.Status) },
		"jobId":  func(a domain.Application) string { return a.JobID },
	},
}

// PaymentSpec searches the human key, not the row uuid.
var PaymentSpec = listing.Spec[domain.Payment]{
	SearchFields: func(p domain.Payment) []string {
		return []string{p.Key, p.Reference, string(p.Method)}
	},
	FilterFields: map[string]func(domain.Payment) string{
		"status": func(p domain.Payment) string { return string(p.Status) },
		"method": func(p domain.Payment) string { return string(p.Method) },
	},
}

var PositionSpec = listing.Spec[domain.Position]{
	SearchFields: func(p domain.Position) []string {
		return []string{p.Title, p.Department}
	},
	FilterFields: map[string]func(domain.Position) string{
		"department": func(p domain.Position) string { return p.Department },
	},
}
