package auth

import "github.com/emsdev/ems-service/internal/domain"

// Section is a dashboard area guarded by role.
type Section string

const (
	SectionDashboard   Section = "dashboard"
	SectionCompany     Section = "company"
	SectionEmployees   Section = "employees"
	SectionDepartments Section = "departments"
	SectionTasks       Section = "tasks"
	SectionRecruitment Section = "recruitment"
	SectionAnalytics   Section = "analytics"
	SectionPackages    Section = "packages"
	SectionProfile     Section = "profile"
	SectionPayments    Section = "payments"
)

// NavItem is one entry of the sidebar.
type NavItem struct {
	Section Section `json:"section"`
	Title   string  `json:"title"`
	Path    string  `json:"path"`
}

var navItems = map[Section]NavItem{
	SectionDashboard:   {SectionDashboard, "Dashboard", "/dashboard"},
	SectionCompany:     {SectionCompany, "Company", "/dashboard/company"},
	SectionEmployees:   {SectionEmployees, "Employees", "/dashboard/employees"},
	SectionDepartments: {SectionDepartments, "Departments", "/dashboard/departments"},
	SectionTasks:       {SectionTasks, "Tasks", "/dashboard/tasks"},
	SectionRecruitment: {SectionRecruitment, "Recruitment", "/dashboard/recruitment"},
	SectionAnalytics:   {SectionAnalytics, "Analytics", "/dashboard/analytics"},
	SectionPackages:    {SectionPackages, "Packages", "/dashboard/packages"},
	SectionProfile:     {SectionProfile, "Profile", "/dashboard/profile"},
	SectionPayments:    {SectionPayments, "Payments", "/dashboard/payments"},
}

var commonSections = []Section{SectionDashboard, SectionProfile, SectionPayments}

// Navigation is the static role lookup table. Common sections are appended for every role.
var Navigation = map[domain.Role][]Section{
	domain.RoleCEO:      {SectionCompany, SectionEmployees, SectionDepartments, SectionTasks, SectionRecruitment, SectionAnalytics, SectionPackages},
	domain.RoleHR:       {SectionCompany, SectionEmployees, SectionDepartments, SectionTasks, SectionRecruitment, SectionAnalytics, SectionPackages},
	domain.RoleManager:  {SectionEmployees, SectionDepartments, SectionTasks, SectionAnalytics},
	domain.RoleEmployee: {SectionTasks},
	domain.RoleUser:     {SectionPackages},
}

// SectionsFor returns the sections a role may open, dashboard first.
func SectionsFor(role domain.Role) []Section {
	out := []Section{SectionDashboard}
	out = append(out, Navigation[role]...)
	return append(out, SectionProfile, SectionPayments)
}

// NavigationFor returns the sidebar entries for role.
func NavigationFor(role domain.Role) []NavItem {
	sections := SectionsFor(role)
	items := make([]NavItem, 0, len(sections))
	for _, s := range sections {
		items = append(items, navItems[s])
	}
	return items
}

// CanAccess reports whether role may open section.
func CanAccess(role domain.Role, section Section) bool {
	for _, s := range commonSections {
		if s == section {
			return true
		}
	}
	for _, s := range Navigation[role] {
		if s == section {
			return true
		}
	}
	return false
}
