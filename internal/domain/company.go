package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Company is the tenant. Every other entity is scoped to one.
type Company struct {
	ID          string
	Name        string
	Website     string
	Email       string
	Phone       string
	Address     string
	Description string
	PackageID   *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Position is an open role defined on the company page.
type Position struct {
	ID          string
	CompanyID   string
	Title       string
	Department  string
	Description string
	Salary      decimal.Decimal
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Package is a subscription plan from the static catalog.
type Package struct {
	ID            string
	Name          string
	Price         decimal.Decimal
	Billing       string
	Description   string
	Features      []string
	EmployeeLimit int // 0 means unlimited
	Popular       bool
}

// Packages is the subscription catalog, ordered by price.
var Packages = []Package{
	{
		ID:            "basic",
		Name:          "Basic",
		Price:         decimal.NewFromInt(99),
		Billing:       "monthly",
		Description:   "Essential features for small teams",
		Features:      []string{"Up to 5 employees", "Basic HR management", "Task management", "Email support"},
		EmployeeLimit: 5,
	},
	{
		ID:            "professional",
		Name:          "Professional",
		Price:         decimal.NewFromInt(199),
		Billing:       "monthly",
		Description:   "Advanced features for growing businesses",
		Features:      []string{"Up to 20 employees", "Advanced HR management", "Recruitment tools", "Analytics dashboard", "Priority support"},
		EmployeeLimit: 20,
		Popular:       true,
	},
	{
		ID:          "enterprise",
		Name:        "Enterprise",
		Price:       decimal.NewFromInt(399),
		Billing:     "monthly",
		Description: "Complete solution for large organizations",
		Features:    []string{"Unlimited employees", "Full HR suite", "Custom workflows", "Dedicated account manager", "24/7 support"},
	},
}

// FindPackage looks up a catalog entry by id.
func FindPackage(id string) (Package, bool) {
	for _, p := range Packages {
		if p.ID == id {
			return p, true
		}
	}
	return Package{}, false
}
