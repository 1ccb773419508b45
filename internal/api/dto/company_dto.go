package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CompanyRequest updates the company profile.
type CompanyRequest struct {
	Name        string `json:"name" validate:"required,min=2"`
	Website     string `json:"website" validate:"omitempty,url"`
	Email       string `json:"email" validate:"required,email"`
	Phone       string `json:"phone" validate:"required,min=5"`
	Address     string `json:"address" validate:"required,min=5"`
	Description string `json:"description" validate:"max=500"`
}

// CompanyResponse is the company page.
type CompanyResponse struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Website     string           `json:"website"`
	Email       string           `json:"email"`
	Phone       string           `json:"phone"`
	Address     string           `json:"address"`
	Description string           `json:"description"`
	Package     *PackageResponse `json:"package,omitempty"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

// PositionRequest creates a position. Salary is checked by the service.
type PositionRequest struct {
	Title       string          `json:"title" validate:"required,min=2"`
	Department  string          `json:"department" validate:"required"`
	Description string          `json:"description" validate:"max=500"`
	Salary      decimal.Decimal `json:"salary"`
}

// PositionResponse payload.
type PositionResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Department  string    `json:"department"`
	Description string    `json:"description"`
	Salary      string    `json:"salary"`
	CreatedAt   time.Time `json:"created_at"`
}
