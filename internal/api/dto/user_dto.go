package dto

import (
	"time"

	"github.com/emsdev/ems-service/internal/auth"
	"github.com/emsdev/ems-service/internal/domain"
)

// RegisterRequest payload for new accounts. A company name makes the user its CEO.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=2"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Company  string `json:"company" validate:"omitempty,min=2"`
}

// LoginRequest payload for login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse standard response for auth endpoints.
type AuthResponse struct {
	Token      string         `json:"token"`
	ExpiresAt  time.Time      `json:"expires_at"`
	User       UserResponse   `json:"user"`
	Navigation []auth.NavItem `json:"navigation"`
}

// UserResponse is the public view of an account.
type UserResponse struct {
	ID        string      `json:"id"`
	CompanyID string      `json:"company_id"`
	Name      string      `json:"name"`
	Email     string      `json:"email"`
	Role      domain.Role `json:"role"`
	Bio       string      `json:"bio,omitempty"`
	Avatar    string      `json:"avatar,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
}
