package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/emsdev/ems-service/internal/domain"
)

// PaymentRequest submits a payment. Amount is checked by the service.
type PaymentRequest struct {
	Amount        decimal.Decimal      `json:"amount"`
	Method        domain.PaymentMethod `json:"method" validate:"required,oneof='Bank Transfer' Easypaisa JazzCash"`
	AccountNumber string               `json:"account_number" validate:"required,max=64"`
	Reference     string               `json:"reference" validate:"max=100"`
	Description   string               `json:"description" validate:"max=500"`
}

// SubscribeRequest selects how a package is paid for.
type SubscribeRequest struct {
	Method        domain.PaymentMethod `json:"method" validate:"required,oneof='Bank Transfer' Easypaisa JazzCash"`
	AccountNumber string               `json:"account_number" validate:"required,max=64"`
}

// PaymentResponse payload. The account number is masked.
type PaymentResponse struct {
	ID            string               `json:"id"`
	Key           string               `json:"key"`
	Amount        string               `json:"amount"`
	Method        domain.PaymentMethod `json:"method"`
	AccountNumber string               `json:"account_number"`
	Status        domain.PaymentStatus `json:"status"`
	Reference     string               `json:"reference,omitempty"`
	Description   string               `json:"description,omitempty"`
	PackageID     *string              `json:"package_id,omitempty"`
	PaidAt        time.Time            `json:"paid_at"`
}

// PackageResponse is one catalog entry.
type PackageResponse struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Price         string   `json:"price"`
	Billing       string   `json:"billing"`
	Description   string   `json:"description"`
	Features      []string `json:"features"`
	EmployeeLimit int      `json:"employee_limit"`
	Popular       bool     `json:"popular"`
}

// SubscriptionResponse is returned after subscribing.
type SubscriptionResponse struct {
	Package PackageResponse `json:"package"`
	Payment PaymentResponse `json:"payment"`
	User    UserResponse    `json:"user"`
}
