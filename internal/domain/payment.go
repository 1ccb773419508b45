package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMethod enumerates supported channels.
type PaymentMethod string

const (
	MethodBankTransfer PaymentMethod = "Bank Transfer"
	MethodEasypaisa    PaymentMethod = "Easypaisa"
	MethodJazzCash     PaymentMethod = "JazzCash"
)

// PaymentStatus enumerates settlement states.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
)

// Payment records money sent by a company. Key is the human readable PAY-xxxxxxxx id.
type Payment struct {
	ID            string
	CompanyID     string
	UserID        *string
	Key           string
	Amount        decimal.Decimal
	Method        PaymentMethod
	AccountNumber string
	Status        PaymentStatus
	Reference     string
	Description   string
	PackageID     *string
	PaidAt        time.Time
}
