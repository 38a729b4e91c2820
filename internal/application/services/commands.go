package services

import (
	"github.com/shopspring/decimal"

	"github.com/thunderndwind/payment-service/internal/domain"
)

type ProcessCommand struct {
	UserID        string
	Amount        decimal.Decimal
	Currency      string
	PaymentMethod string
	OrderID       string
	Details       *domain.PaymentDetails
}

// ValidationResult reports whether a payment settled successfully. The payment
// record rides along even when Valid is false, so callers can echo its fields.
type ValidationResult struct {
	Valid   bool
	Payment *domain.Payment
}
