package postgres

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentModel struct {
	ID            string
	TransactionID string
	UserID        string
	Amount        decimal.Decimal
	Currency      string
	PaymentMethod string
	OrderID       *string
	Status        string
	FailureReason *string
	MaskedDetails *string
	CreatedAt     time.Time
}
