// Package domain encodes a payment entity and it's attributes
package domain

import (
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// PaymentStatus represents the current state of a payment in its lifecycle
type PaymentStatus string

const (
	StatusPending  PaymentStatus = "PENDING"
	StatusSuccess  PaymentStatus = "SUCCESS"
	StatusFailed   PaymentStatus = "FAILED"
	StatusRefunded PaymentStatus = "REFUNDED"
)

type Payment struct {
	ID            string
	TransactionID string
	UserID        string
	Amount        decimal.Decimal
	Currency      string
	PaymentMethod string
	OrderID       string
	Status        PaymentStatus

	FailureReason *string
	MaskedDetails *string

	CreatedAt time.Time
}

// NewPayment builds a payment in PENDING with a freshly assigned transaction ID.
// The transaction ID never changes after this point.
func NewPayment(
	id string,
	userID string,
	amount decimal.Decimal,
	currency string,
	paymentMethod string,
	orderID string,
) (*Payment, error) {
	if id == "" {
		return nil, NewMissingRequiredFieldError("payment ID")
	}
	if strings.TrimSpace(userID) == "" {
		return nil, NewMissingRequiredFieldError("user ID")
	}
	if !amount.IsPositive() {
		return nil, NewInvalidAmountError(amount)
	}
	if strings.TrimSpace(currency) == "" {
		return nil, NewMissingRequiredFieldError("currency")
	}
	if len(currency) != 3 {
		return nil, NewInvalidCurrencyError(currency)
	}
	if strings.TrimSpace(paymentMethod) == "" {
		return nil, NewMissingRequiredFieldError("payment method")
	}

	return &Payment{
		ID:            id,
		TransactionID: NewTransactionID(),
		UserID:        userID,
		Amount:        amount,
		Currency:      currency,
		PaymentMethod: paymentMethod,
		OrderID:       orderID,
		Status:        StatusPending,
		CreatedAt:     time.Now(),
	}, nil
}

func (p *Payment) Succeed() error {
	return p.transition(StatusSuccess)
}

func (p *Payment) Fail(reason string) error {
	if err := p.transition(StatusFailed); err != nil {
		return err
	}
	p.FailureReason = &reason
	return nil
}

// Refund moves a settled payment to REFUNDED. Only SUCCESS payments qualify.
func (p *Payment) Refund() error {
	return p.transition(StatusRefunded)
}

func (p *Payment) transition(target PaymentStatus) error {
	if err := p.canTransitionTo(target); err != nil {
		return err
	}
	p.Status = target
	return nil
}

// defines various payment statuses that can be transitioned to
func (p *Payment) canTransitionTo(target PaymentStatus) error {
	switch p.Status {
	case StatusPending:
		return p.allow(target, StatusSuccess, StatusFailed)
	case StatusSuccess:
		return p.allow(target, StatusRefunded)
	}
	return ErrInvalidTransition
}

// Helper to check allowed state transitions
func (p *Payment) allow(target PaymentStatus, allowed ...PaymentStatus) error {
	if slices.Contains(allowed, target) {
		return nil
	}
	return ErrInvalidTransition
}

// helper to identify payment statuses that are terminal
func (p *Payment) IsTerminal() bool {
	switch p.Status {
	case StatusSuccess, StatusFailed, StatusRefunded:
		return true
	default:
		return false
	}
}

// SetMaskedDetails records the display-safe rendition of the instrument.
// Raw instrument data must never reach this field.
func (p *Payment) SetMaskedDetails(masked string) {
	if masked == "" {
		return
	}
	p.MaskedDetails = &masked
}

// Reconstitute - Special constructor for loading from DB
func Reconstitute(
	id string, transactionID string, userID string,
	amount decimal.Decimal, currency string,
	paymentMethod string, orderID string,
	status PaymentStatus,
	failureReason, maskedDetails *string,
	createdAt time.Time,
) *Payment {
	return &Payment{
		ID:            id,
		TransactionID: transactionID,
		UserID:        userID,
		Amount:        amount,
		Currency:      currency,
		PaymentMethod: paymentMethod,
		OrderID:       orderID,
		Status:        status,
		FailureReason: failureReason,
		MaskedDetails: maskedDetails,
		CreatedAt:     createdAt,
	}
}
