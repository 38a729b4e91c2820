package application

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/thunderndwind/payment-service/internal/domain"
)

// GatewayDecider is the port for the external settlement network. The engine
// only needs a single accept/reject verdict per payment attempt; production
// deployments swap the simulator for a real adapter behind this interface.
type GatewayDecider interface {
	Decide(ctx context.Context, req DecisionRequest) (*Decision, error)
}

// DecisionRequest carries the fields a decision policy may inspect. The raw
// card number is passed through here before masking; it is never persisted.
type DecisionRequest struct {
	UserID        string
	Amount        decimal.Decimal
	Currency      string
	PaymentMethod string
	CardNumber    string
}

// Decision is the gateway verdict. A declined payment is a normal business
// outcome, not an error; Reason explains the decline to the caller.
type Decision struct {
	Approved bool
	Reason   string
}

// PaymentRepository is the port for persistence.
type PaymentRepository interface {
	// Create inserts a new payment. The payment must already carry its ID and
	// transaction ID; the store enforces uniqueness of both.
	Create(ctx context.Context, payment *domain.Payment) error

	FindByID(ctx context.Context, id string) (*domain.Payment, error)
	FindByTransactionID(ctx context.Context, transactionID string) (*domain.Payment, error)

	// FindByUserID returns a user's payments ordered most recently created first.
	FindByUserID(ctx context.Context, userID string) ([]*domain.Payment, error)

	ExistsByTransactionID(ctx context.Context, transactionID string) (bool, error)

	// MarkRefunded transitions a payment from SUCCESS to REFUNDED under a
	// single atomic read-modify-write, so concurrent refunds of the same
	// payment yield exactly one winner. Returns ErrInvalidTransition (wrapped)
	// when the payment is not currently SUCCESS.
	MarkRefunded(ctx context.Context, id string) (*domain.Payment, error)
}
