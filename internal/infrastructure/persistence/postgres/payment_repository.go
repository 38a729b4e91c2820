package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/thunderndwind/payment-service/internal/domain"
)

const paymentColumns = `
	id, transaction_id, user_id, amount, currency, payment_method,
	order_id, status, failure_reason, masked_details, created_at
`

type PaymentRepository struct {
	db *pgxpool.Pool
}

func NewPaymentRepository(db *pgxpool.Pool) *PaymentRepository {
	return &PaymentRepository{db: db}
}

func (r *PaymentRepository) Create(ctx context.Context, payment *domain.Payment) error {
	query := `
		INSERT INTO payments (
			id, transaction_id, user_id, amount, currency, payment_method,
			order_id, status, failure_reason, masked_details, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	p := toDBModel(payment)
	_, err := r.db.Exec(ctx, query,
		p.ID,
		p.TransactionID,
		p.UserID,
		p.Amount,
		p.Currency,
		p.PaymentMethod,
		p.OrderID,
		p.Status,
		p.FailureReason,
		p.MaskedDetails,
		p.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create payment: %w", err)
	}

	return nil
}

// FindByID retrieves a payment
func (r *PaymentRepository) FindByID(ctx context.Context, id string) (*domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE id = $1`

	row := r.db.QueryRow(ctx, query, id)
	return scanPayment(row, id)
}

// FindByTransactionID retrieves a payment by its external transaction reference
func (r *PaymentRepository) FindByTransactionID(ctx context.Context, transactionID string) (*domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE transaction_id = $1`

	row := r.db.QueryRow(ctx, query, transactionID)
	return scanPayment(row, transactionID)
}

// FindByUserID retrieves a user's payments, most recently created first
func (r *PaymentRepository) FindByUserID(ctx context.Context, userID string) ([]*domain.Payment, error) {
	query := `SELECT ` + paymentColumns + `
		FROM payments WHERE user_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("query payments by user_id: %w", err)
	}
	results, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*domain.Payment, error) {
		var m PaymentModel
		err := row.Scan(
			&m.ID, &m.TransactionID, &m.UserID, &m.Amount, &m.Currency, &m.PaymentMethod,
			&m.OrderID, &m.Status, &m.FailureReason, &m.MaskedDetails, &m.CreatedAt,
		)
		return toDomainModel(m), err
	})

	if err != nil {
		return nil, fmt.Errorf("error occurred while scanning rows: %w", err)
	}
	return results, nil
}

func (r *PaymentRepository) ExistsByTransactionID(ctx context.Context, transactionID string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM payments WHERE transaction_id = $1)`

	var exists bool
	if err := r.db.QueryRow(ctx, query, transactionID).Scan(&exists); err != nil {
		return false, fmt.Errorf("check transaction_id existence: %w", err)
	}
	return exists, nil
}

// MarkRefunded flips a SUCCESS payment to REFUNDED in a single conditional
// update, so the guard and the transition form one atomic read-modify-write.
// Concurrent callers race on the same row; exactly one sees a returned row.
func (r *PaymentRepository) MarkRefunded(ctx context.Context, id string) (*domain.Payment, error) {
	query := `
		UPDATE payments
		SET status = $1
		WHERE id = $2 AND status = $3
		RETURNING ` + paymentColumns

	row := r.db.QueryRow(ctx, query, string(domain.StatusRefunded), id, string(domain.StatusSuccess))
	payment, err := scanPayment(row, id)
	if err == nil {
		return payment, nil
	}
	if !errors.Is(err, domain.ErrPaymentNotFound) {
		return nil, err
	}

	// No row updated: distinguish a missing payment from a guard violation.
	existing, findErr := r.FindByID(ctx, id)
	if findErr != nil {
		return nil, findErr
	}
	return nil, domain.NewInvalidTransitionError(existing.Status, domain.StatusRefunded)
}

// scanPayment converts a database row into a domain Payment.
// Returns a not-found domain error if the row doesn't exist.
func scanPayment(row pgx.Row, id string) (*domain.Payment, error) {
	var m PaymentModel
	err := row.Scan(
		&m.ID, &m.TransactionID, &m.UserID, &m.Amount, &m.Currency, &m.PaymentMethod,
		&m.OrderID, &m.Status, &m.FailureReason, &m.MaskedDetails, &m.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewPaymentNotFoundError(id)
		}
		return nil, fmt.Errorf("failed to scan payment: %w", err)
	}
	return toDomainModel(m), nil
}
