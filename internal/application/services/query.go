package services

import (
	"context"
	"errors"

	"github.com/thunderndwind/payment-service/internal/application"
	"github.com/thunderndwind/payment-service/internal/domain"
)

type QueryService struct {
	paymentRepo application.PaymentRepository
}

func NewQueryService(
	paymentRepo application.PaymentRepository,
) *QueryService {
	return &QueryService{
		paymentRepo: paymentRepo,
	}
}

// GetStatus fetches a payment's current record.
func (s *QueryService) GetStatus(ctx context.Context, paymentID string) (*domain.Payment, error) {
	payment, err := s.paymentRepo.FindByID(ctx, paymentID)
	if err != nil {
		if errors.Is(err, domain.ErrPaymentNotFound) {
			return nil, application.NewNotFoundError(paymentID)
		}
		return nil, application.NewInternalError(err)
	}
	return payment, nil
}

// Validate checks whether a payment settled successfully. A found record in a
// non-SUCCESS status is not an error; the result carries the record either way.
func (s *QueryService) Validate(ctx context.Context, paymentID string) (*ValidationResult, error) {
	payment, err := s.paymentRepo.FindByID(ctx, paymentID)
	if err != nil {
		if errors.Is(err, domain.ErrPaymentNotFound) {
			return nil, application.NewNotFoundError(paymentID)
		}
		return nil, application.NewInternalError(err)
	}

	return &ValidationResult{
		Valid:   payment.Status == domain.StatusSuccess,
		Payment: payment,
	}, nil
}

// History lists a user's payments, newest first. Unknown users get an empty
// list, not an error.
func (s *QueryService) History(ctx context.Context, userID string) ([]*domain.Payment, error) {
	payments, err := s.paymentRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, application.NewInternalError(err)
	}
	return payments, nil
}

// GetByTransactionID resolves the external-facing transaction reference.
func (s *QueryService) GetByTransactionID(ctx context.Context, transactionID string) (*domain.Payment, error) {
	payment, err := s.paymentRepo.FindByTransactionID(ctx, transactionID)
	if err != nil {
		if errors.Is(err, domain.ErrPaymentNotFound) {
			return nil, application.NewNotFoundError(transactionID)
		}
		return nil, application.NewInternalError(err)
	}
	return payment, nil
}
