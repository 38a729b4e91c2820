package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/thunderndwind/payment-service/internal/application"
	"github.com/thunderndwind/payment-service/internal/domain"
)

type RefundService struct {
	paymentRepo application.PaymentRepository
	logger      *slog.Logger
}

func NewRefundService(
	paymentRepo application.PaymentRepository,
	logger *slog.Logger,
) *RefundService {
	return &RefundService{
		paymentRepo: paymentRepo,
		logger:      logger,
	}
}

// Refund reverses a successful payment. The SUCCESS guard and the transition
// to REFUNDED happen in one atomic step inside the store, so concurrent
// refunds of the same payment produce exactly one winner.
func (s *RefundService) Refund(ctx context.Context, paymentID string) (*domain.Payment, error) {
	payment, err := s.paymentRepo.MarkRefunded(ctx, paymentID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrPaymentNotFound):
			return nil, application.NewNotFoundError(paymentID)
		case errors.Is(err, domain.ErrInvalidTransition):
			return nil, application.NewInvalidStateError("only successful payments can be refunded")
		default:
			return nil, application.NewInternalError(err)
		}
	}

	s.logger.Info("payment refunded",
		"payment_id", payment.ID,
		"transaction_id", payment.TransactionID,
	)

	return payment, nil
}
