package services

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/thunderndwind/payment-service/internal/application"
	"github.com/thunderndwind/payment-service/internal/domain"
)

type ProcessService struct {
	paymentRepo application.PaymentRepository
	decider     application.GatewayDecider
	logger      *slog.Logger
}

func NewProcessService(
	paymentRepo application.PaymentRepository,
	decider application.GatewayDecider,
	logger *slog.Logger,
) *ProcessService {
	return &ProcessService{
		paymentRepo: paymentRepo,
		decider:     decider,
		logger:      logger,
	}
}

// Process submits a new payment attempt. Invalid requests are rejected before
// anything is persisted. Valid requests get a terminal status from the gateway
// decision and are saved exactly once, declined attempts included. A decline
// is a normal FAILED outcome, not an error.
func (s *ProcessService) Process(ctx context.Context, cmd ProcessCommand) (*domain.Payment, error) {
	paymentID := uuid.New().String()

	payment, err := domain.NewPayment(
		paymentID,
		cmd.UserID,
		cmd.Amount,
		cmd.Currency,
		cmd.PaymentMethod,
		cmd.OrderID,
	)
	if err != nil {
		return nil, application.NewInvalidInputError(err.Error())
	}

	if cmd.Details != nil {
		payment.SetMaskedDetails(domain.MaskDetails(*cmd.Details))
	}

	for range 3 {
		exists, err := s.paymentRepo.ExistsByTransactionID(ctx, payment.TransactionID)
		if err != nil {
			return nil, application.NewInternalError(err)
		}
		if !exists {
			break
		}
		payment.TransactionID = domain.NewTransactionID()
	}

	decisionReq := application.DecisionRequest{
		UserID:        cmd.UserID,
		Amount:        cmd.Amount,
		Currency:      cmd.Currency,
		PaymentMethod: cmd.PaymentMethod,
	}
	if cmd.Details != nil {
		decisionReq.CardNumber = cmd.Details.CardNumber
	}

	decision, err := s.decider.Decide(ctx, decisionReq)
	if err != nil {
		s.logger.Error("gateway decision failed",
			"transaction_id", payment.TransactionID,
			"error", err,
		)
		return nil, application.NewGatewayUnavailableError(err)
	}

	if decision.Approved {
		if err := payment.Succeed(); err != nil {
			return nil, application.NewInternalError(err)
		}
	} else {
		if err := payment.Fail(decision.Reason); err != nil {
			return nil, application.NewInternalError(err)
		}
	}

	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		return nil, application.NewInternalError(err)
	}

	s.logger.Info("payment processed",
		"payment_id", payment.ID,
		"transaction_id", payment.TransactionID,
		"status", payment.Status,
	)

	return payment, nil
}
