package services_test

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/thunderndwind/payment-service/internal/application"
	"github.com/thunderndwind/payment-service/internal/domain"
	"github.com/thunderndwind/payment-service/internal/infrastructure/persistence/memory"
)

// MockGatewayDecider approves everything unless DecideFn overrides it.
type MockGatewayDecider struct {
	mu       sync.Mutex
	requests []application.DecisionRequest

	DecideFn func(ctx context.Context, req application.DecisionRequest) (*application.Decision, error)
}

func NewMockGatewayDecider() *MockGatewayDecider {
	return &MockGatewayDecider{}
}

func (m *MockGatewayDecider) Decide(ctx context.Context, req application.DecisionRequest) (*application.Decision, error) {
	m.mu.Lock()
	m.requests = append(m.requests, req)
	m.mu.Unlock()

	if m.DecideFn != nil {
		return m.DecideFn(ctx, req)
	}
	return &application.Decision{Approved: true}, nil
}

func (m *MockGatewayDecider) Requests() []application.DecisionRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]application.DecisionRequest(nil), m.requests...)
}

// MockPaymentRepository wraps the in-memory store so individual calls can be
// overridden per test.
type MockPaymentRepository struct {
	*memory.PaymentRepository

	ExistsByTransactionIDFn func(ctx context.Context, transactionID string) (bool, error)
	CreateFn                func(ctx context.Context, payment *domain.Payment) error
}

func NewMockPaymentRepository() *MockPaymentRepository {
	return &MockPaymentRepository{
		PaymentRepository: memory.NewPaymentRepository(),
	}
}

func (m *MockPaymentRepository) ExistsByTransactionID(ctx context.Context, transactionID string) (bool, error) {
	if m.ExistsByTransactionIDFn != nil {
		return m.ExistsByTransactionIDFn(ctx, transactionID)
	}
	return m.PaymentRepository.ExistsByTransactionID(ctx, transactionID)
}

func (m *MockPaymentRepository) Create(ctx context.Context, payment *domain.Payment) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, payment)
	}
	return m.PaymentRepository.Create(ctx, payment)
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func seedPayment(t *testing.T, repo application.PaymentRepository, userID string, status domain.PaymentStatus, createdAt time.Time) *domain.Payment {
	t.Helper()

	var failureReason *string
	if status == domain.StatusFailed {
		reason := "payment declined by gateway"
		failureReason = &reason
	}

	payment := domain.Reconstitute(
		uuid.New().String(),
		domain.NewTransactionID(),
		userID,
		decimal.NewFromInt(250),
		"USD",
		"CREDIT_CARD",
		"order-001",
		status,
		failureReason,
		nil,
		createdAt,
	)

	require.NoError(t, repo.Create(context.Background(), payment))
	return payment
}
