package services_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/thunderndwind/payment-service/internal/application"
	"github.com/thunderndwind/payment-service/internal/application/services"
	"github.com/thunderndwind/payment-service/internal/domain"
	"github.com/thunderndwind/payment-service/internal/infrastructure/persistence/memory"
)

type RefundServiceTestSuite struct {
	suite.Suite
	paymentRepo   *memory.PaymentRepository
	refundService *services.RefundService
}

func TestRefundServiceSuite(t *testing.T) {
	suite.Run(t, new(RefundServiceTestSuite))
}

func (suite *RefundServiceTestSuite) SetupTest() {
	suite.paymentRepo = memory.NewPaymentRepository()
	suite.refundService = services.NewRefundService(suite.paymentRepo, newTestLogger())
}

// ============================================================================
// HAPPY PATH TESTS
// ============================================================================

func (suite *RefundServiceTestSuite) Test_Refund_Success() {
	ctx := context.Background()
	seeded := seedPayment(suite.T(), suite.paymentRepo, "user-1", domain.StatusSuccess, time.Now())

	refunded, err := suite.refundService.Refund(ctx, seeded.ID)
	require.NoError(suite.T(), err)

	assert.Equal(suite.T(), domain.StatusRefunded, refunded.Status)
	assert.Equal(suite.T(), seeded.TransactionID, refunded.TransactionID)

	saved, err := suite.paymentRepo.FindByID(ctx, seeded.ID)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), domain.StatusRefunded, saved.Status)
}

// ============================================================================
// GUARD TESTS
// ============================================================================

func (suite *RefundServiceTestSuite) Test_Refund_PaymentNotFound() {
	ctx := context.Background()

	_, err := suite.refundService.Refund(ctx, "non-existent-id")

	require.Error(suite.T(), err)
	svcErr, ok := application.IsServiceError(err)
	require.True(suite.T(), ok)
	assert.Equal(suite.T(), application.ErrCodeNotFound, svcErr.Code)
}

func (suite *RefundServiceTestSuite) Test_Refund_CannotRefundFailedPayment() {
	ctx := context.Background()
	seeded := seedPayment(suite.T(), suite.paymentRepo, "user-1", domain.StatusFailed, time.Now())

	_, err := suite.refundService.Refund(ctx, seeded.ID)

	require.Error(suite.T(), err)
	svcErr, ok := application.IsServiceError(err)
	require.True(suite.T(), ok)
	assert.Equal(suite.T(), application.ErrCodeInvalidState, svcErr.Code)

	// The failed attempt left the record untouched.
	saved, findErr := suite.paymentRepo.FindByID(ctx, seeded.ID)
	require.NoError(suite.T(), findErr)
	assert.Equal(suite.T(), domain.StatusFailed, saved.Status)
}

func (suite *RefundServiceTestSuite) Test_Refund_CannotRefundTwice() {
	ctx := context.Background()
	seeded := seedPayment(suite.T(), suite.paymentRepo, "user-1", domain.StatusSuccess, time.Now())

	_, err := suite.refundService.Refund(ctx, seeded.ID)
	require.NoError(suite.T(), err)

	_, err = suite.refundService.Refund(ctx, seeded.ID)

	require.Error(suite.T(), err)
	svcErr, ok := application.IsServiceError(err)
	require.True(suite.T(), ok)
	assert.Equal(suite.T(), application.ErrCodeInvalidState, svcErr.Code)

	saved, findErr := suite.paymentRepo.FindByID(ctx, seeded.ID)
	require.NoError(suite.T(), findErr)
	assert.Equal(suite.T(), domain.StatusRefunded, saved.Status)
}

// ============================================================================
// CONCURRENCY TESTS
// ============================================================================

func (suite *RefundServiceTestSuite) Test_Refund_ConcurrentRequests_OnlyOneSucceeds() {
	ctx := context.Background()
	seeded := seedPayment(suite.T(), suite.paymentRepo, "user-1", domain.StatusSuccess, time.Now())

	const workers = 8
	errs := make([]error, workers)

	var wg sync.WaitGroup
	for i := range workers {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = suite.refundService.Refund(ctx, seeded.ID)
		}(i)
	}
	wg.Wait()

	var successCount int
	for _, err := range errs {
		if err == nil {
			successCount++
			continue
		}
		svcErr, ok := application.IsServiceError(err)
		require.True(suite.T(), ok)
		assert.Equal(suite.T(), application.ErrCodeInvalidState, svcErr.Code)
	}

	assert.Equal(suite.T(), 1, successCount)

	saved, err := suite.paymentRepo.FindByID(ctx, seeded.ID)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), domain.StatusRefunded, saved.Status)
}
