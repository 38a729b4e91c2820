package gateway_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thunderndwind/payment-service/internal/application"
	"github.com/thunderndwind/payment-service/internal/config"
	"github.com/thunderndwind/payment-service/internal/infrastructure/gateway"
)

func testGatewayConfig() config.GatewayConfig {
	return config.GatewayConfig{
		Mode:           "simulator",
		HighValueLimit: 10000,
		ApprovalRate:   0.95,
	}
}

func decisionRequest(amount int64, cardNumber string) application.DecisionRequest {
	return application.DecisionRequest{
		UserID:        "user-1",
		Amount:        decimal.NewFromInt(amount),
		Currency:      "USD",
		PaymentMethod: "CREDIT_CARD",
		CardNumber:    cardNumber,
	}
}

func TestSimulator_DeclinesAboveHighValueLimit(t *testing.T) {
	sim := gateway.NewSimulator(testGatewayConfig()).
		WithRandFloat(func() float64 { return 0.0 })

	decision, err := sim.Decide(context.Background(), decisionRequest(10001, "4111111111111111"))
	require.NoError(t, err)

	assert.False(t, decision.Approved)
	assert.Equal(t, "amount exceeds the 10000 USD transaction limit", decision.Reason)
}

func TestSimulator_ApprovesAtExactLimit(t *testing.T) {
	sim := gateway.NewSimulator(testGatewayConfig()).
		WithRandFloat(func() float64 { return 0.0 })

	decision, err := sim.Decide(context.Background(), decisionRequest(10000, "4111111111111111"))
	require.NoError(t, err)

	assert.True(t, decision.Approved)
}

func TestSimulator_DeclinesDesignatedTestCard(t *testing.T) {
	sim := gateway.NewSimulator(testGatewayConfig()).
		WithRandFloat(func() float64 { return 0.0 })

	decision, err := sim.Decide(context.Background(), decisionRequest(50, "4111111111110000"))
	require.NoError(t, err)

	assert.False(t, decision.Approved)
	assert.Equal(t, "payment instrument declined", decision.Reason)
}

func TestSimulator_HighValueRuleWinsOverCardRule(t *testing.T) {
	sim := gateway.NewSimulator(testGatewayConfig()).
		WithRandFloat(func() float64 { return 0.0 })

	decision, err := sim.Decide(context.Background(), decisionRequest(20000, "4111111111110000"))
	require.NoError(t, err)

	assert.False(t, decision.Approved)
	assert.Contains(t, decision.Reason, "transaction limit")
}

func TestSimulator_ProbabilisticRule(t *testing.T) {
	testCases := []struct {
		name     string
		draw     float64
		approved bool
	}{
		{"draw below rate approves", 0.50, true},
		{"draw just under rate approves", 0.9499, true},
		{"draw at rate declines", 0.95, false},
		{"draw above rate declines", 0.99, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			sim := gateway.NewSimulator(testGatewayConfig()).
				WithRandFloat(func() float64 { return tc.draw })

			decision, err := sim.Decide(context.Background(), decisionRequest(100, "4111111111111111"))
			require.NoError(t, err)

			assert.Equal(t, tc.approved, decision.Approved)
			if !tc.approved {
				assert.Equal(t, "payment declined by gateway", decision.Reason)
			}
		})
	}
}

func TestSimulator_NoCardNumberSkipsCardRule(t *testing.T) {
	sim := gateway.NewSimulator(testGatewayConfig()).
		WithRandFloat(func() float64 { return 0.0 })

	decision, err := sim.Decide(context.Background(), decisionRequest(100, ""))
	require.NoError(t, err)

	assert.True(t, decision.Approved)
}

func TestSimulator_CancelledContext(t *testing.T) {
	sim := gateway.NewSimulator(testGatewayConfig())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := sim.Decide(ctx, decisionRequest(100, "4111111111111111"))
	assert.ErrorIs(t, err, context.Canceled)
}
