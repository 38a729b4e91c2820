package gateway

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/thunderndwind/payment-service/internal/application"
	"github.com/thunderndwind/payment-service/internal/config"
)

const declinedInstrumentSuffix = "0000"

// Simulator is the reference gateway decision policy. Rules are evaluated in
// order, first match wins:
//  1. decline amounts above the high-value limit
//  2. decline instruments ending in 0000 (designated test card)
//  3. approve with the configured probability, decline otherwise
//
// The random branch makes outcomes for identical requests non-reproducible;
// tests inject a fixed draw via WithRandFloat.
type Simulator struct {
	highValueLimit decimal.Decimal
	approvalRate   float64
	randFloat      func() float64
}

func NewSimulator(cfg config.GatewayConfig) *Simulator {
	return &Simulator{
		highValueLimit: decimal.NewFromInt(cfg.HighValueLimit),
		approvalRate:   cfg.ApprovalRate,
		randFloat:      rand.Float64,
	}
}

// WithRandFloat replaces the uniform draw used by the probabilistic rule.
func (s *Simulator) WithRandFloat(fn func() float64) *Simulator {
	s.randFloat = fn
	return s
}

func (s *Simulator) Decide(ctx context.Context, req application.DecisionRequest) (*application.Decision, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if req.Amount.GreaterThan(s.highValueLimit) {
		return &application.Decision{
			Approved: false,
			Reason:   fmt.Sprintf("amount exceeds the %s %s transaction limit", s.highValueLimit, req.Currency),
		}, nil
	}

	if req.CardNumber != "" && strings.HasSuffix(req.CardNumber, declinedInstrumentSuffix) {
		return &application.Decision{
			Approved: false,
			Reason:   "payment instrument declined",
		}, nil
	}

	if s.randFloat() < s.approvalRate {
		return &application.Decision{Approved: true}, nil
	}

	return &application.Decision{
		Approved: false,
		Reason:   "payment declined by gateway",
	}, nil
}
