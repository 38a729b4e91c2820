package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/thunderndwind/payment-service/internal/application"
	"github.com/thunderndwind/payment-service/internal/config"
)

// HTTPDecider calls a remote settlement network that implements the decision
// contract over HTTP. Deployments integrating a real gateway point the service
// here instead of at the simulator.
type HTTPDecider struct {
	baseURL    string
	httpClient *http.Client
}

func NewHTTPDecider(cfg config.GatewayConfig) *HTTPDecider {
	return &HTTPDecider{
		baseURL: cfg.BaseURL,
		httpClient: &http.Client{
			Timeout: cfg.ConnTimeout,
		},
	}
}

type decisionRequestBody struct {
	UserID        string          `json:"user_id"`
	Amount        decimal.Decimal `json:"amount"`
	Currency      string          `json:"currency"`
	PaymentMethod string          `json:"payment_method"`
	CardNumber    string          `json:"card_number,omitempty"`
}

type decisionResponseBody struct {
	Approved bool   `json:"approved"`
	Reason   string `json:"reason"`
}

func (c *HTTPDecider) Decide(ctx context.Context, req application.DecisionRequest) (*application.Decision, error) {
	url := fmt.Sprintf("%s/api/v1/decisions", c.baseURL)

	body := decisionRequestBody{
		UserID:        req.UserID,
		Amount:        req.Amount,
		Currency:      req.Currency,
		PaymentMethod: req.PaymentMethod,
		CardNumber:    req.CardNumber,
	}
	jsonData, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("error marshalling json: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("error making request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		var gwErrResp gatewayErrorResponse
		if err := json.Unmarshal(respBody, &gwErrResp); err != nil {
			return nil, fmt.Errorf("gateway returned status %d: %s", resp.StatusCode, string(respBody))
		}
		return nil, &GatewayError{
			Code:       gwErrResp.Err,
			Message:    gwErrResp.Message,
			StatusCode: resp.StatusCode,
		}
	}

	var decisionResp decisionResponseBody
	if err := json.NewDecoder(resp.Body).Decode(&decisionResp); err != nil {
		return nil, fmt.Errorf("error decoding json response: %w", err)
	}

	return &application.Decision{
		Approved: decisionResp.Approved,
		Reason:   decisionResp.Reason,
	}, nil
}

var _ application.GatewayDecider = (*HTTPDecider)(nil)
