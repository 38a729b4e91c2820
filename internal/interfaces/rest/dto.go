package rest

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/thunderndwind/payment-service/internal/domain"
)

type PaymentDetailsRequest struct {
	CardNumber     string `json:"cardNumber,omitempty"`
	CardHolder     string `json:"cardHolder,omitempty"`
	ExpiryMonth    string `json:"expiryMonth,omitempty"`
	ExpiryYear     string `json:"expiryYear,omitempty"`
	CVV            string `json:"cvv,omitempty"`
	BillingAddress string `json:"billingAddress,omitempty"`
}

type ProcessPaymentRequest struct {
	UserID        string                 `json:"userId" validate:"required"`
	Amount        decimal.Decimal        `json:"amount"`
	Currency      string                 `json:"currency" validate:"required,len=3"`
	PaymentMethod string                 `json:"paymentMethod" validate:"required"`
	OrderID       string                 `json:"orderId,omitempty"`
	Details       *PaymentDetailsRequest `json:"details,omitempty"`
}

// PaymentResponse is the transport rendition of a payment record. Success
// reflects the business outcome of the call, not just transport health.
type PaymentResponse struct {
	Success       bool             `json:"success"`
	Message       string           `json:"message"`
	PaymentID     string           `json:"paymentId,omitempty"`
	TransactionID string           `json:"transactionId,omitempty"`
	Status        string           `json:"status,omitempty"`
	UserID        string           `json:"userId,omitempty"`
	Amount        *decimal.Decimal `json:"amount,omitempty"`
	Currency      string           `json:"currency,omitempty"`
	PaymentMethod string           `json:"paymentMethod,omitempty"`
	OrderID       string           `json:"orderId,omitempty"`
	CreatedAt     *time.Time       `json:"createdAt,omitempty"`
}

type HistoryResponse struct {
	Success  bool              `json:"success"`
	Count    int               `json:"count"`
	Payments []PaymentResponse `json:"payments"`
}

func toDomainDetails(d *PaymentDetailsRequest) *domain.PaymentDetails {
	if d == nil {
		return nil
	}
	return &domain.PaymentDetails{
		CardNumber:     d.CardNumber,
		CardHolder:     d.CardHolder,
		ExpiryMonth:    d.ExpiryMonth,
		ExpiryYear:     d.ExpiryYear,
		CVV:            d.CVV,
		BillingAddress: d.BillingAddress,
	}
}

func toPaymentResponse(success bool, message string, p *domain.Payment) PaymentResponse {
	resp := PaymentResponse{
		Success: success,
		Message: message,
	}
	if p != nil {
		amount := p.Amount
		createdAt := p.CreatedAt
		resp.PaymentID = p.ID
		resp.TransactionID = p.TransactionID
		resp.Status = string(p.Status)
		resp.UserID = p.UserID
		resp.Amount = &amount
		resp.Currency = p.Currency
		resp.PaymentMethod = p.PaymentMethod
		resp.OrderID = p.OrderID
		resp.CreatedAt = &createdAt
	}
	return resp
}
