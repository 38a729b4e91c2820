package postgres

import (
	"github.com/thunderndwind/payment-service/internal/domain"
)

// toDomainModel: maps db model to domain entity
func toDomainModel(m PaymentModel) *domain.Payment {
	orderID := ""
	if m.OrderID != nil {
		orderID = *m.OrderID
	}
	return domain.Reconstitute(
		m.ID,
		m.TransactionID,
		m.UserID,
		m.Amount,
		m.Currency,
		m.PaymentMethod,
		orderID,
		domain.PaymentStatus(m.Status),
		m.FailureReason,
		m.MaskedDetails,
		m.CreatedAt,
	)
}

// toDBModel: maps domain entity to db model
func toDBModel(p *domain.Payment) *PaymentModel {
	var orderID *string
	if p.OrderID != "" {
		orderID = &p.OrderID
	}
	return &PaymentModel{
		ID:            p.ID,
		TransactionID: p.TransactionID,
		UserID:        p.UserID,
		Amount:        p.Amount,
		Currency:      p.Currency,
		PaymentMethod: p.PaymentMethod,
		OrderID:       orderID,
		Status:        string(p.Status),
		FailureReason: p.FailureReason,
		MaskedDetails: p.MaskedDetails,
		CreatedAt:     p.CreatedAt,
	}
}
