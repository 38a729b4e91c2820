// Package memory provides the reference in-process payment store. It backs
// deployments that run without PostgreSQL and the service-level test suites.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/thunderndwind/payment-service/internal/application"
	"github.com/thunderndwind/payment-service/internal/domain"
)

type record struct {
	payment *domain.Payment
	seq     uint64
}

type PaymentRepository struct {
	mu       sync.RWMutex
	payments map[string]record
	byTxnID  map[string]string
	nextSeq  uint64
}

func NewPaymentRepository() *PaymentRepository {
	return &PaymentRepository{
		payments: make(map[string]record),
		byTxnID:  make(map[string]string),
	}
}

var _ application.PaymentRepository = (*PaymentRepository)(nil)

func (r *PaymentRepository) Create(ctx context.Context, payment *domain.Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.payments[payment.ID]; ok {
		return fmt.Errorf("payment %s already exists", payment.ID)
	}
	if _, ok := r.byTxnID[payment.TransactionID]; ok {
		return fmt.Errorf("transaction ID %s already exists", payment.TransactionID)
	}

	r.nextSeq++
	r.payments[payment.ID] = record{payment: clone(payment), seq: r.nextSeq}
	r.byTxnID[payment.TransactionID] = payment.ID
	return nil
}

func (r *PaymentRepository) FindByID(ctx context.Context, id string) (*domain.Payment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.payments[id]
	if !ok {
		return nil, domain.NewPaymentNotFoundError(id)
	}
	return clone(rec.payment), nil
}

func (r *PaymentRepository) FindByTransactionID(ctx context.Context, transactionID string) (*domain.Payment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byTxnID[transactionID]
	if !ok {
		return nil, domain.NewPaymentNotFoundError(transactionID)
	}
	return clone(r.payments[id].payment), nil
}

func (r *PaymentRepository) FindByUserID(ctx context.Context, userID string) ([]*domain.Payment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []record
	for _, rec := range r.payments {
		if rec.payment.UserID == userID {
			matched = append(matched, rec)
		}
	}

	// Newest first; insertion order breaks ties between equal timestamps.
	sort.Slice(matched, func(i, j int) bool {
		a, b := matched[i], matched[j]
		if !a.payment.CreatedAt.Equal(b.payment.CreatedAt) {
			return a.payment.CreatedAt.After(b.payment.CreatedAt)
		}
		return a.seq > b.seq
	})

	results := make([]*domain.Payment, 0, len(matched))
	for _, rec := range matched {
		results = append(results, clone(rec.payment))
	}
	return results, nil
}

func (r *PaymentRepository) ExistsByTransactionID(ctx context.Context, transactionID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.byTxnID[transactionID]
	return ok, nil
}

// MarkRefunded performs the guard check and transition under the write lock,
// so concurrent refunds of the same payment admit exactly one winner.
func (r *PaymentRepository) MarkRefunded(ctx context.Context, id string) (*domain.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.payments[id]
	if !ok {
		return nil, domain.NewPaymentNotFoundError(id)
	}

	updated := clone(rec.payment)
	if err := updated.Refund(); err != nil {
		return nil, domain.NewInvalidTransitionError(rec.payment.Status, domain.StatusRefunded)
	}

	r.payments[id] = record{payment: updated, seq: rec.seq}
	return clone(updated), nil
}

// clone copies a payment so callers never share memory with the store.
func clone(p *domain.Payment) *domain.Payment {
	cp := *p
	if p.FailureReason != nil {
		reason := *p.FailureReason
		cp.FailureReason = &reason
	}
	if p.MaskedDetails != nil {
		masked := *p.MaskedDetails
		cp.MaskedDetails = &masked
	}
	return &cp
}
