package memory

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AtelierService/internal/domain"
)

// PaymentRepository журнал платежей в памяти
type PaymentRepository struct {
	s *Store
}

func (r *PaymentRepository) Create(ctx context.Context, payment *domain.PaymentRecord) (*domain.PaymentRecord, error) {
	r.s.mu.Lock()
	r.s.nextPaymentID++
	payment.ID = r.s.nextPaymentID
	payment.RecordedAt = time.Now()
	stored := *payment
	r.s.payments = append(r.s.payments, &stored)
	r.s.mu.Unlock()

	recordUndo(ctx, func() {
		r.s.mu.Lock()
		defer r.s.mu.Unlock()
		for i, p := range r.s.payments {
			if p.ID == stored.ID {
				r.s.payments = append(r.s.payments[:i], r.s.payments[i+1:]...)
				return
			}
		}
	})

	return payment, nil
}

func (r *PaymentRepository) SumByOrderItem(ctx context.Context, orderItemID int64) (float64, error) {
	payments, err := r.ListByOrderItem(ctx, orderItemID)
	if err != nil {
		return 0, err
	}
	return domain.SumPayments(payments), nil
}

func (r *PaymentRepository) ListByOrderItem(_ context.Context, orderItemID int64) ([]*domain.PaymentRecord, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	payments := make([]*domain.PaymentRecord, 0)
	for _, p := range r.s.payments {
		if p.OrderItemID == orderItemID {
			cp := *p
			payments = append(payments, &cp)
		}
	}
	return payments, nil
}
