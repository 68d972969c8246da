package payments

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AtelierService/internal/domain"
	"github.com/m04kA/SMC-AtelierService/internal/infra/storage/memory"
	"github.com/m04kA/SMC-AtelierService/internal/service/payments/models"
	"github.com/m04kA/SMC-AtelierService/pkg/logger"
)

var (
	admin = domain.Principal{UserID: 1, Role: domain.RoleAdmin}
	owner = domain.Principal{UserID: 10, Role: domain.RoleCustomer}
)

func newTestService(t *testing.T, price float64) (*Service, *memory.Store, *domain.OrderItem) {
	t.Helper()
	store := memory.NewStore()
	item, err := store.Orders().Create(context.Background(), &domain.OrderItem{
		CustomerID:  owner.UserID,
		ServiceType: domain.ServiceRepair,
		FinalPrice:  price,
	})
	require.NoError(t, err)
	return NewService(store.Payments(), store.Orders(), store.TxManager(), logger.NewNop()), store, item
}

func TestRecordPaymentReturnsRemaining(t *testing.T) {
	svc, _, item := newTestService(t, 1000)
	ctx := context.Background()

	resp, err := svc.RecordPayment(ctx, item.ID, admin, &models.RecordPaymentRequest{Amount: 999})
	require.NoError(t, err)
	assert.InDelta(t, 1, resp.RemainingBalance, 1e-9)
	assert.False(t, resp.IsFullyPaid)

	resp, err = svc.RecordPayment(ctx, item.ID, admin, &models.RecordPaymentRequest{Amount: 1})
	require.NoError(t, err)
	assert.InDelta(t, 0, resp.RemainingBalance, 1e-9)
	assert.True(t, resp.IsFullyPaid)

	resp, err = svc.RecordPayment(ctx, item.ID, admin, &models.RecordPaymentRequest{Amount: 50})
	require.NoError(t, err, "overpayment is recorded")
	assert.True(t, resp.IsOverpaid)
	assert.InDelta(t, -50, resp.RemainingBalance, 1e-9)

	balance, err := svc.GetBalance(ctx, item.ID, owner)
	require.NoError(t, err)
	assert.Len(t, balance.Payments, 3)
	assert.InDelta(t, 1050, balance.AmountPaid, 1e-9)
}

func TestRecordPaymentRejects(t *testing.T) {
	svc, store, item := newTestService(t, 100)
	ctx := context.Background()

	for _, amount := range []float64{0, -5, 0.004, math.NaN(), math.Inf(1), 1e10} {
		_, err := svc.RecordPayment(ctx, item.ID, admin, &models.RecordPaymentRequest{Amount: amount})
		assert.ErrorIs(t, err, ErrInvalidAmount, "amount %v", amount)
	}

	_, err := svc.RecordPayment(ctx, item.ID, owner, &models.RecordPaymentRequest{Amount: 10})
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = svc.RecordPayment(ctx, 999, admin, &models.RecordPaymentRequest{Amount: 10})
	assert.ErrorIs(t, err, ErrOrderItemNotFound)

	_, err = svc.GetBalance(ctx, item.ID, domain.Principal{UserID: 11, Role: domain.RoleCustomer})
	assert.ErrorIs(t, err, ErrAccessDenied)

	payments, err := store.Payments().ListByOrderItem(ctx, item.ID)
	require.NoError(t, err)
	assert.Empty(t, payments, "rejected payments are not ledgered")
}

func TestRecordPaymentRoundsToCents(t *testing.T) {
	svc, _, item := newTestService(t, 10)
	ctx := context.Background()

	resp, err := svc.RecordPayment(ctx, item.ID, admin, &models.RecordPaymentRequest{Amount: 0.016})
	require.NoError(t, err)
	assert.InDelta(t, 0.02, resp.AmountPaid, 1e-9)

	balance, err := svc.GetBalance(ctx, item.ID, admin)
	require.NoError(t, err)
	require.Len(t, balance.Payments, 1)
	assert.InDelta(t, 0.02, balance.Payments[0].Amount, 1e-9)
}
