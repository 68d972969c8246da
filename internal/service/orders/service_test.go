package orders

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AtelierService/internal/domain"
	"github.com/m04kA/SMC-AtelierService/internal/infra/storage/memory"
	"github.com/m04kA/SMC-AtelierService/internal/service/bookings"
	"github.com/m04kA/SMC-AtelierService/pkg/logger"
	"github.com/m04kA/SMC-AtelierService/pkg/types"
)

var (
	monday   = time.Date(2026, 10, 26, 0, 0, 0, 0, time.UTC)
	owner    = domain.Principal{UserID: 10, Role: domain.RoleCustomer}
	stranger = domain.Principal{UserID: 11, Role: domain.RoleCustomer}
	admin    = domain.Principal{UserID: 1, Role: domain.RoleAdmin}
)

func newTestService(t *testing.T) (*Service, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	log := logger.NewNop()
	releaser := bookings.NewService(store.Bookings(), store.Slots(), store.Orders(), store.TxManager(), log)
	return NewService(store.Orders(), store.Payments(), releaser, store.TxManager(), log), store
}

func putItem(t *testing.T, store *memory.Store, serviceType domain.ServiceType, status domain.ApprovalStatus, price float64) *domain.OrderItem {
	t.Helper()
	item, err := store.Orders().Create(context.Background(), &domain.OrderItem{
		CustomerID:     owner.UserID,
		ServiceType:    serviceType,
		OrderType:      domain.OrderOnline,
		ApprovalStatus: status,
		FinalPrice:     price,
	})
	require.NoError(t, err)
	return item
}

// bookSlot занимает место в слоте на 13:00 емкостью 1 для позиции
func bookSlot(t *testing.T, store *memory.Store, item *domain.OrderItem) domain.SlotKey {
	t.Helper()
	ctx := context.Background()
	timeOfDay := types.MustTimeString("13:00")
	tmpl := domain.NewSlotTemplate(item.ServiceType, 1, []types.TimeString{timeOfDay})
	require.NoError(t, store.Slots().EnsureSlots(ctx, tmpl.Materialize(monday)))

	key := domain.NewSlotKey(item.ServiceType, monday, timeOfDay)
	_, err := store.Slots().IncrementBooked(ctx, key)
	require.NoError(t, err)
	_, err = store.Bookings().Create(ctx, &domain.Booking{
		ServiceType: item.ServiceType,
		Date:        monday,
		TimeOfDay:   timeOfDay,
		OrderItemID: item.ID,
	})
	require.NoError(t, err)
	return key
}

func TestGetNextStatus(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	pending := putItem(t, store, domain.ServiceRepair, domain.StatusPending, 0)
	resp, err := svc.GetNextStatus(ctx, pending.ID, owner)
	require.NoError(t, err)
	require.NotNil(t, resp.NextStatus)
	assert.Equal(t, "price_confirmation", *resp.NextStatus)
	assert.True(t, resp.CanAdvance)

	ready := putItem(t, store, domain.ServiceRepair, domain.StatusReadyForPickup, 1000)
	_, err = store.Payments().Create(ctx, &domain.PaymentRecord{OrderItemID: ready.ID, Amount: 400})
	require.NoError(t, err)

	resp, err = svc.GetNextStatus(ctx, ready.ID, admin)
	require.NoError(t, err)
	assert.Nil(t, resp.NextStatus)
	assert.False(t, resp.CanAdvance)
	assert.True(t, resp.BlockedByPayment)
	assert.InDelta(t, 600, resp.RemainingBalance, 1e-9)

	_, err = store.Payments().Create(ctx, &domain.PaymentRecord{OrderItemID: ready.ID, Amount: 599.995})
	require.NoError(t, err)
	resp, err = svc.GetNextStatus(ctx, ready.ID, admin)
	require.NoError(t, err)
	require.NotNil(t, resp.NextStatus, "remaining within epsilon")
	assert.Equal(t, "completed", *resp.NextStatus)

	_, err = svc.GetNextStatus(ctx, ready.ID, stranger)
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = svc.GetNextStatus(ctx, 999, admin)
	assert.ErrorIs(t, err, ErrOrderItemNotFound)
}

func TestGetNextStatusLegacyPending(t *testing.T) {
	svc, store := newTestService(t)
	store.Orders().Put(&domain.OrderItem{
		ID:             42,
		CustomerID:     owner.UserID,
		ServiceType:    domain.ServiceRental,
		ApprovalStatus: "pending_review",
	})

	resp, err := svc.GetNextStatus(context.Background(), 42, owner)
	require.NoError(t, err)
	assert.Equal(t, "pending", resp.ApprovalStatus)
	require.NotNil(t, resp.NextStatus)
	assert.Equal(t, "ready_for_pickup", *resp.NextStatus)
}

func TestCancelByCustomer(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	item := putItem(t, store, domain.ServiceRepair, domain.StatusPending, 0)
	key := bookSlot(t, store, item)

	_, err := svc.Cancel(ctx, item.ID, stranger)
	assert.ErrorIs(t, err, ErrAccessDenied)

	resp, err := svc.Cancel(ctx, item.ID, owner)
	require.NoError(t, err)
	assert.Equal(t, "cancelled", resp.ApprovalStatus)
	assert.Equal(t, 1, resp.ReleasedBookings)

	slots, err := store.Slots().GetSlots(ctx, key.ServiceType, monday)
	require.NoError(t, err)
	require.Len(t, slots, 1)
	assert.Equal(t, 0, slots[0].BookedCount)
	assert.Equal(t, 0, store.Bookings().Count())

	_, err = svc.Cancel(ctx, item.ID, admin)
	assert.ErrorIs(t, err, ErrCannotCancel, "cancelled is terminal")
}

func TestCancelAfterPendingNeedsAdmin(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	item := putItem(t, store, domain.ServiceRepair, domain.StatusAccepted, 500)

	_, err := svc.Cancel(ctx, item.ID, owner)
	assert.ErrorIs(t, err, ErrCannotCancel)

	got, err := svc.GetByID(ctx, item.ID, owner)
	require.NoError(t, err)
	assert.Equal(t, "accepted", got.ApprovalStatus)

	_, err = svc.Cancel(ctx, item.ID, admin)
	require.NoError(t, err)
}

func TestDelete(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	active := putItem(t, store, domain.ServiceRepair, domain.StatusConfirmed, 100)
	assert.ErrorIs(t, svc.Delete(ctx, active.ID, admin), ErrCannotDelete)

	done := putItem(t, store, domain.ServiceRepair, domain.StatusCompleted, 100)
	bookSlot(t, store, done)

	assert.ErrorIs(t, svc.Delete(ctx, done.ID, owner), ErrAccessDenied)
	require.NoError(t, svc.Delete(ctx, done.ID, admin))

	_, err := svc.GetByID(ctx, done.ID, admin)
	assert.ErrorIs(t, err, ErrOrderItemNotFound)
	assert.Equal(t, 0, store.Bookings().Count())

	assert.ErrorIs(t, svc.Delete(ctx, done.ID, admin), ErrOrderItemNotFound)
}
