package advance_order_item

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/m04kA/SMC-AtelierService/internal/domain"
	"github.com/m04kA/SMC-AtelierService/internal/infra/storage/memory"
	"github.com/m04kA/SMC-AtelierService/internal/integrations/notifications"
	"github.com/m04kA/SMC-AtelierService/pkg/logger"
	"github.com/m04kA/SMC-AtelierService/pkg/ptr"
)

var (
	admin    = domain.Principal{UserID: 1, Role: domain.RoleAdmin}
	customer = domain.Principal{UserID: 10, Role: domain.RoleCustomer}
)

type recordingNotifier struct {
	mu     sync.Mutex
	events []notifications.Event
}

func (n *recordingNotifier) Notify(event notifications.Event) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, event)
}

type testEnv struct {
	store    *memory.Store
	uc       *UseCase
	notifier *recordingNotifier
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	store := memory.NewStore()
	notifier := &recordingNotifier{}
	uc := NewUseCase(store.Orders(), store.Payments(), store.TxManager(), notifier, nil, logger.NewNop())
	return &testEnv{store: store, uc: uc, notifier: notifier}
}

func (e *testEnv) newItem(t *testing.T, serviceType domain.ServiceType, orderType domain.OrderType, price float64) *domain.OrderItem {
	t.Helper()
	item, err := e.store.Orders().Create(context.Background(), &domain.OrderItem{
		CustomerID:  customer.UserID,
		ServiceType: serviceType,
		OrderType:   orderType,
		FinalPrice:  price,
	})
	require.NoError(t, err)
	return item
}

func (e *testEnv) pay(t *testing.T, itemID int64, amount float64) {
	t.Helper()
	_, err := e.store.Payments().Create(context.Background(), &domain.PaymentRecord{OrderItemID: itemID, Amount: amount})
	require.NoError(t, err)
}

func (e *testEnv) advance(itemID int64, p domain.Principal, target domain.ApprovalStatus) (*Response, error) {
	return e.uc.Execute(context.Background(), &Request{Principal: p, OrderItemID: itemID, TargetStatus: string(target)})
}

func TestRepairFlowWithPaymentGuard(t *testing.T) {
	env := newTestEnv(t)
	item := env.newItem(t, domain.ServiceRepair, domain.OrderOnline, 0)

	resp, err := env.uc.Execute(context.Background(), &Request{
		Principal:    admin,
		OrderItemID:  item.ID,
		TargetStatus: "price_confirmation",
		FinalPrice:   ptr.Ptr(1000.0),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPriceConfirmation, resp.ApprovalStatus)
	assert.InDelta(t, 1000, resp.FinalPrice, 1e-9)
	require.NotNil(t, resp.NextStatus)
	assert.Equal(t, domain.StatusAccepted, *resp.NextStatus)

	require.Len(t, env.notifier.events, 1)
	assert.Equal(t, notifications.KindPriceConfirmation, env.notifier.events[0].Kind)
	assert.Equal(t, customer.UserID, env.notifier.events[0].CustomerID)

	_, err = env.advance(item.ID, customer, domain.StatusAccepted)
	require.NoError(t, err, "customer accepts the quoted price")

	_, err = env.advance(item.ID, customer, domain.StatusConfirmed)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = env.advance(item.ID, admin, domain.StatusConfirmed)
	require.NoError(t, err)

	env.pay(t, item.ID, 999)
	resp, err = env.advance(item.ID, admin, domain.StatusReadyForPickup)
	require.NoError(t, err)
	assert.Nil(t, resp.NextStatus, "completion hidden while 1.00 remains")
	assert.InDelta(t, 1, resp.RemainingBalance, 1e-9)

	_, err = env.advance(item.ID, admin, domain.StatusCompleted)
	assert.ErrorIs(t, err, ErrPaymentRequired)

	got, err := env.store.Orders().GetByID(context.Background(), item.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusReadyForPickup, got.ApprovalStatus, "blocked transition leaves state unchanged")

	env.pay(t, item.ID, 1)
	resp, err = env.advance(item.ID, admin, domain.StatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, resp.ApprovalStatus)
	assert.Nil(t, resp.NextStatus)

	assert.Len(t, env.notifier.events, 1, "only entering price_confirmation notifies")
}

func TestWalkInAcceptedDirectlyWithPrice(t *testing.T) {
	env := newTestEnv(t)
	item := env.newItem(t, domain.ServiceCustomization, domain.OrderWalkIn, 0)

	_, err := env.advance(item.ID, admin, domain.StatusPriceConfirmation)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	resp, err := env.uc.Execute(context.Background(), &Request{
		Principal:    admin,
		OrderItemID:  item.ID,
		TargetStatus: "accepted",
		FinalPrice:   ptr.Ptr(2500.0),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, resp.PreviousStatus)
	assert.Equal(t, domain.StatusAccepted, resp.ApprovalStatus)
	assert.InDelta(t, 2500, resp.FinalPrice, 1e-9)
	assert.Empty(t, env.notifier.events)

	_, err = env.uc.Execute(context.Background(), &Request{
		Principal:    admin,
		OrderItemID:  item.ID,
		TargetStatus: "confirmed",
		FinalPrice:   ptr.Ptr(1.0),
	})
	assert.ErrorIs(t, err, ErrInvalidInput, "price is fixed once the item left pending")
}

func TestRentalFlowFromLegacyPending(t *testing.T) {
	env := newTestEnv(t)
	item := &domain.OrderItem{
		CustomerID:     customer.UserID,
		ServiceType:    domain.ServiceRental,
		OrderType:      domain.OrderOnline,
		ApprovalStatus: "pending_review",
	}
	env.store.Orders().Put(item)

	for _, target := range []domain.ApprovalStatus{
		domain.StatusReadyForPickup,
		domain.StatusPickedUp,
		domain.StatusRented,
		domain.StatusReturned,
		domain.StatusCompleted,
	} {
		resp, err := env.advance(item.ID, admin, target)
		require.NoError(t, err, "to %s", target)
		assert.Equal(t, target, resp.ApprovalStatus)
	}
}

func TestStaleAndUnknownTargets(t *testing.T) {
	env := newTestEnv(t)
	item := env.newItem(t, domain.ServiceDryCleaning, domain.OrderOnline, 100)

	_, err := env.advance(item.ID, admin, domain.StatusAccepted)
	assert.ErrorIs(t, err, ErrInvalidTransition, "online item must pass price confirmation")

	_, err = env.advance(item.ID, admin, "shipped")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = env.advance(999, admin, domain.StatusAccepted)
	assert.ErrorIs(t, err, ErrOrderItemNotFound)

	_, err = env.advance(item.ID, customer, domain.StatusPriceConfirmation)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestConcurrentAdvanceAppliesOnce(t *testing.T) {
	env := newTestEnv(t)
	item := env.newItem(t, domain.ServiceRepair, domain.OrderOnline, 100)

	var applied, rejected int64
	var g errgroup.Group
	for i := 0; i < 20; i++ {
		g.Go(func() error {
			_, err := env.advance(item.ID, admin, domain.StatusPriceConfirmation)
			switch {
			case err == nil:
				atomic.AddInt64(&applied, 1)
			case errors.Is(err, ErrInvalidTransition):
				atomic.AddInt64(&rejected, 1)
			default:
				return err
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())

	assert.EqualValues(t, 1, applied)
	assert.EqualValues(t, 19, rejected)
	assert.Len(t, env.notifier.events, 1)
}
