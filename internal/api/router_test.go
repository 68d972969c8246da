package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	advanceOrderItemHandler "github.com/m04kA/SMC-AtelierService/internal/api/handlers/advance_order_item"
	cancelBookingHandler "github.com/m04kA/SMC-AtelierService/internal/api/handlers/cancel_booking"
	cancelOrderItemHandler "github.com/m04kA/SMC-AtelierService/internal/api/handlers/cancel_order_item"
	checkoutOrderItemHandler "github.com/m04kA/SMC-AtelierService/internal/api/handlers/checkout_order_item"
	createBookingHandler "github.com/m04kA/SMC-AtelierService/internal/api/handlers/create_booking"
	deleteOrderItemHandler "github.com/m04kA/SMC-AtelierService/internal/api/handlers/delete_order_item"
	getAvailableSlotsHandler "github.com/m04kA/SMC-AtelierService/internal/api/handlers/get_available_slots"
	getBalanceHandler "github.com/m04kA/SMC-AtelierService/internal/api/handlers/get_balance"
	getBookingHandler "github.com/m04kA/SMC-AtelierService/internal/api/handlers/get_booking"
	getDayStatusHandler "github.com/m04kA/SMC-AtelierService/internal/api/handlers/get_day_status"
	getNextStatusHandler "github.com/m04kA/SMC-AtelierService/internal/api/handlers/get_next_status"
	getOrderItemHandler "github.com/m04kA/SMC-AtelierService/internal/api/handlers/get_order_item"
	getScheduleHandler "github.com/m04kA/SMC-AtelierService/internal/api/handlers/get_schedule"
	listOrderItemBookingsHandler "github.com/m04kA/SMC-AtelierService/internal/api/handlers/list_order_item_bookings"
	recordPaymentHandler "github.com/m04kA/SMC-AtelierService/internal/api/handlers/record_payment"
	updateScheduleHandler "github.com/m04kA/SMC-AtelierService/internal/api/handlers/update_schedule"
	"github.com/m04kA/SMC-AtelierService/internal/api/middleware"
	"github.com/m04kA/SMC-AtelierService/internal/domain"
	"github.com/m04kA/SMC-AtelierService/internal/infra/storage/memory"
	"github.com/m04kA/SMC-AtelierService/internal/integrations/notifications"
	bookingsService "github.com/m04kA/SMC-AtelierService/internal/service/bookings"
	ordersService "github.com/m04kA/SMC-AtelierService/internal/service/orders"
	paymentsService "github.com/m04kA/SMC-AtelierService/internal/service/payments"
	scheduleService "github.com/m04kA/SMC-AtelierService/internal/service/schedule"
	advanceOrderItemUC "github.com/m04kA/SMC-AtelierService/internal/usecase/advance_order_item"
	checkoutOrderItemUC "github.com/m04kA/SMC-AtelierService/internal/usecase/checkout_order_item"
	createBookingUC "github.com/m04kA/SMC-AtelierService/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/m04kA/SMC-AtelierService/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-AtelierService/pkg/logger"
	"github.com/m04kA/SMC-AtelierService/pkg/metrics"
	"github.com/m04kA/SMC-AtelierService/pkg/types"
)

var (
	sunday = "2026-10-25"
	monday = "2026-10-26"

	admin = domain.Principal{UserID: 1, Role: domain.RoleAdmin}
	alice = domain.Principal{UserID: 10, Role: domain.RoleCustomer}
	bob   = domain.Principal{UserID: 11, Role: domain.RoleCustomer}
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type fakeCatalog struct{}

func (fakeCatalog) GetPrice(_ context.Context, serviceType string, _ map[string]string) (float64, error) {
	if serviceType == string(domain.ServiceDryCleaning) {
		return 250, nil
	}
	return 0, nil
}

type recordingNotifier struct {
	mu     sync.Mutex
	events []notifications.Event
}

func (n *recordingNotifier) Notify(event notifications.Event) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, event)
}

func (n *recordingNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.events)
}

type testServer struct {
	router   *mux.Router
	store    *memory.Store
	notifier *recordingNotifier
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	store := memory.NewStore()
	log := logger.NewNop()
	clock := fixedClock{now: time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)}
	loc := time.UTC
	var collector *metrics.Metrics
	notifier := &recordingNotifier{}

	templates := map[domain.ServiceType]domain.SlotTemplate{
		domain.ServiceRepair: domain.NewSlotTemplate(domain.ServiceRepair, 1,
			[]types.TimeString{types.MustTimeString("09:00"), types.MustTimeString("13:00")}),
		domain.ServiceDryCleaning: domain.NewSlotTemplate(domain.ServiceDryCleaning, 2,
			[]types.TimeString{types.MustTimeString("10:00")}),
	}

	scheduleSvc := scheduleService.NewService(store.Schedule(), store.TxManager(), log)
	bookingSvc := bookingsService.NewService(store.Bookings(), store.Slots(), store.Orders(), store.TxManager(), log)
	orderSvc := ordersService.NewService(store.Orders(), store.Payments(), bookingSvc, store.TxManager(), log)
	paymentSvc := paymentsService.NewService(store.Payments(), store.Orders(), store.TxManager(), log)

	createBooking := createBookingUC.NewUseCase(store.Schedule(), store.Slots(), store.Bookings(), store.Orders(),
		templates, store.TxManager(), collector, clock, log)
	getSlots := getAvailableSlotsUC.NewUseCase(store.Schedule(), store.Slots(), templates, clock, log)
	checkout := checkoutOrderItemUC.NewUseCase(store.Orders(), fakeCatalog{}, createBooking, store.TxManager(), log)
	advance := advanceOrderItemUC.NewUseCase(store.Orders(), store.Payments(), store.TxManager(), notifier, collector, log)

	router := NewRouter(Handlers{
		GetAvailableSlots:     getAvailableSlotsHandler.NewHandler(getSlots, loc, log),
		CreateBooking:         createBookingHandler.NewHandler(createBooking, loc, log),
		GetBooking:            getBookingHandler.NewHandler(bookingSvc, log),
		CancelBooking:         cancelBookingHandler.NewHandler(bookingSvc, log),
		GetDayStatus:          getDayStatusHandler.NewHandler(scheduleSvc, loc, log),
		GetSchedule:           getScheduleHandler.NewHandler(scheduleSvc, log),
		UpdateSchedule:        updateScheduleHandler.NewHandler(scheduleSvc, log),
		CheckoutOrderItem:     checkoutOrderItemHandler.NewHandler(checkout, loc, log),
		GetOrderItem:          getOrderItemHandler.NewHandler(orderSvc, log),
		ListOrderItemBookings: listOrderItemBookingsHandler.NewHandler(bookingSvc, log),
		GetNextStatus:         getNextStatusHandler.NewHandler(orderSvc, log),
		AdvanceOrderItem:      advanceOrderItemHandler.NewHandler(advance, log),
		CancelOrderItem:       cancelOrderItemHandler.NewHandler(orderSvc, log),
		DeleteOrderItem:       deleteOrderItemHandler.NewHandler(orderSvc, log),
		RecordPayment:         recordPaymentHandler.NewHandler(paymentSvc, log),
		GetBalance:            getBalanceHandler.NewHandler(paymentSvc, log),
	}, MetricsOptions{})

	srv := &testServer{router: router, store: store, notifier: notifier}

	// Пн-Сб открыто, воскресенье закрыто
	days := make([]map[string]interface{}, 0, 6)
	for d := 1; d <= 6; d++ {
		days = append(days, map[string]interface{}{"dayOfWeek": d, "isOpen": true})
	}
	rec := srv.do(t, http.MethodPut, "/api/v1/schedule", &admin, map[string]interface{}{"days": days})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	return srv
}

func (s *testServer) do(t *testing.T, method, path string, p *domain.Principal, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if p != nil {
		req.Header.Set(middleware.HeaderUserID, strconv.FormatInt(p.UserID, 10))
		req.Header.Set(middleware.HeaderUserRole, string(p.Role))
	}

	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func (s *testServer) checkout(t *testing.T, p domain.Principal, serviceType, date, timeOfDay string) *httptest.ResponseRecorder {
	t.Helper()
	body := map[string]interface{}{"serviceType": serviceType}
	if date != "" {
		body["appointment"] = map[string]string{"date": date, "timeOfDay": timeOfDay}
	}
	return s.do(t, http.MethodPost, "/api/v1/order-items", &p, body)
}

func (s *testServer) advance(t *testing.T, p domain.Principal, itemID int64, target string, price *float64) *httptest.ResponseRecorder {
	t.Helper()
	body := map[string]interface{}{"targetStatus": target}
	if price != nil {
		body["finalPrice"] = *price
	}
	return s.do(t, http.MethodPost, fmt.Sprintf("/api/v1/order-items/%d/advance", itemID), &p, body)
}

func itemID(t *testing.T, rec *httptest.ResponseRecorder) int64 {
	t.Helper()
	return int64(decode(t, rec)["id"].(float64))
}

func TestAvailableSlotsAndDayStatus(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.do(t, http.MethodGet, "/api/v1/services/repair/available-slots?date="+monday, nil, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body := decode(t, rec)
	assert.Equal(t, true, body["isShopOpen"])
	slots := body["slots"].([]interface{})
	require.Len(t, slots, 2)
	first := slots[0].(map[string]interface{})
	assert.Equal(t, "09:00", first["timeOfDay"])
	assert.Equal(t, "9:00 AM", first["displayTime"])
	assert.Equal(t, "available", first["status"])

	rec = srv.do(t, http.MethodGet, "/api/v1/services/repair/available-slots?date="+sunday, nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body = decode(t, rec)
	assert.Equal(t, false, body["isShopOpen"])
	assert.Empty(t, body["slots"])

	rec = srv.do(t, http.MethodGet, "/api/v1/services/tailoring/available-slots?date="+monday, nil, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = srv.do(t, http.MethodGet, "/api/v1/services/repair/available-slots?date=26.10.2026", nil, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = srv.do(t, http.MethodGet, "/api/v1/schedule/is-open?date="+sunday, nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, false, decode(t, rec)["isOpen"])

	rec = srv.do(t, http.MethodGet, "/api/v1/schedule", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode(t, rec)["days"], domain.DaysInWeek)
}

func TestUpdateScheduleRequiresAdmin(t *testing.T) {
	srv := newTestServer(t)

	body := map[string]interface{}{"days": []map[string]interface{}{{"dayOfWeek": 0, "isOpen": true}}}
	rec := srv.do(t, http.MethodPut, "/api/v1/schedule", &alice, body)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = srv.do(t, http.MethodPut, "/api/v1/schedule", nil, body)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	dup := map[string]interface{}{"days": []map[string]interface{}{
		{"dayOfWeek": 1, "isOpen": true},
		{"dayOfWeek": 1, "isOpen": false},
	}}
	rec = srv.do(t, http.MethodPut, "/api/v1/schedule", &admin, dup)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCheckoutBooksSlotAtomically(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.checkout(t, alice, "repair", monday, "13:00")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	body := decode(t, rec)
	assert.Equal(t, "pending", body["approvalStatus"])
	booking := body["booking"].(map[string]interface{})
	assert.Equal(t, "1:00 PM", booking["displayTime"])

	// Емкость слота 1: второй клиент получает 409, позиция не сохраняется
	rec = srv.checkout(t, bob, "repair", monday, "13:00")
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = srv.checkout(t, bob, "repair", sunday, "13:00")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = srv.checkout(t, bob, "repair", monday, "13:30")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = srv.do(t, http.MethodGet, "/api/v1/services/repair/available-slots?date="+monday, nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	slots := decode(t, rec)["slots"].([]interface{})
	afternoon := slots[1].(map[string]interface{})
	assert.Equal(t, "full", afternoon["status"])
	assert.Equal(t, false, afternoon["isClickable"])

	assert.Equal(t, 1, srv.store.Bookings().Count())
}

func TestBookingCancelRestoresSlot(t *testing.T) {
	srv := newTestServer(t)

	id := itemID(t, srv.checkout(t, alice, "repair", "", ""))

	rec := srv.do(t, http.MethodPost, "/api/v1/bookings", &alice, map[string]interface{}{
		"serviceType": "repair",
		"date":        monday,
		"timeOfDay":   "09:00",
		"orderItemId": id,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	bookingID := int64(decode(t, rec)["id"].(float64))

	path := fmt.Sprintf("/api/v1/bookings/%d", bookingID)

	rec = srv.do(t, http.MethodGet, path, &bob, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = srv.do(t, http.MethodGet, fmt.Sprintf("/api/v1/order-items/%d/bookings", id), &alice, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode(t, rec)["bookings"], 1)

	rec = srv.do(t, http.MethodDelete, path, &alice, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "available", decode(t, rec)["slotStatus"])

	rec = srv.do(t, http.MethodDelete, path, &alice, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestOrderItemLifecycleWithPayments(t *testing.T) {
	srv := newTestServer(t)
	price := 1000.0

	id := itemID(t, srv.checkout(t, alice, "repair", "", ""))
	base := fmt.Sprintf("/api/v1/order-items/%d", id)

	rec := srv.do(t, http.MethodGet, base+"/next-status", &alice, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "price_confirmation", decode(t, rec)["nextStatus"])

	// Клиент не выставляет цену
	rec = srv.advance(t, alice, id, "price_confirmation", &price)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = srv.advance(t, admin, id, "price_confirmation", &price)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, 1, srv.notifier.count())

	// Устаревший target
	rec = srv.advance(t, admin, id, "price_confirmation", nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = srv.advance(t, alice, id, "accepted", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	for _, target := range []string{"confirmed", "ready_for_pickup"} {
		rec = srv.advance(t, admin, id, target, nil)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	}

	rec = srv.do(t, http.MethodGet, base+"/next-status", &alice, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	next := decode(t, rec)
	assert.Nil(t, next["nextStatus"])
	assert.Equal(t, true, next["blockedByPayment"])

	rec = srv.advance(t, admin, id, "completed", nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = srv.do(t, http.MethodPost, base+"/payments", &admin, map[string]interface{}{"amount": 0})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = srv.do(t, http.MethodPost, base+"/payments", &alice, map[string]interface{}{"amount": 1000})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = srv.do(t, http.MethodPost, base+"/payments", &admin, map[string]interface{}{"amount": 999.995})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, true, decode(t, rec)["isFullyPaid"])

	rec = srv.advance(t, admin, id, "completed", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Nil(t, decode(t, rec)["nextStatus"])

	rec = srv.do(t, http.MethodGet, base+"/balance", &alice, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode(t, rec)["payments"], 1)

	rec = srv.do(t, http.MethodDelete, base, &alice, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = srv.do(t, http.MethodDelete, base, &admin, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = srv.do(t, http.MethodGet, base, &admin, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCancelOrderItemReleasesBooking(t *testing.T) {
	srv := newTestServer(t)

	id := itemID(t, srv.checkout(t, alice, "dry_cleaning", monday, "10:00"))
	base := fmt.Sprintf("/api/v1/order-items/%d", id)

	rec := srv.do(t, http.MethodPost, base+"/cancel", &bob, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = srv.do(t, http.MethodDelete, base, &admin, nil)
	assert.Equal(t, http.StatusConflict, rec.Code, "only completed items can be deleted")

	rec = srv.do(t, http.MethodPost, base+"/cancel", &alice, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, float64(1), decode(t, rec)["releasedBookings"])
	assert.Equal(t, 0, srv.store.Bookings().Count())

	rec = srv.do(t, http.MethodPost, base+"/cancel", &alice, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestWalkInIsAdminOnly(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.do(t, http.MethodPost, "/api/v1/order-items", &alice, map[string]interface{}{
		"serviceType": "repair",
		"orderType":   "walk_in",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = srv.do(t, http.MethodPost, "/api/v1/order-items", &admin, map[string]interface{}{
		"customerId":  alice.UserID,
		"serviceType": "repair",
		"orderType":   "walk_in",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	id := itemID(t, rec)

	rec = srv.do(t, http.MethodGet, fmt.Sprintf("/api/v1/order-items/%d/next-status", id), &alice, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "accepted", decode(t, rec)["nextStatus"])
}
