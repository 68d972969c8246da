package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

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
	"github.com/m04kA/SMC-AtelierService/pkg/metrics"
)

// Handlers все HTTP обработчики сервиса
type Handlers struct {
	GetAvailableSlots     *getAvailableSlotsHandler.Handler
	CreateBooking         *createBookingHandler.Handler
	GetBooking            *getBookingHandler.Handler
	CancelBooking         *cancelBookingHandler.Handler
	GetDayStatus          *getDayStatusHandler.Handler
	GetSchedule           *getScheduleHandler.Handler
	UpdateSchedule        *updateScheduleHandler.Handler
	CheckoutOrderItem     *checkoutOrderItemHandler.Handler
	GetOrderItem          *getOrderItemHandler.Handler
	ListOrderItemBookings *listOrderItemBookingsHandler.Handler
	GetNextStatus         *getNextStatusHandler.Handler
	AdvanceOrderItem      *advanceOrderItemHandler.Handler
	CancelOrderItem       *cancelOrderItemHandler.Handler
	DeleteOrderItem       *deleteOrderItemHandler.Handler
	RecordPayment         *recordPaymentHandler.Handler
	GetBalance            *getBalanceHandler.Handler
}

// MetricsOptions nil Collector отключает метрики
type MetricsOptions struct {
	Collector *metrics.Metrics
	Path      string
}

// NewRouter настраивает маршруты API
func NewRouter(h Handlers, opts MetricsOptions) *mux.Router {
	r := mux.NewRouter()

	if opts.Collector != nil {
		r.Use(middleware.MetricsMiddleware(opts.Collector))

		// Metrics endpoint (публичный, без аутентификации)
		r.Handle(opts.Path, promhttp.Handler()).Methods(http.MethodGet)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	api.HandleFunc("/services/{serviceType}/available-slots", h.GetAvailableSlots.Handle).Methods(http.MethodGet)
	api.HandleFunc("/schedule/is-open", h.GetDayStatus.Handle).Methods(http.MethodGet)
	api.HandleFunc("/schedule", h.GetSchedule.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Расписание (администратор) ---
	protected.HandleFunc("/schedule", h.UpdateSchedule.Handle).Methods(http.MethodPut)

	// --- Бронирования ---
	protected.HandleFunc("/bookings", h.CreateBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}", h.GetBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}", h.CancelBooking.Handle).Methods(http.MethodDelete)

	// --- Позиции заказа ---
	protected.HandleFunc("/order-items", h.CheckoutOrderItem.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/order-items/{itemId}", h.GetOrderItem.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/order-items/{itemId}", h.DeleteOrderItem.Handle).Methods(http.MethodDelete)
	protected.HandleFunc("/order-items/{itemId}/bookings", h.ListOrderItemBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/order-items/{itemId}/next-status", h.GetNextStatus.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/order-items/{itemId}/advance", h.AdvanceOrderItem.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/order-items/{itemId}/cancel", h.CancelOrderItem.Handle).Methods(http.MethodPost)

	// --- Платежи ---
	protected.HandleFunc("/order-items/{itemId}/payments", h.RecordPayment.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/order-items/{itemId}/balance", h.GetBalance.Handle).Methods(http.MethodGet)

	return r
}
