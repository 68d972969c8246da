package create_booking

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/SMC-AtelierService/internal/api/handlers"
	"github.com/m04kA/SMC-AtelierService/internal/api/middleware"
	createBooking "github.com/m04kA/SMC-AtelierService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidDate        = "некорректный формат даты бронирования, ожидается YYYY-MM-DD"
	msgInvalidTime        = "некорректный формат времени, ожидается HH:MM"
	msgShopClosed         = "мастерская закрыта в выбранную дату"
	msgSlotFull           = "на выбранное время мест нет"
	msgInvalidSlot        = "выбранное время недоступно для этой услуги"
	msgInvalidBookingDate = "дата бронирования уже прошла"
	msgOrderItemNotFound  = "позиция заказа не найдена"
	msgServiceMismatch    = "позиция заказа относится к другой услуге"
	msgOrderItemClosed    = "позиция заказа завершена или отменена"
	msgForbidden          = "доступ запрещен"
	msgInvalidInput       = "некорректные данные бронирования"
)

type Handler struct {
	useCase  CreateBookingUseCase
	location *time.Location
	logger   Logger
}

func NewHandler(useCase CreateBookingUseCase, location *time.Location, logger Logger) *Handler {
	if location == nil {
		location = time.Local
	}
	return &Handler{
		useCase:  useCase,
		location: location,
		logger:   logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом даты и времени)
	useCaseReq, err := req.ToUseCaseRequest(principal, h.location)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		if errors.Is(err, errInvalidTime) {
			handlers.RespondBadRequest(w, msgInvalidTime)
		} else {
			handlers.RespondBadRequest(w, msgInvalidDate)
		}
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrShopClosed):
			h.logger.Warn("POST /bookings - Shop closed: user_id=%d, date=%s", principal.UserID, req.Date)
			handlers.RespondUnprocessable(w, msgShopClosed)

		case errors.Is(err, createBooking.ErrSlotFull):
			h.logger.Warn("POST /bookings - Slot full: user_id=%d, service=%s, date=%s, time=%s",
				principal.UserID, req.ServiceType, req.Date, req.TimeOfDay)
			handlers.RespondConflict(w, msgSlotFull)

		case errors.Is(err, createBooking.ErrInvalidSlot):
			h.logger.Warn("POST /bookings - Invalid slot: service=%s, time=%s", req.ServiceType, req.TimeOfDay)
			handlers.RespondBadRequest(w, msgInvalidSlot)

		case errors.Is(err, createBooking.ErrInvalidDate):
			h.logger.Warn("POST /bookings - Date in the past: user_id=%d, date=%s", principal.UserID, req.Date)
			handlers.RespondBadRequest(w, msgInvalidBookingDate)

		case errors.Is(err, createBooking.ErrOrderItemNotFound):
			h.logger.Warn("POST /bookings - Order item not found: item_id=%d", req.OrderItemID)
			handlers.RespondNotFound(w, msgOrderItemNotFound)

		case errors.Is(err, createBooking.ErrServiceMismatch):
			h.logger.Warn("POST /bookings - Service mismatch: item_id=%d, service=%s", req.OrderItemID, req.ServiceType)
			handlers.RespondBadRequest(w, msgServiceMismatch)

		case errors.Is(err, createBooking.ErrOrderItemClosed):
			h.logger.Warn("POST /bookings - Order item closed: item_id=%d", req.OrderItemID)
			handlers.RespondConflict(w, msgOrderItemClosed)

		case errors.Is(err, createBooking.ErrForbidden):
			h.logger.Warn("POST /bookings - Access denied: user_id=%d, item_id=%d", principal.UserID, req.OrderItemID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: user_id=%d, item_id=%d, error=%v",
				principal.UserID, req.OrderItemID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("POST /bookings - Booking created: booking_id=%d, item_id=%d, slot %d/%d",
		result.ID, result.OrderItemID, result.BookedCount, result.Capacity)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
