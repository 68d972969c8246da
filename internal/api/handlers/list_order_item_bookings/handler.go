package list_order_item_bookings

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AtelierService/internal/api/handlers"
	"github.com/m04kA/SMC-AtelierService/internal/api/middleware"
	"github.com/m04kA/SMC-AtelierService/internal/service/bookings"
)

const (
	msgInvalidItemID     = "некорректный ID позиции заказа"
	msgMissingUserID     = "отсутствует ID пользователя"
	msgOrderItemNotFound = "позиция заказа не найдена"
	msgForbidden         = "доступ запрещен"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/order-items/{itemId}/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	itemID, err := handlers.PathInt64(r, "itemId")
	if err != nil {
		h.logger.Warn("GET /order-items/{id}/bookings - Invalid item ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidItemID)
		return
	}

	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		h.logger.Warn("GET /order-items/{id}/bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	result, err := h.service.ListByOrderItem(r.Context(), itemID, principal)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrOrderItemNotFound):
			h.logger.Warn("GET /order-items/{id}/bookings - Order item not found: item_id=%d", itemID)
			handlers.RespondNotFound(w, msgOrderItemNotFound)

		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("GET /order-items/{id}/bookings - Access denied: item_id=%d, user_id=%d", itemID, principal.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /order-items/{id}/bookings - Failed to list bookings: item_id=%d, error=%v", itemID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /order-items/{id}/bookings - Bookings retrieved: item_id=%d, count=%d", itemID, len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result)
}
