package cancel_order_item

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AtelierService/internal/api/handlers"
	"github.com/m04kA/SMC-AtelierService/internal/api/middleware"
	"github.com/m04kA/SMC-AtelierService/internal/service/orders"
)

const (
	msgInvalidItemID = "некорректный ID позиции заказа"
	msgMissingUserID = "отсутствует ID пользователя"
	msgNotFound      = "позиция заказа не найдена"
	msgForbidden     = "доступ запрещен"
	msgCannotCancel  = "позицию нельзя отменить в текущем состоянии"
)

type Handler struct {
	service OrderService
	logger  Logger
}

func NewHandler(service OrderService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/order-items/{itemId}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	itemID, err := handlers.PathInt64(r, "itemId")
	if err != nil {
		h.logger.Warn("POST /order-items/{id}/cancel - Invalid item ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidItemID)
		return
	}

	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		h.logger.Warn("POST /order-items/{id}/cancel - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	result, err := h.service.Cancel(r.Context(), itemID, principal)
	if err != nil {
		switch {
		case errors.Is(err, orders.ErrOrderItemNotFound):
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, orders.ErrAccessDenied):
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, orders.ErrCannotCancel):
			handlers.RespondConflict(w, msgCannotCancel)

		default:
			h.logger.Error("POST /order-items/{id}/cancel - Failed to cancel: item_id=%d, error=%v", itemID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /order-items/{id}/cancel - Item cancelled: item_id=%d, user_id=%d", itemID, principal.UserID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
