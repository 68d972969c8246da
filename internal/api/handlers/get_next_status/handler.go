package get_next_status

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

// Handle GET /api/v1/order-items/{itemId}/next-status
// nextStatus = null, если переход сейчас недоступен (конец цепочки или неоплаченный остаток)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	itemID, err := handlers.PathInt64(r, "itemId")
	if err != nil {
		h.logger.Warn("GET /order-items/{id}/next-status - Invalid item ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidItemID)
		return
	}

	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		h.logger.Warn("GET /order-items/{id}/next-status - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	result, err := h.service.GetNextStatus(r.Context(), itemID, principal)
	if err != nil {
		switch {
		case errors.Is(err, orders.ErrOrderItemNotFound):
			h.logger.Warn("GET /order-items/{id}/next-status - Item not found: item_id=%d", itemID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, orders.ErrAccessDenied):
			h.logger.Warn("GET /order-items/{id}/next-status - Access denied: item_id=%d, user_id=%d", itemID, principal.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /order-items/{id}/next-status - Failed: item_id=%d, error=%v", itemID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
