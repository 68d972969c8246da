package delete_order_item

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
	msgForbidden     = "удалять позиции может только администратор"
	msgCannotDelete  = "удалить можно только завершенную позицию"
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

// Handle DELETE /api/v1/order-items/{itemId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	itemID, err := handlers.PathInt64(r, "itemId")
	if err != nil {
		h.logger.Warn("DELETE /order-items/{id} - Invalid item ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidItemID)
		return
	}

	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		h.logger.Warn("DELETE /order-items/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	if err := h.service.Delete(r.Context(), itemID, principal); err != nil {
		switch {
		case errors.Is(err, orders.ErrOrderItemNotFound):
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, orders.ErrAccessDenied):
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, orders.ErrCannotDelete):
			handlers.RespondConflict(w, msgCannotDelete)

		default:
			h.logger.Error("DELETE /order-items/{id} - Failed to delete: item_id=%d, error=%v", itemID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /order-items/{id} - Item deleted: item_id=%d, user_id=%d", itemID, principal.UserID)
	handlers.RespondNoContent(w)
}
