package advance_order_item

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AtelierService/internal/api/handlers"
	"github.com/m04kA/SMC-AtelierService/internal/api/middleware"
	advanceOrderItem "github.com/m04kA/SMC-AtelierService/internal/usecase/advance_order_item"
)

const (
	msgInvalidItemID      = "некорректный ID позиции заказа"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgNotFound           = "позиция заказа не найдена"
	msgInvalidTransition  = "переход недоступен, обновите состояние позиции"
	msgPaymentRequired    = "позицию нельзя завершить, пока она не оплачена"
	msgForbidden          = "переход недоступен для пользователя"
	msgInvalidInput       = "некорректные данные перехода"
)

type Handler struct {
	useCase AdvanceUseCase
	logger  Logger
}

func NewHandler(useCase AdvanceUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/order-items/{itemId}/advance
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	itemID, err := handlers.PathInt64(r, "itemId")
	if err != nil {
		h.logger.Warn("POST /order-items/{id}/advance - Invalid item ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidItemID)
		return
	}

	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		h.logger.Warn("POST /order-items/{id}/advance - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req AdvanceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /order-items/{id}/advance - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(principal, itemID))
	if err != nil {
		switch {
		case errors.Is(err, advanceOrderItem.ErrOrderItemNotFound):
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, advanceOrderItem.ErrInvalidTransition):
			handlers.RespondConflict(w, msgInvalidTransition)

		case errors.Is(err, advanceOrderItem.ErrPaymentRequired):
			handlers.RespondConflict(w, msgPaymentRequired)

		case errors.Is(err, advanceOrderItem.ErrForbidden):
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, advanceOrderItem.ErrInvalidInput):
			h.logger.Warn("POST /order-items/{id}/advance - Invalid input: item_id=%d, error=%v", itemID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /order-items/{id}/advance - Failed: item_id=%d, error=%v", itemID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /order-items/{id}/advance - Item advanced: item_id=%d, %s -> %s",
		itemID, result.PreviousStatus, result.ApprovalStatus)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
