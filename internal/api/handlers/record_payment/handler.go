package record_payment

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AtelierService/internal/api/handlers"
	"github.com/m04kA/SMC-AtelierService/internal/api/middleware"
	"github.com/m04kA/SMC-AtelierService/internal/service/payments"
	"github.com/m04kA/SMC-AtelierService/internal/service/payments/models"
)

const (
	msgInvalidItemID      = "некорректный ID позиции заказа"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidAmount      = "сумма платежа должна быть больше нуля"
	msgNotFound           = "позиция заказа не найдена"
	msgCancelled          = "позиция заказа отменена"
	msgForbidden          = "платежи записывает только администратор"
)

type Handler struct {
	service PaymentService
	logger  Logger
}

func NewHandler(service PaymentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/order-items/{itemId}/payments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	itemID, err := handlers.PathInt64(r, "itemId")
	if err != nil {
		h.logger.Warn("POST /order-items/{id}/payments - Invalid item ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidItemID)
		return
	}

	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		h.logger.Warn("POST /order-items/{id}/payments - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req models.RecordPaymentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /order-items/{id}/payments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.RecordPayment(r.Context(), itemID, principal, &req)
	if err != nil {
		switch {
		case errors.Is(err, payments.ErrInvalidAmount):
			handlers.RespondBadRequest(w, msgInvalidAmount)

		case errors.Is(err, payments.ErrOrderItemNotFound):
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, payments.ErrOrderItemCancelled):
			handlers.RespondConflict(w, msgCancelled)

		case errors.Is(err, payments.ErrAccessDenied):
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("POST /order-items/{id}/payments - Failed to record payment: item_id=%d, error=%v", itemID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /order-items/{id}/payments - Payment recorded: item_id=%d, amount=%.2f, remaining=%.2f",
		itemID, req.Amount, result.RemainingBalance)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
