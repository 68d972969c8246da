package checkout_order_item

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/SMC-AtelierService/internal/api/handlers"
	"github.com/m04kA/SMC-AtelierService/internal/api/middleware"
	checkoutOrderItem "github.com/m04kA/SMC-AtelierService/internal/usecase/checkout_order_item"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidAppointment = "некорректная дата или время записи"
	msgServiceNotFound    = "услуга не найдена в каталоге"
	msgShopClosed         = "мастерская закрыта в выбранную дату"
	msgSlotFull           = "на выбранное время мест нет"
	msgInvalidSlot        = "выбранное время недоступно для этой услуги"
	msgInvalidInput       = "некорректные данные заказа"
)

type Handler struct {
	useCase  CheckoutUseCase
	location *time.Location
	logger   Logger
}

func NewHandler(useCase CheckoutUseCase, location *time.Location, logger Logger) *Handler {
	if location == nil {
		location = time.Local
	}
	return &Handler{
		useCase:  useCase,
		location: location,
		logger:   logger,
	}
}

// Handle POST /api/v1/order-items
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		h.logger.Warn("POST /order-items - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CheckoutRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /order-items - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(principal, h.location)
	if err != nil {
		h.logger.Warn("POST /order-items - Invalid appointment: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAppointment)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, checkoutOrderItem.ErrServiceNotFound):
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, checkoutOrderItem.ErrShopClosed):
			handlers.RespondUnprocessable(w, msgShopClosed)

		case errors.Is(err, checkoutOrderItem.ErrSlotFull):
			handlers.RespondConflict(w, msgSlotFull)

		case errors.Is(err, checkoutOrderItem.ErrInvalidSlot):
			handlers.RespondBadRequest(w, msgInvalidSlot)

		case errors.Is(err, checkoutOrderItem.ErrInvalidInput):
			h.logger.Warn("POST /order-items - Invalid input: user_id=%d, error=%v", principal.UserID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /order-items - Failed to checkout: user_id=%d, service=%s, error=%v",
				principal.UserID, req.ServiceType, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /order-items - Order item created: item_id=%d, user_id=%d, booked=%t",
		result.ID, principal.UserID, result.Booking != nil)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
