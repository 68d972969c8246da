package get_available_slots

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AtelierService/internal/api/handlers"
	getAvailableSlots "github.com/m04kA/SMC-AtelierService/internal/usecase/get_available_slots"
)

const (
	msgMissingDate          = "дата обязательна"
	msgInvalidDate          = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgDateInPast           = "дата уже прошла"
	msgUnknownServiceType   = "неизвестный тип услуги"
	msgServiceNotConfigured = "для услуги не настроено время приема"
)

type Handler struct {
	useCase  GetAvailableSlotsUseCase
	location *time.Location
	logger   Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, location *time.Location, logger Logger) *Handler {
	if location == nil {
		location = time.Local
	}
	return &Handler{
		useCase:  useCase,
		location: location,
		logger:   logger,
	}
}

// Handle GET /api/v1/services/{serviceType}/available-slots
// Query params: date (required, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	serviceType := mux.Vars(r)["serviceType"]

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /services/{type}/available-slots - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	useCaseReq, err := ToUseCaseRequest(serviceType, dateStr, h.location)
	if err != nil {
		h.logger.Warn("GET /services/{type}/available-slots - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /services/{type}/available-slots - Unknown service type: %s", serviceType)
			handlers.RespondBadRequest(w, msgUnknownServiceType)

		case errors.Is(err, getAvailableSlots.ErrInvalidDate):
			h.logger.Warn("GET /services/{type}/available-slots - Date in the past: %s", dateStr)
			handlers.RespondBadRequest(w, msgDateInPast)

		case errors.Is(err, getAvailableSlots.ErrServiceNotConfigured):
			h.logger.Warn("GET /services/{type}/available-slots - Service not configured: %s", serviceType)
			handlers.RespondNotFound(w, msgServiceNotConfigured)

		default:
			h.logger.Error("GET /services/{type}/available-slots - Failed to get slots: service=%s, date=%s, error=%v",
				serviceType, dateStr, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("GET /services/{type}/available-slots - Slots retrieved: service=%s, date=%s, open=%t, slots_count=%d",
		serviceType, dateStr, result.IsShopOpen, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, response)
}
