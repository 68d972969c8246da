package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-AtelierService/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-AtelierService/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	ServiceType string         `json:"serviceType"`
	Date        string         `json:"date"`
	IsShopOpen  bool           `json:"isShopOpen"`
	Slots       []SlotResponse `json:"slots"`
}

// SlotResponse слот с занятостью
type SlotResponse struct {
	TimeOfDay   string `json:"timeOfDay"`   // "13:00"
	DisplayTime string `json:"displayTime"` // "1:00 PM"
	Capacity    int    `json:"capacity"`
	Available   int    `json:"available"`
	Status      string `json:"status"` // available | limited | full
	IsClickable bool   `json:"isClickable"`
}

// ToUseCaseRequest конвертирует параметры запроса в модель use case
func ToUseCaseRequest(serviceType, dateStr string, loc *time.Location) (*getAvailableSlots.Request, error) {
	date, err := time.ParseInLocation(domain.DateFormat, dateStr, loc)
	if err != nil {
		return nil, err
	}

	return &getAvailableSlots.Request{
		ServiceType: domain.ServiceType(serviceType),
		Date:        date,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]SlotResponse, 0, len(resp.Slots))
	for _, s := range resp.Slots {
		slots = append(slots, SlotResponse{
			TimeOfDay:   s.TimeOfDay.String(),
			DisplayTime: s.DisplayTime,
			Capacity:    s.Capacity,
			Available:   s.Available,
			Status:      string(s.Status),
			IsClickable: s.IsClickable,
		})
	}

	return &AvailableSlotsResponse{
		ServiceType: string(resp.ServiceType),
		Date:        resp.Date.Format(domain.DateFormat),
		IsShopOpen:  resp.IsShopOpen,
		Slots:       slots,
	}
}
