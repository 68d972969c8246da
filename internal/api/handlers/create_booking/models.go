package create_booking

import (
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AtelierService/internal/domain"
	createBooking "github.com/m04kA/SMC-AtelierService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-AtelierService/pkg/types"
)

var (
	errInvalidDate = errors.New("invalid date")
	errInvalidTime = errors.New("invalid time")
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	ServiceType string `json:"serviceType"`
	Date        string `json:"date"`      // "2026-10-26"
	TimeOfDay   string `json:"timeOfDay"` // "13:00"
	OrderItemID int64  `json:"orderItemId"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID          int64  `json:"id"`
	ServiceType string `json:"serviceType"`
	Date        string `json:"date"`
	TimeOfDay   string `json:"timeOfDay"`
	DisplayTime string `json:"displayTime"`
	OrderItemID int64  `json:"orderItemId"`
	Capacity    int    `json:"capacity"`
	BookedCount int    `json:"bookedCount"`
	SlotStatus  string `json:"slotStatus"`
	CreatedAt   string `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(principal domain.Principal, loc *time.Location) (*createBooking.Request, error) {
	date, err := time.ParseInLocation(domain.DateFormat, r.Date, loc)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errInvalidDate, err)
	}

	timeOfDay, err := types.NewTimeStringFromString(r.TimeOfDay)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errInvalidTime, err)
	}

	return &createBooking.Request{
		Principal:   principal,
		ServiceType: domain.ServiceType(r.ServiceType),
		Date:        date,
		TimeOfDay:   timeOfDay,
		OrderItemID: r.OrderItemID,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	slot := domain.Slot{Capacity: resp.Capacity, BookedCount: resp.BookedCount}
	return &BookingResponse{
		ID:          resp.ID,
		ServiceType: string(resp.ServiceType),
		Date:        resp.Date.Format(domain.DateFormat),
		TimeOfDay:   resp.TimeOfDay.String(),
		DisplayTime: resp.TimeOfDay.Display(),
		OrderItemID: resp.OrderItemID,
		Capacity:    resp.Capacity,
		BookedCount: resp.BookedCount,
		SlotStatus:  string(slot.Status()),
		CreatedAt:   resp.CreatedAt.Format(time.RFC3339),
	}
}
