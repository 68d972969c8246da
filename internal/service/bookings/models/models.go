package models

import (
	"github.com/m04kA/SMC-AtelierService/internal/domain"
)

// BookingResponse бронирование в ответе
type BookingResponse struct {
	ID          int64  `json:"id"`
	ServiceType string `json:"serviceType"`
	Date        string `json:"date"`      // YYYY-MM-DD
	TimeOfDay   string `json:"timeOfDay"` // HH:MM
	DisplayTime string `json:"displayTime"`
	OrderItemID int64  `json:"orderItemId"`
	CreatedAt   string `json:"createdAt,omitempty"`
}

// BookingListResponse бронирования позиции заказа
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// CancelResponse результат отмены с занятостью слота после освобождения
type CancelResponse struct {
	BookingID   int64  `json:"bookingId"`
	SlotStatus  string `json:"slotStatus"`
	BookedCount int    `json:"bookedCount"`
	Capacity    int    `json:"capacity"`
}

// FromDomainBooking конвертирует domain.Booking в BookingResponse
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	resp := &BookingResponse{
		ID:          b.ID,
		ServiceType: string(b.ServiceType),
		Date:        b.Date.Format(domain.DateFormat),
		TimeOfDay:   b.TimeOfDay.String(),
		DisplayTime: b.TimeOfDay.Display(),
		OrderItemID: b.OrderItemID,
	}
	if !b.CreatedAt.IsZero() {
		resp.CreatedAt = b.CreatedAt.Format("2006-01-02T15:04:05Z07:00")
	}
	return resp
}

// FromDomainBookingList конвертирует список бронирований
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{Bookings: make([]BookingResponse, 0, len(bookings))}
	for _, b := range bookings {
		resp.Bookings = append(resp.Bookings, *FromDomainBooking(b))
	}
	return resp
}
