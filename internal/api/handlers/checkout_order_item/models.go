package checkout_order_item

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-AtelierService/internal/domain"
	checkoutOrderItem "github.com/m04kA/SMC-AtelierService/internal/usecase/checkout_order_item"
	"github.com/m04kA/SMC-AtelierService/pkg/types"
)

// CheckoutRequest HTTP request model
type CheckoutRequest struct {
	CustomerID  int64               `json:"customerId,omitempty"` // только для администратора
	ServiceType string              `json:"serviceType"`
	OrderType   string              `json:"orderType,omitempty"` // online | walk_in
	Selections  map[string]string   `json:"selections,omitempty"`
	Appointment *AppointmentRequest `json:"appointment,omitempty"`
}

// AppointmentRequest запись на прием вместе с оформлением
type AppointmentRequest struct {
	Date      string `json:"date"`
	TimeOfDay string `json:"timeOfDay"`
}

// OrderItemResponse HTTP response model
type OrderItemResponse struct {
	ID             int64            `json:"id"`
	CustomerID     int64            `json:"customerId"`
	ServiceType    string           `json:"serviceType"`
	OrderType      string           `json:"orderType"`
	ApprovalStatus string           `json:"approvalStatus"`
	FinalPrice     float64          `json:"finalPrice"`
	CreatedAt      string           `json:"createdAt"`
	Booking        *BookingResponse `json:"booking,omitempty"`
}

// BookingResponse созданное бронирование
type BookingResponse struct {
	ID          int64  `json:"id"`
	Date        string `json:"date"`
	TimeOfDay   string `json:"timeOfDay"`
	DisplayTime string `json:"displayTime"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CheckoutRequest) ToUseCaseRequest(principal domain.Principal, loc *time.Location) (*checkoutOrderItem.Request, error) {
	req := &checkoutOrderItem.Request{
		Principal:   principal,
		CustomerID:  r.CustomerID,
		ServiceType: r.ServiceType,
		OrderType:   r.OrderType,
		Selections:  r.Selections,
	}

	if r.Appointment != nil {
		date, err := time.ParseInLocation(domain.DateFormat, r.Appointment.Date, loc)
		if err != nil {
			return nil, fmt.Errorf("appointment date: %w", err)
		}
		timeOfDay, err := types.NewTimeStringFromString(r.Appointment.TimeOfDay)
		if err != nil {
			return nil, fmt.Errorf("appointment time: %w", err)
		}
		req.Appointment = &checkoutOrderItem.Appointment{Date: date, TimeOfDay: timeOfDay}
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *checkoutOrderItem.Response) *OrderItemResponse {
	out := &OrderItemResponse{
		ID:             resp.ID,
		CustomerID:     resp.CustomerID,
		ServiceType:    string(resp.ServiceType),
		OrderType:      string(resp.OrderType),
		ApprovalStatus: string(resp.ApprovalStatus),
		FinalPrice:     resp.FinalPrice,
		CreatedAt:      resp.CreatedAt.Format(time.RFC3339),
	}
	if b := resp.Booking; b != nil {
		out.Booking = &BookingResponse{
			ID:          b.ID,
			Date:        b.Date.Format(domain.DateFormat),
			TimeOfDay:   b.TimeOfDay.String(),
			DisplayTime: b.TimeOfDay.Display(),
		}
	}
	return out
}
