package models

import (
	"math"
	"time"

	"github.com/m04kA/SMC-AtelierService/internal/domain"
)

// OrderItemResponse позиция заказа в ответе
type OrderItemResponse struct {
	ID             int64   `json:"id"`
	CustomerID     int64   `json:"customerId"`
	ServiceType    string  `json:"serviceType"`
	OrderType      string  `json:"orderType"`
	ApprovalStatus string  `json:"approvalStatus"`
	FinalPrice     float64 `json:"finalPrice"`
	CreatedAt      string  `json:"createdAt"`
	UpdatedAt      string  `json:"updatedAt"`
}

// NextStatusResponse следующее состояние позиции с учетом оплаты
type NextStatusResponse struct {
	OrderItemID      int64   `json:"orderItemId"`
	ServiceType      string  `json:"serviceType"`
	ApprovalStatus   string  `json:"approvalStatus"`
	NextStatus       *string `json:"nextStatus"`
	CanAdvance       bool    `json:"canAdvance"`
	AmountPaid       float64 `json:"amountPaid"`
	RemainingBalance float64 `json:"remainingBalance"`
	// BlockedByPayment позиция ждет оплаты перед completed
	BlockedByPayment bool `json:"blockedByPayment"`
}

// CancelResponse результат отмены позиции
type CancelResponse struct {
	OrderItemID      int64  `json:"orderItemId"`
	ApprovalStatus   string `json:"approvalStatus"`
	ReleasedBookings int    `json:"releasedBookings"`
}

// FromDomain конвертирует доменную модель в DTO
func FromDomain(item *domain.OrderItem) *OrderItemResponse {
	return &OrderItemResponse{
		ID:             item.ID,
		CustomerID:     item.CustomerID,
		ServiceType:    string(item.ServiceType),
		OrderType:      string(item.OrderType),
		ApprovalStatus: string(item.ApprovalStatus),
		FinalPrice:     Round2(item.FinalPrice),
		CreatedAt:      item.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      item.UpdatedAt.Format(time.RFC3339),
	}
}

// Round2 округление суммы до копеек
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
