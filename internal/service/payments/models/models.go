package models

import (
	"math"

	"github.com/m04kA/SMC-AtelierService/internal/domain"
)

// RecordPaymentRequest запрос на запись платежа
type RecordPaymentRequest struct {
	Amount float64 `json:"amount"`
}

// PaymentResponse платеж в ответе
type PaymentResponse struct {
	ID         int64   `json:"id"`
	Amount     float64 `json:"amount"`
	RecordedAt string  `json:"recordedAt"`
}

// BalanceResponse состояние оплаты позиции заказа
type BalanceResponse struct {
	OrderItemID      int64             `json:"orderItemId"`
	FinalPrice       float64           `json:"finalPrice"`
	AmountPaid       float64           `json:"amountPaid"`
	RemainingBalance float64           `json:"remainingBalance"`
	IsFullyPaid      bool              `json:"isFullyPaid"`
	IsOverpaid       bool              `json:"isOverpaid"`
	Payments         []PaymentResponse `json:"payments,omitempty"`
}

// NewBalanceResponse собирает ответ; суммы округляются до копеек
func NewBalanceResponse(orderItemID int64, balance domain.Balance, payments []*domain.PaymentRecord) *BalanceResponse {
	resp := &BalanceResponse{
		OrderItemID:      orderItemID,
		FinalPrice:       round2(balance.FinalPrice),
		AmountPaid:       round2(balance.AmountPaid),
		RemainingBalance: round2(balance.Remaining()),
		IsFullyPaid:      domain.IsFullyPaid(balance.Remaining()),
		IsOverpaid:       balance.IsOverpaid(),
	}
	for _, p := range payments {
		resp.Payments = append(resp.Payments, PaymentResponse{
			ID:         p.ID,
			Amount:     round2(p.Amount),
			RecordedAt: p.RecordedAt.Format("2006-01-02T15:04:05Z07:00"),
		})
	}
	return resp
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
