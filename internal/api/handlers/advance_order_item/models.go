package advance_order_item

import (
	"math"

	"github.com/m04kA/SMC-AtelierService/internal/domain"
	advanceOrderItem "github.com/m04kA/SMC-AtelierService/internal/usecase/advance_order_item"
)

// AdvanceRequest HTTP request model
type AdvanceRequest struct {
	TargetStatus string   `json:"targetStatus"`         // значение nextStatus, полученное клиентом
	FinalPrice   *float64 `json:"finalPrice,omitempty"` // только при выходе из pending
}

// AdvanceResponse HTTP response model
type AdvanceResponse struct {
	ID               int64   `json:"id"`
	ServiceType      string  `json:"serviceType"`
	PreviousStatus   string  `json:"previousStatus"`
	ApprovalStatus   string  `json:"approvalStatus"`
	FinalPrice       float64 `json:"finalPrice"`
	AmountPaid       float64 `json:"amountPaid"`
	RemainingBalance float64 `json:"remainingBalance"`
	NextStatus       *string `json:"nextStatus"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *AdvanceRequest) ToUseCaseRequest(principal domain.Principal, itemID int64) *advanceOrderItem.Request {
	return &advanceOrderItem.Request{
		Principal:    principal,
		OrderItemID:  itemID,
		TargetStatus: r.TargetStatus,
		FinalPrice:   r.FinalPrice,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *advanceOrderItem.Response) *AdvanceResponse {
	out := &AdvanceResponse{
		ID:               resp.ID,
		ServiceType:      string(resp.ServiceType),
		PreviousStatus:   string(resp.PreviousStatus),
		ApprovalStatus:   string(resp.ApprovalStatus),
		FinalPrice:       round2(resp.FinalPrice),
		AmountPaid:       round2(resp.AmountPaid),
		RemainingBalance: round2(resp.RemainingBalance),
	}
	if resp.NextStatus != nil {
		next := string(*resp.NextStatus)
		out.NextStatus = &next
	}
	return out
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
