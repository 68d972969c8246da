package advance_order_item

import (
	"github.com/m04kA/SMC-AtelierService/internal/domain"
)

// Request модель запроса на перевод позиции в следующее состояние
type Request struct {
	Principal    domain.Principal
	OrderItemID  int64
	TargetStatus string   // Состояние, которое клиент получил из next-status
	FinalPrice   *float64 // Цена; задается только при выходе из pending
}

// Response модель ответа с новым состоянием позиции
type Response struct {
	ID               int64
	ServiceType      domain.ServiceType
	OrderType        domain.OrderType
	PreviousStatus   domain.ApprovalStatus
	ApprovalStatus   domain.ApprovalStatus
	FinalPrice       float64
	AmountPaid       float64
	RemainingBalance float64
	NextStatus       *domain.ApprovalStatus // nil - дальнейший переход сейчас недоступен
}
