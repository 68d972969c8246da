package domain

import (
	"time"

	"github.com/m04kA/SMC-AtelierService/pkg/types"
)

// Booking подтвержденное бронирование одного места в слоте позицией заказа.
// Бронирование существует тогда и только тогда, когда оно учтено в Slot.BookedCount.
type Booking struct {
	ID          int64
	ServiceType ServiceType
	Date        time.Time
	TimeOfDay   types.TimeString
	OrderItemID int64
	CreatedAt   time.Time
}

func (b *Booking) SlotKey() SlotKey {
	return NewSlotKey(b.ServiceType, b.Date, b.TimeOfDay)
}
