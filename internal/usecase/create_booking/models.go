package create_booking

import (
	"time"

	"github.com/m04kA/SMC-AtelierService/internal/domain"
	"github.com/m04kA/SMC-AtelierService/pkg/types"
)

// Request модель запроса на бронирование слота
type Request struct {
	Principal   domain.Principal
	ServiceType domain.ServiceType
	Date        time.Time        // Дата бронирования (без времени)
	TimeOfDay   types.TimeString // Время слота из шаблона услуги, например "10:30"
	OrderItemID int64
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID          int64
	ServiceType domain.ServiceType
	Date        time.Time
	TimeOfDay   types.TimeString
	OrderItemID int64
	Capacity    int
	BookedCount int // Занятость слота после бронирования
	CreatedAt   time.Time
}
