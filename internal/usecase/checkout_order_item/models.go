package checkout_order_item

import (
	"time"

	"github.com/m04kA/SMC-AtelierService/internal/domain"
	"github.com/m04kA/SMC-AtelierService/pkg/types"
)

// Request модель запроса на оформление позиции заказа
type Request struct {
	Principal   domain.Principal
	CustomerID  int64 // Администратор оформляет заказ в мастерской за клиента; для клиента игнорируется
	ServiceType string
	OrderType   string
	Selections  map[string]string // Опции для расчета цены в каталоге
	Appointment *Appointment      // Запись на прием (опционально)
}

// Appointment выбранный слот
type Appointment struct {
	Date      time.Time
	TimeOfDay types.TimeString
}

// Response модель ответа с созданной позицией
type Response struct {
	ID             int64
	CustomerID     int64
	ServiceType    domain.ServiceType
	OrderType      domain.OrderType
	ApprovalStatus domain.ApprovalStatus
	FinalPrice     float64
	CreatedAt      time.Time
	Booking        *Booking
}

// Booking бронирование, созданное вместе с позицией
type Booking struct {
	ID        int64
	Date      time.Time
	TimeOfDay types.TimeString
}
