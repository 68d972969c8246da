package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-AtelierService/internal/domain"
	"github.com/m04kA/SMC-AtelierService/pkg/types"
)

// Request модель запроса на получение слотов
type Request struct {
	ServiceType domain.ServiceType
	Date        time.Time // Дата (без времени) в часовом поясе мастерской
}

// Response модель ответа со слотами на дату
type Response struct {
	ServiceType domain.ServiceType
	Date        time.Time
	IsShopOpen  bool   // false - мастерская закрыта, Slots пустой
	Slots       []Slot // Слоты в порядке шаблона
}

// Slot модель слота с текущей занятостью
type Slot struct {
	TimeOfDay   types.TimeString
	DisplayTime string // "9:00 AM"
	Capacity    int
	Available   int
	Status      domain.SlotStatus
	IsClickable bool
}
