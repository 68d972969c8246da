package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AtelierService/internal/domain"
)

// ScheduleRepository интерфейс репозитория недельного расписания
type ScheduleRepository interface {
	GetWeek(ctx context.Context) (domain.Week, error)
}

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	EnsureSlots(ctx context.Context, slots []*domain.Slot) error
	// IncrementBooked атомарно проверяет вместимость и занимает место
	IncrementBooked(ctx context.Context, key domain.SlotKey) (*domain.Slot, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
}

// OrderRepository интерфейс репозитория позиций заказа
type OrderRepository interface {
	// GetByIDForUpdate в транзакции блокирует позицию до ее завершения
	GetByIDForUpdate(ctx context.Context, id int64) (*domain.OrderItem, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics счетчик исходов бронирования
type Metrics interface {
	ObserveBooking(serviceType, result string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct {
	Location *time.Location
}

// Now возвращает текущее время в часовом поясе мастерской
func (p *RealTimeProvider) Now() time.Time {
	if p.Location == nil {
		return time.Now()
	}
	return time.Now().In(p.Location)
}
