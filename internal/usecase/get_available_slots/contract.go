package get_available_slots

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
	// EnsureSlots создает строки слотов при первом обращении к дате
	EnsureSlots(ctx context.Context, slots []*domain.Slot) error
	GetSlots(ctx context.Context, serviceType domain.ServiceType, date time.Time) ([]*domain.Slot, error)
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
