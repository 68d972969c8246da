package bookings

import (
	"context"

	"github.com/m04kA/SMC-AtelierService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	Delete(ctx context.Context, id int64) (*domain.Booking, error)
	ListByOrderItem(ctx context.Context, orderItemID int64) ([]*domain.Booking, error)
}

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	DecrementBooked(ctx context.Context, key domain.SlotKey) (*domain.Slot, error)
}

// OrderRepository интерфейс репозитория позиций заказа
type OrderRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.OrderItem, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
