package orders

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AtelierService/internal/domain"
)

// OrderRepository интерфейс репозитория позиций заказа
type OrderRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.OrderItem, error)
	GetByIDForUpdate(ctx context.Context, id int64) (*domain.OrderItem, error)
	UpdateStatus(ctx context.Context, id int64, status domain.ApprovalStatus, finalPrice *float64, updatedAt time.Time) (*domain.OrderItem, error)
	Delete(ctx context.Context, id int64) error
}

// PaymentRepository интерфейс журнала платежей
type PaymentRepository interface {
	SumByOrderItem(ctx context.Context, orderItemID int64) (float64, error)
}

// BookingReleaser освобождает записи позиции вместе с местами в слотах
type BookingReleaser interface {
	ReleaseByOrderItem(ctx context.Context, orderItemID int64) (int, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
