package payments

import (
	"context"

	"github.com/m04kA/SMC-AtelierService/internal/domain"
)

// PaymentRepository интерфейс журнала платежей
type PaymentRepository interface {
	Create(ctx context.Context, payment *domain.PaymentRecord) (*domain.PaymentRecord, error)
	SumByOrderItem(ctx context.Context, orderItemID int64) (float64, error)
	ListByOrderItem(ctx context.Context, orderItemID int64) ([]*domain.PaymentRecord, error)
}

// OrderRepository интерфейс репозитория позиций заказа
type OrderRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.OrderItem, error)
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
