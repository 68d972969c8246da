package advance_order_item

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AtelierService/internal/domain"
	"github.com/m04kA/SMC-AtelierService/internal/integrations/notifications"
)

// OrderRepository интерфейс репозитория позиций заказа
type OrderRepository interface {
	// GetByIDForUpdate блокирует строку позиции до конца транзакции
	GetByIDForUpdate(ctx context.Context, id int64) (*domain.OrderItem, error)
	UpdateStatus(ctx context.Context, id int64, status domain.ApprovalStatus, finalPrice *float64, updatedAt time.Time) (*domain.OrderItem, error)
}

// PaymentRepository интерфейс журнала платежей (только чтение)
type PaymentRepository interface {
	SumByOrderItem(ctx context.Context, orderItemID int64) (float64, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Notifier отправка уведомлений клиенту без ожидания результата
type Notifier interface {
	Notify(event notifications.Event)
}

// Metrics счетчик переходов состояний
type Metrics interface {
	ObserveTransition(serviceType, to string)
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
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
