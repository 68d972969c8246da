package checkout_order_item

import (
	"context"

	"github.com/m04kA/SMC-AtelierService/internal/domain"
	"github.com/m04kA/SMC-AtelierService/internal/usecase/create_booking"
)

// OrderRepository интерфейс репозитория позиций заказа
type OrderRepository interface {
	Create(ctx context.Context, item *domain.OrderItem) (*domain.OrderItem, error)
}

// CatalogClient интерфейс клиента каталога услуг
type CatalogClient interface {
	GetPrice(ctx context.Context, serviceType string, selections map[string]string) (float64, error)
}

// Booker бронирование слота; в транзакции из ctx выполняется как ее часть
type Booker interface {
	Execute(ctx context.Context, req *create_booking.Request) (*create_booking.Response, error)
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
