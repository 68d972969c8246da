package delete_order_item

import (
	"context"

	"github.com/m04kA/SMC-AtelierService/internal/domain"
)

type OrderService interface {
	Delete(ctx context.Context, id int64, principal domain.Principal) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
