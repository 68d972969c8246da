package cancel_order_item

import (
	"context"

	"github.com/m04kA/SMC-AtelierService/internal/domain"
	"github.com/m04kA/SMC-AtelierService/internal/service/orders/models"
)

type OrderService interface {
	Cancel(ctx context.Context, id int64, principal domain.Principal) (*models.CancelResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
