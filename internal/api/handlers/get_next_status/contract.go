package get_next_status

import (
	"context"

	"github.com/m04kA/SMC-AtelierService/internal/domain"
	"github.com/m04kA/SMC-AtelierService/internal/service/orders/models"
)

type OrderService interface {
	GetNextStatus(ctx context.Context, id int64, principal domain.Principal) (*models.NextStatusResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
