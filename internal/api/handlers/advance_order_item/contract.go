package advance_order_item

import (
	"context"

	advanceOrderItem "github.com/m04kA/SMC-AtelierService/internal/usecase/advance_order_item"
)

type AdvanceUseCase interface {
	Execute(ctx context.Context, req *advanceOrderItem.Request) (*advanceOrderItem.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
