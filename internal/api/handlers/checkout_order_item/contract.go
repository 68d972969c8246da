package checkout_order_item

import (
	"context"

	checkoutOrderItem "github.com/m04kA/SMC-AtelierService/internal/usecase/checkout_order_item"
)

type CheckoutUseCase interface {
	Execute(ctx context.Context, req *checkoutOrderItem.Request) (*checkoutOrderItem.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
