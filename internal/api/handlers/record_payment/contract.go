package record_payment

import (
	"context"

	"github.com/m04kA/SMC-AtelierService/internal/domain"
	"github.com/m04kA/SMC-AtelierService/internal/service/payments/models"
)

type PaymentService interface {
	RecordPayment(ctx context.Context, orderItemID int64, principal domain.Principal, req *models.RecordPaymentRequest) (*models.BalanceResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
