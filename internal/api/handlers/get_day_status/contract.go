package get_day_status

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AtelierService/internal/service/schedule/models"
)

type ScheduleService interface {
	IsOpen(ctx context.Context, date time.Time) (*models.DayStatusResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
