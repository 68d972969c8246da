package schedule

import (
	"context"

	"github.com/m04kA/SMC-AtelierService/internal/domain"
)

// ScheduleRepository интерфейс репозитория недельного расписания
type ScheduleRepository interface {
	GetWeek(ctx context.Context) (domain.Week, error)
	ReplaceWeek(ctx context.Context, days []domain.ScheduleDay) error
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
