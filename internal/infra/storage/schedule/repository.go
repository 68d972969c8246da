package schedule

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AtelierService/internal/domain"
	"github.com/m04kA/SMC-AtelierService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AtelierService/pkg/psqlbuilder"
)

// Repository репозиторий недельного расписания мастерской
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписания
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetWeek читает все строки расписания. Отсутствующие дни остаются в Week неизвестными
// и считаются закрытыми.
func (r *Repository) GetWeek(ctx context.Context) (domain.Week, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("day_of_week", "is_open").
		From("schedule_days").
		OrderBy("day_of_week ASC").
		ToSql()
	if err != nil {
		return domain.Week{}, fmt.Errorf("%w: GetWeek - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return domain.Week{}, fmt.Errorf("%w: GetWeek - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	days := make([]domain.ScheduleDay, 0, domain.DaysInWeek)
	for rows.Next() {
		var dayOfWeek int
		var isOpen bool
		if err := rows.Scan(&dayOfWeek, &isOpen); err != nil {
			return domain.Week{}, fmt.Errorf("%w: GetWeek - scan row: %v", ErrScanRow, err)
		}
		days = append(days, domain.ScheduleDay{DayOfWeek: time.Weekday(dayOfWeek), IsOpen: isOpen})
	}
	if err := rows.Err(); err != nil {
		return domain.Week{}, fmt.Errorf("%w: GetWeek - rows error: %v", ErrScanRow, err)
	}

	return domain.NewWeek(days), nil
}

// ReplaceWeek записывает все строки расписания одним upsert.
// Ожидает нормализованный набор из 7 дней (domain.NormalizeWeek).
func (r *Repository) ReplaceWeek(ctx context.Context, days []domain.ScheduleDay) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Insert("schedule_days").
		Columns("day_of_week", "is_open")
	for _, day := range days {
		builder = builder.Values(int(day.DayOfWeek), day.IsOpen)
	}

	query, args, err := builder.
		Suffix("ON CONFLICT (day_of_week) DO UPDATE SET is_open = EXCLUDED.is_open").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceWeek - build upsert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: ReplaceWeek - execute upsert: %v", ErrExecQuery, err)
	}

	return nil
}
