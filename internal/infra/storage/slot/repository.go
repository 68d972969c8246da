package slot

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-AtelierService/internal/domain"
	"github.com/m04kA/SMC-AtelierService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AtelierService/pkg/psqlbuilder"
)

// Repository репозиторий слотов. booked_count меняется только условными UPDATE,
// поэтому 0 <= booked_count <= capacity держится на уровне одной строки
// без блокировки всей таблицы.
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория слотов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// EnsureSlots создает отсутствующие строки слотов. Существующие строки не меняются:
// их booked_count и capacity остаются прежними.
func (r *Repository) EnsureSlots(ctx context.Context, slots []*domain.Slot) error {
	if len(slots) == 0 {
		return nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Insert("slots").
		Columns("service_type", "slot_date", "time_of_day", "capacity", "booked_count")
	for _, s := range slots {
		builder = builder.Values(s.ServiceType, s.Date.Format(domain.DateFormat), s.TimeOfDay, s.Capacity, 0)
	}

	query, args, err := builder.
		Suffix("ON CONFLICT (service_type, slot_date, time_of_day) DO NOTHING").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: EnsureSlots - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: EnsureSlots - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// GetSlots возвращает слоты услуги на дату, упорядоченные по времени
func (r *Repository) GetSlots(ctx context.Context, serviceType domain.ServiceType, date time.Time) ([]*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("service_type", "slot_date", "time_of_day", "capacity", "booked_count").
		From("slots").
		Where(squirrel.Eq{
			"service_type": serviceType,
			"slot_date":    date.Format(domain.DateFormat),
		}).
		OrderBy("time_of_day ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetSlots - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetSlots - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	slots := make([]*domain.Slot, 0)
	for rows.Next() {
		var s domain.Slot
		if err := rows.Scan(&s.ServiceType, &s.Date, &s.TimeOfDay, &s.Capacity, &s.BookedCount); err != nil {
			return nil, fmt.Errorf("%w: GetSlots - scan row: %v", ErrScanRow, err)
		}
		slots = append(slots, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetSlots - rows error: %v", ErrScanRow, err)
	}

	return slots, nil
}

// IncrementBooked занимает одно место в слоте.
// Проверка вместимости и увеличение выполняются одним UPDATE: из конкурентных
// запросов на последнее место успешным будет ровно один.
func (r *Repository) IncrementBooked(ctx context.Context, key domain.SlotKey) (*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("slots").
		Set("booked_count", squirrel.Expr("booked_count + 1")).
		Where(keyCondition(key)).
		Where("booked_count < capacity").
		Suffix("RETURNING service_type, slot_date, time_of_day, capacity, booked_count").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: IncrementBooked - build update query: %v", ErrBuildQuery, err)
	}

	var s domain.Slot
	err = executor.QueryRowContext(ctx, query, args...).
		Scan(&s.ServiceType, &s.Date, &s.TimeOfDay, &s.Capacity, &s.BookedCount)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, r.explainMiss(ctx, key, ErrSlotFull)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: IncrementBooked - execute update: %v", ErrExecQuery, err)
	}

	return &s, nil
}

// DecrementBooked освобождает одно место в слоте
func (r *Repository) DecrementBooked(ctx context.Context, key domain.SlotKey) (*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("slots").
		Set("booked_count", squirrel.Expr("booked_count - 1")).
		Where(keyCondition(key)).
		Where("booked_count > 0").
		Suffix("RETURNING service_type, slot_date, time_of_day, capacity, booked_count").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: DecrementBooked - build update query: %v", ErrBuildQuery, err)
	}

	var s domain.Slot
	err = executor.QueryRowContext(ctx, query, args...).
		Scan(&s.ServiceType, &s.Date, &s.TimeOfDay, &s.Capacity, &s.BookedCount)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, r.explainMiss(ctx, key, ErrSlotEmpty)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: DecrementBooked - execute update: %v", ErrExecQuery, err)
	}

	return &s, nil
}

// explainMiss различает отсутствующую строку и невыполненное условие UPDATE
func (r *Repository) explainMiss(ctx context.Context, key domain.SlotKey, conditionErr error) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("1").
		From("slots").
		Where(keyCondition(key)).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: explainMiss - build select query: %v", ErrBuildQuery, err)
	}

	var one int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrSlotNotFound
	}
	if err != nil {
		return fmt.Errorf("%w: explainMiss - execute query: %v", ErrExecQuery, err)
	}

	return conditionErr
}

func keyCondition(key domain.SlotKey) squirrel.Eq {
	return squirrel.Eq{
		"service_type": key.ServiceType,
		"slot_date":    key.Date,
		"time_of_day":  key.TimeOfDay,
	}
}
