package payment

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-AtelierService/internal/domain"
	"github.com/m04kA/SMC-AtelierService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AtelierService/pkg/psqlbuilder"
)

// Repository журнал платежей. Записи только добавляются.
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория платежей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create добавляет платеж в журнал
func (r *Repository) Create(ctx context.Context, payment *domain.PaymentRecord) (*domain.PaymentRecord, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("payments").
		Columns("order_item_id", "amount").
		Values(payment.OrderItemID, payment.Amount).
		Suffix("RETURNING id, recorded_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&payment.ID, &payment.RecordedAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return payment, nil
}

// SumByOrderItem сумма всех платежей позиции заказа
func (r *Repository) SumByOrderItem(ctx context.Context, orderItemID int64) (float64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COALESCE(SUM(amount), 0)").
		From("payments").
		Where(squirrel.Eq{"order_item_id": orderItemID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: SumByOrderItem - build select query: %v", ErrBuildQuery, err)
	}

	var sum sql.NullFloat64
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&sum); err != nil {
		return 0, fmt.Errorf("%w: SumByOrderItem - scan sum: %v", ErrScanRow, err)
	}

	return sum.Float64, nil
}

// ListByOrderItem платежи позиции заказа в порядке записи
func (r *Repository) ListByOrderItem(ctx context.Context, orderItemID int64) ([]*domain.PaymentRecord, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "order_item_id", "amount", "recorded_at").
		From("payments").
		Where(squirrel.Eq{"order_item_id": orderItemID}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByOrderItem - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByOrderItem - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	payments := make([]*domain.PaymentRecord, 0)
	for rows.Next() {
		var p domain.PaymentRecord
		if err := rows.Scan(&p.ID, &p.OrderItemID, &p.Amount, &p.RecordedAt); err != nil {
			return nil, fmt.Errorf("%w: ListByOrderItem - scan row: %v", ErrScanRow, err)
		}
		payments = append(payments, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByOrderItem - rows error: %v", ErrScanRow, err)
	}

	return payments, nil
}
