package order

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-AtelierService/internal/domain"
	"github.com/m04kA/SMC-AtelierService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AtelierService/pkg/psqlbuilder"
)

var orderItemColumns = []string{
	"id",
	"customer_id",
	"service_type",
	"order_type",
	"approval_status",
	"final_price",
	"created_at",
	"updated_at",
}

// Repository репозиторий позиций заказа
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория позиций заказа
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает позицию заказа
func (r *Repository) Create(ctx context.Context, item *domain.OrderItem) (*domain.OrderItem, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("order_items").
		Columns("customer_id", "service_type", "order_type", "approval_status", "final_price").
		Values(
			item.CustomerID,
			item.ServiceType,
			item.OrderType,
			domain.NormalizeStatus(string(item.ApprovalStatus)),
			item.FinalPrice,
		).
		Suffix(returningColumns).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	created, err := scanOrderItem(executor.QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return created, nil
}

// GetByID получает позицию заказа по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.OrderItem, error) {
	return r.get(ctx, id, false)
}

// GetByIDForUpdate получает позицию заказа с блокировкой строки до конца транзакции.
// Вне транзакции блокировка снимается сразу после чтения.
func (r *Repository) GetByIDForUpdate(ctx context.Context, id int64) (*domain.OrderItem, error) {
	return r.get(ctx, id, true)
}

func (r *Repository) get(ctx context.Context, id int64, forUpdate bool) (*domain.OrderItem, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(orderItemColumns...).
		From("order_items").
		Where(squirrel.Eq{"id": id})
	if forUpdate {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	item, err := scanOrderItem(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderItemNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan order item: %v", ErrScanRow, err)
	}

	return item, nil
}

// UpdateStatus записывает новое состояние позиции; finalPrice == nil оставляет цену без изменений
func (r *Repository) UpdateStatus(
	ctx context.Context,
	id int64,
	status domain.ApprovalStatus,
	finalPrice *float64,
	updatedAt time.Time,
) (*domain.OrderItem, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Update("order_items").
		Set("approval_status", status).
		Set("updated_at", updatedAt)
	if finalPrice != nil {
		builder = builder.Set("final_price", *finalPrice)
	}

	query, args, err := builder.
		Where(squirrel.Eq{"id": id}).
		Suffix(returningColumns).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	item, err := scanOrderItem(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderItemNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	return item, nil
}

// Delete удаляет позицию заказа
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("order_items").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - rows affected: %v", ErrExecQuery, err)
	}
	if affected == 0 {
		return ErrOrderItemNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanOrderItem читает строку позиции; NULL и устаревшие значения статуса приводятся к pending
func scanOrderItem(row rowScanner) (*domain.OrderItem, error) {
	var item domain.OrderItem
	var status sql.NullString
	var finalPrice sql.NullFloat64
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&item.ID,
		&item.CustomerID,
		&item.ServiceType,
		&item.OrderType,
		&status,
		&finalPrice,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if status.Valid {
		item.ApprovalStatus = domain.NormalizeStatus(status.String)
	} else {
		item.ApprovalStatus = domain.NormalizeStatusPtr(nil)
	}
	item.FinalPrice = finalPrice.Float64
	item.CreatedAt = createdAt.Time
	item.UpdatedAt = updatedAt.Time

	return &item, nil
}

var returningColumns = "RETURNING " + strings.Join(orderItemColumns, ", ")
