package order

import (
	"context"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AtelierService/internal/domain"
	"github.com/m04kA/SMC-AtelierService/pkg/dbmetrics"
)

var createdAt = time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)

func sqlPattern(parts ...string) string {
	quoted := make([]string, len(parts))
	for i, p := range parts {
		quoted[i] = regexp.QuoteMeta(p)
	}
	return strings.Join(quoted, ".*")
}

func newMockRepository(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		db.Close()
	})
	return NewRepository(dbmetrics.Wrap(db, nil, "atelier")), mock
}

func itemRows() *sqlmock.Rows {
	return sqlmock.NewRows(orderItemColumns)
}

func TestCreateStoresCanonicalPendingStatus(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery(sqlPattern(
		"INSERT INTO order_items (customer_id,service_type,order_type,approval_status,final_price) VALUES ($1,$2,$3,$4,$5)",
		"RETURNING id, customer_id, service_type, order_type, approval_status, final_price, created_at, updated_at",
	)).
		WithArgs(int64(7), "repair", "online", "pending", 0.0).
		WillReturnRows(itemRows().AddRow(int64(1), int64(7), "repair", "online", "pending", 0.0, createdAt, createdAt))

	item, err := repo.Create(context.Background(), &domain.OrderItem{
		CustomerID:     7,
		ServiceType:    domain.ServiceRepair,
		OrderType:      domain.OrderOnline,
		ApprovalStatus: "pending_review",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), item.ID)
	assert.Equal(t, domain.StatusPending, item.ApprovalStatus)
	assert.Equal(t, createdAt, item.CreatedAt)
}

func TestGetByIDForUpdateLocksRow(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery(sqlPattern("FROM order_items WHERE id = $1 FOR UPDATE")).
		WithArgs(int64(3)).
		WillReturnRows(itemRows().AddRow(int64(3), int64(7), "rental", "walk_in", nil, nil, createdAt, nil))

	item, err := repo.GetByIDForUpdate(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, item.ApprovalStatus, "NULL status reads as pending")
	assert.Zero(t, item.FinalPrice)
	assert.True(t, item.UpdatedAt.IsZero())
	assert.True(t, item.IsWalkIn())
}

func TestGetByIDNotFound(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery(sqlPattern("SELECT id, customer_id", "FROM order_items WHERE id = $1") + "$").
		WithArgs(int64(404)).
		WillReturnRows(itemRows())

	_, err := repo.GetByID(context.Background(), 404)
	assert.ErrorIs(t, err, ErrOrderItemNotFound)
}

func TestUpdateStatus(t *testing.T) {
	t.Run("with final price", func(t *testing.T) {
		repo, mock := newMockRepository(t)
		price := 1500.0

		mock.ExpectQuery(sqlPattern(
			"UPDATE order_items SET approval_status = $1, updated_at = $2, final_price = $3 WHERE id = $4",
			"RETURNING id",
		)).
			WithArgs("price_confirmation", sqlmock.AnyArg(), price, int64(5)).
			WillReturnRows(itemRows().AddRow(int64(5), int64(7), "customization", "online", "price_confirmation", price, createdAt, createdAt))

		item, err := repo.UpdateStatus(context.Background(), 5, domain.StatusPriceConfirmation, &price, createdAt)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusPriceConfirmation, item.ApprovalStatus)
		assert.Equal(t, price, item.FinalPrice)
	})

	t.Run("missing item", func(t *testing.T) {
		repo, mock := newMockRepository(t)

		mock.ExpectQuery(sqlPattern("UPDATE order_items SET approval_status = $1, updated_at = $2 WHERE id = $3")).
			WithArgs("cancelled", sqlmock.AnyArg(), int64(9)).
			WillReturnRows(itemRows())

		_, err := repo.UpdateStatus(context.Background(), 9, domain.StatusCancelled, nil, createdAt)
		assert.ErrorIs(t, err, ErrOrderItemNotFound)
	})
}

func TestDeleteMissingItem(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectExec(sqlPattern("DELETE FROM order_items WHERE id = $1")).
		WithArgs(int64(9)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, repo.Delete(context.Background(), 9), ErrOrderItemNotFound)
}

func TestDeleteExistingItem(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectExec(sqlPattern("DELETE FROM order_items WHERE id = $1")).
		WithArgs(int64(2)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.Delete(context.Background(), 2))
}
