package slot

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AtelierService/internal/domain"
	"github.com/m04kA/SMC-AtelierService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AtelierService/pkg/types"
)

var (
	slotDate    = time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC)
	slotColumns = []string{"service_type", "slot_date", "time_of_day", "capacity", "booked_count"}
)

// sqlPattern ищет фрагменты запроса по порядку
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

func testKey() domain.SlotKey {
	return domain.NewSlotKey(domain.ServiceRepair, slotDate, types.MustTimeString("10:30"))
}

func incrementPattern() string {
	return sqlPattern(
		"UPDATE slots SET booked_count = booked_count + 1 WHERE",
		"service_type = $1 AND slot_date = $2 AND time_of_day = $3",
		"AND booked_count < capacity RETURNING service_type, slot_date, time_of_day, capacity, booked_count",
	)
}

func existsPattern() string {
	return sqlPattern("SELECT 1 FROM slots WHERE", "service_type = $1 AND slot_date = $2 AND time_of_day = $3")
}

func TestIncrementBookedReturnsUpdatedRow(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery(incrementPattern()).
		WithArgs("repair", "2026-10-20", "10:30:00").
		WillReturnRows(sqlmock.NewRows(slotColumns).AddRow("repair", slotDate, "10:30:00", int64(2), int64(2)))

	slot, err := repo.IncrementBooked(context.Background(), testKey())
	require.NoError(t, err)
	assert.Equal(t, domain.ServiceRepair, slot.ServiceType)
	assert.Equal(t, "10:30", slot.TimeOfDay.String())
	assert.Equal(t, 2, slot.BookedCount)
	assert.Equal(t, domain.SlotFull, slot.Status())
}

func TestIncrementBookedMissMapping(t *testing.T) {
	tests := []struct {
		name      string
		rowExists bool
		wantErr   error
	}{
		{name: "condition failed on existing row", rowExists: true, wantErr: ErrSlotFull},
		{name: "row does not exist", rowExists: false, wantErr: ErrSlotNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newMockRepository(t)

			mock.ExpectQuery(incrementPattern()).
				WithArgs("repair", "2026-10-20", "10:30:00").
				WillReturnRows(sqlmock.NewRows(slotColumns))

			exists := sqlmock.NewRows([]string{"?column?"})
			if tt.rowExists {
				exists.AddRow(int64(1))
			}
			mock.ExpectQuery(existsPattern()).
				WithArgs("repair", "2026-10-20", "10:30:00").
				WillReturnRows(exists)

			_, err := repo.IncrementBooked(context.Background(), testKey())
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestDecrementBookedOnEmptySlot(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery(sqlPattern(
		"UPDATE slots SET booked_count = booked_count - 1 WHERE",
		"AND booked_count > 0 RETURNING",
	)).
		WithArgs("repair", "2026-10-20", "10:30:00").
		WillReturnRows(sqlmock.NewRows(slotColumns))
	mock.ExpectQuery(existsPattern()).
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}).AddRow(int64(1)))

	_, err := repo.DecrementBooked(context.Background(), testKey())
	assert.ErrorIs(t, err, ErrSlotEmpty)
}

func TestIncrementBookedDriverError(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery(incrementPattern()).WillReturnError(errors.New("connection reset"))

	_, err := repo.IncrementBooked(context.Background(), testKey())
	assert.ErrorIs(t, err, ErrExecQuery)
	assert.NotErrorIs(t, err, sql.ErrNoRows)
}

func TestEnsureSlotsInsertsMissingRowsOnly(t *testing.T) {
	repo, mock := newMockRepository(t)

	tmpl := domain.NewSlotTemplate(domain.ServiceRepair, 2, []types.TimeString{
		types.MustTimeString("09:00"),
		types.MustTimeString("10:30"),
	})

	mock.ExpectExec(sqlPattern(
		"INSERT INTO slots (service_type,slot_date,time_of_day,capacity,booked_count) VALUES",
		"ON CONFLICT (service_type, slot_date, time_of_day) DO NOTHING",
	)).
		WithArgs(
			"repair", "2026-10-20", "09:00:00", 2, 0,
			"repair", "2026-10-20", "10:30:00", 2, 0,
		).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.EnsureSlots(context.Background(), tmpl.Materialize(slotDate)))
	require.NoError(t, repo.EnsureSlots(context.Background(), nil), "empty input issues no query")
}

func TestGetSlotsOrderedByTime(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery(sqlPattern(
		"SELECT service_type, slot_date, time_of_day, capacity, booked_count FROM slots WHERE",
		"ORDER BY time_of_day ASC",
	)).
		WithArgs("repair", "2026-10-20").
		WillReturnRows(sqlmock.NewRows(slotColumns).
			AddRow("repair", slotDate, "09:00:00", int64(2), int64(0)).
			AddRow("repair", slotDate, "10:30:00", int64(2), int64(1)))

	slots, err := repo.GetSlots(context.Background(), domain.ServiceRepair, slotDate)
	require.NoError(t, err)
	require.Len(t, slots, 2)
	assert.Equal(t, domain.SlotAvailable, slots[0].Status())
	assert.Equal(t, domain.SlotLimited, slots[1].Status())
}
