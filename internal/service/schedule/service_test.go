package schedule

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AtelierService/internal/domain"
	"github.com/m04kA/SMC-AtelierService/internal/infra/storage/memory"
	"github.com/m04kA/SMC-AtelierService/internal/service/schedule/models"
	"github.com/m04kA/SMC-AtelierService/pkg/logger"
)

var admin = domain.Principal{UserID: 1, Role: domain.RoleAdmin}

func newTestService() *Service {
	store := memory.NewStore()
	return NewService(store.Schedule(), store.TxManager(), logger.NewNop())
}

func TestSetScheduleOmittedDaysClosed(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	resp, err := svc.SetSchedule(ctx, admin, &models.SetScheduleRequest{Days: []models.DayRequest{
		{DayOfWeek: 1, IsOpen: true},
		{DayOfWeek: 6, IsOpen: true},
	}})
	require.NoError(t, err)
	require.Len(t, resp.Days, 7)
	assert.Equal(t, "Sunday", resp.Days[0].DayName)
	assert.False(t, resp.Days[0].IsOpen)
	assert.True(t, resp.Days[1].IsOpen)
	assert.False(t, resp.Days[2].IsOpen)

	monday := time.Date(2026, 10, 26, 0, 0, 0, 0, time.UTC)
	status, err := svc.IsOpen(ctx, monday)
	require.NoError(t, err)
	assert.True(t, status.IsOpen)
	assert.Equal(t, "2026-10-26", status.Date)

	status, err = svc.IsOpen(ctx, monday.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.False(t, status.IsOpen)
}

func TestSetScheduleRejects(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	_, err := svc.SetSchedule(ctx, domain.Principal{UserID: 5, Role: domain.RoleCustomer}, &models.SetScheduleRequest{})
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = svc.SetSchedule(ctx, admin, &models.SetScheduleRequest{Days: []models.DayRequest{{DayOfWeek: 7}}})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.SetSchedule(ctx, admin, &models.SetScheduleRequest{Days: []models.DayRequest{
		{DayOfWeek: 2, IsOpen: true},
		{DayOfWeek: 2, IsOpen: false},
	}})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestSeedIfEmpty(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	require.NoError(t, svc.SeedIfEmpty(ctx, []domain.ScheduleDay{{DayOfWeek: time.Monday, IsOpen: true}}))
	require.NoError(t, svc.SeedIfEmpty(ctx, []domain.ScheduleDay{{DayOfWeek: time.Tuesday, IsOpen: true}}))

	week, err := svc.GetWeek(ctx)
	require.NoError(t, err)
	assert.True(t, week.Days[1].IsOpen)
	assert.False(t, week.Days[2].IsOpen, "existing schedule is not overwritten")
}
