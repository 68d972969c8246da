package schedule

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AtelierService/internal/domain"
	"github.com/m04kA/SMC-AtelierService/internal/service/schedule/models"
)

// Service сервис недельного расписания мастерской
type Service struct {
	repo      ScheduleRepository
	txManager TransactionManager
	logger    Logger
}

// NewService создает новый экземпляр сервиса расписания
func NewService(repo ScheduleRepository, txManager TransactionManager, logger Logger) *Service {
	return &Service{
		repo:      repo,
		txManager: txManager,
		logger:    logger,
	}
}

// IsOpen проверяет, открыта ли мастерская в дату.
// День без строки в расписании считается закрытым.
func (s *Service) IsOpen(ctx context.Context, date time.Time) (*models.DayStatusResponse, error) {
	week, err := s.repo.GetWeek(ctx)
	if err != nil {
		s.logger.Error("IsOpen: failed to get schedule: %v", err)
		return nil, fmt.Errorf("%w: IsOpen - repository error: %v", ErrInternal, err)
	}

	if !week.IsComplete() {
		s.logger.Warn("IsOpen: schedule is incomplete, missing days are treated as closed")
	}

	return &models.DayStatusResponse{
		Date:   date.Format(domain.DateFormat),
		IsOpen: week.IsOpen(date),
	}, nil
}

// GetWeek возвращает расписание на неделю
func (s *Service) GetWeek(ctx context.Context) (*models.ScheduleResponse, error) {
	week, err := s.repo.GetWeek(ctx)
	if err != nil {
		s.logger.Error("GetWeek: failed to get schedule: %v", err)
		return nil, fmt.Errorf("%w: GetWeek - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainWeek(week), nil
}

// SetSchedule заменяет расписание целиком. Доступно только администратору.
func (s *Service) SetSchedule(ctx context.Context, principal domain.Principal, req *models.SetScheduleRequest) (*models.ScheduleResponse, error) {
	s.logger.Info("SetSchedule: user=%d submits %d rows", principal.UserID, len(req.Days))

	if !principal.IsAdmin() {
		s.logger.Warn("SetSchedule: user=%d is not an admin", principal.UserID)
		return nil, ErrAccessDenied
	}

	days, err := domain.NormalizeWeek(req.ToDomainDays())
	if err != nil {
		s.logger.Warn("SetSchedule: invalid rows: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		return s.repo.ReplaceWeek(txCtx, days)
	})
	if err != nil {
		s.logger.Error("SetSchedule: failed to replace schedule: %v", err)
		return nil, fmt.Errorf("%w: SetSchedule - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("SetSchedule: schedule replaced by user=%d", principal.UserID)
	return models.FromDomainWeek(domain.NewWeek(days)), nil
}

// SeedIfEmpty записывает начальное расписание из конфигурации, если в хранилище нет ни одной строки
func (s *Service) SeedIfEmpty(ctx context.Context, initial []domain.ScheduleDay) error {
	week, err := s.repo.GetWeek(ctx)
	if err != nil {
		return fmt.Errorf("%w: SeedIfEmpty - repository error: %v", ErrInternal, err)
	}
	if !week.IsEmpty() {
		return nil
	}

	days, err := domain.NormalizeWeek(initial)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.repo.ReplaceWeek(ctx, days); err != nil {
		return fmt.Errorf("%w: SeedIfEmpty - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("SeedIfEmpty: initial schedule written")
	return nil
}
