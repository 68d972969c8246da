package get_available_slots

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-AtelierService/internal/domain"
	"github.com/m04kA/SMC-AtelierService/pkg/types"
)

// UseCase use case для получения слотов с текущей занятостью
type UseCase struct {
	scheduleRepo ScheduleRepository
	slotRepo     SlotRepository
	templates    map[domain.ServiceType]domain.SlotTemplate
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	scheduleRepo ScheduleRepository,
	slotRepo SlotRepository,
	templates map[domain.ServiceType]domain.SlotTemplate,
	timeProvider TimeProvider,
	logger Logger,
) *UseCase {
	if timeProvider == nil {
		timeProvider = &RealTimeProvider{}
	}
	return &UseCase{
		scheduleRepo: scheduleRepo,
		slotRepo:     slotRepo,
		templates:    templates,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Execute выполняет use case получения слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: service=%s, date=%s", req.ServiceType, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	response := &Response{
		ServiceType: req.ServiceType,
		Date:        domain.DateOnly(req.Date),
		Slots:       []Slot{},
	}

	// 2. Сначала расписание: закрытый день не зависит от даты в прошлом и шаблона.
	// Отсутствующий день недели считается закрытым.
	week, err := uc.scheduleRepo.GetWeek(ctx)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get schedule: %v", err)
		return nil, fmt.Errorf("%w: failed to get schedule: %v", ErrInternal, err)
	}
	if !week.IsComplete() {
		uc.logger.Warn("GetAvailableSlots: schedule has less than %d days, missing days are closed", domain.DaysInWeek)
	}
	if !week.IsOpen(req.Date) {
		uc.logger.Info("GetAvailableSlots: shop is closed on %s", req.Date.Format(domain.DateFormat))
		return response, nil
	}

	if isDateInPast(req.Date, uc.timeProvider.Now()) {
		uc.logger.Warn("GetAvailableSlots: date %s is in the past", req.Date.Format(domain.DateFormat))
		return nil, ErrInvalidDate
	}

	template, ok := uc.templates[req.ServiceType]
	if !ok {
		uc.logger.Warn("GetAvailableSlots: no slot template for service=%s", req.ServiceType)
		return nil, ErrServiceNotConfigured
	}

	// 3. Материализуем слоты шаблона и читаем текущие счетчики
	if err := uc.slotRepo.EnsureSlots(ctx, template.Materialize(req.Date)); err != nil {
		uc.logger.Error("GetAvailableSlots: failed to ensure slots: %v", err)
		return nil, fmt.Errorf("%w: failed to ensure slots: %v", ErrInternal, err)
	}

	stored, err := uc.slotRepo.GetSlots(ctx, req.ServiceType, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get slots: %v", err)
		return nil, fmt.Errorf("%w: failed to get slots: %v", ErrInternal, err)
	}

	byTime := make(map[types.TimeString]*domain.Slot, len(stored))
	for _, s := range stored {
		byTime[s.TimeOfDay] = s
	}

	// 4. Отдаем только времена шаблона, каждое ровно один раз
	response.IsShopOpen = true
	for _, fresh := range template.Materialize(req.Date) {
		slot := fresh
		if s, ok := byTime[fresh.TimeOfDay]; ok {
			slot = s
		}
		response.Slots = append(response.Slots, Slot{
			TimeOfDay:   slot.TimeOfDay,
			DisplayTime: slot.TimeOfDay.Display(),
			Capacity:    slot.Capacity,
			Available:   slot.Available(),
			Status:      slot.Status(),
			IsClickable: slot.IsClickable(),
		})
	}

	uc.logger.Info("GetAvailableSlots: %d slots for service=%s on %s",
		len(response.Slots), req.ServiceType, req.Date.Format(domain.DateFormat))

	return response, nil
}
