package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AtelierService/internal/domain"
	orderRepo "github.com/m04kA/SMC-AtelierService/internal/infra/storage/order"
	slotRepo "github.com/m04kA/SMC-AtelierService/internal/infra/storage/slot"
)

// Исходы бронирования для метрики booking_attempts_total
const (
	resultBooked    = "booked"
	resultFull      = "full"
	resultClosed    = "closed"
	resultInvalid   = "invalid"
	resultFailed    = "error"
	resultNotFound  = "not_found"
	resultForbidden = "forbidden"
)

// UseCase use case для бронирования слота
type UseCase struct {
	scheduleRepo ScheduleRepository
	slotRepo     SlotRepository
	bookingRepo  BookingRepository
	orderRepo    OrderRepository
	templates    map[domain.ServiceType]domain.SlotTemplate
	txManager    TransactionManager
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	scheduleRepo ScheduleRepository,
	slotRepo SlotRepository,
	bookingRepo BookingRepository,
	orderRepo OrderRepository,
	templates map[domain.ServiceType]domain.SlotTemplate,
	txManager TransactionManager,
	metrics Metrics,
	timeProvider TimeProvider,
	logger Logger,
) *UseCase {
	if timeProvider == nil {
		timeProvider = &RealTimeProvider{}
	}
	return &UseCase{
		scheduleRepo: scheduleRepo,
		slotRepo:     slotRepo,
		bookingRepo:  bookingRepo,
		orderRepo:    orderRepo,
		templates:    templates,
		txManager:    txManager,
		metrics:      metrics,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Execute выполняет use case бронирования.
// Увеличение booked_count и создание бронирования выполняются в одной транзакции:
// при любой ошибке слот и бронирования остаются в прежнем состоянии.
// Если ctx уже содержит транзакцию (оформление заказа), бронирование становится ее частью.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: user=%d, service=%s, date=%s, time=%s, orderItem=%d",
		req.Principal.UserID, req.ServiceType, req.Date.Format(domain.DateFormat), req.TimeOfDay, req.OrderItemID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		uc.observe(req.ServiceType, resultInvalid)
		return nil, err
	}

	// 2. Закрытый день отклоняется раньше остальных проверок даты и времени
	week, err := uc.scheduleRepo.GetWeek(ctx)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to get schedule: %v", err)
		uc.observe(req.ServiceType, resultFailed)
		return nil, fmt.Errorf("%w: failed to get schedule: %v", ErrInternal, err)
	}
	if !week.IsOpen(req.Date) {
		uc.logger.Warn("CreateBooking: shop is closed on %s", req.Date.Format(domain.DateFormat))
		uc.observe(req.ServiceType, resultClosed)
		return nil, ErrShopClosed
	}

	if isDateInPast(req.Date, uc.timeProvider.Now()) {
		uc.logger.Warn("CreateBooking: date %s is in the past", req.Date.Format(domain.DateFormat))
		uc.observe(req.ServiceType, resultInvalid)
		return nil, ErrInvalidDate
	}

	// 3. Время должно входить в шаблон услуги
	template, ok := uc.templates[req.ServiceType]
	if !ok || !template.Contains(req.TimeOfDay) {
		uc.logger.Warn("CreateBooking: time %s is not offered for service=%s", req.TimeOfDay, req.ServiceType)
		uc.observe(req.ServiceType, resultInvalid)
		return nil, ErrInvalidSlot
	}

	key := domain.NewSlotKey(req.ServiceType, req.Date, req.TimeOfDay)

	var booking *domain.Booking
	var slot *domain.Slot

	// 4. Позиция, вместимость и бронирование - одной транзакцией.
	// Позиция читается с блокировкой: отмена и удаление позиции ждут конца бронирования
	// и освобождают уже созданную запись.
	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		item, err := uc.orderRepo.GetByIDForUpdate(txCtx, req.OrderItemID)
		if err != nil {
			if errors.Is(err, orderRepo.ErrOrderItemNotFound) {
				uc.logger.Warn("CreateBooking: order item id=%d not found", req.OrderItemID)
				return ErrOrderItemNotFound
			}
			uc.logger.Error("CreateBooking: failed to get order item id=%d: %v", req.OrderItemID, err)
			return fmt.Errorf("%w: failed to get order item: %v", ErrInternal, err)
		}

		if err := validateOrderItem(item, req); err != nil {
			uc.logger.Warn("CreateBooking: order item id=%d rejected: %v", req.OrderItemID, err)
			return err
		}

		// Строка слота создается при первом бронировании, если дату еще не запрашивали
		slotRow := &domain.Slot{
			ServiceType: req.ServiceType,
			Date:        domain.DateOnly(req.Date),
			TimeOfDay:   req.TimeOfDay,
			Capacity:    template.Capacity,
		}
		if err := uc.slotRepo.EnsureSlots(txCtx, []*domain.Slot{slotRow}); err != nil {
			uc.logger.Error("CreateBooking: failed to ensure slot: %v", err)
			return fmt.Errorf("%w: failed to ensure slot: %v", ErrInternal, err)
		}

		slot, err = uc.slotRepo.IncrementBooked(txCtx, key)
		if err != nil {
			if errors.Is(err, slotRepo.ErrSlotFull) {
				uc.logger.Warn("CreateBooking: slot %s %s %s is full", req.ServiceType, key.Date, req.TimeOfDay)
				return ErrSlotFull
			}
			uc.logger.Error("CreateBooking: failed to increment slot: %v", err)
			return fmt.Errorf("%w: failed to increment slot: %v", ErrInternal, err)
		}

		booking, err = uc.bookingRepo.Create(txCtx, &domain.Booking{
			ServiceType: req.ServiceType,
			Date:        domain.DateOnly(req.Date),
			TimeOfDay:   req.TimeOfDay,
			OrderItemID: req.OrderItemID,
		})
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		uc.observe(req.ServiceType, resultOf(err))
		if !isBusinessError(err) && !errors.Is(err, ErrInternal) {
			uc.logger.Error("CreateBooking: transaction failed: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrInternal, err)
		}
		return nil, err
	}

	uc.observe(req.ServiceType, resultBooked)
	uc.logger.Info("CreateBooking: booking id=%d created, slot %d/%d", booking.ID, slot.BookedCount, slot.Capacity)

	return &Response{
		ID:          booking.ID,
		ServiceType: booking.ServiceType,
		Date:        booking.Date,
		TimeOfDay:   booking.TimeOfDay,
		OrderItemID: booking.OrderItemID,
		Capacity:    slot.Capacity,
		BookedCount: slot.BookedCount,
		CreatedAt:   booking.CreatedAt,
	}, nil
}

func (uc *UseCase) observe(serviceType domain.ServiceType, result string) {
	if uc.metrics != nil {
		uc.metrics.ObserveBooking(string(serviceType), result)
	}
}

func isBusinessError(err error) bool {
	return errors.Is(err, ErrShopClosed) ||
		errors.Is(err, ErrSlotFull) ||
		errors.Is(err, ErrInvalidSlot) ||
		errors.Is(err, ErrOrderItemNotFound) ||
		errors.Is(err, ErrServiceMismatch) ||
		errors.Is(err, ErrOrderItemClosed) ||
		errors.Is(err, ErrForbidden)
}

func resultOf(err error) string {
	switch {
	case errors.Is(err, ErrSlotFull):
		return resultFull
	case errors.Is(err, ErrShopClosed):
		return resultClosed
	case errors.Is(err, ErrOrderItemNotFound):
		return resultNotFound
	case errors.Is(err, ErrForbidden):
		return resultForbidden
	case isBusinessError(err):
		return resultInvalid
	default:
		return resultFailed
	}
}
