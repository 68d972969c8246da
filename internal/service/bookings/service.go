package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AtelierService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-AtelierService/internal/infra/storage/booking"
	orderRepo "github.com/m04kA/SMC-AtelierService/internal/infra/storage/order"
	"github.com/m04kA/SMC-AtelierService/internal/service/bookings/models"
)

// Service сервис для работы с бронированиями
type Service struct {
	bookingRepo BookingRepository
	slotRepo    SlotRepository
	orderRepo   OrderRepository
	txManager   TransactionManager
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	slotRepo SlotRepository,
	orderRepo OrderRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		slotRepo:    slotRepo,
		orderRepo:   orderRepo,
		txManager:   txManager,
		logger:      logger,
	}
}

// GetByID получает бронирование по ID.
// Клиент видит только бронирования своих позиций заказа.
func (s *Service) GetByID(ctx context.Context, id int64, principal domain.Principal) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for user=%d", id, principal.UserID)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if err := s.checkAccess(ctx, booking.OrderItemID, principal); err != nil {
		return nil, err
	}

	return models.FromDomainBooking(booking), nil
}

// ListByOrderItem бронирования позиции заказа
func (s *Service) ListByOrderItem(ctx context.Context, orderItemID int64, principal domain.Principal) (*models.BookingListResponse, error) {
	if err := s.checkAccess(ctx, orderItemID, principal); err != nil {
		return nil, err
	}

	bookings, err := s.bookingRepo.ListByOrderItem(ctx, orderItemID)
	if err != nil {
		s.logger.Error("ListByOrderItem: repository error for item=%d: %v", orderItemID, err)
		return nil, fmt.Errorf("%w: ListByOrderItem - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBookingList(bookings), nil
}

// Cancel отменяет бронирование: удаление строки и уменьшение booked_count
// выполняются одной транзакцией. Повторная отмена возвращает ErrBookingNotFound.
func (s *Service) Cancel(ctx context.Context, id int64, principal domain.Principal) (*models.CancelResponse, error) {
	s.logger.Info("Cancel: user=%d cancels booking id=%d", principal.UserID, id)

	var slot *domain.Slot

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		booking, err := s.bookingRepo.GetByID(txCtx, id)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				s.logger.Warn("Cancel: booking id=%d not found", id)
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: Cancel - get booking: %v", ErrInternal, err)
		}

		if err := s.checkAccess(txCtx, booking.OrderItemID, principal); err != nil {
			return err
		}

		// Удаление с RETURNING решает гонку двух отмен: строку получит только одна
		deleted, err := s.bookingRepo.Delete(txCtx, id)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				s.logger.Warn("Cancel: booking id=%d already cancelled", id)
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: Cancel - delete booking: %v", ErrInternal, err)
		}

		slot, err = s.slotRepo.DecrementBooked(txCtx, deleted.SlotKey())
		if err != nil {
			return fmt.Errorf("%w: Cancel - release slot: %v", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		if errors.Is(err, ErrInternal) {
			s.logger.Error("Cancel: booking id=%d: %v", id, err)
		}
		return nil, err
	}

	s.logger.Info("Cancel: booking id=%d cancelled, slot %d/%d", id, slot.BookedCount, slot.Capacity)

	return &models.CancelResponse{
		BookingID:   id,
		SlotStatus:  string(slot.Status()),
		BookedCount: slot.BookedCount,
		Capacity:    slot.Capacity,
	}, nil
}

// ReleaseByOrderItem освобождает все бронирования позиции заказа (отмена и удаление позиции).
// Вызывается внутри транзакции вызывающего.
func (s *Service) ReleaseByOrderItem(ctx context.Context, orderItemID int64) (int, error) {
	bookings, err := s.bookingRepo.ListByOrderItem(ctx, orderItemID)
	if err != nil {
		return 0, fmt.Errorf("%w: ReleaseByOrderItem - list bookings: %v", ErrInternal, err)
	}

	for _, b := range bookings {
		if _, err := s.bookingRepo.Delete(ctx, b.ID); err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				continue
			}
			return 0, fmt.Errorf("%w: ReleaseByOrderItem - delete booking id=%d: %v", ErrInternal, b.ID, err)
		}
		if _, err := s.slotRepo.DecrementBooked(ctx, b.SlotKey()); err != nil {
			return 0, fmt.Errorf("%w: ReleaseByOrderItem - release slot: %v", ErrInternal, err)
		}
	}

	if len(bookings) > 0 {
		s.logger.Info("ReleaseByOrderItem: released %d bookings of item=%d", len(bookings), orderItemID)
	}
	return len(bookings), nil
}

// checkAccess администратор видит все, клиент - только свои позиции
func (s *Service) checkAccess(ctx context.Context, orderItemID int64, principal domain.Principal) error {
	if principal.IsAdmin() {
		return nil
	}

	item, err := s.orderRepo.GetByID(ctx, orderItemID)
	if err != nil {
		if errors.Is(err, orderRepo.ErrOrderItemNotFound) {
			return ErrOrderItemNotFound
		}
		return fmt.Errorf("%w: checkAccess - get order item: %v", ErrInternal, err)
	}

	if item.CustomerID != principal.UserID {
		s.logger.Warn("checkAccess: user=%d denied access to item=%d", principal.UserID, orderItemID)
		return ErrAccessDenied
	}
	return nil
}
