package orders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AtelierService/internal/domain"
	orderRepo "github.com/m04kA/SMC-AtelierService/internal/infra/storage/order"
	"github.com/m04kA/SMC-AtelierService/internal/service/orders/models"
)

// Service операции над позициями заказа вне основного перехода по состояниям
type Service struct {
	orderRepo   OrderRepository
	paymentRepo PaymentRepository
	bookings    BookingReleaser
	txManager   TransactionManager
	logger      Logger
}

// NewService создает новый экземпляр сервиса позиций заказа
func NewService(
	orderRepo OrderRepository,
	paymentRepo PaymentRepository,
	bookings BookingReleaser,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		orderRepo:   orderRepo,
		paymentRepo: paymentRepo,
		bookings:    bookings,
		txManager:   txManager,
		logger:      logger,
	}
}

// GetByID позиция заказа; клиент видит только свои
func (s *Service) GetByID(ctx context.Context, id int64, principal domain.Principal) (*models.OrderItemResponse, error) {
	item, err := s.getItem(ctx, id, principal)
	if err != nil {
		return nil, err
	}
	return models.FromDomain(item), nil
}

// GetNextStatus следующее состояние позиции. Остаток считается по журналу платежей.
func (s *Service) GetNextStatus(ctx context.Context, id int64, principal domain.Principal) (*models.NextStatusResponse, error) {
	var item *domain.OrderItem
	var paid float64

	err := s.txManager.DoReadOnly(ctx, func(txCtx context.Context) error {
		var err error
		item, err = s.getItem(txCtx, id, principal)
		if err != nil {
			return err
		}

		paid, err = s.paymentRepo.SumByOrderItem(txCtx, id)
		if err != nil {
			s.logger.Error("GetNextStatus: failed to sum payments for item=%d: %v", id, err)
			return fmt.Errorf("%w: GetNextStatus - sum payments: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	balance := domain.Balance{FinalPrice: item.FinalPrice, AmountPaid: paid}
	remaining := balance.Remaining()

	resp := &models.NextStatusResponse{
		OrderItemID:      item.ID,
		ServiceType:      string(item.ServiceType),
		ApprovalStatus:   string(item.ApprovalStatus),
		AmountPaid:       models.Round2(paid),
		RemainingBalance: models.Round2(remaining),
	}

	if next, ok := item.NextStatus(remaining); ok {
		str := string(next)
		resp.NextStatus = &str
		resp.CanAdvance = true
	} else if errors.Is(item.CanTransition(domain.StatusCompleted, remaining), domain.ErrBalanceOutstanding) {
		resp.BlockedByPayment = true
	}

	return resp, nil
}

// Cancel переводит позицию в cancelled и освобождает ее записи.
// Клиент отменяет только свою позицию и только из pending, администратор - из любого нетерминального состояния.
func (s *Service) Cancel(ctx context.Context, id int64, principal domain.Principal) (*models.CancelResponse, error) {
	s.logger.Info("Cancel: user=%d, item=%d", principal.UserID, id)

	var released int

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		item, err := s.orderRepo.GetByIDForUpdate(txCtx, id)
		if err != nil {
			if errors.Is(err, orderRepo.ErrOrderItemNotFound) {
				return ErrOrderItemNotFound
			}
			return fmt.Errorf("%w: Cancel - get order item: %v", ErrInternal, err)
		}

		if !principal.IsAdmin() && item.CustomerID != principal.UserID {
			return ErrAccessDenied
		}
		if !item.CanCancel(principal) {
			return fmt.Errorf("%w: status %s", ErrCannotCancel, item.ApprovalStatus)
		}

		if _, err := s.orderRepo.UpdateStatus(txCtx, id, domain.StatusCancelled, nil, time.Now()); err != nil {
			return fmt.Errorf("%w: Cancel - update status: %v", ErrInternal, err)
		}

		released, err = s.bookings.ReleaseByOrderItem(txCtx, id)
		if err != nil {
			return fmt.Errorf("%w: Cancel - release bookings: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrInternal) {
			s.logger.Error("Cancel: item=%d: %v", id, err)
		} else {
			s.logger.Warn("Cancel: item=%d rejected: %v", id, err)
		}
		return nil, err
	}

	s.logger.Info("Cancel: item=%d cancelled, released %d bookings", id, released)

	return &models.CancelResponse{
		OrderItemID:      id,
		ApprovalStatus:   string(domain.StatusCancelled),
		ReleasedBookings: released,
	}, nil
}

// Delete удаляет завершенную позицию (только администратор)
func (s *Service) Delete(ctx context.Context, id int64, principal domain.Principal) error {
	s.logger.Info("Delete: user=%d, item=%d", principal.UserID, id)

	if !principal.IsAdmin() {
		s.logger.Warn("Delete: user=%d is not an admin", principal.UserID)
		return ErrAccessDenied
	}

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		item, err := s.orderRepo.GetByIDForUpdate(txCtx, id)
		if err != nil {
			if errors.Is(err, orderRepo.ErrOrderItemNotFound) {
				return ErrOrderItemNotFound
			}
			return fmt.Errorf("%w: Delete - get order item: %v", ErrInternal, err)
		}

		if !item.CanBeDeleted() {
			return fmt.Errorf("%w: status %s", ErrCannotDelete, item.ApprovalStatus)
		}

		if _, err := s.bookings.ReleaseByOrderItem(txCtx, id); err != nil {
			return fmt.Errorf("%w: Delete - release bookings: %v", ErrInternal, err)
		}

		if err := s.orderRepo.Delete(txCtx, id); err != nil {
			if errors.Is(err, orderRepo.ErrOrderItemNotFound) {
				return ErrOrderItemNotFound
			}
			return fmt.Errorf("%w: Delete - delete order item: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrInternal) {
			s.logger.Error("Delete: item=%d: %v", id, err)
		} else {
			s.logger.Warn("Delete: item=%d rejected: %v", id, err)
		}
		return err
	}

	s.logger.Info("Delete: item=%d deleted", id)
	return nil
}

func (s *Service) getItem(ctx context.Context, id int64, principal domain.Principal) (*domain.OrderItem, error) {
	item, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, orderRepo.ErrOrderItemNotFound) {
			s.logger.Warn("orders: item id=%d not found", id)
			return nil, ErrOrderItemNotFound
		}
		s.logger.Error("orders: failed to get item id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: get order item: %v", ErrInternal, err)
	}

	if !principal.IsAdmin() && item.CustomerID != principal.UserID {
		s.logger.Warn("orders: user=%d denied access to item=%d", principal.UserID, id)
		return nil, ErrAccessDenied
	}
	return item, nil
}
