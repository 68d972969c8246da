package advance_order_item

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AtelierService/internal/domain"
	orderRepo "github.com/m04kA/SMC-AtelierService/internal/infra/storage/order"
	"github.com/m04kA/SMC-AtelierService/internal/integrations/notifications"
	"github.com/m04kA/SMC-AtelierService/pkg/keymutex"
)

// UseCase use case перевода позиции заказа в следующее состояние.
// Единственный способ изменить approval_status, кроме отмены.
type UseCase struct {
	orderRepo    OrderRepository
	paymentRepo  PaymentRepository
	txManager    TransactionManager
	notifier     Notifier
	metrics      Metrics
	locks        *keymutex.KeyMutex[int64]
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	orderRepo OrderRepository,
	paymentRepo PaymentRepository,
	txManager TransactionManager,
	notifier Notifier,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		orderRepo:    orderRepo,
		paymentRepo:  paymentRepo,
		txManager:    txManager,
		notifier:     notifier,
		metrics:      metrics,
		locks:        keymutex.New[int64](),
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет переход.
// Запросы к одной позиции выполняются по очереди: внутри процесса через мьютекс позиции,
// между экземплярами через SELECT ... FOR UPDATE. Остаток к оплате читается в той же
// транзакции, поэтому проверка оплаты и запись состояния не разделены гонкой.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("AdvanceOrderItem: user=%d, role=%s, item=%d, target=%s",
		req.Principal.UserID, req.Principal.Role, req.OrderItemID, req.TargetStatus)

	// 1. Валидация входных данных
	target, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("AdvanceOrderItem: validation failed: %v", err)
		return nil, err
	}

	unlock := uc.locks.Lock(req.OrderItemID)
	defer unlock()

	var previous domain.ApprovalStatus
	var updated *domain.OrderItem
	var paid float64

	// 2. Блокируем позицию, проверяем переход и записываем новое состояние
	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		item, err := uc.orderRepo.GetByIDForUpdate(txCtx, req.OrderItemID)
		if err != nil {
			if errors.Is(err, orderRepo.ErrOrderItemNotFound) {
				uc.logger.Warn("AdvanceOrderItem: order item id=%d not found", req.OrderItemID)
				return ErrOrderItemNotFound
			}
			uc.logger.Error("AdvanceOrderItem: failed to get order item id=%d: %v", req.OrderItemID, err)
			return fmt.Errorf("%w: failed to get order item: %v", ErrInternal, err)
		}
		previous = item.ApprovalStatus

		if err := checkPermission(req.Principal, item, target); err != nil {
			uc.logger.Warn("AdvanceOrderItem: %v", err)
			return err
		}

		if err := checkFinalPrice(item, req.FinalPrice); err != nil {
			uc.logger.Warn("AdvanceOrderItem: %v", err)
			return err
		}

		paid, err = uc.paymentRepo.SumByOrderItem(txCtx, item.ID)
		if err != nil {
			uc.logger.Error("AdvanceOrderItem: failed to sum payments for item id=%d: %v", item.ID, err)
			return fmt.Errorf("%w: failed to sum payments: %v", ErrInternal, err)
		}
		balance := domain.Balance{FinalPrice: item.FinalPrice, AmountPaid: paid}

		if err := item.CanTransition(target, balance.Remaining()); err != nil {
			if errors.Is(err, domain.ErrBalanceOutstanding) {
				uc.logger.Warn("AdvanceOrderItem: item id=%d cannot be completed, remaining %.2f",
					item.ID, balance.Remaining())
				return fmt.Errorf("%w: remaining %.2f", ErrPaymentRequired, balance.Remaining())
			}
			uc.logger.Warn("AdvanceOrderItem: item id=%d: %v", item.ID, err)
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, item.ApprovalStatus, target)
		}

		updated, err = uc.orderRepo.UpdateStatus(txCtx, item.ID, target, req.FinalPrice, uc.timeProvider.Now())
		if err != nil {
			uc.logger.Error("AdvanceOrderItem: failed to update item id=%d: %v", item.ID, err)
			return fmt.Errorf("%w: failed to update status: %v", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("AdvanceOrderItem: item id=%d moved %s -> %s", updated.ID, previous, updated.ApprovalStatus)
	if uc.metrics != nil {
		uc.metrics.ObserveTransition(string(updated.ServiceType), string(updated.ApprovalStatus))
	}

	// 3. Уведомление только после фиксации транзакции; ошибка отправки не влияет на переход
	if updated.ApprovalStatus == domain.StatusPriceConfirmation && uc.notifier != nil {
		uc.notifier.Notify(notifications.Event{
			Kind:        notifications.KindPriceConfirmation,
			OrderItemID: updated.ID,
			CustomerID:  updated.CustomerID,
			ServiceType: string(updated.ServiceType),
			Status:      string(updated.ApprovalStatus),
			FinalPrice:  updated.FinalPrice,
			OccurredAt:  uc.timeProvider.Now(),
		})
	}

	balance := domain.Balance{FinalPrice: updated.FinalPrice, AmountPaid: paid}
	response := &Response{
		ID:               updated.ID,
		ServiceType:      updated.ServiceType,
		OrderType:        updated.OrderType,
		PreviousStatus:   previous,
		ApprovalStatus:   updated.ApprovalStatus,
		FinalPrice:       updated.FinalPrice,
		AmountPaid:       paid,
		RemainingBalance: balance.Remaining(),
	}
	if next, ok := updated.NextStatus(balance.Remaining()); ok {
		response.NextStatus = &next
	}

	return response, nil
}
