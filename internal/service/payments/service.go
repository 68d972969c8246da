package payments

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/m04kA/SMC-AtelierService/internal/domain"
	orderRepo "github.com/m04kA/SMC-AtelierService/internal/infra/storage/order"
	"github.com/m04kA/SMC-AtelierService/internal/service/payments/models"
)

// Service журнал платежей позиций заказа
type Service struct {
	paymentRepo PaymentRepository
	orderRepo   OrderRepository
	txManager   TransactionManager
	logger      Logger
}

// NewService создает новый экземпляр сервиса платежей
func NewService(
	paymentRepo PaymentRepository,
	orderRepo OrderRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		paymentRepo: paymentRepo,
		orderRepo:   orderRepo,
		txManager:   txManager,
		logger:      logger,
	}
}

// RecordPayment добавляет платеж и возвращает остаток к оплате.
// Платежи записывает администратор (касса мастерской). Переплата допускается
// и пишется в лог как предупреждение.
func (s *Service) RecordPayment(
	ctx context.Context,
	orderItemID int64,
	principal domain.Principal,
	req *models.RecordPaymentRequest,
) (*models.BalanceResponse, error) {
	s.logger.Info("RecordPayment: user=%d, item=%d, amount=%.2f", principal.UserID, orderItemID, req.Amount)

	if !principal.IsAdmin() {
		s.logger.Warn("RecordPayment: user=%d is not an admin", principal.UserID)
		return nil, ErrAccessDenied
	}

	amount, ok := toCents(req.Amount)
	if !ok {
		s.logger.Warn("RecordPayment: invalid amount %v for item=%d", req.Amount, orderItemID)
		return nil, ErrInvalidAmount
	}

	var balance domain.Balance

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		item, err := s.getItem(txCtx, orderItemID)
		if err != nil {
			return err
		}
		if item.ApprovalStatus == domain.StatusCancelled {
			s.logger.Warn("RecordPayment: item=%d is cancelled", orderItemID)
			return ErrOrderItemCancelled
		}

		if _, err := s.paymentRepo.Create(txCtx, &domain.PaymentRecord{
			OrderItemID: orderItemID,
			Amount:      amount,
		}); err != nil {
			return fmt.Errorf("%w: RecordPayment - create payment: %v", ErrInternal, err)
		}

		paid, err := s.paymentRepo.SumByOrderItem(txCtx, orderItemID)
		if err != nil {
			return fmt.Errorf("%w: RecordPayment - sum payments: %v", ErrInternal, err)
		}

		balance = domain.Balance{FinalPrice: item.FinalPrice, AmountPaid: paid}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrInternal) {
			s.logger.Error("RecordPayment: item=%d: %v", orderItemID, err)
		}
		return nil, err
	}

	if balance.IsOverpaid() {
		s.logger.Warn("RecordPayment: item=%d is overpaid by %.2f", orderItemID, -balance.Remaining())
	}

	s.logger.Info("RecordPayment: item=%d paid %.2f of %.2f", orderItemID, balance.AmountPaid, balance.FinalPrice)
	return models.NewBalanceResponse(orderItemID, balance, nil), nil
}

// GetBalance остаток к оплате и история платежей позиции
func (s *Service) GetBalance(ctx context.Context, orderItemID int64, principal domain.Principal) (*models.BalanceResponse, error) {
	var item *domain.OrderItem
	var payments []*domain.PaymentRecord

	err := s.txManager.DoReadOnly(ctx, func(txCtx context.Context) error {
		var err error
		item, err = s.getItem(txCtx, orderItemID)
		if err != nil {
			return err
		}

		if !principal.IsAdmin() && item.CustomerID != principal.UserID {
			s.logger.Warn("GetBalance: user=%d denied access to item=%d", principal.UserID, orderItemID)
			return ErrAccessDenied
		}

		payments, err = s.paymentRepo.ListByOrderItem(txCtx, orderItemID)
		if err != nil {
			s.logger.Error("GetBalance: failed to list payments for item=%d: %v", orderItemID, err)
			return fmt.Errorf("%w: GetBalance - list payments: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	balance := domain.Balance{FinalPrice: item.FinalPrice, AmountPaid: domain.SumPayments(payments)}
	return models.NewBalanceResponse(orderItemID, balance, payments), nil
}

func (s *Service) getItem(ctx context.Context, orderItemID int64) (*domain.OrderItem, error) {
	item, err := s.orderRepo.GetByID(ctx, orderItemID)
	if err != nil {
		if errors.Is(err, orderRepo.ErrOrderItemNotFound) {
			s.logger.Warn("payments: order item id=%d not found", orderItemID)
			return nil, ErrOrderItemNotFound
		}
		return nil, fmt.Errorf("%w: get order item: %v", ErrInternal, err)
	}
	return item, nil
}

// maxCents предел колонки NUMERIC(12,2)
const maxCents = 1e12

// toCents округляет сумму до копеек; сумма должна быть не меньше одной копейки
func toCents(amount float64) (float64, bool) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return 0, false
	}
	cents := math.Round(amount * 100)
	if cents < 1 || cents >= maxCents {
		return 0, false
	}
	return cents / 100, true
}
