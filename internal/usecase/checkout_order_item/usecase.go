package checkout_order_item

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AtelierService/internal/domain"
	catalogClient "github.com/m04kA/SMC-AtelierService/internal/integrations/catalogservice"
	"github.com/m04kA/SMC-AtelierService/internal/usecase/create_booking"
)

// UseCase use case оформления позиции заказа с необязательной записью на прием
type UseCase struct {
	orderRepo OrderRepository
	catalog   CatalogClient
	booker    Booker
	txManager TransactionManager
	logger    Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	orderRepo OrderRepository,
	catalog CatalogClient,
	booker Booker,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		orderRepo: orderRepo,
		catalog:   catalog,
		booker:    booker,
		txManager: txManager,
		logger:    logger,
	}
}

// Execute создает позицию в состоянии pending с ценой из каталога.
// Если указана запись, позиция и бронирование создаются одной транзакцией:
// при занятом слоте или закрытом дне позиция не сохраняется.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CheckoutOrderItem: user=%d, service=%s, orderType=%s, appointment=%t",
		req.Principal.UserID, req.ServiceType, req.OrderType, req.Appointment != nil)

	// 1. Валидация входных данных
	v, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("CheckoutOrderItem: validation failed: %v", err)
		return nil, err
	}

	// 2. Цена из каталога запрашивается до транзакции
	price, err := uc.catalog.GetPrice(ctx, string(v.serviceType), req.Selections)
	if err != nil {
		switch {
		case errors.Is(err, catalogClient.ErrServiceNotFound):
			uc.logger.Warn("CheckoutOrderItem: service=%s not found in catalog", v.serviceType)
			return nil, ErrServiceNotFound
		case errors.Is(err, catalogClient.ErrInvalidSelections):
			uc.logger.Warn("CheckoutOrderItem: catalog rejected selections: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		default:
			uc.logger.Error("CheckoutOrderItem: failed to get price: %v", err)
			return nil, fmt.Errorf("%w: failed to get price: %v", ErrInternal, err)
		}
	}

	var item *domain.OrderItem
	var booking *create_booking.Response

	// 3. Позиция и бронирование - одной транзакцией
	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		item, err = uc.orderRepo.Create(txCtx, &domain.OrderItem{
			CustomerID:     v.customerID,
			ServiceType:    v.serviceType,
			OrderType:      v.orderType,
			ApprovalStatus: domain.StatusPending,
			FinalPrice:     price,
		})
		if err != nil {
			uc.logger.Error("CheckoutOrderItem: failed to create order item: %v", err)
			return fmt.Errorf("%w: failed to create order item: %v", ErrInternal, err)
		}

		if req.Appointment == nil {
			return nil
		}

		booking, err = uc.booker.Execute(txCtx, &create_booking.Request{
			Principal:   req.Principal,
			ServiceType: v.serviceType,
			Date:        req.Appointment.Date,
			TimeOfDay:   req.Appointment.TimeOfDay,
			OrderItemID: item.ID,
		})
		if err != nil {
			return translateBookingError(err)
		}

		return nil
	})
	if err != nil {
		uc.logger.Warn("CheckoutOrderItem: checkout rolled back: %v", err)
		return nil, err
	}

	uc.logger.Info("CheckoutOrderItem: order item id=%d created, price=%.2f", item.ID, item.FinalPrice)

	response := &Response{
		ID:             item.ID,
		CustomerID:     item.CustomerID,
		ServiceType:    item.ServiceType,
		OrderType:      item.OrderType,
		ApprovalStatus: item.ApprovalStatus,
		FinalPrice:     item.FinalPrice,
		CreatedAt:      item.CreatedAt,
	}
	if booking != nil {
		response.Booking = &Booking{ID: booking.ID, Date: booking.Date, TimeOfDay: booking.TimeOfDay}
	}

	return response, nil
}

func translateBookingError(err error) error {
	switch {
	case errors.Is(err, create_booking.ErrShopClosed):
		return ErrShopClosed
	case errors.Is(err, create_booking.ErrSlotFull):
		return ErrSlotFull
	case errors.Is(err, create_booking.ErrInvalidSlot):
		return ErrInvalidSlot
	case errors.Is(err, create_booking.ErrInvalidInput),
		errors.Is(err, create_booking.ErrInvalidDate):
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	default:
		return fmt.Errorf("%w: booking failed: %v", ErrInternal, err)
	}
}
