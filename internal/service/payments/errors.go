package payments

import "errors"

var (
	// ErrInvalidAmount возвращается для неположительной суммы платежа
	ErrInvalidAmount = errors.New("payments: amount must be positive")

	// ErrOrderItemNotFound возвращается, когда позиция заказа не найдена
	ErrOrderItemNotFound = errors.New("payments: order item not found")

	// ErrOrderItemCancelled возвращается при оплате отмененной позиции
	ErrOrderItemCancelled = errors.New("payments: order item is cancelled")

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = errors.New("payments: access denied")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("payments: internal error")
)
