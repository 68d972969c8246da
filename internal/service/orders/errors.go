package orders

import "errors"

var (
	// ErrOrderItemNotFound возвращается, когда позиция заказа не найдена
	ErrOrderItemNotFound = errors.New("orders: order item not found")

	// ErrCannotCancel возвращается, когда позицию нельзя отменить в текущем состоянии
	ErrCannotCancel = errors.New("orders: order item cannot be cancelled")

	// ErrCannotDelete возвращается при удалении незавершенной позиции
	ErrCannotDelete = errors.New("orders: only completed order items can be deleted")

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = errors.New("orders: access denied")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("orders: internal error")
)
