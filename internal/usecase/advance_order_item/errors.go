package advance_order_item

import "errors"

var (
	// ErrOrderItemNotFound возвращается, когда позиция заказа не найдена
	ErrOrderItemNotFound = errors.New("advance_order_item: order item not found")

	// ErrInvalidTransition возвращается, когда целевое состояние не является следующим
	// (устаревшие данные у клиента или попытка перескочить шаг)
	ErrInvalidTransition = errors.New("advance_order_item: transition is not available")

	// ErrPaymentRequired возвращается при попытке завершить позицию с непогашенным остатком
	ErrPaymentRequired = errors.New("advance_order_item: order item is not fully paid")

	// ErrForbidden возвращается, когда роль пользователя не позволяет выполнить переход
	ErrForbidden = errors.New("advance_order_item: transition is not permitted for this user")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("advance_order_item: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("advance_order_item: internal error")
)
