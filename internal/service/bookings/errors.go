package bookings

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено (в том числе уже отменено)
	ErrBookingNotFound = errors.New("bookings: booking not found")

	// ErrOrderItemNotFound возвращается, когда позиция заказа не найдена
	ErrOrderItemNotFound = errors.New("bookings: order item not found")

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = errors.New("bookings: access denied")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("bookings: internal error")
)
