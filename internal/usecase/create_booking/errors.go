package create_booking

import "errors"

var (
	// ErrShopClosed возвращается, когда мастерская закрыта в указанную дату
	ErrShopClosed = errors.New("create_booking: shop is closed on this date")

	// ErrInvalidSlot возвращается, когда время не входит в шаблон услуги
	ErrInvalidSlot = errors.New("create_booking: time is not offered for this service")

	// ErrSlotFull возвращается, когда все места слота заняты
	ErrSlotFull = errors.New("create_booking: slot is full")

	// ErrInvalidDate возвращается для даты в прошлом
	ErrInvalidDate = errors.New("create_booking: invalid booking date")

	// ErrOrderItemNotFound возвращается, когда позиция заказа не найдена
	ErrOrderItemNotFound = errors.New("create_booking: order item not found")

	// ErrServiceMismatch возвращается, когда тип услуги позиции заказа не совпадает со слотом
	ErrServiceMismatch = errors.New("create_booking: order item belongs to another service type")

	// ErrOrderItemClosed возвращается для позиции в терминальном состоянии
	ErrOrderItemClosed = errors.New("create_booking: order item is completed or cancelled")

	// ErrForbidden возвращается, когда клиент бронирует чужую позицию заказа
	ErrForbidden = errors.New("create_booking: order item belongs to another customer")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
