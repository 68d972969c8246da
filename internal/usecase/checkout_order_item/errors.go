package checkout_order_item

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуги нет в каталоге
	ErrServiceNotFound = errors.New("checkout_order_item: service not found in catalog")

	// ErrShopClosed возвращается, когда мастерская закрыта в дату записи
	ErrShopClosed = errors.New("checkout_order_item: shop is closed on this date")

	// ErrInvalidSlot возвращается, когда время записи не входит в шаблон услуги
	ErrInvalidSlot = errors.New("checkout_order_item: time is not offered for this service")

	// ErrSlotFull возвращается, когда все места слота заняты
	ErrSlotFull = errors.New("checkout_order_item: slot is full")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("checkout_order_item: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("checkout_order_item: internal error")
)
