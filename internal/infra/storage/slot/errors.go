package slot

import "errors"

var (
	// ErrSlotNotFound возвращается, когда строка слота не существует
	ErrSlotNotFound = errors.New("slot.repository: slot not found")

	// ErrSlotFull возвращается, когда все места слота заняты
	ErrSlotFull = errors.New("slot.repository: slot is full")

	// ErrSlotEmpty возвращается при попытке освободить место в слоте без бронирований
	ErrSlotEmpty = errors.New("slot.repository: slot has no bookings")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("slot.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("slot.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("slot.repository: failed to scan row")
)
