package get_available_slots

import "errors"

var (
	// ErrInvalidDate возвращается для даты в прошлом
	ErrInvalidDate = errors.New("get_available_slots: invalid date")

	// ErrServiceNotConfigured возвращается, когда для типа услуги нет шаблона слотов
	ErrServiceNotConfigured = errors.New("get_available_slots: no slot template for service type")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_available_slots: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_available_slots: internal error")
)
