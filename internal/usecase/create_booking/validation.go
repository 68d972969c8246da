package create_booking

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-AtelierService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if _, err := domain.ParseServiceType(string(req.ServiceType)); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if req.OrderItemID <= 0 {
		return fmt.Errorf("%w: orderItemID must be positive", ErrInvalidInput)
	}

	// Проверяем, что дата не является нулевой
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	// Проверяем, что время указано
	if req.TimeOfDay.IsZero() {
		return fmt.Errorf("%w: timeOfDay is required", ErrInvalidInput)
	}

	if err := req.TimeOfDay.Validate(); err != nil {
		return fmt.Errorf("%w: invalid timeOfDay: %v", ErrInvalidInput, err)
	}

	return nil
}

// validateOrderItem проверяет, что позицию можно бронировать от имени пользователя
func validateOrderItem(item *domain.OrderItem, req *Request) error {
	if item.ServiceType != req.ServiceType {
		return fmt.Errorf("%w: item=%s, slot=%s", ErrServiceMismatch, item.ServiceType, req.ServiceType)
	}

	if item.ApprovalStatus.IsTerminal() {
		return ErrOrderItemClosed
	}

	if !req.Principal.IsAdmin() && item.CustomerID != req.Principal.UserID {
		return ErrForbidden
	}

	return nil
}

// isDateInPast проверяет, что дата раньше сегодняшнего дня
func isDateInPast(date, now time.Time) bool {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return dateOnly.Before(nowOnly)
}
