package checkout_order_item

import (
	"fmt"

	"github.com/m04kA/SMC-AtelierService/internal/domain"
)

type validated struct {
	customerID  int64
	serviceType domain.ServiceType
	orderType   domain.OrderType
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) (*validated, error) {
	serviceType, err := domain.ParseServiceType(req.ServiceType)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	orderType, err := domain.ParseOrderType(req.OrderType)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	customerID := req.Principal.UserID
	if req.Principal.IsAdmin() && req.CustomerID > 0 {
		customerID = req.CustomerID
	}
	if customerID <= 0 {
		return nil, fmt.Errorf("%w: customerID must be positive", ErrInvalidInput)
	}

	// Оформление в мастерской доступно только администратору
	if orderType == domain.OrderWalkIn && !req.Principal.IsAdmin() {
		return nil, fmt.Errorf("%w: walk-in orders are created by staff", ErrInvalidInput)
	}

	if a := req.Appointment; a != nil {
		if a.Date.IsZero() || a.TimeOfDay.IsZero() {
			return nil, fmt.Errorf("%w: appointment needs date and time", ErrInvalidInput)
		}
	}

	return &validated{customerID: customerID, serviceType: serviceType, orderType: orderType}, nil
}
