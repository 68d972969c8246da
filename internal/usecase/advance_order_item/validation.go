package advance_order_item

import (
	"fmt"

	"github.com/m04kA/SMC-AtelierService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) (domain.ApprovalStatus, error) {
	if req.OrderItemID <= 0 {
		return "", fmt.Errorf("%w: orderItemID must be positive", ErrInvalidInput)
	}

	if req.TargetStatus == "" {
		return "", fmt.Errorf("%w: target status is required", ErrInvalidInput)
	}

	target, err := domain.ParseStatus(req.TargetStatus)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if req.FinalPrice != nil && *req.FinalPrice < 0 {
		return "", fmt.Errorf("%w: finalPrice must not be negative", ErrInvalidInput)
	}

	return target, nil
}

// checkPermission клиент может только принять цену своей позиции
// (price_confirmation -> accepted), остальные переходы выполняет администратор
func checkPermission(p domain.Principal, item *domain.OrderItem, target domain.ApprovalStatus) error {
	if p.IsAdmin() {
		return nil
	}

	current := domain.NormalizeStatus(string(item.ApprovalStatus))
	if current == domain.StatusPriceConfirmation && target == domain.StatusAccepted && item.CustomerID == p.UserID {
		return nil
	}

	return fmt.Errorf("%w: %s -> %s", ErrForbidden, current, target)
}

// checkFinalPrice цена фиксируется только при выходе из pending: при выставлении
// цены на подтверждение или при приеме заказа в мастерской
func checkFinalPrice(item *domain.OrderItem, finalPrice *float64) error {
	if finalPrice == nil {
		return nil
	}
	if domain.NormalizeStatus(string(item.ApprovalStatus)) != domain.StatusPending {
		return fmt.Errorf("%w: finalPrice can only be set when leaving pending", ErrInvalidInput)
	}
	return nil
}
