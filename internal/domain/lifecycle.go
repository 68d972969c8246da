package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrTransitionNotAllowed возвращается, когда целевое состояние не является следующим
	ErrTransitionNotAllowed = errors.New("domain: status transition is not allowed")

	// ErrBalanceOutstanding возвращается при попытке завершить неоплаченную позицию
	ErrBalanceOutstanding = errors.New("domain: order item is not fully paid")
)

// Flow упорядоченная последовательность состояний для типа услуги
type Flow struct {
	states []ApprovalStatus
}

var (
	garmentFlow = Flow{states: []ApprovalStatus{
		StatusPending,
		StatusPriceConfirmation,
		StatusAccepted,
		StatusConfirmed,
		StatusReadyForPickup,
		StatusCompleted,
	}}

	rentalFlow = Flow{states: []ApprovalStatus{
		StatusPending,
		StatusReadyForPickup,
		StatusPickedUp,
		StatusRented,
		StatusReturned,
		StatusCompleted,
	}}
)

// Flow возвращает последовательность состояний для типа услуги
func (t ServiceType) Flow() Flow {
	switch t {
	case ServiceRental:
		return rentalFlow
	case ServiceDryCleaning, ServiceRepair, ServiceCustomization:
		return garmentFlow
	default:
		return Flow{}
	}
}

// States копия последовательности
func (f Flow) States() []ApprovalStatus {
	out := make([]ApprovalStatus, len(f.states))
	copy(out, f.states)
	return out
}

// Contains проверяет, входит ли состояние в последовательность
func (f Flow) Contains(s ApprovalStatus) bool {
	return f.index(s) >= 0
}

// after следующее состояние по таблице; false для последнего и неизвестного
func (f Flow) after(s ApprovalStatus) (ApprovalStatus, bool) {
	i := f.index(s)
	if i < 0 || i == len(f.states)-1 {
		return "", false
	}
	return f.states[i+1], true
}

func (f Flow) index(s ApprovalStatus) int {
	for i, st := range f.states {
		if st == s {
			return i
		}
	}
	return -1
}

// IsFullyPaid остаток в пределах допуска на округление
func IsFullyPaid(remaining float64) bool {
	return remaining <= PaymentEpsilon
}

// NextStatus вычисляет следующее состояние позиции заказа.
// false означает, что продвинуть позицию дальше нельзя (в том числе
// когда следующим был бы completed, а оплата не полная).
func (o *OrderItem) NextStatus(remaining float64) (ApprovalStatus, bool) {
	next, ok := o.sequenceNext()
	if !ok {
		return "", false
	}
	if next == StatusCompleted && !IsFullyPaid(remaining) {
		return "", false
	}
	return next, true
}

func (o *OrderItem) sequenceNext() (ApprovalStatus, bool) {
	current := NormalizeStatus(string(o.ApprovalStatus))
	rental := o.ServiceType == ServiceRental

	switch current {
	case StatusPending:
		switch {
		case rental:
			return StatusReadyForPickup, true
		case o.IsWalkIn():
			return StatusAccepted, true
		default:
			return StatusPriceConfirmation, true
		}
	case StatusPriceConfirmation:
		return StatusAccepted, true
	case StatusAccepted:
		if rental {
			return StatusReadyForPickup, true
		}
		return StatusConfirmed, true
	}

	return o.ServiceType.Flow().after(current)
}

// CanTransition повторно проверяет переход, вычисленный клиентом: target должен
// совпадать со следующим состоянием, а для completed остаток должен быть в пределах допуска
func (o *OrderItem) CanTransition(target ApprovalStatus, remaining float64) error {
	current := NormalizeStatus(string(o.ApprovalStatus))
	target = NormalizeStatus(string(target))

	next, ok := o.sequenceNext()
	if !ok || next != target {
		return fmt.Errorf("%w: %s -> %s", ErrTransitionNotAllowed, current, target)
	}
	if next == StatusCompleted && !IsFullyPaid(remaining) {
		return fmt.Errorf("%w: remaining %.2f", ErrBalanceOutstanding, remaining)
	}
	return nil
}

// CanCancel проверяет возможность отмены: клиент - только из pending,
// администратор - из любого нетерминального состояния
func (o *OrderItem) CanCancel(p Principal) bool {
	current := NormalizeStatus(string(o.ApprovalStatus))
	if current.IsTerminal() {
		return false
	}
	if p.IsAdmin() {
		return true
	}
	return current == StatusPending && o.CustomerID == p.UserID
}
