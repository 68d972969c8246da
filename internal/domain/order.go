package domain

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrUnknownServiceType возвращается для неизвестного типа услуги
	ErrUnknownServiceType = errors.New("domain: unknown service type")

	// ErrUnknownOrderType возвращается для неизвестного типа заказа
	ErrUnknownOrderType = errors.New("domain: unknown order type")

	// ErrUnknownStatus возвращается для неизвестного статуса позиции заказа
	ErrUnknownStatus = errors.New("domain: unknown approval status")
)

// ServiceType тип услуги ателье
type ServiceType string

const (
	ServiceDryCleaning   ServiceType = "dry_cleaning"
	ServiceRepair        ServiceType = "repair"
	ServiceCustomization ServiceType = "customization"
	ServiceRental        ServiceType = "rental"
)

// ServiceTypes все поддерживаемые типы услуг
var ServiceTypes = []ServiceType{
	ServiceDryCleaning,
	ServiceRepair,
	ServiceCustomization,
	ServiceRental,
}

// ParseServiceType проверяет строку на границе системы
func ParseServiceType(s string) (ServiceType, error) {
	st := ServiceType(s)
	switch st {
	case ServiceDryCleaning, ServiceRepair, ServiceCustomization, ServiceRental:
		return st, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownServiceType, s)
	}
}

// OrderType канал оформления заказа
type OrderType string

const (
	OrderOnline OrderType = "online"
	OrderWalkIn OrderType = "walk_in"
)

// ParseOrderType проверяет строку на границе системы, пустое значение - online
func ParseOrderType(s string) (OrderType, error) {
	switch OrderType(s) {
	case "", OrderOnline:
		return OrderOnline, nil
	case OrderWalkIn:
		return OrderWalkIn, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownOrderType, s)
	}
}

// ApprovalStatus состояние позиции заказа
type ApprovalStatus string

const (
	StatusPending           ApprovalStatus = "pending"
	StatusPriceConfirmation ApprovalStatus = "price_confirmation"
	StatusAccepted          ApprovalStatus = "accepted"
	StatusConfirmed         ApprovalStatus = "confirmed"
	StatusReadyForPickup    ApprovalStatus = "ready_for_pickup"
	StatusPickedUp          ApprovalStatus = "picked_up"
	StatusRented            ApprovalStatus = "rented"
	StatusReturned          ApprovalStatus = "returned"
	StatusCompleted         ApprovalStatus = "completed"
	StatusCancelled         ApprovalStatus = "cancelled"
)

// legacyPendingReview старое имя pending, встречается в данных
const legacyPendingReview = "pending_review"

// NormalizeStatus приводит сырое значение статуса к каноническому:
// "", "pending_review" и "pending" - это pending
func NormalizeStatus(raw string) ApprovalStatus {
	switch raw {
	case "", legacyPendingReview, string(StatusPending):
		return StatusPending
	default:
		return ApprovalStatus(raw)
	}
}

// NormalizeStatusPtr то же для nullable значений (NULL в БД, отсутствующее поле JSON)
func NormalizeStatusPtr(raw *string) ApprovalStatus {
	if raw == nil {
		return StatusPending
	}
	return NormalizeStatus(*raw)
}

// ParseStatus нормализует статус и проверяет, что он известен
func ParseStatus(raw string) (ApprovalStatus, error) {
	s := NormalizeStatus(raw)
	switch s {
	case StatusPending, StatusPriceConfirmation, StatusAccepted, StatusConfirmed,
		StatusReadyForPickup, StatusPickedUp, StatusRented, StatusReturned,
		StatusCompleted, StatusCancelled:
		return s, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownStatus, raw)
	}
}

// IsTerminal возвращает true для completed и cancelled
func (s ApprovalStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

func (s ApprovalStatus) String() string {
	return string(s)
}

// OrderItem позиция заказа (одна услуга)
type OrderItem struct {
	ID             int64
	CustomerID     int64
	ServiceType    ServiceType
	OrderType      OrderType
	ApprovalStatus ApprovalStatus
	FinalPrice     float64
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// CanBeDeleted удаление разрешено только из completed
func (o *OrderItem) CanBeDeleted() bool {
	return o.ApprovalStatus == StatusCompleted
}

// IsWalkIn возвращает true для заказов, оформленных в мастерской
func (o *OrderItem) IsWalkIn() bool {
	return o.OrderType == OrderWalkIn
}
