package notifications

import "time"

// Виды уведомлений, используются как routing key в RabbitMQ
const (
	KindPriceConfirmation = "order_item.price_confirmation"
)

// Event уведомление клиента об изменении позиции заказа
type Event struct {
	Kind        string    `json:"kind"`
	OrderItemID int64     `json:"order_item_id"`
	CustomerID  int64     `json:"customer_id"`
	ServiceType string    `json:"service_type"`
	Status      string    `json:"status"`
	FinalPrice  float64   `json:"final_price"`
	OccurredAt  time.Time `json:"occurred_at"`
}
