package notifications

import "context"

// LogNotifier пишет уведомления в лог, используется без брокера
type LogNotifier struct {
	log Logger
}

func NewLogNotifier(log Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (n *LogNotifier) Send(_ context.Context, event Event) error {
	n.log.Info("Notification %s: orderItem=%d, customer=%d, status=%s, price=%.2f",
		event.Kind, event.OrderItemID, event.CustomerID, event.Status, event.FinalPrice)
	return nil
}

func (n *LogNotifier) Close() error {
	return nil
}
