package notifications

import (
	"context"
	"fmt"
	"time"

	"github.com/panjf2000/ants/v2"
)

const sendTimeout = 5 * time.Second

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Sink получатель уведомлений
type Sink interface {
	Send(ctx context.Context, event Event) error
	Close() error
}

// Metrics счетчик отправленных уведомлений
type Metrics interface {
	ObserveNotification(kind, result string)
}

// Dispatcher отправляет уведомления в фоне через пул горутин.
// Notify никогда не блокирует вызывающего и не возвращает ошибку:
// если пул переполнен или отправка не удалась, событие логируется и теряется.
type Dispatcher struct {
	pool    *ants.Pool
	sink    Sink
	metrics Metrics
	log     Logger
}

// NewDispatcher создает пул размера poolSize
func NewDispatcher(sink Sink, poolSize int, metrics Metrics, log Logger) (*Dispatcher, error) {
	pool, err := ants.NewPool(poolSize,
		ants.WithNonblocking(true),
		ants.WithPanicHandler(func(p interface{}) {
			log.Error("Notifications: panic in worker: %v", p)
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("notifications: create pool: %w", err)
	}
	return &Dispatcher{pool: pool, sink: sink, metrics: metrics, log: log}, nil
}

// Notify ставит событие в очередь на отправку
func (d *Dispatcher) Notify(event Event) {
	err := d.pool.Submit(func() {
		ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
		defer cancel()

		if err := d.sink.Send(ctx, event); err != nil {
			d.log.Warn("Notifications: failed to send %s for orderItem=%d: %v", event.Kind, event.OrderItemID, err)
			d.observe(event.Kind, "failed")
			return
		}
		d.observe(event.Kind, "sent")
	})
	if err != nil {
		d.log.Warn("Notifications: dropped %s for orderItem=%d: %v", event.Kind, event.OrderItemID, err)
		d.observe(event.Kind, "dropped")
	}
}

// Close дожидается завершения отправок (не дольше timeout) и закрывает получателя
func (d *Dispatcher) Close(timeout time.Duration) error {
	if err := d.pool.ReleaseTimeout(timeout); err != nil {
		d.log.Warn("Notifications: pool release: %v", err)
	}
	return d.sink.Close()
}

func (d *Dispatcher) observe(kind, result string) {
	if d.metrics != nil {
		d.metrics.ObserveNotification(kind, result)
	}
}
