package main

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/m04kA/SMC-AtelierService/internal/config"
	"github.com/m04kA/SMC-AtelierService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-AtelierService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-AtelierService/internal/infra/storage/memory"
	orderRepo "github.com/m04kA/SMC-AtelierService/internal/infra/storage/order"
	paymentRepo "github.com/m04kA/SMC-AtelierService/internal/infra/storage/payment"
	scheduleRepo "github.com/m04kA/SMC-AtelierService/internal/infra/storage/schedule"
	slotRepo "github.com/m04kA/SMC-AtelierService/internal/infra/storage/slot"
	"github.com/m04kA/SMC-AtelierService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AtelierService/pkg/logger"
	"github.com/m04kA/SMC-AtelierService/pkg/metrics"
	"github.com/m04kA/SMC-AtelierService/pkg/txmanager"
)

type scheduleStore interface {
	GetWeek(ctx context.Context) (domain.Week, error)
	ReplaceWeek(ctx context.Context, days []domain.ScheduleDay) error
}

type slotStore interface {
	EnsureSlots(ctx context.Context, slots []*domain.Slot) error
	GetSlots(ctx context.Context, serviceType domain.ServiceType, date time.Time) ([]*domain.Slot, error)
	IncrementBooked(ctx context.Context, key domain.SlotKey) (*domain.Slot, error)
	DecrementBooked(ctx context.Context, key domain.SlotKey) (*domain.Slot, error)
}

type bookingStore interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	Delete(ctx context.Context, id int64) (*domain.Booking, error)
	ListByOrderItem(ctx context.Context, orderItemID int64) ([]*domain.Booking, error)
}

type orderStore interface {
	Create(ctx context.Context, item *domain.OrderItem) (*domain.OrderItem, error)
	GetByID(ctx context.Context, id int64) (*domain.OrderItem, error)
	GetByIDForUpdate(ctx context.Context, id int64) (*domain.OrderItem, error)
	UpdateStatus(ctx context.Context, id int64, status domain.ApprovalStatus, finalPrice *float64, updatedAt time.Time) (*domain.OrderItem, error)
	Delete(ctx context.Context, id int64) error
}

type paymentStore interface {
	Create(ctx context.Context, payment *domain.PaymentRecord) (*domain.PaymentRecord, error)
	SumByOrderItem(ctx context.Context, orderItemID int64) (float64, error)
	ListByOrderItem(ctx context.Context, orderItemID int64) ([]*domain.PaymentRecord, error)
}

type transactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// backend репозитории и менеджер транзакций выбранного хранилища
type backend struct {
	schedule  scheduleStore
	slots     slotStore
	bookings  bookingStore
	orders    orderStore
	payments  paymentStore
	txManager transactionManager
	close     func()
}

func openBackend(cfg *config.Config, collector *metrics.Metrics, log *logger.Logger) (*backend, error) {
	if cfg.Storage.Driver == config.StorageDriverMemory {
		log.Warn("Using in-memory storage, data is lost on restart")
		store := memory.NewStore()
		return &backend{
			schedule:  store.Schedule(),
			slots:     store.Slots(),
			bookings:  store.Bookings(),
			orders:    store.Orders(),
			payments:  store.Payments(),
			txManager: store.TxManager(),
			close:     func() {},
		}, nil
	}

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// При выключенных метриках обертка прозрачна
	stopMetricsCh := make(chan struct{})
	wrappedDB := dbmetrics.WrapWithDefault(db, collector, cfg.Database.DBName, stopMetricsCh)

	return &backend{
		schedule:  scheduleRepo.NewRepository(wrappedDB),
		slots:     slotRepo.NewRepository(wrappedDB),
		bookings:  bookingRepo.NewRepository(wrappedDB),
		orders:    orderRepo.NewRepository(wrappedDB),
		payments:  paymentRepo.NewRepository(wrappedDB),
		txManager: txmanager.NewTransactionManager(wrappedDB),
		close: func() {
			close(stopMetricsCh)
			db.Close()
		},
	}, nil
}
