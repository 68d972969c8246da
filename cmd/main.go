package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/m04kA/SMC-AtelierService/internal/api"
	advanceOrderItemHandler "github.com/m04kA/SMC-AtelierService/internal/api/handlers/advance_order_item"
	cancelBookingHandler "github.com/m04kA/SMC-AtelierService/internal/api/handlers/cancel_booking"
	cancelOrderItemHandler "github.com/m04kA/SMC-AtelierService/internal/api/handlers/cancel_order_item"
	checkoutOrderItemHandler "github.com/m04kA/SMC-AtelierService/internal/api/handlers/checkout_order_item"
	createBookingHandler "github.com/m04kA/SMC-AtelierService/internal/api/handlers/create_booking"
	deleteOrderItemHandler "github.com/m04kA/SMC-AtelierService/internal/api/handlers/delete_order_item"
	getAvailableSlotsHandler "github.com/m04kA/SMC-AtelierService/internal/api/handlers/get_available_slots"
	getBalanceHandler "github.com/m04kA/SMC-AtelierService/internal/api/handlers/get_balance"
	getBookingHandler "github.com/m04kA/SMC-AtelierService/internal/api/handlers/get_booking"
	getDayStatusHandler "github.com/m04kA/SMC-AtelierService/internal/api/handlers/get_day_status"
	getNextStatusHandler "github.com/m04kA/SMC-AtelierService/internal/api/handlers/get_next_status"
	getOrderItemHandler "github.com/m04kA/SMC-AtelierService/internal/api/handlers/get_order_item"
	getScheduleHandler "github.com/m04kA/SMC-AtelierService/internal/api/handlers/get_schedule"
	listOrderItemBookingsHandler "github.com/m04kA/SMC-AtelierService/internal/api/handlers/list_order_item_bookings"
	recordPaymentHandler "github.com/m04kA/SMC-AtelierService/internal/api/handlers/record_payment"
	updateScheduleHandler "github.com/m04kA/SMC-AtelierService/internal/api/handlers/update_schedule"
	"github.com/m04kA/SMC-AtelierService/internal/config"
	catalogServiceClient "github.com/m04kA/SMC-AtelierService/internal/integrations/catalogservice"
	"github.com/m04kA/SMC-AtelierService/internal/integrations/notifications"
	bookingsService "github.com/m04kA/SMC-AtelierService/internal/service/bookings"
	ordersService "github.com/m04kA/SMC-AtelierService/internal/service/orders"
	paymentsService "github.com/m04kA/SMC-AtelierService/internal/service/payments"
	scheduleService "github.com/m04kA/SMC-AtelierService/internal/service/schedule"
	advanceOrderItemUC "github.com/m04kA/SMC-AtelierService/internal/usecase/advance_order_item"
	checkoutOrderItemUC "github.com/m04kA/SMC-AtelierService/internal/usecase/checkout_order_item"
	createBookingUC "github.com/m04kA/SMC-AtelierService/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/m04kA/SMC-AtelierService/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-AtelierService/pkg/logger"
	"github.com/m04kA/SMC-AtelierService/pkg/metrics"
)

const notificationsDrainTimeout = 5 * time.Second

func main() {
	configPath := "config.toml"
	if p := os.Getenv("ATELIER_CONFIG"); p != "" {
		configPath = p
	}

	// Загружаем конфигурацию
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SMC-AtelierService...")
	log.Info("Configuration loaded from %s", configPath)

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	store, err := openBackend(cfg, metricsCollector, log)
	if err != nil {
		log.Fatal("Failed to initialize storage: %v", err)
	}
	defer store.close()

	templates, err := cfg.SlotTemplates()
	if err != nil {
		log.Fatal("Invalid slot templates: %v", err)
	}
	location := cfg.Location()
	log.Info("Slot templates loaded for %d service types, timezone=%s", len(templates), location)

	// Интеграции
	catalogClient := catalogServiceClient.NewClient(
		cfg.CatalogService.URL,
		time.Duration(cfg.CatalogService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (CatalogService=%s timeout=%ds)",
		cfg.CatalogService.URL, cfg.CatalogService.Timeout)

	var sink notifications.Sink = notifications.NewLogNotifier(log)
	if cfg.Notifications.Enabled {
		publisher, err := notifications.NewRabbitPublisher(cfg.Notifications.RabbitMQURL, cfg.Notifications.Exchange)
		if err != nil {
			log.Fatal("Failed to connect to RabbitMQ: %v", err)
		}
		sink = publisher
		log.Info("Notifications are published to exchange %s", cfg.Notifications.Exchange)
	}

	dispatcher, err := notifications.NewDispatcher(sink, cfg.Notifications.PoolSize, metricsCollector, log)
	if err != nil {
		log.Fatal("Failed to start notification dispatcher: %v", err)
	}
	defer func() {
		if err := dispatcher.Close(notificationsDrainTimeout); err != nil {
			log.Warn("Notification dispatcher closed with error: %v", err)
		}
	}()

	// Инициализируем сервисы
	scheduleSvc := scheduleService.NewService(store.schedule, store.txManager, log)
	bookingSvc := bookingsService.NewService(store.bookings, store.slots, store.orders, store.txManager, log)
	orderSvc := ordersService.NewService(store.orders, store.payments, bookingSvc, store.txManager, log)
	paymentSvc := paymentsService.NewService(store.payments, store.orders, store.txManager, log)

	if err := scheduleSvc.SeedIfEmpty(context.Background(), cfg.InitialSchedule()); err != nil {
		log.Fatal("Failed to seed schedule: %v", err)
	}

	// Инициализируем use cases
	timeProvider := &createBookingUC.RealTimeProvider{Location: location}

	createBookingUseCase := createBookingUC.NewUseCase(
		store.schedule,
		store.slots,
		store.bookings,
		store.orders,
		templates,
		store.txManager,
		metricsCollector,
		timeProvider,
		log,
	)

	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		store.schedule,
		store.slots,
		templates,
		&getAvailableSlotsUC.RealTimeProvider{Location: location},
		log,
	)

	checkoutUseCase := checkoutOrderItemUC.NewUseCase(
		store.orders,
		catalogClient,
		createBookingUseCase,
		store.txManager,
		log,
	)

	advanceUseCase := advanceOrderItemUC.NewUseCase(
		store.orders,
		store.payments,
		store.txManager,
		dispatcher,
		metricsCollector,
		log,
	)

	// Инициализируем handlers и роутер
	router := api.NewRouter(api.Handlers{
		GetAvailableSlots:     getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, location, log),
		CreateBooking:         createBookingHandler.NewHandler(createBookingUseCase, location, log),
		GetBooking:            getBookingHandler.NewHandler(bookingSvc, log),
		CancelBooking:         cancelBookingHandler.NewHandler(bookingSvc, log),
		GetDayStatus:          getDayStatusHandler.NewHandler(scheduleSvc, location, log),
		GetSchedule:           getScheduleHandler.NewHandler(scheduleSvc, log),
		UpdateSchedule:        updateScheduleHandler.NewHandler(scheduleSvc, log),
		CheckoutOrderItem:     checkoutOrderItemHandler.NewHandler(checkoutUseCase, location, log),
		GetOrderItem:          getOrderItemHandler.NewHandler(orderSvc, log),
		ListOrderItemBookings: listOrderItemBookingsHandler.NewHandler(bookingSvc, log),
		GetNextStatus:         getNextStatusHandler.NewHandler(orderSvc, log),
		AdvanceOrderItem:      advanceOrderItemHandler.NewHandler(advanceUseCase, log),
		CancelOrderItem:       cancelOrderItemHandler.NewHandler(orderSvc, log),
		DeleteOrderItem:       deleteOrderItemHandler.NewHandler(orderSvc, log),
		RecordPayment:         recordPaymentHandler.NewHandler(paymentSvc, log),
		GetBalance:            getBalanceHandler.NewHandler(paymentSvc, log),
	}, api.MetricsOptions{
		Collector: metricsCollector,
		Path:      cfg.Metrics.Path,
	})

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown по SIGINT/SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(
			context.Background(),
			time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
		)
		defer cancel()

		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("Server stopped with error: %v", err)
		return
	}

	log.Info("Server stopped gracefully")
}
