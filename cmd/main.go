package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	advanceBookingHandler "github.com/m04kA/KMP-BookingService/internal/api/handlers/advance_booking"
	assignFreelancerHandler "github.com/m04kA/KMP-BookingService/internal/api/handlers/assign_freelancer"
	cancelBookingHandler "github.com/m04kA/KMP-BookingService/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/m04kA/KMP-BookingService/internal/api/handlers/create_booking"
	getBookingHandler "github.com/m04kA/KMP-BookingService/internal/api/handlers/get_booking"
	getFreelancerBookingsHandler "github.com/m04kA/KMP-BookingService/internal/api/handlers/get_freelancer_bookings"
	getPointsHandler "github.com/m04kA/KMP-BookingService/internal/api/handlers/get_points"
	getQuoteHandler "github.com/m04kA/KMP-BookingService/internal/api/handlers/get_quote"
	getUserBookingsHandler "github.com/m04kA/KMP-BookingService/internal/api/handlers/get_user_bookings"
	listBookingsHandler "github.com/m04kA/KMP-BookingService/internal/api/handlers/list_bookings"
	"github.com/m04kA/KMP-BookingService/internal/api/middleware"
	"github.com/m04kA/KMP-BookingService/internal/config"
	"github.com/m04kA/KMP-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/KMP-BookingService/internal/infra/storage/booking"
	userRepo "github.com/m04kA/KMP-BookingService/internal/infra/storage/user"
	catalogServiceClient "github.com/m04kA/KMP-BookingService/internal/integrations/catalogservice"
	bookingsService "github.com/m04kA/KMP-BookingService/internal/service/bookings"
	pointsService "github.com/m04kA/KMP-BookingService/internal/service/points"
	advanceBookingUC "github.com/m04kA/KMP-BookingService/internal/usecase/advance_booking"
	createBookingUC "github.com/m04kA/KMP-BookingService/internal/usecase/create_booking"
	getQuoteUC "github.com/m04kA/KMP-BookingService/internal/usecase/get_quote"
	"github.com/m04kA/KMP-BookingService/pkg/dbmetrics"
	"github.com/m04kA/KMP-BookingService/pkg/logger"
	"github.com/m04kA/KMP-BookingService/pkg/metrics"
	"github.com/m04kA/KMP-BookingService/pkg/refcode"
	"github.com/m04kA/KMP-BookingService/pkg/simpletxmanager"
	"github.com/m04kA/KMP-BookingService/pkg/txmanager"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
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

	log.Info("Starting KMP-BookingService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Клиент каталога услуг
	catalogClient := catalogServiceClient.NewClient(
		cfg.CatalogService.URL,
		time.Duration(cfg.CatalogService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (CatalogService=%s timeout=%ds)",
		cfg.CatalogService.URL, cfg.CatalogService.Timeout)

	// Генератор reference-кодов бронирований
	refGenerator := refcode.NewGenerator(domain.ReferencePrefix, domain.ReferenceRandomLength)

	// Инициализируем репозитории и tx manager (с метриками или без)
	var (
		bookingRepository *bookingRepo.Repository
		userRepository    *userRepo.Repository
		txMgr             createBookingUC.TransactionManager
	)

	if cfg.Metrics.Enabled {
		wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		userRepository = userRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		userRepository = userRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы чтения
	bookingSvc := bookingsService.NewService(bookingRepository, log)
	pointsSvc := pointsService.NewService(userRepository, log)

	// Доменные метрики use cases (заглушки, если метрики выключены)
	var (
		createMetrics  createBookingUC.Metrics  = createBookingUC.NoopMetrics{}
		advanceMetrics advanceBookingUC.Metrics = advanceBookingUC.NoopMetrics{}
	)
	if cfg.Metrics.Enabled {
		createMetrics = metricsCollector
		advanceMetrics = metricsCollector
	}

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		userRepository,
		catalogClient,
		refGenerator,
		txMgr,
		createMetrics,
		log,
	)

	advanceBookingUseCase := advanceBookingUC.NewUseCase(
		bookingRepository,
		userRepository,
		txMgr,
		advanceMetrics,
		log,
	)

	getQuoteUseCase := getQuoteUC.NewUseCase(userRepository, catalogClient, log)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	assignFreelancer := assignFreelancerHandler.NewHandler(advanceBookingUseCase, log)
	advanceBooking := advanceBookingHandler.NewHandler(advanceBookingUseCase, log)
	cancelBooking := cancelBookingHandler.NewHandler(advanceBookingUseCase, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	getFreelancerBookings := getFreelancerBookingsHandler.NewHandler(bookingSvc, log)
	listBookings := listBookingsHandler.NewHandler(bookingSvc, log)
	getPoints := getPointsHandler.NewHandler(pointsSvc, log)
	getQuote := getQuoteHandler.NewHandler(getQuoteUseCase, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")

		// Metrics endpoint (публичный, без аутентификации)
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix; все маршруты требуют X-User-ID и X-User-Role
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Auth)

	// --- Бронирования ---
	// Создание бронирования
	api.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Список бронирований с фильтрами (staff/admin)
	api.HandleFunc("/bookings", listBookings.Handle).Methods(http.MethodGet)

	// Получение бронирования по reference-коду
	api.HandleFunc("/bookings/{reference}", getBooking.Handle).Methods(http.MethodGet)

	// Назначение фрилансера (staff/admin)
	api.HandleFunc("/bookings/{reference}/assign", assignFreelancer.Handle).Methods(http.MethodPost)

	// Переходы статуса start/complete (назначенный фрилансер)
	api.HandleFunc("/bookings/{reference}/advance", advanceBooking.Handle).Methods(http.MethodPost)

	// Отмена бронирования
	api.HandleFunc("/bookings/{reference}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	// --- Пользователи ---
	// История бронирований клиента
	api.HandleFunc("/users/{userId}/bookings", getUserBookings.Handle).Methods(http.MethodGet)

	// Назначенные фрилансеру заказы
	api.HandleFunc("/freelancers/{userId}/bookings", getFreelancerBookings.Handle).Methods(http.MethodGet)

	// Баланс и история баллов
	api.HandleFunc("/users/{userId}/points", getPoints.Handle).Methods(http.MethodGet)

	// --- Расчет цены ---
	// Предварительный расчет скидки без создания брони
	api.HandleFunc("/quote", getQuote.Handle).Methods(http.MethodGet)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем сбор метрик connection pool
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
