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

	confirmBookingHandler "github.com/m04kA/PMS-InspectionService/internal/api/handlers/confirm_booking"
	createSchedulesHandler "github.com/m04kA/PMS-InspectionService/internal/api/handlers/create_schedules"
	deleteScheduleHandler "github.com/m04kA/PMS-InspectionService/internal/api/handlers/delete_schedule"
	getRegionConfigsHandler "github.com/m04kA/PMS-InspectionService/internal/api/handlers/get_region_configs"
	getScheduleHandler "github.com/m04kA/PMS-InspectionService/internal/api/handlers/get_schedule"
	listBookingsHandler "github.com/m04kA/PMS-InspectionService/internal/api/handlers/list_bookings"
	listSchedulesHandler "github.com/m04kA/PMS-InspectionService/internal/api/handlers/list_schedules"
	rejectBookingHandler "github.com/m04kA/PMS-InspectionService/internal/api/handlers/reject_booking"
	resolveBookingLinkHandler "github.com/m04kA/PMS-InspectionService/internal/api/handlers/resolve_booking_link"
	sendNotificationsHandler "github.com/m04kA/PMS-InspectionService/internal/api/handlers/send_notifications"
	submitPublicBookingHandler "github.com/m04kA/PMS-InspectionService/internal/api/handlers/submit_public_booking"
	upsertRegionConfigHandler "github.com/m04kA/PMS-InspectionService/internal/api/handlers/upsert_region_config"
	"github.com/m04kA/PMS-InspectionService/internal/api/middleware"
	"github.com/m04kA/PMS-InspectionService/internal/config"
	bookingRepo "github.com/m04kA/PMS-InspectionService/internal/infra/storage/booking"
	notificationRepo "github.com/m04kA/PMS-InspectionService/internal/infra/storage/notification"
	regionConfigRepo "github.com/m04kA/PMS-InspectionService/internal/infra/storage/regionconfig"
	scheduleRepo "github.com/m04kA/PMS-InspectionService/internal/infra/storage/schedule"
	propertyServiceClient "github.com/m04kA/PMS-InspectionService/internal/integrations/propertyservice"
	bookingsService "github.com/m04kA/PMS-InspectionService/internal/service/bookings"
	regionConfigService "github.com/m04kA/PMS-InspectionService/internal/service/regionconfig"
	schedulesService "github.com/m04kA/PMS-InspectionService/internal/service/schedules"
	createBookingUC "github.com/m04kA/PMS-InspectionService/internal/usecase/create_booking"
	resolveBookingLinkUC "github.com/m04kA/PMS-InspectionService/internal/usecase/resolve_booking_link"
	sendNotificationsUC "github.com/m04kA/PMS-InspectionService/internal/usecase/send_notifications"
	"github.com/m04kA/PMS-InspectionService/pkg/dbmetrics"
	"github.com/m04kA/PMS-InspectionService/pkg/logger"
	"github.com/m04kA/PMS-InspectionService/pkg/mailer"
	"github.com/m04kA/PMS-InspectionService/pkg/metrics"
	"github.com/m04kA/PMS-InspectionService/pkg/simpletxmanager"
	"github.com/m04kA/PMS-InspectionService/pkg/txmanager"
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

	log.Info("Starting PMS-InspectionService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
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

	// Инициализируем интеграционного клиента PropertyService
	propertyClient := propertyServiceClient.NewClient(
		cfg.PropertyService.URL,
		time.Duration(cfg.PropertyService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration client initialized (PropertyService=%s timeout=%ds)",
		cfg.PropertyService.URL, cfg.PropertyService.Timeout)

	// Инициализируем SMTP клиент
	smtpMailer, err := mailer.New(mailer.Config{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
		From:     cfg.SMTP.From,
	})
	if err != nil {
		log.Fatal("Failed to initialize mailer: %v", err)
	}
	log.Info("SMTP mailer initialized (host=%s, from=%s)", cfg.SMTP.Host, cfg.SMTP.From)

	// Интерфейс transaction manager (используется сервисами и usecases)
	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}

	// Инициализируем репозитории (с метриками или без)
	var (
		bookingRepository      *bookingRepo.Repository
		scheduleRepository     *scheduleRepo.Repository
		regionConfigRepository *regionConfigRepo.Repository
		notificationRepository *notificationRepo.Repository
		txMgr                  TxManager
	)

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		scheduleRepository = scheduleRepo.NewRepository(wrappedDB)
		regionConfigRepository = regionConfigRepo.NewRepository(wrappedDB)
		notificationRepository = notificationRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		scheduleRepository = scheduleRepo.NewRepository(db)
		regionConfigRepository = regionConfigRepo.NewRepository(db)
		notificationRepository = notificationRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	regionConfigSvc := regionConfigService.NewService(regionConfigRepository, log)
	schedulesSvc := schedulesService.NewService(
		scheduleRepository,
		regionConfigRepository,
		bookingRepository,
		notificationRepository,
		txMgr,
		log,
	)
	bookingsSvc := bookingsService.NewService(
		bookingRepository,
		scheduleRepository,
		propertyClient,
		smtpMailer,
		txMgr,
		log,
	)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		scheduleRepository,
		notificationRepository,
		txMgr,
		log,
	)
	resolveBookingLinkUseCase := resolveBookingLinkUC.NewUseCase(
		notificationRepository,
		bookingRepository,
		scheduleRepository,
		propertyClient,
		log,
	)
	sendNotificationsUseCase := sendNotificationsUC.NewUseCase(
		notificationRepository,
		scheduleRepository,
		propertyClient,
		smtpMailer,
		cfg.Public.BaseURL,
		log,
	)

	// Инициализируем handlers
	getRegionConfigs := getRegionConfigsHandler.NewHandler(regionConfigSvc, log)
	upsertRegionConfig := upsertRegionConfigHandler.NewHandler(regionConfigSvc, log)
	createSchedules := createSchedulesHandler.NewHandler(schedulesSvc, log)
	listSchedules := listSchedulesHandler.NewHandler(schedulesSvc, log)
	getSchedule := getScheduleHandler.NewHandler(schedulesSvc, log)
	deleteSchedule := deleteScheduleHandler.NewHandler(schedulesSvc, log)
	listBookings := listBookingsHandler.NewHandler(bookingsSvc, log)
	confirmBooking := confirmBookingHandler.NewHandler(bookingsSvc, log)
	rejectBooking := rejectBookingHandler.NewHandler(bookingsSvc, log)
	sendNotifications := sendNotificationsHandler.NewHandler(sendNotificationsUseCase, log)
	resolveBookingLink := resolveBookingLinkHandler.NewHandler(resolveBookingLinkUseCase, log)
	submitPublicBooking := submitPublicBookingHandler.NewHandler(createBookingUseCase, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (токен вместо аутентификации)
	// ============================================================

	// Публичная страница бронирования по токену из письма
	api.HandleFunc("/public/bookings/{token}", resolveBookingLink.Handle).Methods(http.MethodGet)

	// Отправка заявки на осмотр
	api.HandleFunc("/public/bookings/{token}", submitPublicBooking.Handle).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Настройки регионов ---
	protected.HandleFunc("/regions/configs", getRegionConfigs.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/regions/{region}/config", upsertRegionConfig.Handle).Methods(http.MethodPut)

	// --- Расписания осмотров ---
	protected.HandleFunc("/schedules", createSchedules.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/schedules", listSchedules.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/schedules/{scheduleId}", getSchedule.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/schedules/{scheduleId}", deleteSchedule.Handle).Methods(http.MethodDelete)

	// --- Рассылка приглашений ---
	protected.HandleFunc("/schedules/{scheduleId}/notifications", sendNotifications.Handle).Methods(http.MethodPost)

	// --- Бронирования ---
	protected.HandleFunc("/bookings", listBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}/confirm", confirmBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/reject", rejectBooking.Handle).Methods(http.MethodPatch)

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

	log.Info("Server exited")
}
