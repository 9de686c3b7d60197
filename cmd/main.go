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

	cancelMeetingHandler "github.com/matjarhub/booking-service/internal/api/handlers/cancel_meeting"
	createBookingHandler "github.com/matjarhub/booking-service/internal/api/handlers/create_booking"
	createTimeOffHandler "github.com/matjarhub/booking-service/internal/api/handlers/create_time_off"
	deleteTimeOffHandler "github.com/matjarhub/booking-service/internal/api/handlers/delete_time_off"
	getAvailableSlotsHandler "github.com/matjarhub/booking-service/internal/api/handlers/get_available_slots"
	getManagerMeetingsHandler "github.com/matjarhub/booking-service/internal/api/handlers/get_manager_meetings"
	getMeetingHandler "github.com/matjarhub/booking-service/internal/api/handlers/get_meeting"
	getScheduleHandler "github.com/matjarhub/booking-service/internal/api/handlers/get_schedule"
	updateScheduleRulesHandler "github.com/matjarhub/booking-service/internal/api/handlers/update_schedule_rules"
	updateScheduleSettingsHandler "github.com/matjarhub/booking-service/internal/api/handlers/update_schedule_settings"
	"github.com/matjarhub/booking-service/internal/api/middleware"
	"github.com/matjarhub/booking-service/internal/config"
	availabilityRepo "github.com/matjarhub/booking-service/internal/infra/storage/availability"
	meetingRepo "github.com/matjarhub/booking-service/internal/infra/storage/meeting"
	settingsRepo "github.com/matjarhub/booking-service/internal/infra/storage/settings"
	storeRepo "github.com/matjarhub/booking-service/internal/infra/storage/store"
	timeoffRepo "github.com/matjarhub/booking-service/internal/infra/storage/timeoff"
	notifierClient "github.com/matjarhub/booking-service/internal/integrations/notifier"
	profileServiceClient "github.com/matjarhub/booking-service/internal/integrations/profileservice"
	meetingsService "github.com/matjarhub/booking-service/internal/service/meetings"
	scheduleService "github.com/matjarhub/booking-service/internal/service/schedule"
	"github.com/matjarhub/booking-service/internal/storematch"
	createBookingUC "github.com/matjarhub/booking-service/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/matjarhub/booking-service/internal/usecase/get_available_slots"
	"github.com/matjarhub/booking-service/pkg/dbmetrics"
	"github.com/matjarhub/booking-service/pkg/logger"
	"github.com/matjarhub/booking-service/pkg/metrics"
	"github.com/matjarhub/booking-service/pkg/txmanager"
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

	log.Info("Starting booking-service...")
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

	// Инициализируем интеграционных клиентов
	profileClient := profileServiceClient.NewClient(
		cfg.ProfileService.URL,
		time.Duration(cfg.ProfileService.Timeout)*time.Second,
		log,
	)
	notifier := notifierClient.NewClient(
		cfg.Notifier.URL,
		time.Duration(cfg.Notifier.Timeout)*time.Second,
		cfg.Notifier.Enabled,
		log,
	)
	log.Info("Integration clients initialized (ProfileService=%s timeout=%ds, Notifier=%s enabled=%t)",
		cfg.ProfileService.URL, cfg.ProfileService.Timeout, cfg.Notifier.URL, cfg.Notifier.Enabled)

	// Репозитории и менеджер транзакций работают через общий исполнитель:
	// с метриками он дополнительно пишет статистику каждого запроса
	var (
		executor dbmetrics.DBExecutor
		txMgr    *txmanager.TransactionManager
	)

	if cfg.Metrics.Enabled {
		wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		executor = wrappedDB
		txMgr = txmanager.NewTransactionManager(wrappedDB)
		log.Info("Database metrics collection started")
	} else {
		plainDB := &dbmetrics.PlainDB{DB: db}
		executor = plainDB
		txMgr = txmanager.NewTransactionManager(plainDB)
	}

	meetingRepository := meetingRepo.NewRepository(executor)
	availabilityRepository := availabilityRepo.NewRepository(executor)
	timeOffRepository := timeoffRepo.NewRepository(executor)
	settingsRepository := settingsRepo.NewRepository(executor)
	storeRepository := storeRepo.NewRepository(executor)

	// Матчер URL магазина за интерфейсом, стратегию можно заменить
	storeMatcher := storematch.NewContainsMatcher()

	// Инициализируем сервисы
	meetingsSvc := meetingsService.NewService(meetingRepository, log)
	scheduleSvc := scheduleService.NewService(
		availabilityRepository,
		timeOffRepository,
		settingsRepository,
		txMgr,
		log,
	)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		meetingRepository,
		settingsRepository,
		storeRepository,
		storeMatcher,
		profileClient,
		notifier,
		txMgr,
		log,
	)

	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		meetingRepository,
		availabilityRepository,
		timeOffRepository,
		settingsRepository,
		profileClient,
		log,
	)

	// Инициализируем handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getMeeting := getMeetingHandler.NewHandler(meetingsSvc, log)
	cancelMeeting := cancelMeetingHandler.NewHandler(meetingsSvc, log)
	getManagerMeetings := getManagerMeetingsHandler.NewHandler(meetingsSvc, log)
	getSchedule := getScheduleHandler.NewHandler(scheduleSvc, log)
	updateScheduleSettings := updateScheduleSettingsHandler.NewHandler(scheduleSvc, log)
	updateScheduleRules := updateScheduleRulesHandler.NewHandler(scheduleSvc, log)
	createTimeOff := createTimeOffHandler.NewHandler(scheduleSvc, log)
	deleteTimeOff := deleteTimeOffHandler.NewHandler(scheduleSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// ============================================================
	// PUBLIC ROUTES (публичная страница бронирования)
	// ============================================================

	// Доступные слоты на дату
	r.HandleFunc("/api/book/{slug}", getAvailableSlots.Handle).Methods(http.MethodGet)

	// Создание брони
	r.HandleFunc("/api/book/{slug}", createBooking.Handle).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := r.PathPrefix("/api/v1").Subrouter()
	protected.Use(middleware.Auth)

	// --- Встречи менеджера ---
	protected.HandleFunc("/meetings/{meetingId}", getMeeting.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/meetings/{meetingId}/cancel", cancelMeeting.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/managers/{managerId}/meetings", getManagerMeetings.Handle).Methods(http.MethodGet)

	// --- Расписание менеджера ---
	protected.HandleFunc("/managers/{managerId}/schedule", getSchedule.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/managers/{managerId}/schedule/settings", updateScheduleSettings.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/managers/{managerId}/schedule/rules", updateScheduleRules.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/managers/{managerId}/schedule/time-off", createTimeOff.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/managers/{managerId}/schedule/time-off/{timeOffId}", deleteTimeOff.Handle).Methods(http.MethodDelete)

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
