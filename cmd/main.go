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

	cancelBookingHandler "github.com/m04kA/GSC-SlotService/internal/api/handlers/cancel_booking"
	checkInBookingHandler "github.com/m04kA/GSC-SlotService/internal/api/handlers/check_in_booking"
	completeBookingHandler "github.com/m04kA/GSC-SlotService/internal/api/handlers/complete_booking"
	createBookingHandler "github.com/m04kA/GSC-SlotService/internal/api/handlers/create_booking"
	generateSlotsHandler "github.com/m04kA/GSC-SlotService/internal/api/handlers/generate_slots"
	getAlternativesHandler "github.com/m04kA/GSC-SlotService/internal/api/handlers/get_alternatives"
	getBookingHandler "github.com/m04kA/GSC-SlotService/internal/api/handlers/get_booking"
	getSlotSummaryHandler "github.com/m04kA/GSC-SlotService/internal/api/handlers/get_slot_summary"
	getSlotsHandler "github.com/m04kA/GSC-SlotService/internal/api/handlers/get_slots"
	getUserBookingsHandler "github.com/m04kA/GSC-SlotService/internal/api/handlers/get_user_bookings"
	jobControlHandler "github.com/m04kA/GSC-SlotService/internal/api/handlers/job_control"
	markNoShowHandler "github.com/m04kA/GSC-SlotService/internal/api/handlers/mark_no_show"
	setSlotActiveHandler "github.com/m04kA/GSC-SlotService/internal/api/handlers/set_slot_active"
	"github.com/m04kA/GSC-SlotService/internal/api/middleware"
	"github.com/m04kA/GSC-SlotService/internal/config"
	bookingRepo "github.com/m04kA/GSC-SlotService/internal/infra/storage/booking"
	centerRepo "github.com/m04kA/GSC-SlotService/internal/infra/storage/center"
	slotRepo "github.com/m04kA/GSC-SlotService/internal/infra/storage/slot"
	userRepo "github.com/m04kA/GSC-SlotService/internal/infra/storage/user"
	"github.com/m04kA/GSC-SlotService/internal/jobs"
	bookingsService "github.com/m04kA/GSC-SlotService/internal/service/bookings"
	slotsService "github.com/m04kA/GSC-SlotService/internal/service/slots"
	createBookingUC "github.com/m04kA/GSC-SlotService/internal/usecase/create_booking"
	generateSlotsUC "github.com/m04kA/GSC-SlotService/internal/usecase/generate_slots"
	getAlternativesUC "github.com/m04kA/GSC-SlotService/internal/usecase/get_alternatives"
	getSlotsUC "github.com/m04kA/GSC-SlotService/internal/usecase/get_slots"
	"github.com/m04kA/GSC-SlotService/pkg/dbmetrics"
	"github.com/m04kA/GSC-SlotService/pkg/logger"
	"github.com/m04kA/GSC-SlotService/pkg/metrics"
	"github.com/m04kA/GSC-SlotService/pkg/simpletxmanager"
	"github.com/m04kA/GSC-SlotService/pkg/txmanager"
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

	log.Info("Starting GSC-SlotService...")
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

	// Инициализируем репозитории (с метриками или без)
	var (
		slotRepository    *slotRepo.Repository
		bookingRepository *bookingRepo.Repository
		userRepository    *userRepo.Repository
		centerRepository  *centerRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases и сервисах)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		slotRepository = slotRepo.NewRepository(wrappedDB)
		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		userRepository = userRepo.NewRepository(wrappedDB)
		centerRepository = centerRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		slotRepository = slotRepo.NewRepository(db)
		bookingRepository = bookingRepo.NewRepository(db)
		userRepository = userRepo.NewRepository(db)
		centerRepository = centerRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		slotRepository,
		userRepository,
		txMgr,
		log,
	)
	slotSvc := slotsService.NewService(
		slotRepository,
		bookingRepository,
		txMgr,
		log,
	)

	// Инициализируем use cases
	generateSlotsUseCase := generateSlotsUC.NewUseCase(slotRepository, centerRepository, log)
	getSlotsUseCase := getSlotsUC.NewUseCase(slotRepository, centerRepository, log)
	getAlternativesUseCase := getAlternativesUC.NewUseCase(slotRepository, log)
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		slotRepository,
		userRepository,
		txMgr,
		log,
	)

	// Инициализируем фоновые задачи
	slotJobs := jobs.NewSlotJobs(
		generateSlotsUseCase,
		slotRepository,
		nil,
		log,
		cfg.Jobs.GenerationDays,
		cfg.Jobs.RetentionDays,
	)
	bookingJobs := jobs.NewBookingJobs(
		bookingRepository,
		slotRepository,
		bookingSvc,
		slotSvc,
		nil,
		log,
		cfg.Jobs.LateGraceMinutes,
	)

	jobRegistry := jobs.NewRegistry(nil, log)
	jobs.Setup(jobRegistry, slotJobs, bookingJobs,
		time.Duration(cfg.Jobs.LateSweepIntervalMinutes)*time.Minute)

	if cfg.Jobs.Enabled {
		if err := jobRegistry.Start(context.Background()); err != nil {
			log.Fatal("Failed to start job registry: %v", err)
		}
		log.Info("Job registry started")

		// Заполняем расписание на старте, если календарь на сегодня пуст
		if err := slotJobs.RunInitialGeneration(context.Background()); err != nil {
			log.Error("Initial slot generation failed: %v", err)
		}
	}

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	checkInBooking := checkInBookingHandler.NewHandler(bookingSvc, log)
	completeBooking := completeBookingHandler.NewHandler(bookingSvc, log)
	markNoShow := markNoShowHandler.NewHandler(bookingSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	generateSlots := generateSlotsHandler.NewHandler(generateSlotsUseCase, log)
	getSlots := getSlotsHandler.NewHandler(getSlotsUseCase, log)
	getAlternatives := getAlternativesHandler.NewHandler(getAlternativesUseCase, log)
	getSlotSummary := getSlotSummaryHandler.NewHandler(slotSvc, log)
	setSlotActive := setSlotActiveHandler.NewHandler(slotSvc, log)
	jobControl := jobControlHandler.NewHandler(jobRegistry, log)

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
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Расписание слотов центра на дату
	api.HandleFunc("/centers/{centerId}/slots", getSlots.Handle).Methods(http.MethodGet)

	// Сводка загрузки центра на дату
	api.HandleFunc("/centers/{centerId}/slots/summary", getSlotSummary.Handle).Methods(http.MethodGet)

	// Альтернативы для слота
	api.HandleFunc("/slots/{slotId}/alternatives", getAlternatives.Handle).Methods(http.MethodGet)

	// --- Администрирование (для операторов и внутренних систем) ---
	// Генерация расписания
	api.HandleFunc("/slots/generate", generateSlots.Handle).Methods(http.MethodPost)

	// Активация/деактивация слота
	api.HandleFunc("/slots/{slotId}/active", setSlotActive.Handle).Methods(http.MethodPatch)

	// Отметка о прибытии, завершение и неявка (операции оператора центра)
	api.HandleFunc("/bookings/{bookingId}/check-in", checkInBooking.Handle).Methods(http.MethodPatch)
	api.HandleFunc("/bookings/{bookingId}/complete", completeBooking.Handle).Methods(http.MethodPatch)
	api.HandleFunc("/bookings/{bookingId}/no-show", markNoShow.Handle).Methods(http.MethodPatch)

	// Управление фоновыми задачами
	api.HandleFunc("/jobs/status", jobControl.HandleStatus).Methods(http.MethodGet)
	api.HandleFunc("/jobs/start", jobControl.HandleStart).Methods(http.MethodPost)
	api.HandleFunc("/jobs/stop", jobControl.HandleStop).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// Создание бронирования
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Получение бронирования по ID
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// Отмена бронирования
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	// История бронирований пользователя
	protected.HandleFunc("/users/{userId}/bookings", getUserBookings.Handle).Methods(http.MethodGet)

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

	// Останавливаем фоновые задачи
	if err := jobRegistry.Stop(); err != nil && err != jobs.ErrNotRunning {
		log.Error("Failed to stop job registry: %v", err)
	}

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
