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

	bookSeatsHandler "github.com/m04kA/SMC-SlotService/internal/api/handlers/book_seats"
	editSlotHandler "github.com/m04kA/SMC-SlotService/internal/api/handlers/edit_slot"
	getFormPlanningHandler "github.com/m04kA/SMC-SlotService/internal/api/handlers/get_form_planning"
	getSlotHandler "github.com/m04kA/SMC-SlotService/internal/api/handlers/get_slot"
	getSlotsHandler "github.com/m04kA/SMC-SlotService/internal/api/handlers/get_slots"
	releaseSeatsHandler "github.com/m04kA/SMC-SlotService/internal/api/handlers/release_seats"
	updateFormPlanningHandler "github.com/m04kA/SMC-SlotService/internal/api/handlers/update_form_planning"
	"github.com/m04kA/SMC-SlotService/internal/api/middleware"
	"github.com/m04kA/SMC-SlotService/internal/config"
	appointmentRepo "github.com/m04kA/SMC-SlotService/internal/infra/storage/appointment"
	planningRepo "github.com/m04kA/SMC-SlotService/internal/infra/storage/planning"
	slotRepo "github.com/m04kA/SMC-SlotService/internal/infra/storage/slot"
	slotNotifier "github.com/m04kA/SMC-SlotService/internal/integrations/slotnotifier"
	"github.com/m04kA/SMC-SlotService/internal/listeners"
	rulesService "github.com/m04kA/SMC-SlotService/internal/service/rules"
	slotsService "github.com/m04kA/SMC-SlotService/internal/service/slots"
	bookSeatsUC "github.com/m04kA/SMC-SlotService/internal/usecase/book_seats"
	editSlotUC "github.com/m04kA/SMC-SlotService/internal/usecase/edit_slot"
	getFormPlanningUC "github.com/m04kA/SMC-SlotService/internal/usecase/get_form_planning"
	getSlotUC "github.com/m04kA/SMC-SlotService/internal/usecase/get_slot"
	getSlotsUC "github.com/m04kA/SMC-SlotService/internal/usecase/get_slots"
	releaseSeatsUC "github.com/m04kA/SMC-SlotService/internal/usecase/release_seats"
	updateFormPlanningUC "github.com/m04kA/SMC-SlotService/internal/usecase/update_form_planning"
	"github.com/m04kA/SMC-SlotService/pkg/dbstore"
	"github.com/m04kA/SMC-SlotService/pkg/logger"
	"github.com/m04kA/SMC-SlotService/pkg/metrics"
	"github.com/m04kA/SMC-SlotService/pkg/txmanager"
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

	log.Info("Starting SMC-SlotService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики
	metricsCollector := metrics.New(cfg.Metrics.ServiceName)
	stopMetricsCh := make(chan struct{})

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
		slotRepository        *slotRepo.Repository
		planningRepository    *planningRepo.Repository
		appointmentRepository *appointmentRepo.Repository
		txMgr                 *txmanager.TransactionManager
	)

	if cfg.Metrics.Enabled {
		wrappedDB := dbstore.Wrap(db, metricsCollector, stopMetricsCh)
		log.Info("Database metrics collection started")

		slotRepository = slotRepo.NewRepository(wrappedDB)
		planningRepository = planningRepo.NewRepository(wrappedDB)
		appointmentRepository = appointmentRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		slotRepository = slotRepo.NewRepository(db)
		planningRepository = planningRepo.NewRepository(db)
		appointmentRepository = appointmentRepo.NewRepository(db)
		txMgr = txmanager.NewTransactionManager(dbstore.SQLBeginner{DB: db})
	}

	// Инициализируем слушателей изменений слотов
	listenerManager := listeners.NewManager(log, listeners.NewMetricsListener(metricsCollector))
	if cfg.Notifier.Enabled {
		notifierClient := slotNotifier.NewClient(
			cfg.Notifier.URL,
			time.Duration(cfg.Notifier.Timeout)*time.Second,
			log,
		)
		listenerManager.Register(notifierClient)
		log.Info("Slot event notifier enabled (url=%s, timeout=%ds)", cfg.Notifier.URL, cfg.Notifier.Timeout)
	}

	// Инициализируем сервисы
	ruleResolver := rulesService.NewResolver(planningRepository, log)
	slotSvc := slotsService.NewService(slotRepository, ruleResolver, listenerManager, metricsCollector, log)

	// Инициализируем use cases
	getSlotsUseCase := getSlotsUC.NewUseCase(slotSvc, log)
	getSlotUseCase := getSlotUC.NewUseCase(slotSvc, log)
	editSlotUseCase := editSlotUC.NewUseCase(slotSvc, ruleResolver, txMgr, metricsCollector, log)
	bookSeatsUseCase := bookSeatsUC.NewUseCase(slotSvc, appointmentRepository, ruleResolver, txMgr, log)
	releaseSeatsUseCase := releaseSeatsUC.NewUseCase(slotSvc, appointmentRepository, txMgr, log)
	getFormPlanningUseCase := getFormPlanningUC.NewUseCase(planningRepository, slotSvc, log)
	updateFormPlanningUseCase := updateFormPlanningUC.NewUseCase(planningRepository, txMgr, log)

	// Инициализируем handlers
	getSlots := getSlotsHandler.NewHandler(getSlotsUseCase, log)
	getSlot := getSlotHandler.NewHandler(getSlotUseCase, log)
	editSlot := editSlotHandler.NewHandler(editSlotUseCase, log)
	bookSeats := bookSeatsHandler.NewHandler(bookSeatsUseCase, log)
	releaseSeats := releaseSeatsHandler.NewHandler(releaseSeatsUseCase, log)
	getFormPlanning := getFormPlanningHandler.NewHandler(getFormPlanningUseCase, log)
	updateFormPlanning := updateFormPlanningHandler.NewHandler(updateFormPlanningUseCase, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Расписание формы в виде списка слотов
	api.HandleFunc("/forms/{formId}/slots", getSlots.Handle).Methods(http.MethodGet)

	// Сохраненный слот по ID
	api.HandleFunc("/slots/{slotId}", getSlot.Handle).Methods(http.MethodGet)

	// Правила планирования формы
	api.HandleFunc("/forms/{formId}/planning", getFormPlanning.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// Редактирование слота (вместимость, открытость, границы)
	protected.HandleFunc("/slots/{slotId}", editSlot.Handle).Methods(http.MethodPut)

	// Запись на слот
	protected.HandleFunc("/slots/{slotId}/appointments", bookSeats.Handle).Methods(http.MethodPost)

	// Отмена записи
	protected.HandleFunc("/appointments/{appointmentId}/cancel", releaseSeats.Handle).Methods(http.MethodPatch)

	// Изменение планирования формы
	protected.HandleFunc("/forms/{formId}/planning", updateFormPlanning.Handle).Methods(http.MethodPut)

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
