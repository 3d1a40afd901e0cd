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

	availabilityWSHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/availability_ws"
	cancelBookingHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/cancel_booking"
	checkSpotHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/check_spot_availability"
	createBookingHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/create_booking"
	getBookingHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/get_booking"
	getFloorsHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/get_floors"
	getParkingSpotsHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/get_parking_spots"
	getUserBookingsHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/get_user_bookings"
	updateBookingStatusHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/update_booking_status"
	vehiclesHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/vehicles"
	"github.com/m04kA/SMC-ParkingService/internal/api/middleware"
	"github.com/m04kA/SMC-ParkingService/internal/config"
	"github.com/m04kA/SMC-ParkingService/internal/infra/changefeed"
	availabilityRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/availability"
	bookingRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/booking"
	vehicleRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/vehicle"
	catalogClient "github.com/m04kA/SMC-ParkingService/internal/integrations/catalog"
	"github.com/m04kA/SMC-ParkingService/internal/projector"
	availabilityService "github.com/m04kA/SMC-ParkingService/internal/service/availability"
	bookingsService "github.com/m04kA/SMC-ParkingService/internal/service/bookings"
	vehiclesService "github.com/m04kA/SMC-ParkingService/internal/service/vehicles"
	checkSpotUC "github.com/m04kA/SMC-ParkingService/internal/usecase/check_spot_availability"
	createBookingUC "github.com/m04kA/SMC-ParkingService/internal/usecase/create_booking"
	getFloorsUC "github.com/m04kA/SMC-ParkingService/internal/usecase/get_floors_with_spots"
	"github.com/m04kA/SMC-ParkingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ParkingService/pkg/logger"
	"github.com/m04kA/SMC-ParkingService/pkg/metrics"
	"github.com/m04kA/SMC-ParkingService/pkg/txmanager"
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

	log.Info("Starting SMC-ParkingService...")

	// Метрики: при выключенных метриках коллектор nil, обёртки просто проксируют вызовы
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

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Репозитории
	availabilityRepository := availabilityRepo.NewRepository(wrappedDB)
	bookingRepository := bookingRepo.NewRepository(wrappedDB)
	vehicleRepository := vehicleRepo.NewRepository(wrappedDB)

	// Фид изменений доступности (LISTEN/NOTIFY)
	feed := changefeed.New(changefeed.Config{
		DSN:                  cfg.Database.DSN(),
		Channel:              cfg.Stream.ChannelName,
		MinReconnectInterval: time.Duration(cfg.Stream.MinReconnectInterval) * time.Millisecond,
		MaxReconnectInterval: time.Duration(cfg.Stream.MaxReconnectInterval) * time.Millisecond,
	}, log)
	if err := feed.Start(); err != nil {
		log.Fatal("Failed to start availability change feed: %v", err)
	}
	defer feed.Close()
	log.Info("Listening for availability changes on channel %s", cfg.Stream.ChannelName)

	// Интеграции
	catalog := catalogClient.NewClient(cfg.Catalog.URL, time.Duration(cfg.Catalog.Timeout)*time.Second, log)
	log.Info("Catalog client initialized (url=%s, timeout=%ds)", cfg.Catalog.URL, cfg.Catalog.Timeout)

	timeProvider := &createBookingUC.RealTimeProvider{}

	// Сервисы
	availabilitySvc := availabilityService.NewService(
		availabilityRepository,
		txMgr,
		feed,
		metricsCollector,
		timeProvider,
		log,
	)

	// Проектор: каталог + живые счётчики
	proj := projector.New(catalog, availabilitySvc, log)

	rootCtx, stopBackground := context.WithCancel(context.Background())
	defer stopBackground()

	if err := proj.LoadCatalog(rootCtx); err != nil {
		log.Fatal("Failed to load parking catalog: %v", err)
	}
	go func() {
		if err := proj.Run(rootCtx); err != nil {
			log.Error("Projector stopped: %v", err)
		}
	}()

	bookingSvc := bookingsService.NewService(
		bookingRepository,
		availabilitySvc,
		proj,
		txMgr,
		timeProvider,
		log,
	)
	vehicleSvc := vehiclesService.NewService(
		vehicleRepository,
		catalog,
		txMgr,
		timeProvider,
		log,
	)

	// Use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		availabilitySvc,
		proj,
		middleware.ContextIdentity{},
		txMgr,
		metricsCollector,
		timeProvider,
		cfg.Booking.TaxRate,
		log,
	)
	checkSpotUseCase := checkSpotUC.NewUseCase(bookingRepository, cfg.Booking.FailOpen(), log)
	getFloorsUseCase := getFloorsUC.NewUseCase(
		proj,
		availabilitySvc,
		bookingRepository,
		getFloorsUC.SyntheticFloorGenerator{},
		timeProvider,
		log,
	)
	log.Info("Booking policy: fail_open_on_query_error=%t, tax_rate=%.2f", cfg.Booking.FailOpen(), cfg.Booking.TaxRate)

	// Handlers
	parkingSpots := getParkingSpotsHandler.NewHandler(proj, log)
	getFloors := getFloorsHandler.NewHandler(getFloorsUseCase, log)
	checkSpot := checkSpotHandler.NewHandler(checkSpotUseCase, log)
	availabilityWS := availabilityWSHandler.NewHandler(availabilitySvc, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	vehicles := vehiclesHandler.NewHandler(vehicleSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	api.HandleFunc("/parking-spots", parkingSpots.List).Methods(http.MethodGet)
	api.HandleFunc("/parking-spots/{parkingId}", parkingSpots.Get).Methods(http.MethodGet)
	api.HandleFunc("/parking-spots/{parkingId}/floors", getFloors.Handle).Methods(http.MethodGet)
	api.HandleFunc("/parking-spots/{parkingId}/spots/{spotNumber}/availability",
		checkSpot.Handle).Methods(http.MethodGet)
	api.HandleFunc("/ws/availability", availabilityWS.Handle).Methods(http.MethodGet)
	api.HandleFunc("/vehicles/presets", vehicles.Presets).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/users/me/bookings", getUserBookings.Handle).Methods(http.MethodGet)

	// --- Автомобили ---
	protected.HandleFunc("/users/me/vehicles", vehicles.List).Methods(http.MethodGet)
	protected.HandleFunc("/users/me/vehicles", vehicles.Add).Methods(http.MethodPost)
	protected.HandleFunc("/users/me/vehicles/{vehicleId}", vehicles.Delete).Methods(http.MethodDelete)
	protected.HandleFunc("/users/me/vehicles/{vehicleId}/default", vehicles.SetDefault).Methods(http.MethodPut)

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

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	// Останавливаем проектор, подписки и сбор статистики пула
	stopBackground()
	close(stopMetricsCh)

	log.Info("Server stopped gracefully")
}
