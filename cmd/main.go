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

	"github.com/go-redis/redis/v8"
	gorillaHandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	_ "github.com/lib/pq"

	apiHandlers "github.com/m04kA/SMC-RentalBookingService/internal/api/handlers"
	acknowledgeQRPaymentHandler "github.com/m04kA/SMC-RentalBookingService/internal/api/handlers/acknowledge_qr_payment"
	cancelBookingHandler "github.com/m04kA/SMC-RentalBookingService/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/m04kA/SMC-RentalBookingService/internal/api/handlers/create_booking"
	createSessionHandler "github.com/m04kA/SMC-RentalBookingService/internal/api/handlers/create_session"
	deleteSessionHandler "github.com/m04kA/SMC-RentalBookingService/internal/api/handlers/delete_session"
	getBookingHandler "github.com/m04kA/SMC-RentalBookingService/internal/api/handlers/get_booking"
	getFeaturesHandler "github.com/m04kA/SMC-RentalBookingService/internal/api/handlers/get_features"
	getInvoiceHandler "github.com/m04kA/SMC-RentalBookingService/internal/api/handlers/get_invoice"
	getPaymentHandler "github.com/m04kA/SMC-RentalBookingService/internal/api/handlers/get_payment"
	getQuoteHandler "github.com/m04kA/SMC-RentalBookingService/internal/api/handlers/get_quote"
	getSessionHandler "github.com/m04kA/SMC-RentalBookingService/internal/api/handlers/get_session"
	getUserBookingsHandler "github.com/m04kA/SMC-RentalBookingService/internal/api/handlers/get_user_bookings"
	modifyBookingHandler "github.com/m04kA/SMC-RentalBookingService/internal/api/handlers/modify_booking"
	payBookingHandler "github.com/m04kA/SMC-RentalBookingService/internal/api/handlers/pay_booking"
	searchCarsHandler "github.com/m04kA/SMC-RentalBookingService/internal/api/handlers/search_cars"
	setDestinationHandler "github.com/m04kA/SMC-RentalBookingService/internal/api/handlers/set_destination"
	setTripTimeHandler "github.com/m04kA/SMC-RentalBookingService/internal/api/handlers/set_trip_time"
	stripeWebhookHandler "github.com/m04kA/SMC-RentalBookingService/internal/api/handlers/stripe_webhook"
	toggleFeatureHandler "github.com/m04kA/SMC-RentalBookingService/internal/api/handlers/toggle_feature"
	"github.com/m04kA/SMC-RentalBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-RentalBookingService/internal/auth"
	"github.com/m04kA/SMC-RentalBookingService/internal/config"
	"github.com/m04kA/SMC-RentalBookingService/internal/domain"
	"github.com/m04kA/SMC-RentalBookingService/internal/infra/events"
	confirmationStore "github.com/m04kA/SMC-RentalBookingService/internal/infra/storage/confirmation"
	paymentRepo "github.com/m04kA/SMC-RentalBookingService/internal/infra/storage/payment"
	sessionRepo "github.com/m04kA/SMC-RentalBookingService/internal/infra/storage/tripsession"
	"github.com/m04kA/SMC-RentalBookingService/internal/integrations/apiclient"
	bookingServiceClient "github.com/m04kA/SMC-RentalBookingService/internal/integrations/bookingservice"
	carServiceClient "github.com/m04kA/SMC-RentalBookingService/internal/integrations/carservice"
	paymentGatewayClient "github.com/m04kA/SMC-RentalBookingService/internal/integrations/paymentgateway"
	"github.com/m04kA/SMC-RentalBookingService/internal/integrations/stripegateway"
	bookingsService "github.com/m04kA/SMC-RentalBookingService/internal/service/bookings"
	tripSessionService "github.com/m04kA/SMC-RentalBookingService/internal/service/tripsession"
	cancelBookingUC "github.com/m04kA/SMC-RentalBookingService/internal/usecase/cancel_booking"
	confirmPaymentUC "github.com/m04kA/SMC-RentalBookingService/internal/usecase/confirm_payment"
	createBookingUC "github.com/m04kA/SMC-RentalBookingService/internal/usecase/create_booking"
	getInvoiceUC "github.com/m04kA/SMC-RentalBookingService/internal/usecase/get_invoice"
	modifyBookingUC "github.com/m04kA/SMC-RentalBookingService/internal/usecase/modify_booking"
	payBookingUC "github.com/m04kA/SMC-RentalBookingService/internal/usecase/pay_booking"
	searchCarsUC "github.com/m04kA/SMC-RentalBookingService/internal/usecase/search_cars"
	"github.com/m04kA/SMC-RentalBookingService/internal/worker"
	"github.com/m04kA/SMC-RentalBookingService/pkg/logger"
	"github.com/m04kA/SMC-RentalBookingService/pkg/metrics"
)

// EventPublisher общий интерфейс NSQ и no-op публикации
type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
	Close()
}

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

	log.Info("Starting SMC-RentalBookingService...")
	log.Info("Configuration loaded from config.toml")

	// Метрики собираются всегда, endpoint и HTTP middleware включаются конфигом
	metricsCollector := metrics.New(cfg.Metrics.ServiceName)

	// Подключаемся к базе данных (журнал оплат)
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

	// Redis: сессии выбора поездки и токены подтверждения
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	pingCtx, pingCancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := redisClient.Ping(pingCtx).Err(); err != nil {
		pingCancel()
		log.Fatal("Failed to ping redis: %v", err)
	}
	pingCancel()
	log.Info("Successfully connected to redis (addr=%s, db=%d)", cfg.Redis.Addr, cfg.Redis.DB)

	// Инициализируем интеграционных клиентов
	remoteAPI := apiclient.NewClient(
		cfg.RemoteAPI.URL,
		time.Duration(cfg.RemoteAPI.Timeout)*time.Second,
		log,
	).WithRefreshPath(cfg.RemoteAPI.RefreshPath).WithMetrics(metricsCollector)

	carClient := carServiceClient.NewClient(remoteAPI, log)
	bookingClient := bookingServiceClient.NewClient(remoteAPI, log)
	gatewayClient := paymentGatewayClient.NewClient(
		cfg.Gateway.URL,
		cfg.Gateway.APIKey,
		time.Duration(cfg.Gateway.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (RemoteAPI=%s timeout=%ds, PaymentGateway=%s timeout=%ds)",
		cfg.RemoteAPI.URL, cfg.RemoteAPI.Timeout, cfg.Gateway.URL, cfg.Gateway.Timeout)

	// Stripe опционален: интерфейсы остаются nil, если ключ не задан
	var (
		checkoutGateway payBookingUC.CheckoutGateway
		webhookParser   confirmPaymentUC.WebhookParser
	)
	if cfg.Stripe.Enabled() {
		stripeGateway := stripegateway.NewGateway(stripegateway.Config{
			SecretKey:     cfg.Stripe.SecretKey,
			WebhookSecret: cfg.Stripe.WebhookSecret,
			SuccessURL:    cfg.Stripe.SuccessURL,
			CancelURL:     cfg.Stripe.CancelURL,
			Currency:      cfg.Payments.Currency,
		}, log)
		checkoutGateway = stripeGateway
		webhookParser = stripeGateway
		log.Info("Stripe checkout enabled")
	} else {
		log.Warn("Stripe is not configured, card payments are disabled")
	}

	// События жизненного цикла бронирований
	var publisher EventPublisher = events.NopPublisher{}
	if cfg.Events.NSQDAddress != "" {
		nsqPublisher, err := events.NewNSQPublisher(cfg.Events.NSQDAddress, cfg.Events.Topic, log)
		if err != nil {
			log.Fatal("Failed to create NSQ publisher: %v", err)
		}
		publisher = nsqPublisher
		log.Info("Event publishing enabled (nsqd=%s, topic=%s)", cfg.Events.NSQDAddress, cfg.Events.Topic)
	}
	defer publisher.Close()

	// Инициализируем репозитории
	sessionRepository := sessionRepo.NewRepository(redisClient, cfg.SessionTTL())
	confirmations := confirmationStore.NewStore(redisClient, cfg.CancellationTTL())
	paymentRepository := paymentRepo.NewRepository(db)

	catalog := domain.DefaultFeatureCatalog()

	// Инициализируем сервисы
	sessionSvc := tripSessionService.NewService(
		sessionRepository,
		carClient,
		gatewayClient,
		catalog,
		log,
	)
	bookingSvc := bookingsService.NewService(
		bookingClient,
		carClient,
		log,
	)

	// Инициализируем use cases
	searchCarsUseCase := searchCarsUC.NewUseCase(
		sessionRepository,
		carClient,
		catalog,
		log,
	)
	createBookingUseCase := createBookingUC.NewUseCase(
		sessionRepository,
		carClient,
		bookingClient,
		publisher,
		metricsCollector,
		catalog,
		log,
	)
	modifyBookingUseCase := modifyBookingUC.NewUseCase(
		bookingClient,
		carClient,
		publisher,
		metricsCollector,
		catalog,
		log,
	)
	cancelBookingUseCase := cancelBookingUC.NewUseCase(
		bookingClient,
		confirmations,
		publisher,
		metricsCollector,
		log,
	)
	payBookingUseCase := payBookingUC.NewUseCase(
		bookingClient,
		paymentRepository,
		checkoutGateway,
		metricsCollector,
		cfg.Payments.Currency,
		log,
	)
	confirmPaymentUseCase := confirmPaymentUC.NewUseCase(
		paymentRepository,
		bookingClient,
		webhookParser,
		gatewayClient,
		publisher,
		metricsCollector,
		confirmPaymentUC.Config{
			MaxAge:    cfg.VerifyMaxAge(),
			BatchSize: cfg.Payments.VerifyBatchSize,
		},
		log,
	)
	getInvoiceUseCase := getInvoiceUC.NewUseCase(
		bookingClient,
		carClient,
		log,
	)

	// Фоновая проверка оплат QR / кошельков
	paymentWorker, err := worker.NewPaymentWorker(confirmPaymentUseCase, worker.Config{
		Schedule:     cfg.Payments.VerifySchedule,
		RunTimeout:   time.Minute,
		ServiceToken: cfg.Auth.ServiceToken,
	}, log)
	if err != nil {
		log.Fatal("Failed to create payment worker: %v", err)
	}

	// Инициализируем handlers
	createSession := createSessionHandler.NewHandler(sessionSvc, log)
	getSession := getSessionHandler.NewHandler(sessionSvc, log)
	deleteSession := deleteSessionHandler.NewHandler(sessionSvc, log)
	setTripTime := setTripTimeHandler.NewHandler(sessionSvc, log)
	setDestination := setDestinationHandler.NewHandler(sessionSvc, log)
	toggleFeature := toggleFeatureHandler.NewHandler(sessionSvc, log)
	acknowledgeQRPayment := acknowledgeQRPaymentHandler.NewHandler(sessionSvc, log)
	getQuote := getQuoteHandler.NewHandler(sessionSvc, log)
	getFeatures := getFeaturesHandler.NewHandler(catalog)
	searchCars := searchCarsHandler.NewHandler(searchCarsUseCase, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	modifyBooking := modifyBookingHandler.NewHandler(modifyBookingUseCase, log)
	cancelBooking := cancelBookingHandler.NewHandler(cancelBookingUseCase, log)
	payBooking := payBookingHandler.NewHandler(payBookingUseCase, log)
	getPayment := getPaymentHandler.NewHandler(confirmPaymentUseCase, log)
	getInvoice := getInvoiceHandler.NewHandler(getInvoiceUseCase, log)
	stripeWebhook := stripeWebhookHandler.NewHandler(confirmPaymentUseCase, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware и endpoint (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, metricsCollector.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Каталог дополнительных опций
	api.HandleFunc("/features", getFeatures.Handle).Methods(http.MethodGet)

	// Webhook Stripe (подлинность проверяется подписью)
	api.HandleFunc("/webhooks/stripe", stripeWebhook.Handle).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (требуют Bearer access token)
	// ============================================================

	tokenParser := auth.NewTokenParser(cfg.Auth.JWTSecret)
	if cfg.Auth.InsecureSkipVerify {
		tokenParser = auth.NewUnverifiedTokenParser()
		log.Warn("Token signature verification is DISABLED (auth.insecure_skip_verify)")
	}

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth(tokenParser, log))
	if cfg.RateLimit.Enabled {
		protected.Use(middleware.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst).Middleware(log))
		log.Info("Rate limiting enabled (rps=%.1f, burst=%d)", cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
	}

	// --- Сессия выбора поездки ---
	protected.HandleFunc("/sessions", createSession.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/sessions/{sessionId}", getSession.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/sessions/{sessionId}", deleteSession.Handle).Methods(http.MethodDelete)
	protected.HandleFunc("/sessions/{sessionId}/trip-time", setTripTime.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/sessions/{sessionId}/destination", setDestination.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/sessions/{sessionId}/destination", setDestination.HandleClear).Methods(http.MethodDelete)
	protected.HandleFunc("/sessions/{sessionId}/features/toggle", toggleFeature.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/sessions/{sessionId}/qr-acknowledgement", acknowledgeQRPayment.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/sessions/{sessionId}/qr-acknowledgement", acknowledgeQRPayment.HandleClear).Methods(http.MethodDelete)
	protected.HandleFunc("/sessions/{sessionId}/quote", getQuote.Handle).Methods(http.MethodGet)

	// --- Автомобили ---
	protected.HandleFunc("/cars", searchCars.Handle).Methods(http.MethodGet)

	// --- Бронирования ---
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings", getUserBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}", modifyBooking.Handle).Methods(http.MethodPut)

	// Отмена в два шага
	protected.HandleFunc("/bookings/{bookingId}/cancellation", cancelBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}/cancellation", cancelBooking.HandleAbort).Methods(http.MethodDelete)
	protected.HandleFunc("/bookings/{bookingId}/cancellation/confirm", cancelBooking.HandleConfirm).Methods(http.MethodPost)

	// Счет
	protected.HandleFunc("/bookings/{bookingId}/invoice", getInvoice.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}/invoice.pdf", getInvoice.HandlePDF).Methods(http.MethodGet)

	// --- Оплаты ---
	protected.HandleFunc("/bookings/{bookingId}/payments", payBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/payments/{paymentId}", getPayment.Handle).Methods(http.MethodGet)

	// CORS для веб-клиента и восстановление после паники
	handler := gorillaHandlers.CORS(
		gorillaHandlers.AllowedOrigins(cfg.CORS.AllowedOrigins),
		gorillaHandlers.AllowedMethods([]string{
			http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions,
		}),
		gorillaHandlers.AllowedHeaders([]string{"Authorization", "Content-Type"}),
		gorillaHandlers.ExposedHeaders([]string{apiHandlers.HeaderAccessToken, apiHandlers.HeaderSessionLogout}),
		gorillaHandlers.AllowCredentials(),
	)(r)
	handler = gorillaHandlers.RecoveryHandler(gorillaHandlers.PrintRecoveryStack(true))(handler)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	paymentWorker.Start()
	log.Info("Payment verification worker started (schedule=%s)", cfg.Payments.VerifySchedule)

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

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	if err := paymentWorker.Stop(shutdownCtx); err != nil {
		log.Error("Payment worker did not stop in time: %v", err)
	}

	log.Info("Server stopped gracefully")
}
