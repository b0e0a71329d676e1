package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mediconnect_backend/internal/adapters"
	"mediconnect_backend/internal/adapters/storage"
	"mediconnect_backend/internal/alerts"
	"mediconnect_backend/internal/appointments"
	appointmentsvc "mediconnect_backend/internal/appointments/service"
	"mediconnect_backend/internal/assessments"
	"mediconnect_backend/internal/auth"
	"mediconnect_backend/internal/availability"
	"mediconnect_backend/internal/email"
	"mediconnect_backend/internal/events"
	apphttp "mediconnect_backend/internal/http"
	"mediconnect_backend/internal/http/router"
	"mediconnect_backend/internal/records"
	"mediconnect_backend/internal/scheduler"
	"mediconnect_backend/internal/users"
	"mediconnect_backend/platform/config"
	"mediconnect_backend/platform/db"
	"mediconnect_backend/platform/logger"
	"mediconnect_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ========================================================================
	// Infrastructure Layer
	// ========================================================================

	if err := withRetry(ctx, log, "database migrations", 5, 2*time.Second, func() error {
		return db.RunMigrations(ctx, cfg, "migrations")
	}); err != nil {
		log.Error("failed to run database migrations", "error", err)
		panic("failed to run database migrations: " + err.Error())
	}
	log.Info("database migrations complete")

	var pool *pgxpool.Pool
	if err := withRetry(ctx, log, "database connection", 5, 2*time.Second, func() error {
		p, err := db.NewPool(ctx, cfg)
		if err != nil {
			return err
		}
		pool = p
		return nil
	}); err != nil {
		log.Error("failed to connect to database", "error", err)
		panic("failed to connect to database: " + err.Error())
	}
	defer pool.Close()
	log.Info("database connection established")

	// Event bus for decoupled communication between modules
	eventBus := events.NewInMemoryBus(log)

	reminderScheduler, closeScheduler := initReminderScheduler(cfg, log)
	if closeScheduler != nil {
		defer closeScheduler()
	}

	sender := initEmailSender(cfg, log)

	// Shared validator instance for dependency injection
	val := validator.New()

	storageSvc := initStorage(ctx, cfg, log)

	// ========================================================================
	// Domain Modules (Composition Root)
	// ========================================================================

	authModule := auth.NewModule(pool, cfg, val, eventBus, log)
	usersModule := users.NewModule(pool, val)
	alertsModule := alerts.NewModule(pool)

	userDirectory := adapters.NewAppointmentsUserDirectory(usersModule.Service)
	alertSender := adapters.NewAppointmentsAlertSender(alertsModule.Service)
	appointmentsModule := appointments.NewModule(pool, val, userDirectory, alertSender, sender, eventBus, reminderScheduler, log)

	availabilityModule := availability.NewModule(pool, val)
	recordsModule := records.NewModule(pool, storageSvc, cfg.GetMinioBucketMedicalRecords(), eventBus)
	assessmentsModule := assessments.NewModule(pool, val)

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	app := &apphttp.App{
		Config:   cfg,
		Logger:   log,
		Health:   db.NewPoolAdapter(pool),
		EventBus: eventBus,
		Modules: []apphttp.Module{
			authModule,
			usersModule,
			alertsModule,
			appointmentsModule,
			availabilityModule,
			recordsModule,
			assessmentsModule,
		},
	}

	engine := router.New(app)

	srvErr := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		srvErr <- engine.Run(cfg.HTTPAddr)
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received, gracefully shutting down")
	case err := <-srvErr:
		if err != nil {
			log.Error("server error", "error", err)
			panic("server error: " + err.Error())
		}
	}
}

// initReminderScheduler returns a nil scheduler when Redis is not configured;
// confirmations then skip reminder scheduling.
func initReminderScheduler(cfg config.SchedulerConfig, log *logger.Logger) (appointmentsvc.ReminderScheduler, func()) {
	if cfg.GetRedisURL() == "" {
		log.Warn("REDIS_URL not configured; appointment reminders disabled")
		return nil, nil
	}

	reminderClient, err := scheduler.NewClient(cfg)
	if err != nil {
		log.Error("failed to initialize reminder scheduler client", "error", err)
		return nil, nil
	}

	return reminderClient, func() {
		_ = reminderClient.Close()
	}
}

func initEmailSender(cfg config.EmailConfig, log *logger.Logger) email.Sender {
	if !cfg.IsEmailEnabled() {
		log.Warn("SMTP not configured; outbound email disabled")
		return email.NewNoopSender()
	}
	return email.NewSMTPSender(cfg)
}

// initStorage returns nil when MinIO is not configured; record uploads then
// fail with a clear error while the rest of the API keeps working.
func initStorage(ctx context.Context, cfg config.MinIOConfig, log *logger.Logger) storage.StorageService {
	if !cfg.IsMinIOEnabled() {
		log.Warn("MinIO not configured; medical record uploads disabled")
		return nil
	}

	storageSvc, err := storage.NewMinIOService(cfg)
	if err != nil {
		log.Error("failed to initialize storage service", "error", err)
		panic("failed to initialize storage service: " + err.Error())
	}

	bucket := cfg.GetMinioBucketMedicalRecords()
	if err := withRetry(ctx, log, "ensure medical-records bucket", 5, 2*time.Second, func() error {
		return storageSvc.EnsureBucketExists(ctx, bucket)
	}); err != nil {
		log.Error("failed to ensure storage bucket exists", "error", err, "bucket", bucket)
		panic("failed to ensure storage bucket exists: " + err.Error())
	}

	log.Info("storage service initialized", "bucket", bucket)
	return storageSvc
}

// withRetry runs fn up to attempts times with linear backoff, bailing out
// early when ctx is cancelled.
func withRetry(ctx context.Context, log *logger.Logger, name string, attempts int, baseDelay time.Duration, fn func() error) error {
	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		if err = fn(); err == nil {
			return nil
		}

		log.Warn("retrying "+name, "attempt", attempt, "error", err)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(baseDelay * time.Duration(attempt)):
		}
	}
	return err
}
