package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dental-clinic-api/config"
	deliveryHttp "dental-clinic-api/internal/delivery/http"
	"dental-clinic-api/internal/delivery/http/handler"
	"dental-clinic-api/internal/delivery/http/middleware"
	"dental-clinic-api/internal/domain/entity"
	domainRepo "dental-clinic-api/internal/domain/repository"
	"dental-clinic-api/internal/infrastructure/cache"
	"dental-clinic-api/internal/infrastructure/database"
	"dental-clinic-api/internal/repository"
	"dental-clinic-api/internal/repository/gormstore"
	"dental-clinic-api/internal/service"
	"dental-clinic-api/internal/usecase"
	"dental-clinic-api/pkg/idgen"
	"dental-clinic-api/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	DB          *gorm.DB
	RedisClient *redis.Client
	Server      *http.Server
}

// New creates a new App instance with all dependencies initialized
func New() (*App, error) {
	app := &App{}

	// Setup logger
	setupLogger()

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg
	logrus.Info("Configuration loaded successfully")

	// Build the repository layer for the configured store driver
	repos, db, err := buildRepositories(cfg)
	if err != nil {
		return nil, err
	}
	app.DB = db

	// Redis is optional: the day-view cache degrades to pass-through
	// without it
	if cfg.Redis.Enabled {
		redisClient, err := cache.NewRedisClient(cfg.Redis)
		if err != nil {
			logrus.Warnf("Redis unavailable, schedule cache disabled: %v", err)
		} else {
			app.RedisClient = redisClient
		}
	}

	if cfg.App.SeedDemo {
		if err := seedDemoData(context.Background(), repos); err != nil {
			logrus.Warnf("Demo seed failed: %v", err)
		}
	}

	// Initialize all layers
	server, err := initializeServer(cfg, repos, app.RedisClient)
	if err != nil {
		return nil, err
	}
	app.Server = server

	return app, nil
}

// setupLogger configures the logrus logger
func setupLogger() {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(logrus.InfoLevel)
}

// repositories groups the three aggregate stores so both backends wire the
// same way.
type repositories struct {
	patients     domainRepo.PatientRepository
	appointments domainRepo.AppointmentRepository
	plans        domainRepo.TreatmentPlanRepository
}

func buildRepositories(cfg *config.Config) (*repositories, *gorm.DB, error) {
	switch cfg.Store.Driver {
	case "postgres":
		db, err := database.NewPostgresConnection(cfg.DB)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		return &repositories{
			patients:     gormstore.NewPatientRepository(db),
			appointments: gormstore.NewAppointmentRepository(db),
			plans:        gormstore.NewTreatmentPlanRepository(db),
		}, db, nil
	case "memory", "":
		return &repositories{
			patients:     repository.NewMemoryPatientRepository(),
			appointments: repository.NewMemoryAppointmentRepository(),
			plans:        repository.NewMemoryTreatmentPlanRepository(),
		}, nil, nil
	default:
		return nil, nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}

func buildBlobStore(cfg *config.Config) (service.BlobStore, error) {
	switch cfg.Blob.Driver {
	case "s3":
		return service.NewS3BlobStore(context.Background(), service.S3Config{
			Region:   cfg.Blob.Region,
			Bucket:   cfg.Blob.Bucket,
			Endpoint: cfg.Blob.Endpoint,
		})
	case "fs", "":
		return service.NewFSBlobStore(cfg.Blob.Dir)
	default:
		return nil, fmt.Errorf("unknown blob driver %q", cfg.Blob.Driver)
	}
}

// initializeServer creates and configures the HTTP server
func initializeServer(cfg *config.Config, repos *repositories, redisClient *redis.Client) (*http.Server, error) {
	// Initialize validator
	customValidator := validator.NewValidator()

	// Initialize logger
	log := logrus.StandardLogger()

	// Initialize shared services
	ids := idgen.New()
	translator := service.NewEnglishTranslator()
	catalog := service.NewProcedureCatalog()
	aiClient := service.NewGeminiClient(cfg.AI, log)
	dayCache := service.NewDayScheduleCache(redisClient, log)

	blobStore, err := buildBlobStore(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize blob store: %w", err)
	}

	window := entity.SlotWindow{
		StartHour: cfg.Calendar.StartHour,
		Hours:     cfg.Calendar.Hours,
		RowPx:     cfg.Calendar.RowPx,
		PaddingPx: cfg.Calendar.SlotPaddingPx,
	}

	// Initialize usecases
	patientUsecase := usecase.NewPatientUsecase(log, ids, repos.patients, repos.appointments, aiClient, blobStore)
	appointmentUsecase := usecase.NewAppointmentUsecase(log, ids, window, repos.patients, repos.appointments, dayCache)
	billingUsecase := usecase.NewBillingUsecase(log, ids, repos.patients)
	planUsecase := usecase.NewTreatmentPlanUsecase(log, ids, repos.plans, repos.patients, aiClient)

	// Initialize handlers
	patientHandler := handler.NewPatientHandler(patientUsecase, customValidator, translator)
	appointmentHandler := handler.NewAppointmentHandler(appointmentUsecase, customValidator, translator)
	billingHandler := handler.NewBillingHandler(billingUsecase, customValidator, translator)
	planHandler := handler.NewTreatmentPlanHandler(planUsecase, catalog, customValidator, translator)

	// Initialize middleware
	corsMiddleware := middleware.NewCORSMiddleware()
	loggingMiddleware := middleware.NewLoggingMiddleware(log)

	// Initialize router
	router := deliveryHttp.NewRouter(patientHandler, appointmentHandler, billingHandler, planHandler, corsMiddleware, loggingMiddleware)
	httpRouter := router.Setup()

	// Create server
	serverAddr := fmt.Sprintf(":%s", cfg.App.Port)
	return &http.Server{
		Addr:    serverAddr,
		Handler: httpRouter,
	}, nil
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() {
	// Start server in goroutine
	go func() {
		logrus.Infof("Server starting on port %s", app.Config.App.Port)
		logrus.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	app.waitForShutdown()
}

// waitForShutdown blocks until an interrupt signal is received
func (app *App) waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown HTTP server gracefully
	if err := app.Server.Shutdown(ctx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	// Close connections
	app.Close()

	logrus.Info("Server shutdown complete")
}

// Close closes all connections (database, redis, etc.)
func (app *App) Close() {
	// Close database connection
	if app.DB != nil {
		sqlDB, err := app.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}

	// Close Redis connection
	if app.RedisClient != nil {
		app.RedisClient.Close()
	}
}
