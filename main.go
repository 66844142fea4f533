package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"vetclinic/config"
	_ "vetclinic/docs"
	"vetclinic/internal/client"
	"vetclinic/internal/queue"
	"vetclinic/internal/report"
	"vetclinic/internal/repository"
	"vetclinic/internal/service"
	"vetclinic/internal/storage"
	"vetclinic/internal/transport/rest"
	"vetclinic/pkg/auth"
	"vetclinic/pkg/database"
	"vetclinic/pkg/logger"
	"vetclinic/pkg/metrics"
	"vetclinic/pkg/tracer"
)

// @title Vet Clinic Appointments API
// @version 1.0
// @description Scheduling of veterinary appointments, service catalog and clinical records

// @BasePath /api/v1

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		bootstrap, _ := zap.NewProduction()
		bootstrap.Fatal("failed to load configuration", zap.Error(err))
	}

	log, err := logger.NewLogger(cfg)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	ctx := context.Background()

	tp, err := tracer.Init(ctx, cfg.Tracing)
	if err != nil {
		log.Fatal("failed to initialise tracing", zap.Error(err))
	}

	db, err := database.NewPostgresDB(ctx, cfg.Postgres, log)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	log.Info("running database migrations")
	if err := database.RunMigrations(ctx, db, cfg.Postgres.MigrationsDir, log); err != nil {
		log.Fatal("failed to run migrations", zap.Error(err))
	}

	var fileStorage storage.FileStorage
	if cfg.S3.Endpoint != "" {
		s3Storage, err := storage.NewS3Storage(ctx, cfg.S3, log)
		if err != nil {
			log.Fatal("failed to initialise S3 storage", zap.Error(err))
		}
		fileStorage = s3Storage
		log.Info("S3 storage initialised", zap.String("endpoint", cfg.S3.Endpoint))
	} else {
		log.Warn("S3 storage not configured, clinical record reports will not be archived")
	}

	collector := metrics.NewCollector("vetclinic")

	directory, err := client.NewDirectoryClient(cfg.Directory, cfg.Breaker, collector, log)
	if err != nil {
		log.Fatal("failed to create directory client", zap.Error(err))
	}

	var sender service.NotificationSender
	switch cfg.Notifications.Transport {
	case "kafka":
		publisher, err := queue.NewKafkaPublisher(cfg.Kafka, log)
		if err != nil {
			log.Fatal("failed to create kafka publisher", zap.Error(err))
		}
		defer publisher.Close()
		sender = publisher
	default:
		notifier, err := client.NewHTTPNotifier(cfg.Notifications, cfg.Breaker, collector, log)
		if err != nil {
			log.Fatal("failed to create notification client", zap.Error(err))
		}
		sender = notifier
	}
	log.Info("notification transport selected", zap.String("transport", cfg.Notifications.Transport))

	dispatcher := service.NewDispatcher(sender, log, service.DispatcherOptions{
		QueueSize:  cfg.Notifications.QueueSize,
		Workers:    cfg.Notifications.Workers,
		JobTimeout: cfg.Notifications.JobTimeout,
		Metrics:    collector,
	})

	repos := repository.NewRepositories(db)

	services := service.NewServices(service.Deps{
		Repos:        repos,
		Logger:       log,
		Config:       cfg,
		FileStorage:  fileStorage,
		Availability: directory,
		Directory:    directory,
		Dispatcher:   dispatcher,
		Renderer:     report.NewPDFRenderer(cfg.Clinic),
		Metrics:      collector,
	})

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())

	handler := rest.NewHandler(services, auth.NewTokenParser(cfg.JWT.SigningKey), collector, log, cfg)
	handler.InitRoutes(router)

	srv := &http.Server{
		Addr:           ":" + cfg.HTTP.Port,
		Handler:        router,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderMB << 20,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("failed to start server", zap.Error(err))
		}
	}()

	log.Info("server started", zap.String("addr", srv.Addr))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown failed", zap.Error(err))
	}

	if err := dispatcher.Shutdown(shutdownCtx); err != nil {
		log.Warn("pending notifications were not delivered", zap.Error(err))
	}

	if err := tp.Shutdown(shutdownCtx); err != nil {
		log.Warn("tracer shutdown failed", zap.Error(err))
	}

	log.Info("server stopped")
}
