package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"dashboard-service/internal/config"
	"dashboard-service/internal/database/minio"
	"dashboard-service/internal/database/postgres"
	"dashboard-service/internal/database/redis"
	"dashboard-service/internal/event"
	"dashboard-service/internal/filestore"
	"dashboard-service/internal/handlers"
	"dashboard-service/internal/repository"
	"dashboard-service/internal/schema"
	"dashboard-service/internal/services"

	"github.com/gin-gonic/gin"
)

func setupLogging(logDir string) (*os.File, error) {
	err := os.MkdirAll(logDir, 0o755)
	if err != nil {
		return nil, fmt.Errorf("failed to create log directory: %v", err)
	}

	currentTime := time.Now()
	logFileName := fmt.Sprintf("log_%s.log", currentTime.Format("2006-01-02"))
	logFile := filepath.Join(logDir, logFileName)

	file, err := os.OpenFile(logFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %v", err)
	}

	log.SetOutput(file)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	return file, nil
}

func main() {
	cfg := config.New()

	logFile, err := setupLogging(cfg.LogDir)
	if err != nil {
		log.Fatalf("Failed to set up logging: %v", err)
	}
	defer logFile.Close()

	log.Printf("Connecting to PostgreSQL with: host=%s, port=%s, user=%s, dbname=%s",
		cfg.PostgresCfg.Host, cfg.PostgresCfg.Port, cfg.PostgresCfg.Username, cfg.PostgresCfg.DBname)
	db, err := postgres.ConnectAndCreateDB(cfg.PostgresCfg)
	if err != nil {
		log.Printf("error connect to database: %s", err)
		// Block until the database comes up; migration and seeding below
		// need a live connection.
		postgres.RetryConnectOnFailed(30*time.Second, &db, cfg.PostgresCfg)
	}
	defer db.Close()

	if err := postgres.Migrate(db); err != nil {
		log.Fatalf("Error migrating database: %v", err)
	}

	redisClient, err := redis.NewRedisClient(cfg.RedisCfg.Host, cfg.RedisCfg.Port, cfg.RedisCfg.Password, cfg.RedisCfg.DB)
	if err != nil {
		log.Fatalf("Error connecting to Redis: %v", err)
	}
	defer redisClient.Close()

	// MinIO mirrors raw-upload audit copies; the service runs without it.
	var archiver services.RawUploadArchiver
	if cfg.MinioCfg.Enabled == "true" {
		minioClient, err := minio.NewMinioClient(cfg.MinioCfg)
		if err != nil {
			log.Printf("MinIO unavailable, raw uploads kept local only: %v", err)
		} else {
			defer minioClient.Close()
			archiver = minioClient
		}
	}

	// RabbitMQ announces publishes to downstream consumers; also optional.
	var notifier services.PublishNotifier
	var eventMetrics handlers.EventMetricsSource
	if cfg.RabbitMQCfg.Enabled == "true" {
		rabbitConn, err := event.NewRabbitMQConnection(cfg.RabbitMQCfg)
		if err != nil {
			log.Printf("RabbitMQ unavailable, publish events disabled: %v", err)
		} else {
			defer rabbitConn.Close()
			publisher := event.NewPublishEventPublisher(rabbitConn)
			notifier = publisher
			eventMetrics = publisher
		}
	}

	store := filestore.NewFileStore(cfg.DataDir, cfg.SeedDir)
	if err := store.EnsureDirectories(); err != nil {
		log.Fatalf("Error preparing data directories: %v", err)
	}

	// repositories
	sourceRepository := repository.NewSourceRepository(db)
	historyRepository := repository.NewUploadHistoryRepository(db)
	userRepository := repository.NewUserRepository(db)
	sessionRepository := repository.NewSessionRepository(redisClient.GetClient())
	stageRepository := repository.NewStageRepository(redisClient.GetClient())

	// services
	schemaRegistry := schema.NewRegistry()
	authService := services.NewAuthService(userRepository, sessionRepository)
	uploadService := services.NewUploadService(sourceRepository, historyRepository, stageRepository, store, schemaRegistry, archiver, notifier)
	sourceService := services.NewSourceService(sourceRepository, historyRepository, store, services.DefaultFreshnessPolicy)
	dataService := services.NewDataService(store)

	if err := sourceRepository.Seed(services.DefaultSourceCatalog()); err != nil {
		log.Fatalf("Error seeding source catalog: %v", err)
	}
	if err := authService.SeedDefaultAdmin(cfg.AdminCfg.Username, cfg.AdminCfg.Password); err != nil {
		log.Fatalf("Error seeding default admin: %v", err)
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()
	r.Use(handlers.CORS())

	// handlers
	m := handlers.NewMiddleware(authService)
	authHandler := handlers.NewAuthHandler(authService, cfg.IsProduction())
	uploadHandler := handlers.NewUploadHandler(uploadService, cfg.IsProduction())
	sourceHandler := handlers.NewSourceHandler(sourceService, cfg.IsProduction())
	dataHandler := handlers.NewDataHandler(dataService, eventMetrics, cfg.IsProduction())

	authHandler.RegisterRoutes(r)
	uploadHandler.RegisterRoutes(r, m)
	sourceHandler.RegisterRoutes(r, m)
	dataHandler.RegisterRoutes(r)

	log.Printf("Starting dashboard-service on port %s [%s]", cfg.Port, cfg.Env)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
