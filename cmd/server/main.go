package main

import (
	"database/sql"
	"flag"
	"log"
	"net/http"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	api "skillswap-backend/internal/api/http"
	"skillswap-backend/internal/config"
	"skillswap-backend/internal/jobs"
	"skillswap-backend/internal/logger"
	"skillswap-backend/internal/push"
	"skillswap-backend/internal/repository/postgres"
	"skillswap-backend/internal/scheduler"
	"skillswap-backend/internal/security"
	"skillswap-backend/internal/service"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Optional .env next to the binary; env vars override the YAML file.
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting SkillSwap backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	// Run migrations
	if cfg.Database.MigrationsDir != "" {
		m, err := migrate.New("file://"+cfg.Database.MigrationsDir, cfg.GetDatabaseConnectionString())
		if err != nil {
			logger.Error("Failed to initialize migrations", "error", err)
			log.Fatalf("Failed to initialize migrations: %v", err)
		}
		if err := m.Up(); err != nil && err != migrate.ErrNoChange {
			logger.Error("Failed to run migrations", "error", err)
			log.Fatalf("Failed to run migrations: %v", err)
		}
		logger.Info("Database migrations applied")
	}

	// Initialize Database
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Test database connection
	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Security
	tokenManager := security.NewTokenManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry, cfg.JWT.RefreshTokenExpiry)
	authMiddleware := api.NewAuthMiddleware(tokenManager)

	// Initialize Push Publisher
	var publisher push.Publisher
	if cfg.Redis.Addr != "" {
		redisPublisher, err := push.NewRedisPublisher(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			logger.Error("Failed to connect to redis", "error", err)
			log.Fatalf("Failed to connect to redis: %v", err)
		}
		publisher = redisPublisher
		logger.Info("Push publishing via redis", "addr", cfg.Redis.Addr)
	} else {
		publisher = push.NopPublisher{}
		logger.Info("Push publishing disabled")
	}
	defer publisher.Close()

	// Initialize Services
	emailSvc := service.NewEmailService(cfg.Email.APIKey, cfg.Email.From, cfg.Email.FromName)
	authSvc := service.NewAuthService(store.UserRepository, store.LedgerRepository, tokenManager, cfg.Exchange.SignupGrantCredits)
	userSvc := service.NewUserService(store.UserRepository, store.SkillRepository)
	skillSvc := service.NewSkillService(store.SkillRepository)
	msgSvc := service.NewMessageService(store.MessageRepository, store.UserRepository, publisher)
	ledgerSvc := service.NewLedgerService(store.LedgerRepository)
	noteSvc := service.NewNotificationService(store.NotificationRepository)
	exchangeSvc := service.NewExchangeService(
		store.MessageRepository,
		store.SkillRepository,
		store.UserRepository,
		store.LedgerRepository,
		store.NotificationRepository,
		emailSvc,
		publisher,
	)

	// Initialize HTTP handlers
	handlers := api.Handlers{
		Auth:         api.NewAuthHandler(authSvc),
		User:         api.NewUserHandler(userSvc),
		Skill:        api.NewSkillHandler(skillSvc),
		Message:      api.NewMessageHandler(msgSvc),
		Exchange:     api.NewExchangeHandler(exchangeSvc),
		Ledger:       api.NewLedgerHandler(ledgerSvc),
		Notification: api.NewNotificationHandler(noteSvc),
	}
	router := api.NewRouter(handlers, authMiddleware)

	// Start the proposal expiry/reminder scheduler alongside the server.
	jobRunner := jobs.NewJobRunner(db, store, &jobs.Services{Email: emailSvc}, cfg)
	sched := scheduler.NewScheduler(jobRunner)
	sched.Start()
	defer sched.Stop()

	logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
	if err := http.ListenAndServe(cfg.GetServerAddress(), router); err != nil {
		logger.Error("HTTP server error", "error", err)
		log.Fatalf("Failed to serve: %v", err)
	}
}
