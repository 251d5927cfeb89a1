package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"chefhire_backend/internal/auth"
	"chefhire_backend/internal/cache"
	"chefhire_backend/internal/config"
	"chefhire_backend/internal/email"
	"chefhire_backend/internal/handlers"
	"chefhire_backend/internal/logger"
	"chefhire_backend/internal/middleware"
	"chefhire_backend/internal/models"
	"chefhire_backend/internal/repositories"
	"chefhire_backend/internal/routes"
	"chefhire_backend/internal/services"
	"chefhire_backend/internal/services/payment"
	"chefhire_backend/internal/storage"
	"chefhire_backend/internal/validator"
	"chefhire_backend/internal/workers"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Run wires the whole application together and blocks until shutdown.
func Run() error {
	config.LoadConfig()
	cfg := config.GetConfig()

	logger.Init(cfg.Server.Env)

	db, err := openDatabase(cfg)
	if err != nil {
		return fmt.Errorf("database: %w", err)
	}

	if err := migrate(db); err != nil {
		return fmt.Errorf("migrations: %w", err)
	}
	if err := seedFirstAdmin(db, cfg); err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}

	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		// Caching is an optimization; the API works without it.
		logger.Warn("redis unavailable, running without caches", "error", err.Error())
		redisClient = nil
	}

	store, err := storage.NewStorage(storage.Config{
		Type:      cfg.Storage.Type,
		BasePath:  cfg.Storage.BasePath,
		BaseURL:   cfg.Storage.BaseURL,
		Bucket:    cfg.Storage.Bucket,
		AccessKey: cfg.Storage.AccessKey,
		SecretKey: cfg.Storage.SecretKey,
		Endpoint:  cfg.Storage.Endpoint,
		UseSSL:    cfg.Storage.UseSSL,
	})
	if err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	if ms, ok := store.(*storage.MinioStorage); ok {
		if err := ms.EnsureBucket(context.Background()); err != nil {
			return fmt.Errorf("storage bucket: %w", err)
		}
	}

	var mail email.Provider
	if cfg.Email.SMTPHost != "" {
		smtp, err := email.NewSMTPProvider(cfg, appURL(cfg))
		if err != nil {
			return fmt.Errorf("email: %w", err)
		}
		mail = smtp
	} else {
		logger.Warn("smtp not configured, using mock email provider")
		mail = &MockEmailProvider{}
	}
	defer mail.Close()

	svc := buildServices(cfg, db, redisClient, store, mail)
	router := buildRouter(db, svc)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	startWorkers(ctx, svc, db)

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", srv.Addr, "env", cfg.Server.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		logger.Info("shutting down", "signal", sig.String())
	}

	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	return srv.Shutdown(shutdownCtx)
}

func openDatabase(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return db, nil
}

func migrate(db *gorm.DB) error {
	// uuid_generate_v4 backs the primary key defaults.
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`).Error; err != nil {
		return err
	}

	return db.AutoMigrate(
		&models.User{},
		&models.RefreshToken{},
		&models.Resume{},
		&models.Upload{},
		&models.SubscriptionPlan{},
		&models.UserSubscription{},
		&models.PaymentOrder{},
		&models.Announcement{},
	)
}

// seedFirstAdmin bootstraps the configured admin account once.
func seedFirstAdmin(db *gorm.DB, cfg *config.Config) error {
	if cfg.FirstAdminEmail == "" || cfg.FirstAdminPassword == "" {
		return nil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.User{}).
			Where("email = ?", cfg.FirstAdminEmail).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil
		}

		hash, err := auth.HashPassword(cfg.FirstAdminPassword)
		if err != nil {
			return err
		}

		admin := &models.User{
			Name:         "Administrator",
			Email:        cfg.FirstAdminEmail,
			PasswordHash: hash,
			Role:         models.UserRoleAdmin,
			Status:       models.UserStatusActive,
			IsVerified:   true,
		}
		if err := tx.Create(admin).Error; err != nil {
			return err
		}

		logger.Info("seeded first admin", "email", cfg.FirstAdminEmail)
		return nil
	})
}

func buildServices(
	cfg *config.Config,
	db *gorm.DB,
	redisClient *redis.Client,
	store storage.Storage,
	mail email.Provider,
) *services.ServiceContainer {
	userRepo := repositories.NewUserRepository(db)
	resumeRepo := repositories.NewResumeRepository(db)
	subRepo := repositories.NewSubscriptionRepository(db)
	announcementRepo := repositories.NewAnnouncementRepository(db)
	uploadRepo := repositories.NewUploadRepository(db)

	var searchCache *cache.SearchCache
	var userCache *cache.UserCache
	if redisClient != nil {
		searchCache = cache.NewSearchCache(redisClient)
		userCache = cache.NewUserCache(redisClient)
	}

	gateway := payment.NewGateway(cfg)
	poller := payment.NewPoller(gateway)
	signedTTL := time.Duration(cfg.Upload.SignedURLTTL) * time.Minute

	return &services.ServiceContainer{
		Auth:         services.NewAuthService(userRepo, mail),
		User:         services.NewUserService(userRepo, userCache, searchCache),
		Resume:       services.NewResumeService(resumeRepo, searchCache, userCache, store, signedTTL),
		Search:       services.NewSearchService(resumeRepo, searchCache, store, signedTTL),
		Subscription: services.NewSubscriptionService(subRepo, userRepo, gateway, poller, mail, userCache),
		Announcement: services.NewAnnouncementService(announcementRepo),
		Upload:       services.NewUploadService(uploadRepo, resumeRepo, store, cfg),
		Export:       services.NewExportService(resumeRepo),
	}
}

func buildRouter(db *gorm.DB, svc *services.ServiceContainer) *gin.Engine {
	cfg := config.GetConfig()
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggingMiddleware())
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.DBMiddleware(db))

	base := handlers.NewBaseHandler(validator.New())
	h := &handlers.AppHandlers{
		Auth:         handlers.NewAuthHandler(base, svc.Auth),
		User:         handlers.NewUserHandler(base, svc.User),
		Resume:       handlers.NewResumeHandler(base, svc.Resume, svc.Export),
		Search:       handlers.NewSearchHandler(base, svc.Search),
		Subscription: handlers.NewSubscriptionHandler(base, svc.Subscription),
		Announcement: handlers.NewAnnouncementHandler(base, svc.Announcement),
		File:         handlers.NewFileHandler(base, svc.Upload),
	}

	routes.RegisterRoutes(r, h)
	return r
}

func startWorkers(ctx context.Context, svc *services.ServiceContainer, db *gorm.DB) {
	userRepo := repositories.NewUserRepository(db)

	go workers.NewSubscriptionWorker(svc.Subscription).Run(ctx)
	go workers.NewPaymentWorker(svc.Subscription).Run(ctx)
	go workers.NewTokenCleanupWorker(userRepo).Run(ctx)
}

func appURL(cfg *config.Config) string {
	host := cfg.Server.Host
	if host == "" {
		host = "localhost"
	}
	return fmt.Sprintf("http://%s:%d", host, cfg.Server.Port)
}
