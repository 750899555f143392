package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"restaurant_backend/database"
	"restaurant_backend/internal/auth"
	"restaurant_backend/internal/cache"
	"restaurant_backend/internal/config"
	"restaurant_backend/internal/email"
	"restaurant_backend/internal/handlers"
	"restaurant_backend/internal/imageprocessor"
	"restaurant_backend/internal/logger"
	"restaurant_backend/internal/middleware"
	"restaurant_backend/internal/models"
	"restaurant_backend/internal/repositories"
	"restaurant_backend/internal/routes"
	"restaurant_backend/internal/services"
	"restaurant_backend/internal/storage"
	"restaurant_backend/internal/validator"
	"restaurant_backend/internal/workers"
	"restaurant_backend/ws"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Dependencies are the external collaborators SetupRouter wires in.
type Dependencies struct {
	Cache   cache.Cache
	Storage storage.Storage
	Mailer  email.Provider
}

// Server is the assembled application.
type Server struct {
	Router   *gin.Engine
	Services *services.ServiceContainer
	WS       *ws.Manager
}

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	logger.Info("Connecting to database...")
	gormDB, err := database.Connect(cfg.Database.DSN)
	if err != nil {
		logger.Fatal("Failed to connect to GORM", "error", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("Failed to get *sql.DB from GORM", "error", err)
	}
	if err = sqlDB.Ping(); err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}
	logger.Info("Database connected")

	if err := database.AutoMigrate(gormDB); err != nil {
		logger.Fatal("Migration failed", "error", err)
	}
	if err := seedFirstAdmin(gormDB, cfg); err != nil {
		logger.Fatal("Failed to seed first admin user", "error", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	deps, err := buildDependencies(ctx, cfg)
	if err != nil {
		logger.Fatal("Failed to initialize dependencies", "error", err)
	}

	server := SetupRouter(ctx, cfg, gormDB, deps)

	var scheduler *workers.Scheduler
	if cfg.Workers.Enabled {
		scheduler = workers.NewScheduler(gormDB, server.Services.ReservationService, server.Services.NotificationService, workers.Schedule{
			ReservationSweep:      cfg.Workers.ReservationSweep,
			NotificationCleanup:   cfg.Workers.NotificationCleanup,
			NotificationRetention: cfg.Workers.NotificationRetention,
		})
		if err := scheduler.Start(); err != nil {
			logger.Fatal("Failed to start workers", "error", err)
		}
	}

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	httpServer := &http.Server{
		Addr:              address,
		Handler:           server.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Server starting", "address", address)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server startup error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown failed", "error", err)
	}
	if scheduler != nil {
		scheduler.Stop()
	}
	server.Services.Notifier.Wait()
	if closer, ok := deps.Cache.(interface{ Close() error }); ok {
		_ = closer.Close()
	}
	_ = sqlDB.Close()
}

func buildDependencies(ctx context.Context, cfg *config.Config) (Dependencies, error) {
	var deps Dependencies

	cacheStore, err := cache.New(ctx, cache.Config{
		Addr:     cfg.Redis.Addr,
		Username: cfg.Redis.Username,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		logger.Warn("Redis unavailable, restaurant cache disabled", "addr", cfg.Redis.Addr, "error", err)
		cacheStore = cache.NewNoop()
	}
	deps.Cache = cacheStore

	deps.Storage, err = storage.NewStorage(storage.Config{
		Type:       cfg.Storage.Type,
		BasePath:   cfg.Storage.BasePath,
		BaseURL:    cfg.Storage.BaseURL,
		Bucket:     cfg.Storage.Bucket,
		AccessKey:  cfg.Storage.AccessKey,
		SecretKey:  cfg.Storage.SecretKey,
		Endpoint:   cfg.Storage.Endpoint,
		PublicRead: cfg.Storage.PublicRead,
		CloudName:  cfg.Storage.CloudName,
	})
	if err != nil {
		return deps, fmt.Errorf("storage: %w", err)
	}
	logger.Info("Storage initialized", "type", deps.Storage.Provider())

	if cfg.Email.SMTPHost != "" {
		deps.Mailer, err = email.NewGomailProvider(email.Config{
			SMTPHost:     cfg.Email.SMTPHost,
			SMTPPort:     cfg.Email.SMTPPort,
			SMTPUsername: cfg.Email.SMTPUsername,
			SMTPPassword: cfg.Email.SMTPPassword,
			FromEmail:    cfg.Email.FromEmail,
			FromName:     cfg.Email.FromName,
		})
	} else {
		logger.Warn("SMTP is not configured, emails are only logged")
		deps.Mailer, err = newLogMailer()
	}
	if err != nil {
		return deps, fmt.Errorf("email: %w", err)
	}

	return deps, nil
}

// SetupRouter wires repositories, services, handlers and routes. The
// websocket manager runs until ctx is cancelled.
func SetupRouter(ctx context.Context, cfg *config.Config, gormDB *gorm.DB, deps Dependencies) *Server {
	wsManager := ws.NewManager()
	go wsManager.Run(ctx)

	serviceContainer := initializeServices(cfg, gormDB, deps, wsManager)

	tokens := auth.NewTokenManager(cfg.JWT.Secret, cfg.JWT.TTL)
	userRepo := repositories.NewUserRepository()
	guards := &handlers.Guards{
		Auth:         middleware.AuthMiddleware(tokens, userRepo),
		OptionalAuth: middleware.OptionalAuthMiddleware(tokens, userRepo),
		Access:       serviceContainer.AccessService,
	}

	baseHandler := handlers.NewBaseHandler(validator.New())
	appHandlers := handlers.NewAppHandlers(baseHandler, serviceContainer, guards)

	ginRouter := initializeGinRouter(gormDB)

	opts := routes.Options{}
	if deps.Storage.Provider() == "local" {
		opts.UploadsDir = cfg.Storage.BasePath
		opts.UploadsURL = cfg.Storage.BaseURL
	}
	routes.RegisterRoutes(ginRouter, appHandlers, guards, ws.NewHandler(wsManager), opts)

	return &Server{
		Router:   ginRouter,
		Services: serviceContainer,
		WS:       wsManager,
	}
}

func initializeServices(cfg *config.Config, gormDB *gorm.DB, deps Dependencies, pusher services.Pusher) *services.ServiceContainer {
	// --- Repositories ---
	userRepo := repositories.NewUserRepository()
	restaurantRepo := repositories.NewRestaurantRepository()
	businessUserRepo := repositories.NewBusinessUserRepository()
	followRepo := repositories.NewFollowRepository()
	reservationRepo := repositories.NewReservationRepository()
	postRepo := repositories.NewPostRepository()
	reviewRepo := repositories.NewReviewRepository()
	notificationRepo := repositories.NewNotificationRepository()
	uploadRepo := repositories.NewUploadRepository()

	// --- Services ---
	tokens := auth.NewTokenManager(cfg.JWT.Secret, cfg.JWT.TTL)
	notifier := services.NewNotificationEmitter(gormDB, notificationRepo, pusher)

	accessService := services.NewAccessService(restaurantRepo, postRepo, reservationRepo, businessUserRepo)
	restaurantService := services.NewRestaurantService(restaurantRepo, businessUserRepo, followRepo, userRepo, deps.Cache, cfg.Redis.TTL, notifier)
	uploadService := services.NewUploadService(uploadRepo, deps.Storage, imageprocessor.NewProcessor(cfg.Upload.ImageQuality), services.UploadSettings{
		MaxSize:       cfg.Upload.MaxSize,
		AllowedTypes:  cfg.Upload.AllowedTypes,
		ImageMaxWidth: cfg.Upload.ImageMaxWidth,
	})

	return &services.ServiceContainer{
		AccessService:       accessService,
		AuthService:         services.NewAuthService(userRepo, tokens),
		ProfileService:      services.NewProfileService(userRepo),
		RestaurantService:   restaurantService,
		ReservationService:  services.NewReservationService(reservationRepo, restaurantRepo, businessUserRepo, userRepo, accessService, notifier, deps.Mailer),
		PostService:         services.NewPostService(postRepo, restaurantRepo, followRepo, businessUserRepo, accessService, notifier),
		ReviewService:       services.NewReviewService(reviewRepo, restaurantRepo, restaurantService, notifier),
		NotificationService: services.NewNotificationService(notificationRepo),
		UploadService:       uploadService,
		EmailService:        deps.Mailer,
		Notifier:            notifier,
	}
}

func initializeGinRouter(db *gorm.DB) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.DBMiddleware(db))
	return router
}

func seedFirstAdmin(db *gorm.DB, cfg *config.Config) error {
	adminEmail := strings.ToLower(strings.TrimSpace(cfg.FirstAdminEmail))
	adminPassword := cfg.FirstAdminPassword

	if adminEmail == "" || adminPassword == "" {
		logger.Warn("FIRST_ADMIN_EMAIL or FIRST_ADMIN_PASSWORD is not set. Skipping admin seeding.")
		return nil
	}

	users := repositories.NewUserRepository()
	if _, err := users.FindByEmail(db, adminEmail); err == nil {
		logger.Info("Admin user already exists. Skipping creation.", "email", adminEmail)
		return nil
	} else if !errors.Is(err, repositories.ErrUserNotFound) {
		return fmt.Errorf("failed to check for admin user: %w", err)
	}

	logger.Warn("No admin user found with specified email. Creating first admin...", "email", adminEmail)

	hashedPassword, err := auth.HashPassword(adminPassword)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	admin := &models.User{
		Email:        adminEmail,
		PasswordHash: hashedPassword,
		Name:         "Administrator",
		Role:         models.UserRoleAdmin,
		Status:       models.UserStatusActive,
	}
	if err := users.Create(db, admin); err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}

	logger.Info("Created first admin user", "email", adminEmail)
	return nil
}
