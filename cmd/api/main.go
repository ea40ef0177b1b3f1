package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/family-photo-service/internal/api/http"
	"github.com/spec-kit/family-photo-service/internal/api/http/handlers"
	"github.com/spec-kit/family-photo-service/internal/auth"
	"github.com/spec-kit/family-photo-service/internal/config"
	"github.com/spec-kit/family-photo-service/internal/events"
	"github.com/spec-kit/family-photo-service/internal/observability"
	"github.com/spec-kit/family-photo-service/internal/persistence"
	"github.com/spec-kit/family-photo-service/internal/repository"
	"github.com/spec-kit/family-photo-service/internal/service"
	"github.com/spec-kit/family-photo-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	tokenManager, err := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTL(), cfg.Auth.RefreshTokenTTL())
	if err != nil {
		logger.Fatal("failed to init token manager", zap.Error(err))
	}
	tokenValidator := auth.NewTokenValidator(tokenManager)

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	adminRepo := repository.NewAdminRepository(pool)
	familyRepo := repository.NewFamilyRepository(pool)
	albumRepo := repository.NewAlbumRepository(pool)
	photoRepo := repository.NewPhotoRepository(pool)
	letterRepo := repository.NewLetterRepository(pool)
	scheduleRepo := repository.NewScheduleRepository(pool)
	fontRepo := repository.NewFontRepository(pool)

	sessionRepo := repository.NewSessionRepository(redis.Client, cfg.Auth.RefreshTokenTTL())
	blacklistRepo := repository.NewBlacklistRepository(redis.Client)
	inviteRepo := repository.NewInviteCodeRepository(redis.Client, cfg.Auth.InviteCodeTTL())

	var metrics *observability.Metrics
	if cfg.Metrics.Enabled {
		metrics = observability.NewMetrics()
		metricsServer := metrics.ServeMetrics(cfg.Metrics.Addr)
		defer func() {
			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer shutdownCancel()
			_ = metricsServer.Shutdown(shutdownCtx)
		}()
		logger.Info("metrics listening", zap.String("addr", cfg.Metrics.Addr))
	}

	dispatcher := events.NewInMemoryDispatcher()
	fileService := service.NewFileService(cfg.Storage)
	providerClient := service.NewProviderClient(cfg.Auth)

	blacklistService := service.NewBlacklistService(tokenManager, blacklistRepo, logger)
	tokenService := service.NewTokenService(tokenManager, sessionRepo, blacklistService, metrics, logger)
	authService := service.NewAuthService(userRepo, adminRepo, providerClient, tokenService, logger)

	userService := service.NewUserService(userRepo, letterRepo, fileService, logger)
	familyService := service.NewFamilyService(familyRepo, userRepo, albumRepo, inviteRepo, fileService, dispatcher, logger)
	albumService := service.NewAlbumService(albumRepo, fileService, logger)
	photoService := service.NewPhotoService(photoRepo, albumService, fileService, dispatcher, logger)
	letterService := service.NewLetterService(letterRepo, userRepo, fileService, dispatcher, logger)
	scheduleService := service.NewScheduleService(scheduleRepo, albumService, dispatcher, logger)
	fontService := service.NewFontService(fontRepo, fileService, logger)

	notificationService := service.NewNotificationService(dispatcher, familyService, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService, logger)

	authMiddleware := auth.NewAuthMiddleware(tokenManager, tokenValidator, blacklistService)

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:           handlers.NewAuthHandler(authService, tokenService),
		Users:          handlers.NewUsersHandler(userService),
		Families:       handlers.NewFamiliesHandler(familyService, userService, fileService),
		Albums:         handlers.NewAlbumsHandler(albumService, userService),
		Photos:         handlers.NewPhotosHandler(photoService, userService),
		Letters:        handlers.NewLettersHandler(letterService),
		Schedules:      handlers.NewSchedulesHandler(scheduleService, userService),
		Fonts:          handlers.NewFontsHandler(fontService),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
