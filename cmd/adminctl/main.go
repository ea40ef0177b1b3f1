package main

import (
	"context"
	"flag"
	"log"

	"go.uber.org/zap"

	"github.com/spec-kit/family-photo-service/internal/config"
	"github.com/spec-kit/family-photo-service/internal/observability"
	"github.com/spec-kit/family-photo-service/internal/persistence"
	"github.com/spec-kit/family-photo-service/internal/repository"
	"github.com/spec-kit/family-photo-service/internal/service"
)

// adminctl provisions back-office accounts. Admin logins check a local bcrypt
// hash, so the only way to create one is through this command:
//
//	adminctl -email ops@example.com -name "Ops" -password <secret>
func main() {
	email := flag.String("email", "", "admin email")
	name := flag.String("name", "", "admin display name")
	password := flag.String("password", "", "admin password")
	flag.Parse()

	if *email == "" || *name == "" || *password == "" {
		log.Fatal("usage: adminctl -email <email> -name <name> -password <password>")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx := context.Background()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	adminRepo := repository.NewAdminRepository(pg.PoolHandle())
	authService := service.NewAuthService(nil, adminRepo, nil, nil, logger)

	admin, err := authService.ProvisionAdmin(ctx, *email, *name, *password, cfg.Auth.AdminBcryptCost)
	if err != nil {
		logger.Fatal("failed to provision admin", zap.Error(err))
	}
	logger.Info("admin created",
		zap.String("admin_id", admin.ID),
		zap.String("email", admin.Email))
}
