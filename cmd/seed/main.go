package main

import (
	"context"
	"errors"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/classroom-roster/config"
	"github.com/oksasatya/classroom-roster/internal/application"
	"github.com/oksasatya/classroom-roster/internal/domain/entity"
	repo "github.com/oksasatya/classroom-roster/internal/domain/repository"
	pginfra "github.com/oksasatya/classroom-roster/internal/infrastructure/postgres"
	"github.com/oksasatya/classroom-roster/pkg/helpers"
)

// seed makes sure SEED_ADMIN_EMAIL exists as an ADMIN. The account has no
// password; whoever logs in with that email first sets it.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env, cfg.LogLevel)
	ctx := context.Background()

	pool, err := pginfra.NewPool(ctx, cfg)
	if err != nil {
		logger.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()

	if err := pginfra.RunMigrations(cfg.PostgresDSN(), cfg.MigrationsDir, logger); err != nil {
		logger.Fatalf("migration failed: %v", err)
	}

	users := pginfra.NewUserRepository(pool)
	email := application.NormalizeEmail(cfg.SeedAdminEmail)

	u, err := users.GetByEmail(ctx, email)
	switch {
	case err == nil:
		if u.Role == entity.RoleAdmin {
			logger.WithField("email", email).Info("admin already present")
			return
		}
		u.Role = entity.RoleAdmin
		if err := users.Update(ctx, u); err != nil {
			logger.Fatalf("failed to promote %s: %v", email, err)
		}
		logger.WithFields(logrus.Fields{"id": u.ID, "email": email}).Info("promoted existing user to admin")
	case errors.Is(err, repo.ErrNotFound):
		token, err := helpers.GenerateToken(32)
		if err != nil {
			logger.Fatalf("failed to generate token: %v", err)
		}
		u = &entity.User{Email: email, Name: cfg.SeedAdminName, Role: entity.RoleAdmin, Token: token}
		if err := users.Create(ctx, u); err != nil {
			logger.Fatalf("failed to seed admin: %v", err)
		}
		logger.WithFields(logrus.Fields{"id": u.ID, "email": email}).Info("seeded admin; first login sets the password")
	default:
		logger.Fatalf("failed to look up %s: %v", email, err)
	}
}
