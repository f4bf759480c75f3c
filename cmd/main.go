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
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/classroom-roster/config"
	"github.com/oksasatya/classroom-roster/internal/application"
	"github.com/oksasatya/classroom-roster/internal/container"
	"github.com/oksasatya/classroom-roster/internal/infrastructure/memory"
	pginfra "github.com/oksasatya/classroom-roster/internal/infrastructure/postgres"
	"github.com/oksasatya/classroom-roster/internal/router"
	"github.com/oksasatya/classroom-roster/pkg/helpers"
	"github.com/oksasatya/classroom-roster/pkg/validation"
)

func main() {
	_ = godotenv.Load() // load .env if present

	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName, cfg.Env, cfg.LogLevel)
	gin.SetMode(cfg.GinMode)
	validation.Init()

	ctx := context.Background()

	container.SetConfig(cfg)
	container.SetLogger(logger)
	container.SetSigner(helpers.NewSessionSigner(cfg.SessionSecret))
	if cfg.Env != "development" && cfg.SessionSecret == "devsessionsecret" {
		logger.Warn("SESSION_SECRET is the development default")
	}

	switch cfg.StoreDriver {
	case "memory":
		logger.Warn("using in-memory store; data is lost on restart")
		store := memory.NewStore()
		container.SetRepositories(container.Repositories{
			Users:       store.Users(),
			Classes:     store.Classes(),
			Enrollments: store.Enrollments(),
		})
	case "postgres":
		pool, err := pginfra.NewPool(ctx, cfg)
		if err != nil {
			logger.Fatalf("failed to connect to postgres: %v", err)
		}
		defer pool.Close()
		if err := pginfra.RunMigrations(cfg.PostgresDSN(), cfg.MigrationsDir, logger); err != nil {
			logger.Fatalf("migration failed: %v", err)
		}
		container.SetPGPool(pool)
		container.SetRepositories(container.Repositories{
			Users:       pginfra.NewUserRepository(pool),
			Classes:     pginfra.NewClassRepository(pool),
			Enrollments: pginfra.NewEnrollmentRepository(pool),
		})
	default:
		logger.Fatalf("unknown STORE_DRIVER %q", cfg.StoreDriver)
	}

	// Optional infrastructure; each is skipped when unconfigured.
	if cfg.RedisAddr != "" {
		rdb := helpers.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		defer func() { _ = rdb.Close() }()
		if err := helpers.PingRedis(ctx, rdb, 2*time.Second); err != nil {
			logger.WithError(err).Warn("redis unavailable; session cache disabled")
		} else {
			container.SetRedis(rdb)
		}
	}
	if cfg.RabbitMQURL != "" {
		pub, err := helpers.NewRabbitPublisher(cfg.RabbitMQURL, cfg.RabbitMQEmailQueue)
		if err != nil {
			logger.WithError(err).Warn("rabbitmq unavailable; emails disabled")
		} else {
			defer pub.Close()
			container.SetRabbitPub(pub)
		}
	}
	if addrs := cfg.ESAddrs(); len(addrs) > 0 {
		es, err := helpers.NewESClient(addrs, cfg.ElasticsearchUser, cfg.ElasticsearchPass)
		if err != nil {
			logger.WithError(err).Warn("elasticsearch unavailable; user search disabled")
		} else {
			container.SetES(es)
			idx := application.NewUserIndex(es, cfg.ESUsersIndex, logger)
			if err := idx.EnsureIndex(ctx); err != nil {
				logger.WithError(err).Warn("could not create users index")
			}
		}
	}

	r := router.New()

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r, ReadHeaderTimeout: 10 * time.Second}
	go func() {
		logger.WithFields(logrus.Fields{"port": cfg.Port, "store": cfg.StoreDriver}).Info("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("listen: %s\n", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctxShutdown); err != nil {
		logger.Fatalf("server forced to shutdown: %v", err)
	}
	logger.Info("server exited properly")
}
