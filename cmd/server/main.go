// IAM service entry point: loads configuration, connects Mongo and Redis,
// runs the one-time bootstrap seeding, and serves the HTTP API.
//
// @title        IAM Service API
// @version      1.0
// @description  Identity and access management for the admin application.
//
// @securityDefinitions.apikey BearerAuth
// @in   header
// @name Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ayurveda/iam-service/internal/api"
	"github.com/ayurveda/iam-service/internal/core/service"
	"github.com/ayurveda/iam-service/internal/infrastructure/bootstrap"
	mongodb "github.com/ayurveda/iam-service/internal/infrastructure/db/mongo"
	redisdb "github.com/ayurveda/iam-service/internal/infrastructure/db/redis"
	"github.com/ayurveda/iam-service/internal/infrastructure/instrument"
	"github.com/ayurveda/iam-service/internal/infrastructure/queue"
	"github.com/ayurveda/iam-service/internal/pkg/config"
	"github.com/ayurveda/iam-service/pkg/logger"
)

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET must be set")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Stores ---
	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = client.Disconnect(disconnectCtx)
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() { _ = rdb.Close() }()

	userRepo := mongodb.NewUserRepository(db)
	roleRepo := mongodb.NewRoleRepository(db)
	auditRepo := mongodb.NewAuditRepository(db)
	lastLogin := redisdb.NewLastLoginStore(rdb)

	if err := mongodb.EnsureSchema(ctx, userRepo, roleRepo); err != nil {
		log.Fatal().Err(err).Msg("index creation failed")
	}

	// --- Core services ---
	hasher := instrument.NewHasher(service.NewBcryptHasher(cfg.BcryptCost, cfg.HashWorkers))
	issuer := service.NewJWTIssuer(cfg.JWTSecret, cfg.TokenTTL)
	registry := service.NewRoleRegistry(roleRepo, log)
	userService := service.NewUserService(userRepo, registry, hasher, log)

	auditService := service.NewAuditService(auditRepo, lastLogin, log)
	dispatcher := queue.NewDispatcher(cfg.AuditWorkers, auditService, log)
	dispatcher.Start(ctx)

	authService := service.NewAuthService(userRepo, hasher, issuer, dispatcher, log)

	// One-time bootstrap: role seeding (idempotent) and demo accounts must
	// finish before the server accepts traffic.
	seeder := bootstrap.NewSeeder(registry, userRepo, hasher, log)
	if err := seeder.Run(ctx, cfg.SeedDemoUsers); err != nil {
		log.Fatal().Err(err).Msg("bootstrap seeding failed")
	}

	// --- HTTP ---
	e := api.NewRouter(api.Deps{
		AuthService: authService,
		UserService: userService,
		TokenIssuer: issuer,
		LastLogin:   lastLogin,
		Mongo:       db,
		Redis:       rdb,
		Log:         log,
	})

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("iam service started")

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
		os.Exit(1)
	}
}
