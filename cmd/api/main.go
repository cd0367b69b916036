package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/ArowuTest/lottery-results-backend/api/routes"
	"github.com/ArowuTest/lottery-results-backend/internal/config"
	"github.com/ArowuTest/lottery-results-backend/internal/handlers"
	"github.com/ArowuTest/lottery-results-backend/internal/logging"
	"github.com/ArowuTest/lottery-results-backend/internal/repositories"
	memrepo "github.com/ArowuTest/lottery-results-backend/internal/repositories/memory"
	mongorepo "github.com/ArowuTest/lottery-results-backend/internal/repositories/mongodb"
	"github.com/ArowuTest/lottery-results-backend/internal/services"
	"github.com/ArowuTest/lottery-results-backend/pkg/jwt"
	"github.com/ArowuTest/lottery-results-backend/pkg/lottery/parser"
	"github.com/ArowuTest/lottery-results-backend/pkg/lottery/patterns"
	"github.com/ArowuTest/lottery-results-backend/pkg/mongodb"
)

// memoryScheme selects the in-process store instead of MongoDB.
const memoryScheme = "memory://"

func main() {
	if err := run(); err != nil {
		slog.Error("server.exit", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger := logging.New(cfg.LogLevel)
	slog.SetDefault(logger)

	ps, err := patterns.LoadFile(cfg.Parser.PatternsFile)
	if err != nil {
		return err
	}

	ctx := context.Background()

	var (
		resultRepo repositories.ResultRepository
		adminRepo  repositories.AdminUserRepository
		pinger     handlers.Pinger
	)
	if strings.HasPrefix(cfg.MongoDB.URI, memoryScheme) {
		logger.Warn("storage.memory", "persisted", false)
		resultRepo = memrepo.NewResultRepository()
		adminRepo = memrepo.NewAdminUserRepository()
	} else {
		mongoClient, err := mongodb.NewClient(ctx, cfg.MongoDB.URI)
		if err != nil {
			return err
		}
		defer func() {
			if err := mongoClient.Disconnect(context.Background()); err != nil {
				logger.Error("storage.disconnect.failed", "error", err)
			}
		}()

		db := mongoClient.Database(cfg.MongoDB.Database)
		results := mongorepo.NewResultRepository(db)
		admins := mongorepo.NewAdminUserRepository(db)
		if err := results.EnsureIndexes(ctx); err != nil {
			return fmt.Errorf("creating result indexes: %w", err)
		}
		if err := admins.EnsureIndexes(ctx); err != nil {
			return fmt.Errorf("creating admin indexes: %w", err)
		}
		resultRepo, adminRepo, pinger = results, admins, mongoClient
	}

	tokens := jwt.NewTokenService(cfg.JWT.Secret, time.Duration(cfg.JWT.ExpiresIn)*time.Second)

	// Initialize services
	extractionService := services.NewExtractionService(parser.New(ps, parser.WithLogger(logger)), logger)
	resultService := services.NewResultService(resultRepo, ps, logger)
	authService := services.NewAuthService(adminRepo, tokens, logger)

	if cfg.Admin.Email != "" {
		created, err := authService.EnsureAdmin(ctx, cfg.Admin.Email, cfg.Admin.Password, cfg.Admin.Name)
		if err != nil {
			return fmt.Errorf("seeding admin user: %w", err)
		}
		if created {
			logger.Info("auth.admin.seeded", "email", cfg.Admin.Email)
		}
	}

	router := routes.SetupRouter(routes.HandlerDependencies{
		AuthHandler:    handlers.NewAuthHandler(authService, logger),
		ResultHandler:  handlers.NewResultHandler(extractionService, resultService, logger, cfg.Server.MaxUploadBytes),
		Tokens:         tokens,
		Database:       pinger,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Logger:         logger,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("server.start", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-serveErr:
		return fmt.Errorf("listening: %w", err)
	case <-quit:
	}
	logger.Info("server.shutdown")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	logger.Info("server.exited")
	return nil
}
