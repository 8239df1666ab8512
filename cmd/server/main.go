package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"retailstore/backend/internal/config"
	"retailstore/backend/internal/httpserver"
	"retailstore/backend/internal/infrastructure/mongodb"
	"retailstore/backend/internal/infrastructure/token"
	"retailstore/backend/internal/logging"
	authusecase "retailstore/backend/internal/usecase/auth"
	customerusecase "retailstore/backend/internal/usecase/customer"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	rootCtx := context.Background()
	// Every handler depends on the store, so an unreachable store at
	// startup is fatal.
	db, err := mongodb.New(rootCtx, cfg.MongoURI, cfg.MongoDatabase, cfg.ConnectTimeout)
	if err != nil {
		logger.Fatal("failed to connect to mongodb", zap.Error(err))
	}
	logger.Info("connected to mongodb", zap.String("database", cfg.MongoDatabase))

	tokenManager := token.NewJWTManager(cfg.JWTSecret, cfg.JWTExpiry, cfg.JWTIssuer)
	authService := authusecase.NewService(tokenManager)
	customerService := customerusecase.NewService(mongodb.NewCustomerRepository(db, cfg.MongoTimeout))

	server := httpserver.NewServer(cfg, logger, authService, customerService)
	logger.Info("http server listening", zap.String("addr", server.Addr()))

	go func() {
		if err := server.Start(); err != nil {
			if errors.Is(err, http.ErrServerClosed) {
				logger.Info("http server closed")
				return
			}
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Warn("graceful shutdown failed", zap.Error(err))
	} else {
		logger.Info("graceful shutdown completed")
	}
	if err := db.Close(ctx); err != nil {
		logger.Warn("mongodb disconnect failed", zap.Error(err))
	}
}
