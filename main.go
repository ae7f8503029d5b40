package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"food-ordering-api/auth"
	"food-ordering-api/catalog"
	"food-ordering-api/config"
	"food-ordering-api/handlers"
	"food-ordering-api/logger"
	"food-ordering-api/middleware"
	"food-ordering-api/orders"
	"food-ordering-api/routes"
	"food-ordering-api/server"
	"food-ordering-api/store"
	"food-ordering-api/store/gormstore"
	"food-ordering-api/store/memory"
	"food-ordering-api/store/mongostore"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	zapLogger, err := logger.New(cfg.Log.Level)
	if err != nil {
		log.Fatalf("creating logger: %v", err)
	}
	defer zapLogger.Sync()

	gin.SetMode(cfg.Server.Mode)

	st, err := openStore(cfg.Store, zapLogger)
	if err != nil {
		zapLogger.Fatal("opening store", zap.String("driver", cfg.Store.Driver), zap.Error(err))
	}
	defer st.Close()

	if cfg.Store.Seed {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		store.Seed(ctx, st, zapLogger)
		cancel()
	}

	accounts, err := auth.NewService(st, auth.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL), cfg.Auth.BcryptCost)
	if err != nil {
		zapLogger.Fatal("creating account service", zap.Error(err))
	}

	h := handlers.New(handlers.Deps{
		Accounts:       accounts,
		Catalog:        catalog.NewService(st),
		Orders:         orders.NewService(st, st),
		Store:          st,
		ServiceName:    cfg.Server.ServiceName,
		TrackInterval:  cfg.Tracking.Interval,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Logger:         zapLogger,
	})

	router := routes.NewRouter(h, accounts, routes.Options{
		AllowedOrigins: cfg.Server.AllowedOrigins,
		AuthLimiter:    middleware.NewRateLimiter(cfg.RateLimit.AuthPerMinute, cfg.RateLimit.AuthBurst),
		Logger:         zapLogger,
	})

	srv := server.New(cfg.Server.Port, router, zapLogger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := srv.Start(); err != nil {
			zapLogger.Fatal("server error", zap.Error(err))
		}
	}()

	<-quit
	zapLogger.Info("received shutdown signal")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Error("server shutdown failed", zap.Error(err))
		return
	}

	zapLogger.Info("server stopped gracefully")
}

func openStore(cfg config.StoreConfig, logger *zap.Logger) (store.Store, error) {
	switch cfg.Driver {
	case config.DriverMemory:
		logger.Warn("using in-memory store, data is lost on restart")
		return memory.New(), nil
	case config.DriverMongo:
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		s, err := mongostore.Open(ctx, cfg, logger)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		s, err := gormstore.Open(cfg, logger)
		if err != nil {
			return nil, err
		}
		return s, nil
	}
}
