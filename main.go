package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"stocks-api/auth"
	"stocks-api/config"
	"stocks-api/database"
	"stocks-api/handlers"
	"stocks-api/middleware"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	envErr := godotenv.Load()

	cfg := config.Load()
	log := config.NewLogger(cfg.LogLevel)
	if envErr != nil {
		log.WithError(envErr).Debug("no .env file loaded")
	}
	if err := cfg.Validate(); err != nil {
		log.WithError(err).Fatal("Invalid configuration")
	}

	gin.SetMode(cfg.GinMode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := config.InitDB(cfg, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to the database")
	}
	sqlDB, err := db.DB()
	if err != nil {
		log.WithError(err).Fatal("Failed to get database instance")
	}
	defer sqlDB.Close()

	if err := database.Migrate(db); err != nil {
		log.WithError(err).Fatal("Failed to migrate models")
	}

	rdb, err := config.InitRedis(ctx, cfg)
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to Redis")
	}
	if rdb != nil {
		defer rdb.Close()
	}

	tokens, err := auth.NewTokenService(auth.TokenOptions{
		Secret:   cfg.JWTSecret,
		Issuer:   cfg.JWTIssuer,
		Audience: cfg.JWTAudience,
		TTL:      cfg.JWTTTL,
	})
	if err != nil {
		log.WithError(err).Fatal("Failed to create token service")
	}

	router := handlers.NewRouter(handlers.Deps{
		DB:          db,
		Cache:       database.NewStockCache(rdb, cfg.CacheTTL),
		Tokens:      tokens,
		Log:         log,
		Metrics:     middleware.NewMetrics(),
		MaxPageSize: cfg.MaxPageSize,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.WithField("addr", srv.Addr).Info("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("server failed")
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("graceful shutdown failed")
	}
}
