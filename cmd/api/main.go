package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"url-admin/pkg/api"
	"url-admin/pkg/cli/logger"
	"url-admin/pkg/config"
	"url-admin/pkg/db"
	"url-admin/pkg/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	zapCfg := zap.NewProductionConfig()
	zapCfg.Level = zap.NewAtomicLevelAt(logger.ParseLevel(cfg.Log.Level))
	zlog, err := zapCfg.Build()
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer zlog.Sync()

	gin.SetMode(gin.ReleaseMode)

	auth, err := services.NewAuthService(cfg.API.Username, cfg.API.Password, []byte(cfg.API.JWTSecret), services.DefaultTokenTTL)
	if err != nil {
		zlog.Fatal("failed to set up auth", zap.Error(err))
	}
	if cfg.API.JWTSecret == "" {
		zlog.Warn("api.jwt_secret is empty, tokens will not survive a restart")
	}

	ctx := context.Background()

	// Postgres when configured, otherwise records live in memory
	var store services.URLStore = services.NewURLService()
	if cfg.API.DatabaseURL != "" {
		database, err := db.New(ctx, cfg.API.DatabaseURL)
		if err != nil {
			zlog.Fatal("failed to connect to database", zap.Error(err))
		}
		defer database.Close()
		store = database
		zlog.Info("using postgres url store")
	} else {
		zlog.Info("using in-memory url store")
	}

	// Initialize router
	router := api.NewRouter(store, auth, zlog)

	// Create server
	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.API.Host, cfg.API.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		zlog.Info("API server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("server failed", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zlog.Info("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zlog.Fatal("server forced to shutdown", zap.Error(err))
	}

	zlog.Info("server exited")
}
