package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"quizgym/internal/app"
	"quizgym/internal/cache"
	"quizgym/internal/db"
	"quizgym/internal/logging"

	"github.com/joho/godotenv"
)

func main() {
	envErr := godotenv.Load()

	cfg := app.LoadConfig()
	logging.Setup(cfg.LogLevel, cfg.LogFormat)
	if envErr != nil {
		slog.Debug("no .env file loaded", "error", envErr)
	}

	ctx := context.Background()
	dbConn, err := db.OpenPostgresWithConfig(ctx, cfg.DBDSN, db.PostgresConfig{
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.DBConnMaxLifeMins) * time.Minute,
	})
	if err != nil {
		slog.Error("database error", "error", err)
		os.Exit(1)
	}
	defer dbConn.Close()

	if cfg.DBAutoMigrate {
		if err := db.Migrate(dbConn); err != nil {
			slog.Error("migrate database", "error", err)
			os.Exit(1)
		}
		slog.Info("database migrated")
	}

	var topicCache *cache.Cache
	if cfg.CacheURL != "" {
		topicCache, err = cache.New(ctx, cfg.CacheURL)
		if err != nil {
			slog.Warn("topic cache disabled", "error", err)
			topicCache = nil
		} else {
			defer topicCache.Close()
			slog.Info("topic cache enabled", "ttl", cfg.TopicCacheTTL)
		}
	}

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           app.NewRouter(cfg, dbConn, topicCache),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown", "error", err)
		}
	}()

	slog.Info("quizgym web listening", "addr", cfg.HTTPAddr, "env", cfg.AppEnv)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
