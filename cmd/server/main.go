package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	"gorm.io/gorm"

	"github.com/trrlb/user-directory/internal/auth"
	"github.com/trrlb/user-directory/internal/config"
	"github.com/trrlb/user-directory/internal/db"
	"github.com/trrlb/user-directory/internal/models"
)

var (
	migrateOnlyFlag = flag.Bool("migrate-only", false, "Run DB migrations and exit")
	seedOnlyFlag    = flag.Bool("seed-only", false, "Run DB seed and exit")
)

func main() {
	flag.Parse()

	// Load environment variables from .env file, if present.
	_ = godotenv.Load()

	cfg := config.Load()

	logger := setupLogger(cfg.App.Dev)
	slog.SetDefault(logger)

	conn, err := db.Connect(cfg.Database, cfg.App.Dev)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	if *migrateOnlyFlag {
		if err := runMigrations(cfg, conn); err != nil {
			logger.Error("migration failed", "error", err)
			os.Exit(1)
		}
		logger.Info("migrations completed")
		return
	}
	if err := runMigrations(cfg, conn); err != nil {
		logger.Error("migration failed", "error", err)
		os.Exit(1)
	}

	if *seedOnlyFlag || cfg.App.Seed {
		if err := db.Seed(conn); err != nil {
			logger.Error("seeding failed", "error", err)
			os.Exit(1)
		}
		logger.Info("seed completed")
		if *seedOnlyFlag {
			return
		}
	}

	// Sessions stay valid only while their user is alive and active.
	auth.SetUserVerifier(func(ctx context.Context, uid uint) bool {
		var count int64
		conn.WithContext(ctx).Model(&models.User{}).
			Where("id = ? AND active = ?", uid, true).Count(&count)
		return count > 0
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      withLogging(NewApp(conn)),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	go func() {
		logger.Info("server starting", "port", cfg.Server.Port, "dev", cfg.App.Dev)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("error during shutdown", "error", err)
	}
	logger.Info("server stopped gracefully")
}

// runMigrations picks SQL migrations (MIGRATIONS=1) or the AutoMigrate
// fallback, a dev convenience.
func runMigrations(cfg *config.Config, conn *gorm.DB) error {
	if cfg.App.Migrations {
		return db.MigrateSQL(cfg.Database.URL())
	}
	return db.Migrate(conn)
}

// setupLogger uses a colorized tint handler during development and plain
// JSON in production.
func setupLogger(dev bool) *slog.Logger {
	if dev {
		return slog.New(tint.NewHandler(os.Stderr, &tint.Options{
			Level:      slog.LevelDebug,
			TimeFormat: time.Kitchen,
		}))
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
}

// withLogging adds request logging middleware.
func withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		slog.Info("request", "method", r.Method, "path", r.URL.Path, "duration", time.Since(start))
	})
}
