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
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/studiobook/internal/audit"
	"github.com/BruksfildServices01/studiobook/internal/config"
	dbpkg "github.com/BruksfildServices01/studiobook/internal/db"
	"github.com/BruksfildServices01/studiobook/internal/logging"
	"github.com/BruksfildServices01/studiobook/internal/middleware"
	"github.com/BruksfildServices01/studiobook/internal/routes"
	"github.com/BruksfildServices01/studiobook/internal/storage"
	"github.com/BruksfildServices01/studiobook/internal/timezone"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		// logger is not configured yet
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}

	if err := logging.Init(cfg.Env, cfg.LogLevel); err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
	defer logging.Sync()

	timezone.SetDefault(cfg.DefaultTimezone)

	db, err := dbpkg.Connect(cfg.DBUrl)
	if err != nil {
		logging.Log.Fatal("database connection failed", zap.Error(err))
	}
	if err := dbpkg.Migrate(db); err != nil {
		logging.Log.Fatal("migration failed", zap.Error(err))
	}

	dispatcher := audit.NewDispatcher(audit.New(db))

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	// X-Forwarded-For is only read from these peers; none by default.
	if err := r.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		logging.Log.Fatal("invalid TRUSTED_PROXIES", zap.Error(err))
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, cfg, routes.Infra{
		Audit:   dispatcher,
		Limiter: newLimiter(cfg),
		Images:  newImageStore(cfg),
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logging.Log.Info("server running", zap.String("addr", cfg.Addr()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Log.Fatal("failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logging.Log.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logging.Log.Error("server shutdown failed", zap.Error(err))
	}
	if err := dispatcher.Close(ctx); err != nil {
		logging.Log.Warn("audit queue not drained", zap.Error(err))
	}
}

// newLimiter shares counters through redis when REDIS_URL is set and
// falls back to per-process counters otherwise.
func newLimiter(cfg *config.Config) middleware.Limiter {
	if cfg.RedisURL == "" {
		return middleware.NewMemoryRateLimiter(cfg.RateLimitPerMinute, time.Minute)
	}

	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		logging.Log.Fatal("invalid REDIS_URL", zap.Error(err))
	}
	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		logging.Log.Warn("redis unreachable, rate limiter will follow RATE_LIMIT_FAIL_OPEN", zap.Error(err))
	}

	return middleware.NewRedisRateLimiter(rdb, cfg.RateLimitPerMinute, time.Minute, "studiobook:rl")
}

func newImageStore(cfg *config.Config) *storage.ImageStore {
	if !cfg.S3.Enabled() {
		logging.Log.Info("S3_BUCKET not set, image uploads disabled")
		return nil
	}
	return storage.NewImageStore(storage.NewS3Client(cfg.S3), cfg.S3.Bucket, cfg.S3.PublicBaseURL)
}
