// Package server boots the POS backend: configuration, logging, the
// database, storage, cache and websocket hub, then the HTTP listener.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/cafepos/config"
	_ "github.com/shashiranjanraj/cafepos/database/migrations"
	"github.com/shashiranjanraj/cafepos/database/seeders"
	"github.com/shashiranjanraj/cafepos/internal/kernel"
	"github.com/shashiranjanraj/cafepos/pkg/cache"
	"github.com/shashiranjanraj/cafepos/pkg/database"
	"github.com/shashiranjanraj/cafepos/pkg/event"
	"github.com/shashiranjanraj/cafepos/pkg/logger"
	"github.com/shashiranjanraj/cafepos/pkg/migration"
	"github.com/shashiranjanraj/cafepos/pkg/router"
	"github.com/shashiranjanraj/cafepos/pkg/storage"
	"github.com/shashiranjanraj/cafepos/pkg/ws"
)

const shutdownTimeout = 10 * time.Second

// Start serves until ctx is cancelled, then drains in-flight requests.
func Start(ctx context.Context) error {
	if err := config.Load(); err != nil {
		return err
	}

	closeLogs := SetupLogging(ctx)
	defer closeLogs()

	db, err := OpenDB()
	if err != nil {
		return err
	}
	defer database.Close(db) //nolint:errcheck

	if err := Bootstrap(ctx, db); err != nil {
		return err
	}

	if err := os.MkdirAll(config.PublicDir(), 0o755); err != nil {
		return fmt.Errorf("server: create %s: %w", config.PublicDir(), err)
	}
	disk, err := storage.New(ctx, storage.Config{
		Driver:     config.StorageDisk(),
		LocalRoot:  config.PublicDir(),
		LocalURL:   "/public",
		S3Bucket:   config.StorageS3Bucket(),
		S3Region:   config.StorageS3Region(),
		S3Key:      config.StorageS3Key(),
		S3Secret:   config.StorageS3Secret(),
		S3Endpoint: config.StorageS3Endpoint(),
		S3URL:      config.StorageS3URL(),
	})
	if err != nil {
		return err
	}

	catalogCache := connectCache(ctx)
	defer catalogCache.Close() //nolint:errcheck

	hubCtx, stopHub := context.WithCancel(ctx)
	defer stopHub()
	hub := ws.NewHub()
	go hub.Run(hubCtx)

	k := kernel.NewHTTPKernel(kernel.Deps{
		DB:        db,
		Disk:      disk,
		Cache:     catalogCache,
		CacheTTL:  config.CacheTTL(),
		Hub:       hub,
		Bus:       event.NewBus(),
		WebRoot:   config.WebRoot(),
		PublicDir: config.PublicDir(),
	})

	srv := &http.Server{
		Addr:              ":" + config.AppPort(),
		Handler:           k.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server: listening", "addr", srv.Addr, "env", config.AppEnv(), "db", config.DatabaseDriver())
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server: listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("server: shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server: shutdown: %w", err)
	}
	return nil
}

// SetupLogging configures the global logger for APP_ENV and, when
// LOG_MONGO_URI is set, mirrors records to MongoDB. The returned func
// flushes the Mongo sink.
func SetupLogging(ctx context.Context) func() {
	uri := config.LogMongoURI()
	if uri == "" {
		logger.Setup(config.AppEnv())
		return func() {}
	}

	mh, err := logger.NewMongoHandler(ctx, uri, config.LogMongoDatabase(), config.LogMongoCollection())
	if err != nil {
		logger.Setup(config.AppEnv())
		logger.Warn("logger: mongo sink disabled", "error", err.Error())
		return func() {}
	}
	logger.Setup(config.AppEnv(), mh)
	return mh.Close
}

// OpenDB opens the configured database.
func OpenDB() (*gorm.DB, error) {
	return database.Open(config.DatabaseDriver(), config.DatabaseDSN())
}

// Bootstrap applies pending migrations and runs the seeders. Both are
// idempotent.
func Bootstrap(ctx context.Context, db *gorm.DB) error {
	if err := migration.New(db).Run(); err != nil {
		return err
	}
	return seeders.RunAll(ctx, db, SeedOptions())
}

// SeedOptions reads seeder settings from configuration.
func SeedOptions() seeders.Options {
	return seeders.Options{
		AdminUsername: config.AdminUsername(),
		AdminPassword: config.AdminPassword(),
	}
}

// Routes returns the route table without opening any resource.
func Routes() []router.RouteInfo {
	return kernel.NewHTTPKernel(kernel.Deps{Hub: ws.NewHub()}).Routes()
}

func connectCache(ctx context.Context) *cache.Cache {
	addr := config.RedisAddr()
	if addr == "" {
		return nil
	}

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	c, err := cache.Connect(pingCtx, addr, config.RedisPassword())
	if err != nil {
		logger.Warn("cache: disabled", "error", err.Error())
		return nil
	}
	logger.Info("cache: connected", "addr", addr)
	return c
}
