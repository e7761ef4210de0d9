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

	"horse_portal_backend/internal/auth"
	"horse_portal_backend/internal/contentstore"
	"horse_portal_backend/internal/dashboard"
	"horse_portal_backend/internal/email"
	"horse_portal_backend/internal/events"
	apphttp "horse_portal_backend/internal/http"
	"horse_portal_backend/internal/http/router"
	"horse_portal_backend/internal/listings"
	"horse_portal_backend/internal/locations"
	"horse_portal_backend/internal/notification"
	"horse_portal_backend/internal/scheduler"
	"horse_portal_backend/internal/stables"
	"horse_portal_backend/internal/wizard"
	"horse_portal_backend/platform/config"
	"horse_portal_backend/platform/db"
	"horse_portal_backend/platform/logger"
	"horse_portal_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	janitorInterval = 5 * time.Minute
	sessionMaxIdle  = 2 * time.Hour
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize structured logger
	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ========================================================================
	// Infrastructure Layer
	// ========================================================================

	var pool *pgxpool.Pool
	if err := withRetry(ctx, log, "database connection", 5, 2*time.Second, func() error {
		p, err := db.NewPool(ctx, cfg)
		if err != nil {
			return err
		}
		pool = p
		return nil
	}); err != nil {
		log.Error("failed to connect to database", "error", err)
		panic("failed to connect to database: " + err.Error())
	}
	defer pool.Close()
	log.Info("database connection established")

	if err := withRetry(ctx, log, "database migrations", 5, 2*time.Second, func() error {
		return db.RunMigrations(ctx, pool)
	}); err != nil {
		log.Error("failed to run database migrations", "error", err)
		panic("failed to run database migrations: " + err.Error())
	}
	log.Info("database migrations complete")

	store, err := contentstore.NewPostgresStore(pool)
	if err != nil {
		panic("failed to initialize content store: " + err.Error())
	}

	assets := initAssetStore(ctx, cfg, log)
	drafts, closeDrafts := initDraftStore(cfg, log)
	if closeDrafts != nil {
		defer closeDrafts()
	}

	// Event bus for decoupled communication between modules
	eventBus := events.NewInMemoryBus(log)

	enqueuer, closeScheduler := initScheduler(cfg, log)
	if closeScheduler != nil {
		defer closeScheduler()
	}

	// Shared validator instance for dependency injection
	val := validator.New()

	authClient := auth.NewFromConfig(cfg, log)
	verifier := auth.NewVerifier(cfg, authClient)

	// ========================================================================
	// Domain Modules (Composition Root)
	// ========================================================================

	// Notification module subscribes to domain events (not HTTP-facing)
	notificationModule := notification.New(enqueuer, assets, email.NewFromConfig(cfg, log), cfg.GetAdminNotifyEmail(), log)
	notificationModule.RegisterHandlers(eventBus)

	locationsModule := locations.NewModule(store, log)
	region := cfg.GetPhoneRegion()
	maxUpload := cfg.GetMinIOMaxFileSize()

	listingsSvc := listings.NewService(store, assets, locationsModule.Source(), drafts,
		listings.NewSubmitter(store, assets, drafts, eventBus, region, log), cfg, region, log)
	defer listingsSvc.Shutdown()
	go listingsSvc.RunJanitor(ctx, janitorInterval, sessionMaxIdle)
	listingsModule := listings.NewModule(listingsSvc, val, cfg.GetDefaultLocale(), maxUpload)

	stablesSvc := stables.NewService(store, assets, locationsModule.Source(), drafts,
		stables.NewSubmitter(store, assets, drafts, eventBus, region, log), cfg, region, log)
	defer stablesSvc.Shutdown()
	go stablesSvc.RunJanitor(ctx, janitorInterval, sessionMaxIdle)
	stablesModule := stables.NewModule(stablesSvc, val, cfg.GetDefaultLocale(), maxUpload)

	dashboardModule := dashboard.NewModule(dashboard.Deps{
		Store:         store,
		Assets:        assets,
		Accounts:      authClient,
		Bus:           eventBus,
		Validator:     val,
		Region:        region,
		DefaultLocale: cfg.GetDefaultLocale(),
		MaxUpload:     maxUpload,
		Log:           log,
	})

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	app := &apphttp.App{
		Config:        cfg,
		Logger:        log,
		Health:        db.NewPoolAdapter(pool),
		Verifier:      verifier,
		RedirectDelay: cfg.GetRedirectDelay(),
		Modules: []apphttp.Module{
			locationsModule,
			listingsModule,
			stablesModule,
			dashboardModule,
		},
	}

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router.New(app),
		ReadHeaderTimeout: 10 * time.Second,
	}

	srvErr := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		srvErr <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received, gracefully shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("server shutdown failed", "error", err)
		}
		eventBus.Wait()
	case err := <-srvErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			panic("server error: " + err.Error())
		}
	}
}

// initAssetStore connects to MinIO. Outside production a missing endpoint
// falls back to an in-memory store.
func initAssetStore(ctx context.Context, cfg *config.Config, log *logger.Logger) contentstore.AssetStore {
	if !cfg.IsMinIOEnabled() {
		if cfg.Env == "production" {
			panic("MINIO_ENDPOINT is required in production")
		}
		log.Warn("MINIO_ENDPOINT not configured; listing media kept in memory")
		store := contentstore.NewMemoryAssetStore()
		store.MaxSize = cfg.GetMinIOMaxFileSize()
		return store
	}

	store, err := contentstore.NewMinIOAssetStore(cfg)
	if err != nil {
		log.Error("failed to initialize storage service", "error", err)
		panic("failed to initialize storage service: " + err.Error())
	}
	if err := withRetry(ctx, log, "ensure assets bucket", 5, 2*time.Second, func() error {
		return store.EnsureBucketExists(ctx)
	}); err != nil {
		log.Error("failed to ensure storage bucket exists", "error", err, "bucket", cfg.GetMinioBucketAssets())
		panic("failed to ensure storage bucket exists: " + err.Error())
	}
	log.Info("storage service initialized", "assetsBucket", cfg.GetMinioBucketAssets())
	return store
}

func initDraftStore(cfg config.RedisConfig, log *logger.Logger) (wizard.DraftStore, func()) {
	if cfg.GetRedisURL() == "" {
		log.Warn("REDIS_URL not configured; wizard drafts kept in memory")
		return wizard.NewMemoryDraftStore(), nil
	}

	client, err := wizard.NewRedisClient(cfg)
	if err != nil {
		log.Error("failed to initialize draft store", "error", err)
		panic("failed to initialize draft store: " + err.Error())
	}
	return wizard.NewRedisDraftStore(client), func() {
		_ = client.Close()
	}
}

func initScheduler(cfg config.SchedulerConfig, log *logger.Logger) (scheduler.Enqueuer, func()) {
	if cfg.GetRedisURL() == "" {
		log.Warn("REDIS_URL not configured; background tasks run inline")
		return nil, nil
	}

	client, err := scheduler.NewClient(cfg)
	if err != nil {
		log.Error("failed to initialize scheduler client", "error", err)
		return nil, nil
	}

	return client, func() {
		_ = client.Close()
	}
}

func withRetry(ctx context.Context, log *logger.Logger, name string, attempts int, baseDelay time.Duration, fn func() error) error {
	if attempts < 1 {
		return fmt.Errorf("%s: invalid retry attempts", name)
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := fn(); err == nil {
			return nil
		} else {
			lastErr = err
			log.Warn("retryable operation failed", "operation", name, "attempt", attempt, "error", err)
		}

		if attempt < attempts {
			delay := time.Duration(attempt*attempt) * baseDelay
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	return errors.New(name + ": " + lastErr.Error())
}
