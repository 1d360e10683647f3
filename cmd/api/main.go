package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/alertwise/alertwise-backend/config"
	"github.com/alertwise/alertwise-backend/internal/activity"
	"github.com/alertwise/alertwise-backend/internal/auth/identity"
	"github.com/alertwise/alertwise-backend/internal/bootstrap"
	"github.com/alertwise/alertwise-backend/internal/platform/logger"
	"github.com/alertwise/alertwise-backend/internal/platform/metrics"
	"github.com/alertwise/alertwise-backend/internal/platform/ratelimit"
	platformredis "github.com/alertwise/alertwise-backend/internal/platform/redis"
	cronjob "github.com/alertwise/alertwise-backend/internal/sos/cron"
	"github.com/alertwise/alertwise-backend/internal/storage/memory"
	"github.com/alertwise/alertwise-backend/internal/storage/postgres"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	appLogger, err := logger.New(cfg.App.LogMode)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer appLogger.Sync()

	bootstrap.SetGinMode(cfg.App.Environment)

	ctx := context.Background()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	var (
		pool   *pgxpool.Pool
		stores bootstrap.Stores
	)
	switch cfg.Database.Driver {
	case config.StoreDriverPostgres:
		pool, err = bootstrap.OpenDB(ctx, bootstrap.DBOptions{
			DSN:      cfg.Database.PostgresDSN(),
			MaxConns: cfg.Database.MaxConns,
			MinConns: cfg.Database.MinConns,
		})
		if err != nil {
			appLogger.Fatal("failed to open database pool", "error", err)
		}
		defer pool.Close()

		if err := postgres.Migrate(ctx, pool); err != nil {
			appLogger.Fatal("failed to migrate schema", "error", err)
		}

		var db *sql.DB
		db, err = postgres.NewConnection(&cfg.Database)
		if err != nil {
			appLogger.Fatal("failed to connect to database", "error", err)
		}
		defer db.Close()

		stores = bootstrap.PostgresStores(db)
		appLogger.Info("using postgres store")
	default:
		stores = bootstrap.MemoryStores(memory.New())
		appLogger.Warn("using in-memory store, data is lost on restart")
	}

	rdb, err := platformredis.New(ctx, cfg.Redis.URL)
	if err != nil {
		appLogger.Fatal("failed to connect to redis", "error", err)
	}
	var feed activity.Feed = activity.NopFeed{}
	if rdb != nil {
		defer rdb.Close()
		feed = activity.NewRedisFeed(rdb)
	} else {
		appLogger.Warn("REDIS_URL not set, activity feed disabled")
	}

	verifier, err := newIdentity(ctx, cfg)
	if err != nil {
		appLogger.Fatal("failed to initialize identity provider", "provider", cfg.Auth.Provider, "error", err)
	}

	var limiter *ratelimit.KeyedLimiter
	if cfg.SOS.RatePerMinute > 0 {
		limiter = ratelimit.NewKeyedLimiter(cfg.SOS.RatePerMinute, cfg.SOS.RateBurst)
	}

	services := bootstrap.NewServices(stores, feed, m, appLogger)

	scheduler := cronjob.NewScheduler(stores.SOS, feed, m, appLogger, cfg.SOS.BacklogSchedule, cfg.SOS.BacklogThreshold)
	if err := scheduler.Start(); err != nil {
		appLogger.Fatal("failed to start backlog monitor", "error", err)
	}
	defer scheduler.Stop()

	router := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName: cfg.App.Name,
		Version:     cfg.App.Version,
		DB:          pool,
		Redis:       rdb,
		Identity:    verifier,
		Services:    services,
		Limiter:     limiter,
		Metrics:     m,
		Gatherer:    reg,
		Log:         appLogger,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		appLogger.Info("starting server", "port", cfg.Server.Port, "env", cfg.App.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("graceful shutdown failed", "error", err)
	}
}

func newIdentity(ctx context.Context, cfg *config.Config) (identity.Identity, error) {
	switch cfg.Auth.Provider {
	case config.AuthProviderJWT:
		return identity.NewJWT(identity.JWTOptions{
			Secret:        cfg.Auth.JWT.Secret,
			PublicKeyPath: cfg.Auth.JWT.PublicKeyPath,
			Issuer:        cfg.Auth.JWT.Issuer,
			Audience:      cfg.Auth.JWT.Audience,
		})
	case config.AuthProviderHeader:
		return identity.Header{}, nil
	default:
		client, err := identity.InitializeFirebase(ctx, cfg.Auth.Firebase.CredentialsPath)
		if err != nil {
			return nil, err
		}
		return identity.NewFirebase(client), nil
	}
}
