package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/isleforge/isleforge/internal/bootstrap"
	"github.com/isleforge/isleforge/internal/clock"
	"github.com/isleforge/isleforge/internal/config"
	"github.com/isleforge/isleforge/internal/database"
	"github.com/isleforge/isleforge/internal/handler"
	"github.com/isleforge/isleforge/internal/logger"
	"github.com/isleforge/isleforge/internal/scheduler"
	"github.com/isleforge/isleforge/internal/server"
	"github.com/isleforge/isleforge/internal/session"
	"github.com/isleforge/isleforge/internal/worker"
)

const (
	workerCount     = 4
	workerQueueSize = 64
	shutdownTimeout = 30 * time.Second
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	warnings, err := config.ValidateEnvWithWarnings()
	if err != nil {
		log.Fatalf("Environment validation failed: %v", err)
	}

	logFile, err := bootstrap.SetupLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to set up logger: %v", err)
	}
	defer logFile.Close()

	for _, w := range warnings {
		logger.Warn(w)
	}

	cat, err := bootstrap.LoadCatalog(cfg)
	if err != nil {
		logger.Error("Failed to load content catalog", "error", err)
		os.Exit(1)
	}

	_, publisher, err := bootstrap.InitializeEventSystem(cfg)
	if err != nil {
		logger.Error("Failed to initialize event system", "error", err)
		os.Exit(1)
	}
	if err := bootstrap.RegisterEventHandlers(publisher); err != nil {
		logger.Error("Failed to register event handlers", "error", err)
		os.Exit(1)
	}

	// The database is preferred but not required. Without one, saves live in
	// memory and vanish on restart.
	var dbPool *pgxpool.Pool
	pool, err := database.NewPool(context.Background(), cfg.GetDBConnString(), cfg.DBMaxConns, cfg.DBMaxConnIdleTime, cfg.DBMaxConnLifetime)
	if err != nil {
		logger.Warn("Database unavailable, using in-memory persistence", "error", err)
	} else {
		if err := database.Migrate(context.Background(), pool); err != nil {
			logger.Error("Database migration failed", "error", err)
			os.Exit(1)
		}
		dbPool = pool
		defer pool.Close()
	}

	repos := bootstrap.InitializeRepositories(dbPool)

	clk := clock.Real{}
	sessions := session.NewManager(cat, clk, publisher, repos.Game, cfg.SessionCacheSize, cfg.SessionTTL)

	workerPool := worker.NewPool(workerCount, workerQueueSize)
	workerPool.Start()

	sched := scheduler.New(workerPool)
	sched.Schedule(cfg.GeneratorTickInterval, &worker.GeneratorTickJob{Sessions: sessions})
	sched.Schedule(cfg.SessionTickInterval, &worker.SessionTickJob{Sessions: sessions})
	sched.Schedule(cfg.BankInterestInterval, &worker.BankInterestJob{Sessions: sessions})
	sched.Schedule(cfg.AutosaveInterval, &worker.AutosaveJob{Sessions: sessions})

	h := handler.New(sessions)

	var healthPool database.Pool
	if dbPool != nil {
		healthPool = dbPool
	}
	srv := server.NewServer(cfg.Port, cfg.APIKey, cfg.TrustedProxies, healthPool, h)

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	bootstrap.GracefulShutdown(ctx, bootstrap.ShutdownComponents{
		Server:             srv,
		Scheduler:          sched,
		WorkerPool:         workerPool,
		Sessions:           sessions,
		ResilientPublisher: publisher,
	})
}
