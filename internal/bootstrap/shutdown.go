package bootstrap

import (
	"context"

	"github.com/isleforge/isleforge/internal/event"
	"github.com/isleforge/isleforge/internal/logger"
	"github.com/isleforge/isleforge/internal/scheduler"
	"github.com/isleforge/isleforge/internal/server"
	"github.com/isleforge/isleforge/internal/session"
	"github.com/isleforge/isleforge/internal/worker"
)

// ShutdownComponents holds all components that need graceful shutdown.
type ShutdownComponents struct {
	Server             *server.Server
	Scheduler          *scheduler.Scheduler
	WorkerPool         *worker.Pool
	Sessions           *session.Manager
	ResilientPublisher *event.ResilientPublisher
}

// GracefulShutdown performs graceful shutdown of all application components
// in dependency order:
//  1. HTTP server (stop accepting new requests)
//  2. Scheduler, then worker pool (stop producing and drain ticks)
//  3. Session manager (flush every resident game to the repository)
//  4. Event publisher (flush pending retries to the dead-letter file)
//
// Errors during shutdown are logged but do not stop the shutdown sequence.
func GracefulShutdown(ctx context.Context, components ShutdownComponents) {
	logger.Info(LogMsgShuttingDownServer)

	if err := components.Server.Stop(ctx); err != nil {
		logger.Error(LogMsgServerForcedShutdown, "error", err)
	}

	if components.Scheduler != nil {
		components.Scheduler.Stop()
	}
	if components.WorkerPool != nil {
		components.WorkerPool.Stop()
	}

	if components.Sessions != nil {
		logger.Info(LogMsgFlushingSessions)
		components.Sessions.Close(ctx)
	}

	if components.ResilientPublisher != nil {
		logger.Info(LogMsgShuttingDownEventPublisher)
		if err := components.ResilientPublisher.Shutdown(ctx); err != nil {
			logger.Error(LogMsgResilientPublisherFailed, "error", err)
		}
	}

	logger.Info(LogMsgServerStopped)
}
