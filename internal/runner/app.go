package runner

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/afland/duende-publisher/internal/events/application"
	"github.com/afland/duende-publisher/internal/platform/eventbus"
	"github.com/afland/duende-publisher/internal/platform/logger"
)

// App runs the pipeline in one of two modes: "once" executes a single batch
// and exits (the cron/Actions path), "serve" keeps an HTTP trigger surface up
// for an external scheduler.
type App struct {
	server  *http.Server
	creator *application.CreatorService
	config  Config
	logger  logger.Logger
}

// NewApp assembles the application and registers the operator-facing
// notification subscribers.
func NewApp(
	server *http.Server,
	creator *application.CreatorService,
	bus *eventbus.Bus,
	config Config,
	log logger.Logger,
) *App {
	// Failed events need operator attention; surface them separately from
	// the pipeline's own flow logging.
	bus.Subscribe(eventbus.TopicEventFailed, func(ctx context.Context, n eventbus.Notification) error {
		log.Warn(ctx, "event needs manual review", "event_id", n.EventID)
		return nil
	})

	return &App{
		server:  server,
		creator: creator,
		config:  config,
		logger:  log,
	}
}

// Run starts the application in the configured mode
func (a *App) Run() error {
	if a.config.RunMode == "serve" {
		return a.serve()
	}
	return a.runOnce()
}

// runOnce executes a single batch. Interrupts cancel the run between events,
// leaving claimed work in a resumable state.
func (a *App) runOnce() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	report, err := a.creator.RunBatch(ctx)
	if err != nil {
		return fmt.Errorf("batch run: %w", err)
	}

	a.logger.Info(ctx, "run complete",
		"processed", report.Processed,
		"failed", report.Failed,
		"reverted", report.Reverted,
		"quota_stopped", report.QuotaStopped,
	)
	return nil
}

// serve starts the HTTP trigger surface and handles graceful shutdown
func (a *App) serve() error {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)
	go func() {
		a.logger.Info(context.Background(), "starting trigger server", "address", a.server.Addr)
		serverErrors <- a.server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
	case sig := <-sigChan:
		a.logger.Info(context.Background(), "shutting down trigger server", "signal", sig.String())

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := a.server.Shutdown(ctx); err != nil {
			return fmt.Errorf("failed to gracefully shutdown server: %w", err)
		}
	}

	a.logger.Info(context.Background(), "server stopped")
	return nil
}
