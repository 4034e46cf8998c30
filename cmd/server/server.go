package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"
)

// shutdownTimeout bounds graceful shutdown. In-flight HTTP requests are
// short (generation runs in the job runner, not in handlers), so ten
// seconds is ample.
const shutdownTimeout = 10 * time.Second

// startHTTPServer serves the API until the context is canceled or a
// SIGINT/SIGTERM arrives, then drains in-flight requests and runs the
// application cleanup chain.
func (app *application) startHTTPServer(ctx context.Context, router http.Handler) error {
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", app.config.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		app.logger.Info("starting server", "port", app.config.Server.Port)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		// ListenAndServe only returns early on failure; ErrServerClosed
		// cannot arrive before Shutdown is called.
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
		app.logger.Info("shutdown signal received, draining requests")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		app.logger.Error("server shutdown failed", "error", err)
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		app.logger.Error("server exited with error", "error", err)
	}

	app.cleanup()

	app.logger.Info("server shutdown completed")
	return nil
}
