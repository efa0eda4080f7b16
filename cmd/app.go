package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"erp/api"
	"erp/config"
	"erp/pkg/logger"

	"go.uber.org/zap"
)

// App is the assembled HTTP service
type App struct {
	config *config.Config
	router *api.Router
	server *http.Server
	close  func() error
}

// Handler returns the root handler, used by tests
func (a *App) Handler() http.Handler {
	return a.server.Handler
}

// Run serves until ctx is cancelled or SIGINT/SIGTERM arrives, then shuts
// down gracefully within server.shutdown_timeout
func (a *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server starting",
			zap.String("addr", a.server.Addr),
			zap.String("health", fmt.Sprintf("http://localhost:%s/api/v1/health", a.config.Server.Port)))
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	var serveErr error
	select {
	case serveErr = <-errCh:
	case <-ctx.Done():
		logger.Info("Shutting down server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.config.Server.ShutdownTimeout)
	defer cancel()
	if err := a.server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	a.Close()
	logger.Info("Server stopped")
	if serveErr != nil {
		return fmt.Errorf("server failed: %w", serveErr)
	}
	return nil
}

// Close releases the database pool and flushes the logger
func (a *App) Close() {
	if a.close != nil {
		if err := a.close(); err != nil {
			logger.Error("Failed to close database", zap.Error(err))
		}
		a.close = nil
	}
	_ = logger.Sync()
}
