package bootstrap

import (
	"context"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// ShutdownHook releases a process-wide resource once the server has stopped
// accepting requests.
type ShutdownHook func(ctx context.Context) error

// StartHTTPServer serves handler until ctx is cancelled, then drains in-flight
// requests and runs hooks in order.
func StartHTTPServer(
	ctx context.Context,
	handler http.Handler,
	cfg ServerConfig,
	auditLogger AuditLogger,
	hooks ...ShutdownHook,
) error {
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		zap.L().Info("HTTP server running", zap.String("port", cfg.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			zap.L().Error("ListenAndServe error", zap.Error(err))
			return err
		}
		return nil
	case <-ctx.Done():
	}

	zap.L().Info("Shutdown signal received", zap.Error(context.Cause(ctx)))

	auditLogger.Log(context.Background(), AuditLog{
		Action:  "SERVER_SHUTDOWN",
		Message: "Server is shutting down",
		Meta: map[string]any{
			"port": cfg.Port,
		},
	})

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	var errs []error
	if err := server.Shutdown(shutdownCtx); err != nil {
		zap.L().Error("Forced shutdown", zap.Error(err))
		errs = append(errs, err)
	} else {
		zap.L().Info("Server exited gracefully")
	}

	for _, hook := range hooks {
		if err := hook(shutdownCtx); err != nil {
			zap.L().Error("shutdown hook failed", zap.Error(err))
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}
