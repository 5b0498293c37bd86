package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go-empedge/internal/app"
	"go-empedge/internal/bootstrap"
	"go-empedge/internal/config"
	"go-empedge/internal/shared/apperror"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	logger, err := newLogger(cfg.Env)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	apperror.Init()
	r := gin.New()
	r.Use(gin.Recovery())

	// build dependency + routes
	application, err := app.BuildApp(r, cfg, logger)
	if err != nil {
		logger.Fatal("build app failed", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	auditLogger := bootstrap.NewStdoutAuditLogger()
	err = bootstrap.StartHTTPServer(
		ctx,
		r,
		bootstrap.ServerConfig{
			Port:         cfg.Port,
			ReadTimeout:  cfg.HTTP.ReadTimeout,
			WriteTimeout: cfg.HTTP.WriteTimeout,
			IdleTimeout:  cfg.HTTP.IdleTimeout,
		},
		auditLogger,
		application.Close,
	)
	if err != nil {
		logger.Error("server stopped with error", zap.Error(err))
		os.Exit(1)
	}
}

func newLogger(env string) (*zap.Logger, error) {
	if env == config.EnvLocal || env == config.EnvDevelopment {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
