package app

import (
	"context"
	"time"

	"go-empedge/internal/config"
	"go-empedge/internal/metrics"
	"go-empedge/internal/middleware"
	"go-empedge/internal/shared/connection"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const connectivityTimeout = 10 * time.Second

// App holds the process-wide resources created by BuildApp.
type App struct {
	DB       *gorm.DB
	Registry *prometheus.Registry
	Metrics  *metrics.Metrics
}

// BuildApp opens the connection pool, registers middleware and mounts every
// module on router. The pool is not pinged synchronously: connectivity is
// reported from a background goroutine and a failure there is logged only.
func BuildApp(router *gin.Engine, cfg *config.Config, logger *zap.Logger) (*App, error) {
	// 1. Setup Infrastructure
	db, err := connection.Open(cfg.Database, logger)
	if err != nil {
		return nil, err
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), connectivityTimeout)
		defer cancel()
		_ = connection.CheckConnectivity(ctx, db, logger)
	}()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.NewMetrics(reg)

	router.Use(
		middleware.RequestID(),
		middleware.ContextLogger(logger),
		middleware.Metrics(m),
	)

	// 2. Register Modules & Routes
	if err := registerModules(router, db, cfg, logger, reg, m); err != nil {
		_ = connection.Close(db)
		return nil, err
	}

	return &App{DB: db, Registry: reg, Metrics: m}, nil
}

// Close releases the connection pool.
func (a *App) Close(context.Context) error {
	return connection.Close(a.DB)
}
