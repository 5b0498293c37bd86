package app

import (
	"go-empedge/internal/config"
	"go-empedge/internal/employee"
	"go-empedge/internal/health"
	"go-empedge/internal/metrics"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	gormDB *gorm.DB,
	cfg *config.Config,
	logger *zap.Logger,
	reg *prometheus.Registry,
	m *metrics.Metrics,
) error {
	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}

	// --- Repositories ---
	employeeRepo := employee.NewRepository(gormDB, m)

	// --- Services ---
	employeeService := employee.NewService(employeeRepo, employee.ServiceConfig{
		StrictValidation: cfg.StrictValidation,
	}, logger)

	// --- Handlers ---
	employeeHandler := employee.NewHandler(employeeService, logger)
	healthChecker := health.NewChecker(sqlDB, logger)

	// --- Routes Registration ---
	employee.RegisterRoutes(router, employeeHandler)
	router.GET("/health", healthChecker.Handle)
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})))

	return nil
}
