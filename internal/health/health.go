package health

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type DBPinger interface {
	PingContext(ctx context.Context) error
}

type Checker struct {
	db     DBPinger
	logger *zap.Logger
}

func NewChecker(db DBPinger, logger *zap.Logger) *Checker {
	return &Checker{db: db, logger: logger.Named("health")}
}

// Handle reports whether the store answers a ping. It never affects the
// employee endpoints, which keep failing per request if the store is down.
func (h *Checker) Handle(c *gin.Context) {
	status := map[string]string{"database": "ok"}
	code := http.StatusOK

	if err := h.db.PingContext(c.Request.Context()); err != nil {
		status["database"] = "unavailable"
		code = http.StatusServiceUnavailable
		h.logger.Warn("health check failed: DB ping", zap.Error(err))
	}

	c.JSON(code, status)
}
