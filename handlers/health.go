package handlers

import (
	"context"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/padraicbc/heatwave/models"
)

// Health reports whether the server is up and the database answers. It is
// always a 200; a dead database shows as "disconnected".
func (h *Handler) Health(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	state := models.DatabaseConnected
	if err := h.pool.Ping(ctx); err != nil {
		h.log.Warn("health check ping failed", zap.Error(err))
		state = models.DatabaseDisconnected
	}

	return ok(c, models.Health{
		Server:      "healthy",
		Database:    state,
		Timestamp:   time.Now().UTC(),
		Uptime:      time.Since(h.started).Seconds(),
		Environment: h.env,
	})
}
