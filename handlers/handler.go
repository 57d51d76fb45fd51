package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/uptrace/bun"
	"go.uber.org/zap"

	"github.com/padraicbc/heatwave/config"
	"github.com/padraicbc/heatwave/db"
	"github.com/padraicbc/heatwave/metrics"
	"github.com/padraicbc/heatwave/models"
)

// Handler holds shared dependencies used by all route handlers.
type Handler struct {
	pool     *db.Pool
	log      *zap.Logger
	metrics  *metrics.Metrics
	defaults Defaults
	timeout  time.Duration
	env      string
	started  time.Time
}

// New creates a Handler reading through pool.
func New(pool *db.Pool, cfg *config.Config, log *zap.Logger, m *metrics.Metrics) *Handler {
	return &Handler{
		pool:     pool,
		log:      log,
		metrics:  m,
		defaults: Defaults{EventID: cfg.DefaultEventID, Gender: cfg.DefaultGender},
		timeout:  cfg.QueryTimeout,
		env:      cfg.Environment,
		started:  time.Now(),
	}
}

// read runs fn under the query deadline. A failure to connect or to query is
// logged and counted, and read reports false so the caller can answer with
// its empty value.
func (h *Handler) read(c echo.Context, endpoint string, f Filter, fn func(ctx context.Context, bdb *bun.DB) error) bool {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	bdb, err := h.pool.DB(ctx)
	if err == nil {
		err = fn(ctx, bdb)
	}
	if err != nil {
		h.log.Error("query failed",
			zap.String("endpoint", endpoint),
			zap.Object("filter", f),
			zap.Error(err),
		)
		h.metrics.QueryFailed(endpoint)
		return false
	}
	return true
}

// ok writes data in a success envelope.
func ok[T any](c echo.Context, data T) error {
	return c.JSON(http.StatusOK, models.Envelope[T]{Status: models.StatusSuccess, Data: data})
}

// rowsOrEmpty never lets a nil slice reach the wire as null.
func rowsOrEmpty[T any](rows []T) []T {
	if rows == nil {
		return []T{}
	}
	return rows
}
