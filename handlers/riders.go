package handlers

import (
	"context"

	"github.com/labstack/echo/v4"
	"github.com/uptrace/bun"

	"github.com/padraicbc/heatwave/models"
)

// RiderCounts lists distinct riders per event and gender.
func (h *Handler) RiderCounts(c echo.Context) error {
	f, err := bindFilter(c)
	if err != nil {
		return err
	}

	rows, good := h.riderCounts(c, "rider-counts", f)
	if !good {
		rows = nil
	}
	return ok(c, rowsOrEmpty(rows))
}

// RiderCount is the sum of RiderCounts for the same filter.
func (h *Handler) RiderCount(c echo.Context) error {
	f, err := bindFilter(c)
	if err != nil {
		return err
	}

	rows, good := h.riderCounts(c, "rider-count", f)
	if !good {
		return ok(c, models.RiderCount{})
	}
	var total int
	for _, r := range rows {
		total += r.Total
	}
	return ok(c, models.RiderCount{Count: total})
}

func (h *Handler) riderCounts(c echo.Context, endpoint string, f Filter) ([]models.RiderCountRow, bool) {
	var rows []models.RiderCountRow
	good := h.read(c, endpoint, f, func(ctx context.Context, bdb *bun.DB) error {
		q := bdb.NewSelect().
			Model((*models.EventResult)(nil)).
			ColumnExpr("ver.event_id, ver.gender, COUNT(DISTINCT ver.rider) AS total")
		if f.EventID != 0 {
			q.Where("ver.event_id = ?", f.EventID)
		}
		if f.Gender != "" {
			q.Where("ver.gender = ?", f.Gender)
		}
		return q.GroupExpr("ver.event_id, ver.gender").
			OrderExpr("ver.event_id ASC, ver.gender ASC").
			Scan(ctx, &rows)
	})
	return rows, good
}
