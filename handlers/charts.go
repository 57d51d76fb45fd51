package handlers

import (
	"context"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/uptrace/bun"

	"github.com/padraicbc/heatwave/models"
)

// ChartData reports the best and average counting score per score type.
func (h *Handler) ChartData(c echo.Context) error {
	f, err := bindFilter(c)
	if err != nil {
		return err
	}

	var rows []models.ChartPoint
	if !h.read(c, "chart-data", f, func(ctx context.Context, bdb *bun.DB) error {
		q := bdb.NewSelect().
			Model((*models.HeatScore)(nil)).
			ColumnExpr("vhs.type, MAX(vhs.score) AS best, AVG(vhs.score) AS average").
			Where("vhs.type IS NOT NULL").
			Where("vhs.score > 0").
			Where("vhs.counting = ?", models.CountingYes)
		if f.EventID != 0 {
			q.Where("vhs.event_id = ?", f.EventID)
		}
		if f.Gender != "" {
			q.Where("vhs.gender = ?", f.Gender)
		}
		return q.GroupExpr("vhs.type").OrderExpr("vhs.type ASC").Scan(ctx, &rows)
	}) {
		rows = nil
	}

	for i := range rows {
		rows[i].Type = strings.TrimSpace(rows[i].Type)
	}
	return ok(c, rowsOrEmpty(rows))
}
