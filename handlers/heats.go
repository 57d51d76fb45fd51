package handlers

import (
	"context"

	"github.com/labstack/echo/v4"
	"github.com/uptrace/bun"

	"github.com/padraicbc/heatwave/models"
)

// HeatData lists scored rides with their event, highest heat total first.
func (h *Handler) HeatData(c echo.Context) error {
	f, err := bindFilter(c)
	if err != nil {
		return err
	}

	var rows []models.HeatDataRow
	if !h.read(c, "heat-data", f, func(ctx context.Context, bdb *bun.DB) error {
		q := bdb.NewSelect().
			Model((*models.HeatData)(nil)).
			ColumnExpr("phd.heat_data_id, phd.category_code, phd.heatsheet_id, phd.heat_id, phd.heat_no").
			ColumnExpr("phd.wave_count, phd.jumps_count, phd.wave_factor, phd.jump_factor").
			ColumnExpr("phd.sailor_name, phd.sail_number, phd.total_wave, phd.total_jump, phd.total_points").
			ColumnExpr("ec.event_name, ec.event_id").
			ColumnExpr("phd.score_type, phd.score").
			Join("LEFT JOIN ? AS ec ON phd.category_code = ec.category_code", eventCategories)
		if f.EventID != 0 {
			q.Where("ec.event_id = ?", f.EventID)
		}
		return q.OrderExpr("phd.total_points DESC, phd.heat_data_id ASC").Scan(ctx, &rows)
	}) {
		rows = nil
	}
	return ok(c, rowsOrEmpty(rows))
}

// Heatsheets lists the heat draw, in heat and start order.
func (h *Handler) Heatsheets(c echo.Context) error {
	f, err := bindFilter(c)
	if err != nil {
		return err
	}

	var rows []models.HeatsheetRow
	if !h.read(c, "heatsheets", f, func(ctx context.Context, bdb *bun.DB) error {
		q := bdb.NewSelect().
			Model((*models.Heatsheet)(nil)).
			Distinct().
			ColumnExpr("phs.heatsheet_id, phs.category_code, phs.heat_id, phs.heat_no").
			ColumnExpr("phs.sailor_name, phs.sail_number, phs.country").
			ColumnExpr("phs.? AS ?", bun.Ident("rank"), bun.Ident("rank")).
			ColumnExpr("phs.status, phs.start_order").
			ColumnExpr("ec.event_name, ec.event_id").
			Join("LEFT JOIN ? AS ec ON phs.category_code = ec.category_code", eventCategories)
		if f.EventID != 0 {
			q.Where("ec.event_id = ?", f.EventID)
		}
		return q.OrderExpr("phs.heat_no ASC, phs.start_order ASC").Scan(ctx, &rows)
	}) {
		rows = nil
	}
	return ok(c, rowsOrEmpty(rows))
}

// HeatTotals lists per-heat wave, jump and total points, best first.
func (h *Handler) HeatTotals(c echo.Context) error {
	f, err := bindFilter(c)
	if err != nil {
		return err
	}

	var rows []models.HeatTotalRow
	if !h.read(c, "heat-totals", f, func(ctx context.Context, bdb *bun.DB) error {
		q := bdb.NewSelect().
			Model((*models.HeatTotal)(nil)).
			ColumnExpr("vht.heat_no, vht.athlete, vht.total_points, vht.wave_points, vht.jump_points")
		if f.EventID != 0 {
			q.Where("vht.event_id = ?", f.EventID)
		}
		if f.Gender != "" {
			q.Where("vht.gender = ?", f.Gender)
		}
		return q.OrderExpr("vht.total_points DESC, vht.heat_no ASC, vht.athlete ASC").Scan(ctx, &rows)
	}) {
		rows = nil
	}
	return ok(c, rowsOrEmpty(rows))
}
