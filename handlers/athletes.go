package handlers

import (
	"context"

	"github.com/labstack/echo/v4"
	"github.com/uptrace/bun"

	"github.com/padraicbc/heatwave/models"
)

// AthleteFilters returns the athletes and seasons the athlete page can be
// narrowed to. Either list failing empties both.
func (h *Handler) AthleteFilters(c echo.Context) error {
	out := models.EmptyAthleteFilters()
	if !h.read(c, "athlete-filters", Filter{}, func(ctx context.Context, bdb *bun.DB) error {
		if err := bdb.NewSelect().
			Model((*models.AthleteResult)(nil)).
			Distinct().
			ColumnExpr("apr.sailor_name AS athlete_name").
			Where("apr.sailor_name IS NOT NULL").
			Where("apr.sailor_name <> ''").
			OrderExpr("athlete_name ASC").
			Scan(ctx, &out.Athletes); err != nil {
			return err
		}
		return bdb.NewSelect().
			Model((*models.AthleteResult)(nil)).
			ColumnExpr("apr.year, COUNT(*) AS count").
			Where("apr.year IS NOT NULL").
			GroupExpr("apr.year").
			OrderExpr("apr.year DESC").
			Scan(ctx, &out.Years)
	}) {
		return ok(c, models.EmptyAthleteFilters())
	}

	out.Athletes = rowsOrEmpty(out.Athletes)
	out.Years = rowsOrEmpty(out.Years)
	return ok(c, out)
}

// AthleteProfileResults lists an athlete's placings, most recent first.
func (h *Handler) AthleteProfileResults(c echo.Context) error {
	f, err := bindFilter(c)
	if err != nil {
		return err
	}

	var rows []models.AthleteResult
	if !h.read(c, "athlete-profile-results", f, func(ctx context.Context, bdb *bun.DB) error {
		q := bdb.NewSelect().Model(&rows)
		if f.Athlete != "" {
			q.Where("apr.sailor_name = ?", f.Athlete)
		}
		if f.Year != 0 {
			q.Where("apr.year = ?", f.Year)
		}
		return q.OrderExpr("apr.start_date DESC, apr.event_id DESC").Scan(ctx)
	}) {
		rows = nil
	}
	return ok(c, rowsOrEmpty(rows))
}
