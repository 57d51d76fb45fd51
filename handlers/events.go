package handlers

import (
	"context"

	"github.com/labstack/echo/v4"
	"github.com/uptrace/bun"

	"github.com/padraicbc/heatwave/models"
)

var eventCategories = bun.Ident("PWA_EVENT_CATEGORIES")

// Calendar lists completed events, newest first, with the number of
// categories each ran and the distinct sailors entered.
func (h *Handler) Calendar(c echo.Context) error {
	var rows []models.Event
	if !h.read(c, "calendar", Filter{}, func(ctx context.Context, bdb *bun.DB) error {
		return calendarQuery(bdb).Scan(ctx, &rows)
	}) {
		rows = nil
	}
	return ok(c, rowsOrEmpty(rows))
}

func calendarQuery(bdb *bun.DB) *bun.SelectQuery {
	riders := bdb.NewSelect().
		Model((*models.EventEntry)(nil)).
		ColumnExpr("per.event_id").
		ColumnExpr("COUNT(DISTINCT per.sailor_href) AS total").
		GroupExpr("per.event_id")

	return bdb.NewSelect().
		Model((*models.EventCategory)(nil)).
		ColumnExpr("ec.event_id, ec.event_name, ec.section, ec.start_date, ec.end_date").
		ColumnExpr("COUNT(DISTINCT ec.category_code) AS category_count").
		ColumnExpr("COALESCE(r.total, 0) AS rider_count").
		Join("LEFT JOIN (?) AS r ON r.event_id = ec.event_id", riders).
		Where("ec.section = ?", models.SectionCompleted).
		GroupExpr("ec.event_id, ec.event_name, ec.section, ec.start_date, ec.end_date, r.total").
		OrderExpr("ec.start_date DESC, ec.event_id DESC")
}

// EventResults lists final placings for the filter, best first.
func (h *Handler) EventResults(c echo.Context) error {
	f, err := bindFilter(c)
	if err != nil {
		return err
	}

	var rows []models.EventResultRow
	if !h.read(c, "event-results", f, func(ctx context.Context, bdb *bun.DB) error {
		q := bdb.NewSelect().
			Model((*models.EventResult)(nil)).
			ColumnExpr("ver.position, ver.rider, ver.sponsors")
		if f.EventID != 0 {
			q.Where("ver.event_id = ?", f.EventID)
		}
		if f.Gender != "" {
			q.Where("ver.gender = ?", f.Gender)
		}
		return q.OrderExpr("ver.position ASC, ver.rider ASC").Scan(ctx, &rows)
	}) {
		rows = nil
	}
	return ok(c, rowsOrEmpty(rows))
}
