package client

import (
	"context"

	"github.com/padraicbc/heatwave/models"
)

// Health reports the API's own view of its health. An unreachable API reads
// as a disconnected database.
func (c *Client) Health(ctx context.Context) models.Health {
	return get(ctx, c, "/api/health", Filter{}, models.Health{Database: models.DatabaseDisconnected})
}

// Calendar lists completed events, newest first.
func (c *Client) Calendar(ctx context.Context) []models.Event {
	return list[models.Event](ctx, c, "/api/calendar", Filter{})
}

func (c *Client) HeatData(ctx context.Context, f Filter) []models.HeatDataRow {
	return list[models.HeatDataRow](ctx, c, "/api/heat-data", f)
}

func (c *Client) Heatsheets(ctx context.Context, f Filter) []models.HeatsheetRow {
	return list[models.HeatsheetRow](ctx, c, "/api/heatsheets", f)
}

func (c *Client) HeatTotals(ctx context.Context, f Filter) []models.HeatTotalRow {
	return list[models.HeatTotalRow](ctx, c, "/api/heat-totals", f)
}

// BestHeatScore returns the best heat total card. The server defaults the
// event and gender when f leaves them out.
func (c *Client) BestHeatScore(ctx context.Context, f Filter) models.BestScore {
	return get(ctx, c, "/api/best-heat-score", f, models.EmptyBestScore())
}

func (c *Client) BestWaveScore(ctx context.Context, f Filter) models.BestScore {
	return get(ctx, c, "/api/best-wave-score", f, models.EmptyBestScore())
}

func (c *Client) BestJumpScore(ctx context.Context, f Filter) models.BestScore {
	return get(ctx, c, "/api/best-jump-score", f, models.EmptyBestScore())
}

func (c *Client) BestHeatScores(ctx context.Context, f Filter) []models.BestHeatScoreRow {
	return list[models.BestHeatScoreRow](ctx, c, "/api/best-heat-scores", f)
}

func (c *Client) BestJumpsWaves(ctx context.Context, f Filter) []models.BestJumpWaveRow {
	return list[models.BestJumpWaveRow](ctx, c, "/api/best-jumps-waves", f)
}

func (c *Client) ChartData(ctx context.Context, f Filter) []models.ChartPoint {
	return list[models.ChartPoint](ctx, c, "/api/chart-data", f)
}

func (c *Client) EventResults(ctx context.Context, f Filter) []models.EventResultRow {
	return list[models.EventResultRow](ctx, c, "/api/event-results", f)
}

func (c *Client) RiderCount(ctx context.Context, f Filter) models.RiderCount {
	return get(ctx, c, "/api/rider-count", f, models.RiderCount{})
}

func (c *Client) RiderCounts(ctx context.Context, f Filter) []models.RiderCountRow {
	return list[models.RiderCountRow](ctx, c, "/api/rider-counts", f)
}

// AthleteFilters never returns nil lists.
func (c *Client) AthleteFilters(ctx context.Context) models.AthleteFilters {
	out := get(ctx, c, "/api/athlete-filters", Filter{}, models.EmptyAthleteFilters())
	if out.Athletes == nil {
		out.Athletes = []models.AthleteFilter{}
	}
	if out.Years == nil {
		out.Years = []models.YearFilter{}
	}
	return out
}

func (c *Client) AthleteProfileResults(ctx context.Context, f Filter) []models.AthleteResult {
	return list[models.AthleteResult](ctx, c, "/api/athlete-profile-results", f)
}
