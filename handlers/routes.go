package handlers

import "github.com/labstack/echo/v4"

// Register mounts every API route under /api and installs the query
// validator on e.
func (h *Handler) Register(e *echo.Echo) {
	e.Validator = NewValidator()

	api := e.Group("/api")
	api.GET("/health", h.Health)
	api.GET("/calendar", h.Calendar)
	api.GET("/heat-data", h.HeatData)
	api.GET("/heatsheets", h.Heatsheets)
	api.GET("/heat-totals", h.HeatTotals)
	api.GET("/best-heat-score", h.BestHeatScore)
	api.GET("/best-wave-score", h.BestWaveScore)
	api.GET("/best-jump-score", h.BestJumpScore)
	api.GET("/best-heat-scores", h.BestHeatScores)
	api.GET("/best-jumps-waves", h.BestJumpsWaves)
	api.GET("/chart-data", h.ChartData)
	api.GET("/event-results", h.EventResults)
	api.GET("/rider-count", h.RiderCount)
	api.GET("/rider-counts", h.RiderCounts)
	api.GET("/athlete-filters", h.AthleteFilters)
	api.GET("/athlete-profile-results", h.AthleteProfileResults)
}
