package models

import "time"

// Envelope statuses.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Envelope wraps every API response body.
type Envelope[T any] struct {
	Status string `json:"status"`
	Data   T      `json:"data"`
	Error  string `json:"error,omitempty"`
}

// Subtitles used by BestScore.
const (
	SubtitleNone     = "- Heat"
	SubtitleMultiple = "Multiple"
)

// BestScore is the headline value of a stats card. Subtitle names the single
// athlete and heat holding the score, or reads "Multiple" when IsMultiple.
// Description carries the move name for jump scores.
type BestScore struct {
	Score       float64 `json:"score"`
	Subtitle    string  `json:"subtitle"`
	IsMultiple  bool    `json:"isMultiple"`
	Description string  `json:"description,omitempty"`
}

// EmptyBestScore is the value reported when no score matches.
func EmptyBestScore() BestScore {
	return BestScore{Subtitle: SubtitleNone}
}

// HeatTotalRow is a per-heat total for the heat scores table.
type HeatTotalRow struct {
	HeatNo      string  `bun:"heat_no" json:"heatNo"`
	Athlete     string  `bun:"athlete" json:"athlete"`
	TotalPoints float64 `bun:"total_points" json:"totalPoints"`
	WavePoints  float64 `bun:"wave_points" json:"wavePoints"`
	JumpPoints  float64 `bun:"jump_points" json:"jumpPoints"`
}

// BestHeatScoreRow is a sailor's best heat total within one event category.
type BestHeatScoreRow struct {
	SailorName   string  `bun:"sailor_name" json:"sailor_name"`
	BestScore    float64 `bun:"best_score" json:"best_score"`
	EventName    *string `bun:"event_name" json:"event_name"`
	CategoryCode string  `bun:"category_code" json:"category_code"`
}

// BestJumpWaveRow is a single scored wave or jump.
type BestJumpWaveRow struct {
	HeatNo    string  `bun:"heat_no" json:"heatNo"`
	Athlete   string  `bun:"athlete" json:"athlete"`
	Score     float64 `bun:"score" json:"score"`
	Counting  string  `bun:"counting" json:"counting"`
	ScoreType string  `bun:"score_type" json:"scoreType"`
}

// ChartPoint is the best and average counting score of one score type.
type ChartPoint struct {
	Type         string  `bun:"type" json:"type"`
	BestScore    float64 `bun:"best" json:"bestScore"`
	AverageScore float64 `bun:"average" json:"averageScore"`
}

// EventResultRow is one line of the event results table.
type EventResultRow struct {
	Position int    `bun:"position" json:"Position"`
	Rider    string `bun:"rider" json:"Rider"`
	Sponsors string `bun:"sponsors" json:"Sponsors"`
}

// RiderCount is the number of distinct riders for a filter.
type RiderCount struct {
	Count int `json:"count"`
}

// RiderCountRow is the number of distinct riders of one gender at one event.
type RiderCountRow struct {
	EventID int64  `bun:"event_id" json:"event_id"`
	Gender  string `bun:"gender" json:"gender"`
	Total   int    `bun:"total" json:"total"`
}

// Database states reported by Health.
const (
	DatabaseConnected    = "connected"
	DatabaseDisconnected = "disconnected"
)

// Health reports server and database liveness.
type Health struct {
	Server      string    `json:"server"`
	Database    string    `json:"database"`
	Timestamp   time.Time `json:"timestamp"`
	Uptime      float64   `json:"uptime"`
	Environment string    `json:"environment"`
}

// ErrorEnvelope is the body of every 4xx and 5xx response.
type ErrorEnvelope struct {
	Status string `json:"status"`
	Error  string `json:"error"`
}
