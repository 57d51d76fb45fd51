package models

import "github.com/uptrace/bun"

// Score types and counting flags as stored in view_heat_scores.
const (
	ScoreTypeWave = "Wave"
	ScoreTypeJump = "Jump"

	CountingYes = "Yes"
	CountingNo  = "No"
)

// HeatTotal is a row of view_heat_totals: a sailor's wave and jump points in
// one heat. TotalPoints = WavePoints + JumpPoints.
type HeatTotal struct {
	bun.BaseModel `bun:"table:view_heat_totals,alias:vht" json:"-"`

	HeatNo      string  `bun:"heat_no" json:"heat_no"`
	Athlete     string  `bun:"athlete" json:"athlete"`
	WavePoints  float64 `bun:"wave_points" json:"wave_points"`
	JumpPoints  float64 `bun:"jump_points" json:"jump_points"`
	TotalPoints float64 `bun:"total_points" json:"total_points"`
	Gender      string  `bun:"gender" json:"gender"`
	EventID     int64   `bun:"event_id" json:"event_id"`
}

// HeatScore is a row of view_heat_scores: one scored wave or jump. Type is
// "Wave" for waves and the move name (e.g. "Forward Loop") for jumps.
type HeatScore struct {
	bun.BaseModel `bun:"table:view_heat_scores,alias:vhs" json:"-"`

	HeatNo   string  `bun:"heat_no" json:"heat_no"`
	Athlete  string  `bun:"athlete" json:"athlete"`
	Type     string  `bun:"type" json:"type"`
	Score    float64 `bun:"score" json:"score"`
	Counting string  `bun:"counting" json:"counting"`
	Gender   string  `bun:"gender" json:"gender"`
	EventID  int64   `bun:"event_id" json:"event_id"`
}

// EventResult is a row of view_event_results: a final placing with sponsors.
type EventResult struct {
	bun.BaseModel `bun:"table:view_event_results,alias:ver" json:"-"`

	Position int    `bun:"position" json:"position"`
	Rider    string `bun:"rider" json:"rider"`
	Sponsors string `bun:"sponsors" json:"sponsors"`
	Gender   string `bun:"gender" json:"gender"`
	EventID  int64  `bun:"event_id" json:"event_id"`
}
