package models

import "github.com/uptrace/bun"

// HeatData holds one scored ride or jump of a sailor in a heat, together with
// the sailor's heat totals.
type HeatData struct {
	bun.BaseModel `bun:"table:PWA_HEAT_DATA,alias:phd" json:"-"`

	HeatDataID   int64   `bun:"heat_data_id,pk,autoincrement" json:"heat_data_id"`
	CategoryCode string  `bun:"category_code" json:"category_code"`
	HeatsheetID  string  `bun:"heatsheet_id" json:"heatsheet_id"`
	HeatID       string  `bun:"heat_id" json:"heat_id"`
	HeatNo       string  `bun:"heat_no" json:"heat_no"`
	WaveCount    int     `bun:"wave_count" json:"wave_count"`
	JumpsCount   int     `bun:"jumps_count" json:"jumps_count"`
	WaveFactor   float64 `bun:"wave_factor" json:"wave_factor"`
	JumpFactor   float64 `bun:"jump_factor" json:"jump_factor"`
	SailorName   string  `bun:"sailor_name" json:"sailor_name"`
	SailNumber   string  `bun:"sail_number" json:"sail_number"`
	TotalWave    float64 `bun:"total_wave" json:"total_wave"`
	TotalJump    float64 `bun:"total_jump" json:"total_jump"`
	TotalPoints  float64 `bun:"total_points" json:"total_points"`
	ScoreType    string  `bun:"score_type" json:"score_type"`
	Score        float64 `bun:"score" json:"score"`
}

// Heatsheet is a sailor's slot in a heat draw.
type Heatsheet struct {
	bun.BaseModel `bun:"table:PWA_HEATSHEETS,alias:phs" json:"-"`

	HeatsheetID  string `bun:"heatsheet_id" json:"heatsheet_id"`
	CategoryCode string `bun:"category_code" json:"category_code"`
	HeatID       string `bun:"heat_id" json:"heat_id"`
	HeatNo       string `bun:"heat_no" json:"heat_no"`
	SailorName   string `bun:"sailor_name" json:"sailor_name"`
	SailNumber   string `bun:"sail_number" json:"sail_number"`
	Country      string `bun:"country" json:"country"`
	Rank         int    `bun:"rank" json:"rank"`
	Status       string `bun:"status" json:"status"`
	StartOrder   int    `bun:"start_order" json:"start_order"`
}

// HeatDataRow is a heat data row joined with its event. EventID and EventName
// are nil when the category is not linked to an event.
type HeatDataRow struct {
	HeatDataID   int64   `bun:"heat_data_id" json:"heat_data_id"`
	CategoryCode string  `bun:"category_code" json:"category_code"`
	HeatsheetID  string  `bun:"heatsheet_id" json:"heatsheet_id"`
	HeatID       string  `bun:"heat_id" json:"heat_id"`
	HeatNo       string  `bun:"heat_no" json:"heat_no"`
	WaveCount    int     `bun:"wave_count" json:"wave_count"`
	JumpsCount   int     `bun:"jumps_count" json:"jumps_count"`
	WaveFactor   float64 `bun:"wave_factor" json:"wave_factor"`
	JumpFactor   float64 `bun:"jump_factor" json:"jump_factor"`
	SailorName   string  `bun:"sailor_name" json:"sailor_name"`
	SailNumber   string  `bun:"sail_number" json:"sail_number"`
	TotalWave    float64 `bun:"total_wave" json:"total_wave"`
	TotalJump    float64 `bun:"total_jump" json:"total_jump"`
	TotalPoints  float64 `bun:"total_points" json:"total_points"`
	EventName    *string `bun:"event_name" json:"event_name"`
	EventID      *int64  `bun:"event_id" json:"event_id"`
	ScoreType    string  `bun:"score_type" json:"score_type"`
	Score        float64 `bun:"score" json:"score"`
}

// HeatsheetRow is a heatsheet slot joined with its event.
type HeatsheetRow struct {
	HeatsheetID  string  `bun:"heatsheet_id" json:"heatsheet_id"`
	CategoryCode string  `bun:"category_code" json:"category_code"`
	HeatID       string  `bun:"heat_id" json:"heat_id"`
	HeatNo       string  `bun:"heat_no" json:"heat_no"`
	SailorName   string  `bun:"sailor_name" json:"sailor_name"`
	SailNumber   string  `bun:"sail_number" json:"sail_number"`
	Country      string  `bun:"country" json:"country"`
	Rank         int     `bun:"rank" json:"rank"`
	Status       string  `bun:"status" json:"status"`
	StartOrder   int     `bun:"start_order" json:"start_order"`
	EventName    *string `bun:"event_name" json:"event_name"`
	EventID      *int64  `bun:"event_id" json:"event_id"`
}
