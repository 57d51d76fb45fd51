package models

import (
	"time"

	"github.com/uptrace/bun"
)

// AthleteResult is one row of athlete_profile_results: a sailor's placing at
// an event.
type AthleteResult struct {
	bun.BaseModel `bun:"table:athlete_profile_results,alias:apr" json:"-"`

	EventID    int64     `bun:"event_id" json:"event_id"`
	EventName  string    `bun:"event_name" json:"event_name"`
	Location   string    `bun:"location" json:"location"`
	StartDate  time.Time `bun:"start_date,type:date" json:"start_date"`
	EndDate    time.Time `bun:"end_date,type:date" json:"end_date"`
	Position   int       `bun:"position" json:"position"`
	SailorName string    `bun:"sailor_name" json:"sailor_name"`
	SailorHref string    `bun:"sailor_href" json:"sailor_href"`
	Year       int       `bun:"year" json:"year"`
}

// AthleteFilter is one selectable athlete.
type AthleteFilter struct {
	AthleteName string `bun:"athlete_name" json:"athlete_name"`
}

// YearFilter is one selectable season with the number of results in it.
type YearFilter struct {
	Year  int `bun:"year" json:"year"`
	Count int `bun:"count" json:"count"`
}

// AthleteFilters feeds the athlete page selectors.
type AthleteFilters struct {
	Athletes []AthleteFilter `json:"athletes"`
	Years    []YearFilter    `json:"years"`
}

// EmptyAthleteFilters is the fallback with both lists present but empty.
func EmptyAthleteFilters() AthleteFilters {
	return AthleteFilters{Athletes: []AthleteFilter{}, Years: []YearFilter{}}
}
