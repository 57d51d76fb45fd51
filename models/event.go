package models

import (
	"time"

	"github.com/uptrace/bun"
)

// SectionCompleted is the section label of events whose results are final.
const SectionCompleted = "completed events"

// EventCategory is one competition division of an event.
type EventCategory struct {
	bun.BaseModel `bun:"table:PWA_EVENT_CATEGORIES,alias:ec" json:"-"`

	CategoryCode string    `bun:"category_code,pk" json:"category_code"`
	EventID      int64     `bun:"event_id,notnull" json:"event_id"`
	EventName    string    `bun:"event_name,notnull" json:"event_name"`
	Section      string    `bun:"section" json:"section"`
	StartDate    time.Time `bun:"start_date,type:date" json:"start_date"`
	EndDate      time.Time `bun:"end_date,type:date" json:"end_date"`
}

// EventEntry is a sailor's final placing in one discipline of an event.
type EventEntry struct {
	bun.BaseModel `bun:"table:PWA_EVENT_RESULTS,alias:per" json:"-"`

	EventID    int64  `bun:"event_id,notnull" json:"event_id"`
	Discipline string `bun:"discipline" json:"discipline"`
	SailorName string `bun:"sailor_name" json:"sailor_name"`
	SailorHref string `bun:"sailor_href" json:"sailor_href"`
	Position   int    `bun:"position" json:"position"`
}

// Event is a calendar row: a completed event with its category and rider totals.
type Event struct {
	EventID       int64     `bun:"event_id" json:"event_id"`
	EventName     string    `bun:"event_name" json:"event_name"`
	Section       string    `bun:"section" json:"section"`
	StartDate     time.Time `bun:"start_date" json:"start_date"`
	EndDate       time.Time `bun:"end_date" json:"end_date"`
	CategoryCount int       `bun:"category_count" json:"category_count"`
	RiderCount    int       `bun:"rider_count" json:"rider_count"`
}
