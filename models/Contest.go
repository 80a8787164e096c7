package models

import "time"

// Contest represents a stored contest that solutions can be attached to.
// Rows are created by the ingestion process; the API only reads them and
// appends solution references during playlist syncs.
type Contest struct {
	ID              string      `gorm:"type:uuid;default:gen_random_uuid();primary_key" json:"id"`
	ExternalID      string      `gorm:"type:varchar(100);not null;column:external_id" json:"external_id"`
	Slug            string      `gorm:"type:varchar(100);not null;index:idx_contests_platform_slug" json:"slug"`
	Name            string      `gorm:"type:varchar(255);not null" json:"name"`
	Platform        Platform    `gorm:"type:varchar(30);not null;index:idx_contests_platform_slug" json:"platform"`
	Link            string      `gorm:"type:varchar(255);not null" json:"link"`
	StartTime       time.Time   `gorm:"not null;column:start_time" json:"start_time"`
	DurationMinutes int         `gorm:"type:integer;not null;column:duration_minutes" json:"duration_minutes"`
	Status          string      `gorm:"type:varchar(20);not null;default:'UPCOMING'" json:"status"`
	Solutions       []*Solution `gorm:"foreignKey:ContestID" json:"solutions,omitempty"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}

// NormalizedContest is the transient contest shape produced by the platform
// adapters and served by the aggregation endpoints. It is never persisted.
type NormalizedContest struct {
	ExternalID      string    `json:"id"`
	Slug            string    `json:"slug"`
	Name            string    `json:"name"`
	Platform        Platform  `json:"platform"`
	StartTime       time.Time `json:"date"`
	DurationMinutes int       `json:"duration_minutes"`
	Link            string    `json:"link"`
	Status          string    `json:"status"`
}

// DurationDisplay returns the contest duration as a display string.
func (c NormalizedContest) DurationDisplay() string {
	return DurationDisplay(c.DurationMinutes)
}
