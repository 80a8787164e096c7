package models

import "time"

// Solution is a YouTube solution video linked to a stored contest. The
// (contest_id, video_id) pair is unique so playlist syncs can run any number
// of times without duplicating records.
type Solution struct {
	ID           string    `gorm:"type:uuid;default:gen_random_uuid();primary_key" json:"id"`
	ContestID    string    `gorm:"type:uuid;not null;uniqueIndex:idx_solutions_contest_video;column:contest_id" json:"contest_id"`
	VideoID      string    `gorm:"type:varchar(50);not null;uniqueIndex:idx_solutions_contest_video;column:video_id" json:"video_id"`
	Platform     Platform  `gorm:"type:varchar(30);not null" json:"platform"`
	ContestName  string    `gorm:"type:varchar(255);not null;column:contest_name" json:"contest_name"`
	Title        string    `gorm:"type:varchar(255);not null" json:"title"`
	Description  string    `gorm:"type:text" json:"description"`
	ThumbnailURL string    `gorm:"type:varchar(255);column:thumbnail_url" json:"thumbnail_url"`
	PublishedAt  time.Time `gorm:"column:published_at" json:"published_at"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
