package models

import "time"

// User is an account that can bookmark contests.
type User struct {
	ID        string      `gorm:"type:uuid;default:gen_random_uuid();primary_key" json:"id"`
	Username  string      `gorm:"type:varchar(50);unique;not null" json:"username"`
	Email     string      `gorm:"type:varchar(100);unique;not null" json:"email"`
	Password  string      `gorm:"type:varchar(255);not null" json:"-"`
	Bookmarks []*Bookmark `gorm:"foreignKey:UserID" json:"bookmarks,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// Bookmark is a contest snapshot saved by a user. It copies the contest
// fields at bookmark time so the entry survives the live aggregate changing.
type Bookmark struct {
	ID              string    `gorm:"type:uuid;default:gen_random_uuid();primary_key" json:"id"`
	UserID          string    `gorm:"type:uuid;not null;column:user_id" json:"user_id"`
	ContestID       string    `gorm:"type:varchar(100);not null;column:contest_id" json:"contest_id"`
	Slug            string    `gorm:"type:varchar(100);not null" json:"slug"`
	Name            string    `gorm:"type:varchar(255);not null" json:"name"`
	Platform        Platform  `gorm:"type:varchar(30);not null" json:"platform"`
	StartTime       time.Time `gorm:"not null;column:start_time" json:"start_time"`
	Link            string    `gorm:"type:varchar(255)" json:"link"`
	DurationMinutes int       `gorm:"type:integer;column:duration_minutes" json:"duration_minutes"`
	Status          string    `gorm:"type:varchar(20);default:'UPCOMING'" json:"status"`
	BookmarkedAt    time.Time `gorm:"column:bookmarked_at" json:"bookmarked_at"`
}
