package model

import "time"

// Reminder represents a scheduled reminder belonging to one caller.
// Time is kept as free text exactly as the caller supplied it.
type Reminder struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    string    `gorm:"index;not null" json:"-"`
	Name      string    `gorm:"type:text;not null" json:"name"`
	Time      string    `gorm:"type:text;not null" json:"time"`
	Completed bool      `gorm:"not null;default:false" json:"completed"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"-"`
}
