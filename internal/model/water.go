package model

// WaterCount tracks glasses of water per caller per day. The composite
// primary key keeps at most one row per (date, user) pair, which the
// increment upsert relies on.
type WaterCount struct {
	Date   string `gorm:"primaryKey;size:10" json:"date"`
	UserID string `gorm:"primaryKey" json:"-"`
	Count  int    `gorm:"not null;default:0" json:"count"`
}
