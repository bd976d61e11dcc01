package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pathakanu/medibot/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Water tracks one water-intake counter per caller per day.
type Water struct {
	db *gorm.DB
}

// NewWater creates the water-counter service.
func NewWater(db *gorm.DB) *Water {
	return &Water{db: db}
}

// Get returns the stored count for the key, or 0 when no row exists.
func (s *Water) Get(owner, date string) (int, error) {
	var row model.WaterCount
	err := s.db.Where("date = ? AND user_id = ?", date, owner).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("get water count: %w", err)
	}
	return row.Count, nil
}

// Set upserts the counter to an absolute value.
func (s *Water) Set(owner, date string, count int) error {
	if strings.TrimSpace(date) == "" {
		return fmt.Errorf("%w: date is required", ErrValidation)
	}

	row := model.WaterCount{Date: date, UserID: owner, Count: count}
	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "date"}, {Name: "user_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{"count": count}),
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("set water count: %w", err)
	}
	return nil
}

// Increment bumps the counter by one and returns the new value. The
// insert-or-increment runs as a single upsert statement so concurrent
// calls for the same key never lose an update.
func (s *Water) Increment(owner, date string) (int, error) {
	if strings.TrimSpace(date) == "" {
		return 0, fmt.Errorf("%w: date is required", ErrValidation)
	}

	row := model.WaterCount{Date: date, UserID: owner, Count: 1}
	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "date"}, {Name: "user_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{"count": gorm.Expr("count + 1")}),
	}).Create(&row).Error
	if err != nil {
		return 0, fmt.Errorf("increment water count: %w", err)
	}
	return s.Get(owner, date)
}
