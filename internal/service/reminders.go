package service

import (
	"fmt"
	"strings"

	"github.com/pathakanu/medibot/internal/model"
	"gorm.io/gorm"
)

// Reminders persists per-caller reminders.
type Reminders struct {
	db *gorm.DB
}

// NewReminders creates the reminder service.
func NewReminders(db *gorm.DB) *Reminders {
	return &Reminders{db: db}
}

// Add stores a new pending reminder and returns its id.
func (s *Reminders) Add(owner, name, timeText string) (uint, error) {
	if strings.TrimSpace(name) == "" {
		return 0, fmt.Errorf("%w: name is required", ErrValidation)
	}
	if strings.TrimSpace(timeText) == "" {
		return 0, fmt.Errorf("%w: time is required", ErrValidation)
	}

	reminder := &model.Reminder{
		UserID: owner,
		Name:   name,
		Time:   timeText,
	}
	if err := s.db.Create(reminder).Error; err != nil {
		return 0, fmt.Errorf("create reminder: %w", err)
	}
	return reminder.ID, nil
}

// List returns the owner's reminders ordered by scheduled time.
func (s *Reminders) List(owner string) ([]model.Reminder, error) {
	reminders := []model.Reminder{}
	err := s.db.Where("user_id = ?", owner).
		Order("time ASC, id ASC").
		Find(&reminders).Error
	if err != nil {
		return nil, fmt.Errorf("list reminders: %w", err)
	}
	return reminders, nil
}

// Pending returns the owner's reminders that are not yet completed,
// ordered by scheduled time. Used by the daily summary and the digest.
func (s *Reminders) Pending(owner string) ([]model.Reminder, error) {
	reminders := []model.Reminder{}
	err := s.db.Where("user_id = ? AND completed = ?", owner, false).
		Order("time ASC, id ASC").
		Find(&reminders).Error
	if err != nil {
		return nil, fmt.Errorf("list pending reminders: %w", err)
	}
	return reminders, nil
}

// Complete marks the owner's reminder as done. A missing id is a no-op,
// not an error.
func (s *Reminders) Complete(owner string, id uint) error {
	err := s.db.Model(&model.Reminder{}).
		Where("id = ? AND user_id = ?", id, owner).
		Update("completed", true).Error
	if err != nil {
		return fmt.Errorf("complete reminder: %w", err)
	}
	return nil
}

// DeleteCompleted removes all of the owner's completed reminders and
// returns how many rows were removed.
func (s *Reminders) DeleteCompleted(owner string) (int64, error) {
	result := s.db.Where("user_id = ? AND completed = ?", owner, true).
		Delete(&model.Reminder{})
	if result.Error != nil {
		return 0, fmt.Errorf("delete completed reminders: %w", result.Error)
	}
	return result.RowsAffected, nil
}

// Owners returns every user id that currently has pending reminders.
func (s *Reminders) Owners() ([]string, error) {
	var owners []string
	err := s.db.Model(&model.Reminder{}).
		Where("completed = ?", false).
		Distinct().
		Pluck("user_id", &owners).Error
	if err != nil {
		return nil, fmt.Errorf("list reminder owners: %w", err)
	}
	return owners, nil
}
