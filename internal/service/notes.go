package service

import (
	"fmt"
	"strings"

	"github.com/pathakanu/medibot/internal/model"
	"gorm.io/gorm"
)

// DefaultNoteLimit caps note listings when the caller does not supply one.
const DefaultNoteLimit = 20

// Notes persists free-text health notes. Notes are global: the tool is
// single-user by design and the note endpoints carry no owner.
type Notes struct {
	db *gorm.DB
}

// NewNotes creates the note service.
func NewNotes(db *gorm.DB) *Notes {
	return &Notes{db: db}
}

// Add appends a note with a server-assigned timestamp.
func (s *Notes) Add(content string) (*model.Note, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, fmt.Errorf("%w: content is required", ErrValidation)
	}

	note := &model.Note{Content: content}
	if err := s.db.Create(note).Error; err != nil {
		return nil, fmt.Errorf("create note: %w", err)
	}
	return note, nil
}

// List returns the most recent notes, newest first. A non-positive limit
// falls back to DefaultNoteLimit.
func (s *Notes) List(limit int) ([]model.Note, error) {
	if limit <= 0 {
		limit = DefaultNoteLimit
	}

	notes := []model.Note{}
	err := s.db.Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&notes).Error
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	return notes, nil
}
