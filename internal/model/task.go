package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	// DefaultCategory is applied when a task is created without a category.
	DefaultCategory = "personal"
	// MaxTitleLength matches the title column width.
	MaxTitleLength = 500
)

// Task represents a single to-do item owned by exactly one user. Ownership is
// fixed at creation; every read and mutation is scoped by UserID.
type Task struct {
	ID          uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	Title       string    `json:"title" gorm:"size:500;not null"`
	Description string    `json:"description" gorm:"type:text"`
	Category    string    `json:"category" gorm:"size:50;not null;default:'personal'"`
	Completed   bool      `json:"completed" gorm:"not null;default:false"`
	UserID      uuid.UUID `json:"user_id" gorm:"type:char(36);not null;index"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// BeforeCreate sets UUID before creating the record.
func (t *Task) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
