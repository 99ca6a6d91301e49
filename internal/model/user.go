package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User represents an authenticated user in the system. Users are provisioned
// on first login from identity-provider claims and never deleted in practice.
type User struct {
	ID         uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	ExternalID string    `json:"external_id" gorm:"uniqueIndex;size:255;not null"`
	Email      string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	Name       string    `json:"name" gorm:"size:255;not null"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	// Relations
	Tasks []Task `json:"tasks,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// BeforeCreate sets UUID before creating the record.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
