package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserProfile is the one-to-one extension of User.
type UserProfile struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey"`
	UserID         uuid.UUID  `gorm:"type:uuid;uniqueIndex;not null"`
	Bio            string
	ProfilePicture string     `gorm:"size:255"`
	DateOfBirth    *time.Time `gorm:"type:date"`
	PhoneNumber    string     `gorm:"size:15"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (p *UserProfile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
