package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh}

type Status string

const (
	StatusOpen       Status = "open"
	StatusInProgress Status = "in_progress"
	StatusDone       Status = "done"
)

var Statuses = []Status{StatusOpen, StatusInProgress, StatusDone}

type Task struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index"`
	Title       string    `gorm:"size:200;not null"`
	Description string
	DueDate     *time.Time
	Priority    Priority `gorm:"size:10;not null"`
	Status      Status   `gorm:"size:20;not null"`
	IsCompleted bool     `gorm:"not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	CompletedAt *time.Time
}

func (t *Task) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	if t.Priority == "" {
		t.Priority = PriorityMedium
	}
	if t.Status == "" {
		t.Status = StatusOpen
	}
	return nil
}

// BeforeSave keeps CompletedAt in step with IsCompleted: stamped on the
// first save that sees the task completed, cleared once it is reopened.
func (t *Task) BeforeSave(tx *gorm.DB) error {
	t.syncCompletion(tx.NowFunc())
	return nil
}

func (t *Task) syncCompletion(now time.Time) {
	switch {
	case t.IsCompleted && t.CompletedAt == nil:
		t.CompletedAt = &now
	case !t.IsCompleted:
		t.CompletedAt = nil
	}
}

// Toggle flips the completion flag and updates CompletedAt accordingly.
func (t *Task) Toggle(now time.Time) {
	t.IsCompleted = !t.IsCompleted
	t.syncCompletion(now)
}

// IsOverdue reports whether a pending task is past its due date.
func (t *Task) IsOverdue(now time.Time) bool {
	return !t.IsCompleted && t.DueDate != nil && t.DueDate.Before(now)
}
