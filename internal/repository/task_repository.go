package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"tasktracker/internal/model"
)

// TaskStats is the per-user aggregate shown on the dashboard.
type TaskStats struct {
	Total               int64
	Completed           int64
	Pending             int64
	HighPriorityPending int64
}

// CompletionRate is Completed/Total as a percentage, 0 for an empty list.
func (s TaskStats) CompletionRate() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Completed) / float64(s.Total) * 100
}

type TaskRepositoryInterface interface {
	Create(ctx context.Context, task *model.Task) error
	GetForOwner(ctx context.Context, id, ownerID uuid.UUID) (*model.Task, error)
	ListForOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Task, error)
	Recent(ctx context.Context, ownerID uuid.UUID, limit int) ([]model.Task, error)
	Stats(ctx context.Context, ownerID uuid.UUID) (TaskStats, error)
	DueBetween(ctx context.Context, ownerID uuid.UUID, from, to time.Time) ([]model.Task, error)
	CountCompleted(ctx context.Context, ownerID uuid.UUID) (int64, error)
	Update(ctx context.Context, task *model.Task) error
	DeleteForOwner(ctx context.Context, id, ownerID uuid.UUID) error
}

var _ TaskRepositoryInterface = (*TaskRepository)(nil)

// TaskRepository scopes every query to the owning user. A task that belongs
// to someone else is reported exactly like a missing one.
type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// Create adds a new task to the database
func (r *TaskRepository) Create(ctx context.Context, task *model.Task) error {
	return r.db.WithContext(ctx).Create(task).Error
}

// GetForOwner retrieves a task by its ID if ownerID owns it
func (r *TaskRepository) GetForOwner(ctx context.Context, id, ownerID uuid.UUID) (*model.Task, error) {
	var task model.Task
	result := r.db.WithContext(ctx).First(&task, "id = ? AND user_id = ?", id, ownerID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, result.Error
	}
	return &task, nil
}

// ListForOwner retrieves all of the user's tasks, newest first
func (r *TaskRepository) ListForOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Task, error) {
	var tasks []model.Task
	result := r.db.WithContext(ctx).Where("user_id = ?", ownerID).Order("created_at DESC").Find(&tasks)
	if result.Error != nil {
		return nil, result.Error
	}
	return tasks, nil
}

// Recent retrieves the limit most recently created tasks
func (r *TaskRepository) Recent(ctx context.Context, ownerID uuid.UUID, limit int) ([]model.Task, error) {
	var tasks []model.Task
	result := r.db.WithContext(ctx).
		Where("user_id = ?", ownerID).
		Order("created_at DESC").
		Limit(limit).
		Find(&tasks)
	if result.Error != nil {
		return nil, result.Error
	}
	return tasks, nil
}

// Stats counts the user's tasks in a single aggregate query
func (r *TaskRepository) Stats(ctx context.Context, ownerID uuid.UUID) (TaskStats, error) {
	var stats TaskStats
	err := r.db.WithContext(ctx).Model(&model.Task{}).
		Select(
			"COUNT(*) AS total, "+
				"COALESCE(SUM(CASE WHEN is_completed THEN 1 ELSE 0 END), 0) AS completed, "+
				"COALESCE(SUM(CASE WHEN NOT is_completed THEN 1 ELSE 0 END), 0) AS pending, "+
				"COALESCE(SUM(CASE WHEN NOT is_completed AND priority = ? THEN 1 ELSE 0 END), 0) AS high_priority_pending",
			model.PriorityHigh,
		).
		Where("user_id = ?", ownerID).
		Scan(&stats).Error
	return stats, err
}

// DueBetween retrieves pending tasks whose due date lies in [from, to]
func (r *TaskRepository) DueBetween(ctx context.Context, ownerID uuid.UUID, from, to time.Time) ([]model.Task, error) {
	var tasks []model.Task
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND is_completed = ? AND due_date >= ? AND due_date <= ?", ownerID, false, from, to).
		Order("due_date").
		Find(&tasks)
	if result.Error != nil {
		return nil, result.Error
	}
	return tasks, nil
}

func (r *TaskRepository) CountCompleted(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Task{}).
		Where("user_id = ? AND is_completed = ?", ownerID, true).
		Count(&count).Error
	return count, err
}

// Update writes the mutable fields of a task. The owner is part of the
// WHERE clause, so a task that changed hands or vanished is ErrTaskNotFound.
// Concurrent edits are last-write-wins.
func (r *TaskRepository) Update(ctx context.Context, task *model.Task) error {
	result := r.db.WithContext(ctx).
		Model(task).
		Where("user_id = ?", task.UserID).
		Select("title", "description", "due_date", "priority", "status", "is_completed", "completed_at", "updated_at").
		Updates(task)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTaskNotFound
	}
	return nil
}

// DeleteForOwner hard-deletes a task owned by ownerID
func (r *TaskRepository) DeleteForOwner(ctx context.Context, id, ownerID uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, ownerID).Delete(&model.Task{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTaskNotFound
	}
	return nil
}
