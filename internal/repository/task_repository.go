package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"taskhub/internal/model"
)

// TaskRepository defines task persistence operations. Every item-level query
// carries the owner id in its WHERE clause, so a task belonging to another
// user matches nothing, exactly like a task that does not exist.
type TaskRepository interface {
	Create(ctx context.Context, task *model.Task) error
	CreateBatch(ctx context.Context, tasks []*model.Task) error
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Task, error)
	FindOwned(ctx context.Context, ownerID, taskID uuid.UUID) (*model.Task, error)
	UpdateOwned(ctx context.Context, ownerID, taskID uuid.UUID, fields map[string]interface{}) (int64, error)
	DeleteOwned(ctx context.Context, ownerID, taskID uuid.UUID) (int64, error)
}

type taskRepository struct {
	db *gorm.DB
}

// NewTaskRepository builds a GORM-backed repository.
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &taskRepository{db: db}
}

func (r *taskRepository) Create(ctx context.Context, task *model.Task) error {
	return r.db.WithContext(ctx).Create(task).Error
}

// CreateBatch inserts all tasks inside one transaction. A failure on any row
// rolls back the whole batch.
func (r *taskRepository) CreateBatch(ctx context.Context, tasks []*model.Task) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&tasks).Error
	})
}

// ListByOwner returns the owner's tasks newest first. The ordering is part of
// the API contract.
func (r *taskRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Task, error) {
	var tasks []model.Task
	if err := r.db.WithContext(ctx).Where("user_id = ?", ownerID).
		Order("created_at DESC").
		Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *taskRepository) FindOwned(ctx context.Context, ownerID, taskID uuid.UUID) (*model.Task, error) {
	var task model.Task
	if err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", taskID, ownerID).
		First(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// UpdateOwned applies the given fields as a single conditional UPDATE scoped
// by owner and reports how many rows matched. GORM refreshes updated_at as
// part of the statement.
func (r *taskRepository) UpdateOwned(ctx context.Context, ownerID, taskID uuid.UUID, fields map[string]interface{}) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.Task{}).
		Where("id = ? AND user_id = ?", taskID, ownerID).
		Updates(fields)
	return res.RowsAffected, res.Error
}

func (r *taskRepository) DeleteOwned(ctx context.Context, ownerID, taskID uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", taskID, ownerID).
		Delete(&model.Task{})
	return res.RowsAffected, res.Error
}
