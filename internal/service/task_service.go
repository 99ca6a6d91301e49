package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"taskhub/internal/cache"
	apperrors "taskhub/internal/errors"
	"taskhub/internal/model"
	"taskhub/internal/repository"
)

const taskListCacheTTL = time.Minute

// TaskInput represents data required to create a task. Zero values for
// optional fields fall back to creation defaults.
type TaskInput struct {
	Title       string
	Description string
	Category    string
	Completed   bool
}

// TaskUpdate is a sparse update payload. A nil pointer means the field was
// absent from the request; a non-nil pointer to a zero value is an explicit
// assignment (e.g. clearing the description).
type TaskUpdate struct {
	Title       *string
	Description *string
	Category    *string
	Completed   *bool
}

// TaskService wraps task business logic. The owner id always comes from the
// resolved identity, never from client input.
type TaskService interface {
	List(ctx context.Context, ownerID uuid.UUID) ([]model.Task, error)
	Create(ctx context.Context, ownerID uuid.UUID, input TaskInput) (*model.Task, error)
	Update(ctx context.Context, ownerID, taskID uuid.UUID, update TaskUpdate) (*model.Task, error)
	Delete(ctx context.Context, ownerID, taskID uuid.UUID) error
	BulkCreate(ctx context.Context, ownerID uuid.UUID, inputs []TaskInput) (int, error)
}

type taskService struct {
	tasks repository.TaskRepository
	cache *cache.Client
}

// NewTaskService creates a new task service.
func NewTaskService(tasks repository.TaskRepository, cache *cache.Client) TaskService {
	return &taskService{tasks: tasks, cache: cache}
}

func (s *taskService) listCacheKey(ownerID uuid.UUID) string {
	return fmt.Sprintf("tasks:%s", ownerID)
}

func (s *taskService) invalidateList(ctx context.Context, ownerID uuid.UUID) {
	_ = s.cache.Delete(ctx, s.listCacheKey(ownerID))
}

// validateTitle returns the trimmed title or a validation error.
func validateTitle(title string) (string, error) {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return "", apperrors.ErrTitleRequired
	}
	if utf8.RuneCountInString(trimmed) > model.MaxTitleLength {
		return "", apperrors.ErrTitleTooLong
	}
	return trimmed, nil
}

func newTask(ownerID uuid.UUID, input TaskInput) (*model.Task, error) {
	title, err := validateTitle(input.Title)
	if err != nil {
		return nil, err
	}
	category := strings.TrimSpace(input.Category)
	if category == "" {
		category = model.DefaultCategory
	}
	return &model.Task{
		Title:       title,
		Description: input.Description,
		Category:    category,
		Completed:   input.Completed,
		UserID:      ownerID,
	}, nil
}

func (s *taskService) List(ctx context.Context, ownerID uuid.UUID) ([]model.Task, error) {
	if data, _ := s.cache.Get(ctx, s.listCacheKey(ownerID)); data != nil {
		var cached []model.Task
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached, nil
		}
	}

	tasks, err := s.tasks.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(tasks); err == nil {
		_ = s.cache.Set(ctx, s.listCacheKey(ownerID), payload, taskListCacheTTL)
	}
	return tasks, nil
}

func (s *taskService) Create(ctx context.Context, ownerID uuid.UUID, input TaskInput) (*model.Task, error) {
	task, err := newTask(ownerID, input)
	if err != nil {
		return nil, err
	}
	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}
	s.invalidateList(ctx, ownerID)
	return task, nil
}

// Update applies the present fields as one owner-scoped conditional UPDATE.
// Zero matched rows means the task is absent or foreign; both report not
// found. An update with no recognized fields is rejected rather than
// silently succeeding.
func (s *taskService) Update(ctx context.Context, ownerID, taskID uuid.UUID, update TaskUpdate) (*model.Task, error) {
	fields := map[string]interface{}{}
	if update.Title != nil {
		title, err := validateTitle(*update.Title)
		if err != nil {
			return nil, err
		}
		fields["title"] = title
	}
	if update.Description != nil {
		fields["description"] = *update.Description
	}
	if update.Category != nil {
		category := strings.TrimSpace(*update.Category)
		if category == "" {
			category = model.DefaultCategory
		}
		fields["category"] = category
	}
	if update.Completed != nil {
		fields["completed"] = *update.Completed
	}
	if len(fields) == 0 {
		return nil, apperrors.ErrNoUpdateFields
	}

	rows, err := s.tasks.UpdateOwned(ctx, ownerID, taskID, fields)
	if err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}
	if rows == 0 {
		return nil, apperrors.ErrTaskNotFound
	}
	s.invalidateList(ctx, ownerID)

	task, err := s.tasks.FindOwned(ctx, ownerID, taskID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// deleted between the update and the re-read
		return nil, apperrors.ErrTaskNotFound
	}
	if err != nil {
		return nil, err
	}
	return task, nil
}

func (s *taskService) Delete(ctx context.Context, ownerID, taskID uuid.UUID) error {
	rows, err := s.tasks.DeleteOwned(ctx, ownerID, taskID)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	if rows == 0 {
		return apperrors.ErrTaskNotFound
	}
	s.invalidateList(ctx, ownerID)
	return nil
}

// BulkCreate persists all inputs as one transactional batch; none remain if
// any insert fails.
func (s *taskService) BulkCreate(ctx context.Context, ownerID uuid.UUID, inputs []TaskInput) (int, error) {
	if len(inputs) == 0 {
		return 0, apperrors.ErrEmptyBatch
	}

	tasks := make([]*model.Task, 0, len(inputs))
	for _, input := range inputs {
		task, err := newTask(ownerID, input)
		if err != nil {
			return 0, err
		}
		tasks = append(tasks, task)
	}

	if err := s.tasks.CreateBatch(ctx, tasks); err != nil {
		return 0, fmt.Errorf("bulk create tasks: %w", err)
	}
	s.invalidateList(ctx, ownerID)
	return len(tasks), nil
}
