package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	apperrors "taskhub/internal/errors"
	"taskhub/internal/model"
)

// MockTaskRepository is a mock implementation of TaskRepository.
type MockTaskRepository struct {
	mock.Mock
}

func (m *MockTaskRepository) Create(ctx context.Context, task *model.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func (m *MockTaskRepository) CreateBatch(ctx context.Context, tasks []*model.Task) error {
	args := m.Called(ctx, tasks)
	return args.Error(0)
}

func (m *MockTaskRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Task, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Task), args.Error(1)
}

func (m *MockTaskRepository) FindOwned(ctx context.Context, ownerID, taskID uuid.UUID) (*model.Task, error) {
	args := m.Called(ctx, ownerID, taskID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Task), args.Error(1)
}

func (m *MockTaskRepository) UpdateOwned(ctx context.Context, ownerID, taskID uuid.UUID, fields map[string]interface{}) (int64, error) {
	args := m.Called(ctx, ownerID, taskID, fields)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTaskRepository) DeleteOwned(ctx context.Context, ownerID, taskID uuid.UUID) (int64, error) {
	args := m.Called(ctx, ownerID, taskID)
	return args.Get(0).(int64), args.Error(1)
}

func strptr(s string) *string { return &s }
func boolptr(b bool) *bool    { return &b }

func TestTaskService_Create(t *testing.T) {
	ownerID := uuid.New()

	tests := []struct {
		name          string
		input         TaskInput
		setupMock     func(*MockTaskRepository)
		check         func(*testing.T, *model.Task)
		expectedError error
	}{
		{
			name:  "defaults are applied",
			input: TaskInput{Title: "  Buy groceries  "},
			setupMock: func(m *MockTaskRepository) {
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.Task")).Return(nil)
			},
			check: func(t *testing.T, task *model.Task) {
				assert.Equal(t, "Buy groceries", task.Title)
				assert.Equal(t, model.DefaultCategory, task.Category)
				assert.False(t, task.Completed)
				assert.Equal(t, ownerID, task.UserID)
			},
		},
		{
			name:  "explicit category is kept",
			input: TaskInput{Title: "Standup", Category: "work"},
			setupMock: func(m *MockTaskRepository) {
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.Task")).Return(nil)
			},
			check: func(t *testing.T, task *model.Task) {
				assert.Equal(t, "work", task.Category)
			},
		},
		{
			name:          "whitespace-only title rejected",
			input:         TaskInput{Title: "   "},
			setupMock:     func(m *MockTaskRepository) {},
			expectedError: apperrors.ErrTitleRequired,
		},
		{
			name:          "oversized title rejected",
			input:         TaskInput{Title: strings.Repeat("a", model.MaxTitleLength+1)},
			setupMock:     func(m *MockTaskRepository) {},
			expectedError: apperrors.ErrTitleTooLong,
		},
		{
			// The limit counts characters, not bytes.
			name:  "multi-byte title at the character limit accepted",
			input: TaskInput{Title: strings.Repeat("最", model.MaxTitleLength)},
			setupMock: func(m *MockTaskRepository) {
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.Task")).Return(nil)
			},
			check: func(t *testing.T, task *model.Task) {
				assert.Equal(t, strings.Repeat("最", model.MaxTitleLength), task.Title)
			},
		},
		{
			name:          "multi-byte title over the character limit rejected",
			input:         TaskInput{Title: strings.Repeat("最", model.MaxTitleLength+1)},
			setupMock:     func(m *MockTaskRepository) {},
			expectedError: apperrors.ErrTitleTooLong,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockTaskRepository)
			tt.setupMock(mockRepo)

			svc := NewTaskService(mockRepo, nil)
			task, err := svc.Create(context.Background(), ownerID, tt.input)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, task)
			} else {
				assert.NoError(t, err)
				tt.check(t, task)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestTaskService_Update(t *testing.T) {
	ownerID := uuid.New()
	taskID := uuid.New()

	t.Run("empty payload rejected without touching the store", func(t *testing.T) {
		mockRepo := new(MockTaskRepository)

		svc := NewTaskService(mockRepo, nil)
		_, err := svc.Update(context.Background(), ownerID, taskID, TaskUpdate{})

		assert.ErrorIs(t, err, apperrors.ErrNoUpdateFields)
		mockRepo.AssertNotCalled(t, "UpdateOwned")
	})

	t.Run("only present fields are written", func(t *testing.T) {
		mockRepo := new(MockTaskRepository)
		mockRepo.On("UpdateOwned", mock.Anything, ownerID, taskID,
			map[string]interface{}{"completed": true}).Return(int64(1), nil)
		mockRepo.On("FindOwned", mock.Anything, ownerID, taskID).Return(&model.Task{
			ID:        taskID,
			Title:     "Standup",
			Completed: true,
			UserID:    ownerID,
		}, nil)

		svc := NewTaskService(mockRepo, nil)
		task, err := svc.Update(context.Background(), ownerID, taskID, TaskUpdate{Completed: boolptr(true)})

		assert.NoError(t, err)
		assert.True(t, task.Completed)
		mockRepo.AssertExpectations(t)
	})

	t.Run("marking completed twice yields the same state", func(t *testing.T) {
		mockRepo := new(MockTaskRepository)
		updated := &model.Task{ID: taskID, Title: "Standup", Completed: true, UserID: ownerID}
		mockRepo.On("UpdateOwned", mock.Anything, ownerID, taskID,
			map[string]interface{}{"completed": true}).Return(int64(1), nil).Twice()
		mockRepo.On("FindOwned", mock.Anything, ownerID, taskID).Return(updated, nil).Twice()

		svc := NewTaskService(mockRepo, nil)
		first, err := svc.Update(context.Background(), ownerID, taskID, TaskUpdate{Completed: boolptr(true)})
		assert.NoError(t, err)
		second, err := svc.Update(context.Background(), ownerID, taskID, TaskUpdate{Completed: boolptr(true)})
		assert.NoError(t, err)

		assert.Equal(t, first, second)
		mockRepo.AssertExpectations(t)
	})

	t.Run("explicit empty description clears it", func(t *testing.T) {
		mockRepo := new(MockTaskRepository)
		mockRepo.On("UpdateOwned", mock.Anything, ownerID, taskID,
			map[string]interface{}{"description": ""}).Return(int64(1), nil)
		mockRepo.On("FindOwned", mock.Anything, ownerID, taskID).Return(&model.Task{
			ID:     taskID,
			Title:  "Standup",
			UserID: ownerID,
		}, nil)

		svc := NewTaskService(mockRepo, nil)
		task, err := svc.Update(context.Background(), ownerID, taskID, TaskUpdate{Description: strptr("")})

		assert.NoError(t, err)
		assert.Empty(t, task.Description)
		mockRepo.AssertExpectations(t)
	})

	t.Run("present empty title rejected", func(t *testing.T) {
		mockRepo := new(MockTaskRepository)

		svc := NewTaskService(mockRepo, nil)
		_, err := svc.Update(context.Background(), ownerID, taskID, TaskUpdate{Title: strptr("  ")})

		assert.ErrorIs(t, err, apperrors.ErrTitleRequired)
		mockRepo.AssertNotCalled(t, "UpdateOwned")
	})

	t.Run("foreign or absent task reports not found", func(t *testing.T) {
		mockRepo := new(MockTaskRepository)
		mockRepo.On("UpdateOwned", mock.Anything, ownerID, taskID,
			mock.AnythingOfType("map[string]interface {}")).Return(int64(0), nil)

		svc := NewTaskService(mockRepo, nil)
		_, err := svc.Update(context.Background(), ownerID, taskID, TaskUpdate{Completed: boolptr(true)})

		assert.ErrorIs(t, err, apperrors.ErrTaskNotFound)
		mockRepo.AssertExpectations(t)
	})

	t.Run("task deleted between update and re-read reports not found", func(t *testing.T) {
		mockRepo := new(MockTaskRepository)
		mockRepo.On("UpdateOwned", mock.Anything, ownerID, taskID,
			mock.AnythingOfType("map[string]interface {}")).Return(int64(1), nil)
		mockRepo.On("FindOwned", mock.Anything, ownerID, taskID).Return(nil, gorm.ErrRecordNotFound)

		svc := NewTaskService(mockRepo, nil)
		_, err := svc.Update(context.Background(), ownerID, taskID, TaskUpdate{Completed: boolptr(true)})

		assert.ErrorIs(t, err, apperrors.ErrTaskNotFound)
		mockRepo.AssertExpectations(t)
	})
}

func TestTaskService_Delete(t *testing.T) {
	ownerID := uuid.New()
	taskID := uuid.New()

	t.Run("owned task is deleted", func(t *testing.T) {
		mockRepo := new(MockTaskRepository)
		mockRepo.On("DeleteOwned", mock.Anything, ownerID, taskID).Return(int64(1), nil)

		svc := NewTaskService(mockRepo, nil)
		assert.NoError(t, svc.Delete(context.Background(), ownerID, taskID))
		mockRepo.AssertExpectations(t)
	})

	t.Run("foreign or absent task reports not found", func(t *testing.T) {
		mockRepo := new(MockTaskRepository)
		mockRepo.On("DeleteOwned", mock.Anything, ownerID, taskID).Return(int64(0), nil)

		svc := NewTaskService(mockRepo, nil)
		err := svc.Delete(context.Background(), ownerID, taskID)

		assert.ErrorIs(t, err, apperrors.ErrTaskNotFound)
		mockRepo.AssertExpectations(t)
	})
}

func TestTaskService_List(t *testing.T) {
	ownerID := uuid.New()
	now := time.Now()
	tasks := []model.Task{
		{ID: uuid.New(), Title: "Newest", UserID: ownerID, CreatedAt: now},
		{ID: uuid.New(), Title: "Older", UserID: ownerID, CreatedAt: now.Add(-time.Hour)},
	}

	mockRepo := new(MockTaskRepository)
	mockRepo.On("ListByOwner", mock.Anything, ownerID).Return(tasks, nil)

	svc := NewTaskService(mockRepo, nil)
	got, err := svc.List(context.Background(), ownerID)

	assert.NoError(t, err)
	assert.Equal(t, tasks, got)
	mockRepo.AssertExpectations(t)
}

func TestTaskService_BulkCreate(t *testing.T) {
	ownerID := uuid.New()

	t.Run("empty list rejected", func(t *testing.T) {
		mockRepo := new(MockTaskRepository)

		svc := NewTaskService(mockRepo, nil)
		count, err := svc.BulkCreate(context.Background(), ownerID, nil)

		assert.ErrorIs(t, err, apperrors.ErrEmptyBatch)
		assert.Zero(t, count)
		mockRepo.AssertNotCalled(t, "CreateBatch")
	})

	t.Run("defaults filled per element", func(t *testing.T) {
		mockRepo := new(MockTaskRepository)
		mockRepo.On("CreateBatch", mock.Anything, mock.MatchedBy(func(tasks []*model.Task) bool {
			if len(tasks) != 2 {
				return false
			}
			for _, task := range tasks {
				if task.UserID != ownerID || task.Category != model.DefaultCategory || task.Completed {
					return false
				}
			}
			return tasks[0].Title == "A" && tasks[1].Title == "B"
		})).Return(nil)

		svc := NewTaskService(mockRepo, nil)
		count, err := svc.BulkCreate(context.Background(), ownerID, []TaskInput{
			{Title: "A"},
			{Title: "B"},
		})

		assert.NoError(t, err)
		assert.Equal(t, 2, count)
		mockRepo.AssertExpectations(t)
	})

	t.Run("invalid element fails the whole batch before persistence", func(t *testing.T) {
		mockRepo := new(MockTaskRepository)

		svc := NewTaskService(mockRepo, nil)
		count, err := svc.BulkCreate(context.Background(), ownerID, []TaskInput{
			{Title: "A"},
			{Title: "  "},
		})

		assert.ErrorIs(t, err, apperrors.ErrTitleRequired)
		assert.Zero(t, count)
		mockRepo.AssertNotCalled(t, "CreateBatch")
	})

	t.Run("persistence failure leaves nothing created", func(t *testing.T) {
		mockRepo := new(MockTaskRepository)
		mockRepo.On("CreateBatch", mock.Anything, mock.AnythingOfType("[]*model.Task")).
			Return(gorm.ErrInvalidTransaction)

		svc := NewTaskService(mockRepo, nil)
		count, err := svc.BulkCreate(context.Background(), ownerID, []TaskInput{
			{Title: "A"},
			{Title: "B"},
		})

		assert.Error(t, err)
		assert.Zero(t, count)
		mockRepo.AssertExpectations(t)
	})
}
