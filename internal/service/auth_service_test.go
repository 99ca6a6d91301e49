package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"taskhub/internal/auth"
	apperrors "taskhub/internal/errors"
	"taskhub/internal/model"
)

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByExternalID(ctx context.Context, externalID string) (*model.User, error) {
	args := m.Called(ctx, externalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func TestAuthService_Sync(t *testing.T) {
	existing := &model.User{
		ID:         uuid.New(),
		ExternalID: "ext-1",
		Email:      "existing@example.com",
		Name:       "Existing User",
	}

	tests := []struct {
		name       string
		externalID string
		email      string
		userName   string
		setupMock  func(*MockUserRepository)
		wantErr    bool
	}{
		{
			name:       "first login creates user",
			externalID: "ext-new",
			email:      "new@example.com",
			userName:   "New User",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByExternalID", mock.Anything, "ext-new").Return(nil, gorm.ErrRecordNotFound)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Run(func(args mock.Arguments) {
					args.Get(1).(*model.User).ID = uuid.New()
				}).Return(nil)
			},
		},
		{
			name:       "existing user is returned",
			externalID: "ext-1",
			email:      "existing@example.com",
			userName:   "Existing User",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByExternalID", mock.Anything, "ext-1").Return(existing, nil)
			},
		},
		{
			name:       "concurrent duplicate sync observes the winner",
			externalID: "ext-1",
			email:      "existing@example.com",
			userName:   "Existing User",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByExternalID", mock.Anything, "ext-1").Return(nil, gorm.ErrRecordNotFound).Once()
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(gorm.ErrDuplicatedKey)
				m.On("FindByExternalID", mock.Anything, "ext-1").Return(existing, nil).Once()
			},
		},
		{
			name:       "lookup failure propagates",
			externalID: "ext-1",
			email:      "existing@example.com",
			userName:   "Existing User",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByExternalID", mock.Anything, "ext-1").Return(nil, gorm.ErrInvalidDB)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			jwtService := auth.NewJWTService("test-secret")
			svc := NewAuthService(mockRepo, jwtService, nil)

			user, token, err := svc.Sync(context.Background(), tt.externalID, tt.email, tt.userName)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, user)
				assert.Empty(t, token)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, user)
				assert.Equal(t, tt.externalID, user.ExternalID)
				assert.NotEmpty(t, token)

				// Issued token must resolve back to the stored internal id.
				claims, err := jwtService.ValidateToken(token)
				assert.NoError(t, err)
				assert.Equal(t, user.ID.String(), claims.UserID)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestAuthService_Me(t *testing.T) {
	userID := uuid.New()
	user := &model.User{ID: userID, ExternalID: "ext-1", Email: "test@example.com", Name: "Test User"}

	t.Run("returns user", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByID", mock.Anything, userID).Return(user, nil)

		svc := NewAuthService(mockRepo, auth.NewJWTService("test-secret"), nil)
		got, err := svc.Me(context.Background(), userID)

		assert.NoError(t, err)
		assert.Equal(t, user.Email, got.Email)
		mockRepo.AssertExpectations(t)
	})

	t.Run("missing user maps to not found", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByID", mock.Anything, userID).Return(nil, gorm.ErrRecordNotFound)

		svc := NewAuthService(mockRepo, auth.NewJWTService("test-secret"), nil)
		_, err := svc.Me(context.Background(), userID)

		assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
		mockRepo.AssertExpectations(t)
	})
}
