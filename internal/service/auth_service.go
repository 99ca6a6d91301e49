package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"taskhub/internal/auth"
	"taskhub/internal/cache"
	apperrors "taskhub/internal/errors"
	"taskhub/internal/model"
	"taskhub/internal/repository"
)

const userCacheTTL = 5 * time.Minute

// AuthService handles identity resolution and first-login provisioning.
type AuthService interface {
	// Sync looks up a user by external identity reference, creates one on
	// first login, and issues a signed token embedding the internal id.
	Sync(ctx context.Context, externalID, email, name string) (*model.User, string, error)
	// Me returns the user for a resolved identity.
	Me(ctx context.Context, userID uuid.UUID) (*model.User, error)
}

type authService struct {
	users      repository.UserRepository
	jwtService *auth.JWTService
	cache      *cache.Client
}

// NewAuthService creates a new authentication service.
func NewAuthService(users repository.UserRepository, jwtService *auth.JWTService, cache *cache.Client) AuthService {
	return &authService{
		users:      users,
		jwtService: jwtService,
		cache:      cache,
	}
}

func (s *authService) cacheKey(id uuid.UUID) string {
	return fmt.Sprintf("user:%s", id)
}

// Sync is idempotent under concurrent first logins for the same external
// identity: the loser of the insert race observes gorm.ErrDuplicatedKey on
// the unique external_id index and re-reads the winner's row.
func (s *authService) Sync(ctx context.Context, externalID, email, name string) (*model.User, string, error) {
	user, err := s.users.FindByExternalID(ctx, externalID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		user = &model.User{
			ExternalID: externalID,
			Email:      email,
			Name:       name,
		}
		err = s.users.Create(ctx, user)
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			user, err = s.users.FindByExternalID(ctx, externalID)
		}
	}
	if err != nil {
		return nil, "", fmt.Errorf("sync user: %w", err)
	}

	token, err := s.jwtService.GenerateToken(user.ID, user.ExternalID, user.Email)
	if err != nil {
		return nil, "", fmt.Errorf("generate token: %w", err)
	}

	return user, token, nil
}

func (s *authService) Me(ctx context.Context, userID uuid.UUID) (*model.User, error) {
	if data, _ := s.cache.Get(ctx, s.cacheKey(userID)); data != nil {
		var cached model.User
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	user, err := s.users.FindByID(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(user); err == nil {
		_ = s.cache.Set(ctx, s.cacheKey(userID), payload, userCacheTTL)
	}
	return user, nil
}
