package services

import (
	"context"

	"wms-finance/models"
	"wms-finance/repositories"
	"wms-finance/types"
)

// UserInput is the create payload: a user plus its clear-text password.
type UserInput struct {
	models.User
	Password string `json:"password" validate:"required,min=6"`
}

type UserService struct {
	repo repositories.Collection[models.User]
	auth *AuthService
}

func NewUserService(repo repositories.Collection[models.User], auth *AuthService) *UserService {
	return &UserService{repo: repo, auth: auth}
}

func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	return s.repo.List(ctx)
}

func (s *UserService) Get(ctx context.Context, id types.SnowflakeID) (models.User, bool, error) {
	return s.repo.Get(ctx, id)
}

func (s *UserService) Create(ctx context.Context, input UserInput) (models.User, error) {
	hash, err := HashPassword(input.Password)
	if err != nil {
		return models.User{}, err
	}
	user := input.User
	user.PasswordHash = hash
	user.LastLogin = nil
	return s.repo.Create(ctx, user)
}

// Update hashes a new password when one is given and pushes the result
// into the user's open sessions.
func (s *UserService) Update(ctx context.Context, id types.SnowflakeID, patch models.UserPatch) (models.User, bool, error) {
	if patch.Password != nil {
		hash, err := HashPassword(*patch.Password)
		if err != nil {
			return models.User{}, false, err
		}
		patch.PasswordHash = &hash
		patch.Password = nil
	}
	user, found, err := s.repo.Update(ctx, id, patch)
	if err != nil || !found {
		return user, found, err
	}
	if user.Status == models.StatusInactive {
		s.auth.RevokeSessions(user.ID)
	} else {
		s.auth.SyncSessions(user)
	}
	return user, true, nil
}

func (s *UserService) Delete(ctx context.Context, id types.SnowflakeID) (bool, error) {
	found, err := s.repo.Delete(ctx, id)
	if err != nil || !found {
		return found, err
	}
	s.auth.RevokeSessions(id)
	return true, nil
}
