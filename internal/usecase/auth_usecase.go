package usecase

import (
	"context"
	"errors"
	"time"

	"ergasia-marketplace/internal/domain"
	"ergasia-marketplace/pkg/apperror"
)

type authUsecase struct {
	userRepo domain.UserRepository
}

func NewAuthUsecase(userRepo domain.UserRepository) domain.AuthUsecase {
	return &authUsecase{userRepo: userRepo}
}

func (u *authUsecase) GetCurrentUser(ctx context.Context, id string) (*domain.User, error) {
	if id == "" {
		return nil, apperror.Unauthorized("User not authenticated")
	}
	user, err := u.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "User not found")
	}
	return user, nil
}

// EnsureUserExists is idempotent: a concurrent first login that loses the
// insert race reads the row the winner created.
func (u *authUsecase) EnsureUserExists(ctx context.Context, id string) (*domain.User, error) {
	if id == "" {
		return nil, apperror.Unauthorized("User not authenticated")
	}
	existing, err := u.userRepo.GetByID(ctx, id)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, apperror.Internal(err)
	}

	now := time.Now()
	user := &domain.User{
		ID:                  id,
		PreferredCategories: []domain.JobCategory{},
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	if err := u.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return u.GetCurrentUser(ctx, id)
		}
		return nil, apperror.Internal(err)
	}
	return user, nil
}
