package usecase

import (
	"context"

	"ergasia-marketplace/internal/domain"
	"ergasia-marketplace/pkg/apperror"
)

type clickUsecase struct {
	clickRepo domain.ClickRepository
	jobRepo   domain.JobRepository
}

func NewClickUsecase(clickRepo domain.ClickRepository, jobRepo domain.JobRepository) domain.ClickUsecase {
	return &clickUsecase{clickRepo: clickRepo, jobRepo: jobRepo}
}

func (u *clickUsecase) RecordClick(ctx context.Context, userID, jobID string) (*domain.UserClick, error) {
	if userID == "" {
		return nil, apperror.Unauthorized("User not authenticated")
	}
	if _, err := u.jobRepo.GetByID(ctx, jobID); err != nil {
		return nil, notFound(err, "Job not found")
	}
	click, err := u.clickRepo.Increment(ctx, userID, jobID)
	if err != nil {
		return nil, notFound(err, "Job not found")
	}
	return click, nil
}

func (u *clickUsecase) ListClicks(ctx context.Context, userID string) ([]domain.UserClick, error) {
	clicks, err := u.clickRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return clicks, nil
}
