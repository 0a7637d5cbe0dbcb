package usecase

import (
	"context"

	"ergasia-marketplace/internal/domain"
	"ergasia-marketplace/internal/recommend"
	"ergasia-marketplace/pkg/logger"
)

type recommendationUsecase struct {
	jobs       domain.JobUsecase
	categories domain.CategoryProvider
	selector   *recommend.Selector
}

func NewRecommendationUsecase(jobs domain.JobUsecase, categories domain.CategoryProvider, selector *recommend.Selector) domain.RecommendationUsecase {
	return &recommendationUsecase{
		jobs:       jobs,
		categories: categories,
		selector:   selector,
	}
}

// Recommend never fails because of the ranking side; only loading the
// candidate jobs can produce an error.
func (u *recommendationUsecase) Recommend(ctx context.Context, userID string) (*domain.Recommendations, error) {
	jobs, err := u.jobs.ListOpenJobs(ctx)
	if err != nil {
		return nil, err
	}

	cats, err := u.categories.Get(ctx)
	if err != nil {
		logger.Log.Warn("Categories unavailable for recommendations", "error", err)
		cats = nil
	}

	picked, ranked, err := u.selector.Pick(ctx, userID, jobs, cats)
	if err != nil {
		logger.Log.Warn("Click history unavailable, using random sample",
			"user_id", userID,
			"error", err,
		)
		return &domain.Recommendations{Jobs: u.selector.Sample(jobs)}, nil
	}
	return &domain.Recommendations{Jobs: picked, Personalized: ranked}, nil
}
