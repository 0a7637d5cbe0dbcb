package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"ergasia-marketplace/internal/domain"
	"ergasia-marketplace/pkg/apperror"
	"ergasia-marketplace/pkg/logger"
)

type categoryUsecase struct {
	repo  domain.CategoryRepository
	cache domain.CategoryProvider
}

func NewCategoryUsecase(repo domain.CategoryRepository, cache domain.CategoryProvider) domain.CategoryUsecase {
	return &categoryUsecase{repo: repo, cache: cache}
}

func (u *categoryUsecase) ListCategories(ctx context.Context) ([]domain.JobCategory, error) {
	cats, err := u.cache.Get(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return cats, nil
}

func (u *categoryUsecase) RefreshCategories(ctx context.Context) ([]domain.JobCategory, error) {
	cats, err := u.cache.Refresh(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return cats, nil
}

// ResolveOrCreate keeps the order of names and drops case-insensitive
// duplicates and blanks.
func (u *categoryUsecase) ResolveOrCreate(ctx context.Context, names []string) ([]domain.JobCategory, error) {
	known := map[string]domain.JobCategory{}
	if cats, err := u.cache.Get(ctx); err == nil {
		for _, c := range cats {
			known[strings.ToLower(c.Name)] = c
		}
	} else {
		logger.Log.Warn("Category cache unavailable, resolving from database", "error", err)
	}

	out := make([]domain.JobCategory, 0, len(names))
	seen := map[string]bool{}
	created := false
	for _, raw := range names {
		name := strings.TrimSpace(raw)
		key := strings.ToLower(name)
		if name == "" || seen[key] {
			continue
		}
		seen[key] = true

		if c, ok := known[key]; ok {
			out = append(out, c)
			continue
		}
		c, isNew, err := u.findOrCreate(ctx, name)
		if err != nil {
			return nil, err
		}
		created = created || isNew
		out = append(out, *c)
	}

	if created {
		u.cache.Invalidate()
	}
	return out, nil
}

func (u *categoryUsecase) findOrCreate(ctx context.Context, name string) (*domain.JobCategory, bool, error) {
	c, err := u.repo.FindByName(ctx, name)
	if err == nil {
		return c, false, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, false, apperror.Internal(err)
	}

	c = &domain.JobCategory{ID: uuid.NewString(), Name: name}
	err = u.repo.Create(ctx, c)
	if errors.Is(err, domain.ErrConflict) {
		// created concurrently
		existing, findErr := u.repo.FindByName(ctx, name)
		if findErr != nil {
			return nil, false, apperror.Internal(findErr)
		}
		return existing, false, nil
	}
	if err != nil {
		return nil, false, apperror.Internal(err)
	}
	logger.Log.Info("Job category created", "category_id", c.ID, "name", c.Name)
	return c, true, nil
}
