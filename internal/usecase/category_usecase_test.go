package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"ergasia-marketplace/internal/domain"
	"ergasia-marketplace/internal/usecase"
)

func TestCategoryUsecase_ResolveOrCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("Cached names resolve without touching the database", func(t *testing.T) {
		repo := new(MockCategoryRepo)
		provider := new(MockCategoryProvider)
		provider.On("Get", ctx).Return([]domain.JobCategory{engineering()}, nil)

		got, err := usecase.NewCategoryUsecase(repo, provider).ResolveOrCreate(ctx, []string{"ENGINEERING", "engineering", " "})
		require.NoError(t, err)
		assert.Equal(t, []domain.JobCategory{engineering()}, got)
		repo.AssertNotCalled(t, "FindByName", mock.Anything, mock.Anything)
		provider.AssertNotCalled(t, "Invalidate")
	})

	t.Run("A concurrent insert is read back", func(t *testing.T) {
		repo := new(MockCategoryRepo)
		provider := new(MockCategoryProvider)
		design := &domain.JobCategory{ID: "c9", Name: "Design"}
		provider.On("Get", ctx).Return(nil, errors.New("cache down"))
		repo.On("FindByName", ctx, "Design").Return(nil, domain.ErrNotFound).Once()
		repo.On("Create", ctx, mock.Anything).Return(domain.ErrConflict)
		repo.On("FindByName", ctx, "Design").Return(design, nil).Once()

		got, err := usecase.NewCategoryUsecase(repo, provider).ResolveOrCreate(ctx, []string{"Design"})
		require.NoError(t, err)
		assert.Equal(t, []domain.JobCategory{*design}, got)
		provider.AssertNotCalled(t, "Invalidate")
	})

	t.Run("Database errors are internal", func(t *testing.T) {
		repo := new(MockCategoryRepo)
		provider := new(MockCategoryProvider)
		provider.On("Get", ctx).Return([]domain.JobCategory{}, nil)
		repo.On("FindByName", ctx, "Design").Return(nil, errors.New("boom"))

		_, err := usecase.NewCategoryUsecase(repo, provider).ResolveOrCreate(ctx, []string{"Design"})
		assert.Equal(t, 500, appCode(t, err))
	})
}

func TestCategoryUsecase_Refresh(t *testing.T) {
	ctx := context.Background()
	provider := new(MockCategoryProvider)
	provider.On("Refresh", ctx).Return([]domain.JobCategory{engineering()}, nil)

	got, err := usecase.NewCategoryUsecase(new(MockCategoryRepo), provider).RefreshCategories(ctx)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}
