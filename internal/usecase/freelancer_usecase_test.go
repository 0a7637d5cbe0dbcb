package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ergasia-marketplace/internal/domain"
	"ergasia-marketplace/internal/usecase"
)

func TestFreelancerUsecase_Browse(t *testing.T) {
	ctx := context.Background()
	users := []domain.User{
		{ID: "u1", Username: "ana_dev", PreferredCategories: []domain.JobCategory{engineering()}},
		{ID: "u2", Username: "bob", PreferredCategories: []domain.JobCategory{{ID: "c2", Name: "Design"}}},
		{ID: "u3", Username: "devon"},
	}

	t.Run("Filters by username and preferred category", func(t *testing.T) {
		repo := new(MockUserRepo)
		repo.On("FetchAll", ctx).Return(users, nil)

		page, err := usecase.NewFreelancerUsecase(repo, 12).Browse(ctx, domain.FreelancerQuery{SearchText: "DEV", Categories: []string{"Engineering"}})
		require.NoError(t, err)
		require.Len(t, page.Freelancers, 1)
		assert.Equal(t, "u1", page.Freelancers[0].ID)
	})

	t.Run("Pages the matches", func(t *testing.T) {
		repo := new(MockUserRepo)
		repo.On("FetchAll", ctx).Return(users, nil)

		page, err := usecase.NewFreelancerUsecase(repo, 2).Browse(ctx, domain.FreelancerQuery{Page: 2})
		require.NoError(t, err)
		assert.Equal(t, 3, page.Total)
		require.Len(t, page.Freelancers, 1)
		assert.Equal(t, "u3", page.Freelancers[0].ID)
	})
}
