package usecase

import (
	"context"

	"ergasia-marketplace/internal/domain"
	"ergasia-marketplace/internal/filter"
	"ergasia-marketplace/pkg/apperror"
)

type freelancerUsecase struct {
	userRepo domain.UserRepository
	perPage  int
}

func NewFreelancerUsecase(userRepo domain.UserRepository, perPage int) domain.FreelancerUsecase {
	if perPage < 1 {
		perPage = filter.DefaultPerPage
	}
	return &freelancerUsecase{userRepo: userRepo, perPage: perPage}
}

func (u *freelancerUsecase) Browse(ctx context.Context, q domain.FreelancerQuery) (*domain.FreelancerPage, error) {
	users, err := u.userRepo.FetchAll(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	matched := filter.Freelancers(users, filter.Criteria{
		SearchText:         q.SearchText,
		SelectedCategories: q.Categories,
	})

	page := q.Page
	if page < 1 {
		page = 1
	}
	pageSize := q.PageSize
	if pageSize < 1 {
		pageSize = u.perPage
	}
	items, total := filter.Paginate(matched, page, pageSize)

	return &domain.FreelancerPage{
		Freelancers: items,
		Total:       total,
		Page:        page,
		PageSize:    pageSize,
	}, nil
}
