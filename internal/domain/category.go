package domain

import "context"

type CategoryRepository interface {
	FetchAll(ctx context.Context) ([]JobCategory, error)
	FindByName(ctx context.Context, name string) (*JobCategory, error)
	Create(ctx context.Context, category *JobCategory) error
}

// CategoryProvider hands out the shared category list. Implementations may
// cache; Refresh forces a reload from the repository.
type CategoryProvider interface {
	Get(ctx context.Context) ([]JobCategory, error)
	Refresh(ctx context.Context) ([]JobCategory, error)
	Invalidate()
}

type CategoryUsecase interface {
	ListCategories(ctx context.Context) ([]JobCategory, error)
	RefreshCategories(ctx context.Context) ([]JobCategory, error)
	// ResolveOrCreate maps category names to stored categories, creating the
	// ones that do not exist yet. Names are matched case-insensitively.
	ResolveOrCreate(ctx context.Context, names []string) ([]JobCategory, error)
}
