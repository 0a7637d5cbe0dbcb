package domain

import (
	"context"
	"time"
)

type User struct {
	ID                  string        `json:"id"` // principal id issued by the face service
	Username            string        `json:"username"`
	Description         string        `json:"description"`
	PreferredCategories []JobCategory `json:"preference"`
	Rating              float64       `json:"rating"`
	CreatedAt           time.Time     `json:"createdAt"`
	UpdatedAt           time.Time     `json:"updatedAt"`
}

// CategoryNames returns the names of the user's preferred categories.
func (u User) CategoryNames() []string {
	names := make([]string, 0, len(u.PreferredCategories))
	for _, c := range u.PreferredCategories {
		names = append(names, c.Name)
	}
	return names
}

type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	FetchAll(ctx context.Context) ([]User, error)
}

// FreelancerQuery carries the browse-freelancer filters.
type FreelancerQuery struct {
	SearchText string
	Categories []string
	Page       int
	PageSize   int
}

type FreelancerPage struct {
	Freelancers []User `json:"freelancers"`
	Total       int    `json:"total"`
	Page        int    `json:"page"`
	PageSize    int    `json:"page_size"`
}

type FreelancerUsecase interface {
	Browse(ctx context.Context, q FreelancerQuery) (*FreelancerPage, error)
}

type AuthUsecase interface {
	GetCurrentUser(ctx context.Context, id string) (*User, error)
	// EnsureUserExists creates a bare profile for a principal the first time
	// it authenticates.
	EnsureUserExists(ctx context.Context, id string) (*User, error)
}
