package domain

import "context"

// Recommendations is the carousel payload. Personalized is false when the
// random fallback was used.
type Recommendations struct {
	Jobs         []Job `json:"jobs"`
	Personalized bool  `json:"personalized"`
}

type RecommendationUsecase interface {
	Recommend(ctx context.Context, userID string) (*Recommendations, error)
}
