package domain

import (
	"context"
	"time"
)

// UserClick counts how often a user opened a job. It is the personalisation
// signal sent to the recommendation service.
type UserClick struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	JobID     string    `json:"jobId"`
	Counter   int64     `json:"counter"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type ClickRepository interface {
	ListByUser(ctx context.Context, userID string) ([]UserClick, error)
	// Increment creates the (user, job) row with counter 1 or bumps the
	// existing counter, returning the stored row.
	Increment(ctx context.Context, userID, jobID string) (*UserClick, error)
}

type ClickUsecase interface {
	RecordClick(ctx context.Context, userID, jobID string) (*UserClick, error)
	ListClicks(ctx context.Context, userID string) ([]UserClick, error)
}
