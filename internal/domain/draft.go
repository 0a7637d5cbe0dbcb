package domain

import (
	"context"
	"time"

	"ergasia-marketplace/internal/wizard"
)

// JobDraft is a job posting wizard in progress, owned by one user.
type JobDraft struct {
	ID        string       `json:"id"`
	UserID    string       `json:"userId"`
	State     wizard.State `json:"state"`
	CreatedAt time.Time    `json:"createdAt"`
	UpdatedAt time.Time    `json:"updatedAt"`
}

// DraftResult is the outcome of applying a wizard action. Job is set once the
// draft has been submitted and the job created.
type DraftResult struct {
	Draft     *JobDraft `json:"draft"`
	Job       *Job      `json:"job,omitempty"`
	Completed bool      `json:"completed"`
}

type DraftStore interface {
	// Get returns ErrNotFound for unknown or expired drafts.
	Get(ctx context.Context, userID, id string) (*JobDraft, error)
	Save(ctx context.Context, draft *JobDraft) error
	Delete(ctx context.Context, userID, id string) error
}

type WizardUsecase interface {
	Start(ctx context.Context, userID string) (*JobDraft, error)
	Get(ctx context.Context, userID, id string) (*JobDraft, error)
	Apply(ctx context.Context, userID, id string, action wizard.Action) (*DraftResult, error)
	Discard(ctx context.Context, userID, id string) error
}
