package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"ergasia-marketplace/internal/domain"
	"ergasia-marketplace/internal/wizard"
	"ergasia-marketplace/pkg/apperror"
	"ergasia-marketplace/pkg/logger"
)

type wizardUsecase struct {
	store   domain.DraftStore
	machine *wizard.Machine
	jobs    domain.JobUsecase
	now     func() time.Time
}

func NewWizardUsecase(store domain.DraftStore, machine *wizard.Machine, jobs domain.JobUsecase) domain.WizardUsecase {
	return &wizardUsecase{
		store:   store,
		machine: machine,
		jobs:    jobs,
		now:     time.Now,
	}
}

func (u *wizardUsecase) Start(ctx context.Context, userID string) (*domain.JobDraft, error) {
	if userID == "" {
		return nil, apperror.Unauthorized("User not authenticated")
	}
	now := u.now()
	draft := &domain.JobDraft{
		ID:        uuid.NewString(),
		UserID:    userID,
		State:     wizard.NewState(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := u.store.Save(ctx, draft); err != nil {
		return nil, apperror.Internal(err)
	}
	return draft, nil
}

func (u *wizardUsecase) Get(ctx context.Context, userID, id string) (*domain.JobDraft, error) {
	draft, err := u.store.Get(ctx, userID, id)
	if err != nil {
		return nil, notFound(err, "Draft not found")
	}
	return draft, nil
}

// Apply runs one wizard action. A submit that passes validation creates the
// job and removes the draft; a failed creation keeps the draft on the last
// step with a submit error.
func (u *wizardUsecase) Apply(ctx context.Context, userID, id string, action wizard.Action) (*domain.DraftResult, error) {
	draft, err := u.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	next, effect, err := u.machine.Transition(draft.State, action)
	if err != nil {
		if errors.Is(err, wizard.ErrUnknownAction) {
			return nil, apperror.BadRequest(err.Error())
		}
		return nil, apperror.Internal(err)
	}
	draft.State = next
	draft.UpdatedAt = u.now()

	if effect != wizard.EffectCreateJob {
		if err := u.store.Save(ctx, draft); err != nil {
			return nil, apperror.Internal(err)
		}
		return &domain.DraftResult{Draft: draft}, nil
	}

	job, err := u.jobs.CreateJob(ctx, userID, draftToInput(next.Draft))
	if err != nil {
		draft.State = next.WithSubmitError(submitMessage(err))
		if saveErr := u.store.Save(ctx, draft); saveErr != nil {
			logger.Log.Error("Failed to keep draft after submit error",
				"draft_id", draft.ID,
				"error", saveErr,
			)
		}
		return &domain.DraftResult{Draft: draft}, err
	}

	if err := u.store.Delete(ctx, userID, id); err != nil {
		logger.Log.Warn("Failed to delete submitted draft", "draft_id", id, "error", err)
	}
	logger.Log.Info("Job created from draft", "draft_id", id, "job_id", job.ID, "user_id", userID)
	return &domain.DraftResult{Draft: draft, Job: job, Completed: true}, nil
}

func (u *wizardUsecase) Discard(ctx context.Context, userID, id string) error {
	if _, err := u.Get(ctx, userID, id); err != nil {
		return err
	}
	if err := u.store.Delete(ctx, userID, id); err != nil {
		return apperror.Internal(err)
	}
	return nil
}

func draftToInput(d wizard.Draft) *domain.JobInput {
	in := &domain.JobInput{
		Name:        d.JobName,
		Description: d.RequirementLines(),
		Tags:        append([]string{}, d.Categories...),
	}
	if d.Slots != nil {
		in.Slots = *d.Slots
	}
	if d.Salary != nil {
		in.Salary = *d.Salary
	}
	return in
}

func submitMessage(err error) string {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) && appErr.Code < 500 {
		return appErr.Message
	}
	return "Failed to create job, please try again"
}
