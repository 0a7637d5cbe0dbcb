package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"ergasia-marketplace/internal/domain"
	"ergasia-marketplace/internal/filter"
	"ergasia-marketplace/pkg/apperror"
	"ergasia-marketplace/pkg/sanitize"
)

type jobUsecase struct {
	jobRepo    domain.JobRepository
	categories domain.CategoryUsecase
	validate   *validator.Validate
	searchMode filter.SearchMode
	perPage    int
	now        func() time.Time
}

func NewJobUsecase(
	jobRepo domain.JobRepository,
	categories domain.CategoryUsecase,
	validate *validator.Validate,
	searchMode filter.SearchMode,
	perPage int,
) domain.JobUsecase {
	if perPage < 1 {
		perPage = filter.DefaultPerPage
	}
	return &jobUsecase{
		jobRepo:    jobRepo,
		categories: categories,
		validate:   validate,
		searchMode: searchMode,
		perPage:    perPage,
		now:        time.Now,
	}
}

// ListJobs filters, sorts and pages every job that is not finished.
func (u *jobUsecase) ListJobs(ctx context.Context, q domain.JobQuery) (*domain.JobPage, error) {
	jobs, err := u.ListOpenJobs(ctx)
	if err != nil {
		return nil, err
	}

	criteria := filter.Criteria{
		SearchText:         q.SearchText,
		SelectedCategories: q.Categories,
		SelectedRanges:     filter.ParseRanges(q.Ranges),
	}
	matched := filter.Jobs(jobs, criteria, filter.WithSearchMode(u.searchMode))
	sorted := filter.Sort(matched, filter.ParseSortKey(q.Sort))

	page := q.Page
	if page < 1 {
		page = 1
	}
	pageSize := q.PageSize
	if pageSize < 1 {
		pageSize = u.perPage
	}
	items, total := filter.Paginate(sorted, page, pageSize)

	return &domain.JobPage{
		Jobs:     items,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

func (u *jobUsecase) ListOpenJobs(ctx context.Context) ([]domain.Job, error) {
	jobs, err := u.jobRepo.FetchAll(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return filter.ExcludeFinished(jobs), nil
}

func (u *jobUsecase) GetJob(ctx context.Context, id string) (*domain.Job, error) {
	job, err := u.jobRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "Job not found")
	}
	return job, nil
}

func (u *jobUsecase) ListJobsByOwner(ctx context.Context, userID string) ([]domain.Job, error) {
	jobs, err := u.jobRepo.FetchByUserID(ctx, userID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return jobs, nil
}

func (u *jobUsecase) CreateJob(ctx context.Context, userID string, in *domain.JobInput) (*domain.Job, error) {
	if userID == "" {
		return nil, apperror.Unauthorized("User not authenticated")
	}
	tags, err := u.prepare(ctx, in)
	if err != nil {
		return nil, err
	}

	now := u.now()
	job := &domain.Job{
		ID:          uuid.NewString(),
		Name:        in.Name,
		Description: in.Description,
		Salary:      in.Salary,
		Tags:        tags,
		Slots:       in.Slots,
		Status:      domain.JobStatusOpen,
		UserID:      userID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := u.jobRepo.Create(ctx, job); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, apperror.Conflict("Job already exists")
		}
		return nil, apperror.Internal(err)
	}
	return job, nil
}

// UpdateJob replaces the editable fields of a job owned by userID.
func (u *jobUsecase) UpdateJob(ctx context.Context, userID, id string, in *domain.JobInput) (*domain.Job, error) {
	job, err := u.owned(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	tags, err := u.prepare(ctx, in)
	if err != nil {
		return nil, err
	}

	job.Name = in.Name
	job.Description = in.Description
	job.Salary = in.Salary
	job.Slots = in.Slots
	job.Tags = tags
	job.UpdatedAt = u.now()

	if err := u.jobRepo.Update(ctx, job); err != nil {
		return nil, notFound(err, "Job not found")
	}
	return job, nil
}

func (u *jobUsecase) DeleteJob(ctx context.Context, userID, id string) error {
	if _, err := u.owned(ctx, userID, id); err != nil {
		return err
	}
	if err := u.jobRepo.Delete(ctx, id); err != nil {
		return notFound(err, "Job not found")
	}
	return nil
}

func (u *jobUsecase) owned(ctx context.Context, userID, id string) (*domain.Job, error) {
	job, err := u.GetJob(ctx, id)
	if err != nil {
		return nil, err
	}
	if job.UserID != userID {
		return nil, apperror.Forbidden("You can only modify your own jobs")
	}
	return job, nil
}

// prepare strips markup from in, validates it and resolves its tags.
func (u *jobUsecase) prepare(ctx context.Context, in *domain.JobInput) ([]domain.JobCategory, error) {
	if in == nil {
		return nil, apperror.BadRequest("Job payload is required")
	}
	in.Name = sanitize.Text(in.Name)
	in.Description = sanitize.Lines(in.Description)
	for i, t := range in.Tags {
		in.Tags[i] = sanitize.Text(t)
	}

	if err := u.validate.Struct(in); err != nil {
		return nil, invalid(err)
	}

	return u.categories.ResolveOrCreate(ctx, in.Tags)
}
