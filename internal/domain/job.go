package domain

import (
	"context"
	"errors"
	"time"
)

// Common domain errors
var (
	ErrNotFound = errors.New("resource not found")
	ErrConflict = errors.New("resource already exists")
)

// JobStatus mirrors the lifecycle values stored by the job service.
type JobStatus string

const (
	JobStatusOpen     JobStatus = "Open"
	JobStatusOngoing  JobStatus = "Ongoing"
	JobStatusFinished JobStatus = "Finished"
)

type JobCategory struct {
	ID   string `json:"id"`
	Name string `json:"jobCategoryName"`
}

type Job struct {
	ID          string        `json:"id"`
	Name        string        `json:"jobName"`
	Description []string      `json:"jobDescription"`
	Salary      float64       `json:"jobSalary"`
	Rating      float64       `json:"jobRating"`
	Tags        []JobCategory `json:"jobTags"`
	Slots       int64         `json:"jobSlots"`
	Status      JobStatus     `json:"jobStatus"`
	UserID      string        `json:"userId"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}

// TagNames returns the category names attached to the job. A job without
// tags yields an empty slice.
func (j Job) TagNames() []string {
	names := make([]string, 0, len(j.Tags))
	for _, t := range j.Tags {
		names = append(names, t.Name)
	}
	return names
}

// JobInput is the validated shape accepted for creating or updating a job.
// Tags are category names; they are resolved to categories by the usecase.
type JobInput struct {
	Name        string   `json:"jobName" validate:"required,notblank"`
	Description []string `json:"jobDescription" validate:"max=50,dive,max=2000"`
	Tags        []string `json:"jobTags" validate:"required,min=1,dive,notblank,max=60"`
	Salary      float64  `json:"jobSalary" validate:"gte=1"`
	Slots       int64    `json:"jobSlots" validate:"gte=1"`
}

// JobQuery carries the discovery filters of the job listing page.
type JobQuery struct {
	SearchText string
	Categories []string
	Ranges     []string
	Sort       string
	Page       int
	PageSize   int
}

// JobPage is one page of filtered jobs plus the total filtered count.
type JobPage struct {
	Jobs     []Job `json:"jobs"`
	Total    int   `json:"total"`
	Page     int   `json:"page"`
	PageSize int   `json:"page_size"`
}

type JobRepository interface {
	Create(ctx context.Context, job *Job) error
	GetByID(ctx context.Context, id string) (*Job, error)
	FetchAll(ctx context.Context) ([]Job, error)
	FetchByUserID(ctx context.Context, userID string) ([]Job, error)
	Update(ctx context.Context, job *Job) error
	Delete(ctx context.Context, id string) error
}

type JobUsecase interface {
	ListJobs(ctx context.Context, q JobQuery) (*JobPage, error)
	ListOpenJobs(ctx context.Context) ([]Job, error)
	GetJob(ctx context.Context, id string) (*Job, error)
	ListJobsByOwner(ctx context.Context, userID string) ([]Job, error)
	CreateJob(ctx context.Context, userID string, in *JobInput) (*Job, error)
	UpdateJob(ctx context.Context, userID, id string, in *JobInput) (*Job, error)
	DeleteJob(ctx context.Context, userID, id string) error
}
