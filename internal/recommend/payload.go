package recommend

import (
	"fmt"
	"strconv"
	"time"

	"ergasia-marketplace/internal/domain"
)

// Payload is the request body of the ranking service. Every 64-bit integer
// travels as a decimal string so it survives JSON number handling on the
// other side.
type Payload struct {
	JobTags          []WireCategory `json:"jobTags"`
	ListJobs         []WireJob      `json:"listJobs"`
	ListUserClickeds []WireClick    `json:"listUserClickeds"`
}

type WireCategory struct {
	ID   string `json:"id"`
	Name string `json:"jobCategoryName"`
}

type WireJob struct {
	ID          string         `json:"id"`
	Name        string         `json:"jobName"`
	Description []string       `json:"jobDescription"`
	Salary      float64        `json:"jobSalary"`
	Rating      float64        `json:"jobRating"`
	Tags        []WireCategory `json:"jobTags"`
	Slots       string         `json:"jobSlots"`
	Status      string         `json:"jobStatus"`
	UserID      string         `json:"userId"`
	CreatedAt   string         `json:"createdAt"`
	UpdatedAt   string         `json:"updatedAt"`
}

type WireClick struct {
	ID        string `json:"id"`
	UserID    string `json:"userId"`
	JobID     string `json:"jobId"`
	Counter   string `json:"counter"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// NewPayload encodes the candidate jobs, the category list and the user's
// click history.
func NewPayload(jobs []domain.Job, categories []domain.JobCategory, clicks []domain.UserClick) Payload {
	p := Payload{
		JobTags:          make([]WireCategory, 0, len(categories)),
		ListJobs:         make([]WireJob, 0, len(jobs)),
		ListUserClickeds: make([]WireClick, 0, len(clicks)),
	}
	for _, c := range categories {
		p.JobTags = append(p.JobTags, encodeCategory(c))
	}
	for _, j := range jobs {
		p.ListJobs = append(p.ListJobs, EncodeJob(j))
	}
	for _, c := range clicks {
		p.ListUserClickeds = append(p.ListUserClickeds, encodeClick(c))
	}
	return p
}

// Complete reports whether all three lists carry data. The ranking service
// cannot produce anything useful otherwise.
func (p Payload) Complete() bool {
	return len(p.JobTags) > 0 && len(p.ListJobs) > 0 && len(p.ListUserClickeds) > 0
}

func EncodeJob(j domain.Job) WireJob {
	tags := make([]WireCategory, 0, len(j.Tags))
	for _, t := range j.Tags {
		tags = append(tags, encodeCategory(t))
	}
	return WireJob{
		ID:          j.ID,
		Name:        j.Name,
		Description: append([]string{}, j.Description...),
		Salary:      j.Salary,
		Rating:      j.Rating,
		Tags:        tags,
		Slots:       strconv.FormatInt(j.Slots, 10),
		Status:      string(j.Status),
		UserID:      j.UserID,
		CreatedAt:   encodeTime(j.CreatedAt),
		UpdatedAt:   encodeTime(j.UpdatedAt),
	}
}

// DecodeJob reverses EncodeJob. Empty integer fields decode as zero.
func DecodeJob(w WireJob) (domain.Job, error) {
	slots, err := decodeInt(w.Slots)
	if err != nil {
		return domain.Job{}, fmt.Errorf("job %s: jobSlots: %w", w.ID, err)
	}
	created, err := decodeTime(w.CreatedAt)
	if err != nil {
		return domain.Job{}, fmt.Errorf("job %s: createdAt: %w", w.ID, err)
	}
	updated, err := decodeTime(w.UpdatedAt)
	if err != nil {
		return domain.Job{}, fmt.Errorf("job %s: updatedAt: %w", w.ID, err)
	}
	var tags []domain.JobCategory
	for _, t := range w.Tags {
		tags = append(tags, domain.JobCategory{ID: t.ID, Name: t.Name})
	}
	return domain.Job{
		ID:          w.ID,
		Name:        w.Name,
		Description: w.Description,
		Salary:      w.Salary,
		Rating:      w.Rating,
		Tags:        tags,
		Slots:       slots,
		Status:      domain.JobStatus(w.Status),
		UserID:      w.UserID,
		CreatedAt:   created,
		UpdatedAt:   updated,
	}, nil
}

func encodeCategory(c domain.JobCategory) WireCategory {
	return WireCategory{ID: c.ID, Name: c.Name}
}

func encodeClick(c domain.UserClick) WireClick {
	return WireClick{
		ID:        c.ID,
		UserID:    c.UserID,
		JobID:     c.JobID,
		Counter:   strconv.FormatInt(c.Counter, 10),
		CreatedAt: encodeTime(c.CreatedAt),
		UpdatedAt: encodeTime(c.UpdatedAt),
	}
}

// Timestamps are nanoseconds since the Unix epoch.
func encodeTime(t time.Time) string {
	if t.IsZero() {
		return "0"
	}
	return strconv.FormatInt(t.UnixNano(), 10)
}

func decodeTime(s string) (time.Time, error) {
	n, err := decodeInt(s)
	if err != nil || n == 0 {
		return time.Time{}, err
	}
	return time.Unix(0, n).UTC(), nil
}

func decodeInt(s string) (int64, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.ParseInt(s, 10, 64)
}
