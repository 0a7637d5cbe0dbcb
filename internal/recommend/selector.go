// Package recommend picks the jobs shown in the recommendation carousel.
//
// The personalised ranking service is tried once; every failure, and every
// case where there is not enough data to rank, degrades to a random sample
// of the candidate jobs.
package recommend

import (
	"context"
	"math/rand/v2"
	"sync"
	"time"

	"ergasia-marketplace/internal/domain"
	"ergasia-marketplace/pkg/logger"
)

const DefaultPageSize = 5

// ClickSource loads a user's click history.
type ClickSource interface {
	ListByUser(ctx context.Context, userID string) ([]domain.UserClick, error)
}

type Selector struct {
	clicks   ClickSource
	ranker   Ranker
	pageSize int

	mu  sync.Mutex
	rnd *rand.Rand
}

type Option func(*Selector)

func WithPageSize(n int) Option {
	return func(s *Selector) {
		if n > 0 {
			s.pageSize = n
		}
	}
}

// WithRand replaces the random source used for the fallback sample.
func WithRand(r *rand.Rand) Option {
	return func(s *Selector) {
		if r != nil {
			s.rnd = r
		}
	}
}

func NewSelector(clicks ClickSource, ranker Ranker, opts ...Option) *Selector {
	now := uint64(time.Now().UnixNano())
	s := &Selector{
		clicks:   clicks,
		ranker:   ranker,
		pageSize: DefaultPageSize,
		rnd:      rand.New(rand.NewPCG(now, now>>1|1)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Selector) PageSize() int {
	return s.pageSize
}

// Select returns up to PageSize recommended jobs for the user. Only a failure
// to load the click history is returned as an error.
func (s *Selector) Select(ctx context.Context, userID string, jobs []domain.Job, categories []domain.JobCategory) ([]domain.Job, error) {
	out, _, err := s.Pick(ctx, userID, jobs, categories)
	return out, err
}

// Pick is Select that also reports whether the ranking service produced the
// result. ranked is false whenever the random sample was used.
func (s *Selector) Pick(ctx context.Context, userID string, jobs []domain.Job, categories []domain.JobCategory) (out []domain.Job, ranked bool, err error) {
	clicks, err := s.clicks.ListByUser(ctx, userID)
	if err != nil {
		return nil, false, err
	}
	if len(clicks) == 0 {
		return s.Sample(jobs), false, nil
	}

	payload := NewPayload(jobs, categories, clicks)
	if !payload.Complete() || s.ranker == nil {
		return s.Sample(jobs), false, nil
	}

	top, err := s.ranker.Recommend(ctx, payload)
	if err != nil {
		logger.Log.Warn("Recommendation service failed, using random sample",
			"user_id", userID,
			"error", err,
		)
		return s.Sample(jobs), false, nil
	}
	return top, true, nil
}

// Sample returns up to PageSize distinct jobs in random order. The input is
// not reordered.
func (s *Selector) Sample(jobs []domain.Job) []domain.Job {
	shuffled := make([]domain.Job, len(jobs))
	copy(shuffled, jobs)

	s.mu.Lock()
	s.rnd.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	s.mu.Unlock()

	n := s.pageSize
	if n > len(shuffled) {
		n = len(shuffled)
	}
	return shuffled[:n:n]
}
