package recommend_test

import (
	"context"
	"encoding/json"
	"errors"
	"math/rand/v2"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"ergasia-marketplace/internal/domain"
	"ergasia-marketplace/internal/recommend"
)

type MockClickSource struct {
	mock.Mock
}

func (m *MockClickSource) ListByUser(ctx context.Context, userID string) ([]domain.UserClick, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.UserClick), args.Error(1)
}

type MockRanker struct {
	mock.Mock
}

func (m *MockRanker) Recommend(ctx context.Context, p recommend.Payload) ([]domain.Job, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Job), args.Error(1)
}

func candidates(n int) []domain.Job {
	jobs := make([]domain.Job, 0, n)
	for i := 0; i < n; i++ {
		jobs = append(jobs, domain.Job{
			ID:   string(rune('a' + i)),
			Name: "Job " + string(rune('A'+i)),
			Tags: []domain.JobCategory{{ID: "c1", Name: "Engineering"}},
		})
	}
	return jobs
}

var categories = []domain.JobCategory{{ID: "c1", Name: "Engineering"}}

func seeded() recommend.Option {
	return recommend.WithRand(rand.New(rand.NewPCG(1, 2)))
}

func assertDistinctSubset(t *testing.T, got, from []domain.Job) {
	t.Helper()
	pool := map[string]bool{}
	for _, j := range from {
		pool[j.ID] = true
	}
	seen := map[string]bool{}
	for _, j := range got {
		assert.True(t, pool[j.ID], "job %s is not a candidate", j.ID)
		assert.False(t, seen[j.ID], "job %s returned twice", j.ID)
		seen[j.ID] = true
	}
}

func TestSelector_Select(t *testing.T) {
	ctx := context.Background()

	t.Run("Empty click history returns at most five distinct candidates", func(t *testing.T) {
		clicks := new(MockClickSource)
		ranker := new(MockRanker)
		clicks.On("ListByUser", ctx, "u1").Return([]domain.UserClick{}, nil)

		jobs := candidates(12)
		s := recommend.NewSelector(clicks, ranker, seeded())

		for i := 0; i < 20; i++ {
			got, err := s.Select(ctx, "u1", jobs, categories)
			require.NoError(t, err)
			assert.Len(t, got, 5)
			assertDistinctSubset(t, got, jobs)
		}
		ranker.AssertNotCalled(t, "Recommend", mock.Anything, mock.Anything)
	})

	t.Run("Fewer candidates than the page size returns all of them", func(t *testing.T) {
		clicks := new(MockClickSource)
		clicks.On("ListByUser", ctx, "u1").Return([]domain.UserClick{}, nil)

		jobs := candidates(3)
		got, err := recommend.NewSelector(clicks, nil, seeded()).Select(ctx, "u1", jobs, categories)
		require.NoError(t, err)
		assert.Len(t, got, 3)
		assertDistinctSubset(t, got, jobs)
	})

	t.Run("No candidates yields an empty list", func(t *testing.T) {
		clicks := new(MockClickSource)
		clicks.On("ListByUser", ctx, "u1").Return([]domain.UserClick{}, nil)

		got, err := recommend.NewSelector(clicks, nil).Select(ctx, "u1", nil, categories)
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("Click history error propagates", func(t *testing.T) {
		clicks := new(MockClickSource)
		clicks.On("ListByUser", ctx, "u1").Return(nil, errors.New("db down"))

		_, err := recommend.NewSelector(clicks, new(MockRanker)).Select(ctx, "u1", candidates(3), categories)
		assert.EqualError(t, err, "db down")
	})

	t.Run("Ranked jobs are returned verbatim", func(t *testing.T) {
		clicks := new(MockClickSource)
		ranker := new(MockRanker)
		history := []domain.UserClick{{ID: "k1", UserID: "u1", JobID: "a", Counter: 3}}
		ranked := []domain.Job{{ID: "zz", Name: "Not even a candidate"}}
		clicks.On("ListByUser", ctx, "u1").Return(history, nil)
		ranker.On("Recommend", ctx, mock.MatchedBy(func(p recommend.Payload) bool {
			return len(p.ListUserClickeds) == 1 && p.ListUserClickeds[0].Counter == "3"
		})).Return(ranked, nil)

		got, err := recommend.NewSelector(clicks, ranker).Select(ctx, "u1", candidates(6), categories)
		require.NoError(t, err)
		assert.Equal(t, ranked, got)
		ranker.AssertExpectations(t)
	})

	t.Run("Ranking failure falls back to a sample", func(t *testing.T) {
		clicks := new(MockClickSource)
		ranker := new(MockRanker)
		clicks.On("ListByUser", ctx, "u1").Return([]domain.UserClick{{UserID: "u1", JobID: "a", Counter: 1}}, nil)
		ranker.On("Recommend", ctx, mock.Anything).Return(nil, errors.New("status=500"))

		jobs := candidates(8)
		got, err := recommend.NewSelector(clicks, ranker, seeded()).Select(ctx, "u1", jobs, categories)
		require.NoError(t, err)
		assert.Len(t, got, 5)
		assertDistinctSubset(t, got, jobs)
	})

	t.Run("Missing categories skip the ranking call", func(t *testing.T) {
		clicks := new(MockClickSource)
		ranker := new(MockRanker)
		clicks.On("ListByUser", ctx, "u1").Return([]domain.UserClick{{UserID: "u1", JobID: "a", Counter: 1}}, nil)

		got, err := recommend.NewSelector(clicks, ranker, seeded()).Select(ctx, "u1", candidates(4), nil)
		require.NoError(t, err)
		assert.Len(t, got, 4)
		ranker.AssertNotCalled(t, "Recommend", mock.Anything, mock.Anything)
	})

	t.Run("Pick reports whether the ranker was used", func(t *testing.T) {
		clicks := new(MockClickSource)
		ranker := new(MockRanker)
		clicks.On("ListByUser", ctx, "u1").Return([]domain.UserClick{{UserID: "u1", JobID: "a", Counter: 1}}, nil)
		clicks.On("ListByUser", ctx, "u2").Return([]domain.UserClick{}, nil)
		ranker.On("Recommend", ctx, mock.Anything).Return([]domain.Job{{ID: "b"}}, nil)

		s := recommend.NewSelector(clicks, ranker, seeded())
		_, ranked, err := s.Pick(ctx, "u1", candidates(3), categories)
		require.NoError(t, err)
		assert.True(t, ranked)

		_, ranked, err = s.Pick(ctx, "u2", candidates(3), categories)
		require.NoError(t, err)
		assert.False(t, ranked)
	})

	t.Run("Configured page size bounds the sample", func(t *testing.T) {
		clicks := new(MockClickSource)
		clicks.On("ListByUser", ctx, "u1").Return([]domain.UserClick{}, nil)

		got, err := recommend.NewSelector(clicks, nil, recommend.WithPageSize(2)).Select(ctx, "u1", candidates(9), categories)
		require.NoError(t, err)
		assert.Len(t, got, 2)
	})
}

func TestSelector_HTTPService(t *testing.T) {
	ctx := context.Background()
	history := []domain.UserClick{{ID: "k1", UserID: "u1", JobID: "a", Counter: 2}}

	t.Run("Successful response is decoded into jobs", func(t *testing.T) {
		var received recommend.Payload
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/getRecommendation", r.URL.Path)
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&received))

			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(recommend.Response{
				Message: "Success",
				TopJobs: []recommend.WireJob{{ID: "b", Name: "Job B", Slots: "9007199254740993"}},
			})
		}))
		defer srv.Close()

		clicks := new(MockClickSource)
		clicks.On("ListByUser", ctx, "u1").Return(history, nil)
		s := recommend.NewSelector(clicks, recommend.NewHTTPClient(srv.URL, time.Second))

		got, err := s.Select(ctx, "u1", candidates(3), categories)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "b", got[0].ID)
		assert.Equal(t, int64(9007199254740993), got[0].Slots)

		assert.Len(t, received.ListJobs, 3)
		assert.Len(t, received.JobTags, 1)
		assert.Equal(t, "2", received.ListUserClickeds[0].Counter)
	})

	t.Run("Non-2xx status falls back", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		}))
		defer srv.Close()

		clicks := new(MockClickSource)
		clicks.On("ListByUser", ctx, "u1").Return(history, nil)
		jobs := candidates(7)

		got, err := recommend.NewSelector(clicks, recommend.NewHTTPClient(srv.URL, time.Second)).Select(ctx, "u1", jobs, categories)
		require.NoError(t, err)
		assert.Len(t, got, 5)
		assertDistinctSubset(t, got, jobs)
	})

	t.Run("Unreachable service falls back without error", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		url := srv.URL
		srv.Close()

		clicks := new(MockClickSource)
		clicks.On("ListByUser", ctx, "u1").Return(history, nil)
		jobs := candidates(7)

		got, err := recommend.NewSelector(clicks, recommend.NewHTTPClient(url, time.Second)).Select(ctx, "u1", jobs, categories)
		require.NoError(t, err)
		assert.LessOrEqual(t, len(got), 5)
		assertDistinctSubset(t, got, jobs)
	})

	t.Run("Malformed body falls back", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("not json"))
		}))
		defer srv.Close()

		clicks := new(MockClickSource)
		clicks.On("ListByUser", ctx, "u1").Return(history, nil)

		got, err := recommend.NewSelector(clicks, recommend.NewHTTPClient(srv.URL, time.Second)).Select(ctx, "u1", candidates(2), categories)
		require.NoError(t, err)
		assert.Len(t, got, 2)
	})
}

func TestSample_DoesNotReorderInput(t *testing.T) {
	jobs := candidates(10)
	before := candidates(10)

	recommend.NewSelector(nil, nil, seeded()).Sample(jobs)
	assert.Equal(t, before, jobs)
}
