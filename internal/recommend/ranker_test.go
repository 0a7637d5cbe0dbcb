package recommend

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func wireJob(id string, tags ...string) WireJob {
	w := WireJob{ID: id, Name: id, Slots: "1"}
	for _, t := range tags {
		w.Tags = append(w.Tags, WireCategory{ID: t, Name: t})
	}
	return w
}

func rankerPayload() Payload {
	return Payload{
		JobTags: []WireCategory{{ID: "1", Name: "Go"}},
		ListJobs: []WireJob{
			wireJob("go-api", "Go", "Backend"),
			wireJob("go-cli", "Go", "Tooling"),
			wireJob("logo", "Design", "Branding"),
			wireJob("backend-java", "Java", "Backend"),
			wireJob("untagged"),
		},
		ListUserClickeds: []WireClick{{UserID: "u1", JobID: "go-api", Counter: "3"}},
	}
}

func ids(jobs []WireJob) []string {
	out := make([]string, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, j.ID)
	}
	return out
}

func TestTFIDFRanker_Rank(t *testing.T) {
	t.Run("Jobs sharing tags with clicked ones rank first and clicked jobs are excluded", func(t *testing.T) {
		got, err := NewTFIDFRanker(5).Rank(rankerPayload())
		require.NoError(t, err)

		require.NotEmpty(t, got)
		assert.NotContains(t, ids(got), "go-api")
		assert.Subset(t, ids(got)[:2], []string{"go-cli", "backend-java"})
	})

	t.Run("TopN bounds the result", func(t *testing.T) {
		got, err := NewTFIDFRanker(1).Rank(rankerPayload())
		require.NoError(t, err)
		assert.Len(t, got, 1)
	})

	t.Run("Only the first user's clicks count", func(t *testing.T) {
		p := rankerPayload()
		p.ListUserClickeds = append(p.ListUserClickeds, WireClick{UserID: "u2", JobID: "go-cli", Counter: "1"})

		got, err := NewTFIDFRanker(5).Rank(p)
		require.NoError(t, err)
		assert.Contains(t, ids(got), "go-cli")
	})

	t.Run("A non numeric counter still marks the job clicked", func(t *testing.T) {
		p := rankerPayload()
		p.ListUserClickeds[0].Counter = "n/a"

		got, err := NewTFIDFRanker(5).Rank(p)
		require.NoError(t, err)
		require.NotEmpty(t, got)
		assert.NotContains(t, ids(got), "go-api")
		assert.Subset(t, ids(got)[:2], []string{"go-cli", "backend-java"})
	})

	t.Run("Click rows missing columns are rejected", func(t *testing.T) {
		p := rankerPayload()
		p.ListUserClickeds[0].Counter = ""

		_, err := NewTFIDFRanker(5).Rank(p)
		assert.ErrorIs(t, err, ErrMissingColumns)
	})

	t.Run("Empty click list is rejected", func(t *testing.T) {
		p := rankerPayload()
		p.ListUserClickeds = nil

		_, err := NewTFIDFRanker(5).Rank(p)
		assert.ErrorIs(t, err, ErrNoClicks)
	})

	t.Run("Clicks on unknown jobs give no recommendations", func(t *testing.T) {
		p := rankerPayload()
		p.ListUserClickeds[0].JobID = "gone"

		got, err := NewTFIDFRanker(5).Rank(p)
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestTFIDFRanker_Recommend(t *testing.T) {
	got, err := NewTFIDFRanker(2).Recommend(context.Background(), rankerPayload())
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestCosine_ZeroVector(t *testing.T) {
	v := vectorize([]WireJob{wireJob("a", "Go"), wireJob("b")})
	assert.InDelta(t, 1.0, cosine(v[0], v[0]), 1e-9)
	assert.Equal(t, 0.0, cosine(v[0], v[1]))
}
