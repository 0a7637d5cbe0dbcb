package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func unsetEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	unsetEnv(t, "PORT", "RECOMMENDER_URL", "RECOMMENDER_TIMEOUT_SECONDS", "RECOMMENDATION_PAGE_SIZE",
		"JOBS_PER_PAGE", "CATEGORY_CACHE_TTL_SECONDS", "CATEGORY_REFRESH_SPEC", "SEARCH_MODE",
		"WIZARD_DRAFT_TTL_MINUTES", "FACE_SERVICE_URL", "FACE_IMAGE_MAX_DIMENSION")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "http://localhost:5001", cfg.RecommenderURL)
	assert.Equal(t, 5*time.Second, cfg.RecommenderTimeout)
	assert.Equal(t, 5, cfg.RecommendationSize)
	assert.Equal(t, 12, cfg.JobsPerPage)
	assert.Equal(t, 5*time.Minute, cfg.CategoryCacheTTL)
	assert.Equal(t, "@every 5m", cfg.CategoryRefreshSpec)
	assert.Equal(t, "name", cfg.SearchMode)
	assert.Equal(t, time.Hour, cfg.WizardDraftTTL)
	assert.Equal(t, "http://localhost:8000", cfg.FaceServiceURL)
	assert.Equal(t, 640, cfg.FaceImageMaxDim)
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("RECOMMENDER_URL", "http://recommender:5001/")
	t.Setenv("RECOMMENDER_TIMEOUT_SECONDS", "2")
	t.Setenv("RECOMMENDATION_PAGE_SIZE", "8")
	t.Setenv("WIZARD_DRAFT_TTL_MINUTES", "15")
	t.Setenv("SEARCH_MODE", "name_or_tags")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "http://recommender:5001", cfg.RecommenderURL)
	assert.Equal(t, 2*time.Second, cfg.RecommenderTimeout)
	assert.Equal(t, 8, cfg.RecommendationSize)
	assert.Equal(t, 15*time.Minute, cfg.WizardDraftTTL)
	assert.Equal(t, "name_or_tags", cfg.SearchMode)
}

func TestGetEnvHelpers(t *testing.T) {
	t.Setenv("TEST_INT", "42")
	t.Setenv("TEST_BAD_INT", "forty")
	t.Setenv("TEST_BOOL", "true")

	assert.Equal(t, 42, getEnvInt("TEST_INT", 1))
	assert.Equal(t, 1, getEnvInt("TEST_BAD_INT", 1))
	assert.Equal(t, 7, getEnvInt("TEST_MISSING_INT", 7))
	assert.True(t, getEnvBool("TEST_BOOL", false))
	assert.False(t, getEnvBool("TEST_MISSING_BOOL", false))
	assert.Equal(t, 3*time.Second, getEnvDuration("TEST_MISSING_DURATION", 3, time.Second))
}
