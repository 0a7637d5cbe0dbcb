package recommender_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ergasia-marketplace/internal/delivery/http/recommender"
	"ergasia-marketplace/internal/recommend"
)

func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	recommender.NewHandler(r, recommend.NewTFIDFRanker(5))
	return r
}

func post(r *gin.Engine, contentType string, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/getRecommendation", bytes.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestGetRecommendation(t *testing.T) {
	tag := func(id, name string) recommend.WireCategory {
		return recommend.WireCategory{ID: id, Name: name}
	}
	payload := recommend.Payload{
		JobTags: []recommend.WireCategory{tag("c1", "Golang Backend"), tag("c2", "Graphic Design")},
		ListJobs: []recommend.WireJob{
			{ID: "j1", Name: "API", Slots: "1", Tags: []recommend.WireCategory{tag("c1", "Golang Backend")}},
			{ID: "j2", Name: "Worker", Slots: "1", Tags: []recommend.WireCategory{tag("c1", "Golang Backend")}},
			{ID: "j3", Name: "Logo", Slots: "1", Tags: []recommend.WireCategory{tag("c2", "Graphic Design")}},
		},
		ListUserClickeds: []recommend.WireClick{{ID: "k1", UserID: "u1", JobID: "j1", Counter: "3"}},
	}

	t.Run("Ranked jobs exclude the clicked ones", func(t *testing.T) {
		body, err := json.Marshal(payload)
		require.NoError(t, err)

		w := post(newRouter(), "application/json", body)
		require.Equal(t, http.StatusOK, w.Code)

		var out recommend.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
		assert.Equal(t, "Success", out.Message)
		require.NotEmpty(t, out.TopJobs)
		assert.Equal(t, "j2", out.TopJobs[0].ID)
		for _, j := range out.TopJobs {
			assert.NotEqual(t, "j1", j.ID)
		}
	})

	t.Run("Non JSON bodies are unsupported", func(t *testing.T) {
		w := post(newRouter(), "text/plain", []byte("hello"))
		assert.Equal(t, http.StatusUnsupportedMediaType, w.Code)
	})

	t.Run("Click rows without a job id are rejected", func(t *testing.T) {
		broken := payload
		broken.ListUserClickeds = []recommend.WireClick{{ID: "k1", UserID: "u1", Counter: "3"}}
		body, err := json.Marshal(broken)
		require.NoError(t, err)

		w := post(newRouter(), "application/json", body)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("An empty click history is rejected", func(t *testing.T) {
		empty := payload
		empty.ListUserClickeds = nil
		body, err := json.Marshal(empty)
		require.NoError(t, err)

		w := post(newRouter(), "application/json", body)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
