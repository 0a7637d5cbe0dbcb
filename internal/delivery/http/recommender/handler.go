// Package recommender serves the ranking endpoint consumed by the API's
// recommendation selector.
package recommender

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"ergasia-marketplace/internal/recommend"
	"ergasia-marketplace/pkg/logger"
)

type Handler struct {
	ranker *recommend.TFIDFRanker
}

func NewHandler(r *gin.Engine, ranker *recommend.TFIDFRanker) {
	handler := &Handler{ranker: ranker}
	r.POST("/getRecommendation", handler.GetRecommendation)
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

// GetRecommendation ranks the payload's jobs against the click history.
func (h *Handler) GetRecommendation(c *gin.Context) {
	if c.ContentType() != gin.MIMEJSON {
		c.JSON(http.StatusUnsupportedMediaType, gin.H{"error": "Request must be JSON"})
		return
	}

	var payload recommend.Payload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	top, err := h.ranker.Rank(payload)
	switch {
	case errors.Is(err, recommend.ErrNoClicks), errors.Is(err, recommend.ErrMissingColumns):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	case err != nil:
		logger.Log.Error("Ranking failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "ranking failed"})
		return
	}

	logger.Log.Debug("Ranked jobs",
		"candidates", len(payload.ListJobs),
		"clicks", len(payload.ListUserClickeds),
		"returned", len(top),
	)
	c.JSON(http.StatusOK, recommend.Response{Message: "Success", TopJobs: top})
}
