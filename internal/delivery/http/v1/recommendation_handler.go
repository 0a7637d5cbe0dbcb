package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ergasia-marketplace/internal/delivery/http/response"
	"ergasia-marketplace/internal/domain"
)

type RecommendationHandler struct {
	recommendationUC domain.RecommendationUsecase
}

func NewRecommendationHandler(protected *gin.RouterGroup, recommendationUC domain.RecommendationUsecase) {
	handler := &RecommendationHandler{recommendationUC: recommendationUC}
	protected.GET("/recommendations", handler.Get)
}

// Get godoc
// @Summary      Recommended jobs
// @Description  Personalised from the user's job views, or a random sample
// @Tags         recommendations
// @Produce      json
// @Success      200  {object}  response.Response{data=domain.Recommendations}
// @Router       /recommendations [get]
// @Security     BearerAuth
func (h *RecommendationHandler) Get(c *gin.Context) {
	recs, err := h.recommendationUC.Recommend(c.Request.Context(), currentUserID(c))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Recommendations retrieved", recs)
}
