package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ergasia-marketplace/internal/delivery/http/response"
	"ergasia-marketplace/internal/domain"
)

type ClickHandler struct {
	clickUC domain.ClickUsecase
}

func NewClickHandler(protected *gin.RouterGroup, clickUC domain.ClickUsecase) {
	handler := &ClickHandler{clickUC: clickUC}
	protected.POST("/jobs/:id/clicks", handler.Record)
	protected.GET("/me/clicks", handler.List)
}

// Record godoc
// @Summary      Record a job view
// @Description  Creates the click counter for the job or increments it
// @Tags         clicks
// @Produce      json
// @Param        id   path      string  true  "Job ID"
// @Success      200  {object}  response.Response{data=domain.UserClick}
// @Failure      404  {object}  response.Response
// @Router       /jobs/{id}/clicks [post]
// @Security     BearerAuth
func (h *ClickHandler) Record(c *gin.Context) {
	click, err := h.clickUC.RecordClick(c.Request.Context(), currentUserID(c), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Click recorded", click)
}

// List godoc
// @Summary      List my job views
// @Tags         clicks
// @Produce      json
// @Success      200  {object}  response.Response{data=[]domain.UserClick}
// @Router       /me/clicks [get]
// @Security     BearerAuth
func (h *ClickHandler) List(c *gin.Context) {
	clicks, err := h.clickUC.ListClicks(c.Request.Context(), currentUserID(c))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Clicks retrieved", clicks)
}
