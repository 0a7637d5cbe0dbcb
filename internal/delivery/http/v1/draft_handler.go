package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ergasia-marketplace/internal/delivery/http/response"
	"ergasia-marketplace/internal/domain"
	"ergasia-marketplace/internal/wizard"
	"ergasia-marketplace/pkg/apperror"
)

type DraftHandler struct {
	wizardUC domain.WizardUsecase
}

func NewDraftHandler(protected *gin.RouterGroup, wizardUC domain.WizardUsecase) {
	handler := &DraftHandler{wizardUC: wizardUC}

	drafts := protected.Group("/job-drafts")
	{
		drafts.POST("", handler.Start)
		drafts.GET("/:id", handler.Get)
		drafts.POST("/:id/actions", handler.Apply)
		drafts.DELETE("/:id", handler.Discard)
	}
}

// Start godoc
// @Summary      Start a job posting draft
// @Tags         job-drafts
// @Produce      json
// @Success      201  {object}  response.Response{data=domain.JobDraft}
// @Router       /job-drafts [post]
// @Security     BearerAuth
func (h *DraftHandler) Start(c *gin.Context) {
	draft, err := h.wizardUC.Start(c.Request.Context(), currentUserID(c))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Draft started", draft)
}

// Get godoc
// @Summary      Get a job posting draft
// @Tags         job-drafts
// @Produce      json
// @Param        id   path      string  true  "Draft ID"
// @Success      200  {object}  response.Response{data=domain.JobDraft}
// @Failure      404  {object}  response.Response
// @Router       /job-drafts/{id} [get]
// @Security     BearerAuth
func (h *DraftHandler) Get(c *gin.Context) {
	draft, err := h.wizardUC.Get(c.Request.Context(), currentUserID(c), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Draft retrieved", draft)
}

// Apply godoc
// @Summary      Apply a wizard action
// @Description  Navigates, edits or submits the draft. A blocked step is reported in draft.state.errors with status 200.
// @Tags         job-drafts
// @Accept       json
// @Produce      json
// @Param        id      path      string         true  "Draft ID"
// @Param        action  body      wizard.Action  true  "Action"
// @Success      200     {object}  response.Response{data=domain.DraftResult}
// @Success      201     {object}  response.Response{data=domain.DraftResult}
// @Failure      400     {object}  response.Response
// @Failure      404     {object}  response.Response
// @Router       /job-drafts/{id}/actions [post]
// @Security     BearerAuth
func (h *DraftHandler) Apply(c *gin.Context) {
	var action wizard.Action
	if err := c.ShouldBindJSON(&action); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	result, err := h.wizardUC.Apply(c.Request.Context(), currentUserID(c), c.Param("id"), action)
	if err != nil {
		c.Error(err)
		return
	}
	if result.Completed {
		response.Success(c, http.StatusCreated, "Job created", result)
		return
	}
	response.Success(c, http.StatusOK, "Draft updated", result)
}

// Discard godoc
// @Summary      Discard a job posting draft
// @Tags         job-drafts
// @Produce      json
// @Param        id   path      string  true  "Draft ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /job-drafts/{id} [delete]
// @Security     BearerAuth
func (h *DraftHandler) Discard(c *gin.Context) {
	if err := h.wizardUC.Discard(c.Request.Context(), currentUserID(c), c.Param("id")); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Draft discarded", nil)
}
