package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ergasia-marketplace/internal/delivery/http/response"
	"ergasia-marketplace/internal/domain"
)

type CategoryHandler struct {
	categoryUC domain.CategoryUsecase
}

func NewCategoryHandler(public *gin.RouterGroup, protected *gin.RouterGroup, categoryUC domain.CategoryUsecase) {
	handler := &CategoryHandler{categoryUC: categoryUC}
	public.GET("/categories", handler.List)
	protected.POST("/categories/refresh", handler.Refresh)
}

// List godoc
// @Summary      List job categories
// @Tags         categories
// @Produce      json
// @Success      200  {object}  response.Response{data=[]domain.JobCategory}
// @Router       /categories [get]
func (h *CategoryHandler) List(c *gin.Context) {
	cats, err := h.categoryUC.ListCategories(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Categories retrieved", cats)
}

// Refresh godoc
// @Summary      Reload the category cache
// @Tags         categories
// @Produce      json
// @Success      200  {object}  response.Response{data=[]domain.JobCategory}
// @Router       /categories/refresh [post]
// @Security     BearerAuth
func (h *CategoryHandler) Refresh(c *gin.Context) {
	cats, err := h.categoryUC.RefreshCategories(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Categories refreshed", cats)
}
