package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ergasia-marketplace/internal/delivery/http/response"
	"ergasia-marketplace/internal/domain"
)

type FreelancerHandler struct {
	freelancerUC domain.FreelancerUsecase
}

func NewFreelancerHandler(public *gin.RouterGroup, freelancerUC domain.FreelancerUsecase) {
	handler := &FreelancerHandler{freelancerUC: freelancerUC}
	public.GET("/freelancers", handler.Browse)
}

// Browse godoc
// @Summary      Browse freelancers
// @Description  Match freelancers by username and preferred categories
// @Tags         freelancers
// @Produce      json
// @Param        q           query     string    false  "Username search"
// @Param        categories  query     []string  false  "Preferred category names"
// @Param        page        query     int       false  "Page number"
// @Param        page_size   query     int       false  "Page size"
// @Success      200         {object}  response.Response{data=domain.FreelancerPage}
// @Router       /freelancers [get]
func (h *FreelancerHandler) Browse(c *gin.Context) {
	page, err := h.freelancerUC.Browse(c.Request.Context(), domain.FreelancerQuery{
		SearchText: c.Query("q"),
		Categories: queryList(c, "categories"),
		Page:       queryInt(c, "page", 1),
		PageSize:   queryInt(c, "page_size", 0),
	})
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Freelancers retrieved", page)
}
