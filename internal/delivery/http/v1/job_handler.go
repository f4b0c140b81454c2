package v1

import (
	"net/http"

	"go-jobboard-backend/internal/delivery/http/response"
	"go-jobboard-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type JobHandler struct {
	jobUC domain.JobUsecase
}

// NewJobHandler registers the public job listing routes
func NewJobHandler(r *gin.RouterGroup, jobUC domain.JobUsecase) {
	handler := &JobHandler{jobUC: jobUC}

	r.GET("/jobs", handler.ListJobs)
}

// ListJobs godoc
// @Summary      List visible job postings
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /jobs [get]
func (h *JobHandler) ListJobs(c *gin.Context) {
	jobs, err := h.jobUC.ListJobs(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	if jobs == nil {
		jobs = []domain.JobWithCompany{}
	}

	response.Payload(c, http.StatusOK, "jobs", jobs)
}
