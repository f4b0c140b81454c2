package v1

import (
	"errors"
	"io"
	"net/http"

	"go-jobboard-backend/internal/delivery/http/response"
	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userUC        domain.UserUsecase
	applicationUC domain.ApplicationUsecase
}

// NewUserHandler registers the authenticated job-seeker routes
func NewUserHandler(r *gin.RouterGroup, applyLimiter gin.HandlerFunc, userUC domain.UserUsecase, applicationUC domain.ApplicationUsecase) {
	handler := &UserHandler{userUC: userUC, applicationUC: applicationUC}

	users := r.Group("/users")
	{
		users.GET("/me", handler.GetUserData)
		users.POST("/apply", applyLimiter, handler.ApplyForJob)
		users.GET("/applications", handler.GetUserApplications)
		users.POST("/resume", applyLimiter, handler.UpdateResume)
	}
}

// GetUserData godoc
// @Summary      Get logged-in user data
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]interface{}
// @Router       /users/me [get]
// @Security     BearerAuth
func (h *UserHandler) GetUserData(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	user, err := h.userUC.GetUserData(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Payload(c, http.StatusOK, "user", user)
}

// ApplyForJobRequest is the request payload for applying to a job
type ApplyForJobRequest struct {
	JobID int64 `json:"jobId"`
}

// ApplyForJob godoc
// @Summary      Apply for a job
// @Accept       json
// @Produce      json
// @Param        body  body      ApplyForJobRequest  true  "Job to apply to"
// @Success      200   {object}  map[string]interface{}
// @Failure      400   {object}  map[string]interface{}
// @Failure      404   {object}  map[string]interface{}
// @Router       /users/apply [post]
// @Security     BearerAuth
func (h *UserHandler) ApplyForJob(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	// An empty or absent body falls through with a zero job id so the
	// usecase's input check produces the one canonical message
	var req ApplyForJobRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.Error(apperror.MissingInput("Job ID is required"))
		return
	}

	if err := h.applicationUC.ApplyToJob(c.Request.Context(), userID, req.JobID); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Applied Successfully")
}

// GetUserApplications godoc
// @Summary      Get jobs applied by the user
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /users/applications [get]
// @Security     BearerAuth
func (h *UserHandler) GetUserApplications(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	applications, err := h.applicationUC.GetUserApplications(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}
	if applications == nil {
		applications = []domain.ApplicationDetail{}
	}

	response.Payload(c, http.StatusOK, "applications", applications)
}

// UpdateResume godoc
// @Summary      Upload or replace the user's resume
// @Accept       multipart/form-data
// @Produce      json
// @Param        resume  formData  file  true  "Resume file"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]interface{}
// @Router       /users/resume [post]
// @Security     BearerAuth
func (h *UserHandler) UpdateResume(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	header, err := c.FormFile("resume")
	if err != nil {
		c.Error(apperror.MissingInput("Resume file is missing"))
		return
	}

	file, err := header.Open()
	if err != nil {
		c.Error(apperror.Internal(err))
		return
	}
	// The multipart temp file is released here on every exit path
	defer file.Close()

	upload := &domain.ResumeUpload{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Content:     file,
	}

	if err := h.userUC.UpdateResume(c.Request.Context(), userID, upload); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Resume Updated")
}
