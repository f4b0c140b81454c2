package v1

import (
	"net/http"

	"go-jobboard-backend/internal/delivery/http/response"
	"go-jobboard-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type CompanyHandler struct {
	companyUC domain.CompanyUsecase
}

// NewCompanyHandler registers the employer-session routes
func NewCompanyHandler(r *gin.RouterGroup, companyUC domain.CompanyUsecase) {
	handler := &CompanyHandler{companyUC: companyUC}

	r.GET("/company/profile", handler.GetProfile)
}

// GetProfile godoc
// @Summary      Get the authenticated employer's profile
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]interface{}
// @Router       /company/profile [get]
// @Security     BearerAuth
func (h *CompanyHandler) GetProfile(c *gin.Context) {
	companyID := c.GetInt64(string(domain.KeyCompanyID))

	company, err := h.companyUC.GetProfile(c.Request.Context(), companyID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Payload(c, http.StatusOK, "company", company)
}
