package v1

import (
	"net/http"
	"time"

	"go-jobboard-backend/config"
	"go-jobboard-backend/internal/delivery/http/middleware"
	"go-jobboard-backend/internal/delivery/http/response"
	"go-jobboard-backend/internal/domain"
	"go-jobboard-backend/pkg/auth"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	UserUC        domain.UserUsecase
	JobUC         domain.JobUsecase
	CompanyUC     domain.CompanyUsecase
	ApplicationUC domain.ApplicationUsecase
	JWKSProvider  *auth.Provider
	Config        *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(deps.Config)) // CORS must be first!
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.ErrorHandler())

	api := r.Group("/api")

	// Health Check
	api.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, "System operational")
	})

	// Public routes
	NewJobHandler(api, deps.JobUC)

	// Swagger
	api.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	applyLimiter := middleware.RateLimit(middleware.RateLimitConfig{
		Limit:     deps.Config.RateLimitThreshold,
		Window:    time.Duration(deps.Config.RateLimitWindowSeconds) * time.Second,
		KeyPrefix: "rl:apply:",
	})

	// Job-seeker routes (identity provider tokens)
	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(deps.JWKSProvider, deps.Config))
	{
		NewUserHandler(protected, applyLimiter, deps.UserUC, deps.ApplicationUC)
	}

	// Employer routes (company session tokens)
	companyProtected := api.Group("")
	companyProtected.Use(middleware.CompanyAuthMiddleware(deps.Config))
	{
		NewCompanyHandler(companyProtected, deps.CompanyUC)
	}

	return r
}
