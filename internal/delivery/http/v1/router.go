package v1

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"ergasia-marketplace/internal/delivery/http/middleware"
	"ergasia-marketplace/internal/domain"
	"ergasia-marketplace/internal/usecase"
	"ergasia-marketplace/pkg/auth"
	"ergasia-marketplace/pkg/security"
)

type RouterDeps struct {
	HealthUC         usecase.HealthUsecase
	AuthUC           domain.AuthUsecase
	JobUC            domain.JobUsecase
	CategoryUC       domain.CategoryUsecase
	ClickUC          domain.ClickUsecase
	FreelancerUC     domain.FreelancerUsecase
	RecommendationUC domain.RecommendationUsecase
	WizardUC         domain.WizardUsecase
	WalletUC         domain.WalletUsecase
	FaceUC           domain.FaceUsecase
	Tokens           *auth.TokenService

	AllowedOrigins []string
	Production     bool
	GlobalLimit    *middleware.RateLimiter
	FaceLimit      *middleware.RateLimiter
	FaceGuard      *security.LoginTracker
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	// CORS must be first
	r.Use(middleware.CORSMiddleware(deps.AllowedOrigins, deps.Production))
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.AccessLog())
	r.Use(middleware.SecurityHeadersMiddleware())
	if deps.GlobalLimit != nil {
		r.Use(deps.GlobalLimit.Handler())
	}
	r.Use(middleware.ErrorHandler())

	v1 := r.Group("/v1")
	v1.Use(middleware.CSRFMiddleware(deps.Production))

	v1.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	faceLimit := func(c *gin.Context) { c.Next() }
	if deps.FaceLimit != nil {
		faceLimit = deps.FaceLimit.Handler()
	}

	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(deps.Tokens, deps.AuthUC))
	{
		NewHealthHandler(v1, deps.HealthUC)
		NewJobHandler(v1, protected, deps.JobUC)
		NewCategoryHandler(v1, protected, deps.CategoryUC)
		NewFreelancerHandler(v1, deps.FreelancerUC)
		NewClickHandler(protected, deps.ClickUC)
		NewRecommendationHandler(protected, deps.RecommendationUC)
		NewDraftHandler(protected, deps.WizardUC)
		NewWalletHandler(protected, deps.WalletUC)
		NewFaceHandler(v1, protected, deps.FaceUC, faceLimit, deps.FaceGuard, deps.Production)
	}

	return r
}
