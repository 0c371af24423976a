package v1

import (
	"net/http"
	"time"

	"job-portal-backend/internal/delivery/http/middleware"
	"job-portal-backend/internal/delivery/http/response"
	"job-portal-backend/internal/domain"
	"job-portal-backend/pkg/metrics"
	"job-portal-backend/pkg/validation"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	AuthUC  domain.AuthUsecase
	UserUC  domain.UserUsecase
	SkillUC domain.SkillUsecase
	FileUC  domain.FileUsecase
	Health  domain.HealthUsecase

	RateLimiter          *middleware.RateLimiter
	LoginLimitPerMinute  int
	UploadLimitPerMinute int
	MaxUploadSize        int64
	FileURLPrefix        string
	TokenTTL             time.Duration
	FrontendURL          string
	Release              bool
}

func NewRouter(deps RouterDeps) *gin.Engine {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		validation.RegisterValidators(v)
	}

	r := gin.New()

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(deps.FrontendURL, deps.Release)) // CORS must be first!
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.Metrics())
	r.Use(middleware.SecurityHeadersMiddleware())
	r.Use(middleware.ErrorHandler())

	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	api := r.Group("/api")

	api.GET("/health", func(c *gin.Context) {
		if deps.Health == nil {
			response.Success(c, http.StatusOK, "System operational", gin.H{"status": "UP"})
			return
		}
		health := deps.Health.Check(c.Request.Context())
		code, message := http.StatusOK, "System operational"
		if health.Status != "UP" {
			code, message = http.StatusServiceUnavailable, "System degraded"
		}
		response.Success(c, code, message, gin.H{"status": health.Status, "dependencies": health.Dependencies})
	})

	// Swagger
	api.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	limiter := deps.RateLimiter
	if limiter == nil {
		limiter = middleware.NewRateLimiter(nil)
	}
	loginLimit := limiter.Middleware(middleware.LoginRateLimitConfig(deps.LoginLimitPerMinute))
	uploadLimit := limiter.Middleware(middleware.UploadRateLimitConfig(deps.UploadLimitPerMinute))

	// Protected routes
	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(deps.AuthUC))

	NewAuthHandler(api, protected, deps.AuthUC, loginLimit, deps.TokenTTL, deps.Release)
	NewFileHandler(api, protected, deps.FileUC, uploadLimit, deps.MaxUploadSize)
	NewUserHandler(protected, deps.UserUC, deps.AuthUC, deps.FileURLPrefix)
	NewSkillHandler(api, protected, deps.SkillUC)

	return r
}
