package v1

import (
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"profiler-backend/config"
	_ "profiler-backend/docs" // registers the swagger document
	"profiler-backend/internal/delivery/http/middleware"
	"profiler-backend/internal/domain"
	"profiler-backend/internal/usecase"
	"profiler-backend/pkg/auth"
	"profiler-backend/pkg/validation"
)

type RouterDeps struct {
	ProfileUC    domain.ProfileUsecase
	ClientUC     domain.ClientUsecase
	AssignmentUC domain.AssignmentUsecase
	HealthUC     usecase.HealthUsecase
	Config       *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	cfg := deps.Config
	if cfg == nil {
		cfg = &config.Config{}
	}
	healthUC := deps.HealthUC
	if healthUC == nil {
		healthUC = usecase.NewHealthUsecase()
	}

	validation.RegisterGinValidators()

	r := gin.New()

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(cfg.CORSAllowedOrigins)) // CORS must be first!
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.SecurityHeadersMiddleware())
	r.Use(middleware.ErrorHandler())

	NewHealthHandler(r, healthUC)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("")
	if cfg.RateLimitRequests > 0 {
		window := time.Duration(cfg.RateLimitWindowSeconds) * time.Second
		if window <= 0 {
			window = time.Minute
		}
		api.Use(middleware.RateLimitMiddleware(middleware.DefaultRateLimitConfig(cfg.RateLimitRequests, window)))
	}
	if cfg.AuthEnabled() {
		var jwks *auth.Provider
		if cfg.AuthJWKSURL != "" {
			jwks = auth.NewProvider(cfg.AuthJWKSURL)
		}
		api.Use(middleware.AuthMiddleware(cfg.AuthJWTSecret, jwks))
	}
	{
		NewProfileHandler(api, deps.ProfileUC)
		NewClientHandler(api, deps.ClientUC)
		NewAssignmentHandler(api, deps.AssignmentUC)
	}

	return r
}
