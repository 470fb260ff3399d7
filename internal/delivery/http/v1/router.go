package v1

import (
	"go-devnet-backend/internal/delivery/http/middleware"
	"go-devnet-backend/internal/delivery/http/response"
	"go-devnet-backend/internal/domain"
	"go-devnet-backend/internal/usecase"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	AuthUC      domain.AuthUsecase
	ProfileUC   domain.ProfileUsecase
	PostUC      domain.PostUsecase
	HealthUC    usecase.HealthUsecase
	FrontendURL string
	Release     bool
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(deps.FrontendURL, deps.Release)) // CORS must be first!
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.SecurityHeadersMiddleware())
	r.Use(middleware.Metrics())
	r.Use(middleware.ErrorHandler())

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")

	// Health Check
	api.GET("/health", func(c *gin.Context) {
		if deps.HealthUC == nil {
			response.Success(c, http.StatusOK, gin.H{"status": "ok"})
			return
		}
		status, healthy := deps.HealthUC.Check(c.Request.Context())
		code := http.StatusOK
		if !healthy {
			code = http.StatusServiceUnavailable
		}
		response.Success(c, code, status)
	})

	// Swagger
	api.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Protected routes
	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(deps.AuthUC))
	{
		NewUserHandler(api, protected, deps.AuthUC)
		NewProfileHandler(api, protected, deps.ProfileUC)
		NewPostHandler(api, protected, deps.PostUC)
	}

	return r
}
