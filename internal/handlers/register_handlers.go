package handlers

import (
	"net/http"

	"github.com/SscSPs/time_clock_app/cmd/docs"
	portssvc "github.com/SscSPs/time_clock_app/internal/core/ports/services"
	"github.com/SscSPs/time_clock_app/internal/middleware"
	"github.com/SscSPs/time_clock_app/internal/platform/config"
	"github.com/SscSPs/time_clock_app/internal/utils"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RouteDeps are the optional collaborators of the HTTP layer.
type RouteDeps struct {
	Analytics *utils.PosthogClientWrapper
	// ClockLimit guards the clock action endpoint; nil disables rate limiting.
	ClockLimit gin.HandlerFunc
}

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	deps RouteDeps,
) {
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	setupAPIV1Routes(r, cfg, services, deps)

	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the /api/v1 group. Kiosk tokens are checked
// before bearer auth so terminals can skip it.
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	deps RouteDeps,
) {
	v1 := r.Group("/api/v1",
		middleware.KioskTokenAuth(services.KioskToken),
		middleware.AuthMiddleware(cfg.JWTSecret, cfg.JWTIssuer),
		middleware.PosthogMiddleware(deps.Analytics),
	)

	RegisterClockRoutes(v1, services.Clock, services.Attendance, deps.Analytics, deps.ClockLimit)
	RegisterAttendanceRoutes(v1, services.Attendance)
	RegisterKioskTokenRoutes(v1, services.KioskToken)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
