package restapi

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerfiles "github.com/swaggo/files"
	ginswagger "github.com/swaggo/gin-swagger"

	"rolegate/internal/infrastructure/metrics"
)

// SetupRouter registers the gating HTTP surface: the one public endpoint,
// liveness, Prometheus metrics, and Swagger UI, with permissive CORS for
// browser-based clients.
func SetupRouter(h *Handler) *gin.Engine {
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	router.POST("/checkRolesOfMembers", h.CheckRolesOfMembers)
	router.GET("/healthz", h.Healthz)
	router.GET("/metrics", gin.WrapH(metrics.Handler()))
	router.GET("/swagger/*any", ginswagger.WrapHandler(swaggerfiles.Handler))

	return router
}
