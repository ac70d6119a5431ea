package api

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Lakshya5071/criminal-record-service/internal/auth"
	"github.com/Lakshya5071/criminal-record-service/internal/cache"
	"github.com/Lakshya5071/criminal-record-service/internal/casegraph"
	"github.com/Lakshya5071/criminal-record-service/pkg/logger"
)

// SetupRoutes configures all application routes
func SetupRoutes(router *gin.Engine, db *gorm.DB, store *casegraph.CaseStore, c cache.Cache, verifier *auth.Verifier, logger *logger.Logger) {
	h := NewHandlers(db, store, c, verifier, logger)

	cases := router.Group("/cases")
	{
		cases.GET("", h.ListCases)
		cases.GET("/:id", h.GetCase)
	}

	persons := router.Group("/persons")
	{
		persons.GET("", h.ListPersons)
	}

	analytics := router.Group("/analytics")
	{
		analytics.GET("/trending", h.TrendingCases)
		analytics.GET("/location", h.CaseLocations)
		analytics.GET("/types", h.CaseTypeStatistics)
	}

	admin := router.Group("/admin")
	{
		// token verification stays outside the gate so clients can probe
		admin.GET("/verify-token", h.VerifyToken)

		gated := admin.Group("", verifier.RequireToken())
		{
			gated.POST("/cases", h.CreateCase)
			gated.PUT("/cases/:id", h.UpdateCase)
			gated.DELETE("/cases/:id", h.DeleteCase)
		}
	}

	apiGroup := router.Group("/api")
	{
		apiGroup.GET("/health", h.HealthCheck)
		apiGroup.GET("/cache/stats", h.CacheStats)
	}
}
