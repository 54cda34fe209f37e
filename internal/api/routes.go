package api

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Becky0713/NOAH/config"
)

// SetupRoutes wires the handler endpoints plus CORS and metrics onto the
// router.
func SetupRoutes(router *gin.Engine, handler *Handler, cfg *config.Config) {
	corsConfig := cors.DefaultConfig()
	if cfg.AllowAllOrigins() {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = cfg.CORSAllowOrigins
	}
	router.Use(cors.New(corsConfig))

	router.GET("/health", handler.GetHealth)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")
	{
		api.GET("/regions", handler.GetRegions)
		api.GET("/metadata/fields", handler.GetFieldMetadata)
		api.GET("/records", handler.GetRecords)
		api.GET("/records/geojson", handler.GetRecordsGeoJSON)
		api.GET("/stats", handler.GetStats)
		api.POST("/sync", handler.TriggerSync)
	}
}
