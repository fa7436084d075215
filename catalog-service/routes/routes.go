package routes

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/inmohub/listings/catalog-service/handlers"
	"github.com/inmohub/listings/shared/middleware"
	"github.com/inmohub/listings/shared/utils"
)

func SetupRoutes(hm *handlers.HandlerManager, corsOrigins []string, logger *slog.Logger) *gin.Engine {
	utils.UseJSONFieldNames()
	if logger == nil {
		logger = slog.Default()
	}

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(logger), middleware.CORS(corsOrigins))

	public := r.Group("/api/v1/public")
	{
		public.GET("/properties", hm.CatalogHandler.ListProperties)
		public.GET("/properties/:id", hm.CatalogHandler.GetProperty)
		public.GET("/projects", hm.CatalogHandler.ListProjects)
		public.GET("/projects/:id", hm.CatalogHandler.GetProject)
		public.GET("/landing-images", hm.CatalogHandler.LandingImages)
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "catalog",
		})
	})

	return r
}
