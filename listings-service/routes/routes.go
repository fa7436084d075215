package routes

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/inmohub/listings/listings-service/handlers"
	"github.com/inmohub/listings/shared/constants"
	"github.com/inmohub/listings/shared/middleware"
	"github.com/inmohub/listings/shared/utils"
)

type Options struct {
	Verifier    middleware.TokenVerifier
	Resolver    middleware.IdentityResolver
	CORSOrigins []string
	Logger      *slog.Logger
}

func SetupRoutes(h *handlers.HandlerManager, opts Options) *gin.Engine {
	utils.UseJSONFieldNames()

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(logger), middleware.CORS(opts.CORSOrigins))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, utils.APIResponse(false, "ok", nil))
	})

	api := r.Group("/api/v1")
	auth := api.Group("")
	auth.Use(middleware.AuthMiddleware(opts.Verifier, opts.Resolver))
	{
		auth.GET("/me", h.MeHandler.Me)

		agencies := auth.Group("/agencies", middleware.RoleAuthorization(constants.RoleSuperAdmin))
		{
			agencies.POST("", h.AgencyHandler.Create)
			agencies.GET("", h.AgencyHandler.List)
			agencies.GET("/:id", h.AgencyHandler.Get)
			agencies.PUT("/:id", h.AgencyHandler.Update)
			agencies.PATCH("/:id/active", h.AgencyHandler.SetActive)
		}

		users := auth.Group("/users")
		{
			users.POST("", middleware.RoleAuthorization(constants.RoleSuperAdmin, constants.RoleAgencyAdmin), h.UserHandler.Create)
			users.GET("", h.UserHandler.List)
			users.GET("/:id", h.UserHandler.Get)
			users.PUT("/:id", middleware.RoleAuthorization(constants.RoleSuperAdmin, constants.RoleAgencyAdmin), h.UserHandler.Update)
			users.PATCH("/:id/active", middleware.RoleAuthorization(constants.RoleSuperAdmin, constants.RoleAgencyAdmin), h.UserHandler.SetActive)
			users.DELETE("/:id", middleware.RoleAuthorization(constants.RoleSuperAdmin), h.UserHandler.Delete)
		}

		reviewers := middleware.RoleAuthorization(constants.RoleSuperAdmin, constants.RoleAgencyAdmin)

		properties := auth.Group("/properties")
		{
			properties.POST("", h.PropertyHandler.Create)
			properties.GET("", h.PropertyHandler.List)
			properties.GET("/approve", reviewers, h.PropertyHandler.ListPending)
			properties.POST("/approve", reviewers, h.PropertyHandler.Review)
			properties.GET("/:id", h.PropertyHandler.Get)
			properties.PUT("/:id", h.PropertyHandler.Update)
			properties.DELETE("/:id", h.PropertyHandler.Delete)
			properties.POST("/:id/reject", reviewers, h.PropertyHandler.Reject)
			properties.POST("/:id/resend", h.PropertyHandler.Resubmit)
		}

		projects := auth.Group("/projects")
		{
			projects.POST("", h.ProjectHandler.Create)
			projects.GET("", h.ProjectHandler.List)
			projects.GET("/approve", reviewers, h.ProjectHandler.ListPending)
			projects.POST("/approve", reviewers, h.ProjectHandler.Review)
			projects.GET("/:id", h.ProjectHandler.Get)
			projects.PUT("/:id", h.ProjectHandler.Update)
			projects.DELETE("/:id", h.ProjectHandler.Delete)
			projects.POST("/:id/reject", reviewers, h.ProjectHandler.Reject)
			projects.POST("/:id/resend", h.ProjectHandler.Resubmit)

			projects.POST("/:id/floors", h.ProjectHandler.AddFloor)
			projects.DELETE("/:id/floors/:floorId", h.ProjectHandler.DeleteFloor)
			projects.POST("/:id/floors/:floorId/quadrants", h.ProjectHandler.AddQuadrant)
			projects.PUT("/:id/floors/:floorId/quadrants/:quadrantId", h.ProjectHandler.UpdateQuadrant)
			projects.DELETE("/:id/floors/:floorId/quadrants/:quadrantId", h.ProjectHandler.DeleteQuadrant)
		}

		landing := auth.Group("/landing-images", middleware.RoleAuthorization(constants.RoleSuperAdmin))
		{
			landing.POST("", h.LandingImageHandler.Create)
			landing.GET("", h.LandingImageHandler.List)
			landing.PUT("/:id", h.LandingImageHandler.Update)
			landing.DELETE("/:id", h.LandingImageHandler.Delete)
		}
	}

	return r
}
