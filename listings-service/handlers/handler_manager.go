package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/inmohub/listings/listings-service/services"
	"github.com/inmohub/listings/shared/apperrors"
	"github.com/inmohub/listings/shared/middleware"
	"github.com/inmohub/listings/shared/models"
	"github.com/inmohub/listings/shared/utils"
)

type HandlerManager struct {
	MeHandler           *MeHandler
	AgencyHandler       *AgencyHandler
	UserHandler         *UserHandler
	PropertyHandler     *PropertyHandler
	ProjectHandler      *ProjectHandler
	LandingImageHandler *LandingImageHandler
}

func NewHandlerManager(sm *services.ServiceManager) *HandlerManager {
	return &HandlerManager{
		MeHandler:           NewMeHandler(),
		AgencyHandler:       NewAgencyHandler(sm.AgencyService),
		UserHandler:         NewUserHandler(sm.UserService),
		PropertyHandler:     NewPropertyHandler(sm.PropertyService),
		ProjectHandler:      NewProjectHandler(sm.ProjectService),
		LandingImageHandler: NewLandingImageHandler(sm.LandingImageService),
	}
}

// currentUser returns the authenticated caller or writes a 401.
func currentUser(c *gin.Context) (*models.User, bool) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		utils.RespondError(c, apperrors.Authentication("unauthorized"))
	}
	return user, ok
}

// pathID parses a uuid path parameter or writes a 400.
func pathID(c *gin.Context, param string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		utils.RespondError(c, apperrors.FieldValidation(param, "must be a valid id"))
		return uuid.Nil, false
	}
	return id, true
}

func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		utils.RespondError(c, utils.BindError(err))
		return false
	}
	return true
}

func bindQuery(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindQuery(req); err != nil {
		utils.RespondError(c, utils.BindError(err))
		return false
	}
	return true
}
