package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/inmohub/listings/catalog-service/services"
	"github.com/inmohub/listings/shared/apperrors"
	"github.com/inmohub/listings/shared/models"
	"github.com/inmohub/listings/shared/utils"
)

type CatalogHandler struct {
	catalogService services.CatalogService
}

func NewCatalogHandler(catalogService services.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

func pathID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondError(c, apperrors.FieldValidation("id", "must be a valid id"))
		return uuid.Nil, false
	}
	return id, true
}

func bindFilter(c *gin.Context) (models.ListingFilter, bool) {
	var filter models.ListingFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		utils.RespondError(c, utils.BindError(err))
		return filter, false
	}
	return filter, true
}

func (h *CatalogHandler) ListProperties(c *gin.Context) {
	filter, ok := bindFilter(c)
	if !ok {
		return
	}
	page, err := h.catalogService.ListProperties(c.Request.Context(), filter)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.APIResponse(false, "Properties fetched successfully", page))
}

func (h *CatalogHandler) GetProperty(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	property, err := h.catalogService.GetProperty(c.Request.Context(), id)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.APIResponse(false, "Property fetched successfully", property))
}

func (h *CatalogHandler) ListProjects(c *gin.Context) {
	filter, ok := bindFilter(c)
	if !ok {
		return
	}
	page, err := h.catalogService.ListProjects(c.Request.Context(), filter)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.APIResponse(false, "Projects fetched successfully", page))
}

func (h *CatalogHandler) GetProject(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	project, err := h.catalogService.GetProject(c.Request.Context(), id)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.APIResponse(false, "Project fetched successfully", project))
}

func (h *CatalogHandler) LandingImages(c *gin.Context) {
	images, err := h.catalogService.LandingImages(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.APIResponse(false, "Landing images fetched successfully", images))
}
