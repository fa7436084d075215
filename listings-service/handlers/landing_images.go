package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/inmohub/listings/listings-service/services"
	"github.com/inmohub/listings/shared/models"
	"github.com/inmohub/listings/shared/utils"
)

type LandingImageHandler struct {
	landingImageService services.LandingImageService
}

func NewLandingImageHandler(landingImageService services.LandingImageService) *LandingImageHandler {
	return &LandingImageHandler{landingImageService: landingImageService}
}

func (h *LandingImageHandler) Create(c *gin.Context) {
	caller, ok := currentUser(c)
	if !ok {
		return
	}
	var req models.LandingImageRequest
	if !bindJSON(c, &req) {
		return
	}

	image, err := h.landingImageService.Create(c.Request.Context(), caller, req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, utils.APIResponse(false, "Landing image created successfully", image, http.StatusCreated))
}

func (h *LandingImageHandler) List(c *gin.Context) {
	caller, ok := currentUser(c)
	if !ok {
		return
	}
	var page models.PageRequest
	if !bindQuery(c, &page) {
		return
	}

	result, err := h.landingImageService.List(c.Request.Context(), caller, page)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.APIResponse(false, "Landing images fetched successfully", result))
}

func (h *LandingImageHandler) Update(c *gin.Context) {
	caller, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req models.LandingImageRequest
	if !bindJSON(c, &req) {
		return
	}

	image, err := h.landingImageService.Update(c.Request.Context(), caller, id, req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.APIResponse(false, "Landing image updated successfully", image))
}

func (h *LandingImageHandler) Delete(c *gin.Context) {
	caller, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.landingImageService.Delete(c.Request.Context(), caller, id); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.APIResponse(false, "Landing image deleted successfully", nil))
}
