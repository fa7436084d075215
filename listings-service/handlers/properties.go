package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/inmohub/listings/listings-service/services"
	"github.com/inmohub/listings/shared/models"
	"github.com/inmohub/listings/shared/utils"
)

type PropertyHandler struct {
	propertyService services.PropertyService
}

func NewPropertyHandler(propertyService services.PropertyService) *PropertyHandler {
	return &PropertyHandler{propertyService: propertyService}
}

func (h *PropertyHandler) Create(c *gin.Context) {
	caller, ok := currentUser(c)
	if !ok {
		return
	}
	var req models.PropertyRequest
	if !bindJSON(c, &req) {
		return
	}

	property, err := h.propertyService.Create(c.Request.Context(), caller, req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, utils.APIResponse(false, "Property created successfully", property, http.StatusCreated))
}

func (h *PropertyHandler) List(c *gin.Context) {
	caller, ok := currentUser(c)
	if !ok {
		return
	}
	var filter models.ListingFilter
	if !bindQuery(c, &filter) {
		return
	}

	page, err := h.propertyService.List(c.Request.Context(), caller, filter)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.APIResponse(false, "Properties fetched successfully", page))
}

func (h *PropertyHandler) Get(c *gin.Context) {
	caller, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	property, err := h.propertyService.Get(c.Request.Context(), caller, id)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.APIResponse(false, "Property fetched successfully", property))
}

func (h *PropertyHandler) Update(c *gin.Context) {
	caller, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req models.PropertyRequest
	if !bindJSON(c, &req) {
		return
	}

	property, err := h.propertyService.Update(c.Request.Context(), caller, id, req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.APIResponse(false, "Property updated and sent for review", property))
}

func (h *PropertyHandler) Delete(c *gin.Context) {
	caller, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.propertyService.Delete(c.Request.Context(), caller, id); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.APIResponse(false, "Property deleted successfully", nil))
}

// ListPending is the approval queue.
func (h *PropertyHandler) ListPending(c *gin.Context) {
	caller, ok := currentUser(c)
	if !ok {
		return
	}
	var page models.PageRequest
	if !bindQuery(c, &page) {
		return
	}

	result, err := h.propertyService.ListPending(c.Request.Context(), caller, page)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.APIResponse(false, "Pending properties fetched successfully", result))
}

func (h *PropertyHandler) Review(c *gin.Context) {
	caller, ok := currentUser(c)
	if !ok {
		return
	}
	var req models.ReviewRequest
	if !bindJSON(c, &req) {
		return
	}

	property, err := h.propertyService.Review(c.Request.Context(), caller, req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.APIResponse(false, "Property reviewed successfully", property))
}

func (h *PropertyHandler) Reject(c *gin.Context) {
	caller, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req models.RejectRequest
	if !bindJSON(c, &req) {
		return
	}

	property, err := h.propertyService.Reject(c.Request.Context(), caller, id, req.Message)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.APIResponse(false, "Property rejected", property))
}

func (h *PropertyHandler) Resubmit(c *gin.Context) {
	caller, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	property, err := h.propertyService.Resubmit(c.Request.Context(), caller, id)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.APIResponse(false, "Property resubmitted for review", property))
}
