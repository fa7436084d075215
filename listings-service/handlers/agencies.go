package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/inmohub/listings/listings-service/services"
	"github.com/inmohub/listings/shared/models"
	"github.com/inmohub/listings/shared/utils"
)

type AgencyHandler struct {
	agencyService services.AgencyService
}

func NewAgencyHandler(agencyService services.AgencyService) *AgencyHandler {
	return &AgencyHandler{agencyService: agencyService}
}

func (h *AgencyHandler) Create(c *gin.Context) {
	caller, ok := currentUser(c)
	if !ok {
		return
	}
	var req models.CreateAgencyRequest
	if !bindJSON(c, &req) {
		return
	}

	agency, err := h.agencyService.Create(c.Request.Context(), caller, req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, utils.APIResponse(false, "Agency created successfully", agency, http.StatusCreated))
}

func (h *AgencyHandler) List(c *gin.Context) {
	caller, ok := currentUser(c)
	if !ok {
		return
	}
	var filter models.AgencyFilter
	if !bindQuery(c, &filter) {
		return
	}

	page, err := h.agencyService.List(c.Request.Context(), caller, filter)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.APIResponse(false, "Agencies fetched successfully", page))
}

func (h *AgencyHandler) Get(c *gin.Context) {
	caller, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	agency, err := h.agencyService.Get(c.Request.Context(), caller, id)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.APIResponse(false, "Agency fetched successfully", agency))
}

func (h *AgencyHandler) Update(c *gin.Context) {
	caller, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req models.UpdateAgencyRequest
	if !bindJSON(c, &req) {
		return
	}

	agency, err := h.agencyService.Update(c.Request.Context(), caller, id, req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.APIResponse(false, "Agency updated successfully", agency))
}

func (h *AgencyHandler) SetActive(c *gin.Context) {
	caller, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req models.SetActiveRequest
	if !bindJSON(c, &req) {
		return
	}

	agency, err := h.agencyService.SetActive(c.Request.Context(), caller, id, *req.Active)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.APIResponse(false, "Agency status updated", agency))
}
