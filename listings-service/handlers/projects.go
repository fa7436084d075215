package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/inmohub/listings/listings-service/services"
	"github.com/inmohub/listings/shared/models"
	"github.com/inmohub/listings/shared/utils"
)

type ProjectHandler struct {
	projectService services.ProjectService
}

func NewProjectHandler(projectService services.ProjectService) *ProjectHandler {
	return &ProjectHandler{projectService: projectService}
}

func (h *ProjectHandler) Create(c *gin.Context) {
	caller, ok := currentUser(c)
	if !ok {
		return
	}
	var req models.ProjectRequest
	if !bindJSON(c, &req) {
		return
	}

	project, err := h.projectService.Create(c.Request.Context(), caller, req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, utils.APIResponse(false, "Project created successfully", project, http.StatusCreated))
}

func (h *ProjectHandler) List(c *gin.Context) {
	caller, ok := currentUser(c)
	if !ok {
		return
	}
	var filter models.ListingFilter
	if !bindQuery(c, &filter) {
		return
	}

	page, err := h.projectService.List(c.Request.Context(), caller, filter)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.APIResponse(false, "Projects fetched successfully", page))
}

func (h *ProjectHandler) Get(c *gin.Context) {
	caller, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	project, err := h.projectService.Get(c.Request.Context(), caller, id)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.APIResponse(false, "Project fetched successfully", project))
}

func (h *ProjectHandler) Update(c *gin.Context) {
	caller, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req models.ProjectRequest
	if !bindJSON(c, &req) {
		return
	}

	project, err := h.projectService.Update(c.Request.Context(), caller, id, req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.APIResponse(false, "Project updated and sent for review", project))
}

func (h *ProjectHandler) Delete(c *gin.Context) {
	caller, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.projectService.Delete(c.Request.Context(), caller, id); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.APIResponse(false, "Project deleted successfully", nil))
}

// ListPending is the approval queue.
func (h *ProjectHandler) ListPending(c *gin.Context) {
	caller, ok := currentUser(c)
	if !ok {
		return
	}
	var page models.PageRequest
	if !bindQuery(c, &page) {
		return
	}

	result, err := h.projectService.ListPending(c.Request.Context(), caller, page)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.APIResponse(false, "Pending projects fetched successfully", result))
}

func (h *ProjectHandler) Review(c *gin.Context) {
	caller, ok := currentUser(c)
	if !ok {
		return
	}
	var req models.ReviewRequest
	if !bindJSON(c, &req) {
		return
	}

	project, err := h.projectService.Review(c.Request.Context(), caller, req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.APIResponse(false, "Project reviewed successfully", project))
}

func (h *ProjectHandler) Reject(c *gin.Context) {
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

	project, err := h.projectService.Reject(c.Request.Context(), caller, id, req.Message)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.APIResponse(false, "Project rejected", project))
}

func (h *ProjectHandler) Resubmit(c *gin.Context) {
	caller, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	project, err := h.projectService.Resubmit(c.Request.Context(), caller, id)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.APIResponse(false, "Project resubmitted for review", project))
}

func (h *ProjectHandler) AddFloor(c *gin.Context) {
	caller, ok := currentUser(c)
	if !ok {
		return
	}
	projectID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req models.FloorRequest
	if !bindJSON(c, &req) {
		return
	}

	floor, err := h.projectService.AddFloor(c.Request.Context(), caller, projectID, req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, utils.APIResponse(false, "Floor added successfully", floor, http.StatusCreated))
}

func (h *ProjectHandler) DeleteFloor(c *gin.Context) {
	caller, ok := currentUser(c)
	if !ok {
		return
	}
	projectID, ok := pathID(c, "id")
	if !ok {
		return
	}
	floorID, ok := pathID(c, "floorId")
	if !ok {
		return
	}

	if err := h.projectService.DeleteFloor(c.Request.Context(), caller, projectID, floorID); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.APIResponse(false, "Floor deleted successfully", nil))
}

func (h *ProjectHandler) AddQuadrant(c *gin.Context) {
	caller, ok := currentUser(c)
	if !ok {
		return
	}
	projectID, ok := pathID(c, "id")
	if !ok {
		return
	}
	floorID, ok := pathID(c, "floorId")
	if !ok {
		return
	}
	var req models.QuadrantRequest
	if !bindJSON(c, &req) {
		return
	}

	quadrant, err := h.projectService.AddQuadrant(c.Request.Context(), caller, projectID, floorID, req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, utils.APIResponse(false, "Quadrant added successfully", quadrant, http.StatusCreated))
}

func (h *ProjectHandler) UpdateQuadrant(c *gin.Context) {
	caller, ok := currentUser(c)
	if !ok {
		return
	}
	projectID, ok := pathID(c, "id")
	if !ok {
		return
	}
	floorID, ok := pathID(c, "floorId")
	if !ok {
		return
	}
	quadrantID, ok := pathID(c, "quadrantId")
	if !ok {
		return
	}
	var req models.QuadrantRequest
	if !bindJSON(c, &req) {
		return
	}

	quadrant, err := h.projectService.UpdateQuadrant(c.Request.Context(), caller, projectID, floorID, quadrantID, req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.APIResponse(false, "Quadrant updated successfully", quadrant))
}

func (h *ProjectHandler) DeleteQuadrant(c *gin.Context) {
	caller, ok := currentUser(c)
	if !ok {
		return
	}
	projectID, ok := pathID(c, "id")
	if !ok {
		return
	}
	floorID, ok := pathID(c, "floorId")
	if !ok {
		return
	}
	quadrantID, ok := pathID(c, "quadrantId")
	if !ok {
		return
	}

	if err := h.projectService.DeleteQuadrant(c.Request.Context(), caller, projectID, floorID, quadrantID); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.APIResponse(false, "Quadrant deleted successfully", nil))
}
