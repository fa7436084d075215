package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/inmohub/listings/listings-service/services"
	"github.com/inmohub/listings/shared/models"
	"github.com/inmohub/listings/shared/utils"
)

// UserHandler handles platform user management
type UserHandler struct {
	userService services.UserService
}

func NewUserHandler(userService services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

func (h *UserHandler) Create(c *gin.Context) {
	caller, ok := currentUser(c)
	if !ok {
		return
	}
	var req models.CreateUserRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.userService.Create(c.Request.Context(), caller, req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, utils.APIResponse(false, "User created successfully", user, http.StatusCreated))
}

func (h *UserHandler) List(c *gin.Context) {
	caller, ok := currentUser(c)
	if !ok {
		return
	}
	var filter models.UserFilter
	if !bindQuery(c, &filter) {
		return
	}

	page, err := h.userService.List(c.Request.Context(), caller, filter)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.APIResponse(false, "Users fetched successfully", page))
}

func (h *UserHandler) Get(c *gin.Context) {
	caller, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	user, err := h.userService.Get(c.Request.Context(), caller, id)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.APIResponse(false, "User fetched successfully", user))
}

func (h *UserHandler) Update(c *gin.Context) {
	caller, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req models.UpdateUserRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.userService.Update(c.Request.Context(), caller, id, req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.APIResponse(false, "User updated successfully", user))
}

func (h *UserHandler) SetActive(c *gin.Context) {
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

	user, err := h.userService.SetActive(c.Request.Context(), caller, id, *req.Active)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.APIResponse(false, "User status updated", user))
}

func (h *UserHandler) Delete(c *gin.Context) {
	caller, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.userService.Delete(c.Request.Context(), caller, id); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.APIResponse(false, "User deleted successfully", nil))
}
