package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/inmohub/listings/shared/utils"
)

type MeHandler struct{}

func NewMeHandler() *MeHandler {
	return &MeHandler{}
}

// Me returns the profile resolved for the bearer token.
func (h *MeHandler) Me(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, utils.APIResponse(false, "Profile fetched successfully", user))
}
