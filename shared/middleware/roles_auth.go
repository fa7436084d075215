package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/inmohub/listings/shared/constants"
	"github.com/inmohub/listings/shared/utils"
)

// RoleAuthorization is a coarse route gate. Per-resource decisions are made
// by the policy evaluator inside the services.
func RoleAuthorization(allowedRoles ...constants.RoleEnum) gin.HandlerFunc {
	roleSet := make(map[constants.RoleEnum]struct{})
	for _, r := range allowedRoles {
		roleSet[r] = struct{}{}
	}

	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, utils.APIResponse(true, "not authenticated", nil, http.StatusUnauthorized))
			return
		}

		if _, allowed := roleSet[user.Role]; !allowed {
			c.AbortWithStatusJSON(http.StatusForbidden, utils.APIResponse(true, "permission denied", nil, http.StatusForbidden))
			return
		}

		c.Next()
	}
}
