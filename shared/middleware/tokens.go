package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/inmohub/listings/shared/models"
	"github.com/inmohub/listings/shared/utils"
)

const currentUserKey = "currentUser"

// IdentityResolver maps a verified external identity to the local user. A nil
// user with a nil error means the identity is unknown.
type IdentityResolver interface {
	Resolve(ctx context.Context, identity utils.Identity) (*models.User, error)
}

type TokenVerifier struct {
	Secret []byte
	Issuer string
}

func AuthMiddleware(verifier TokenVerifier, resolver IdentityResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, utils.APIResponse(true, "missing Authorization header", nil, http.StatusUnauthorized))
			return
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenStr == authHeader {
			c.AbortWithStatusJSON(http.StatusUnauthorized, utils.APIResponse(true, "invalid Authorization header format", nil, http.StatusUnauthorized))
			return
		}

		identity, err := utils.ParseJWT(tokenStr, verifier.Secret, verifier.Issuer)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, utils.APIResponse(true, err.Error(), nil, http.StatusUnauthorized))
			return
		}

		user, err := resolver.Resolve(c.Request.Context(), *identity)
		if err != nil {
			slog.Error("identity resolution failed", "external_id", identity.ExternalID, "error", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, utils.APIResponse(true, "internal error", nil, http.StatusInternalServerError))
			return
		}
		if user == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, utils.APIResponse(true, "user not found", nil, http.StatusUnauthorized))
			return
		}
		if !user.Active {
			c.AbortWithStatusJSON(http.StatusUnauthorized, utils.APIResponse(true, "user is not active", nil, http.StatusUnauthorized))
			return
		}

		c.Set(currentUserKey, user)
		c.Next()
	}
}

// CurrentUser returns the user attached by AuthMiddleware.
func CurrentUser(c *gin.Context) (*models.User, bool) {
	value, exists := c.Get(currentUserKey)
	if !exists {
		return nil, false
	}
	user, ok := value.(*models.User)
	return user, ok && user != nil
}

// SetCurrentUser attaches user to the request context.
func SetCurrentUser(c *gin.Context, user *models.User) {
	c.Set(currentUserKey, user)
}
