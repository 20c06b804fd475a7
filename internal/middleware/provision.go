package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"yaarfetch-be/internal/logger"
)

// UserProvisioner creates the local user row backing an externally
// issued identity.
type UserProvisioner interface {
	EnsureUser(ctx context.Context, userID string) error
}

// ProvisionUser inserts the users row for a verified identity the
// first time it is seen. Identities from the provider are trusted as
// issued; every entity table references users by foreign key, so the
// row must exist before the first write.
func ProvisionUser(users UserProvisioner) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := GetUserID(c)
		if err != nil {
			c.Next()
			return
		}

		if err := users.EnsureUser(c.Request.Context(), userID); err != nil {
			logger.FromCtx(c.Request.Context()).Error("failed to provision user",
				zap.String("user_id", userID),
				zap.Error(err),
			)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"error": gin.H{
					"code":    "INTERNAL",
					"message": "internal server error",
				},
			})
			return
		}

		c.Next()
	}
}
