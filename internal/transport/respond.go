package transport

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"yaarfetch-be/internal/apperr"
	"yaarfetch-be/internal/logger"
)

// respondError maps a core error to its HTTP status and a stable error
// code. Internal errors never leak their message to the client.
func respondError(c *gin.Context, err error) {
	status := apperr.HTTPStatus(err)
	message := err.Error()

	if status == http.StatusInternalServerError {
		logger.FromCtx(c.Request.Context()).Error("unhandled error", zap.Error(err))
		message = "internal server error"
	}

	c.JSON(status, gin.H{
		"error": gin.H{
			"code":    apperr.KindOf(err).String(),
			"message": message,
		},
	})
}

func respondValidation(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"error": gin.H{
			"code":    apperr.KindValidation.String(),
			"message": "invalid request data",
			"details": err.Error(),
		},
	})
}
