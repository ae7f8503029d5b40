package handlers

import (
	"net/http"

	"food-ordering-api/apperrors"
	"food-ordering-api/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const internalErrorMessage = "Internal server error"

// writeError maps err onto the {error} envelope. Anything that is not a
// typed application error is logged and reported generically.
func (h *Handler) writeError(c *gin.Context, err error) {
	status := apperrors.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		_ = c.Error(err)
		h.logger.Error("request failed",
			zap.String("path", c.FullPath()),
			zap.String("request_id", middleware.GetRequestID(c)),
			zap.Error(err),
		)
		c.JSON(status, gin.H{"error": internalErrorMessage})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// bindJSON decodes the body into req and reports malformed JSON as a 400.
func (h *Handler) bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		h.logger.Debug("invalid request body", zap.Error(err))
		h.writeError(c, apperrors.NewValidationError("Invalid request body"))
		return false
	}
	return true
}
