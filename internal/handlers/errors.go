package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ArowuTest/lottery-results-backend/internal/middleware"
	"github.com/ArowuTest/lottery-results-backend/internal/services"
)

// respondError maps service errors to status codes. Unknown errors are
// logged and reported as 500 without details.
func respondError(c *gin.Context, logger *slog.Logger, err error) {
	switch {
	case errors.Is(err, services.ErrResultNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrInvalidID),
		errors.Is(err, services.ErrInvalidResult),
		errors.Is(err, services.ErrInvalidTicket),
		errors.Is(err, services.ErrEmptyText):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	default:
		_ = c.Error(err)
		logger.Error("http.handler.failed",
			"requestId", c.GetString(middleware.ContextRequestID),
			"path", c.FullPath(),
			"error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
