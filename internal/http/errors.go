package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"spiegelmatch/internal/service"
)

// writeServiceError traduce errores de servicio a status HTTP. Solo los 5xx se
// loguean como error; el mensaje interno nunca llega al cliente.
func writeServiceError(c *gin.Context, logger *zap.Logger, err error, op string) {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrCharacterNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "character not found"})
	case errors.Is(err, service.ErrRateLimited):
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "too many requests"})
	default:
		logger.Error(op+" failed", zap.Error(err), zap.String("request_id", requestID(c)))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not " + op})
	}
}

func badRequest(c *gin.Context, logger *zap.Logger, err error, what string) {
	logger.Warn("invalid "+what+" request", zap.Error(err), zap.String("request_id", requestID(c)))
	c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
}

func forbidden(c *gin.Context) {
	c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
}
