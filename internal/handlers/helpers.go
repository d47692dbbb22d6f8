package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"rebalancer/internal/allocation"
	apperrors "rebalancer/internal/errors"
	"rebalancer/internal/logger"
	"rebalancer/internal/services"
)

// getUserID extracts the authenticated user ID from the Gin context.
// Returns ErrUnauthorized if not present.
func getUserID(c *gin.Context) (string, error) {
	userID, exists := c.Get("userID")
	if !exists {
		return "", apperrors.ErrUnauthorized
	}
	return userID.(string), nil
}

// dateQuery returns the "date" query parameter, defaulting to the latest
// snapshot set.
func dateQuery(c *gin.Context) string {
	date := c.Query("date")
	if date == "" {
		return services.LatestDateQuery
	}
	return date
}

// parseDimensionParam parses the :dimension path parameter.
func parseDimensionParam(c *gin.Context) (allocation.Dimension, error) {
	dim, err := allocation.ParseDimension(c.Param("dimension"))
	if err != nil {
		return "", apperrors.ErrInvalidDimension
	}
	return dim, nil
}

// respondWithError writes a consistent JSON error response. If the error is an
// *AppError it uses the error's status code, code, and message. Otherwise it
// logs the unexpected error and returns a generic internal server error.
func respondWithError(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		if appErr.Internal != nil {
			logger.Get().Errorw("app error",
				"code", appErr.Code,
				"internal", appErr.Internal.Error(),
				"path", c.Request.URL.Path,
			)
		}
		c.JSON(appErr.StatusCode, gin.H{
			"error": gin.H{
				"code":    appErr.Code,
				"message": appErr.Message,
			},
		})
		return
	}

	logger.Get().Errorw("unexpected error",
		"error", err.Error(),
		"path", c.Request.URL.Path,
		"method", c.Request.Method,
	)
	c.JSON(apperrors.ErrInternalServer.StatusCode, gin.H{
		"error": gin.H{
			"code":    apperrors.ErrInternalServer.Code,
			"message": apperrors.ErrInternalServer.Message,
		},
	})
}

// ErrorDetail represents the inner error object in an error response.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}
