package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/learnhub/internal/app/models/dto"
	"github.com/yigit/learnhub/internal/pkg/apperrors"
	"github.com/yigit/learnhub/internal/pkg/logger"
)

// HandleAPIError maps service errors onto HTTP responses. Unknown errors are
// logged and reported as a generic 500.
func HandleAPIError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrValidationFailed):
		abortWithError(c, http.StatusBadRequest, dto.ErrorCodeValidationFailed, apperrors.Message(err, "Validation failed"))
	case errors.Is(err, apperrors.ErrBadRequest):
		abortWithError(c, http.StatusBadRequest, dto.ErrorCodeBadRequest, apperrors.Message(err, "Bad request"))
	case errors.Is(err, apperrors.ErrTokenExpired):
		abortWithError(c, http.StatusUnauthorized, dto.ErrorCodeExpiredToken, "Token expired")
	case errors.Is(err, apperrors.ErrTokenInvalid):
		abortWithError(c, http.StatusUnauthorized, dto.ErrorCodeInvalidToken, "Invalid token")
	case errors.Is(err, apperrors.ErrTokenNotFound):
		abortWithError(c, http.StatusUnauthorized, dto.ErrorCodeTokenNotFound, "Authentication required")
	case errors.Is(err, apperrors.ErrPermissionDenied):
		abortWithError(c, http.StatusForbidden, dto.ErrorCodeForbidden, apperrors.Message(err, "Permission denied"))
	case errors.Is(err, apperrors.ErrResourceNotFound):
		abortWithError(c, http.StatusNotFound, dto.ErrorCodeResourceNotFound, apperrors.Message(err, "Resource not found"))
	case errors.Is(err, apperrors.ErrResourceAlreadyExists):
		abortWithError(c, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, apperrors.Message(err, "Resource already exists"))
	case errors.Is(err, apperrors.ErrConflict):
		abortWithError(c, http.StatusConflict, dto.ErrorCodeConflict, apperrors.Message(err, "Conflicting change"))
	case errors.Is(err, apperrors.ErrStorageUnavailable):
		logger.Warn().Err(err).Str("path", c.FullPath()).Msg("Object storage unavailable")
		abortWithError(c, http.StatusServiceUnavailable, dto.ErrorCodeExternalServiceError, "File storage is not available")
	default:
		logger.Error().Err(err).
			Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Str("requestID", c.GetString(RequestIDKey)).
			Msg("Unhandled error")
		abortWithError(c, http.StatusInternalServerError, dto.ErrorCodeInternalServer, "Internal server error")
	}
}

func abortWithError(c *gin.Context, status int, code dto.ErrorCode, msg string) {
	c.AbortWithStatusJSON(status, dto.NewErrorResponse(code, msg))
}
