package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/studentsvc/internal/app/models/dto"
	"github.com/yigit/studentsvc/internal/pkg/apperrors"
)

// HandleAPIError maps service errors onto HTTP responses.
// Not-found keeps the plain {"message": ...} body clients of the student API expect.
func HandleAPIError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrResourceNotFound):
		c.JSON(http.StatusNotFound, dto.NewMessageResponse(apperrors.Message(err, "Resource not found")))
	case apperrors.Is(err, apperrors.ErrValidationFailed, apperrors.ErrBadRequest):
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, apperrors.Message(err, "Validation failed")),
		))
	case errors.Is(err, apperrors.ErrDatabaseUnavailable):
		GetLogger(c).Error().Err(err).Msg("Database unavailable")
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeDatabaseError, "Database unavailable").
				WithSeverity(dto.ErrorSeverityCritical),
		))
	default:
		GetLogger(c).Error().Err(err).Msg("Unhandled API error")
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error").
				WithSeverity(dto.ErrorSeverityCritical),
		))
	}
	_ = c.Error(err)
}
