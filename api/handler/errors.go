package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/use-agent/ldgen/cache"
	"github.com/use-agent/ldgen/models"
)

// respondError maps err to an HTTP status and writes a structured JSON error
// response.
func respondError(c *gin.Context, err error) {
	var schemaErr *models.SchemaError
	switch {
	case errors.As(err, &schemaErr):
	case errors.Is(err, cache.ErrNotFound):
		schemaErr = models.NewSchemaError(models.ErrCodeNotFound, "batch not found or expired", err)
	default:
		schemaErr = models.NewSchemaError(models.ErrCodeInternal, err.Error(), err)
	}

	c.JSON(mapErrorToStatus(schemaErr), models.ErrorResponse{Error: schemaErr.ToDetail()})
}

// badRequest writes an INVALID_INPUT error, typically for binding failures.
func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Error: &models.ErrorDetail{Code: models.ErrCodeInvalidInput, Message: msg},
	})
}

// mapErrorToStatus translates error codes to HTTP status codes.
func mapErrorToStatus(e *models.SchemaError) int {
	switch e.Code {
	case models.ErrCodeEmptyBatch, models.ErrCodeBatchTooLarge,
		models.ErrCodeInvalidURL, models.ErrCodeInvalidInput:
		return http.StatusBadRequest // 400
	case models.ErrCodeNothingToExport:
		return http.StatusUnprocessableEntity // 422
	case models.ErrCodeNotFound:
		return http.StatusNotFound // 404
	case models.ErrCodeRateLimited:
		return http.StatusTooManyRequests // 429
	default:
		return http.StatusInternalServerError // 500
	}
}
