package controller

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	domainerror "github.com/kpi-tracker/backend/internal/domain/error"
	"github.com/kpi-tracker/backend/internal/integration/entrypoint/dto"
)

// handleDomainError maps typed domain errors to HTTP responses.
func handleDomainError(ctx *gin.Context, err error) {
	var perfErr *domainerror.PerformanceError
	if errors.As(err, &perfErr) {
		ctx.JSON(statusCodeForPerformanceError(perfErr.Code), dto.ErrorResponse{
			Error: perfErr.Message,
			Code:  string(perfErr.Code),
		})
		return
	}

	var recErr *domainerror.RecordError
	if errors.As(err, &recErr) {
		status := statusCodeForRecordError(recErr.Code)
		if status == http.StatusInternalServerError {
			slog.Error("record operation failed", "code", recErr.Code, "error", err)
		}
		ctx.JSON(status, dto.ErrorResponse{
			Error: recErr.Message,
			Code:  string(recErr.Code),
		})
		return
	}

	slog.Error("unhandled error", "path", ctx.Request.URL.Path, "error", err)
	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

// statusCodeForPerformanceError maps performance error codes to HTTP status codes.
func statusCodeForPerformanceError(code domainerror.PerformanceErrorCode) int {
	switch code {
	case domainerror.ErrCodeUnknownSection, domainerror.ErrCodeGroupNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeInvalidMonth,
		domainerror.ErrCodeMissingCategory,
		domainerror.ErrCodeUnsupportedExportFormat:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// statusCodeForRecordError maps record error codes to HTTP status codes.
func statusCodeForRecordError(code domainerror.RecordErrorCode) int {
	switch code {
	case domainerror.ErrCodeMissingEmployee,
		domainerror.ErrCodeRecordInvalidMonth,
		domainerror.ErrCodeRecordUnknownSection,
		domainerror.ErrCodeRecordMissingCategory,
		domainerror.ErrCodeUnknownAction,
		domainerror.ErrCodeInvalidPayload,
		domainerror.ErrCodeRecordInvalidValue:
		return http.StatusBadRequest
	case domainerror.ErrCodeMonthLocked:
		return http.StatusConflict
	case domainerror.ErrCodeRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}
