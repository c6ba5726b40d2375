package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/kpi-tracker/backend/internal/application/usecase/record"
	"github.com/kpi-tracker/backend/internal/domain/entity"
	domainerror "github.com/kpi-tracker/backend/internal/domain/error"
	"github.com/kpi-tracker/backend/internal/integration/entrypoint/dto"
)

// RecordController handles record edits and month locks.
type RecordController struct {
	updateUseCase     *record.UpdateRecordUseCase
	toggleLockUseCase *record.ToggleMonthLockUseCase
	listMonthsUseCase *record.ListMonthStatusUseCase
}

// NewRecordController creates a new record controller instance.
func NewRecordController(
	updateUseCase *record.UpdateRecordUseCase,
	toggleLockUseCase *record.ToggleMonthLockUseCase,
	listMonthsUseCase *record.ListMonthStatusUseCase,
) *RecordController {
	return &RecordController{
		updateUseCase:     updateUseCase,
		toggleLockUseCase: toggleLockUseCase,
		listMonthsUseCase: listMonthsUseCase,
	}
}

// Update handles PUT /records requests.
func (c *RecordController) Update(ctx *gin.Context) {
	var req dto.UpdateRecordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
			Code:  string(domainerror.ErrCodeInvalidPayload),
		})
		return
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), record.UpdateRecordInput{
		EmployeeID: req.EmployeeID,
		Month:      *req.Month,
		Category:   req.Category,
		Section:    entity.Section(req.Section),
		Actual:     *req.Value,
	})
	if err != nil {
		handleDomainError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToRecordResponse(output))
}

// ToggleLock handles POST /sections/:section/months/:month/lock requests.
func (c *RecordController) ToggleLock(ctx *gin.Context) {
	month, err := strconv.Atoi(ctx.Param("month"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "month must be an integer between 0 and 11",
			Code:  string(domainerror.ErrCodeRecordInvalidMonth),
		})
		return
	}

	output, err := c.toggleLockUseCase.Execute(ctx.Request.Context(), record.ToggleMonthLockInput{
		Section: entity.Section(ctx.Param("section")),
		Month:   month,
	})
	if err != nil {
		handleDomainError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToMonthLockResponse(output))
}

// ListMonths handles GET /sections/:section/months requests.
func (c *RecordController) ListMonths(ctx *gin.Context) {
	output, err := c.listMonthsUseCase.Execute(ctx.Request.Context(), record.ListMonthStatusInput{
		Section: entity.Section(ctx.Param("section")),
	})
	if err != nil {
		handleDomainError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToMonthStatusListResponse(output))
}
