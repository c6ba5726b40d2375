package controller

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kpi-tracker/backend/internal/application/usecase/action"
	domainerror "github.com/kpi-tracker/backend/internal/domain/error"
	"github.com/kpi-tracker/backend/internal/integration/entrypoint/dto"
)

// ActionController serves the single action endpoint used by the dashboard
// client: loadData, saveData and saveStatus.
type ActionController struct {
	loadDataUseCase   *action.LoadDataUseCase
	saveDataUseCase   *action.SaveDataUseCase
	saveStatusUseCase *action.SaveStatusUseCase
}

// NewActionController creates a new action controller instance.
func NewActionController(
	loadDataUseCase *action.LoadDataUseCase,
	saveDataUseCase *action.SaveDataUseCase,
	saveStatusUseCase *action.SaveStatusUseCase,
) *ActionController {
	return &ActionController{
		loadDataUseCase:   loadDataUseCase,
		saveDataUseCase:   saveDataUseCase,
		saveStatusUseCase: saveStatusUseCase,
	}
}

// Get handles GET /api?action=loadData requests.
func (c *ActionController) Get(ctx *gin.Context) {
	name := ctx.Query("action")
	if name != dto.ActionLoadData {
		c.unknownAction(ctx, name)
		return
	}
	c.loadData(ctx)
}

// Post handles POST /api requests carrying {action, payload}.
func (c *ActionController) Post(ctx *gin.Context) {
	var req dto.ActionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ActionResponse{
			Error: "Invalid request body: " + err.Error(),
		})
		return
	}

	switch req.Action {
	case dto.ActionLoadData:
		c.loadData(ctx)
	case dto.ActionSaveData:
		c.saveData(ctx, req.Payload)
	case dto.ActionSaveStatus:
		c.saveStatus(ctx, req.Payload)
	default:
		c.unknownAction(ctx, req.Action)
	}
}

func (c *ActionController) loadData(ctx *gin.Context) {
	output, err := c.loadDataUseCase.Execute(ctx.Request.Context())
	if err != nil {
		c.handleActionError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ToLoadDataResponse(output.Snapshot))
}

func (c *ActionController) saveData(ctx *gin.Context, payload json.RawMessage) {
	var rows []dto.SaveDataRow
	if err := decodePayload(payload, &rows); err != nil {
		c.handleActionError(ctx, err)
		return
	}

	output, err := c.saveDataUseCase.Execute(ctx.Request.Context(), action.SaveDataInput{
		Records: dto.RecordsFromSaveDataRows(rows),
	})
	if err != nil {
		c.handleActionError(ctx, err)
		return
	}

	slog.Info("saveData applied", "rows", output.Saved)
	ctx.JSON(http.StatusOK, dto.ActionResponse{Success: true})
}

func (c *ActionController) saveStatus(ctx *gin.Context, payload json.RawMessage) {
	var rows []dto.SaveStatusRow
	if err := decodePayload(payload, &rows); err != nil {
		c.handleActionError(ctx, err)
		return
	}

	output, err := c.saveStatusUseCase.Execute(ctx.Request.Context(), action.SaveStatusInput{
		Statuses: dto.StatusesFromSaveStatusRows(rows),
	})
	if err != nil {
		c.handleActionError(ctx, err)
		return
	}

	slog.Info("saveStatus applied", "rows", output.Saved)
	ctx.JSON(http.StatusOK, dto.ActionResponse{Success: true})
}

func (c *ActionController) unknownAction(ctx *gin.Context, name string) {
	ctx.JSON(http.StatusBadRequest, dto.ActionResponse{
		Error: domainerror.ErrUnknownAction.Error() + ": " + name,
	})
}

// handleActionError replies in the {error} shape the action client expects.
func (c *ActionController) handleActionError(ctx *gin.Context, err error) {
	status := http.StatusInternalServerError
	message := "An internal error occurred"

	var recErr *domainerror.RecordError
	if errors.As(err, &recErr) {
		status = statusCodeForRecordError(recErr.Code)
		message = recErr.Message
	}
	if status == http.StatusInternalServerError {
		slog.Error("action failed", "error", err)
	}

	ctx.JSON(status, dto.ActionResponse{Error: message})
}

// decodePayload accepts a missing or null payload as an empty batch.
func decodePayload(payload json.RawMessage, v any) error {
	if len(payload) == 0 || string(payload) == "null" {
		return nil
	}
	if err := json.Unmarshal(payload, v); err != nil {
		return domainerror.NewRecordError(
			domainerror.ErrCodeInvalidPayload,
			"invalid payload: "+err.Error(),
			err,
		)
	}
	return nil
}
