package controller

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kpi-tracker/backend/internal/application/usecase/performance"
	"github.com/kpi-tracker/backend/internal/domain/entity"
	"github.com/kpi-tracker/backend/internal/integration/export"
)

// ExportController serves leaderboard downloads.
type ExportController struct {
	leaderboardUseCase *performance.GetLeaderboardUseCase
}

// NewExportController creates a new export controller instance.
func NewExportController(leaderboardUseCase *performance.GetLeaderboardUseCase) *ExportController {
	return &ExportController{leaderboardUseCase: leaderboardUseCase}
}

// Leaderboard handles GET /sections/:section/groups/:group/leaderboard/export requests.
func (c *ExportController) Leaderboard(ctx *gin.Context) {
	format, err := export.ParseFormat(ctx.DefaultQuery("format", string(export.FormatXLSX)))
	if err != nil {
		handleDomainError(ctx, err)
		return
	}

	output, err := c.leaderboardUseCase.Execute(ctx.Request.Context(), performance.GetLeaderboardInput{
		Section:  entity.Section(ctx.Param("section")),
		GroupKey: ctx.Param("group"),
	})
	if err != nil {
		handleDomainError(ctx, err)
		return
	}

	// Rendered to a buffer so a failure can still be reported as JSON.
	var buf bytes.Buffer
	if err := export.Write(&buf, format, output); err != nil {
		handleDomainError(ctx, err)
		return
	}

	filename := fmt.Sprintf("leaderboard_%s_%s.%s", output.Group.Section, output.Group.Key, format)
	ctx.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	ctx.Data(http.StatusOK, format.ContentType(), buf.Bytes())
}
