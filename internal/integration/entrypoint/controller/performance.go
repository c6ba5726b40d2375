package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/kpi-tracker/backend/internal/application/usecase/performance"
	"github.com/kpi-tracker/backend/internal/domain/entity"
	domainerror "github.com/kpi-tracker/backend/internal/domain/error"
	"github.com/kpi-tracker/backend/internal/integration/entrypoint/dto"
)

// PerformanceController handles the dashboard read endpoints.
type PerformanceController struct {
	listSectionsUseCase       *performance.ListSectionsUseCase
	evolutionUseCase          *performance.GetEvolutionUseCase
	leaderboardUseCase        *performance.GetLeaderboardUseCase
	sectionPerformanceUseCase *performance.GetSectionPerformanceUseCase
	categoryGridUseCase       *performance.GetCategoryGridUseCase
	categorySummaryUseCase    *performance.GetCategorySummaryUseCase
	resolveTargetUseCase      *performance.ResolveTargetUseCase
}

// NewPerformanceController creates a new performance controller instance.
func NewPerformanceController(
	listSectionsUseCase *performance.ListSectionsUseCase,
	evolutionUseCase *performance.GetEvolutionUseCase,
	leaderboardUseCase *performance.GetLeaderboardUseCase,
	sectionPerformanceUseCase *performance.GetSectionPerformanceUseCase,
	categoryGridUseCase *performance.GetCategoryGridUseCase,
	categorySummaryUseCase *performance.GetCategorySummaryUseCase,
	resolveTargetUseCase *performance.ResolveTargetUseCase,
) *PerformanceController {
	return &PerformanceController{
		listSectionsUseCase:       listSectionsUseCase,
		evolutionUseCase:          evolutionUseCase,
		leaderboardUseCase:        leaderboardUseCase,
		sectionPerformanceUseCase: sectionPerformanceUseCase,
		categoryGridUseCase:       categoryGridUseCase,
		categorySummaryUseCase:    categorySummaryUseCase,
		resolveTargetUseCase:      resolveTargetUseCase,
	}
}

// ListSections handles GET /sections requests.
func (c *PerformanceController) ListSections(ctx *gin.Context) {
	output, err := c.listSectionsUseCase.Execute(ctx.Request.Context())
	if err != nil {
		handleDomainError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ToSectionListResponse(output))
}

// Evolution handles GET /sections/:section/groups/:group/evolution requests.
func (c *PerformanceController) Evolution(ctx *gin.Context) {
	output, err := c.evolutionUseCase.Execute(ctx.Request.Context(), performance.GetEvolutionInput{
		Section:  entity.Section(ctx.Param("section")),
		GroupKey: ctx.Param("group"),
	})
	if err != nil {
		handleDomainError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ToEvolutionResponse(output))
}

// Leaderboard handles GET /sections/:section/groups/:group/leaderboard requests.
func (c *PerformanceController) Leaderboard(ctx *gin.Context) {
	output, err := c.leaderboardUseCase.Execute(ctx.Request.Context(), performance.GetLeaderboardInput{
		Section:  entity.Section(ctx.Param("section")),
		GroupKey: ctx.Param("group"),
	})
	if err != nil {
		handleDomainError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ToLeaderboardResponse(output))
}

// SectionPerformance handles GET /sections/:section/performance requests.
func (c *PerformanceController) SectionPerformance(ctx *gin.Context) {
	output, err := c.sectionPerformanceUseCase.Execute(ctx.Request.Context(), performance.GetSectionPerformanceInput{
		Section: entity.Section(ctx.Param("section")),
	})
	if err != nil {
		handleDomainError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ToSectionPerformanceResponse(output))
}

// CategoryGrid handles GET /sections/:section/groups/:group/categories/:category/grid requests.
func (c *PerformanceController) CategoryGrid(ctx *gin.Context) {
	output, err := c.categoryGridUseCase.Execute(ctx.Request.Context(), performance.GetCategoryGridInput{
		Section:  entity.Section(ctx.Param("section")),
		GroupKey: ctx.Param("group"),
		Category: ctx.Param("category"),
	})
	if err != nil {
		handleDomainError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ToCategoryGridResponse(output))
}

// CategorySummary handles GET /sections/:section/categories/:category/summary requests.
func (c *PerformanceController) CategorySummary(ctx *gin.Context) {
	output, err := c.categorySummaryUseCase.Execute(ctx.Request.Context(), performance.GetCategorySummaryInput{
		Section:  entity.Section(ctx.Param("section")),
		Category: ctx.Param("category"),
	})
	if err != nil {
		handleDomainError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ToCategorySummaryResponse(output))
}

// ResolveTarget handles GET /targets requests.
func (c *PerformanceController) ResolveTarget(ctx *gin.Context) {
	month, err := strconv.Atoi(ctx.Query("month"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "month must be an integer between 0 and 11",
			Code:  string(domainerror.ErrCodeInvalidMonth),
		})
		return
	}

	input := performance.ResolveTargetInput{
		Category:   ctx.Query("category"),
		Month:      month,
		Section:    entity.Section(ctx.Query("section")),
		EmployeeID: ctx.Query("employee_id"),
	}
	output, err := c.resolveTargetUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleDomainError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.TargetResponse{
		Category:   input.Category,
		Month:      input.Month,
		Section:    string(input.Section),
		EmployeeID: input.EmployeeID,
		Kind:       string(output.Kind),
		Target:     output.Target,
	})
}
