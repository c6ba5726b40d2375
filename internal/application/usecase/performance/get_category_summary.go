package performance

import (
	"context"

	"github.com/kpi-tracker/backend/internal/application/adapter"
	"github.com/kpi-tracker/backend/internal/domain/entity"
)

// GetCategorySummaryInput represents the input for the annual category summary.
type GetCategorySummaryInput struct {
	Section  entity.Section
	Category string
}

// GetCategorySummaryOutput represents the output of the annual category summary.
type GetCategorySummaryOutput struct {
	Section entity.Section
	Summary CategorySummary
}

// GetCategorySummaryUseCase totals a category across a section.
type GetCategorySummaryUseCase struct {
	store  adapter.RecordStore
	engine *Engine
}

// NewGetCategorySummaryUseCase creates a new GetCategorySummaryUseCase instance.
func NewGetCategorySummaryUseCase(store adapter.RecordStore, engine *Engine) *GetCategorySummaryUseCase {
	return &GetCategorySummaryUseCase{
		store:  store,
		engine: engine,
	}
}

// Execute computes the summary.
func (uc *GetCategorySummaryUseCase) Execute(_ context.Context, input GetCategorySummaryInput) (*GetCategorySummaryOutput, error) {
	if err := validateSection(input.Section); err != nil {
		return nil, err
	}
	if err := requireCategory(input.Category); err != nil {
		return nil, err
	}

	return &GetCategorySummaryOutput{
		Section: input.Section,
		Summary: uc.engine.CategorySummary(uc.store.Records(input.Section), input.Section, input.Category),
	}, nil
}
