package performance

import (
	"context"

	"github.com/kpi-tracker/backend/internal/application/adapter"
	"github.com/kpi-tracker/backend/internal/domain/entity"
	"github.com/kpi-tracker/backend/internal/domain/valueobject"
)

// GetCategoryGridInput represents the input for the category grid.
type GetCategoryGridInput struct {
	Section  entity.Section
	GroupKey string
	Category string
}

// GetCategoryGridOutput represents the output of the category grid.
type GetCategoryGridOutput struct {
	Group    *entity.Group
	Category string
	Kind     entity.CategoryKind
	Rows     []GridRow
	Bands    valueobject.StatusBands
}

// GetCategoryGridUseCase builds the editable monthly grid of one category.
type GetCategoryGridUseCase struct {
	store   adapter.RecordStore
	catalog *entity.Catalog
	engine  *Engine
	bands   valueobject.StatusBands
}

// NewGetCategoryGridUseCase creates a new GetCategoryGridUseCase instance.
func NewGetCategoryGridUseCase(store adapter.RecordStore, catalog *entity.Catalog, engine *Engine, bands valueobject.StatusBands) *GetCategoryGridUseCase {
	return &GetCategoryGridUseCase{
		store:   store,
		catalog: catalog,
		engine:  engine,
		bands:   bands,
	}
}

// Execute computes the grid.
func (uc *GetCategoryGridUseCase) Execute(_ context.Context, input GetCategoryGridInput) (*GetCategoryGridOutput, error) {
	if err := requireCategory(input.Category); err != nil {
		return nil, err
	}
	group, err := findGroup(uc.catalog, input.Section, input.GroupKey)
	if err != nil {
		return nil, err
	}

	records := uc.store.Records(input.Section)
	statuses := uc.store.Statuses(input.Section)
	return &GetCategoryGridOutput{
		Group:    group,
		Category: input.Category,
		Kind:     uc.catalog.KindOf(input.Category),
		Rows:     uc.engine.CategoryGrid(records, statuses, group, input.Category),
		Bands:    uc.bands,
	}, nil
}
