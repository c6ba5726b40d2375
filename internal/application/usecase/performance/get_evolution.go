package performance

import (
	"context"

	"github.com/kpi-tracker/backend/internal/application/adapter"
	"github.com/kpi-tracker/backend/internal/domain/entity"
)

// GetEvolutionInput represents the input for the evolution chart.
type GetEvolutionInput struct {
	Section  entity.Section
	GroupKey string
}

// GetEvolutionOutput represents the output of the evolution chart.
type GetEvolutionOutput struct {
	Group        *entity.Group
	ActiveMonths []int
	Series       EvolutionSeries
}

// GetEvolutionUseCase builds the monthly achievement series of a group.
type GetEvolutionUseCase struct {
	store   adapter.RecordStore
	catalog *entity.Catalog
	engine  *Engine
}

// NewGetEvolutionUseCase creates a new GetEvolutionUseCase instance.
func NewGetEvolutionUseCase(store adapter.RecordStore, catalog *entity.Catalog, engine *Engine) *GetEvolutionUseCase {
	return &GetEvolutionUseCase{
		store:   store,
		catalog: catalog,
		engine:  engine,
	}
}

// Execute computes the series from the current store contents.
func (uc *GetEvolutionUseCase) Execute(_ context.Context, input GetEvolutionInput) (*GetEvolutionOutput, error) {
	group, err := findGroup(uc.catalog, input.Section, input.GroupKey)
	if err != nil {
		return nil, err
	}

	records := uc.store.Records(input.Section)
	return &GetEvolutionOutput{
		Group:        group,
		ActiveMonths: uc.engine.ActiveMonths(records, group),
		Series:       uc.engine.Evolution(records, group),
	}, nil
}
