package performance

import (
	"context"

	"github.com/kpi-tracker/backend/internal/application/adapter"
	"github.com/kpi-tracker/backend/internal/domain/entity"
	"github.com/kpi-tracker/backend/internal/domain/valueobject"
)

// GetSectionPerformanceInput represents the input for the section score.
type GetSectionPerformanceInput struct {
	Section entity.Section
}

// GroupPerformance is the leaderboard of one group inside the section score.
type GroupPerformance struct {
	Group   *entity.Group
	Entries []LeaderboardEntry
	Score   float64
}

// GetSectionPerformanceOutput represents the output of the section score.
type GetSectionPerformanceOutput struct {
	Section entity.Section
	// GlobalScore is the mean overall percentage of every leaderboard entry
	// in the section, regardless of group size.
	GlobalScore float64
	Groups      []GroupPerformance
	Bands       valueobject.StatusBands
}

// GetSectionPerformanceUseCase computes the global performance of a section.
type GetSectionPerformanceUseCase struct {
	store   adapter.RecordStore
	catalog *entity.Catalog
	engine  *Engine
	bands   valueobject.StatusBands
}

// NewGetSectionPerformanceUseCase creates a new GetSectionPerformanceUseCase instance.
func NewGetSectionPerformanceUseCase(store adapter.RecordStore, catalog *entity.Catalog, engine *Engine, bands valueobject.StatusBands) *GetSectionPerformanceUseCase {
	return &GetSectionPerformanceUseCase{
		store:   store,
		catalog: catalog,
		engine:  engine,
		bands:   bands,
	}
}

// Execute computes every group leaderboard of the section and their global mean.
func (uc *GetSectionPerformanceUseCase) Execute(_ context.Context, input GetSectionPerformanceInput) (*GetSectionPerformanceOutput, error) {
	if err := validateSection(input.Section); err != nil {
		return nil, err
	}

	records := uc.store.Records(input.Section)
	output := &GetSectionPerformanceOutput{
		Section: input.Section,
		Bands:   uc.bands,
	}

	var all []LeaderboardEntry
	for _, group := range uc.catalog.GroupsForSection(input.Section) {
		entries := uc.engine.Leaderboard(records, group)
		output.Groups = append(output.Groups, GroupPerformance{
			Group:   group,
			Entries: entries,
			Score:   GlobalScore(entries),
		})
		all = append(all, entries...)
	}
	output.GlobalScore = GlobalScore(all)

	return output, nil
}
