package performance

import (
	"context"

	"github.com/kpi-tracker/backend/internal/application/adapter"
	"github.com/kpi-tracker/backend/internal/domain/entity"
	"github.com/kpi-tracker/backend/internal/domain/valueobject"
)

// GetLeaderboardInput represents the input for a group leaderboard.
type GetLeaderboardInput struct {
	Section  entity.Section
	GroupKey string
}

// GetLeaderboardOutput represents the output of a group leaderboard.
type GetLeaderboardOutput struct {
	Group        *entity.Group
	ActiveMonths []int
	Entries      []LeaderboardEntry
	// GroupScore is the mean overall percentage of Entries.
	GroupScore float64
	Bands      valueobject.StatusBands
}

// GetLeaderboardUseCase ranks the employees of a group.
type GetLeaderboardUseCase struct {
	store   adapter.RecordStore
	catalog *entity.Catalog
	engine  *Engine
	bands   valueobject.StatusBands
}

// NewGetLeaderboardUseCase creates a new GetLeaderboardUseCase instance.
func NewGetLeaderboardUseCase(store adapter.RecordStore, catalog *entity.Catalog, engine *Engine, bands valueobject.StatusBands) *GetLeaderboardUseCase {
	return &GetLeaderboardUseCase{
		store:   store,
		catalog: catalog,
		engine:  engine,
		bands:   bands,
	}
}

// Execute computes the leaderboard from the current store contents.
func (uc *GetLeaderboardUseCase) Execute(_ context.Context, input GetLeaderboardInput) (*GetLeaderboardOutput, error) {
	group, err := findGroup(uc.catalog, input.Section, input.GroupKey)
	if err != nil {
		return nil, err
	}

	records := uc.store.Records(input.Section)
	entries := uc.engine.Leaderboard(records, group)
	return &GetLeaderboardOutput{
		Group:        group,
		ActiveMonths: uc.engine.ActiveMonths(records, group),
		Entries:      entries,
		GroupScore:   GlobalScore(entries),
		Bands:        uc.bands,
	}, nil
}
