package record

import (
	"context"

	"github.com/kpi-tracker/backend/internal/application/adapter"
	"github.com/kpi-tracker/backend/internal/application/usecase/performance"
	"github.com/kpi-tracker/backend/internal/domain/entity"
)

// ListMonthStatusInput represents the input for the month overview.
type ListMonthStatusInput struct {
	Section entity.Section
}

// MonthState describes one month of a section. IsLocked is the explicit edit
// lock; HasData is the inferred activity used by the aggregations.
type MonthState struct {
	Month    int
	Name     string
	IsLocked bool
	HasData  bool
	// GroupsWithData lists the keys of the groups active in this month.
	GroupsWithData []string
}

// ListMonthStatusOutput represents the output of the month overview.
type ListMonthStatusOutput struct {
	Section      entity.Section
	Months       []MonthState
	ClosedMonths []int
}

// ListMonthStatusUseCase reports lock and activity flags for every month.
type ListMonthStatusUseCase struct {
	store   adapter.RecordStore
	catalog *entity.Catalog
	engine  *performance.Engine
}

// NewListMonthStatusUseCase creates a new ListMonthStatusUseCase instance.
func NewListMonthStatusUseCase(store adapter.RecordStore, catalog *entity.Catalog, engine *performance.Engine) *ListMonthStatusUseCase {
	return &ListMonthStatusUseCase{
		store:   store,
		catalog: catalog,
		engine:  engine,
	}
}

// Execute builds the overview.
func (uc *ListMonthStatusUseCase) Execute(_ context.Context, input ListMonthStatusInput) (*ListMonthStatusOutput, error) {
	if err := ValidateMonthKey(input.Section, 0); err != nil {
		return nil, err
	}

	output := &ListMonthStatusOutput{
		Section: input.Section,
		Months:  make([]MonthState, entity.MonthsPerYear),
	}
	for m := range output.Months {
		output.Months[m] = MonthState{
			Month:    m,
			Name:     entity.MonthNames[m],
			IsLocked: uc.store.IsLocked(input.Section, m),
		}
		if output.Months[m].IsLocked {
			output.ClosedMonths = append(output.ClosedMonths, m)
		}
	}

	records := uc.store.Records(input.Section)
	for _, group := range uc.catalog.GroupsForSection(input.Section) {
		activity := uc.engine.MonthActivity(records, group)
		for m, active := range activity {
			if active {
				output.Months[m].HasData = true
				output.Months[m].GroupsWithData = append(output.Months[m].GroupsWithData, group.Key)
			}
		}
	}

	return output, nil
}
