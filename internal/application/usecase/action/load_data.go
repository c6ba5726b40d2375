// Package action contains the use cases behind the action-dispatched endpoint.
package action

import (
	"context"
	"fmt"

	"github.com/kpi-tracker/backend/internal/application/adapter"
	"github.com/kpi-tracker/backend/internal/domain/entity"
)

// LoadDataOutput represents the output of loadData.
type LoadDataOutput struct {
	Snapshot *entity.Snapshot
}

// LoadDataUseCase reads every record and month status from the database.
type LoadDataUseCase struct {
	recordRepo adapter.MonthlyRecordRepository
	statusRepo adapter.MonthStatusRepository
}

// NewLoadDataUseCase creates a new LoadDataUseCase instance.
func NewLoadDataUseCase(recordRepo adapter.MonthlyRecordRepository, statusRepo adapter.MonthStatusRepository) *LoadDataUseCase {
	return &LoadDataUseCase{
		recordRepo: recordRepo,
		statusRepo: statusRepo,
	}
}

// Execute loads the full snapshot.
func (uc *LoadDataUseCase) Execute(ctx context.Context) (*LoadDataOutput, error) {
	records, err := uc.recordRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load monthly records: %w", err)
	}

	statuses, err := uc.statusRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load month statuses: %w", err)
	}

	return &LoadDataOutput{
		Snapshot: &entity.Snapshot{
			Records:  records,
			Statuses: statuses,
		},
	}, nil
}
