package action

import (
	"context"

	"github.com/kpi-tracker/backend/internal/application/adapter"
	"github.com/kpi-tracker/backend/internal/application/usecase/record"
	"github.com/kpi-tracker/backend/internal/domain/entity"
	domainerror "github.com/kpi-tracker/backend/internal/domain/error"
)

// SaveStatusInput represents the input for saveStatus.
type SaveStatusInput struct {
	Statuses []entity.MonthStatus
}

// SaveStatusOutput represents the output of saveStatus.
type SaveStatusOutput struct {
	Saved int
}

// SaveStatusUseCase upserts a batch of month statuses into the database.
type SaveStatusUseCase struct {
	statusRepo adapter.MonthStatusRepository
	store      adapter.RecordStore
}

// NewSaveStatusUseCase creates a new SaveStatusUseCase instance. store may be nil.
func NewSaveStatusUseCase(statusRepo adapter.MonthStatusRepository, store adapter.RecordStore) *SaveStatusUseCase {
	return &SaveStatusUseCase{
		statusRepo: statusRepo,
		store:      store,
	}
}

// Execute validates every status, then writes the batch in one transaction.
func (uc *SaveStatusUseCase) Execute(ctx context.Context, input SaveStatusInput) (*SaveStatusOutput, error) {
	for _, st := range input.Statuses {
		if err := record.ValidateMonthKey(st.Section, st.Month); err != nil {
			return nil, err
		}
	}

	if len(input.Statuses) == 0 {
		return &SaveStatusOutput{}, nil
	}

	if err := uc.statusRepo.UpsertBatch(ctx, input.Statuses); err != nil {
		return nil, domainerror.NewRecordError(
			domainerror.ErrCodeRecordPersistFailed,
			"failed to persist month statuses",
			err,
		)
	}

	if uc.store != nil {
		for _, st := range input.Statuses {
			uc.store.SetLock(st.Section, st.Month, st.IsFilled)
		}
	}

	return &SaveStatusOutput{Saved: len(input.Statuses)}, nil
}
