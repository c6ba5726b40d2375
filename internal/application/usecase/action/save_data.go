package action

import (
	"context"

	"github.com/kpi-tracker/backend/internal/application/adapter"
	"github.com/kpi-tracker/backend/internal/application/usecase/record"
	"github.com/kpi-tracker/backend/internal/domain/entity"
	domainerror "github.com/kpi-tracker/backend/internal/domain/error"
)

// SaveDataInput represents the input for saveData.
type SaveDataInput struct {
	Records []entity.MonthlyRecord
}

// SaveDataOutput represents the output of saveData.
type SaveDataOutput struct {
	Saved int
}

// SaveDataUseCase upserts a batch of records into the database.
type SaveDataUseCase struct {
	recordRepo adapter.MonthlyRecordRepository
	store      adapter.RecordStore
}

// NewSaveDataUseCase creates a new SaveDataUseCase instance. store may be nil;
// when set, saved records are applied to it so dashboards see them immediately.
func NewSaveDataUseCase(recordRepo adapter.MonthlyRecordRepository, store adapter.RecordStore) *SaveDataUseCase {
	return &SaveDataUseCase{
		recordRepo: recordRepo,
		store:      store,
	}
}

// Execute validates every record, then writes the batch in one transaction.
func (uc *SaveDataUseCase) Execute(ctx context.Context, input SaveDataInput) (*SaveDataOutput, error) {
	for _, r := range input.Records {
		if err := record.ValidateRecord(r); err != nil {
			return nil, err
		}
	}

	if len(input.Records) == 0 {
		return &SaveDataOutput{}, nil
	}

	if err := uc.recordRepo.UpsertBatch(ctx, input.Records); err != nil {
		return nil, domainerror.NewRecordError(
			domainerror.ErrCodeRecordPersistFailed,
			"failed to persist records",
			err,
		)
	}

	if uc.store != nil {
		for _, r := range input.Records {
			uc.store.Upsert(r)
		}
	}

	return &SaveDataOutput{Saved: len(input.Records)}, nil
}
