package record

import (
	"context"
	"log/slog"

	"github.com/kpi-tracker/backend/internal/application/adapter"
	"github.com/kpi-tracker/backend/internal/domain/entity"
	domainerror "github.com/kpi-tracker/backend/internal/domain/error"
)

// UpdateRecordInput represents the input for a single record edit.
type UpdateRecordInput struct {
	EmployeeID string
	Month      int
	Category   string
	Section    entity.Section
	Actual     float64
}

// UpdateRecordOutput represents the output of a record edit.
type UpdateRecordOutput struct {
	Record entity.MonthlyRecord
	// Queued is false when the persist job was dropped because the sync queue was full.
	Queued bool
}

// UpdateRecordUseCase upserts one record and schedules its persistence.
type UpdateRecordUseCase struct {
	store     adapter.RecordStore
	publisher adapter.SyncPublisher
}

// NewUpdateRecordUseCase creates a new UpdateRecordUseCase instance.
func NewUpdateRecordUseCase(store adapter.RecordStore, publisher adapter.SyncPublisher) *UpdateRecordUseCase {
	return &UpdateRecordUseCase{
		store:     store,
		publisher: publisher,
	}
}

// Execute applies the edit to the store and enqueues a full data push.
// The caller never waits for the remote write.
func (uc *UpdateRecordUseCase) Execute(_ context.Context, input UpdateRecordInput) (*UpdateRecordOutput, error) {
	rec := entity.MonthlyRecord{
		EmployeeID: input.EmployeeID,
		Month:      input.Month,
		Category:   input.Category,
		Section:    input.Section,
		Actual:     input.Actual,
	}
	if err := ValidateRecord(rec); err != nil {
		return nil, err
	}

	if uc.store.IsLocked(rec.Section, rec.Month) {
		return nil, domainerror.NewRecordError(
			domainerror.ErrCodeMonthLocked,
			"month is locked for editing",
			domainerror.ErrMonthLocked,
		)
	}

	uc.store.Upsert(rec)

	snapshot := uc.store.Snapshot()
	queued := uc.publisher.Enqueue(entity.NewSaveDataJob(snapshot.Records))
	if !queued {
		slog.Warn("Sync queue full, record kept in memory only",
			"employee_id", rec.EmployeeID,
			"section", rec.Section,
			"month", rec.Month,
		)
	}

	return &UpdateRecordOutput{
		Record: rec,
		Queued: queued,
	}, nil
}
