package record

import (
	"context"
	"log/slog"

	"github.com/kpi-tracker/backend/internal/application/adapter"
	"github.com/kpi-tracker/backend/internal/domain/entity"
)

// ToggleMonthLockInput represents the input for flipping a month lock.
type ToggleMonthLockInput struct {
	Section entity.Section
	Month   int
}

// ToggleMonthLockOutput represents the output of flipping a month lock.
type ToggleMonthLockOutput struct {
	Section  entity.Section
	Month    int
	IsLocked bool
	Queued   bool
}

// ToggleMonthLockUseCase closes or reopens a month for editing.
type ToggleMonthLockUseCase struct {
	store     adapter.RecordStore
	publisher adapter.SyncPublisher
}

// NewToggleMonthLockUseCase creates a new ToggleMonthLockUseCase instance.
func NewToggleMonthLockUseCase(store adapter.RecordStore, publisher adapter.SyncPublisher) *ToggleMonthLockUseCase {
	return &ToggleMonthLockUseCase{
		store:     store,
		publisher: publisher,
	}
}

// Execute flips the flag and enqueues a full status push.
func (uc *ToggleMonthLockUseCase) Execute(_ context.Context, input ToggleMonthLockInput) (*ToggleMonthLockOutput, error) {
	if err := ValidateMonthKey(input.Section, input.Month); err != nil {
		return nil, err
	}

	locked := uc.store.ToggleLock(input.Section, input.Month)

	snapshot := uc.store.Snapshot()
	queued := uc.publisher.Enqueue(entity.NewSaveStatusJob(snapshot.Statuses))
	if !queued {
		slog.Warn("Sync queue full, month status kept in memory only",
			"section", input.Section,
			"month", input.Month,
		)
	}

	return &ToggleMonthLockOutput{
		Section:  input.Section,
		Month:    input.Month,
		IsLocked: locked,
		Queued:   queued,
	}, nil
}
