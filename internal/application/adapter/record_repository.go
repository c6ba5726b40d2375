package adapter

import (
	"context"

	"github.com/kpi-tracker/backend/internal/domain/entity"
)

// MonthlyRecordRepository defines persistence operations for monthly records.
type MonthlyRecordRepository interface {
	// UpsertBatch writes records in one transaction, replacing the actual
	// value of rows that already exist for the composite key.
	UpsertBatch(ctx context.Context, records []entity.MonthlyRecord) error

	// FindAll returns every stored record.
	FindAll(ctx context.Context) ([]entity.MonthlyRecord, error)

	// CountByKey returns how many rows exist for key.
	CountByKey(ctx context.Context, key entity.RecordKey) (int64, error)
}

// MonthStatusRepository defines persistence operations for month lock flags.
type MonthStatusRepository interface {
	// UpsertBatch writes statuses in one transaction keyed by month and section.
	UpsertBatch(ctx context.Context, statuses []entity.MonthStatus) error

	// FindAll returns every stored status.
	FindAll(ctx context.Context) ([]entity.MonthStatus, error)
}
