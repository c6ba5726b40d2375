package gateway

import (
	"context"
	"fmt"

	"github.com/kpi-tracker/backend/internal/application/adapter"
	"github.com/kpi-tracker/backend/internal/domain/entity"
)

// databaseRemote implements adapter.RemoteStore on the local repositories.
type databaseRemote struct {
	records  adapter.MonthlyRecordRepository
	statuses adapter.MonthStatusRepository
}

// NewDatabaseRemote creates a remote store backed by the database.
func NewDatabaseRemote(records adapter.MonthlyRecordRepository, statuses adapter.MonthStatusRepository) adapter.RemoteStore {
	return &databaseRemote{
		records:  records,
		statuses: statuses,
	}
}

// Load reads every record and status.
func (r *databaseRemote) Load(ctx context.Context) (*entity.Snapshot, error) {
	records, err := r.records.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load records: %w", err)
	}
	statuses, err := r.statuses.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load statuses: %w", err)
	}
	return &entity.Snapshot{Records: records, Statuses: statuses}, nil
}

// SaveData upserts records.
func (r *databaseRemote) SaveData(ctx context.Context, records []entity.MonthlyRecord) error {
	return r.records.UpsertBatch(ctx, records)
}

// SaveStatus upserts statuses.
func (r *databaseRemote) SaveStatus(ctx context.Context, statuses []entity.MonthStatus) error {
	return r.statuses.UpsertBatch(ctx, statuses)
}
