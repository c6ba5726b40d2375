package adapter

import (
	"context"

	"github.com/kpi-tracker/backend/internal/domain/entity"
)

// RemoteStore is the durable backend behind the Sync Gateway.
type RemoteStore interface {
	// Load fetches the full snapshot.
	Load(ctx context.Context) (*entity.Snapshot, error)

	// SaveData upserts records.
	SaveData(ctx context.Context, records []entity.MonthlyRecord) error

	// SaveStatus upserts month statuses.
	SaveStatus(ctx context.Context, statuses []entity.MonthStatus) error
}

// SnapshotCache is the local key-value mirror used when the remote store
// cannot be reached.
type SnapshotCache interface {
	// Put stores value under key.
	Put(ctx context.Context, key string, value []byte) error

	// Get returns the value stored under key, or domainerror.ErrCacheMiss.
	Get(ctx context.Context, key string) ([]byte, error)

	// Ping reports whether the cache is reachable.
	Ping(ctx context.Context) error
}

// SyncPublisher accepts persist jobs without blocking the caller.
type SyncPublisher interface {
	// Enqueue schedules job and reports whether it was accepted.
	Enqueue(job *entity.SyncJob) bool
}
