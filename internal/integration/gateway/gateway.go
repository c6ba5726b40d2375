// Package gateway implements the Sync Gateway: it loads the KPI snapshot from
// the remote store and pushes edits back, falling back to a local cache.
package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/kpi-tracker/backend/internal/application/adapter"
	"github.com/kpi-tracker/backend/internal/domain/entity"
	domainerror "github.com/kpi-tracker/backend/internal/domain/error"
	"github.com/kpi-tracker/backend/internal/integration/entrypoint/dto"
)

// Fallback cache keys.
const (
	KeyData   = "backup_data"
	KeyStatus = "backup_status"
)

// Source tells where a loaded snapshot came from.
type Source string

const (
	SourceRemote Source = "remote"
	SourceCache  Source = "cache"
	SourceEmpty  Source = "empty"
)

// Gateway mediates between the Record Store and the remote store.
type Gateway struct {
	remote adapter.RemoteStore
	cache  adapter.SnapshotCache
}

// NewGateway creates a new Gateway. cache may be nil, in which case there is
// no fallback.
func NewGateway(remote adapter.RemoteStore, cache adapter.SnapshotCache) *Gateway {
	return &Gateway{
		remote: remote,
		cache:  cache,
	}
}

// Load fetches the snapshot from the remote store and mirrors it to the cache.
// When the remote fails it reads the cache, and when that fails too it returns
// an empty snapshot. It never fails.
func (g *Gateway) Load(ctx context.Context) (*entity.Snapshot, Source) {
	snapshot, err := g.remote.Load(ctx)
	if err == nil {
		dropNonFinite(snapshot, SourceRemote)
		g.mirror(ctx, snapshot)
		return snapshot, SourceRemote
	}
	slog.Warn("Remote load failed, falling back to cache", "error", err)

	snapshot, err = g.loadCache(ctx)
	if err == nil {
		dropNonFinite(snapshot, SourceCache)
		return snapshot, SourceCache
	}
	slog.Warn("Cache load failed, starting empty", "error", err)

	return &entity.Snapshot{}, SourceEmpty
}

// Push writes the job payload to the cache, then to the remote store.
func (g *Gateway) Push(ctx context.Context, job *entity.SyncJob) error {
	switch job.Action {
	case entity.SyncActionSaveData:
		g.put(ctx, KeyData, dto.ToSaveDataRows(job.Records))
		if err := g.remote.SaveData(ctx, job.Records); err != nil {
			return fmt.Errorf("push %d records: %w", len(job.Records), err)
		}
	case entity.SyncActionSaveStatus:
		g.put(ctx, KeyStatus, dto.ToSaveStatusRows(job.Statuses))
		if err := g.remote.SaveStatus(ctx, job.Statuses); err != nil {
			return fmt.Errorf("push %d statuses: %w", len(job.Statuses), err)
		}
	default:
		return domainerror.NewRecordError(
			domainerror.ErrCodeUnknownAction,
			"unknown sync action "+string(job.Action),
			domainerror.ErrUnknownAction,
		)
	}
	return nil
}

// dropNonFinite removes records whose value is NaN or infinite. The lenient
// decoder accepts them and the aggregation math cannot.
func dropNonFinite(snapshot *entity.Snapshot, source Source) {
	kept := snapshot.Records[:0]
	for _, r := range snapshot.Records {
		if r.IsFinite() {
			kept = append(kept, r)
			continue
		}
		slog.Warn("Dropping record with non-finite value",
			"source", source,
			"employee_id", r.EmployeeID,
			"section", r.Section,
			"month", r.Month,
			"category", r.Category,
		)
	}
	snapshot.Records = kept
}

func (g *Gateway) mirror(ctx context.Context, snapshot *entity.Snapshot) {
	g.put(ctx, KeyData, dto.ToSaveDataRows(snapshot.Records))
	g.put(ctx, KeyStatus, dto.ToSaveStatusRows(snapshot.Statuses))
}

func (g *Gateway) put(ctx context.Context, key string, payload any) {
	if g.cache == nil {
		return
	}
	body, err := json.Marshal(payload)
	if err != nil {
		slog.Error("Failed to encode cache payload", "key", key, "error", err)
		return
	}
	if err := g.cache.Put(ctx, key, body); err != nil {
		slog.Warn("Failed to write fallback cache", "key", key, "error", err)
	}
}

// loadCache rebuilds a snapshot from the cached payloads. A missing status key
// is tolerated; a missing data key is not.
func (g *Gateway) loadCache(ctx context.Context) (*entity.Snapshot, error) {
	if g.cache == nil {
		return nil, domainerror.ErrCacheMiss
	}

	rawData, err := g.cache.Get(ctx, KeyData)
	if err != nil {
		return nil, err
	}
	var rows []dto.SaveDataRow
	if err := json.Unmarshal(rawData, &rows); err != nil {
		return nil, fmt.Errorf("decode %s: %w", KeyData, err)
	}

	snapshot := &entity.Snapshot{Records: dto.RecordsFromSaveDataRows(rows)}

	rawStatus, err := g.cache.Get(ctx, KeyStatus)
	switch {
	case errors.Is(err, domainerror.ErrCacheMiss):
		return snapshot, nil
	case err != nil:
		return nil, err
	}
	var statusRows []dto.SaveStatusRow
	if err := json.Unmarshal(rawStatus, &statusRows); err != nil {
		return nil, fmt.Errorf("decode %s: %w", KeyStatus, err)
	}
	snapshot.Statuses = dto.StatusesFromSaveStatusRows(statusRows)

	return snapshot, nil
}
