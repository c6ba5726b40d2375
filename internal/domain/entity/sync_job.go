package entity

import (
	"time"

	"github.com/google/uuid"
)

// SyncAction names the remote operation a sync job performs.
type SyncAction string

const (
	SyncActionSaveData   SyncAction = "saveData"
	SyncActionSaveStatus SyncAction = "saveStatus"
)

// SyncJob is a fire-and-forget persist request for the Sync Gateway.
type SyncJob struct {
	ID        uuid.UUID
	Action    SyncAction
	Records   []MonthlyRecord
	Statuses  []MonthStatus
	CreatedAt time.Time
}

// NewSaveDataJob creates a job that pushes the given records.
func NewSaveDataJob(records []MonthlyRecord) *SyncJob {
	return &SyncJob{
		ID:        uuid.New(),
		Action:    SyncActionSaveData,
		Records:   records,
		CreatedAt: time.Now().UTC(),
	}
}

// NewSaveStatusJob creates a job that pushes the given month statuses.
func NewSaveStatusJob(statuses []MonthStatus) *SyncJob {
	return &SyncJob{
		ID:        uuid.New(),
		Action:    SyncActionSaveStatus,
		Statuses:  statuses,
		CreatedAt: time.Now().UTC(),
	}
}
