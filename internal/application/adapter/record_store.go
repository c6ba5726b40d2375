// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import "github.com/kpi-tracker/backend/internal/domain/entity"

// RecordStore holds the mutable KPI state shared by every request.
// Writes are last-write-wins per composite key.
type RecordStore interface {
	// Upsert inserts or replaces the record with the same composite key.
	Upsert(record entity.MonthlyRecord)

	// Get returns the actual value stored for key.
	Get(key entity.RecordKey) (float64, bool)

	// Records returns every record of section.
	Records(section entity.Section) []entity.MonthlyRecord

	// Statuses returns the stored month statuses of section.
	Statuses(section entity.Section) []entity.MonthStatus

	// IsLocked reports whether month of section is closed for editing.
	IsLocked(section entity.Section, month int) bool

	// SetLock stores the lock flag of month.
	SetLock(section entity.Section, month int, locked bool)

	// ToggleLock flips the lock flag of month and returns the new value.
	ToggleLock(section entity.Section, month int) bool

	// Snapshot returns a copy of the full state.
	Snapshot() *entity.Snapshot

	// Replace swaps the full state for snapshot.
	Replace(snapshot *entity.Snapshot)
}
