// Package memory provides the in-process Record Store.
package memory

import (
	"sort"
	"sync"

	"github.com/kpi-tracker/backend/internal/application/adapter"
	"github.com/kpi-tracker/backend/internal/domain/entity"
)

// recordStore implements the adapter.RecordStore interface.
type recordStore struct {
	mu       sync.RWMutex
	records  map[entity.RecordKey]float64
	statuses map[entity.StatusKey]bool
}

// NewRecordStore creates an empty record store.
func NewRecordStore() adapter.RecordStore {
	return &recordStore{
		records:  make(map[entity.RecordKey]float64),
		statuses: make(map[entity.StatusKey]bool),
	}
}

// Upsert inserts or replaces the record with the same composite key.
func (s *recordStore) Upsert(record entity.MonthlyRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[record.Key()] = record.Actual
}

// Get returns the actual value stored for key.
func (s *recordStore) Get(key entity.RecordKey) (float64, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.records[key]
	return v, ok
}

// Records returns every record of section ordered by employee, month and category.
func (s *recordStore) Records(section entity.Section) []entity.MonthlyRecord {
	s.mu.RLock()
	out := make([]entity.MonthlyRecord, 0)
	for key, actual := range s.records {
		if key.Section == section {
			out = append(out, toRecord(key, actual))
		}
	}
	s.mu.RUnlock()

	sortRecords(out)
	return out
}

// Statuses returns the stored month statuses of section ordered by month.
func (s *recordStore) Statuses(section entity.Section) []entity.MonthStatus {
	s.mu.RLock()
	out := make([]entity.MonthStatus, 0)
	for key, filled := range s.statuses {
		if key.Section == section {
			out = append(out, entity.MonthStatus{Month: key.Month, Section: key.Section, IsFilled: filled})
		}
	}
	s.mu.RUnlock()

	sortStatuses(out)
	return out
}

// IsLocked reports whether month of section is closed. Absent statuses are open.
func (s *recordStore) IsLocked(section entity.Section, month int) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.statuses[entity.StatusKey{Month: month, Section: section}]
}

// SetLock stores the lock flag of month.
func (s *recordStore) SetLock(section entity.Section, month int, locked bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.statuses[entity.StatusKey{Month: month, Section: section}] = locked
}

// ToggleLock flips the lock flag of month and returns the new value.
func (s *recordStore) ToggleLock(section entity.Section, month int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := entity.StatusKey{Month: month, Section: section}
	s.statuses[key] = !s.statuses[key]
	return s.statuses[key]
}

// Snapshot returns a copy of the full state.
func (s *recordStore) Snapshot() *entity.Snapshot {
	s.mu.RLock()
	snapshot := &entity.Snapshot{
		Records:  make([]entity.MonthlyRecord, 0, len(s.records)),
		Statuses: make([]entity.MonthStatus, 0, len(s.statuses)),
	}
	for key, actual := range s.records {
		snapshot.Records = append(snapshot.Records, toRecord(key, actual))
	}
	for key, filled := range s.statuses {
		snapshot.Statuses = append(snapshot.Statuses, entity.MonthStatus{Month: key.Month, Section: key.Section, IsFilled: filled})
	}
	s.mu.RUnlock()

	sortRecords(snapshot.Records)
	sortStatuses(snapshot.Statuses)
	return snapshot
}

// Replace swaps the full state for snapshot. Later duplicates win.
func (s *recordStore) Replace(snapshot *entity.Snapshot) {
	records := make(map[entity.RecordKey]float64)
	statuses := make(map[entity.StatusKey]bool)
	if snapshot != nil {
		for _, r := range snapshot.Records {
			records[r.Key()] = r.Actual
		}
		for _, st := range snapshot.Statuses {
			statuses[st.Key()] = st.IsFilled
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = records
	s.statuses = statuses
}

func toRecord(key entity.RecordKey, actual float64) entity.MonthlyRecord {
	return entity.MonthlyRecord{
		EmployeeID: key.EmployeeID,
		Month:      key.Month,
		Category:   key.Category,
		Section:    key.Section,
		Actual:     actual,
	}
}

func sortRecords(records []entity.MonthlyRecord) {
	sort.Slice(records, func(i, j int) bool {
		a, b := records[i], records[j]
		if a.Section != b.Section {
			return a.Section < b.Section
		}
		if a.EmployeeID != b.EmployeeID {
			return a.EmployeeID < b.EmployeeID
		}
		if a.Month != b.Month {
			return a.Month < b.Month
		}
		return a.Category < b.Category
	})
}

func sortStatuses(statuses []entity.MonthStatus) {
	sort.Slice(statuses, func(i, j int) bool {
		if statuses[i].Section != statuses[j].Section {
			return statuses[i].Section < statuses[j].Section
		}
		return statuses[i].Month < statuses[j].Month
	})
}
