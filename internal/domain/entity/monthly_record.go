package entity

import "math"

// MonthlyRecord is the atomic fact: one entered value for an employee,
// month, category and section.
type MonthlyRecord struct {
	EmployeeID string
	Month      int
	Category   string
	Section    Section
	Actual     float64
}

// RecordKey is the composite key of a MonthlyRecord.
type RecordKey struct {
	EmployeeID string
	Month      int
	Category   string
	Section    Section
}

// Key returns the composite key of the record.
func (r MonthlyRecord) Key() RecordKey {
	return RecordKey{
		EmployeeID: r.EmployeeID,
		Month:      r.Month,
		Category:   r.Category,
		Section:    r.Section,
	}
}

// MonthStatus is the lock flag for a month of a section. IsFilled means the
// month is closed for editing.
type MonthStatus struct {
	Month    int
	Section  Section
	IsFilled bool
}

// StatusKey is the composite key of a MonthStatus.
type StatusKey struct {
	Month   int
	Section Section
}

// Key returns the composite key of the status.
func (s MonthStatus) Key() StatusKey {
	return StatusKey{Month: s.Month, Section: s.Section}
}

// Snapshot is the full mutable state: every record and every month status.
type Snapshot struct {
	Records  []MonthlyRecord
	Statuses []MonthStatus
}

// IsFinite reports whether Actual is a real number, neither NaN nor infinite.
func (r MonthlyRecord) IsFinite() bool {
	return !math.IsNaN(r.Actual) && !math.IsInf(r.Actual, 0)
}
