package performance

import (
	"github.com/kpi-tracker/backend/internal/domain/entity"
	"github.com/kpi-tracker/backend/internal/domain/valueobject"
)

// recordIndex gives constant-time access to actual values by composite key.
type recordIndex map[entity.RecordKey]float64

func newRecordIndex(records []entity.MonthlyRecord) recordIndex {
	idx := make(recordIndex, len(records))
	for _, r := range records {
		idx[r.Key()] = r.Actual
	}
	return idx
}

func (idx recordIndex) value(employeeID string, month int, category string, section entity.Section) float64 {
	return idx[entity.RecordKey{
		EmployeeID: employeeID,
		Month:      month,
		Category:   category,
		Section:    section,
	}]
}

// sumOver adds the actual values of one employee and category over months.
func (idx recordIndex) sumOver(employeeID, category string, section entity.Section, months []int) float64 {
	values := make([]float64, 0, len(months))
	for _, m := range months {
		values = append(values, idx.value(employeeID, m, category, section))
	}
	return valueobject.Sum(values...)
}
