// Package record contains the use cases that mutate the KPI state.
package record

import (
	"strings"

	"github.com/kpi-tracker/backend/internal/domain/entity"
	domainerror "github.com/kpi-tracker/backend/internal/domain/error"
)

// ValidateRecord checks the composite key and the value of a record.
func ValidateRecord(r entity.MonthlyRecord) error {
	if strings.TrimSpace(r.EmployeeID) == "" {
		return domainerror.NewRecordError(
			domainerror.ErrCodeMissingEmployee,
			"employee id is required",
			domainerror.ErrMissingEmployee,
		)
	}
	if !entity.IsValidMonth(r.Month) {
		return domainerror.NewRecordError(
			domainerror.ErrCodeRecordInvalidMonth,
			"month must be between 0 and 11",
			domainerror.ErrRecordInvalidMonth,
		)
	}
	if strings.TrimSpace(r.Category) == "" {
		return domainerror.NewRecordError(
			domainerror.ErrCodeRecordMissingCategory,
			"category is required",
			domainerror.ErrRecordMissingCategory,
		)
	}
	if !r.IsFinite() {
		return domainerror.NewRecordError(
			domainerror.ErrCodeRecordInvalidValue,
			"value must be a finite number",
			domainerror.ErrRecordInvalidValue,
		)
	}
	return ValidateMonthKey(r.Section, r.Month)
}

// ValidateMonthKey checks the section and month of a lock flag.
func ValidateMonthKey(section entity.Section, month int) error {
	if !section.IsValid() {
		return domainerror.NewRecordError(
			domainerror.ErrCodeRecordUnknownSection,
			"unknown section "+string(section),
			domainerror.ErrRecordUnknownSection,
		)
	}
	if !entity.IsValidMonth(month) {
		return domainerror.NewRecordError(
			domainerror.ErrCodeRecordInvalidMonth,
			"month must be between 0 and 11",
			domainerror.ErrRecordInvalidMonth,
		)
	}
	return nil
}
