package dto

import (
	"github.com/kpi-tracker/backend/internal/application/usecase/record"
)

// UpdateRecordRequest represents the request body for upserting one record.
type UpdateRecordRequest struct {
	EmployeeID string   `json:"employee_id" binding:"required"`
	Month      *int     `json:"month" binding:"required,min=0,max=11"`
	Category   string   `json:"category" binding:"required"`
	Section    string   `json:"section" binding:"required"`
	Value      *float64 `json:"value" binding:"required"`
}

// RecordResponse represents a stored record.
type RecordResponse struct {
	EmployeeID string  `json:"employee_id"`
	Month      int     `json:"month"`
	Category   string  `json:"category"`
	Section    string  `json:"section"`
	Value      float64 `json:"value"`
	Queued     bool    `json:"queued"`
}

// MonthLockResponse represents the lock flag after a toggle.
type MonthLockResponse struct {
	Section  string `json:"section"`
	Month    int    `json:"month"`
	IsLocked bool   `json:"is_locked"`
	Queued   bool   `json:"queued"`
}

// MonthStateResponse is one month of a section.
type MonthStateResponse struct {
	Month          int      `json:"month"`
	Name           string   `json:"name"`
	IsLocked       bool     `json:"is_locked"`
	HasData        bool     `json:"has_data"`
	GroupsWithData []string `json:"groups_with_data"`
}

// MonthStatusListResponse represents the month list of a section.
type MonthStatusListResponse struct {
	Section      string               `json:"section"`
	Months       []MonthStateResponse `json:"months"`
	ClosedMonths []int                `json:"closed_months"`
}

// ToRecordResponse converts an upsert result.
func ToRecordResponse(output *record.UpdateRecordOutput) RecordResponse {
	r := output.Record
	return RecordResponse{
		EmployeeID: r.EmployeeID,
		Month:      r.Month,
		Category:   r.Category,
		Section:    string(r.Section),
		Value:      r.Actual,
		Queued:     output.Queued,
	}
}

// ToMonthLockResponse converts a toggle result.
func ToMonthLockResponse(output *record.ToggleMonthLockOutput) MonthLockResponse {
	return MonthLockResponse{
		Section:  string(output.Section),
		Month:    output.Month,
		IsLocked: output.IsLocked,
		Queued:   output.Queued,
	}
}

// ToMonthStatusListResponse converts the month list of a section.
func ToMonthStatusListResponse(output *record.ListMonthStatusOutput) MonthStatusListResponse {
	response := MonthStatusListResponse{
		Section:      string(output.Section),
		Months:       make([]MonthStateResponse, len(output.Months)),
		ClosedMonths: nonNilInts(output.ClosedMonths),
	}
	for i, m := range output.Months {
		response.Months[i] = MonthStateResponse{
			Month:          m.Month,
			Name:           m.Name,
			IsLocked:       m.IsLocked,
			HasData:        m.HasData,
			GroupsWithData: nonNil(m.GroupsWithData),
		}
	}
	return response
}
