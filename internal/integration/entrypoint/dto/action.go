package dto

import (
	"bytes"
	"encoding/json"

	"github.com/kpi-tracker/backend/internal/domain/entity"
)

// Action names accepted by the action endpoint.
const (
	ActionLoadData   = "loadData"
	ActionSaveData   = "saveData"
	ActionSaveStatus = "saveStatus"
)

// ActionRequest is the POST body of the action endpoint.
type ActionRequest struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload"`
}

// ActionResponse is the reply to a mutating action.
type ActionResponse struct {
	Success bool   `json:"success,omitempty"`
	Error   string `json:"error,omitempty"`
}

// SaveDataRow is one element of the saveData payload.
type SaveDataRow struct {
	EmployeeID string    `json:"employeeId"`
	Month      FlexInt   `json:"month"`
	Category   string    `json:"category"`
	Section    string    `json:"section"`
	Value      FlexFloat `json:"value"`
}

// SaveStatusRow is one element of the saveStatus payload.
type SaveStatusRow struct {
	MonthIdx FlexInt  `json:"month_idx"`
	Section  string   `json:"section"`
	IsFilled FlexBool `json:"is_filled"`
}

// MonthlyDataRow is one row of the loadData monthly_data list.
type MonthlyDataRow struct {
	EmployeeID  string    `json:"employee_id"`
	MonthIdx    FlexInt   `json:"month_idx"`
	Category    string    `json:"category"`
	Section     string    `json:"section"`
	ActualValue FlexFloat `json:"actual_value"`
}

// MonthStatusRow is one row of the loadData month_status list.
type MonthStatusRow struct {
	MonthIdx FlexInt  `json:"month_idx"`
	Section  string   `json:"section"`
	IsFilled FlexBool `json:"is_filled"`
}

// LoadDataResponse is the reply to loadData.
type LoadDataResponse struct {
	MonthlyData []MonthlyDataRow `json:"monthly_data"`
	MonthStatus []MonthStatusRow `json:"month_status"`
}

// ToLoadDataResponse converts a snapshot to the loadData reply.
func ToLoadDataResponse(snapshot *entity.Snapshot) LoadDataResponse {
	response := LoadDataResponse{
		MonthlyData: make([]MonthlyDataRow, len(snapshot.Records)),
		MonthStatus: make([]MonthStatusRow, len(snapshot.Statuses)),
	}
	for i, r := range snapshot.Records {
		response.MonthlyData[i] = MonthlyDataRow{
			EmployeeID:  r.EmployeeID,
			MonthIdx:    FlexInt(r.Month),
			Category:    r.Category,
			Section:     string(r.Section),
			ActualValue: FlexFloat(r.Actual),
		}
	}
	for i, s := range snapshot.Statuses {
		response.MonthStatus[i] = MonthStatusRow{
			MonthIdx: FlexInt(s.Month),
			Section:  string(s.Section),
			IsFilled: FlexBool(s.IsFilled),
		}
	}
	return response
}

// ToSnapshot converts a loadData reply to a snapshot.
func (r LoadDataResponse) ToSnapshot() *entity.Snapshot {
	snapshot := &entity.Snapshot{
		Records:  make([]entity.MonthlyRecord, len(r.MonthlyData)),
		Statuses: make([]entity.MonthStatus, len(r.MonthStatus)),
	}
	for i, row := range r.MonthlyData {
		snapshot.Records[i] = entity.MonthlyRecord{
			EmployeeID: row.EmployeeID,
			Month:      int(row.MonthIdx),
			Category:   row.Category,
			Section:    entity.Section(row.Section),
			Actual:     float64(row.ActualValue),
		}
	}
	for i, row := range r.MonthStatus {
		snapshot.Statuses[i] = entity.MonthStatus{
			Month:    int(row.MonthIdx),
			Section:  entity.Section(row.Section),
			IsFilled: bool(row.IsFilled),
		}
	}
	return snapshot
}

// ToSaveDataRows converts records to the saveData payload.
func ToSaveDataRows(records []entity.MonthlyRecord) []SaveDataRow {
	rows := make([]SaveDataRow, len(records))
	for i, r := range records {
		rows[i] = SaveDataRow{
			EmployeeID: r.EmployeeID,
			Month:      FlexInt(r.Month),
			Category:   r.Category,
			Section:    string(r.Section),
			Value:      FlexFloat(r.Actual),
		}
	}
	return rows
}

// RecordsFromSaveDataRows converts the saveData payload to records.
func RecordsFromSaveDataRows(rows []SaveDataRow) []entity.MonthlyRecord {
	records := make([]entity.MonthlyRecord, len(rows))
	for i, row := range rows {
		records[i] = entity.MonthlyRecord{
			EmployeeID: row.EmployeeID,
			Month:      int(row.Month),
			Category:   row.Category,
			Section:    entity.Section(row.Section),
			Actual:     float64(row.Value),
		}
	}
	return records
}

// ToSaveStatusRows converts statuses to the saveStatus payload.
func ToSaveStatusRows(statuses []entity.MonthStatus) []SaveStatusRow {
	rows := make([]SaveStatusRow, len(statuses))
	for i, s := range statuses {
		rows[i] = SaveStatusRow{
			MonthIdx: FlexInt(s.Month),
			Section:  string(s.Section),
			IsFilled: FlexBool(s.IsFilled),
		}
	}
	return rows
}

// StatusesFromSaveStatusRows converts the saveStatus payload to statuses.
func StatusesFromSaveStatusRows(rows []SaveStatusRow) []entity.MonthStatus {
	statuses := make([]entity.MonthStatus, len(rows))
	for i, row := range rows {
		statuses[i] = entity.MonthStatus{
			Month:    int(row.MonthIdx),
			Section:  entity.Section(row.Section),
			IsFilled: bool(row.IsFilled),
		}
	}
	return statuses
}

// ExtractJSONObject returns the bytes between the first '{' and the last '}',
// dropping any noise a remote endpoint printed around its JSON body.
func ExtractJSONObject(body []byte) ([]byte, bool) {
	start := bytes.IndexByte(body, '{')
	end := bytes.LastIndexByte(body, '}')
	if start < 0 || end < start {
		return nil, false
	}
	return body[start : end+1], true
}
