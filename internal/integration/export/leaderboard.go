// Package export renders leaderboards as spreadsheet downloads.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/xuri/excelize/v2"

	"github.com/kpi-tracker/backend/internal/application/usecase/performance"
	domainerror "github.com/kpi-tracker/backend/internal/domain/error"
	"github.com/kpi-tracker/backend/internal/domain/valueobject"
)

// Format is a supported export format.
type Format string

const (
	FormatXLSX Format = "xlsx"
	FormatCSV  Format = "csv"
)

const (
	rankingSheet = "Ranking"
	detailSheet  = "Detalle"
)

// ParseFormat validates a format name. An empty name means xlsx.
func ParseFormat(name string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(name))) {
	case "", FormatXLSX:
		return FormatXLSX, nil
	case FormatCSV:
		return FormatCSV, nil
	default:
		return "", domainerror.NewPerformanceError(
			domainerror.ErrCodeUnsupportedExportFormat,
			"unsupported export format "+name,
			domainerror.ErrUnsupportedExportFormat,
		)
	}
}

// ContentType returns the MIME type of the format.
func (f Format) ContentType() string {
	if f == FormatCSV {
		return "text/csv; charset=utf-8"
	}
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

// LeaderboardRow is one pillar of one employee in long format.
type LeaderboardRow struct {
	Rank        int     `csv:"rank"`
	EmployeeID  string  `csv:"employee_id"`
	Employee    string  `csv:"employee"`
	Overall     int     `csv:"overall_pct"`
	Status      string  `csv:"status"`
	Pillar      string  `csv:"pillar"`
	Category    string  `csv:"category"`
	Actual      float64 `csv:"actual"`
	Target      float64 `csv:"target"`
	Achievement int     `csv:"achievement_pct"`
}

// BuildRows flattens a leaderboard. Percentages are rounded half up.
func BuildRows(output *performance.GetLeaderboardOutput) []*LeaderboardRow {
	var rows []*LeaderboardRow
	for i, entry := range output.Entries {
		overall := valueobject.RoundPercent(entry.Overall)
		status := output.Bands.Classify(entry.Overall).Label()
		for _, pillar := range entry.Pillars {
			rows = append(rows, &LeaderboardRow{
				Rank:        i + 1,
				EmployeeID:  entry.Employee.ID,
				Employee:    entry.Employee.Name,
				Overall:     overall,
				Status:      status,
				Pillar:      pillar.Key,
				Category:    pillar.Category,
				Actual:      pillar.Actual,
				Target:      pillar.Target,
				Achievement: valueobject.RoundPercent(pillar.Achievement),
			})
		}
	}
	return rows
}

// Write renders the leaderboard in format to w.
func Write(w io.Writer, format Format, output *performance.GetLeaderboardOutput) error {
	if format == FormatCSV {
		return WriteCSV(w, BuildRows(output))
	}
	return WriteXLSX(w, output)
}

// WriteCSV writes rows as semicolon-separated values with a header.
func WriteCSV(w io.Writer, rows []*LeaderboardRow) error {
	csvWriter := csv.NewWriter(w)
	csvWriter.Comma = ';'

	if err := gocsv.MarshalCSV(&rows, csvWriter); err != nil {
		return fmt.Errorf("write leaderboard csv: %w", err)
	}
	return nil
}

// WriteXLSX writes a workbook with a wide ranking sheet and a long detail sheet.
func WriteXLSX(w io.Writer, output *performance.GetLeaderboardOutput) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", rankingSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}

	header := []interface{}{"#", "Empleado", "Global %", "Estado"}
	var pillarKeys []string
	if len(output.Entries) > 0 {
		for _, p := range output.Entries[0].Pillars {
			pillarKeys = append(pillarKeys, p.Key)
			header = append(header, p.Category+" %")
		}
	}
	if err := writeRow(f, rankingSheet, 1, header); err != nil {
		return err
	}
	lastCol, _ := excelize.ColumnNumberToName(len(header))
	if err := f.SetCellStyle(rankingSheet, "A1", lastCol+"1", bold); err != nil {
		return fmt.Errorf("style header: %w", err)
	}

	for i, entry := range output.Entries {
		row := []interface{}{
			i + 1,
			entry.Employee.Name,
			valueobject.RoundPercent(entry.Overall),
			output.Bands.Classify(entry.Overall).Label(),
		}
		for _, key := range pillarKeys {
			row = append(row, pillarPercent(entry, key))
		}
		if err := writeRow(f, rankingSheet, i+2, row); err != nil {
			return err
		}
	}
	_ = f.SetColWidth(rankingSheet, "B", "B", 28)

	if _, err := f.NewSheet(detailSheet); err != nil {
		return fmt.Errorf("create detail sheet: %w", err)
	}
	detailHeader := []interface{}{"#", "ID", "Empleado", "Global %", "Estado", "Pilar", "Categoría", "Real", "Objetivo", "Logro %"}
	if err := writeRow(f, detailSheet, 1, detailHeader); err != nil {
		return err
	}
	if err := f.SetCellStyle(detailSheet, "A1", "J1", bold); err != nil {
		return fmt.Errorf("style header: %w", err)
	}
	for i, r := range BuildRows(output) {
		row := []interface{}{r.Rank, r.EmployeeID, r.Employee, r.Overall, r.Status, r.Pillar, r.Category, r.Actual, r.Target, r.Achievement}
		if err := writeRow(f, detailSheet, i+2, row); err != nil {
			return err
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func writeRow(f *excelize.File, sheet string, rowNum int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return fmt.Errorf("cell name: %w", err)
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("write %s row %d: %w", sheet, rowNum, err)
	}
	return nil
}

func pillarPercent(entry performance.LeaderboardEntry, key string) int {
	for _, p := range entry.Pillars {
		if p.Key == key {
			return valueobject.RoundPercent(p.Achievement)
		}
	}
	return 0
}
