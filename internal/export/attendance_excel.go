// Package export renders attendance data as downloadable spreadsheets.
package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/Balaswamyvasamsetti/attendence-management-system/internal/models"
)

const sheetName = "Attendance"

var header = []string{"Student ID", "Name", "Section", "Subject", "Date", "Status"}

// AttendanceWorkbook builds an xlsx sheet from attendance records.
// nameByStudent maps student codes to display names; unknown codes get an
// empty name cell.
func AttendanceWorkbook(records []models.AttendanceRecord, nameByStudent map[string]string) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("header style: %w", err)
	}
	for col, h := range header {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellStr(sheetName, cell, h); err != nil {
			return nil, fmt.Errorf("set cell %s: %w", cell, err)
		}
	}
	end, _ := excelize.CoordinatesToCellName(len(header), 1)
	_ = f.SetCellStyle(sheetName, "A1", end, bold)
	_ = f.AutoFilter(sheetName, "A1:"+end, nil)

	for i, rec := range records {
		row := []string{
			rec.StudentID,
			nameByStudent[rec.StudentID],
			rec.Section,
			rec.Subject,
			rec.Date.Format("2006-01-02"),
			string(rec.Status),
		}
		for col, val := range row {
			cell, _ := excelize.CoordinatesToCellName(col+1, i+2)
			if err := f.SetCellStr(sheetName, cell, val); err != nil {
				return nil, fmt.Errorf("set cell %s: %w", cell, err)
			}
		}
	}

	for col := 1; col <= len(header); col++ {
		name, _ := excelize.ColumnNumberToName(col)
		_ = f.SetColWidth(sheetName, name, name, 16)
	}
	return f, nil
}
