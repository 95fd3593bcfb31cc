package handlers

import (
	"encoding/csv"
	"io"
	"strings"

	"github.com/Balaswamyvasamsetti/attendence-management-system/internal/apperr"
	"github.com/Balaswamyvasamsetti/attendence-management-system/internal/attendance"
)

// csvRowReader adapts an uploaded CSV file to the reconciler's row
// sequence. The first line is a header; studentId, date and status columns
// are located by name, case-insensitively.
type csvRowReader struct {
	r                *csv.Reader
	studentCol       int
	dateCol          int
	statusCol        int
	requiredColCount int
}

func newCSVRowReader(src io.Reader) (*csvRowReader, error) {
	r := csv.NewReader(src)
	r.FieldsPerRecord = -1 // ragged rows are handled per row
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		return nil, apperr.Validation("CSV file is empty or unreadable")
	}

	cols := map[string]int{}
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	studentCol, okStudent := cols["studentid"]
	dateCol, okDate := cols["date"]
	statusCol, okStatus := cols["status"]
	if !okStudent || !okDate || !okStatus {
		return nil, apperr.Validation("CSV header must contain studentId, date and status columns")
	}

	max := studentCol
	if dateCol > max {
		max = dateCol
	}
	if statusCol > max {
		max = statusCol
	}
	return &csvRowReader{
		r:                r,
		studentCol:       studentCol,
		dateCol:          dateCol,
		statusCol:        statusCol,
		requiredColCount: max + 1,
	}, nil
}

func (c *csvRowReader) Next() (attendance.Row, error) {
	record, err := c.r.Read()
	if err != nil {
		return attendance.Row{}, err // io.EOF ends the sequence
	}
	// a short line cannot hold all required columns; yield it blank so
	// the reconciler skips it like any other invalid row
	if len(record) < c.requiredColCount {
		return attendance.Row{}, nil
	}
	return attendance.Row{
		StudentID: record[c.studentCol],
		Date:      record[c.dateCol],
		Status:    record[c.statusCol],
	}, nil
}
